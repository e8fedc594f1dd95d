package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"reelist/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			// Interrupted runs exit quietly.
		case services.IsUserError(err):
			fmt.Fprintln(os.Stderr, err)
		default:
			fmt.Fprintln(os.Stderr, "reelist:", err)
		}
		os.Exit(1)
	}
}
