package main

import (
	"fmt"
	"strconv"
	"strings"

	"reelist/internal/watchlist"
)

func parsePositiveIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid entry id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseTypeFlag validates a --type value. Empty means all types.
func parseTypeFlag(value string) (watchlist.MediaType, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	mediaType, ok := watchlist.ParseMediaType(value)
	if !ok {
		return "", fmt.Errorf("unknown media type %q (movie, show, youtube)", value)
	}
	return mediaType, nil
}
