package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelist/internal/services"
	"reelist/internal/tracker"
)

func newSeenCommand(ctx *commandContext) *cobra.Command {
	var undoFlag bool

	cmd := &cobra.Command{
		Use:   "seen ID...",
		Short: "Mark entries watched",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parsePositiveIDs(args)
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(runCtx context.Context, svc *tracker.Service) error {
				out := cmd.OutOrStdout()
				for _, id := range ids {
					entry, err := svc.SetSeen(runCtx, id, !undoFlag)
					if errors.Is(err, services.ErrNotFound) {
						fmt.Fprintf(out, "Entry %d not found\n", id)
						continue
					}
					if err != nil {
						return err
					}
					state := "seen"
					if undoFlag {
						state = "unseen"
					}
					fmt.Fprintf(out, "Entry %d marked %s (%s)\n", entry.ID, state, entry.Title)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&undoFlag, "undo", false, "Mark unseen instead")
	return cmd
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID...",
		Short: "Remove entries from the watchlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parsePositiveIDs(args)
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(runCtx context.Context, svc *tracker.Service) error {
				out := cmd.OutOrStdout()
				for _, id := range ids {
					err := svc.Delete(runCtx, id)
					if errors.Is(err, services.ErrNotFound) {
						fmt.Fprintf(out, "Entry %d not found\n", id)
						continue
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Entry %d removed\n", id)
				}
				return nil
			})
		},
	}
}

func newNotesCommand(ctx *commandContext) *cobra.Command {
	var clearFlag bool

	cmd := &cobra.Command{
		Use:   "notes ID [TEXT...]",
		Short: "Show or update an entry's notes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parsePositiveIDs(args[:1])
			if err != nil {
				return err
			}
			id := ids[0]
			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if clearFlag && text != "" {
				return errors.New("cannot combine --clear with note text")
			}

			return ctx.withService(cmd, func(runCtx context.Context, svc *tracker.Service) error {
				out := cmd.OutOrStdout()
				switch {
				case clearFlag:
					if _, err := svc.SetNotes(runCtx, id, ""); err != nil {
						return err
					}
					fmt.Fprintf(out, "Notes cleared for entry %d\n", id)
				case text != "":
					if _, err := svc.SetNotes(runCtx, id, text); err != nil {
						return err
					}
					fmt.Fprintf(out, "Notes updated for entry %d\n", id)
				default:
					entry, err := svc.Entry(runCtx, id)
					if err != nil {
						return err
					}
					if entry.Notes == "" {
						fmt.Fprintln(out, "(no notes)")
					} else {
						fmt.Fprintln(out, entry.Notes)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&clearFlag, "clear", false, "Remove the entry's notes")
	return cmd
}
