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

func newTagCommand(ctx *commandContext) *cobra.Command {
	tagCmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags and entry labels",
	}

	tagCmd.AddCommand(newTagListCommand(ctx))
	tagCmd.AddCommand(newTagAddCommand(ctx))
	tagCmd.AddCommand(newTagRenameCommand(ctx))
	tagCmd.AddCommand(newTagColorCommand(ctx))
	tagCmd.AddCommand(newTagRemoveCommand(ctx))
	tagCmd.AddCommand(newTagSetCommand(ctx))

	return tagCmd
}

func newTagListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(runCtx context.Context, svc *tracker.Service) error {
				tags, err := svc.Tags(runCtx)
				if err != nil {
					return err
				}
				if len(tags) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No tags defined")
					return nil
				}
				rows := make([][]string, 0, len(tags))
				for _, tag := range tags {
					rows = append(rows, []string{tag.Name, tag.Color})
				}
				table := renderTable([]string{"Name", "Color"}, rows, tableOptions{
					aligns: []columnAlignment{alignLeft, alignLeft},
				})
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}

func newTagAddCommand(ctx *commandContext) *cobra.Command {
	var colorFlag string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(runCtx context.Context, svc *tracker.Service) error {
				tag, err := svc.CreateTag(runCtx, args[0], colorFlag)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tag %q created (%s)\n", tag.Name, tag.Color)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&colorFlag, "color", tracker.DefaultTagColor, "Display color as #RRGGBB")
	return cmd
}

func newTagRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename OLD NEW",
		Short: "Rename a tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(runCtx context.Context, svc *tracker.Service) error {
				tag, err := svc.RenameTag(runCtx, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tag %q renamed to %q\n", args[0], tag.Name)
				return nil
			})
		},
	}
}

func newTagColorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "color NAME HEX",
		Short: "Change a tag's display color",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(runCtx context.Context, svc *tracker.Service) error {
				tag, err := svc.RecolorTag(runCtx, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tag %q recolored to %s\n", tag.Name, tag.Color)
				return nil
			})
		},
	}
}

func newTagRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm NAME...",
		Short: "Delete tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(runCtx context.Context, svc *tracker.Service) error {
				out := cmd.OutOrStdout()
				for _, name := range args {
					err := svc.DeleteTag(runCtx, name)
					if errors.Is(err, services.ErrNotFound) {
						fmt.Fprintf(out, "Tag %q not found\n", name)
						continue
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Tag %q removed\n", name)
				}
				return nil
			})
		},
	}
}

func newTagSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set ENTRY [NAME...]",
		Short: "Replace an entry's tags",
		Long: `Replace the tag set of one entry with the named tags. Every name must refer
to an existing tag; with no names the entry's tags are cleared.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parsePositiveIDs(args[:1])
			if err != nil {
				return err
			}
			names := args[1:]
			return ctx.withService(cmd, func(runCtx context.Context, svc *tracker.Service) error {
				if err := svc.SetEntryTags(runCtx, ids[0], names); err != nil {
					return err
				}
				if len(names) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Tags cleared for entry %d\n", ids[0])
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Entry %d tagged: %s\n", ids[0], strings.Join(names, ", "))
				}
				return nil
			})
		},
	}
}
