package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"reelist/internal/textutil"
	"reelist/internal/tracker"
	"reelist/internal/watchlist"
)

const candidateOverviewWidth = 72

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		typeFlag    string
		yearFlag    int
		runtimeFlag int
		notesFlag   string
		seenFlag    bool
		tagFlags    []string
		manualFlag  bool
		pickFlag    int
		yesFlag     bool
	)

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a movie, show, or channel to the watchlist",
		Long: `Add a title to the watchlist. By default reelist looks the title up on TMDB
and offers ranked candidates; pick one interactively or with --pick/--yes.
When lookup is unavailable (no token, network down, youtube type) the entry
is stored from the command line flags alone, as it always is with --manual.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			mediaType, err := parseTypeFlag(typeFlag)
			if err != nil {
				return err
			}
			if pickFlag < 0 {
				return fmt.Errorf("--pick must be positive, got %d", pickFlag)
			}

			manualOpts := tracker.ManualOptions{
				Year:    yearFlag,
				Runtime: runtimeFlag,
				Notes:   notesFlag,
				Seen:    seenFlag,
			}

			return ctx.withService(cmd, func(runCtx context.Context, svc *tracker.Service) error {
				if manualFlag {
					return addManually(cmd, runCtx, svc, title, mediaType, manualOpts, tagFlags)
				}

				start, err := svc.StartAdd(runCtx, title, mediaType, yearFlag)
				if errors.Is(err, watchlist.ErrDuplicate) {
					printExisting(cmd, start.Existing)
					return nil
				}
				if errors.Is(err, tracker.ErrLookupUnavailable) {
					fmt.Fprintln(cmd.OutOrStdout(), "Metadata lookup is unavailable; adding without it.")
					return addManually(cmd, runCtx, svc, title, mediaType, manualOpts, tagFlags)
				}
				if err != nil {
					return err
				}
				if len(start.Candidates) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No metadata matches; adding without lookup.")
					return addManually(cmd, runCtx, svc, title, mediaType, manualOpts, tagFlags)
				}

				fmt.Fprintln(cmd.OutOrStdout(), renderCandidateTable(start.Candidates))
				choice, err := chooseCandidate(cmd, len(start.Candidates), pickFlag, yesFlag)
				if err != nil {
					return err
				}
				if choice == 0 {
					return addManually(cmd, runCtx, svc, title, mediaType, manualOpts, tagFlags)
				}

				entry, err := svc.ConfirmAdd(runCtx, start.Candidates[choice-1])
				if errors.Is(err, watchlist.ErrDuplicate) {
					printExisting(cmd, entry)
					return nil
				}
				if err != nil {
					return err
				}
				if seenFlag {
					if entry, err = svc.SetSeen(runCtx, entry.ID, true); err != nil {
						return err
					}
				}
				if strings.TrimSpace(notesFlag) != "" {
					if entry, err = svc.SetNotes(runCtx, entry.ID, notesFlag); err != nil {
						return err
					}
				}
				return reportAdded(cmd, runCtx, svc, entry, tagFlags)
			})
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "Media type: movie, show, or youtube")
	cmd.Flags().IntVarP(&yearFlag, "year", "y", 0, "Release year (narrows lookup, stored on manual entries)")
	cmd.Flags().IntVar(&runtimeFlag, "runtime", 0, "Runtime in minutes (manual entries)")
	cmd.Flags().StringVarP(&notesFlag, "notes", "n", "", "Notes to store with the entry")
	cmd.Flags().BoolVar(&seenFlag, "seen", false, "Mark the entry watched immediately")
	cmd.Flags().StringSliceVar(&tagFlags, "tag", nil, "Tag to attach (repeatable; created on demand)")
	cmd.Flags().BoolVar(&manualFlag, "manual", false, "Skip metadata lookup")
	cmd.Flags().IntVar(&pickFlag, "pick", 0, "Accept candidate N without prompting")
	cmd.Flags().BoolVar(&yesFlag, "yes", false, "Accept the top candidate without prompting")

	return cmd
}

func addManually(cmd *cobra.Command, ctx context.Context, svc *tracker.Service, title string, mediaType watchlist.MediaType, opts tracker.ManualOptions, tags []string) error {
	entry, err := svc.AddManual(ctx, title, mediaType, opts)
	if errors.Is(err, watchlist.ErrDuplicate) {
		printExisting(cmd, entry)
		return nil
	}
	if err != nil {
		return err
	}
	return reportAdded(cmd, ctx, svc, entry, tags)
}

func reportAdded(cmd *cobra.Command, ctx context.Context, svc *tracker.Service, entry *watchlist.Entry, tags []string) error {
	if err := svc.AttachTags(ctx, entry.ID, tags); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added #%d %s [%s]\n", entry.ID, decorateTitle(entry.Title, entry.Year), entry.Type)
	return nil
}

func printExisting(cmd *cobra.Command, entry *watchlist.Entry) {
	if entry == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Already tracked.")
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Already tracking %s [%s] as entry #%d\n", decorateTitle(entry.Title, entry.Year), entry.Type, entry.ID)
}

func renderCandidateTable(candidates []tracker.Candidate) string {
	rows := make([][]string, 0, len(candidates))
	for i, candidate := range candidates {
		year := "-"
		if candidate.Year > 0 {
			year = strconv.Itoa(candidate.Year)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			string(candidate.Type),
			candidate.Title,
			year,
			textutil.Truncate(candidate.Overview, candidateOverviewWidth),
		})
	}
	return renderTable([]string{"#", "Type", "Title", "Year", "Overview"}, rows, tableOptions{
		aligns: []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	})
}

// chooseCandidate resolves the candidate selection: --pick and --yes are
// non-interactive, otherwise the user is prompted. Zero means manual entry.
func chooseCandidate(cmd *cobra.Command, count, pick int, yes bool) (int, error) {
	switch {
	case pick > 0:
		if pick > count {
			return 0, fmt.Errorf("--pick %d out of range (1-%d)", pick, count)
		}
		return pick, nil
	case yes:
		return 1, nil
	}
	if !promptCapable(cmd) {
		return 0, errors.New("no terminal for candidate selection; re-run with --pick, --yes, or --manual")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Select 1-%d, or 0 to enter manually: ", count)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("read selection: %w", err)
	}
	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || choice < 0 || choice > count {
		return 0, fmt.Errorf("selection must be 0-%d", count)
	}
	return choice, nil
}

// promptCapable reports whether it is safe to prompt: stdin is a real
// terminal, or the caller wired its own input stream.
func promptCapable(cmd *cobra.Command) bool {
	in := cmd.InOrStdin()
	if in == nil {
		return false
	}
	if file, ok := in.(*os.File); ok {
		fd := file.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return true
}
