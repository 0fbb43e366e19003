package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nao1215/exotimeline/internal/config"
	"github.com/nao1215/exotimeline/internal/database"
	"github.com/nao1215/exotimeline/internal/model"
)

// digestWidth is how much of a catalogue digest the run listing shows.
const digestWidth = 12

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Compare catalogue fetches recorded in the history database",
		Long: `History shows how the catalogue changed between fetches.

Every successful 'fetch' stores its planets in the history database. By
default the latest two fetches of a source are compared and the planets that
were added or removed are listed, together with whether the downloaded
catalogue changed at all.

Examples:
  # Compare the latest two fetches
  exotimeline history

  # List the recorded fetches
  exotimeline history --list

  # Compare the latest fetch with a specific one
  exotimeline history --with-run-id 0b7e2c4e-...

  # Markdown output
  exotimeline history --markdown`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List the recorded fetches")
	cmd.Flags().StringP("url", "u", "",
		"Only consider fetches of this catalogue URL (default: source of the latest fetch)")
	cmd.Flags().StringP("with-run-id", "i", "",
		"Compare the latest fetch with this run (use --list to see available IDs)")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the history database")

	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	listRuns, err := flags.GetBool("list")
	if err != nil {
		return err
	}
	source, err := flags.GetString("url")
	if err != nil {
		return err
	}
	withRunID, err := flags.GetString("with-run-id")
	if err != nil {
		return err
	}
	jsonOutput, err := flags.GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := flags.GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return config.ErrConflictingReportFormats
	}

	// Validate arguments before opening the database.
	var runID uuid.UUID
	if withRunID != "" {
		runID, err = uuid.Parse(withRunID)
		if err != nil {
			return fmt.Errorf("invalid run ID %q: %w", withRunID, err)
		}
	}

	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return err
	}
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	if listRuns {
		return listFetchRuns(ctx, out, db, source)
	}

	diff, err := compareRuns(ctx, db, source, runID)
	if err != nil {
		return err
	}

	_, err = newReportWriter(out, jsonOutput, markdownOutput, false).WriteDiff(diff)
	return err
}

// listFetchRuns prints the recorded fetches, newest first.
func listFetchRuns(ctx context.Context, out io.Writer, db *database.CatalogueDB, source string) error {
	runs, err := db.ListFetchRuns(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to list fetch runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No fetches found in the database.")
		fmt.Fprintln(out, "\nUse 'exotimeline fetch' to download the catalogue.")
		return nil
	}

	fmt.Fprintf(out, "Recorded fetches (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-36s  %-19s  %6s  %-12s  %s\n", "ID", "Date", "Kept", "Digest", "Source")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 100))

	for _, meta := range runs {
		digest := meta.Digest
		if len(digest) > digestWidth {
			digest = digest[:digestWidth]
		}
		fmt.Fprintf(out, "  %-36s  %-19s  %6d  %-12s  %s\n",
			meta.ID,
			meta.Timestamp.Local().Format("2006-01-02 15:04:05"),
			meta.Stats.Kept,
			digest,
			meta.Source,
		)
	}

	fmt.Fprintln(out, "\nUse 'exotimeline history' to compare the latest two fetches.")
	fmt.Fprintln(out, "Use 'exotimeline history --with-run-id <id>' to compare with a specific fetch.")

	return nil
}

// compareRuns loads the latest fetch and the run to compare it with.
// A nil runID selects the fetch before the latest one.
func compareRuns(ctx context.Context, db *database.CatalogueDB, source string, runID uuid.UUID) (*model.CatalogueDiff, error) {
	if source == "" {
		latest, err := db.LatestRuns(ctx, "", 1)
		if err != nil {
			return nil, fmt.Errorf("failed to get fetch history: %w", err)
		}
		if len(latest) == 0 {
			return nil, errors.New("no fetches found in the database (run fetch first)")
		}
		source = latest[0].Source
	}

	runs, err := db.LatestRuns(ctx, source, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to get fetch history: %w", err)
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no fetches found for %s", source)
	}
	current := runs[0]

	if runID == uuid.Nil {
		if len(runs) < 2 {
			return nil, fmt.Errorf("at least 2 fetches are required for comparison (found %d)", len(runs))
		}
		return model.NewCatalogueDiff(runs[1], current), nil
	}

	previous, err := db.GetFetchRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", runID, err)
	}
	if previous == nil {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if previous.Source != current.Source {
		return nil, fmt.Errorf("run %s fetched %s, not %s", runID, previous.Source, current.Source)
	}
	return model.NewCatalogueDiff(previous, current), nil
}
