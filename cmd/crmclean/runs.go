package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hazyhaar/crmclean/pkg/runlog"
	"github.com/hazyhaar/crmclean/pkg/schema"
)

func cmdRuns(args []string) {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	runsDB := fs.String("runs-db", "runs.db", "run history database")
	limit := fs.Int("limit", 20, "maximum runs to list")
	kind := fs.String("kind", "", "show only the most recent run for this dataset kind")
	fs.Parse(args)

	db, err := runlog.Open(*runsDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open run db: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := runsReport(db, *kind, *limit, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func runsReport(db *runlog.DB, kind string, limit int, w io.Writer) error {
	if kind != "" {
		k, err := schema.ParseKind(kind)
		if err != nil {
			return err
		}
		last, err := db.LastRun(string(k))
		if err != nil {
			return fmt.Errorf("last run: %w", err)
		}
		if last == nil {
			fmt.Fprintf(w, "No %s runs recorded yet.\n", k)
			return nil
		}
		printRuns(w, []runlog.Run{*last})
		return nil
	}

	runs, err := db.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No cleaning runs recorded yet.")
		return nil
	}
	printRuns(w, runs)
	return nil
}

func printRuns(w io.Writer, runs []runlog.Run) {
	fmt.Fprintf(w, "%-20s  %-8s  %8s  %8s  %8s  %8s  %s\n",
		"STARTED", "KIND", "ROWS", "INVALID", "DUPES", "FINAL", "INPUT")
	for _, r := range runs {
		fmt.Fprintf(w, "%-20s  %-8s  %8d  %8d  %8d  %8d  %s\n",
			time.Unix(r.StartedAt, 0).Format("2006-01-02 15:04:05"),
			r.Kind, r.Original, r.InvalidFiltered, r.DuplicatesRemoved, r.Final, r.Input)
	}
}
