package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hazyhaar/crmclean/pkg/clean"
	"github.com/hazyhaar/crmclean/pkg/runlog"
	"github.com/hazyhaar/crmclean/pkg/schema"
)

func cmdClean(args []string) {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)
	input := fs.String("input", "", "input CSV file")
	output := fs.String("output", "", "output CSV file")
	kindStr := fs.String("kind", "", "dataset kind: account or contact")
	schemasDir := fs.String("schemas-dir", "", "directory with schema overrides")
	runsDB := fs.String("runs-db", "", "run history database (optional)")
	quiet := fs.Bool("quiet", false, "suppress progress messages")
	fs.Parse(args)

	if *input == "" || *output == "" || *kindStr == "" {
		fmt.Fprintln(os.Stderr, "Usage: crmclean clean --kind <account|contact> --input <csv> --output <csv> [--quiet]")
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *quiet {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	kind, err := schema.ParseKind(*kindStr)
	if err != nil {
		logger.Error("invalid kind", "error", err)
		os.Exit(1)
	}
	sch, err := schema.LoadDir(*schemasDir, kind)
	if err != nil {
		logger.Error("load schema", "error", err)
		os.Exit(1)
	}

	if dir := filepath.Dir(*output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("create output directory", "error", err)
			os.Exit(1)
		}
	}

	started := time.Now()
	stats, err := clean.New(sch, logger).File(*input, *output)
	if err != nil {
		logger.Error("cleaning failed", "kind", kind, "error", err)
		os.Exit(1)
	}
	elapsed := time.Since(started)

	if *runsDB != "" {
		db, err := runlog.Open(*runsDB)
		if err != nil {
			logger.Error("open run db", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Record(string(kind), *input, *output, stats, started, elapsed); err != nil {
			logger.Error("record run", "error", err)
			os.Exit(1)
		}
	}

	if !*quiet {
		printSummary(kind, stats)
	}
}

func printSummary(kind schema.Kind, stats clean.Stats) {
	fmt.Println()
	fmt.Printf("Cleaning summary (%s)\n", kind)
	fmt.Printf("  Original rows:       %d\n", stats.Original)
	fmt.Printf("  Invalid filtered:    %d\n", stats.InvalidFiltered)
	fmt.Printf("  Duplicates removed:  %d\n", stats.DuplicatesRemoved)
	fmt.Printf("  Final clean rows:    %d\n", stats.Final)
	fmt.Printf("  Data retained:       %.1f%%\n", stats.RetainedPct)
}
