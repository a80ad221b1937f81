// Command forensight statically triages a file and writes a JSON risk
// report, or watches a drop folder and triages files as they arrive.
//
// Usage:
//
//	forensight [flags] <file>
//	forensight -watch <dir> [-pattern <glob>]
//
// The exit status is non-zero when the input path is missing or
// unreadable; every other failure degrades into the report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/forensight/triagekit"
	"github.com/forensight/triagekit/casestore"
	"github.com/forensight/triagekit/metadata"
)

func main() {
	var (
		watchDir  = flag.String("watch", "", "watch a directory and triage files as they appear")
		pattern   = flag.String("pattern", "*", "glob matched against file names in watch mode")
		dbPath    = flag.String("db", "", "optional SQLite case database to record evidence in")
		caseName  = flag.String("case", "default", "case name evidence is recorded under")
		verbosity = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbosity {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := triagekit.GetConfig()
	if err != nil {
		logger.Error("load configuration", "error", err)
		os.Exit(1)
	}

	analyzer := triagekit.NewAnalyzer(cfg, metadata.DefaultRegistry())

	var store *casestore.Store
	if *dbPath != "" {
		store, err = casestore.Open(*dbPath)
		if err != nil {
			logger.Error("open case database", "error", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *watchDir != "" {
		if err := runWatch(ctx, analyzer, store, *watchDir, *pattern, *caseName, logger); err != nil && ctx.Err() == nil {
			logger.Error("watch failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: forensight [flags] <file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := runOnce(ctx, analyzer, store, flag.Arg(0), *caseName, logger); err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}
}

func runOnce(ctx context.Context, analyzer *triagekit.Analyzer, store *casestore.Store, path, caseName string, logger *slog.Logger) error {
	report, reportPath, err := analyzer.AnalyzeAndWrite(ctx, path)
	if err != nil {
		return err
	}

	fmt.Println("Analysis complete")
	fmt.Printf("Risk Score: %d (%s)\n", report.RiskScore, report.Verdict())
	fmt.Printf("SHA-256:    %s\n", report.Hashes[triagekit.HashSHA256])
	fmt.Printf("Report:     %s\n", reportPath)

	return record(store, caseName, path, report, reportPath, logger)
}

func runWatch(ctx context.Context, analyzer *triagekit.Analyzer, store *casestore.Store, dir, pattern, caseName string, logger *slog.Logger) error {
	watcher, err := triagekit.NewWatcher(analyzer, dir, pattern, logger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	return watcher.Run(ctx, func(report *triagekit.Report, reportPath string) {
		if err := record(store, caseName, report.FileName, report, reportPath, logger); err != nil {
			logger.Warn("record evidence", "error", err)
		}
	})
}

// record stores the report as an evidence row when a case database is
// configured.
func record(store *casestore.Store, caseName, path string, report *triagekit.Report, reportPath string, logger *slog.Logger) error {
	if store == nil {
		return nil
	}

	c, err := store.FindCaseByName(caseName)
	if errors.Is(err, casestore.ErrNotFound) {
		id, createErr := store.CreateCase(caseName, "")
		if createErr != nil {
			return createErr
		}
		c = &casestore.Case{ID: id, Name: caseName}
	} else if err != nil {
		return err
	}

	_, err = store.AddEvidence(casestore.Evidence{
		CaseID:     c.ID,
		Type:       "file",
		Value:      path,
		Verdict:    report.Verdict(),
		RiskScore:  report.RiskScore,
		SHA256:     report.Hashes[triagekit.HashSHA256],
		ReportPath: reportPath,
	})
	if err == nil {
		logger.Debug("evidence recorded", "case", caseName, "path", path)
	}
	return err
}
