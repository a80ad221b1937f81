package triagekit

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
)

// Watcher triages files as they appear in a drop folder. Files whose base
// name matches the glob pattern are analyzed and their reports written;
// everything else is ignored.
type Watcher struct {
	analyzer *Analyzer
	dir      string
	pattern  glob.Glob
	log      *slog.Logger
	fsw      *fsnotify.Watcher
}

// NewWatcher creates a watcher over dir. pattern is a glob matched
// against file base names ("*" matches everything).
func NewWatcher(analyzer *Analyzer, dir, pattern string, logger *slog.Logger) (*Watcher, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile watch pattern %q: %w", pattern, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		analyzer: analyzer,
		dir:      dir,
		pattern:  g,
		log:      logger.With("component", "watcher", "dir", dir),
		fsw:      fsw,
	}, nil
}

// Run blocks, triaging new files until ctx is done or the watch channel
// closes. handle, if non-nil, receives every report together with its
// written path.
func (w *Watcher) Run(ctx context.Context, handle func(report *Report, reportPath string)) error {
	w.log.Info("watching for files")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) {
				continue
			}
			if !w.pattern.Match(filepath.Base(event.Name)) {
				continue
			}
			w.triage(ctx, event.Name, handle)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watch error", "error", err)
		}
	}
}

func (w *Watcher) triage(ctx context.Context, path string, handle func(*Report, string)) {
	report, reportPath, err := w.analyzer.AnalyzeAndWrite(ctx, path)
	if err != nil {
		// Create events race with writers; a path that vanished or is
		// still locked is not worth failing the watch loop over.
		w.log.Warn("triage failed", "path", path, "error", err)
		return
	}

	w.log.Info("file triaged",
		"path", path,
		"risk_score", report.RiskScore,
		"verdict", report.Verdict(),
		"report", reportPath,
	)

	if handle != nil {
		handle(report, reportPath)
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
