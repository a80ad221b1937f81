package triagekit

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/forensight/triagekit/metadata"
)

func TestNewWatcherRejectsBadPattern(t *testing.T) {
	a := newTestAnalyzer(t)
	if _, err := NewWatcher(a, t.TempDir(), "[", nil); err == nil {
		t.Error("NewWatcher accepted an invalid glob pattern")
	}
}

func TestNewWatcherRejectsMissingDir(t *testing.T) {
	a := newTestAnalyzer(t)
	if _, err := NewWatcher(a, "/nonexistent/drop/folder", "*", nil); err == nil {
		t.Error("NewWatcher accepted a missing directory")
	}
}

func TestWatcherTriagesMatchingFile(t *testing.T) {
	dropDir := t.TempDir()
	cfg := DefaultConfig()
	cfg.ReportDir = t.TempDir()
	a := NewAnalyzer(cfg, metadata.NewRegistry())

	w, err := NewWatcher(a, dropDir, "*.bin", nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reports := make(chan *Report, 2)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(r *Report, reportPath string) {
			reports <- r
		})
	}()

	// Ignored by the pattern.
	if err := os.WriteFile(filepath.Join(dropDir, "notes.txt"), []byte("skip me"), 0o644); err != nil {
		t.Fatalf("write ignored file: %v", err)
	}
	// Picked up.
	if err := os.WriteFile(filepath.Join(dropDir, "payload.bin"), make([]byte, 64), 0o644); err != nil {
		t.Fatalf("write matching file: %v", err)
	}

	select {
	case r := <-reports:
		if r.FileName != "payload.bin" {
			t.Errorf("triaged %s, want payload.bin", r.FileName)
		}
	case <-ctx.Done():
		t.Fatal("watcher never triaged the matching file")
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
}
