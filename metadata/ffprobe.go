package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
)

// FFProbeProvider extracts stream and format metadata for media files by
// invoking the external ffprobe tool. The context carries the bounded
// timeout; a timeout or missing binary is a recoverable, provider-local
// failure.
type FFProbeProvider struct {
	// Binary overrides the ffprobe executable name, mainly for tests.
	Binary string
}

// Name implements Provider.
func (p *FFProbeProvider) Name() string { return "video" }

// Supports implements Provider.
func (p *FFProbeProvider) Supports(ext, mimeType string) bool {
	switch ext {
	case "mp4", "mov", "mkv", "webm", "avi", "m4v", "3gp":
		return true
	}
	return false
}

// Extract implements Provider.
func (p *FFProbeProvider) Extract(ctx context.Context, src Source) (map[string]any, error) {
	binary := p.Binary
	if binary == "" {
		binary = "ffprobe"
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		src.Path,
	)

	out, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("ffprobe timed out")
		}
		return nil, fmt.Errorf("ffprobe: %w", err)
	}

	fields := make(map[string]any)
	if err := json.Unmarshal(out, &fields); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}
	return fields, nil
}
