// Package probe wraps ffprobe to read technical metadata from video clips.
// It is optional: the rename pipeline never depends on probe results, they
// only enrich the preview statistics.
package probe

import (
	"context"
	"fmt"

	"gopkg.in/vansante/go-ffprobe.v2"
)

// probeFunc defines the function signature used to execute ffprobe.
type probeFunc func(ctx context.Context, path string, extraOpts ...string) (*ffprobe.ProbeData, error)

// Prober reads clip durations through the ffprobe binary.
type Prober struct {
	probe probeFunc
}

// New creates a Prober with the default ffprobe execution path.
func New() *Prober {
	return &Prober{probe: ffprobe.ProbeURL}
}

// DurationSeconds returns the container duration of the clip at path.
func (p *Prober) DurationSeconds(ctx context.Context, path string) (float64, error) {
	data, err := p.probe(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}
	if data == nil || data.Format == nil {
		return 0, fmt.Errorf("ffprobe returned no format data for %s", path)
	}
	return data.Format.DurationSeconds, nil
}
