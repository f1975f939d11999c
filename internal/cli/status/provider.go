// Package status gathers and renders the gamecfg status dashboard.
package status

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/gamecfg/gamecfg/internal/export"
	"github.com/gamecfg/gamecfg/internal/gamestate"
	"github.com/gamecfg/gamecfg/pkg/version"
)

// Export file states.
const (
	ExportMissing  = "missing"
	ExportUpToDate = "up to date"
	ExportStale    = "stale"
	ExportUnknown  = "unknown"
)

// Info is a snapshot of the backend and the local export file.
type Info struct {
	Backend   string `json:"backend"`
	Reachable bool   `json:"reachable"`
	LatencyMS int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`

	// KnownLayout is false when /state is valid JSON in a shape this client
	// does not tabulate.
	KnownLayout bool   `json:"known_layout"`
	GameMode    string `json:"game_mode,omitempty"`
	Params      int    `json:"params"`
	Tuned       int    `json:"tuned"`

	ExportPath  string    `json:"export_path"`
	ExportState string    `json:"export_state"`
	ExportedAt  time.Time `json:"exported_at,omitzero"`
	StateDigest string    `json:"state_digest,omitempty"`

	Version string `json:"version"`
}

// Provider queries the backend and inspects the export file.
type Provider struct {
	src      export.StateSource
	exporter *export.Writer
	backend  string
	now      func() time.Time
}

// NewProvider creates a status provider.
func NewProvider(src export.StateSource, exporter *export.Writer, backendURL string) *Provider {
	return &Provider{
		src:      src,
		exporter: exporter,
		backend:  backendURL,
		now:      time.Now,
	}
}

// Query fetches /state once and compares it with the export file. Backend
// failures are reported in Info rather than returned.
func (p *Provider) Query(ctx context.Context) Info {
	info := Info{
		Backend:     p.backend,
		ExportPath:  p.exporter.Path(),
		ExportState: ExportUnknown,
		Version:     version.Version,
	}

	if fi, err := os.Stat(info.ExportPath); err == nil {
		info.ExportedAt = fi.ModTime()
	} else if errors.Is(err, os.ErrNotExist) {
		info.ExportState = ExportMissing
	}

	start := p.now()
	raw, err := p.src.State(ctx)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Reachable = true
	info.LatencyMS = p.now().Sub(start).Milliseconds()

	if state, err := gamestate.Parse(raw); err == nil {
		info.KnownLayout = true
		info.GameMode = state.GameMode
		info.Params = len(state.Params)
		info.Tuned = state.Tuned()
	}

	data, err := export.Pretty(raw)
	if err != nil {
		return info
	}
	info.StateDigest = digestString(export.Digest(data))

	switch {
	case info.ExportState == ExportMissing:
	case p.exporter.Unchanged(data):
		info.ExportState = ExportUpToDate
	default:
		info.ExportState = ExportStale
	}
	return info
}
