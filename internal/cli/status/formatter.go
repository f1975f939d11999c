package status

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Formatter renders Info.
type Formatter struct {
	out io.Writer
	now func() time.Time
}

// NewFormatter creates a formatter writing to out.
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out, now: time.Now}
}

// OutputJSON writes info as indented JSON.
func (f *Formatter) OutputJSON(info Info) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, err = fmt.Fprintln(f.out, string(data))
	return err
}

// OutputTable writes info in human-readable form.
func (f *Formatter) OutputTable(info Info, verbose bool) error {
	f.printf("Game-Config Status\n")
	f.printf("==================\n\n")

	if info.Reachable {
		f.printf("Backend:   %s (reachable, %dms)\n", info.Backend, info.LatencyMS)
	} else {
		f.printf("Backend:   %s (unreachable)\n", info.Backend)
		if info.Error != "" {
			f.printf("           %s\n", info.Error)
		}
	}

	switch {
	case !info.Reachable:
		f.printf("Game:      -\n")
	case !info.KnownLayout:
		f.printf("Game:      unrecognized state layout\n")
	case info.GameMode == "":
		f.printf("Game:      no game type chosen yet\n")
	default:
		f.printf("Game:      %s\n", info.GameMode)
		f.printf("Params:    %d total (%d tuned)\n", info.Params, info.Tuned)
	}

	exportText := info.ExportState
	if !info.ExportedAt.IsZero() {
		exportText = fmt.Sprintf("%s, written %s ago", exportText, formatAge(f.now().Sub(info.ExportedAt)))
	}
	f.printf("Export:    %s (%s)\n", info.ExportPath, exportText)
	f.printf("Version:   gamecfg %s\n", info.Version)

	if verbose && info.StateDigest != "" {
		f.printf("Digest:    xxh3:%s\n", info.StateDigest)
	}

	f.printf("\n")
	switch {
	case !info.Reachable:
		f.printf("Start the game-config service or pass --backend <url>.\n")
	case info.ExportState != ExportUpToDate:
		f.printf("Use 'gamecfg export' to save the current parameters.\n")
	default:
		f.printf("Use 'gamecfg state' to list the current parameters.\n")
	}

	return nil
}

func (f *Formatter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(f.out, format, args...)
}

// formatAge formats a duration compactly:
// < 1h: minutes and seconds (e.g., "15m 30s")
// 1h - 24h: hours and minutes (e.g., "5h 20m")
// > 24h: days and hours (e.g., "2d 3h")
func formatAge(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		if minutes == 0 {
			return fmt.Sprintf("%ds", seconds)
		}
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	hours := int(d.Hours())
	if hours < 24 {
		minutes := int(d.Minutes()) % 60
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}

	days := hours / 24
	remainingHours := hours % 24
	return fmt.Sprintf("%dd %dh", days, remainingHours)
}

func digestString(d uint64) string {
	return fmt.Sprintf("%016x", d)
}
