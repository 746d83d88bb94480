package engine

import "fmt"

// FormatTicks renders a tick count using the exact grammar spec.md
// §4.8 requires for Plan.PrettyPrint: "1d 2h", "1h 6m", "2m 3s", "45s".
// Each component is included only while a coarser one is already
// present or nonzero, and a bare zero formats as "0s".
func FormatTicks(ticks int64) string {
	if ticks < 0 {
		ticks = 0
	}
	totalSeconds := ticks / 10 // 1 tick == 100ms

	days := totalSeconds / 86400
	hours := (totalSeconds % 86400) / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
