package views

import (
	"fmt"
	"strings"
)

type StatsData struct {
	Label         string
	Type          string
	CurrentStreak int
	LongestStreak int
	WeekRate      float64
	Total         int
}

func RenderStats(data StatsData) string {
	if strings.TrimSpace(data.Label) == "" {
		return ""
	}
	return footerStyle.Render(fmt.Sprintf("%s [%s] streak: %d | best: %d | week: %.0f%% | total: %d",
		data.Label,
		strings.ToLower(data.Type),
		data.CurrentStreak,
		data.LongestStreak,
		data.WeekRate,
		data.Total,
	))
}

// RenderCommandLine shows the input buffer while typing, otherwise the
// last command message.
func RenderCommandLine(mode, inputView, message string) string {
	switch mode {
	case "COMMAND":
		return inputView
	case "VALUE":
		return "value> press a key to record it, esc to cancel"
	default:
		return message
	}
}

func RenderModeLine(mode, helpView string) string {
	return fmt.Sprintf("%s | %s", mode, helpView)
}
