package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mixkraft/seqmix/camelot"
	"github.com/mixkraft/seqmix/sequence"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#95E1A3"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// renderSummary formats the playlist and its statistics for the
// terminal.
func renderSummary(res sequence.Result) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Playlist"))
	b.WriteString(" ")
	b.WriteString(renderStatus(res.Status))
	b.WriteString("\n")

	if len(res.Playlist) == 0 {
		b.WriteString(dimStyle.Render("  (empty)"))

		return b.String()
	}

	for i, t := range res.Playlist {
		fmt.Fprintf(&b, "  %2d. %-40s %4s %6.1f BPM  E%d\n",
			i+1, t.ID, t.Key, t.BPM, t.Energy)
		if i < len(res.Transitions) {
			b.WriteString(renderTransition(res.Transitions[i]))
		}
	}

	fmt.Fprintf(&b, "\n  %s %d/%d tracks, %.0f%% harmonic, avg %.1f BPM",
		dimStyle.Render("stats:"),
		res.TracksSelected, res.TracksConsidered,
		res.Stats.HarmonicPct, res.Stats.AvgBPM)
	if res.Stats.TotalDuration > 0 {
		fmt.Fprintf(&b, ", %s", formatDuration(res.Stats.TotalDuration))
	}

	return b.String()
}

func renderStatus(s sequence.Status) string {
	switch s {
	case sequence.StatusOptimal:
		return okStyle.Render("[" + s.String() + "]")
	case sequence.StatusFeasibleTimeLimit:
		return warnStyle.Render("[" + s.String() + "]")
	default:
		return badStyle.Render("[" + s.String() + "]")
	}
}

func renderTransition(tr sequence.Transition) string {
	mark := okStyle.Render("↓")
	if !tr.Harmonic {
		mark = warnStyle.Render("↓ clash")
	}

	return fmt.Sprintf("      %s %s\n", mark,
		dimStyle.Render(fmt.Sprintf("Δ%.1f BPM", tr.BPMDifference)))
}

// renderKeys formats the compatible-key listing.
func renderKeys(key camelot.Key, level camelot.Level, keys []camelot.Key) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}

	return fmt.Sprintf("%s %s %s",
		titleStyle.Render(key.String()),
		dimStyle.Render("("+level.String()+")"),
		strings.Join(names, " "))
}

// formatDuration renders seconds as m:ss or h:mm:ss.
func formatDuration(seconds float64) string {
	total := int(seconds)
	h, m, s := total/3600, total%3600/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}

	return fmt.Sprintf("%d:%02d", m, s)
}
