package viz

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sortviz/internal/session"
)

const (
	barGlyph    = "█"
	maxBarWidth = 4
)

// BarHeights scales values to rows: value/max * rows, at least one row for
// any positive value. Non-positive values have no bar.
func BarHeights(values []int, rows int) []int {
	peak := 0
	for _, v := range values {
		peak = max(peak, v)
	}
	heights := make([]int, len(values))
	if peak <= 0 || rows <= 0 {
		return heights
	}
	for i, v := range values {
		if v <= 0 {
			continue
		}
		h := int(math.Round(float64(v) / float64(peak) * float64(rows)))
		heights[i] = min(max(h, 1), rows)
	}
	return heights
}

// barWidth fits n columns plus one-cell gaps into width.
func barWidth(n, width int) int {
	if n == 0 {
		return maxBarWidth
	}
	w := width/n - 1
	return min(max(w, 1), maxBarWidth)
}

// RenderBars draws one vertical column per value, colored by tag, with the
// values as labels underneath.
func RenderBars(snap session.Snapshot, theme Theme, rows, width int) string {
	n := len(snap.Values)
	if n == 0 {
		return Subtle.Render("(empty sequence)")
	}
	heights := BarHeights(snap.Values, rows)
	bw := barWidth(n, width)

	styles := make([]lipgloss.Style, n)
	for i := range styles {
		tag := session.Default
		if i < len(snap.Tags) {
			tag = snap.Tags[i]
		}
		styles[i] = lipgloss.NewStyle().Foreground(theme.TagColor(tag))
	}

	var b strings.Builder
	for row := rows; row >= 1; row-- {
		for i, h := range heights {
			if i > 0 {
				b.WriteByte(' ')
			}
			if h >= row {
				b.WriteString(styles[i].Render(strings.Repeat(barGlyph, bw)))
			} else {
				b.WriteString(strings.Repeat(" ", bw))
			}
		}
		b.WriteByte('\n')
	}

	for i, v := range snap.Values {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(label(v, bw))
	}
	return b.String()
}

// label centers v in w cells, truncating from the left when too wide.
func label(v, w int) string {
	s := strconv.Itoa(v)
	if len(s) > w {
		return s[len(s)-w:]
	}
	pad := w - len(s)
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}
