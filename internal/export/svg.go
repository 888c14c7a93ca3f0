// Package export renders sequences and run traces as standalone SVG files.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/viz"
)

// BarsToSVG draws one bar per value, scaled to the largest value and
// colored by tag from theme.
func BarsToSVG(values []int, tags []session.Tag, theme viz.Theme, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	n := len(values)
	if n > 0 {
		const labelSpace = 16
		plotH := float64(height - labelSpace)
		slot := float64(width) / float64(n)
		barW := slot * 0.8
		heights := viz.BarHeights(values, int(plotH))

		for i, v := range values {
			tag := session.Default
			if i < len(tags) {
				tag = tags[i]
			}
			x := float64(i)*slot + (slot-barW)/2
			h := float64(heights[i])
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x, plotH-h, barW, h, string(theme.TagColor(tag))))
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" fill="%s" font-size="11" text-anchor="middle">%d</text>
`, x+barW/2, height-4, string(theme.Muted), v))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG draws a polyline of points over their index.
func SeriesToSVG(points []float64, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minY, maxY := points[0], points[0]
	for _, p := range points {
		minY = min(minY, p)
		maxY = max(maxY, p)
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(points) - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (p-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
