package export

import (
	"strings"
	"testing"

	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/viz"
	"github.com/stretchr/testify/assert"
)

func TestBarsToSVG(t *testing.T) {
	svg := BarsToSVG(
		[]int{1, 3, 2},
		[]session.Tag{session.Sorted, session.Sorted, session.Sorted},
		viz.ThemeMinimal, 300, 116,
	)

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Equal(t, 3, strings.Count(svg, `fill="`+string(viz.ThemeMinimal.Sorted)+`"`))
	assert.Contains(t, svg, `height="100.0"`)
	assert.Contains(t, svg, ">3</text>")
}

func TestBarsToSVGEmpty(t *testing.T) {
	svg := BarsToSVG(nil, nil, viz.ThemeMinimal, 100, 50)
	assert.NotContains(t, svg, "<text")
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
}

func TestSeriesToSVG(t *testing.T) {
	assert.Empty(t, SeriesToSVG([]float64{4}, 100, 50, "#fff"))

	svg := SeriesToSVG([]float64{4, 2, 0}, 100, 50, "#00ff00")
	assert.Contains(t, svg, `stroke="#00ff00"`)
	assert.Equal(t, 2, strings.Count(svg, " L"))
	assert.Contains(t, svg, "M0.0,")
}
