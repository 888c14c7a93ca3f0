package viz

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/sortviz/internal/driver"
	"github.com/san-kum/sortviz/internal/pacing"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarHeights(t *testing.T) {
	assert.Equal(t, []int{10, 5, 1, 0}, BarHeights([]int{100, 50, 1, 0}, 10))
	assert.Equal(t, []int{4, 2, 0}, BarHeights([]int{8, 4, -3}, 4))
	assert.Equal(t, []int{0, 0}, BarHeights([]int{-1, 0}, 4))
	assert.Equal(t, []int{0}, BarHeights([]int{5}, 0))
}

func TestBarHeightsHugeValues(t *testing.T) {
	assert.Equal(t, []int{10, 5, 1, 0},
		BarHeights([]int{math.MaxInt, math.MaxInt / 2, 1, math.MinInt}, 10))
}

func TestRenderBars(t *testing.T) {
	snap := session.Snapshot{
		Values: []int{2, 4, 1},
		Tags:   []session.Tag{session.Default, session.Comparing, session.Sorted},
	}
	out := RenderBars(snap, ThemeMinimal, 4, 40)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, " 2    4    1  ", lines[4])
	assert.Equal(t, 1, strings.Count(lines[0], barGlyph)/maxBarWidth)
	assert.Equal(t, 3, strings.Count(lines[3], barGlyph)/maxBarWidth)

	assert.Contains(t, RenderBars(session.Snapshot{}, ThemeMinimal, 4, 40), "empty")
}

func TestLabel(t *testing.T) {
	assert.Equal(t, " 7  ", label(7, 4))
	assert.Equal(t, "23", label(123, 2))
}

func TestThemes(t *testing.T) {
	assert.Equal(t, "retro", NextTheme("cyberpunk").Name)
	assert.Equal(t, "cyberpunk", NextTheme("sunset").Name)
	assert.Equal(t, "cyberpunk", GetTheme("missing").Name)
	assert.Len(t, ThemeNames(), len(Themes))
	assert.Equal(t, ThemeOcean.Sorted, ThemeOcean.TagColor(session.Sorted))
	assert.Equal(t, ThemeOcean.Bar, ThemeOcean.TagColor(session.Default))
}

func TestNotifierKeepsNewest(t *testing.T) {
	n := NewNotifier()
	n.OnChange(session.Change{Snapshot: session.Snapshot{Seq: 2, Status: "new"}})
	n.OnChange(session.Change{Snapshot: session.Snapshot{Seq: 1, Status: "old"}})

	msg := waitForChange(n)()
	change, ok := msg.(changeMsg)
	require.True(t, ok)
	assert.Equal(t, "new", change.snap.Status)
	assert.Len(t, n.signal, 0)
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(Model)
	}
	return m, cmd
}

func newTestModel(t *testing.T, curve pacing.Curve, clock pacing.Clock) (Model, *driver.Driver) {
	t.Helper()
	n := NewNotifier()
	d, err := driver.Setup(n, curve, clock)
	require.NoError(t, err)
	require.NoError(t, d.Session().SetSequence([]int{3, 1, 2}))
	return NewModel(context.Background(), d, n, Options{Theme: "minimal"}), d
}

func TestModelRunsSelectedAlgorithm(t *testing.T) {
	m, d := newTestModel(t, pacing.Instant, nil)

	m, _ = press(m, " ")
	assert.Equal(t, driver.StatusNoAlgorithm, d.Session().Status())

	m, _ = press(m, "1")
	assert.Equal(t, session.AlgorithmBubble, m.snap.Algorithm)
	assert.Equal(t, "Selected: Bubble Sort", m.snap.Status)

	m, _ = press(m, "s")
	assert.Equal(t, session.AlgorithmSelection, m.snap.Algorithm)

	_, _ = press(m, " ")
	d.Wait()
	snap := d.Session().Snapshot()
	assert.Equal(t, []int{1, 2, 3}, snap.Values)
	assert.Equal(t, driver.StatusComplete, snap.Status)
}

func TestModelEditsSequence(t *testing.T) {
	m, d := newTestModel(t, pacing.Instant, nil)

	m, _ = press(m, "e")
	require.True(t, m.editing)
	m, _ = press(m, ",", "9", "q")
	assert.True(t, m.editing)
	m, _ = press(m, "enter")
	assert.False(t, m.editing)
	assert.Equal(t, []int{3, 1, 2, 9}, d.Session().Sequence())

	m, _ = press(m, "e", "x", "esc")
	assert.False(t, m.editing)
	assert.Equal(t, "3,1,2,9", m.input.Value())
}

func TestModelSpeedThemeHelp(t *testing.T) {
	m, d := newTestModel(t, pacing.Instant, nil)

	m, _ = press(m, "+")
	assert.Equal(t, session.DefaultSpeed+speedStep, d.Session().Speed())
	m, _ = press(m, "-", "-")
	assert.Equal(t, session.DefaultSpeed-speedStep, m.snap.Speed)

	m, _ = press(m, "t")
	assert.Equal(t, "ocean", m.theme.Name)

	m, _ = press(m, "?")
	assert.Contains(t, m.View(), "KEYBOARD SHORTCUTS")
	m, _ = press(m, "?")
	assert.NotContains(t, m.View(), "KEYBOARD SHORTCUTS")

	_, cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelLocksControlsWhileRunning(t *testing.T) {
	clock := pacing.NewManualClock()
	m, d := newTestModel(t, pacing.DefaultCurve, clock)
	m, _ = press(m, "1", " ")
	require.Eventually(t, func() bool { return clock.Pending() == 1 }, time.Second, time.Millisecond)

	m, _ = press(m, "2", "e")
	assert.Equal(t, session.AlgorithmBubble, d.Session().Algorithm())
	assert.False(t, m.editing)

	m, _ = press(m, " ")
	assert.Equal(t, session.Paused, d.Session().RunState())
	assert.Contains(t, m.View(), "PAUSED")

	m, _ = press(m, "p")
	assert.Equal(t, session.Running, d.Session().RunState())

	m, _ = press(m, "r")
	assert.Equal(t, session.Idle, d.Session().RunState())
	assert.Equal(t, []int{3, 1, 2}, d.Session().Sequence())
	assert.Equal(t, driver.StatusReady, m.snap.Status)
}

func TestModelFollowsChanges(t *testing.T) {
	m, _ := newTestModel(t, pacing.Instant, nil)
	next, cmd := m.Update(changeMsg{snap: session.Snapshot{Seq: m.snap.Seq + 10, Status: "later"}})
	m = next.(Model)
	assert.Equal(t, "later", m.snap.Status)
	assert.NotNil(t, cmd)

	next, _ = m.Update(changeMsg{snap: session.Snapshot{Seq: 1, Status: "stale"}})
	assert.Equal(t, "later", next.(Model).snap.Status)
}
