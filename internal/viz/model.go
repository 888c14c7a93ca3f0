package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/driver"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/session"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	speedStep     = 5
	panelWidth    = 48
	chartWidth    = 30
)

type startMsg struct{}

type Options struct {
	Theme     string
	Autostart bool
}

// Model is the bubbletea model of the sorting TUI. All animation state
// lives in the session; the model only keeps a snapshot for rendering.
type Model struct {
	ctx      context.Context
	driver   *driver.Driver
	notifier *Notifier

	snap     session.Snapshot
	theme    Theme
	input    textinput.Model
	editing  bool
	spinner  spinner.Model
	showHelp bool
	autorun  bool

	width, height int
}

func NewModel(ctx context.Context, d *driver.Driver, n *Notifier, opts Options) Model {
	sess := d.Session()

	ti := textinput.New()
	ti.Prompt = "values> "
	ti.Placeholder = "comma separated integers, Enter to apply"
	ti.CharLimit = 512
	ti.Width = 40
	ti.SetValue(config.FormatValues(sess.Sequence()))

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot

	return Model{
		ctx:      ctx,
		driver:   d,
		notifier: n,
		snap:     sess.Snapshot(),
		theme:    GetTheme(opts.Theme),
		input:    ti,
		spinner:  spin,
		autorun:  opts.Autostart,
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForChange(m.notifier), m.spinner.Tick}
	if m.autorun {
		cmds = append(cmds, func() tea.Msg { return startMsg{} })
	}
	return tea.Batch(cmds...)
}

// Update handles input events and session changes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case changeMsg:
		if msg.snap.Seq >= m.snap.Seq {
			m.snap = msg.snap
		}
		return m, waitForChange(m.notifier)

	case startMsg:
		_ = m.driver.Play(m.ctx)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.editing {
			return m.editKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	sess := m.driver.Session()

	switch msg.String() {
	case "q", "ctrl+c":
		m.driver.Cancel(nil)
		return m, tea.Quit
	case "1", "b":
		m.selectAlgorithm(session.AlgorithmBubble)
	case "2", "s":
		m.selectAlgorithm(session.AlgorithmSelection)
	case "3", "i":
		m.selectAlgorithm(session.AlgorithmInsertion)
	case " ", "p":
		if sess.RunState() == session.Running {
			m.driver.Pause()
		} else {
			_ = m.driver.Play(m.ctx)
		}
	case "r":
		_ = m.driver.Reset(config.ParseValues(m.input.Value()))
	case "+", "=":
		sess.SetSpeed(sess.Speed() + speedStep)
	case "-", "_":
		sess.SetSpeed(sess.Speed() - speedStep)
	case "e":
		if sess.RunState() == session.Idle {
			m.editing = true
			cmd := m.input.Focus()
			m.refresh()
			return m, cmd
		}
	case "t":
		m.theme = NextTheme(m.theme.Name)
	case "?":
		m.showHelp = !m.showHelp
	}
	m.refresh()
	return m, nil
}

func (m Model) editKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		values := config.ParseValues(m.input.Value())
		if len(values) > 0 {
			_ = m.driver.Session().SetSequence(values)
		}
		m.editing = false
		m.input.Blur()
		m.refresh()
		return m, nil
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		m.input.SetValue(config.FormatValues(m.driver.Session().Sequence()))
		return m, nil
	case tea.KeyCtrlC:
		m.driver.Cancel(nil)
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) selectAlgorithm(a session.Algorithm) {
	if m.driver.Session().RunState() != session.Idle {
		return
	}
	_ = m.driver.Select(a)
}

// refresh pulls a fresh snapshot after a direct session call.
func (m *Model) refresh() {
	snap := m.driver.Session().Snapshot()
	if snap.Seq >= m.snap.Seq {
		m.snap = snap
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	rows := max(m.height-8, 4)
	barsWidth := max(m.width-panelWidth-4, 20)
	barsView := BarsStyle.Render(RenderBars(m.snap, m.theme, rows, barsWidth))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, barsView, PanelStyle.Render(m.panel()))
	mainView = lipgloss.JoinVertical(lipgloss.Left, mainView, "  "+m.input.View())

	if m.showHelp {
		return HelpBox.Render(helpText) + "\n\n" + mainView
	}
	return mainView
}

func (m Model) panel() string {
	snap := m.snap
	set := m.driver.Metrics()

	var s strings.Builder
	s.WriteString(GradientText("SORTVIZ", m.theme.Primary, m.theme.Secondary) + "\n\n")

	state := Subtle.Render("IDLE")
	switch snap.State {
	case session.Running:
		state = StatusRunning.Render(m.spinner.View() + " RUNNING")
	case session.Paused:
		state = StatusPaused.Render("PAUSED")
	}
	s.WriteString(state + "\n\n")

	delay := m.driver.Pacer().Curve().Delay(snap.Speed)
	s.WriteString(MetricLabel.Render("Algorithm") + MetricValue.Render(snap.Algorithm.Title()) + "\n")
	s.WriteString(MetricLabel.Render("Speed") + ProgressBar(float64(snap.Speed)/float64(session.MaxSpeed), 10) +
		MetricValue.Render(fmt.Sprintf(" %d", snap.Speed)) + "\n")
	s.WriteString(MetricLabel.Render("Delay") + MetricValue.Render(delay.Round(time.Millisecond).String()) + "\n")

	comparisons, _ := set.Value(metrics.NameComparisons)
	exchanges, _ := set.Value(metrics.NameExchanges)
	s.WriteString(MetricLabel.Render("Compares") + MetricValue.Render(fmt.Sprintf("%.0f", comparisons)) + "\n")
	s.WriteString(MetricLabel.Render("Exchanges") + MetricValue.Render(fmt.Sprintf("%.0f", exchanges)) + "\n")

	inversions := metrics.Count(snap.Values)
	n := len(snap.Values)
	worst := n * (n - 1) / 2
	order := 1.0
	if worst > 0 {
		order = 1 - float64(inversions)/float64(worst)
	}
	s.WriteString(MetricLabel.Render("Order") + ProgressBar(order, 10) +
		MetricValue.Render(fmt.Sprintf(" %d inv", inversions)) + "\n")

	if hist := set.History(metrics.NameInversions); len(hist) > 1 {
		chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(chartWidth), asciigraph.Caption("Inversions"))
		s.WriteString(GraphStyle.Render(chart) + "\n")
	}

	s.WriteString("\n" + Separator(panelWidth-6) + "\n")
	s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Text).Width(panelWidth - 6).Render(snap.Status))
	s.WriteString("\n" + KeyHint.Render("1/2/3:Algo SP:Play R:Reset E:Edit\n+/-:Speed T:Theme ?:Help Q:Quit"))
	return s.String()
}

const helpText = `KEYBOARD SHORTCUTS

1 / B     Bubble sort
2 / S     Selection sort
3 / I     Insertion sort
Space / P Play / pause
R         Reset from the input box
E         Edit the sequence (Enter applies, Esc cancels)
+ / -     Speed up / slow down
T         Cycle themes
?         Toggle this help
Q         Quit`

// Run starts the TUI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, d *driver.Driver, n *Notifier, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, d, n, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	d.Cancel(nil)
	return err
}
