package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/olivier-w/pingtrace/internal/chart"
	"github.com/olivier-w/pingtrace/internal/config"
	"github.com/olivier-w/pingtrace/internal/graph"
	"github.com/olivier-w/pingtrace/internal/samples"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	notice        = 3 * time.Second
)

// Graph is one host's chart.
type Graph struct {
	Name  string
	Store *samples.Store
}

// panel is the per-graph snapshot taken on each refresh.
type panel struct {
	win   graph.Window
	stats graph.Stats
	scale graph.Scale
}

// Model is the Bubbletea model for the pingtrace TUI. All graphs share one
// scroll position.
type Model struct {
	graphs   []Graph
	settings config.Settings
	clock    clockwork.Clock
	viewport graph.Viewport
	renderer chart.Renderer
	smoother chart.Smoother
	panels   []panel

	keys keyMap
	help help.Model

	width    int
	height   int
	mouseX   int
	mouseY   int
	hovering bool
	quitting bool

	noticeMsg  string    // transient status message
	noticeTime time.Time // when noticeMsg was set
}

// New creates a Model drawing graphs with settings. A nil clock uses the
// real clock.
func New(graphs []Graph, settings config.Settings, clock clockwork.Clock) Model {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	m := Model{
		graphs:   graphs,
		settings: settings,
		clock:    clock,
		viewport: graph.NewViewport(clock),
		renderer: chart.NewRenderer(),
		smoother: chart.NewSmoother(int(time.Second/tickInterval), 6, 1),
		keys:     newKeyMap(),
		help:     help.New(),
	}
	m.smoother.Resize(len(graphs))
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tea.SetWindowTitle(windowTitle(m.graphs)))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tickMsg:
		if m.noticeMsg != "" && m.clock.Since(m.noticeTime) > notice {
			m.noticeMsg = ""
		}
		m.refresh()
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.hovering = false
		m.refresh()
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	width, _, _ := m.layout()
	step := max(1, width/10)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	case key.Matches(msg, m.keys.Back):
		m.viewport.ScrollBy(step)
	case key.Matches(msg, m.keys.Forward):
		m.viewport.ScrollBy(-step)
	case key.Matches(msg, m.keys.PageBack):
		m.viewport.ScrollBy(width)
	case key.Matches(msg, m.keys.PageFwd):
		m.viewport.ScrollBy(-width)
	case key.Matches(msg, m.keys.Live):
		m.viewport.SetScroll(0)
	case key.Matches(msg, m.keys.Clear):
		// Runners keep writing; a probe finishing mid-clear may survive it.
		for _, g := range m.graphs {
			g.Store.ClearAll()
		}
		m.viewport.SetScroll(0)
		m.setNotice("Cleared all samples")
	case key.Matches(msg, m.keys.Delay):
		m.settings.DelayMostRecentPing = !m.settings.DelayMostRecentPing
		if m.settings.DelayMostRecentPing {
			m.setNotice("Delaying newest sample")
		} else {
			m.setNotice("Showing newest sample immediately")
		}
	case key.Matches(msg, m.keys.Timestamps):
		m.settings.ShowTimestamps = !m.settings.ShowTimestamps
	case key.Matches(msg, m.keys.Stats):
		on := !m.statsShown()
		m.settings.ShowLastPing = on
		m.settings.ShowAverage = on
		m.settings.ShowJitter = on
		m.settings.ShowMinMax = on
		m.settings.ShowPacketLoss = on
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	width, _, _ := m.layout()
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		m.viewport.ScrollBy(max(1, width/20))
		m.refresh()
		return m
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		m.viewport.ScrollBy(-max(1, width/20))
		m.refresh()
		return m
	}
	m.mouseX = msg.X
	m.mouseY = msg.Y
	m.hovering = true
	return m
}

func (m *Model) setNotice(s string) {
	m.noticeMsg = s
	m.noticeTime = m.clock.Now()
}

func (m Model) statsShown() bool {
	s := m.settings
	return s.ShowLastPing || s.ShowAverage || s.ShowJitter || s.ShowMinMax || s.ShowPacketLoss
}

// layout returns the chart width, the chart height in rows and the number of
// terminal lines used by each graph.
func (m Model) layout() (width, chartHeight, panelHeight int) {
	width = m.width
	if width <= 0 {
		width = defaultWidth
	}
	height := m.height
	if height <= 0 {
		height = defaultHeight
	}

	extra := 1
	if m.settings.ShowTimestamps {
		extra++
	}
	n := max(1, len(m.graphs))
	chartHeight = max(1, (height-1)/n-extra)
	panelHeight = chartHeight + extra
	return width, chartHeight, panelHeight
}

// refresh resolves every graph's window against the current scroll
// position and eases its scale toward the new target.
func (m *Model) refresh() {
	width, chartHeight, _ := m.layout()
	drawHeight := chartHeight * chart.SubRows
	bad, worse := m.settings.ThresholdBad, m.settings.ThresholdWorse

	m.smoother.Resize(len(m.graphs))
	m.panels = make([]panel, len(m.graphs))
	for i, g := range m.graphs {
		win := graph.Resolve(g.Store, width, m.viewport.Scroll(), m.settings.DelayMostRecentPing)
		st := graph.Aggregate(g.Store, win)
		target := graph.ResolveScale(st.Max, drawHeight, bad, worse)
		factor := m.smoother.Step(i, target.Factor)
		m.panels[i] = panel{
			win:   win,
			stats: st,
			scale: graph.ScaleFor(factor, bad, worse),
		}
	}
}

// hover returns the graph index under the mouse and the chart row, or -1.
func (m Model) hover() (idx, row int) {
	if !m.hovering {
		return -1, 0
	}
	_, chartHeight, panelHeight := m.layout()
	idx = m.mouseY / panelHeight
	if idx < 0 || idx >= len(m.graphs) {
		return -1, 0
	}
	row = m.mouseY%panelHeight - 1
	rows := chartHeight
	if m.settings.ShowTimestamps {
		rows++
	}
	if row < 0 || row >= rows {
		return -1, 0
	}
	return idx, row
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width, chartHeight, _ := m.layout()
	hoverIdx, hoverRow := m.hover()

	var b strings.Builder
	for i, g := range m.graphs {
		p := m.panels[i]

		hint := ""
		if i == hoverIdx {
			sample, point := graph.PointAt(g.Store, p.win, width, m.mouseX)
			mouseMs := p.scale.Value((chartHeight - hoverRow) * chart.SubRows)
			hint = hintText(sample, point, m.settings.TimeFormat, mouseMs)
		}

		status := statusText(m.settings, m.viewport, p.stats, g.Name, hint)
		overlay := overlayText(p.win, m.viewport)
		if !m.settings.ShowTimestamps && overlay != "" {
			status = strings.TrimSpace(status + " " + overlay)
		}
		if label := m.viewport.NotLiveLabel(); m.settings.WarnGraphNotLive && label != "" && strings.HasPrefix(status, label) {
			b.WriteString(notLiveStyle.Render(label))
			b.WriteString(statusStyle.Render(status[len(label):]))
		} else {
			b.WriteString(statusStyle.Render(status))
		}
		b.WriteString("\n")

		b.WriteString(m.renderer.Render(chart.Frame{
			Width:     width,
			Height:    chartHeight,
			Columns:   chartColumns(g.Store, p.win, p.scale, m.settings.ThresholdBad, m.settings.ThresholdWorse),
			BadLine:   chart.LineRow(p.scale.BadLine),
			WorseLine: chart.LineRow(p.scale.WorseLine),
		}))
		b.WriteString("\n")

		if m.settings.ShowTimestamps {
			b.WriteString(timeStyle.Render(timelineText(g.Store, p.win, width, m.settings.ShowDateOnTimeline, overlay)))
			b.WriteString("\n")
		}
	}

	footer := m.help.View(m.keys)
	if m.noticeMsg != "" {
		footer = helpStyle.Render(m.noticeMsg) + spaces(2) + footer
	}
	b.WriteString(footer)
	return b.String()
}

func windowTitle(graphs []Graph) string {
	names := make([]string, 0, len(graphs))
	for _, g := range graphs {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ") + " - pingtrace"
}
