package viz

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/griddlepan/internal/bridge"
	"github.com/san-kum/griddlepan/internal/config"
	"github.com/san-kum/griddlepan/internal/export"
	"github.com/san-kum/griddlepan/internal/pan"
	"github.com/san-kum/griddlepan/internal/resize"
	"github.com/san-kum/griddlepan/internal/sim"
)

const (
	// margin is the container's left edge and right inset, in cells.
	margin = 2
	// headerRows is the number of rows above the strip.
	headerRows      = 3
	historyCapacity = 600
	scrollStep      = 4
	maxEvents       = 4
)

type TickMsg time.Time

type resizeSettledMsg struct{ gen uint64 }

// ConfigReloadMsg carries a re-read config file.
type ConfigReloadMsg struct {
	Config *config.Config
	Err    error
}

// feed collects callback notices. It is shared by every copy of a Model.
type feed struct{ lines []string }

func (f *feed) push(format string, args ...any) {
	f.lines = append(f.lines, fmt.Sprintf(format, args...))
	if len(f.lines) > maxEvents {
		f.lines = f.lines[len(f.lines)-maxEvents:]
	}
}

func (f *feed) last() string {
	if len(f.lines) == 0 {
		return ""
	}
	return f.lines[len(f.lines)-1]
}

// Model hosts one pan widget on the terminal.
type Model struct {
	cfg      *config.Config
	theme    Theme
	registry *bridge.Registry
	el       bridge.Element
	host     *sim.Host
	signal   *resize.Signal
	strip    Strip
	minimap  *Canvas
	help     help.Model
	events   *feed

	width, height int
	sized         bool
	hovered       bool
	scroll        float64
	history       []float64
	speeds        []float64
	showHelp      bool
	saveDir       string
}

// NewModel builds the terminal page for cfg. The widget is created on the
// first window size, once the container has a width.
func NewModel(cfg *config.Config, registry *bridge.Registry) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if registry == nil {
		registry = bridge.NewRegistry()
	}

	theme := GetTheme(cfg.Theme)
	strip := BuildStrip(cfg.Strip, theme)

	host := sim.NewHost(margin, 0)
	host.SetTouch(cfg.Touch)
	host.SetContent(cfg.Resolved().Container, float64(strip.Width))
	signal := resize.New(resize.DefaultWindow)

	return Model{
		cfg:      cfg,
		theme:    theme,
		registry: registry,
		el:       bridge.NewElement(host, signal),
		host:     host,
		signal:   signal,
		strip:    strip,
		minimap:  NewCanvas(1, 1),
		help:     help.New(),
		events:   &feed{},
		history:  make([]float64, 0, historyCapacity),
		speeds:   make([]float64, 0, historyCapacity),
		saveDir:  ".",
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	fps := m.cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func settleAfter(p resize.Pending) tea.Cmd {
	return tea.Tick(p.Delay, func(time.Time) tea.Msg { return resizeSettledMsg{gen: p.Gen} })
}

// Widget returns the widget bound to the page, if any.
func (m Model) Widget() *pan.Widget {
	w, _ := m.registry.Widget(m.el.ID)
	return w
}

func (m Model) override() *pan.Override {
	o := m.cfg.Options.Override()
	events := m.events
	o.Before = func(pan.Element) { events.push("before callback fired") }
	o.End = func(pan.Element) { events.push("end callback fired") }
	return o
}

func (m Model) containerWidth() int {
	return max(m.width-2*margin, 0)
}

// Update routes terminal events to the host and steps frames.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg)
	case resizeSettledMsg:
		m.signal.Settle(msg.gen)
	case TickMsg:
		m.host.Frame()
		if w := m.Widget(); w != nil {
			st := w.State()
			m.history = appendCapped(m.history, st.RunningOffset)
			m.speeds = appendCapped(m.speeds, st.Speed)
		}
		return m, m.tick()
	case tea.MouseMsg:
		m = m.mouse(msg)
	case tea.BlurMsg:
		if m.hovered {
			m.hovered = false
			m.host.Leave()
		}
	case ConfigReloadMsg:
		m = m.reload(msg)
	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, nil
}

func (m Model) resize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.help.Width = msg.Width
	m.minimap = NewCanvas(max(m.containerWidth(), 1), 1)
	m.host.SetGeometry(margin, float64(m.containerWidth()))

	if !m.sized {
		m.sized = true
		m.registry.Apply(m.el, m.override())
		return m, settleAfter(m.signal.Immediate())
	}
	return m, settleAfter(m.signal.Raw())
}

func (m Model) inside(x, y int) bool {
	return y >= headerRows && y < headerRows+StripHeight &&
		x >= margin && x < margin+m.containerWidth()
}

func (m Model) mouse(msg tea.MouseMsg) Model {
	inside := m.inside(msg.X, msg.Y)
	if inside != m.hovered {
		m.hovered = inside
		if inside {
			m.host.Enter()
		} else {
			m.host.Leave()
		}
	}

	if m.host.NativeScroll() {
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
			m.scrollBy(-scrollStep)
		case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
			m.scrollBy(scrollStep)
		}
		return m
	}

	if inside && msg.Action == tea.MouseActionMotion {
		m.host.MovePointer(float64(msg.X))
	}
	return m
}

func (m *Model) scrollBy(d float64) {
	limit := float64(max(m.strip.Width-m.containerWidth(), 0))
	m.scroll = max(0, min(limit, m.scroll+d))
}

func (m Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case key.Matches(msg, keys.Reinit):
		if m.sized {
			m.registry.Apply(m.el, nil)
			m.events.push("re-initialized")
		}
	case key.Matches(msg, keys.Pause):
		m.togglePause()
	case key.Matches(msg, keys.Before):
		m.call("before")
	case key.Matches(msg, keys.End):
		m.call("end")
	case key.Matches(msg, keys.Theme):
		m.theme = NextTheme(m.theme.Name)
		m.strip = BuildStrip(m.cfg.Strip, m.theme)
		m.events.push("theme: %s", m.theme.Name)
	case key.Matches(msg, keys.Save):
		m.save()
	case key.Matches(msg, keys.Left):
		if m.host.NativeScroll() {
			m.scrollBy(-scrollStep)
		}
	case key.Matches(msg, keys.Right):
		if m.host.NativeScroll() {
			m.scrollBy(scrollStep)
		}
	}
	return m, nil
}

func (m Model) call(name string, args ...any) {
	if err := m.registry.Call(m.el.ID, name, args...); err != nil {
		m.events.push("%v", err)
	}
}

func (m Model) togglePause() {
	w := m.Widget()
	if w == nil {
		m.call("option", &pan.Override{})
		return
	}
	next := !w.Options().PauseOnMouseOut
	m.call("option", &pan.Override{PauseOnMouseOut: pan.Bool(next)})
	m.events.push("pause_on_mouse_out=%v; press r to re-init", next)
}

func (m Model) save() {
	svg := export.SeriesToSVG([]export.Series{
		{Name: "running", Color: string(m.theme.Accent), Values: m.history},
	}, 800, 240)
	if svg == "" {
		m.events.push("nothing to save yet")
		return
	}

	path := filepath.Join(m.saveDir, fmt.Sprintf("griddlepan_%d.svg", time.Now().Unix()))
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		log.Printf("save svg: %v", err)
		m.events.push("save failed: %v", err)
		return
	}
	m.events.push("saved %s", path)
}

func (m Model) reload(msg ConfigReloadMsg) Model {
	if msg.Err != nil {
		log.Printf("config reload: %v", msg.Err)
		m.events.push("config reload failed: %v", msg.Err)
		return m
	}

	m.cfg = msg.Config
	m.theme = GetTheme(m.cfg.Theme)
	m.strip = BuildStrip(m.cfg.Strip, m.theme)
	m.host.SetTouch(m.cfg.Touch)
	m.host.SetContent(m.cfg.Resolved().Container, float64(m.strip.Width))
	if m.sized {
		m.registry.Apply(m.el, m.override())
	}
	m.events.push("config reloaded")
	return m
}

// offset is the translation the strip is drawn with.
func (m Model) offset() float64 {
	if m.host.NativeScroll() {
		return -m.scroll
	}
	w := m.Widget()
	if w == nil {
		return 0
	}
	strip := m.host.Strip(w.Options().Container)
	if strip == nil {
		return 0
	}
	x, styled := strip.Translate()
	if !styled {
		return 0
	}
	return x
}

// View renders the page.
func (m Model) View() string {
	if !m.sized {
		return "sizing…"
	}

	w := m.Widget()
	cw := m.containerWidth()
	pad := strings.Repeat(" ", margin)
	offset := m.offset()

	var s strings.Builder

	status := statusPaused.Render("PAUSED")
	if w.Playing() {
		status = statusPlaying.Render("PANNING")
	}
	if m.host.NativeScroll() {
		status = statusPlaying.Render("NATIVE SCROLL")
	}
	s.WriteString(pad + GradientText("griddlepan", m.theme.Cards[0], m.theme.Accent) + "  " + status + "\n")
	s.WriteString(pad + Separator(cw) + "\n")

	b := w.Bounds()
	fraction := 0.0
	if overflow := b.Overflow(); overflow > 0 {
		fraction = -offset / overflow
	}
	s.WriteString(pad + ProgressBar(fraction, cw, m.theme) + "\n")

	for _, row := range m.strip.Window(offset, cw) {
		s.WriteString(pad + row + "\n")
	}

	m.minimap.DrawMinimap(pan.Bounds{
		ContainerLeft:  b.ContainerLeft,
		ContainerWidth: float64(cw),
		ContentWidth:   float64(m.strip.Width),
	}, offset)
	s.WriteString(pad + m.minimap.String() + "\n\n")

	st := w.State()
	s.WriteString(pad + labelStyle.Render("target") + valueStyle.Render(fmt.Sprintf("%9.2f", st.TargetOffset)) + "\n")
	s.WriteString(pad + labelStyle.Render("running") + valueStyle.Render(fmt.Sprintf("%9.2f", st.RunningOffset)) + "\n")
	s.WriteString(pad + labelStyle.Render("speed") + valueStyle.Render(fmt.Sprintf("%9.2f", st.Speed)) + "  " + SparklineChart(m.speeds, 30) + "\n")
	s.WriteString(pad + labelStyle.Render("frames") + valueStyle.Render(fmt.Sprintf("%9d", w.Frames())) + "\n")
	s.WriteString(pad + labelStyle.Render("classes") + valueStyle.Render(strings.Join(m.host.Classes(), " ")) + "\n")

	if plot := plotHistory(m.history, cw-10); plot != "" {
		s.WriteString(graphStyle.Render(plot) + "\n")
	}

	if note := m.events.last(); note != "" {
		s.WriteString(pad + noticeStyle.Render(note) + "\n")
	}
	s.WriteString(pad + m.help.View(keys))

	return s.String()
}

func plotHistory(values []float64, width int) string {
	data := make([]float64, 0, len(values))
	for _, v := range values {
		if isFinite(v) {
			data = append(data, v)
		}
	}
	if len(data) < 2 || width < 10 {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}
	return asciigraph.Plot(data,
		asciigraph.Height(6),
		asciigraph.Width(width),
		asciigraph.Caption("running offset"),
	)
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}
