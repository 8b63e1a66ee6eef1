// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-skylight/internal/astro"
	"github.com/litescript/ls-skylight/internal/clock"
	"github.com/litescript/ls-skylight/internal/ephem"
	"github.com/litescript/ls-skylight/internal/lighting"
	"github.com/litescript/ls-skylight/internal/logging"
	"github.com/litescript/ls-skylight/internal/state"
	"github.com/litescript/ls-skylight/internal/twilight"
	"github.com/litescript/ls-skylight/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewSky ViewMode = iota
	ViewPhases
	ViewBodies
)

const viewCount = 3

// Scrub steps.
const (
	minuteStep   = 15 * time.Minute
	hourStep     = time.Hour
	dayStep      = 24 * time.Hour
	locationStep = 1.0
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// frameMsg carries a composed frame back to the model.
	frameMsg struct {
		seq      int
		frame    *lighting.Frame
		duration time.Duration
		err      error
	}

	// tracesMsg signals altitude trace computation completed.
	tracesMsg struct {
		center time.Time
		loc    astro.GeoPoint
		sun    *ephem.AltitudeTrace
		moon   *ephem.AltitudeTrace
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	composer *lighting.Composer
	state    *state.Manager
	log      *logging.Logger
	now      func() time.Time

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int

	// Displayed moment and place
	live        bool
	at          time.Time
	loc         astro.GeoPoint
	seq         int
	lastCompose time.Time
	traceCenter time.Time
	traceLoc    astro.GeoPoint

	// Sub-models
	sky    SkyViewModel
	phases PhasesViewModel
	bodies BodiesViewModel

	snapshot state.Snapshot
}

// New creates a root model following live time at loc.
func New(c *lighting.Composer, sm *state.Manager, loc astro.GeoPoint, log *logging.Logger) Model {
	if log == nil {
		log = logging.Discard()
	}
	m := Model{
		composer: c,
		state:    sm,
		log:      log.With("component", "ui"),
		now:      time.Now,
		viewMode: ViewSky,
		live:     true,
		loc:      loc.Normalized(),
		sky:      NewSkyViewModel(),
		phases:   NewPhasesViewModel(),
		bodies:   NewBodiesViewModel(),
	}
	m.at = m.now().UTC()
	m.traceCenter, m.traceLoc = m.at, m.loc
	return m
}

// At returns the model pinned to t instead of live time.
func (m Model) At(t time.Time) Model {
	m.at = t.UTC()
	m.live = false
	m.traceCenter = m.at
	return m
}

// Time returns the displayed moment.
func (m Model) Time() time.Time { return m.at }

// Location returns the displayed location.
func (m Model) Location() astro.GeoPoint { return m.loc }

// Live reports whether the model follows the wall clock.
func (m Model) Live() bool { return m.live }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		animTickCmd(),
		composeCmd(m.composer, m.seq, m.at, m.loc),
		traceCmd(m.composer.Provider(), m.at, m.loc),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if changed, handled := m.handleKey(msg.String()); handled {
			if changed {
				cmds = append(cmds, m.recompose()...)
			}
		} else {
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentHeight := msg.Height - 6
		m.sky = m.sky.SetSize(msg.Width, contentHeight)
		m.phases = m.phases.SetSize(msg.Width, contentHeight)
		m.bodies = m.bodies.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		if m.live {
			now := time.Time(msg).UTC()
			m.at = now
			if now.Sub(m.lastCompose) >= m.state.RefreshInterval() {
				cmds = append(cmds, m.recompose()...)
			}
		}

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++
		m.bodies = m.bodies.SetAnimTick(m.animTick)

	case frameMsg:
		if msg.seq != m.seq {
			// A newer request is in flight.
			break
		}
		m.state.Update(msg.frame, msg.duration, msg.err)
		m.statusMsg = ""
		if msg.err != nil {
			m.statusMsg = msg.err.Error()
			m.log.Debug("compose at %s failed: %v", clock.FormatTime(m.at), msg.err)
		}
		m.refreshViews()

	case tracesMsg:
		if msg.center.Equal(m.traceCenter) && msg.loc == m.traceLoc {
			m.bodies = m.bodies.SetTraces(msg.sun, msg.moon)
		}

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

// handleKey applies navigation keys. changed reports whether the displayed
// moment, place or options moved.
func (m *Model) handleKey(key string) (changed, handled bool) {
	switch key {
	case "1":
		m.viewMode = ViewSky
	case "2":
		m.viewMode = ViewPhases
	case "3":
		m.viewMode = ViewBodies
	case "tab":
		m.viewMode = (m.viewMode + 1) % viewCount

	case "left":
		m.scrub(-minuteStep)
	case "right":
		m.scrub(minuteStep)
	case "[":
		m.scrub(-hourStep)
	case "]":
		m.scrub(hourStep)
	case "up":
		m.scrub(dayStep)
	case "down":
		m.scrub(-dayStep)

	case "w":
		m.loc.Lat = astro.ClampLatitude(m.loc.Lat + locationStep)
	case "s":
		m.loc.Lat = astro.ClampLatitude(m.loc.Lat - locationStep)
	case "a":
		m.loc.Lon = astro.NormalizeLongitude(m.loc.Lon - locationStep)
	case "d":
		m.loc.Lon = astro.NormalizeLongitude(m.loc.Lon + locationStep)

	case "n":
		m.live = true
		m.at = m.now().UTC()
	case "z":
		opts := m.composer.Options()
		opts.ZoomEasing = !opts.ZoomEasing
		m.composer = m.composer.WithOptions(opts)

	default:
		return false, false
	}

	switch key {
	case "1", "2", "3", "tab":
		return false, true
	}
	return true, true
}

func (m *Model) scrub(d time.Duration) {
	m.live = false
	m.at = m.at.Add(d)
}

// recompose requests a new frame and, when the moment or place moved far
// enough, new altitude traces.
func (m *Model) recompose() []tea.Cmd {
	m.seq++
	m.lastCompose = m.at
	cmds := []tea.Cmd{composeCmd(m.composer, m.seq, m.at, m.loc)}

	moved := m.at.Sub(m.traceCenter)
	if moved < 0 {
		moved = -moved
	}
	if m.loc != m.traceLoc || moved >= ephem.DefaultTraceStep {
		m.traceCenter, m.traceLoc = m.at, m.loc
		m.bodies = m.bodies.SetLoading()
		cmds = append(cmds, traceCmd(m.composer.Provider(), m.at, m.loc))
	}
	return cmds
}

// refreshViews pushes the state snapshot and the day's events to the views.
func (m *Model) refreshViews() {
	m.snapshot = m.state.Snapshot()

	events := m.composer.Provider().TwilightEvents(m.at, m.loc)
	band := clock.NewDaylightBand(events[twilight.Sunrise], events[twilight.Sunset], m.loc.Lon)
	solarMinute := clock.MinutesOfDay(clock.LocalSolarTime(m.at, m.loc.Lon))

	m.sky = m.sky.UpdateData(m.snapshot.Frame, band, solarMinute)
	m.phases = m.phases.UpdateData(events, m.loc.Lon, m.snapshot, m.state.IntensityStats()).
		SetEvents(m.state.RecentEvents(recentEventRows))
	m.bodies = m.bodies.UpdateData(m.snapshot.Frame, m.at)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewSky:
		m.sky, cmd = m.sky.Update(msg)
	case ViewPhases:
		m.phases, cmd = m.phases.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewSky:
		content = m.sky.View()
	case ViewPhases:
		content = m.phases.View()
	case ViewBodies:
		content = m.bodies.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(gradientTitle("ls-skylight"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  v%s · twilight lighting", version.Version)))
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

// gradientTitle renders text with a horizontal night-to-dawn gradient.
func gradientTitle(text string) string {
	from, _ := colorful.Hex(clock.DeepTwilightColor)
	to, _ := colorful.Hex(clock.WarmGlowColor)

	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := from.BlendHcl(to, t).Clamped()
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return b.String()
}

func (m Model) renderStatusLine() string {
	mode := accentStyle.Render("● LIVE")
	if !m.live {
		mode = labelStyle.Render("◆ SCRUB")
	}
	easing := "off"
	if m.composer.Options().ZoomEasing {
		easing = "on"
	}
	solar := clock.LocalSolarTime(m.at, m.loc.Lon)
	return fmt.Sprintf("  %s  %s %s UTC  solar %s  %s  zoom easing %s  %s",
		mode,
		clock.FormatDate(m.at), clock.FormatTime(m.at),
		clock.FormatTime(solar),
		m.loc,
		easing,
		dimStyle.Render(m.composer.Provider().Name()))
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Sky", "[2] Phases", "[3] Bodies"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.statusMsg != "":
		status = errorStyle.Render("ERROR: " + m.statusMsg)
	case m.snapshot.Frame != nil:
		status = accentStyle.Render(spinner) +
			dimStyle.Render(" composed in "+m.snapshot.ComposeDuration.Round(time.Microsecond).String())
	default:
		status = accentStyle.Render(spinner) + dimStyle.Render(" composing...")
	}

	var help string
	switch m.viewMode {
	case ViewSky:
		help = "+/-: preview zoom"
	case ViewPhases:
		help = "j/k: select event"
	default:
		help = "tab: switch view"
	}
	help += " | ←/→ 15m  [/] 1h  ↑/↓ day  wasd: move  n: now  z: zoom easing  q: quit"

	return "  " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help)
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// composeCmd composes a frame off the UI goroutine.
func composeCmd(c *lighting.Composer, seq int, at time.Time, loc astro.GeoPoint) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		var composed *lighting.Frame
		_, err := c.Apply(lighting.RendererFunc(func(f lighting.Frame) error {
			composed = &f
			return nil
		}), at, loc)
		return frameMsg{seq: seq, frame: composed, duration: time.Since(start), err: err}
	}
}

// traceCmd computes sun and moon altitude traces centred on at.
func traceCmd(p ephem.Provider, at time.Time, loc astro.GeoPoint) tea.Cmd {
	return func() tea.Msg {
		return tracesMsg{
			center: at,
			loc:    loc,
			sun:    ephem.ComputeAltitudeTrace(p, ephem.Sun, at, loc, ephem.DefaultTraceWindow, ephem.DefaultTraceStep),
			moon:   ephem.ComputeAltitudeTrace(p, ephem.Moon, at, loc, ephem.DefaultTraceWindow, ephem.DefaultTraceStep),
		}
	}
}
