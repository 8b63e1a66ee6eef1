package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-skylight/internal/clock"
	"github.com/litescript/ls-skylight/internal/lighting"
	"github.com/litescript/ls-skylight/internal/state"
	"github.com/litescript/ls-skylight/internal/twilight"
)

// PhaseRow is one twilight event of the displayed day.
type PhaseRow struct {
	Key  twilight.PhaseKey
	Time time.Time
}

// PhasesViewModel lists the day's twilight events and the current blend.
type PhasesViewModel struct {
	width    int
	height   int
	cursor   int
	rows     []PhaseRow
	lon      float64
	frame    *lighting.Frame
	snapshot state.Snapshot
	stats    state.SeriesStats
	recent   []state.Event
}

// recentEventRows is how many state events the Events panel lists.
const recentEventRows = 5

// NewPhasesViewModel creates a new phases view.
func NewPhasesViewModel() PhasesViewModel {
	return PhasesViewModel{}
}

// SetSize updates the viewport size.
func (m PhasesViewModel) SetSize(width, height int) PhasesViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData sets the day's events and the state snapshot. lon is used to
// print local solar times.
func (m PhasesViewModel) UpdateData(events map[twilight.PhaseKey]time.Time, lon float64, snapshot state.Snapshot, stats state.SeriesStats) PhasesViewModel {
	m.rows = PhaseRows(events)
	m.lon = lon
	m.snapshot = snapshot
	m.frame = snapshot.Frame
	m.stats = stats
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
	return m
}

// PhaseRows orders events by time, breaking ties by phase order.
func PhaseRows(events map[twilight.PhaseKey]time.Time) []PhaseRow {
	rows := make([]PhaseRow, 0, len(events))
	for _, k := range twilight.Phases {
		if t, ok := events[k]; ok {
			rows = append(rows, PhaseRow{Key: k, Time: t})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Time.Before(rows[j].Time) })
	return rows
}

// Update handles messages.
func (m PhasesViewModel) Update(msg tea.Msg) (PhasesViewModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			if len(m.rows) > 0 {
				m.cursor = len(m.rows) - 1
			}
		}
	}
	return m, nil
}

// SetEvents sets the recent state events, oldest first.
func (m PhasesViewModel) SetEvents(recent []state.Event) PhasesViewModel {
	m.recent = recent
	return m
}

// SelectedPhase returns the row under the cursor.
func (m PhasesViewModel) SelectedPhase() (PhaseRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return PhaseRow{}, false
	}
	return m.rows[m.cursor], true
}

// View renders the phases view.
func (m PhasesViewModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderBlend())
	b.WriteString("\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n")
	b.WriteString(m.renderIntensity())
	b.WriteString("\n")
	b.WriteString(m.renderEvents())
	return b.String()
}

func (m PhasesViewModel) renderBlend() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Transition"))
	b.WriteString("\n")

	if m.frame == nil {
		b.WriteString("  " + dimStyle.Render("no lighting state") + "\n")
		return b.String()
	}
	bl := m.frame.Blend
	b.WriteString(fmt.Sprintf("  %s → %s  (%s → %s UTC)\n",
		bl.PhaseA, bl.PhaseB, clock.FormatTime(bl.From.UTC()), clock.FormatTime(bl.To.UTC())))
	b.WriteString(fmt.Sprintf("  raw   %s %3.0f%%\n", meter(bl.Raw, 20, "#6fb7ff"), bl.Raw*100))
	b.WriteString(fmt.Sprintf("  eased %s %3.0f%%\n", meter(bl.Eased, 20, "#ffb36a"), bl.Eased*100))
	return b.String()
}

func (m PhasesViewModel) renderTable() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Twilight events"))
	b.WriteString("\n")
	header := fmt.Sprintf("%-14s %-8s %-8s %s", "Phase", "UTC", "Solar", "")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString("  No events\n")
		return b.String()
	}

	maxRows := m.height - 16
	if maxRows < 5 {
		maxRows = 5
	}
	startIdx := 0
	if m.cursor >= maxRows {
		startIdx = m.cursor - maxRows + 1
	}
	endIdx := min(startIdx+maxRows, len(m.rows))

	for i := startIdx; i < endIdx; i++ {
		r := m.rows[i]
		marker := ""
		if m.frame != nil {
			switch r.Key {
			case m.frame.Blend.PhaseA:
				marker = "◀ from"
			case m.frame.Blend.PhaseB:
				marker = "▶ to"
			}
		}
		row := fmt.Sprintf("%-14s %-8s %-8s %s",
			r.Key,
			clock.FormatTime(r.Time.UTC()),
			clock.FormatTime(clock.LocalSolarTime(r.Time, m.lon)),
			marker)

		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render(row))
		} else {
			b.WriteString(rowStyle.Render(row))
		}
		b.WriteString("\n")
	}

	if len(m.rows) > maxRows {
		b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d events\n", startIdx+1, endIdx, len(m.rows)))
	}
	return b.String()
}

func (m PhasesViewModel) renderIntensity() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Light intensity"))
	b.WriteString("\n")

	values := make([]float64, len(m.snapshot.Intensity))
	for i, p := range m.snapshot.Intensity {
		values[i] = p.Value
	}
	if len(values) == 0 {
		b.WriteString("  " + dimStyle.Render("no history") + "\n")
		return b.String()
	}
	if len(values) > SparklineWidth {
		values = resample(values, SparklineWidth)
	}

	b.WriteString("  " + sparkline(values, 0, 1))
	b.WriteString(labelStyle.Render(fmt.Sprintf("  mean %.2f ±%.2f  min %.2f  max %.2f  n=%d",
		m.stats.Mean, m.stats.StdDev, m.stats.Min, m.stats.Max, m.stats.Count)))
	b.WriteString("\n")
	return b.String()
}

func (m PhasesViewModel) renderEvents() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Events"))
	b.WriteString("\n")

	events := m.recent
	if len(events) == 0 {
		b.WriteString("  " + dimStyle.Render("none yet") + "\n")
		return b.String()
	}
	if len(events) > recentEventRows {
		events = events[len(events)-recentEventRows:]
	}
	for i := len(events) - 1; i >= 0; i-- {
		b.WriteString("  " + formatEvent(events[i]) + "\n")
	}
	return b.String()
}

func formatEvent(e state.Event) string {
	ts := e.Timestamp.Format("15:04:05")
	switch e.Type {
	case state.EventPhaseChange:
		return fmt.Sprintf("%s %s %s → %s", ts, labelStyle.Render(string(e.Type)), e.OldPhase, e.NewPhase)
	case state.EventStateLost:
		return fmt.Sprintf("%s %s", ts, errorStyle.Render(string(e.Type)))
	case state.EventLocationChange:
		return fmt.Sprintf("%s %s %s (%s)", ts, labelStyle.Render(string(e.Type)), e.Location, e.Detail)
	default:
		return fmt.Sprintf("%s %s %s", ts, labelStyle.Render(string(e.Type)), e.NewPhase)
	}
}
