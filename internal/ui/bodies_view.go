package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skylight/internal/clock"
	"github.com/litescript/ls-skylight/internal/ephem"
	"github.com/litescript/ls-skylight/internal/lighting"
)

// horizonThreshold is the altitude used for rise and set.
const horizonThreshold = 0.0

// Altitude tier colors.
var tierColors = map[ephem.AltitudeTier]string{
	ephem.TierBelow:  "#4a5568",
	ephem.TierLow:    "#ffb36a",
	ephem.TierMedium: "#6fb7ff",
	ephem.TierHigh:   "#9dd8ff",
}

var tierNames = map[ephem.AltitudeTier]string{
	ephem.TierBelow:  "below",
	ephem.TierLow:    "low",
	ephem.TierMedium: "medium",
	ephem.TierHigh:   "high",
}

// BodiesViewModel shows sun and moon positions with altitude traces.
type BodiesViewModel struct {
	width     int
	height    int
	animTick  int
	frame     *lighting.Frame
	at        time.Time
	sunTrace  *ephem.AltitudeTrace
	moonTrace *ephem.AltitudeTrace
	loading   bool
}

// NewBodiesViewModel creates a new bodies view.
func NewBodiesViewModel() BodiesViewModel {
	return BodiesViewModel{loading: true}
}

// SetSize updates the viewport size.
func (m BodiesViewModel) SetSize(width, height int) BodiesViewModel {
	m.width = width
	m.height = height
	return m
}

// SetAnimTick updates the animation tick.
func (m BodiesViewModel) SetAnimTick(tick int) BodiesViewModel {
	m.animTick = tick
	return m
}

// UpdateData sets the frame and the displayed moment.
func (m BodiesViewModel) UpdateData(frame *lighting.Frame, at time.Time) BodiesViewModel {
	m.frame = frame
	m.at = at
	return m
}

// SetTraces stores freshly computed altitude traces.
func (m BodiesViewModel) SetTraces(sun, moon *ephem.AltitudeTrace) BodiesViewModel {
	m.sunTrace = sun
	m.moonTrace = moon
	m.loading = false
	return m
}

// SetLoading marks the traces as being recomputed.
func (m BodiesViewModel) SetLoading() BodiesViewModel {
	m.loading = true
	return m
}

// View renders the bodies view.
func (m BodiesViewModel) View() string {
	var b strings.Builder

	if m.frame == nil {
		b.WriteString("  Waiting for lighting state...\n")
		return b.String()
	}
	f := m.frame

	b.WriteString(titleStyle.Render("☀ Sun"))
	b.WriteString("\n")
	b.WriteString(m.renderFix(f.Sun.Fix))
	b.WriteString(fmt.Sprintf("  overhead   %s\n", f.Sun.Position))
	b.WriteString("  " + m.renderTrace(m.sunTrace) + "\n")
	b.WriteString(m.renderPassage(m.sunTrace, "sunrise", "sunset"))
	b.WriteString("\n")

	b.WriteString(titleStyle.Render(f.Moon.Glyph + " Moon"))
	b.WriteString("\n")
	b.WriteString(m.renderFix(f.Moon.Fix))
	b.WriteString(fmt.Sprintf("  phase      %s  %d%%  lit %s %.0f%%\n",
		f.Moon.Label, f.Moon.PhasePercent, meter(f.Moon.Fraction, 10, "#e2e8f0"), f.Moon.Fraction*100))
	b.WriteString(fmt.Sprintf("  overhead   %s %s\n", f.Moon.Position, dimStyle.Render("(approx.)")))
	b.WriteString("  " + m.renderTrace(m.moonTrace) + "\n")
	b.WriteString(m.renderPassage(m.moonTrace, "moonrise", "moonset"))

	return b.String()
}

func (m BodiesViewModel) renderFix(fix ephem.CelestialFix) string {
	tier := ephem.TierFor(fix.AltitudeDeg)
	tierStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tierColors[tier]))
	return fmt.Sprintf("  altitude   %6.1f°  %s\n  azimuth    %6.1f°  %s\n",
		fix.AltitudeDeg, tierStyle.Render(tierNames[tier]),
		fix.AzimuthDeg, compassPoint(fix.AzimuthDeg))
}

// renderTrace renders an altitude sparkline over the trace window with the
// value nearest the displayed moment.
func (m BodiesViewModel) renderTrace(trace *ephem.AltitudeTrace) string {
	if m.loading && trace == nil {
		return shimmerBar(m.animTick, SparklineWidth, "Computing altitude trace...")
	}
	if trace == nil || len(trace.Samples) == 0 {
		return dimStyle.Render("No altitude trace")
	}

	var sb strings.Builder
	sb.WriteString(sparkline(resample(trace.Altitudes(), SparklineWidth), -90, 90))
	if cur := trace.CurrentAltitude(m.at); cur != nil {
		sb.WriteString(labelStyle.Render(fmt.Sprintf(" now: %.0f°", cur.Altitude)))
	}
	if peak := trace.Peak(); peak != nil {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  peak %.0f° at %s", peak.Altitude, clock.FormatTime(peak.Time.UTC()))))
	}
	return sb.String()
}

func (m BodiesViewModel) renderPassage(trace *ephem.AltitudeTrace, riseName, setName string) string {
	if trace == nil {
		return ""
	}
	p, err := trace.Passage(horizonThreshold)
	if err != nil {
		return "  " + dimStyle.Render(err.Error()) + "\n"
	}
	switch {
	case p.AlwaysUp:
		return "  " + labelStyle.Render("above the horizon all window") + "\n"
	case p.NeverUp:
		return "  " + labelStyle.Render("below the horizon all window") + "\n"
	}
	return fmt.Sprintf("  %-10s %s   %-8s %s  UTC\n", riseName, passageTime(p.Rise), setName, passageTime(p.Set))
}

func passageTime(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return clock.FormatTime(t.UTC())
}

// compassPoint names the 16-wind direction of a bearing.
func compassPoint(az float64) string {
	points := []string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
		"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}
	idx := int((az+11.25)/22.5) % 16
	if idx < 0 {
		idx += 16
	}
	return points[idx]
}
