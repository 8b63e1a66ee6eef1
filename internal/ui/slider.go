package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skylight/internal/clock"
)

// renderDaylightSlider draws the minute-of-day slider shaded by the daylight
// band, with a marker under minute.
func renderDaylightSlider(band clock.DaylightBand, minute, width int) string {
	if width < 2 {
		width = 2
	}

	var b strings.Builder
	for i := 0; i < width; i++ {
		pct := float64(i) / float64(width-1) * 100
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(band.ColorAt(pct))).Render(" "))
	}
	b.WriteString("\n")

	pos := sliderPosition(minute, width)
	b.WriteString(strings.Repeat(" ", pos))
	b.WriteString(accentStyle.Render("▲"))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("sunrise %s  sunset %s  solar time %s",
		band.Label(band.SunriseMinutes), band.Label(band.SunsetMinutes), minuteLabel(minute))))
	return b.String()
}

// sliderPosition maps a minute of day onto a cell index.
func sliderPosition(minute, width int) int {
	if minute < 0 {
		minute = 0
	}
	if minute > clock.MinutesPerDay-1 {
		minute = clock.MinutesPerDay - 1
	}
	return minute * (width - 1) / (clock.MinutesPerDay - 1)
}

func minuteLabel(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
