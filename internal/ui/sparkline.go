package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SparklineWidth is the fixed width of the altitude sparklines.
const SparklineWidth = 48

// sparklineBlocks are the Unicode block characters for sparkline (0 = lowest, 7 = highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var (
	sparkColorLow  = [3]uint8{0x1b, 0x2b, 0x4b}
	sparkColorMid  = [3]uint8{0x34, 0x78, 0xc0}
	sparkColorHigh = [3]uint8{0xff, 0xd2, 0x7a}
)

// sparkline renders values scaled into [lo, hi] with per-cell coloring.
func sparkline(values []float64, lo, hi float64) string {
	if len(values) == 0 || hi <= lo {
		return ""
	}

	var sb strings.Builder
	for _, v := range values {
		t := (v - lo) / (hi - lo)
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}

		r, g, b := interpolateSparkColor(t)
		color := fmt.Sprintf("#%02x%02x%02x", r, g, b)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(sparkBlock(t))))
	}
	return sb.String()
}

// sparkBlock maps t in [0, 1] to a block character.
func sparkBlock(t float64) rune {
	idx := int(t * 7.0)
	if idx > 7 {
		idx = 7
	}
	if idx < 0 {
		idx = 0
	}
	return sparklineBlocks[idx]
}

// interpolateSparkColor returns RGB color for t in [0, 1].
// Gradient: low (night blue) → mid (blue) → high (sun gold).
func interpolateSparkColor(t float64) (uint8, uint8, uint8) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	from, to, s := sparkColorLow, sparkColorMid, t*2
	if t >= 0.5 {
		from, to, s = sparkColorMid, sparkColorHigh, (t-0.5)*2
	}
	return lerp8(from[0], to[0], s), lerp8(from[1], to[1], s), lerp8(from[2], to[2], s)
}

func lerp8(a, b uint8, s float64) uint8 {
	return uint8(float64(a)*(1-s) + float64(b)*s)
}

// resample averages values into width buckets.
func resample(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}

	result := make([]float64, width)
	perBucket := float64(len(values)) / float64(width)

	for i := 0; i < width; i++ {
		startIdx := int(float64(i) * perBucket)
		endIdx := int(float64(i+1) * perBucket)
		if endIdx <= startIdx {
			endIdx = startIdx + 1
		}
		if endIdx > len(values) {
			endIdx = len(values)
		}
		if startIdx >= endIdx {
			startIdx = endIdx - 1
		}

		sum := 0.0
		count := 0
		for j := startIdx; j < endIdx; j++ {
			sum += values[j]
			count++
		}
		if count > 0 {
			result[i] = sum / float64(count)
		}
	}
	return result
}

// shimmerBar renders a loading animation bar of width cells.
func shimmerBar(tick, width int, msg string) string {
	var sb strings.Builder

	offset := tick % width
	for i := 0; i < width; i++ {
		dist := (i - offset + width) % width
		gray := 60
		if dist < 8 {
			gray = 60 + dist*8
		}
		color := fmt.Sprintf("#%02x%02x%02x", gray, gray, gray)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("▄"))
	}

	sb.WriteString(" ")
	sb.WriteString(dimStyle.Render(msg))
	return sb.String()
}

// meter renders a bracketed bar for v in [0, 1].
func meter(v float64, width int, color string) string {
	filled := int(v * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return "[" + lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(bar) + "]"
}

// swatch renders a two-cell block in a hex color.
func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
