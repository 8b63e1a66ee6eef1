package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-skylight/internal/clock"
	"github.com/litescript/ls-skylight/internal/lighting"
	"github.com/litescript/ls-skylight/internal/style"
)

// Preview zoom bounds for the sky curves.
const (
	minPreviewZoom = 0.0
	maxPreviewZoom = 16.0
)

// SkyViewModel shows the blended sky, light and night state of the current
// frame.
type SkyViewModel struct {
	width       int
	height      int
	frame       *lighting.Frame
	band        clock.DaylightBand
	solarMinute int
	zoom        float64
}

// NewSkyViewModel creates a sky view previewing zoom 10.
func NewSkyViewModel() SkyViewModel {
	return SkyViewModel{zoom: lighting.ZoomHigh}
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData sets the frame and slider state.
func (m SkyViewModel) UpdateData(frame *lighting.Frame, band clock.DaylightBand, solarMinute int) SkyViewModel {
	m.frame = frame
	m.band = band
	m.solarMinute = solarMinute
	return m
}

// Zoom returns the preview zoom.
func (m SkyViewModel) Zoom() float64 {
	return m.zoom
}

// Update handles messages.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "+", "=":
			if m.zoom < maxPreviewZoom {
				m.zoom++
			}
		case "-", "_":
			if m.zoom > minPreviewZoom {
				m.zoom--
			}
		}
	}
	return m, nil
}

// View renders the sky view.
func (m SkyViewModel) View() string {
	var b strings.Builder

	b.WriteString(renderDaylightSlider(m.band, m.solarMinute, m.sliderWidth()))
	b.WriteString("\n\n")

	if m.frame == nil {
		b.WriteString("  Waiting for lighting state...\n")
		return b.String()
	}
	f := m.frame

	b.WriteString(titleStyle.Render(fmt.Sprintf("Sky @ zoom %.0f", m.zoom)))
	b.WriteString("\n")
	b.WriteString(m.renderColors(f))
	b.WriteString(m.renderBlends(f))
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("Light"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %-8s az %6.1f°  polar %5.1f°  intensity %s %.2f\n",
		swatch(f.Light.Color.Hex()), f.Light.Color.Hex(),
		f.Light.AzimuthDeg, f.Light.PolarDeg, meter(f.Light.Intensity, 10, "#ffd27a"), f.Light.Intensity))
	b.WriteString(m.renderHillshade(f.Hillshade))
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("Night lights"))
	b.WriteString("\n")
	b.WriteString(m.renderNight(f.Night))

	return b.String()
}

func (m SkyViewModel) sliderWidth() int {
	w := m.width - 4
	if w > 96 {
		w = 96
	}
	if w < 24 {
		w = 24
	}
	return w
}

func (m SkyViewModel) renderColors(f *lighting.Frame) string {
	var b strings.Builder
	for _, name := range []string{style.SkyColor, style.HorizonColor, style.FogColor} {
		c, ok := f.Blend.Blended.Color(name)
		if !ok {
			b.WriteString(fmt.Sprintf("  %-18s %s\n", name, dimStyle.Render("unset")))
			continue
		}
		b.WriteString(fmt.Sprintf("  %-18s %s %s\n", name, swatch(c.Hex()), c.Hex()))
	}
	return b.String()
}

func (m SkyViewModel) renderBlends(f *lighting.Frame) string {
	var b strings.Builder
	for _, name := range []string{style.SkyHorizonBlend, style.HorizonFogBlend, style.FogGroundBlend} {
		sv, ok := f.Sky[name]
		if !ok {
			continue
		}
		v := sv.At(m.zoom)
		line := fmt.Sprintf("  %-18s %s %.2f", name, meter(v, 10, "#6fb7ff"), v)
		if len(sv.Curve) > 0 {
			line += labelStyle.Render(fmt.Sprintf("  (z%g %.2f → z%g %.2f)",
				sv.Curve[0].Zoom, sv.Curve[0].Value,
				sv.Curve[len(sv.Curve)-1].Zoom, sv.Curve[len(sv.Curve)-1].Value))
		}
		b.WriteString(line + "\n")
	}
	if ab, ok := f.Blend.Blended[style.AtmosphereBlend]; ok {
		b.WriteString(fmt.Sprintf("  %-18s %s\n", style.AtmosphereBlend, truncate(ab.String(), 40)))
	}
	return b.String()
}

func (m SkyViewModel) renderHillshade(h lighting.Hillshade) string {
	line := fmt.Sprintf("  hillshade  direction %5.1f°", h.IlluminationDirection)
	if h.Highlight != nil {
		line += "  highlight " + swatch(h.Highlight.Hex())
	}
	if h.Shadow != nil {
		line += "  shadow " + swatch(h.Shadow.Hex())
	}
	return line + "\n"
}

func (m SkyViewModel) renderNight(n lighting.NightLights) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  factor  %s %.2f\n", meter(n.Factor, 10, "#ffb36a"), n.Factor))
	b.WriteString(fmt.Sprintf("  heatmap %s %.2f   detail %s %.2f\n",
		meter(n.Heatmap, 10, "#ffb36a"), n.Heatmap, meter(n.Detail, 10, "#ffe3ba"), n.Detail))

	if n.Factor == 0 {
		return b.String()
	}
	for _, l := range n.Layers {
		b.WriteString(labelStyle.Render(fmt.Sprintf("    %-30s %-16s %.2f", l.ID, l.Property, l.Opacity.At(m.zoom))))
		b.WriteString("\n")
	}
	return b.String()
}
