package lighting

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// FrameExport is the JSON snapshot of a composed frame.
type FrameExport struct {
	GeneratedAt time.Time `json:"generated_at"`
	Provider    string    `json:"provider"`
	Frame
}

// ExportFrame wraps a frame for export.
func ExportFrame(f Frame, provider string, generatedAt time.Time) *FrameExport {
	return &FrameExport{GeneratedAt: generatedAt, Provider: provider, Frame: f}
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (e *FrameExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// SummaryRow represents one attribute row in the summary table.
type SummaryRow struct {
	Attribute string
	Value     string
	Curve     string
}

// GenerateSummaryRows lists the blended attributes in name order.
func GenerateSummaryRows(f Frame) []SummaryRow {
	rows := make([]SummaryRow, 0, len(f.Blend.Blended))
	for _, key := range f.Blend.Blended.Keys() {
		row := SummaryRow{Attribute: key, Value: f.Blend.Blended[key].String()}
		if sv, ok := f.Sky[key]; ok && len(sv.Curve) > 0 {
			parts := make([]string, len(sv.Curve))
			for i, s := range sv.Curve {
				parts[i] = fmt.Sprintf("z%g=%.2f", s.Zoom, s.Value)
			}
			row.Curve = strings.Join(parts, " ")
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteSummaryTable writes a text summary of the frame.
func WriteSummaryTable(w io.Writer, f Frame) {
	fmt.Fprintf(w, "Lighting @ %s  %s\n", f.Time.UTC().Format(time.RFC3339), f.Location)
	fmt.Fprintln(w, strings.Repeat("─", 72))

	fmt.Fprintf(w, "Phase:  %s → %s  raw %3.0f%%  eased %3.0f%%\n",
		f.Blend.PhaseA, f.Blend.PhaseB, f.Blend.Raw*100, f.Blend.Eased*100)
	fmt.Fprintf(w, "Sun:    alt %6.1f°  az %6.1f°  overhead %s\n",
		f.Sun.Fix.AltitudeDeg, f.Sun.Fix.AzimuthDeg, f.Sun.Position)
	fmt.Fprintf(w, "Moon:   alt %6.1f°  az %6.1f°  %s %s (%d%%)\n",
		f.Moon.Fix.AltitudeDeg, f.Moon.Fix.AzimuthDeg, f.Moon.Glyph, f.Moon.Label, f.Moon.PhasePercent)
	fmt.Fprintf(w, "Light:  az %6.1f°  polar %5.1f°  %s  intensity %.2f\n",
		f.Light.AzimuthDeg, f.Light.PolarDeg, f.Light.Color, f.Light.Intensity)
	fmt.Fprintf(w, "Night:  factor %.2f  heatmap %.2f  detail %.2f\n",
		f.Night.Factor, f.Night.Heatmap, f.Night.Detail)

	rows := GenerateSummaryRows(f)
	if len(rows) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-20s %-12s %s\n", "Attribute", "Value", "Zoom curve")
	fmt.Fprintln(w, strings.Repeat("─", 72))
	for _, r := range rows {
		fmt.Fprintf(w, "%-20s %-12s %s\n", r.Attribute, truncateStr(r.Value, 12), r.Curve)
	}
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
