package report

import (
	"bytes"
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/user/pq_analyzer_go/internal/ingest"
)

var (
	seriesColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	barColor    = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	deltaColor  = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// TimeseriesPlot renders one phase's current-vs-time chart as PNG bytes.
func TimeseriesPlot(s ingest.Series, title string) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time"
	p.Y.Label.Text = "Current (A)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "15:04:05"}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, 0, len(s.Values))
	for i, v := range s.Values {
		pts = append(pts, plotter.XY{X: float64(s.Times[i].Unix()), Y: v})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to create series line: %w", err)
	}
	line.Color = seriesColor
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	return renderPNG(p, vg.Points(660), vg.Points(260))
}

// SpectrumPlot renders a harmonic spectrum as a bar chart, one bar per
// harmonic order in ascending order.
func SpectrumPlot(spectrum map[int]float64, title string) ([]byte, error) {
	orders := make([]int, 0, len(spectrum))
	for h := range spectrum {
		orders = append(orders, h)
	}
	sort.Ints(orders)

	values := make(plotter.Values, 0, len(orders))
	labels := make([]string, 0, len(orders))
	for _, h := range orders {
		values = append(values, spectrum[h])
		labels = append(labels, fmt.Sprintf("%d", h))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Harmonic order"
	p.Y.Label.Text = "Amplitude (A)"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, fmt.Errorf("failed to create spectrum bars: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)

	return renderPNG(p, vg.Points(660), vg.Points(260))
}

// DeltaPlot renders the baseline-vs-current risk score comparison.
func DeltaPlot(baselineScore, currentScore int) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Risk score comparison"
	p.Y.Label.Text = "Risk score"
	p.Y.Min = 0
	p.Y.Max = 100
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(plotter.Values{float64(baselineScore), float64(currentScore)}, vg.Points(40))
	if err != nil {
		return nil, fmt.Errorf("failed to create delta bars: %w", err)
	}
	bars.Color = deltaColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX("Baseline", "Current")

	return renderPNG(p, vg.Points(440), vg.Points(200))
}

func renderPNG(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	writer, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}
