package utils

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	chartWidth  = 1024
	chartHeight = 320
)

// WritePopulationChart renders the recorded population per generation as a PNG.
func WritePopulationChart(filename string, stats *Stats) error {
	if len(stats.Population) < 2 {
		return errors.Errorf("[WritePopulationChart] need at least 2 samples, got %d", len(stats.Population))
	}

	xs := make([]float64, len(stats.Population))
	ys := make([]float64, len(stats.Population))
	for i, p := range stats.Population {
		xs[i] = float64(i + 1)
		ys[i] = float64(p)
	}

	graph := chart.Chart{
		Title:  "Population",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name:  "generation",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "living cells",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "living cells",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 33, G: 150, B: 242, A: 255}, StrokeWidth: 2.0},
			},
		},
	}

	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "[WritePopulationChart] failed to create file: %+v", filename)
	}
	defer f.Close()

	if err = graph.Render(chart.PNG, f); err != nil {
		return errors.Wrapf(err, "[WritePopulationChart] failed to render chart: %+v", filename)
	}
	return nil
}
