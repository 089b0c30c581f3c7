package main

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// budgetMean is one point on the convergence curve: the mean discounted
// return achieved at a given simulation budget.
type budgetMean struct {
	Simulations int
	Mean        float64
	StdErr      float64
}

// renderConvergenceChart writes an HTML line chart of mean discounted
// return against simulation budget. Grounded on CodeStranger's
// policy_run_plot.go: charts.NewLine, opts.LineData, components.NewPage.
func renderConvergenceChart(path string, problem string, points []budgetMean) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("pomcp convergence: %s", problem),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	xAxis := make([]string, len(points))
	series := make([]opts.LineData, len(points))
	for i, p := range points {
		xAxis[i] = fmt.Sprintf("%d", p.Simulations)
		series[i] = opts.LineData{Value: p.Mean}
	}

	line.SetXAxis(xAxis).AddSeries("mean discounted return", series)

	page := components.NewPage()
	page.AddCharts(line)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	return page.Render(f)
}
