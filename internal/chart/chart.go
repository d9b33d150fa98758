// Package chart renders closing-price line charts for the terminal.
//
// A Chart is an owned handle: the view that creates it is responsible for
// calling Close before building a replacement, so chart instances never
// accumulate across ticker switches. Setup must run once, before the first
// chart is constructed.
package chart

import (
	"fmt"
	"sync"

	"github.com/guptarohit/asciigraph"
)

var (
	mu    sync.Mutex
	ready bool
	live  int

	lineColor asciigraph.AnsiColor
)

// Setup performs the one-time process-wide chart initialisation. It is safe
// to call more than once; later calls are no-ops.
func Setup() {
	mu.Lock()
	defer mu.Unlock()
	if ready {
		return
	}
	lineColor = asciigraph.CornflowerBlue
	ready = true
}

// Chart plots one closing-price series. The x axis carries no labels and no
// legend is drawn; only the price scale is shown.
type Chart struct {
	series []float64
	closed bool
}

// New builds a chart for the given series. Setup must have been called first.
func New(series []float64) (*Chart, error) {
	mu.Lock()
	defer mu.Unlock()
	if !ready {
		return nil, fmt.Errorf("chart: Setup not called")
	}
	live++
	return &Chart{series: series}, nil
}

// Render draws the chart into a width x height cell box. A closed chart or an
// empty series renders as an empty string.
func (c *Chart) Render(width, height int) string {
	if c.closed || len(c.series) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	// asciigraph reserves columns for the price scale; keep the plot area
	// inside the requested width.
	plotWidth := width - 10
	if plotWidth < 1 {
		plotWidth = 1
	}
	return asciigraph.Plot(c.series,
		asciigraph.Width(plotWidth),
		asciigraph.Height(height-1),
		asciigraph.SeriesColors(lineColor),
	)
}

// Close releases the chart. It is idempotent.
func (c *Chart) Close() {
	if c.closed {
		return
	}
	c.closed = true
	mu.Lock()
	live--
	mu.Unlock()
}

// Live reports the number of charts created and not yet closed.
func Live() int {
	mu.Lock()
	defer mu.Unlock()
	return live
}
