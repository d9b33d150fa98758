package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"scandash/internal/artifact"
	"scandash/internal/chart"
	"scandash/internal/dashboard"
	"scandash/internal/loader"
)

type detailState int

const (
	stateNoSelection detailState = iota
	stateLoading
	stateLoaded
)

// detailModel shows the selected ticker's indicators and closing-price chart.
//
// The state machine: NoSelection until a ticker is chosen; Loading from
// selection until the detail artifact arrives; Loaded once it has. A failed
// fetch is logged and the view stays in Loading. Clearing the ticker returns
// to NoSelection from any state.
type detailModel struct {
	loader *loader.Loader
	log    *slog.Logger

	state  detailState
	ticker string
	detail *artifact.Detail
	chart  *chart.Chart

	// gen is bumped on every selection change; a detailLoadedMsg carrying an
	// older gen is stale and ignored.
	gen int

	width, height int
}

func newDetailModel(l *loader.Loader, log *slog.Logger) detailModel {
	return detailModel{loader: l, log: log, state: stateNoSelection}
}

func (m *detailModel) setSize(width, height int) {
	m.width = width
	m.height = height
}

// selectTicker discards the current artifact, enters Loading, and issues the
// single fetch for the new ticker. An empty ticker clears the selection.
func (m *detailModel) selectTicker(ticker string) tea.Cmd {
	if ticker == "" {
		m.clear()
		return nil
	}
	m.ticker = ticker
	m.state = stateLoading
	m.detail = nil
	m.disposeChart()
	m.gen++

	gen := m.gen
	ld := m.loader
	return func() tea.Msg {
		d, err := ld.Detail(context.Background(), ticker)
		return detailLoadedMsg{gen: gen, ticker: ticker, detail: d, err: err}
	}
}

// clear enters NoSelection. Any in-flight fetch becomes stale.
func (m *detailModel) clear() {
	m.ticker = ""
	m.state = stateNoSelection
	m.detail = nil
	m.gen++
	m.disposeChart()
}

// apply handles a fetch result. Stale results and errors leave the current
// state untouched.
func (m *detailModel) apply(msg detailLoadedMsg) {
	if msg.gen != m.gen {
		m.log.Info("dropping stale detail", "ticker", msg.ticker)
		return
	}
	if msg.err != nil {
		m.log.Error("loading detail", "ticker", msg.ticker, "error", msg.err)
		return
	}

	m.detail = msg.detail
	m.disposeChart()
	c, err := chart.New(msg.detail.Closes())
	if err != nil {
		m.log.Error("building chart", "ticker", msg.ticker, "error", err)
	} else {
		m.chart = c
	}
	m.state = stateLoaded
}

// disposeChart closes the previous chart before a replacement is built, so
// instances never accumulate across ticker switches.
func (m *detailModel) disposeChart() {
	if m.chart != nil {
		m.chart.Close()
		m.chart = nil
	}
}

func (m *detailModel) View() string {
	switch m.state {
	case stateNoSelection:
		return dimStyle.Render("  select a ticker to see details")
	case stateLoading:
		return dimStyle.Render(fmt.Sprintf("  loading %s...", m.ticker))
	}

	var b strings.Builder
	b.WriteString(detailHdrStyle.Render(padOrTrunc("  "+m.ticker+"  ", m.width)))
	b.WriteString("\n\n")

	writeField := func(label, value string) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %-12s", label)))
		b.WriteString(priceStyle.Render(value))
		b.WriteString("\n")
	}
	writeField("score", m.detail.Indicator("score_0_100"))
	writeField("explanation", m.detail.Indicator("explanation"))
	writeField("last close", m.detail.Indicator("last_close"))
	writeField("avg vol20", m.formatAvgVol())

	b.WriteString("\n")
	b.WriteString(colHeaderStyle.Render("  indicators"))
	b.WriteString("\n")
	for _, name := range m.detail.IndicatorNames() {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %-14s ", name)))
		b.WriteString(m.detail.Indicator(name))
		b.WriteString("\n")
	}

	if m.chart != nil {
		b.WriteString("\n")
		b.WriteString(colHeaderStyle.Render("  close"))
		b.WriteString("\n")
		chartHeight := m.height - m.usedLines()
		if chartHeight > 12 {
			chartHeight = 12
		}
		if chartHeight < 4 {
			chartHeight = 4
		}
		b.WriteString(m.chart.Render(m.width-2, chartHeight))
	}
	return b.String()
}

// formatAvgVol renders avg_vol20 in compact form when it is numeric, falling
// back to the literal indicator value.
func (m *detailModel) formatAvgVol() string {
	if v, ok := m.detail.Indicators["avg_vol20"].(float64); ok {
		return dashboard.FormatVolume(v)
	}
	return m.detail.Indicator("avg_vol20")
}

// usedLines counts the lines above the chart area.
func (m *detailModel) usedLines() int {
	return 2 + 4 + 2 + len(m.detail.Indicators) + 2
}
