package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scandash/internal/artifact"
	"scandash/internal/dashboard"
)

type tableFocus int

const (
	focusRows tableFocus = iota
	focusFilter
	focusTopN
)

// tableModel renders the ranked entries as a filterable, truncatable table.
// Rows keep the artifact's order; filtering and truncation never re-sort.
type tableModel struct {
	entries []artifact.RankedEntry

	filter    textinput.Model
	topNInput textinput.Model
	topN      int

	cursor int
	focus  tableFocus

	viewport      viewport.Model
	width, height int
	ready         bool
}

func newTableModel(topN int) tableModel {
	filter := textinput.New()
	filter.Prompt = "filter: "
	filter.Placeholder = "ticker or explanation"
	filter.CharLimit = 64

	topNInput := textinput.New()
	topNInput.Prompt = "top: "
	topNInput.SetValue(strconv.Itoa(topN))
	topNInput.CharLimit = 4

	return tableModel{
		filter:    filter,
		topNInput: topNInput,
		topN:      topN,
	}
}

// rows returns the visible entries: filtered by the query, then capped at
// topN, in artifact order.
func (m *tableModel) rows() []artifact.RankedEntry {
	return dashboard.Truncate(dashboard.FilterEntries(m.entries, m.filter.Value()), m.topN)
}

func (m *tableModel) setEntries(entries []artifact.RankedEntry) {
	m.entries = entries
	m.clampCursor()
	m.refresh()
}

func (m *tableModel) setSize(width, height int) {
	m.width = width
	m.height = height
	vpHeight := height - 2 // inputs line + column header
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.viewport.MouseWheelEnabled = true
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.refresh()
}

func (m *tableModel) setFocus(f tableFocus) {
	m.focus = f
	m.filter.Blur()
	m.topNInput.Blur()
	switch f {
	case focusFilter:
		m.filter.Focus()
	case focusTopN:
		m.topNInput.Focus()
	}
}

func (m *tableModel) cycleFocus() {
	switch m.focus {
	case focusRows:
		m.setFocus(focusFilter)
	case focusFilter:
		m.setFocus(focusTopN)
	default:
		m.setFocus(focusRows)
	}
}

// applyTopN re-parses the top-N input. Non-numeric input leaves the prior
// value in effect.
func (m *tableModel) applyTopN() {
	v := strings.TrimSpace(m.topNInput.Value())
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	m.topN = n
	m.clampCursor()
}

func (m *tableModel) clampCursor() {
	if n := len(m.rows()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tableModel) Update(msg tea.KeyMsg) tea.Cmd {
	switch m.focus {
	case focusFilter:
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.clampCursor()
		m.refresh()
		return cmd

	case focusTopN:
		var cmd tea.Cmd
		m.topNInput, cmd = m.topNInput.Update(msg)
		m.applyTopN()
		m.refresh()
		return cmd
	}

	switch msg.String() {
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		m.refresh()
		m.ensureVisible()
	case "down":
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}
		m.refresh()
		m.ensureVisible()
	case "enter":
		if rows := m.rows(); m.cursor < len(rows) {
			return selectTicker(rows[m.cursor].Ticker)
		}
	case "pgup", "pgdown":
		if m.ready {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return cmd
		}
	}
	return nil
}

// handleMouse forwards wheel events to the viewport.
func (m *tableModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.ready {
		return nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// clickAt selects the row under a click. x and y are relative to the table's
// top-left cell. Returns nil when the click lands outside the rows.
func (m *tableModel) clickAt(x, y int) tea.Cmd {
	if !m.ready || x >= m.width {
		return nil
	}
	idx := y - 2 + m.viewport.YOffset // inputs line + column header
	rows := m.rows()
	if idx < 0 || idx >= len(rows) {
		return nil
	}
	m.cursor = idx
	m.refresh()
	return selectTicker(rows[idx].Ticker)
}

func selectTicker(ticker string) tea.Cmd {
	return func() tea.Msg {
		return tickerSelectedMsg{ticker: ticker}
	}
}

// ensureVisible scrolls the viewport so the cursor row is visible.
func (m *tableModel) ensureVisible() {
	if !m.ready {
		return
	}
	yOff := m.viewport.YOffset
	vpH := m.viewport.Height
	if m.cursor < yOff {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= yOff+vpH {
		m.viewport.SetYOffset(m.cursor - vpH + 1)
	}
}

func (m *tableModel) refresh() {
	if m.ready {
		m.viewport.SetContent(m.renderRows())
	}
}

func (m *tableModel) renderRows() string {
	rows := m.rows()
	if len(rows) == 0 {
		return dimStyle.Render("  (no matching tickers)")
	}

	var b strings.Builder
	explWidth := m.width - 42
	if explWidth < 0 {
		explWidth = 0
	}
	for i, e := range rows {
		hl := i == m.cursor
		num := fmt.Sprintf(" %-4d", i+1)
		sym := fmt.Sprintf(" %-8s", e.Ticker)
		score := fmt.Sprintf("%6s", dashboard.FormatScore(e.Score))
		last := fmt.Sprintf("%9s", dashboard.FormatPrice(e.LastClose))
		vol := fmt.Sprintf("%8s", dashboard.FormatVolume(e.AvgVol20))
		expl := e.Explanation
		if len(expl) > explWidth {
			expl = expl[:explWidth]
		}

		sp := hlStyle(lipgloss.NewStyle(), hl).Render(" ")
		b.WriteString(hlStyle(dimStyle, hl).Render(num))
		sty := tickerStyle
		if hl {
			sty = tickerHlStyle
		}
		b.WriteString(hlStyle(sty, hl).Render(sym))
		b.WriteString(sp)
		b.WriteString(hlStyle(scoreStyle, hl).Render(score))
		b.WriteString(hlStyle(priceStyle, hl).Render(last))
		b.WriteString(sp)
		b.WriteString(hlStyle(volumeStyle, hl).Render(vol))
		b.WriteString(sp)
		b.WriteString(hlStyle(dimStyle, hl).Render(" " + expl))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *tableModel) View() string {
	inputs := m.filter.View() + "   " + m.topNInput.View()
	colLine := fmt.Sprintf(" %-4s %-8s %7s%9s %9s  %s", "#", "Ticker", "Score", "Last", "AvgVol", "Explanation")

	var vp string
	if m.ready {
		vp = m.viewport.View()
	}
	return inputs + "\n" +
		colHeaderStyle.Render(padOrTrunc(colLine, m.width)) + "\n" +
		vp
}
