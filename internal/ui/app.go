// Package ui implements the scandash terminal dashboard: a ranking table
// over the daily scan summary and a detail pane for the selected ticker.
package ui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scandash/internal/artifact"
	"scandash/internal/dashboard"
	"scandash/internal/loader"
)

// Model is the top-level bubbletea model. It owns the summary artifact and
// the single current selection, and composes the table and detail views.
type Model struct {
	loader *loader.Loader
	log    *slog.Logger

	summary  *artifact.Summary
	selected string

	table  tableModel
	detail detailModel

	width, height int
	ready         bool
}

// New builds the dashboard model. topN is the initial table row cap.
func New(l *loader.Loader, log *slog.Logger, topN int) Model {
	return Model{
		loader: l,
		log:    log,
		table:  newTableModel(topN),
		detail: newDetailModel(l, log),
	}
}

// Init fetches the summary. It runs exactly once per program run; only a
// restart re-fetches.
func (m Model) Init() tea.Cmd {
	ld := m.loader
	return func() tea.Msg {
		s, err := ld.Summary(context.Background())
		return summaryLoadedMsg{summary: s, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.table.focus == focusRows {
				return m, tea.Quit
			}
		case "tab":
			m.table.cycleFocus()
			return m, nil
		case "esc":
			if m.table.focus != focusRows {
				m.table.setFocus(focusRows)
				return m, nil
			}
			m.selected = ""
			m.detail.clear()
			return m, nil
		}
		return m, m.table.Update(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentH := m.height - 2 // header bar + footer bar
		if contentH < 1 {
			contentH = 1
		}
		tableW := (m.width * 3) / 5
		detailW := m.width - tableW - 1
		if detailW < 0 {
			detailW = 0
		}
		m.table.setSize(tableW, contentH)
		m.detail.setSize(detailW, contentH)
		m.ready = true
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if cmd := m.table.clickAt(msg.X, msg.Y-1); cmd != nil {
				return m, cmd
			}
			return m, nil
		}
		return m, m.table.handleMouse(msg)

	case summaryLoadedMsg:
		if msg.err != nil {
			// Header stays blank and the table stays empty.
			m.log.Error("loading summary", "error", msg.err)
			return m, nil
		}
		m.summary = msg.summary
		m.table.setEntries(msg.summary.Top)
		m.log.Info("summary loaded", "generated_at", msg.summary.GeneratedAt, "entries", len(msg.summary.Top))
		return m, nil

	case tickerSelectedMsg:
		if msg.ticker == m.selected {
			return m, nil
		}
		m.selected = msg.ticker
		return m, m.detail.selectTicker(msg.ticker)

	case detailLoadedMsg:
		m.detail.apply(msg)
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	generatedAt := ""
	meta := ""
	if m.summary != nil {
		generatedAt = m.summary.GeneratedAt
		meta = fmt.Sprintf("    results: %s (attempted %s)",
			dashboard.FormatInt(m.summary.CountResults),
			dashboard.FormatInt(m.summary.CountTotal))
	}
	headerText := fmt.Sprintf(" Daily Scan  %s%s ", generatedAt, meta)
	headerBar := headerBarStyle.Render(padOrTrunc(headerText, m.width))

	content := lipgloss.JoinHorizontal(lipgloss.Top, m.table.View(), " ", m.detail.View())

	footerText := " q quit  tab filter/top-n  up/dn move  enter select  esc clear  pgup/dn scroll"
	footerBar := footerBarStyle.Render(padOrTrunc(footerText, m.width))

	return headerBar + "\n" + content + "\n" + footerBar
}
