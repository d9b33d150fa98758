package ui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"scandash/internal/chart"
	"scandash/internal/loader"
)

const testSummary = `{
	"generated_at": "2024-01-01T06:00:00Z",
	"count_total": 503,
	"count_results": 498,
	"failed_count": 5,
	"top": [{"ticker": "AAPL", "score_0_100": 80, "last_close": 190.1, "avg_vol20": 5e7, "explanation": "strong"}]
}`

func newTestApp(t *testing.T, handler http.HandlerFunc) Model {
	t.Helper()
	chart.Setup()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	m := New(loader.New(srv.URL, time.Second), discardLogger(), 50)
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return sized.(Model)
}

func TestAppSummaryLoadedOnce(t *testing.T) {
	requests := 0
	m := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(testSummary))
	})

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init() must fetch the summary")
	}
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	if requests != 1 {
		t.Errorf("requests = %d, want exactly 1", requests)
	}
	view := m.View()
	if !strings.Contains(view, "2024-01-01T06:00:00Z") {
		t.Error("header missing generation timestamp")
	}
	if !strings.Contains(view, "results: 498 (attempted 503)") {
		t.Error("header missing scan counts")
	}
	if !strings.Contains(view, "AAPL") {
		t.Error("table missing summary rows")
	}
}

func TestAppSummaryErrorLeavesBlankHeader(t *testing.T) {
	m := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	updated, _ := m.Update(m.Init()())
	m = updated.(Model)

	view := m.View()
	if strings.Contains(view, "2024") {
		t.Error("header must stay blank on fetch failure")
	}
	if !strings.Contains(view, "no matching") {
		t.Error("table must stay empty on fetch failure")
	}
}

func TestAppSelectionDrivesDetail(t *testing.T) {
	m := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testSummary))
	})

	updated, cmd := m.Update(tickerSelectedMsg{ticker: "AAPL"})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected a detail fetch cmd")
	}
	if m.detail.state != stateLoading {
		t.Errorf("detail state = %d, want Loading", m.detail.state)
	}
	if m.selected != "AAPL" {
		t.Errorf("selected = %q", m.selected)
	}

	// Re-selecting the same ticker is not a ticker change; no new fetch.
	updated, cmd = m.Update(tickerSelectedMsg{ticker: "AAPL"})
	m = updated.(Model)
	if cmd != nil {
		t.Error("expected no re-fetch for the same ticker")
	}
}

func TestAppEscClearsSelection(t *testing.T) {
	m := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testSummary))
	})

	updated, _ := m.Update(tickerSelectedMsg{ticker: "AAPL"})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	if m.selected != "" {
		t.Errorf("selected = %q, want cleared", m.selected)
	}
	if m.detail.state != stateNoSelection {
		t.Errorf("detail state = %d, want NoSelection", m.detail.state)
	}
}
