package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const summaryBody = `{
	"generated_at": "2024-01-01T06:00:00Z",
	"count_total": 1,
	"count_results": 1,
	"failed_count": 0,
	"top": [{"ticker": "AAPL", "score_0_100": 80, "last_close": 190.1, "avg_vol20": 5e7, "explanation": "strong"}]
}`

const detailBody = `{
	"history": [{"Date": "2024-01-01", "Close": 188}, {"Date": "2024-01-02", "Close": 190.1}],
	"indicators": {"score_0_100": 80, "explanation": "strong", "last_close": 190.1, "avg_vol20": 5e7}
}`

func TestSummary(t *testing.T) {
	var gotPath, gotCacheControl string
	var gotBust bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCacheControl = r.Header.Get("Cache-Control")
		gotBust = r.URL.Query().Get("_") != ""
		w.Write([]byte(summaryBody))
	}))
	defer srv.Close()

	l := New(srv.URL, 5*time.Second)
	s, err := l.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() error: %v", err)
	}
	if gotPath != "/top_picks.json" {
		t.Errorf("path = %q, want /top_picks.json", gotPath)
	}
	if gotCacheControl != "no-cache" {
		t.Errorf("Cache-Control = %q, want no-cache", gotCacheControl)
	}
	if !gotBust {
		t.Error("expected cache-busting query parameter")
	}
	if s.GeneratedAt != "2024-01-01T06:00:00Z" {
		t.Errorf("GeneratedAt = %q", s.GeneratedAt)
	}
	if len(s.Top) != 1 || s.Top[0].Ticker != "AAPL" {
		t.Errorf("Top = %+v", s.Top)
	}
}

func TestDetail(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(detailBody))
	}))
	defer srv.Close()

	l := New(srv.URL, 5*time.Second)
	d, err := l.Detail(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Detail() error: %v", err)
	}
	if gotPath != "/data/AAPL.json" {
		t.Errorf("path = %q, want /data/AAPL.json", gotPath)
	}
	if len(d.History) != 2 || d.History[1].Close != 190.1 {
		t.Errorf("History = %+v", d.History)
	}
	if d.Indicator("explanation") != "strong" {
		t.Errorf("explanation = %q", d.Indicator("explanation"))
	}
}

func TestDetailEmptyTickerNoRequest(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	l := New(srv.URL, 5*time.Second)
	if _, err := l.Detail(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty ticker")
	}
	if requests != 0 {
		t.Errorf("requests = %d, want 0", requests)
	}
}

func TestHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	l := New(srv.URL, 5*time.Second)
	if _, err := l.Detail(context.Background(), "XXX"); err == nil {
		t.Fatal("expected error for 404 response")
	} else if !strings.Contains(err.Error(), "status 404") {
		t.Errorf("error = %v, want status 404", err)
	}
}

func TestMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"generated_at": `))
	}))
	defer srv.Close()

	l := New(srv.URL, 5*time.Second)
	if _, err := l.Summary(context.Background()); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestNetworkError(t *testing.T) {
	// A closed server produces a transport-level failure.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	l := New(srv.URL, time.Second)
	if _, err := l.Summary(context.Background()); err == nil {
		t.Fatal("expected transport error")
	}
}
