package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pfrederiksen/playoff-picture/internal/logger"
	"github.com/pfrederiksen/playoff-picture/internal/page"
)

func testScraper() *Scraper {
	return New(Options{
		Timeout:       2 * time.Second,
		SettleTimeout: 500 * time.Millisecond,
		PollInterval:  5 * time.Millisecond,
	}, logger.Discard())
}

func TestDocument(t *testing.T) {
	tests := []struct {
		name        string
		htmlContent string
		statusCode  int
		wantError   bool
		wantRows    int
	}{
		{
			name:        "successful fetch",
			htmlContent: `<table><tr class="row"><td>1</td></tr><tr class="row"><td>2</td></tr></table>`,
			statusCode:  http.StatusOK,
			wantRows:    2,
		},
		{
			name:       "HTTP error",
			statusCode: http.StatusNotFound,
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
					t.Errorf("User-Agent = %q, want a browser user agent", ua)
				}
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.htmlContent))
			}))
			defer server.Close()

			doc, err := testScraper().Document(context.Background(), server.URL)
			if tt.wantError {
				if !errors.Is(err, ErrPageUnavailable) {
					t.Errorf("Document() error = %v, want ErrPageUnavailable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Document() unexpected error: %v", err)
			}
			if got := doc.Find("tr.row").Length(); got != tt.wantRows {
				t.Errorf("rows = %d, want %d", got, tt.wantRows)
			}
		})
	}
}

func TestDocument_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "standings.html")
	if err := os.WriteFile(path, []byte(`<div id="TableBase-AFC"></div>`), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := testScraper().Document(context.Background(), "file://"+path)
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if doc.Find("#TableBase-AFC").Length() != 1 {
		t.Error("expected the AFC table")
	}

	_, err = testScraper().Document(context.Background(), filepath.Join(t.TempDir(), "missing.html"))
	if !errors.Is(err, ErrPageUnavailable) {
		t.Errorf("missing file error = %v, want ErrPageUnavailable", err)
	}
}

func TestRender_PollsUntilReady(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.Write([]byte(`<div>Loading...</div>`))
			return
		}
		w.Write([]byte(`<div>Rank</div><div>1</div>`))
	}))
	defer server.Close()

	ready := func(d *page.Document) bool { return d.ContainsText("Rank") }
	doc, err := testScraper().Render(context.Background(), server.URL, ready)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !doc.ContainsText("Rank") {
		t.Error("Render() returned a document without the marker")
	}
	if n := atomic.LoadInt32(&hits); n < 3 {
		t.Errorf("server hit %d times, want at least 3", n)
	}
}

func TestRender_SettleTimeoutUsesLastDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<div>Loading...</div>`))
	}))
	defer server.Close()

	s := New(Options{SettleTimeout: 50 * time.Millisecond, PollInterval: 5 * time.Millisecond}, logger.Discard())
	doc, err := s.Render(context.Background(), server.URL, func(*page.Document) bool { return false })
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !doc.ContainsText("Loading") {
		t.Error("expected the last rendered document")
	}
}

func TestRender_StatusErrorIsNotRetried(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := testScraper().Render(context.Background(), server.URL, nil)
	if !errors.Is(err, ErrPageUnavailable) {
		t.Errorf("Render() error = %v, want ErrPageUnavailable", err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}
}

func TestRender_LocalDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playoffs.json")
	dump := `{"url":"https://www.nfl.com/standings/playoff-picture","elements":[{"tag":"h2","text":"ELIMINATED","top":900,"parent":-1}]}`
	if err := os.WriteFile(path, []byte(dump), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := testScraper().Render(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !doc.Positional || len(doc.Elements()) != 1 {
		t.Errorf("unexpected document: positional=%v elements=%d", doc.Positional, len(doc.Elements()))
	}
}

func TestIsRemote(t *testing.T) {
	tests := map[string]bool{
		"https://www.nfl.com/standings": true,
		"http://localhost:8080":         true,
		"file:///tmp/page.html":         false,
		"testdata/page.json":            false,
	}
	for target, want := range tests {
		if got := IsRemote(target); got != want {
			t.Errorf("IsRemote(%q) = %v, want %v", target, got, want)
		}
	}
}
