package kbscrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const samplePage = `<!DOCTYPE html>
<html><body>
<nav>
<a href="/a">Windows 11, version 23H2</a>
<a href="/b">September 10, 2024&#8212;KB5043076 (OS Builds 22621.4169 and 22631.4169)</a>
<a href="/c">August 13, 2024&#8212;KB5041585 (OS Builds 22621.4037 and 22631.4037)</a>
<a href="/d">August 27, 2024&#8212;KB5041587 (OS Builds 22621.4112 and 22631.4112) Preview</a>
<a href="/e">September 10, 2024&#8212;KB5043080 (OS Build 26100.1742)</a>
<a href="/f">End of servicing</a>
</nav>
</body></html>`

func TestParseEntry(t *testing.T) {
	entry, ok := ParseEntry("August 13, 2024—KB5041585 (OS Builds 22621.4037 and 22631.4037)")
	if !ok {
		t.Fatal("expected entry to parse")
	}
	if entry.KB != "KB5041585" {
		t.Errorf("KB = %s", entry.KB)
	}
	if !entry.Released.Equal(time.Date(2024, time.August, 13, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("released = %v", entry.Released)
	}
	if len(entry.Builds) != 2 || entry.Builds[0] != 22621 || entry.Builds[1] != 22631 {
		t.Errorf("builds = %v", entry.Builds)
	}
	if entry.Revision != 4037 {
		t.Errorf("revision = %d", entry.Revision)
	}
}

func TestParseEntrySingleBuild(t *testing.T) {
	entry, ok := ParseEntry("September 10, 2024 - KB5043080 (OS Build 26100.1742)")
	if !ok {
		t.Fatal("expected entry to parse")
	}
	if len(entry.Builds) != 1 || entry.Builds[0] != 26100 {
		t.Errorf("builds = %v", entry.Builds)
	}
}

func TestParseEntryRejectsNonEntries(t *testing.T) {
	for _, text := range []string{
		"Windows 11, version 23H2",
		"End of servicing",
		"KB5043076",
		"",
	} {
		if _, ok := ParseEntry(text); ok {
			t.Errorf("ParseEntry(%q) should not parse", text)
		}
	}
}

func TestParsePage(t *testing.T) {
	entries := ParsePage(strings.NewReader(samplePage))
	if len(entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(entries))
	}
}

func TestLatestPicksNewestForBuild(t *testing.T) {
	entries := ParsePage(strings.NewReader(samplePage))

	latest, ok := Latest(entries, 22631)
	if !ok {
		t.Fatal("expected entry for 22631")
	}
	if latest.KB != "KB5043076" {
		t.Errorf("latest = %s, want KB5043076", latest.KB)
	}

	latest, ok = Latest(entries, 26100)
	if !ok {
		t.Fatal("expected entry for 26100")
	}
	if latest.KB != "KB5043080" {
		t.Errorf("latest = %s, want KB5043080", latest.KB)
	}

	if _, ok := Latest(entries, 19045); ok {
		t.Error("no entry should match 19045")
	}
}

func TestHistoryURL(t *testing.T) {
	if HistoryURL(19045) != windows10HistoryURL {
		t.Error("19045 should use the Windows 10 page")
	}
	if HistoryURL(22631) != windows11HistoryURL {
		t.Error("22631 should use the Windows 11 page")
	}
}

func TestLatestKBEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	entry, err := LatestKB(context.Background(), srv.Client(), srv.URL, 22631)
	if err != nil {
		t.Fatal(err)
	}
	if entry.KB != "KB5043076" {
		t.Errorf("KB = %s", entry.KB)
	}
}

func TestLatestKBUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := LatestKB(context.Background(), srv.Client(), srv.URL, 22631)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}

	// Empty page is also unavailable
	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><a>nothing here</a></body></html>"))
	}))
	defer srv2.Close()

	_, err = LatestKB(context.Background(), srv2.Client(), srv2.URL, 22631)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
