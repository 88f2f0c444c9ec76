// Package kbscrape extracts the newest cumulative update KB from the
// Microsoft Windows update-history support pages. Strictly best-effort:
// every failure maps to ErrUnavailable and callers fall back to the
// built-in catalog.
package kbscrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/opsdeck/winprobe/internal/httputil"
	"github.com/opsdeck/winprobe/internal/logging"
)

var log = logging.L("kbscrape")

// ErrUnavailable means the page could not be fetched or yielded no usable
// update entries. Never fatal for a probe.
var ErrUnavailable = errors.New("kbscrape: update history unavailable")

// Update history index pages. The aka.ms links are redirect-stable.
const (
	windows10HistoryURL = "https://aka.ms/WindowsUpdateHistory"
	windows11HistoryURL = "https://aka.ms/Windows11UpdateHistory"
)

// maxBodyBytes caps how much of the support page is read.
const maxBodyBytes = 4 << 20

// Entry is one update-history item scraped from a page, e.g.
// "August 13, 2024—KB5041585 (OS Builds 22621.4037 and 22631.4037)".
type Entry struct {
	KB       string
	Released time.Time
	Builds   []int
	Revision int
	Raw      string
}

// HistoryURL picks the update-history page for an OS build line.
func HistoryURL(build int) string {
	if build >= 22000 {
		return windows11HistoryURL
	}
	return windows10HistoryURL
}

// entryPattern matches the navigation-link text used on update history
// pages. The em dash separates date from KB; older entries use a hyphen.
var entryPattern = regexp.MustCompile(`^(\w+ \d{1,2}, \d{4})\s*[—-]\s*KB(\d{7})\s*\(OS Builds? ([0-9. and,]+)\)`)

var buildPattern = regexp.MustCompile(`(\d{5})\.(\d+)`)

// ParseEntry parses one link text into an Entry. ok is false for link text
// that is not an update-history item (nav headers, "End of servicing"
// notices and the like).
func ParseEntry(text string) (Entry, bool) {
	text = strings.Join(strings.Fields(text), " ")
	m := entryPattern.FindStringSubmatch(text)
	if m == nil {
		return Entry{}, false
	}

	released, err := time.Parse("January 2, 2006", m[1])
	if err != nil {
		return Entry{}, false
	}

	entry := Entry{
		KB:       "KB" + m[2],
		Released: released.UTC(),
		Raw:      text,
	}

	for _, bm := range buildPattern.FindAllStringSubmatch(m[3], -1) {
		build, err := strconv.Atoi(bm[1])
		if err != nil {
			continue
		}
		entry.Builds = append(entry.Builds, build)
		if rev, err := strconv.Atoi(bm[2]); err == nil && rev > entry.Revision {
			entry.Revision = rev
		}
	}
	if len(entry.Builds) == 0 {
		return Entry{}, false
	}
	return entry, true
}

// ParsePage tokenizes the support page and collects every update-history
// entry found in anchor text.
func ParsePage(r io.Reader) []Entry {
	var entries []Entry

	tokenizer := html.NewTokenizer(io.LimitReader(r, maxBodyBytes))
	inAnchor := false
	var anchorText strings.Builder

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return entries
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if string(name) == "a" {
				inAnchor = true
				anchorText.Reset()
			}
		case html.TextToken:
			if inAnchor {
				anchorText.Write(tokenizer.Text())
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if string(name) == "a" && inAnchor {
				inAnchor = false
				if entry, ok := ParseEntry(anchorText.String()); ok {
					entries = append(entries, entry)
				}
			}
		}
	}
}

// Latest returns the newest entry applicable to the given OS build line.
func Latest(entries []Entry, build int) (Entry, bool) {
	var best Entry
	found := false
	for _, e := range entries {
		for _, b := range e.Builds {
			if b != build {
				continue
			}
			if !found || e.Released.After(best.Released) {
				best = e
				found = true
			}
		}
	}
	return best, found
}

// Fetch downloads and parses the update-history page for a build line.
// url overrides the default page when non-empty.
func Fetch(ctx context.Context, client *http.Client, url string, build int) ([]Entry, error) {
	if url == "" {
		url = HistoryURL(build)
	}

	headers := http.Header{}
	headers.Set("User-Agent", "winprobe/1.0")
	headers.Set("Accept", "text/html")

	resp, err := httputil.Do(ctx, client, http.MethodGet, url, nil, headers, httputil.DefaultRetryConfig())
	if err != nil {
		log.Debug("update history fetch failed", "url", url, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	entries := ParsePage(resp.Body)
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries found", ErrUnavailable)
	}

	log.Debug("update history scraped", "url", url, "entries", len(entries))
	return entries, nil
}

// LatestKB fetches the history page and returns the newest KB for the
// build line.
func LatestKB(ctx context.Context, client *http.Client, url string, build int) (Entry, error) {
	entries, err := Fetch(ctx, client, url, build)
	if err != nil {
		return Entry{}, err
	}
	entry, ok := Latest(entries, build)
	if !ok {
		return Entry{}, fmt.Errorf("%w: no entry for build %d", ErrUnavailable, build)
	}
	return entry, nil
}
