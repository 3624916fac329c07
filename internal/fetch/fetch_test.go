package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Fonte A</title>
  <item>
    <title>Operadora Alfa compra hospital</title>
    <link>https://a.example/noticia-1</link>
    <description>Negócio amplia a rede própria.</description>
    <pubDate>Wed, 10 Dec 2025 09:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Telemedicina cresce no interior</title>
    <link>https://a.example/noticia-2</link>
  </item>
</channel>
</rss>`

func TestFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, feedXML)
	}))
	defer srv.Close()

	c := NewClient(Options{Timeout: 5 * time.Second})
	cands, err := c.Feed(context.Background(), srv.URL+"/feed")
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}

	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want 2", len(cands))
	}
	if cands[0].Title != "Operadora Alfa compra hospital" {
		t.Fatalf("title = %q", cands[0].Title)
	}
	if cands[0].URL != "https://a.example/noticia-1" {
		t.Fatalf("url = %q", cands[0].URL)
	}
	if cands[0].Summary != "Negócio amplia a rede própria." {
		t.Fatalf("summary = %q", cands[0].Summary)
	}
	want := time.Date(2025, time.December, 10, 9, 0, 0, 0, time.UTC)
	if !cands[0].Published.Equal(want) {
		t.Fatalf("published = %s, want %s", cands[0].Published, want)
	}
	if !cands[1].Published.IsZero() {
		t.Fatalf("item without pubDate must stay undated, got %s", cands[1].Published)
	}
}

func TestLinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="/n1">Operadora Alfa anuncia compra de hospital regional</a>
			<a href="/curta">Curta</a>
			<a href="/assine">Assine já a nossa newsletter para receber as notícias</a>
		</body></html>`)
	}))
	defer srv.Close()

	c := NewClient(Options{Timeout: 5 * time.Second, BlockedAnchorText: []string{"assine"}})
	cands, err := c.Links(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Links: %v", err)
	}

	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(cands), cands)
	}
	if cands[0].Title != "Operadora Alfa anuncia compra de hospital regional" {
		t.Fatalf("title = %q", cands[0].Title)
	}
	if cands[0].URL != srv.URL+"/n1" {
		t.Fatalf("url = %q", cands[0].URL)
	}
}

func TestPageCachesBodies(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, "<html>corpo</html>")
	}))
	defer srv.Close()

	c := NewClient(Options{Timeout: 5 * time.Second})

	for i := 0; i < 3; i++ {
		body, err := c.Page(context.Background(), srv.URL+"/artigo")
		if err != nil {
			t.Fatalf("Page: %v", err)
		}
		if body != "<html>corpo</html>" {
			t.Fatalf("body = %q", body)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("server hit %d times, want 1", got)
	}
}

func TestPageStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	c := NewClient(Options{Timeout: 5 * time.Second})
	if _, err := c.Page(context.Background(), srv.URL+"/morto"); err == nil {
		t.Fatal("non-200 page must error")
	}
}

func TestPageSendsUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	c := NewClient(Options{Timeout: 5 * time.Second})
	if _, err := c.Page(context.Background(), srv.URL); err != nil {
		t.Fatalf("Page: %v", err)
	}
	if got != userAgent {
		t.Fatalf("User-Agent = %q, want %q", got, userAgent)
	}
}
