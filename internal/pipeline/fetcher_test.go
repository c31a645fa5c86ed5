package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/opportunities-radar/radar/internal/cache"
	"github.com/opportunities-radar/radar/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "radar-test/1.0",
		MaxBodyBytes: 2_000_000,
	}
}

func TestFetch(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig(), nil, nil, 0)

	body, err := f.Fetch(context.Background(), server.URL+"/page")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(body, "hello") {
		t.Errorf("body = %q", body)
	}
	if gotUA != "radar-test/1.0" {
		t.Errorf("user agent = %q", gotUA)
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig(), nil, nil, 0)

	if _, err := f.Fetch(context.Background(), server.URL+"/page"); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestFetch_RobotsDisallow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		w.Write([]byte("content"))
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig(), nil, nil, 0)

	if _, err := f.Fetch(context.Background(), server.URL+"/private/page"); err == nil {
		t.Error("disallowed path was fetched")
	}

	if _, err := f.Fetch(context.Background(), server.URL+"/public/page"); err != nil {
		t.Errorf("allowed path failed: %v", err)
	}
}

func TestFetch_CachedBody(t *testing.T) {
	var pageHits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		pageHits.Add(1)
		w.Write([]byte("cached content"))
	}))
	defer server.Close()

	bodyCache := cache.NewMemory(time.Minute, time.Minute)
	f := NewFetcher(testHTTPConfig(), nil, bodyCache, time.Minute)

	url := server.URL + "/page"
	for i := 0; i < 3; i++ {
		body, err := f.Fetch(context.Background(), url)
		if err != nil {
			t.Fatalf("Fetch %d: %v", i, err)
		}
		if body != "cached content" {
			t.Fatalf("body = %q", body)
		}
	}

	if n := pageHits.Load(); n != 1 {
		t.Errorf("origin hit %d times, want 1", n)
	}
}

func TestFetch_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.MaxBodyBytes = 64
	f := NewFetcher(cfg, nil, nil, 0)

	body, err := f.Fetch(context.Background(), server.URL+"/page")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(body) != 64 {
		t.Errorf("body length = %d, want 64", len(body))
	}
}

type blockedWaiter struct{}

func (blockedWaiter) Wait(ctx context.Context, rawURL string) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestFetch_LimiterHonorsContext(t *testing.T) {
	f := NewFetcher(testHTTPConfig(), blockedWaiter{}, nil, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := f.Fetch(ctx, "http://example.invalid/page"); err == nil {
		t.Error("expected context error from blocked limiter")
	}
}
