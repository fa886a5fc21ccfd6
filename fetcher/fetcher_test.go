package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); !strings.Contains(got, "SEOPageAnalyzer") {
			t.Errorf("unexpected User-Agent %q", got)
		}
		w.Header().Set("Cache-Control", "max-age=60")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	result := NewClient().Fetch(context.Background(), server.URL)

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("status = %d", result.StatusCode)
	}
	if !strings.Contains(result.Content, "ok") {
		t.Errorf("content = %q", result.Content)
	}
	if result.Headers.Get("Cache-Control") != "max-age=60" {
		t.Error("response headers should be carried in the result")
	}
}

func TestFetchNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	result := NewClient().Fetch(context.Background(), server.URL+"/missing")

	if result.Success {
		t.Fatal("a 404 should not be a success")
	}
	if result.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", result.StatusCode)
	}
	if result.Error == "" {
		t.Error("expected a human-readable error")
	}
}

func TestFetchInvalidURL(t *testing.T) {
	result := NewClient().Fetch(context.Background(), "ht tp://bad url")

	if result.Success {
		t.Fatal("an unparseable URL should not succeed")
	}
	if result.Error == "" {
		t.Error("expected an error message")
	}
}

func TestFetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately, so the port refuses connections

	result := NewClient().Fetch(context.Background(), server.URL)

	if result.Success {
		t.Fatal("a refused connection should not succeed")
	}
	if result.Error == "" {
		t.Error("expected an error message")
	}
}

func TestFetchHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("late"))
	}))
	defer server.Close()

	result := NewClient().Fetch(ctx, server.URL)
	if result.Success {
		t.Fatal("a cancelled context should abort the fetch")
	}
}
