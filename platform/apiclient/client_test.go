package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"homegate_search/platform/apperr"
)

func TestGetJSONSendsQueryAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/geo/locations" {
			t.Errorf("expected /geo/locations, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("name") != "Zürich" {
			t.Errorf("expected decoded name Zürich, got %q", r.URL.Query().Get("name"))
		}
		_, _ = w.Write([]byte(`{"total": 3}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL + "/"}, nil)

	var out struct {
		Total int `json:"total"`
	}
	err := c.GetJSON(context.Background(), "geo_lookup", "/geo/locations", url.Values{"name": {"Zürich"}}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Total != 3 {
		t.Fatalf("expected total 3, got %d", out.Total)
	}
}

func TestPostJSONEncodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		if body["size"] != float64(20) {
			t.Errorf("expected size 20, got %v", body["size"])
		}
		_, _ = w.Write([]byte(`{"total": 12345678901234}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL}, nil)

	var out map[string]any
	if err := c.PostJSON(context.Background(), "search", "/search/listings", map[string]any{"size": 20}, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["total"] != json.Number("12345678901234") {
		t.Fatalf("expected total to be kept verbatim, got %#v", out["total"])
	}
}

func TestNonSuccessStatusIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL}, nil)

	var out map[string]any
	err := c.GetJSON(context.Background(), "get_listing", "/listings/listing/1", nil, &out)
	if !apperr.Is(err, apperr.KindTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if StatusCode(err) != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", StatusCode(err))
	}
	if out != nil {
		t.Fatalf("expected no result on failure, got %v", out)
	}
}

func TestNetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	c := New(Options{BaseURL: baseURL, Timeout: time.Second}, nil)

	err := c.GetJSON(context.Background(), "geo_lookup", "/geo/locations", nil, &map[string]any{})
	if !apperr.Is(err, apperr.KindTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if StatusCode(err) != 0 {
		t.Fatalf("expected no upstream status, got %d", StatusCode(err))
	}
}

func TestUndecodableBodyIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL}, nil)

	err := c.GetJSON(context.Background(), "search", "/search/listings", nil, &map[string]any{})
	if !apperr.Is(err, apperr.KindTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestRateLimiterHonoursContext(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, RateLimit: 0.001, Burst: 1}, nil)

	if err := c.GetJSON(context.Background(), "geo_lookup", "/x", nil, nil); err != nil {
		t.Fatalf("expected first call to pass the limiter, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := c.GetJSON(ctx, "geo_lookup", "/x", nil, nil)
	if !apperr.Is(err, apperr.KindTransport) {
		t.Fatalf("expected limiter wait to fail as transport error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one upstream call, got %d", calls)
	}
}
