package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestIPLimitersGet(t *testing.T) {
	l := &ipLimiters{buckets: make(map[string]*ipBucket), rate: rate.Every(time.Second), burst: 2}

	first := l.get("10.0.0.1")
	if first == nil {
		t.Fatal("expected a limiter")
	}
	if l.get("10.0.0.1") != first {
		t.Fatal("same ip should reuse its limiter")
	}
	if l.get("10.0.0.2") == first {
		t.Fatal("different ips must not share a limiter")
	}

	if !first.Allow() || !first.Allow() {
		t.Fatal("burst of 2 should allow two requests")
	}
	if first.Allow() {
		t.Fatal("third request inside the window should be rejected")
	}
}

func TestIPLimitersSweep(t *testing.T) {
	l := &ipLimiters{buckets: make(map[string]*ipBucket), rate: rate.Every(time.Second), burst: 1}
	l.get("10.0.0.1")
	l.buckets["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	l.get("10.0.0.2")

	l.sweep(time.Minute)

	if _, ok := l.buckets["10.0.0.1"]; ok {
		t.Fatal("stale bucket should be swept")
	}
	if _, ok := l.buckets["10.0.0.2"]; !ok {
		t.Fatal("active bucket should survive the sweep")
	}
}

func TestCORSWhitelist(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := CORS([]string{"https://duel.example.com"})

	cases := []struct {
		name       string
		origin     string
		wantOrigin string
	}{
		{"whitelisted origin echoed", "https://duel.example.com", "https://duel.example.com"},
		{"unknown origin not echoed", "https://evil.example.com", ""},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodOptions, "/api/login", nil)
		c.Request.Header.Set("Origin", tc.origin)

		handler(c)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != tc.wantOrigin {
			t.Fatalf("%s: Allow-Origin = %q, want %q", tc.name, got, tc.wantOrigin)
		}
		if w.Code != http.StatusNoContent {
			t.Fatalf("%s: preflight status = %d, want 204", tc.name, w.Code)
		}
	}
}
