package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"cargaviva/internal/logx"
)

type recordingLimiter struct {
	allow bool
	keys  []string
}

func (s *recordingLimiter) Allow(key string) bool {
	s.keys = append(s.keys, key)
	return s.allow
}

func okHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*calls++
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_Allows_RequestPassesToNext(t *testing.T) {
	t.Parallel()

	calls := 0
	lim := &recordingLimiter{allow: true}
	key := func(r *http.Request) string { return "actor:" + r.Header.Get("X-User-ID") }
	h := New(logx.Nop(), nil, lim, key).Handler()(okHandler(&calls))

	r := httptest.NewRequest(http.MethodGet, "http://example/loads/mine", nil)
	r.Header.Set("X-User-ID", "gen-1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, calls)
	require.Equal(t, []string{"actor:gen-1"}, lim.keys)
}

func TestMiddleware_Blocks_Returns429AndIncrementsCounter(t *testing.T) {
	t.Parallel()

	calls := 0
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ratelimit_denied_total",
		Help: "denied requests",
	})
	h := New(logx.Nop(), counter, &recordingLimiter{allow: false}, nil).Handler()(okHandler(&calls))

	r := httptest.NewRequest(http.MethodGet, "http://example/loads/available", nil)
	r.RemoteAddr = "1.2.3.4:5678"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, 0, calls)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.Equal(t, "1", w.Header().Get("Retry-After"))
	require.Equal(t, `{"error":"too many requests"}`, w.Body.String())
	require.Equal(t, float64(1), testutil.ToFloat64(counter))
}

func TestMiddleware_EmptyKeyFallsBackToClientIP(t *testing.T) {
	t.Parallel()

	calls := 0
	lim := &recordingLimiter{allow: true}
	h := New(nil, nil, lim, func(*http.Request) string { return "" }).Handler()(okHandler(&calls))

	r := httptest.NewRequest(http.MethodGet, "http://example/ping", nil)
	r.RemoteAddr = "10.0.0.7:4000"
	h.ServeHTTP(httptest.NewRecorder(), r)

	require.Equal(t, []string{"ip:10.0.0.7"}, lim.keys)
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	r.RemoteAddr = "not-a-hostport"
	require.Equal(t, "ip:not-a-hostport", ClientIP(r))

	r.RemoteAddr = ""
	require.Equal(t, "ip:unknown", ClientIP(r))
}

func TestNopLimiter(t *testing.T) {
	t.Parallel()
	require.True(t, NopLimiter{}.Allow("anything"))
}
