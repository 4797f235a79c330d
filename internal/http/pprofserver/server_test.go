package pprofserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func teapot() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func TestGuard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		creds    Credentials
		remote   string
		user     string
		pass     string
		wantCode int
	}{
		{"loopback needs no auth", Credentials{}, "127.0.0.1:12345", "", "", http.StatusTeapot},
		{"ipv6 loopback", Credentials{}, "[::1]:9000", "", "", http.StatusTeapot},
		{"remote without configured creds", Credentials{}, "8.8.8.8:54444", "u", "p", http.StatusUnauthorized},
		{"remote with wrong password", Credentials{User: "u", Pass: "p"}, "8.8.8.8:54444", "u", "WRONG", http.StatusUnauthorized},
		{"remote without auth header", Credentials{User: "u", Pass: "p"}, "8.8.8.8:54444", "", "", http.StatusUnauthorized},
		{"remote with correct creds", Credentials{User: "u", Pass: "p"}, "8.8.8.8:54444", "u", "p", http.StatusTeapot},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
			req.RemoteAddr = tt.remote
			if tt.user != "" {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			rr := httptest.NewRecorder()
			guard(tt.creds)(teapot()).ServeHTTP(rr, req)

			require.Equal(t, tt.wantCode, rr.Code)
			if tt.wantCode == http.StatusUnauthorized {
				require.Equal(t, realm, rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestFromLoopback(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"127.0.0.1:123": true,
		"127.0.0.1":     true,
		" 127.0.0.1 ":   true,
		"[::1]:123":     true,
		"8.8.8.8:1":     false,
		"not-an-ip:1":   false,
	}
	for in, want := range cases {
		require.Equal(t, want, fromLoopback(in), in)
	}
}

func TestHandler_ServesProfileIndexToLoopback(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	req.RemoteAddr = "127.0.0.1:5000"
	rr := httptest.NewRecorder()
	Handler(Credentials{}).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "goroutine")
}
