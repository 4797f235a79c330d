package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"cargaviva/internal/config"
	mw "cargaviva/internal/http/middleware"
)

type httpServersIn struct {
	dig.In

	Main  *http.Server
	Pprof *http.Server `name:"pprof_server" optional:"true"`
}

func buildHTTPContainer(t *testing.T, cfg *config.Config) *dig.Container {
	t.Helper()

	c, err := NewContainerBuilder().WithConfig(cfg).WithDBConnect(failingConnect).build(context.Background())
	require.NoError(t, err)
	return c
}

func TestRegisterHTTP_PprofDisabled_ReturnsNilPprofServer(t *testing.T) {
	t.Parallel()

	c := buildHTTPContainer(t, memoryConfig())
	err := c.Invoke(func(in httpServersIn) {
		require.NotNil(t, in.Main)
		require.Equal(t, ":8080", in.Main.Addr)
		require.Nil(t, in.Pprof)
	})
	require.NoError(t, err)
}

func TestRegisterHTTP_PprofEnabled_ProvidesPprofServer(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.Pprof = config.Pprof{Enabled: true, Addr: "127.0.0.1:6060", User: "u", Pass: "p"}

	c := buildHTTPContainer(t, cfg)
	err := c.Invoke(func(in httpServersIn) {
		require.NotNil(t, in.Main)
		require.NotNil(t, in.Pprof)
		require.Equal(t, "127.0.0.1:6060", in.Pprof.Addr)
		require.NotNil(t, in.Pprof.Handler)
	})
	require.NoError(t, err)
}

func TestRegisterHTTP_ServesLoadsAndMetrics(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.RateLimit.Burst = 1
	cfg.RateLimit.Rate = 0.001

	c := buildHTTPContainer(t, cfg)
	err := c.Invoke(func(srv *http.Server) {
		get := func(path string, withActor bool) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			if withActor {
				req.Header.Set(mw.HeaderUserID, "gen-1")
				req.Header.Set(mw.HeaderUserRole, "generator")
			}
			rr := httptest.NewRecorder()
			srv.Handler.ServeHTTP(rr, req)
			return rr
		}

		require.Equal(t, http.StatusOK, get("/loads/mine", true).Code)
		require.Equal(t, http.StatusTooManyRequests, get("/loads/mine", true).Code)
		require.Equal(t, http.StatusUnauthorized, get("/loads/mine", false).Code)

		rr := get("/metrics", false)
		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		require.Contains(t, body, "rate_limit_exceeded_total 1")
		require.Contains(t, body, `http_requests_total{method="GET"`)
		require.Contains(t, body, `status="429"}`)
	})
	require.NoError(t, err)
}
