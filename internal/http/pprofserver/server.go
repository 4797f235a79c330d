// Package pprofserver serves runtime profiles on a separate listener.
package pprofserver

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const realm = `Basic realm="cargaviva-debug"`

// Credentials guard profile access from non-loopback clients.
type Credentials struct {
	User string
	Pass string
}

// Handler mounts the chi profiler under /debug.
func Handler(creds Credentials) http.Handler {
	r := chi.NewRouter()
	r.Use(guard(creds))
	r.Mount("/debug", middleware.Profiler())
	return r
}

// guard lets loopback clients through and requires basic auth otherwise.
// Without configured credentials remote access is refused.
func guard(creds Credentials) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if fromLoopback(r.RemoteAddr) || creds.match(r) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("WWW-Authenticate", realm)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		})
	}
}

func (c Credentials) match(r *http.Request) bool {
	if c.User == "" || c.Pass == "" {
		return false
	}
	user, pass, ok := r.BasicAuth()
	if !ok {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(c.User)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(c.Pass)) == 1
	return userOK && passOK
}

func fromLoopback(remoteAddr string) bool {
	host := strings.TrimSpace(remoteAddr)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
