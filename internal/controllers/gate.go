package controllers

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"zoodash/internal/structures"
)

const (
	gateCookieName = "zoodash_session"
	gateTokenTTL   = 12 * time.Hour
)

// Gate tracks which browsers have gone through the login form. The backend
// session lives in the shared cookie jar, so without this every browser
// reaching the dashboard would ride the process-wide session. In kiosk mode
// (credentials in config) the gate is open to everyone.
type Gate struct {
	kiosk bool

	mu     sync.Mutex
	tokens map[string]time.Time
}

func NewGate(conf *structures.Config) *Gate {
	return &Gate{
		kiosk:  conf.Auth.Username != "",
		tokens: make(map[string]time.Time),
	}
}

func (g *Gate) Issue(w http.ResponseWriter) {
	token := uuid.NewString()

	g.mu.Lock()
	now := time.Now()
	for t, exp := range g.tokens {
		if exp.Before(now) {
			delete(g.tokens, t)
		}
	}
	g.tokens[token] = now.Add(gateTokenTTL)
	g.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     gateCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (g *Gate) Authorized(r *http.Request) bool {
	if g.kiosk {
		return true
	}
	cookie, err := r.Cookie(gateCookieName)
	if err != nil {
		return false
	}
	g.mu.Lock()
	exp, ok := g.tokens[cookie.Value]
	g.mu.Unlock()
	return ok && exp.After(time.Now())
}

func (g *Gate) Revoke(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(gateCookieName); err == nil {
		g.mu.Lock()
		delete(g.tokens, cookie.Value)
		g.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     gateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
