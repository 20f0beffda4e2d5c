package handlers

import (
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

// NewSessionStore returns a cookie store whose values are signed with key.
// When key is empty a random one is generated, so pending flashes do not
// survive a restart.
func NewSessionStore(key []byte) *sessions.CookieStore {
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
	}
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}
