package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
)

// NewCookieStore keeps the session values in the signed cookie itself.
func NewCookieStore(keyPairs ...[]byte) sessions.Store {
	return cookie.NewStore(keyPairs...)
}
