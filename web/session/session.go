// Package session keeps the login state of panel users. The durable state is
// three fixed keys in a server-side session (accessToken, refreshToken and
// language); every request derives an immutable Snapshot from them once.
package session

import (
	"github.com/gin-gonic/gin"
	"github.com/partyhub/party-panel/model"
)

// Name is the session cookie name.
const Name = "party-panel"

const (
	keyAccessToken  = "accessToken"
	keyRefreshToken = "refreshToken"
	keyLanguage     = "language"

	snapshotKey = "SESSION_SNAPSHOT"
)

// Snapshot is the auth state of one request. It never changes after it is
// derived; mutations go through Manager and yield a new Snapshot.
type Snapshot struct {
	User          *model.User
	AccessToken   string
	RefreshToken  string
	Authenticated bool
	Language      string
}

// IsAdmin reports an authenticated user without an actor profile.
func (s Snapshot) IsAdmin() bool {
	return s.Authenticated && s.User.IsAdmin()
}

// Can reports whether the snapshot's user may use what p guards.
func (s Snapshot) Can(p model.Permission) bool {
	return s.Authenticated && model.Can(s.User, p)
}

// Actor returns the actor profile, nil for administrators and guests.
func (s Snapshot) Actor() *model.ActorProfile {
	if !s.Authenticated || s.User == nil {
		return nil
	}
	return s.User.ActorProfile
}

// Current returns the snapshot Load stored for this request, or an
// unauthenticated one when the middleware did not run.
func Current(c *gin.Context) Snapshot {
	if v, ok := c.Get(snapshotKey); ok {
		if snap, ok := v.(Snapshot); ok {
			return snap
		}
	}
	return Snapshot{}
}

// IsLogin reports whether the request is authenticated.
func IsLogin(c *gin.Context) bool {
	return Current(c).Authenticated
}

func setCurrent(c *gin.Context, snap Snapshot) {
	c.Set(snapshotKey, snap)
}

// WithSnapshot installs snap as the request's snapshot. Used where a request
// is authenticated by other means, and by tests.
func WithSnapshot(c *gin.Context, snap Snapshot) {
	setCurrent(c, snap)
}
