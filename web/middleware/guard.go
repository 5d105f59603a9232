package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/partyhub/party-panel/model"
	"github.com/partyhub/party-panel/web/entity"
	"github.com/partyhub/party-panel/web/locale"
	"github.com/partyhub/party-panel/web/session"
)

const (
	// LandingRoute is where authenticated users are sent when they hit a
	// page they may not or need not see.
	LandingRoute = "dashboard"
	LoginRoute   = "login"
)

// IsAjax reports an XMLHttpRequest, which gets a JSON envelope instead of a
// redirect.
func IsAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

// denial is how a guard answers a request it refuses.
type denial func(c *gin.Context)

// redirectOr sends page requests to route and answers AJAX requests with
// status and the translated msgKey.
func redirectOr(route string, status int, msgKey string) denial {
	return func(c *gin.Context) {
		if IsAjax(c) {
			c.AbortWithStatusJSON(status, entity.Msg{
				Success: false,
				Msg:     locale.T(c, msgKey),
			})
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+route)
		c.Abort()
	}
}

func guard(allow func(session.Snapshot) bool, deny denial) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allow(session.Current(c)) {
			deny(c)
			return
		}
		c.Next()
	}
}

// PublicOnly keeps authenticated users away from the login and register
// pages.
func PublicOnly() gin.HandlerFunc {
	return guard(
		func(s session.Snapshot) bool { return !s.Authenticated },
		redirectOr(LandingRoute, http.StatusForbidden, "pages.login.alreadyLoggedIn"),
	)
}

// Authenticated sends guests to the login page.
func Authenticated() gin.HandlerFunc {
	return guard(
		func(s session.Snapshot) bool { return s.Authenticated },
		redirectOr(LoginRoute, http.StatusUnauthorized, "pages.login.loginAgain"),
	)
}

// AdminOnly admits administrators, the users without an actor profile.
// Guests are sent to login like PermissionRequired does.
func AdminOnly() gin.HandlerFunc {
	loginAgain := redirectOr(LoginRoute, http.StatusUnauthorized, "pages.login.loginAgain")
	denied := redirectOr(LandingRoute, http.StatusForbidden, "common.forbidden")
	return func(c *gin.Context) {
		snap := session.Current(c)
		switch {
		case !snap.Authenticated:
			loginAgain(c)
		case !snap.IsAdmin():
			denied(c)
		default:
			c.Next()
		}
	}
}

// PermissionRequired lets administrators through, and actors whose profile
// grants perm. Everyone else lands on the dashboard without an error page.
// It expects Authenticated to run first; guests are sent to login.
func PermissionRequired(perm model.Permission) gin.HandlerFunc {
	loginAgain := redirectOr(LoginRoute, http.StatusUnauthorized, "pages.login.loginAgain")
	denied := redirectOr(LandingRoute, http.StatusForbidden, "common.forbidden")
	return func(c *gin.Context) {
		snap := session.Current(c)
		switch {
		case !snap.Authenticated:
			loginAgain(c)
		case !snap.Can(perm):
			denied(c)
		default:
			c.Next()
		}
	}
}
