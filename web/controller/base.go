// Package controller provides the HTTP handlers of the party panel: the
// login and register pages, the permission-gated pages and the panel/api
// actions they call.
package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/partyhub/party-panel/web/locale"
	"github.com/partyhub/party-panel/web/session"
)

// BaseController provides what every controller needs from the request.
type BaseController struct{}

// I18nWeb translates name for the request's language.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	return locale.T(c, name, params...)
}

// token is the bearer token of the signed-in user.
func (a *BaseController) token(c *gin.Context) string {
	return session.Current(c).AccessToken
}

// paramId reads a numeric path parameter; false when it is not one.
func (a *BaseController) paramId(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
