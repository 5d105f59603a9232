package controller

import (
	"errors"
	"net/http"
	"text/template"

	"github.com/gin-gonic/gin"
	"github.com/partyhub/party-panel/logger"
	"github.com/partyhub/party-panel/model"
	"github.com/partyhub/party-panel/remote"
	"github.com/partyhub/party-panel/util/metrics"
	"github.com/partyhub/party-panel/web/entity"
	"github.com/partyhub/party-panel/web/middleware"
	"github.com/partyhub/party-panel/web/session"
)

// IndexController handles the public pages: login, register, logout and the
// language switch.
type IndexController struct {
	BaseController

	sessions *session.Manager
	limit    gin.HandlerFunc
}

// NewIndexController creates a new IndexController and initializes its routes.
// limit, when set, throttles the login and register posts.
func NewIndexController(g *gin.RouterGroup, sessions *session.Manager, limit gin.HandlerFunc) *IndexController {
	a := &IndexController{sessions: sessions, limit: limit}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/logout", a.logout)
	g.POST("/lang", a.setLanguage)

	public := g.Group("/", middleware.PublicOnly())
	public.GET("/login", a.loginPage)
	public.GET("/register", a.registerPage)
	public.POST("/login", a.throttled(a.login)...)
	public.POST("/register", a.throttled(a.register)...)
}

func (a *IndexController) throttled(h gin.HandlerFunc) []gin.HandlerFunc {
	if a.limit == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{a.limit, h}
}

// index sends everyone to the dashboard; its guard decides from there.
func (a *IndexController) index(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+middleware.LandingRoute)
}

func (a *IndexController) loginPage(c *gin.Context) {
	html(c, "login.html", "pages.login.title", nil)
}

func (a *IndexController) registerPage(c *gin.Context) {
	html(c, "register.html", "pages.register.title", nil)
}

// authFailure turns a failed login or registration into the message shown.
func authFailure(c *gin.Context, err error, rejectedKey string) string {
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsValidation() {
			return I18nWeb(c, "common.validation")
		}
		if apiErr.IsUnauthorized() || apiErr.Status == http.StatusBadRequest {
			return I18nWeb(c, rejectedKey)
		}
	}
	return I18nWeb(c, "common.error")
}

func (a *IndexController) login(c *gin.Context) {
	var form model.Credentials
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}

	safeUser := template.HTMLEscapeString(form.Username)
	if _, err := a.sessions.Login(c, form); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("login", "failure").Inc()
		logger.Warningf("login failed for \"%s\", IP: \"%s\": %v", safeUser, getRemoteIp(c), err)
		pureJsonMsg(c, http.StatusOK, false, authFailure(c, err, "pages.login.toasts.wrongUsernameOrPassword"))
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues("login", "success").Inc()
	logger.Infof("%s logged in successfully, Ip Address: %s", safeUser, getRemoteIp(c))
	jsonMsg(c, I18nWeb(c, "pages.login.toasts.successLogin"), nil)
}

func (a *IndexController) register(c *gin.Context) {
	var form model.Registration
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.register.toasts.invalidFormData"))
		return
	}

	safeUser := template.HTMLEscapeString(form.Username)
	if _, err := a.sessions.Register(c, form); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("register", "failure").Inc()
		logger.Warningf("registration failed for \"%s\": %v", safeUser, err)

		var apiErr *remote.APIError
		if errors.As(err, &apiErr) && apiErr.IsValidation() {
			c.JSON(http.StatusOK, entity.Msg{
				Success: false,
				Msg:     I18nWeb(c, "common.validation"),
				Obj:     apiErr.Messages(),
			})
			return
		}
		pureJsonMsg(c, http.StatusOK, false, authFailure(c, err, "pages.register.toasts.rejected"))
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues("register", "success").Inc()
	logger.Infof("%s registered", safeUser)
	jsonMsg(c, I18nWeb(c, "pages.register.toasts.success"), nil)
}

func (a *IndexController) logout(c *gin.Context) {
	if user := session.Current(c).User; user != nil {
		logger.Infof("%s logged out successfully", template.HTMLEscapeString(user.Username))
	}
	if _, err := a.sessions.Logout(c); err != nil {
		logger.Warning("Unable to save session after clearing:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+middleware.LoginRoute)
}

// setLanguage stores the chosen UI language and sends the browser back.
func (a *IndexController) setLanguage(c *gin.Context) {
	lang := c.PostForm("lang")
	if _, err := a.sessions.SetLanguage(c, lang); err != nil {
		logger.Warning("set language:", err)
		if isAjax(c) {
			pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "common.error"))
			return
		}
	}
	if isAjax(c) {
		jsonMsg(c, "", nil)
		return
	}
	c.Redirect(http.StatusSeeOther, localReferer(c))
}
