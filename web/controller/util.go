package controller

import (
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/partyhub/party-panel/config"
	"github.com/partyhub/party-panel/web/entity"
	"github.com/partyhub/party-panel/web/locale"
	"github.com/partyhub/party-panel/web/middleware"
	"github.com/partyhub/party-panel/web/service"
	"github.com/partyhub/party-panel/web/session"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return strings.TrimSpace(ips[0])
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// auditKey carries the envelope's success flag to middleware.AuditMiddleware.
const auditKey = "audit_ok"

// jsonMsg sends a JSON response with a message and error status.
func jsonMsg(c *gin.Context, msg string, err error) {
	jsonMsgObj(c, msg, nil, err)
}

// jsonMsgObj sends the envelope. A failed form carries its field messages in
// obj; any other failure is the generic translated error.
func jsonMsgObj(c *gin.Context, msg string, obj any, err error) {
	m := entity.Msg{
		Obj: obj,
	}
	if err == nil {
		m.Success = true
		if msg != "" {
			m.Msg = msg
		}
		c.Set(auditKey, true)
		c.JSON(http.StatusOK, m)
		return
	}

	m.Success = false
	c.Set(auditKey, false)
	if ve, ok := service.AsValidation(err); ok {
		m.Msg = I18nWeb(c, "common.validation")
		m.Obj = ve.Messages
	} else {
		m.Msg = I18nWeb(c, "common.error")
		m.Obj = nil
	}
	c.JSON(http.StatusOK, m)
}

// pureJsonMsg sends a pure JSON message response with custom status code.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.Set(auditKey, success)
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// html renders a page with the layout data every template expects: the
// language and its direction, the navigation and the signed-in user.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	snap := session.Current(c)
	lang := c.GetString("lang")
	if lang == "" {
		lang = snap.Language
	}

	data["title"] = title
	data["lang"] = lang
	data["dir"] = locale.Dir(lang)
	data["user"] = snap.User
	data["is_admin"] = snap.IsAdmin()
	data["nav"] = entity.NavItems(snap.User)
	data["request_uri"] = c.Request.RequestURI
	data["current_path"] = strings.TrimPrefix(c.Request.URL.Path, c.GetString("base_path"))
	data["base_path"] = c.GetString("base_path")
	c.HTML(http.StatusOK, name, getContext(data))
}

// renderError shows the generic error inline on the page.
func renderError(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["error"] = I18nWeb(c, "common.error")
	html(c, name, title, data)
}

// getContext adds version and other context data to the provided gin.H.
func getContext(h gin.H) gin.H {
	a := gin.H{
		"cur_ver":  config.GetVersion(),
		"app_name": config.GetName(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}

// isAjax checks if the request is an AJAX request.
func isAjax(c *gin.Context) bool {
	return middleware.IsAjax(c)
}

// redirect sends the browser to a panel route.
func redirect(c *gin.Context, route string) {
	c.Redirect(http.StatusSeeOther, c.GetString("base_path")+route)
}

// localReferer returns the referring page when it is a panel page on this
// host, the panel root otherwise.
func localReferer(c *gin.Context) string {
	basePath := c.GetString("base_path")
	ref, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || ref.Path == "" {
		return basePath
	}
	if ref.Host != "" && ref.Host != c.Request.Host {
		return basePath
	}
	if !strings.HasPrefix(ref.Path, basePath) || strings.HasPrefix(ref.Path, "//") {
		return basePath
	}
	back := url.URL{Path: ref.Path, RawQuery: ref.RawQuery}
	return back.String()
}

// queryInt reads an integer query value, def when missing or malformed.
func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

// withQuery is the current URL with the given query values replaced. Empty
// values are removed.
func withQuery(c *gin.Context, set map[string]string) string {
	q := url.Values{}
	for k, v := range c.Request.URL.Query() {
		q[k] = v
	}
	for k, v := range set {
		if v == "" {
			q.Del(k)
		} else {
			q.Set(k, v)
		}
	}
	if enc := q.Encode(); enc != "" {
		return c.Request.URL.Path + "?" + enc
	}
	return c.Request.URL.Path
}

// PageLink is one entry of a pager.
type PageLink struct {
	Number int
	URL    string
	Active bool
}

func pageLinks[T any](c *gin.Context, p entity.Page[T]) []PageLink {
	links := make([]PageLink, 0, p.PageCount)
	for _, n := range p.Numbers() {
		links = append(links, PageLink{
			Number: n,
			URL:    withQuery(c, map[string]string{"page": strconv.Itoa(n)}),
			Active: n == p.Number,
		})
	}
	return links
}
