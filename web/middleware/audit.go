package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/partyhub/party-panel/logger"
	"github.com/partyhub/party-panel/util/metrics"
	"github.com/partyhub/party-panel/web/session"
)

// AuditEntry describes one panel action, taken from the matched route.
type AuditEntry struct {
	Resource   string
	Action     string
	ResourceId string
}

// auditEntry splits a route such as /panel/api/parties/:id/status into
// resource "parties", action "status" and the id parameter.
func auditEntry(c *gin.Context, prefix string) (AuditEntry, bool) {
	route := c.FullPath()
	if !strings.HasPrefix(route, prefix) {
		return AuditEntry{}, false
	}
	parts := strings.Split(strings.Trim(strings.TrimPrefix(route, prefix), "/"), "/")
	if len(parts) < 2 || parts[0] == "" {
		return AuditEntry{}, false
	}
	return AuditEntry{
		Resource:   parts[0],
		Action:     parts[len(parts)-1],
		ResourceId: c.Param("id"),
	}, true
}

// AuditMiddleware logs every action posted under prefix together with the
// user who made it. The outcome is the envelope's success flag as set by
// the handler through c.Set("audit_ok", bool); without it the HTTP status
// decides.
func AuditMiddleware(prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" {
			c.Next()
			return
		}
		c.Next()

		entry, ok := auditEntry(c, prefix)
		if !ok {
			return
		}

		result := "success"
		if v, set := c.Get("audit_ok"); set {
			if okv, _ := v.(bool); !okv {
				result = "failure"
			}
		} else if c.Writer.Status() >= 400 {
			result = "failure"
		}
		metrics.PanelActionsTotal.WithLabelValues(entry.Resource, entry.Action, result).Inc()

		user := "-"
		if u := session.Current(c).User; u != nil {
			user = u.Username
		}
		logger.Infof("audit: user=%s action=%s resource=%s id=%s ip=%s result=%s",
			user, entry.Action, entry.Resource, entry.ResourceId, c.ClientIP(), result)
	}
}
