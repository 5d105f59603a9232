package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/partyhub/party-panel/model"
	"github.com/partyhub/party-panel/web/service"
	"github.com/partyhub/party-panel/web/session"
)

// DashboardController renders the statistics page every signed-in user
// lands on.
type DashboardController struct {
	BaseController

	dashboardService *service.DashboardService
}

func NewDashboardController(g *gin.RouterGroup, dashboardService *service.DashboardService) *DashboardController {
	a := &DashboardController{dashboardService: dashboardService}
	g.GET("/dashboard", a.index)
	return a
}

func (a *DashboardController) index(c *gin.Context) {
	admin := session.Current(c).IsAdmin()
	stats, err := a.dashboardService.Stats(c.Request.Context(), a.token(c))
	if err != nil {
		renderError(c, "dashboard.html", "pages.dashboard.title", gin.H{
			"cards": (&model.DashboardStats{}).CardsFor(admin),
		})
		return
	}
	html(c, "dashboard.html", "pages.dashboard.title", gin.H{
		"cards": stats.CardsFor(admin),
		"stats": stats,
	})
}
