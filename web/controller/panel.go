package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/partyhub/party-panel/web/middleware"
	"github.com/partyhub/party-panel/web/service"
)

// Services are the resource services the panel pages use.
type Services struct {
	Parties   *service.PartyService
	Actors    *service.ActorService
	Dashboard *service.DashboardService
	PageSize  int
}

// PanelController mounts every signed-in page and the panel/api actions.
type PanelController struct {
	BaseController

	dashboardController *DashboardController
	partyController     *PartyController
	actorController     *ActorController
	scheduleController  *ScheduleController
	apiController       *APIController
}

func NewPanelController(g *gin.RouterGroup, s Services) *PanelController {
	a := &PanelController{}
	a.initRouter(g, s)
	return a
}

func (a *PanelController) initRouter(g *gin.RouterGroup, s Services) {
	pages := g.Group("/", middleware.Authenticated())

	a.dashboardController = NewDashboardController(pages, s.Dashboard)
	a.partyController = NewPartyController(pages, s.Parties, s.Actors, s.PageSize)
	a.actorController = NewActorController(pages, s.Actors)
	a.scheduleController = NewScheduleController(pages, s.Parties)
	api := g.Group("/panel/api")
	api.Use(middleware.AuditMiddleware(api.BasePath()), middleware.Authenticated())
	a.apiController = NewAPIController(api, s.Parties, s.Actors)
}
