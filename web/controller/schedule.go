package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/partyhub/party-panel/model"
	"github.com/partyhub/party-panel/web/entity"
	"github.com/partyhub/party-panel/web/middleware"
	"github.com/partyhub/party-panel/web/service"
	"github.com/partyhub/party-panel/web/session"
)

// ScheduleController renders the schedule and the signed-in actor's own
// parties.
type ScheduleController struct {
	BaseController

	partyService *service.PartyService
}

func NewScheduleController(g *gin.RouterGroup, partyService *service.PartyService) *ScheduleController {
	a := &ScheduleController{partyService: partyService}
	g.GET("/schedule", middleware.PermissionRequired(model.AccessSchedule), a.schedule)
	g.GET("/my-parties", a.myParties)
	return a
}

func (a *ScheduleController) schedule(c *gin.Context) {
	filter := entity.ScheduleFilter{Status: entity.StatusAll}
	_ = c.ShouldBindQuery(&filter)
	if filter.Status == "" {
		filter.Status = entity.StatusAll
	}

	data := gin.H{
		"filter":     filter,
		"statuses":   model.Statuses,
		"can_manage": session.Current(c).Can(model.ManageParties),
	}
	parties, err := a.partyService.Schedule(c.Request.Context(), a.token(c), filter)
	if err != nil {
		renderError(c, "schedule.html", "pages.schedule.title", data)
		return
	}
	data["parties"] = parties
	html(c, "schedule.html", "pages.schedule.title", data)
}

func (a *ScheduleController) myParties(c *gin.Context) {
	snap := session.Current(c)
	parties, err := a.partyService.MyParties(c.Request.Context(), a.token(c), snap.Actor())
	if err != nil {
		renderError(c, "my_parties.html", "pages.myParties.title", nil)
		return
	}
	html(c, "my_parties.html", "pages.myParties.title", gin.H{"parties": parties})
}
