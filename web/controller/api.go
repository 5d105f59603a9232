package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/partyhub/party-panel/logger"
	"github.com/partyhub/party-panel/model"
	"github.com/partyhub/party-panel/web/entity"
	"github.com/partyhub/party-panel/web/middleware"
	"github.com/partyhub/party-panel/web/service"
)

// APIController serves the panel/api actions the pages submit to. Every
// answer is an entity.Msg.
type APIController struct {
	BaseController

	partyService *service.PartyService
	actorService *service.ActorService
}

func NewAPIController(g *gin.RouterGroup, partyService *service.PartyService, actorService *service.ActorService) *APIController {
	a := &APIController{
		partyService: partyService,
		actorService: actorService,
	}
	a.initRouter(g)
	return a
}

func (a *APIController) initRouter(g *gin.RouterGroup) {
	parties := g.Group("/parties", middleware.PermissionRequired(model.ManageParties))
	parties.POST("/save", a.saveParty)
	parties.POST("/:id/del", a.delParty)
	parties.POST("/:id/status", a.setPartyStatus)

	actors := g.Group("/actors", middleware.PermissionRequired(model.ManageActors))
	actors.POST("/save", a.saveActor)
	actors.POST("/:id/del", a.delActor)

	g.GET("/logs", middleware.AdminOnly(), a.logs)
}

// logs returns the newest buffered log lines, newest first.
func (a *APIController) logs(c *gin.Context) {
	count := queryInt(c, "count", 100)
	if count <= 0 || count > 500 {
		count = 100
	}
	jsonMsgObj(c, "", logger.GetLogs(count, c.DefaultQuery("level", "info")), nil)
}

// formId reads the id field of a submitted form, 0 for a new resource.
func formId(c *gin.Context) int {
	id, err := strconv.Atoi(c.PostForm("id"))
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// saveParty creates or updates a party. Creation takes two posts: the first
// validates and answers with the summary to confirm, the second carries
// confirm=true and creates.
func (a *APIController) saveParty(c *gin.Context) {
	var form entity.PartyForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Debug("party form:", err)
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "common.invalidFormData"))
		return
	}
	id := formId(c)

	if id == 0 && !form.Confirm {
		in, err := a.partyService.Preview(&form)
		jsonMsgObj(c, "", gin.H{"confirm": true, "party": in}, err)
		return
	}

	party, err := a.partyService.Save(c.Request.Context(), a.token(c), id, &form)
	jsonMsgObj(c, I18nWeb(c, "party.saved"), party, err)
}

func (a *APIController) delParty(c *gin.Context) {
	id, ok := a.paramId(c, "id")
	if !ok {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "common.error"))
		return
	}
	err := a.partyService.Delete(c.Request.Context(), a.token(c), id)
	jsonMsg(c, I18nWeb(c, "party.deleted"), err)
}

// setPartyStatus answers with the party carrying its new status so the page
// can update the row in place.
func (a *APIController) setPartyStatus(c *gin.Context) {
	id, ok := a.paramId(c, "id")
	if !ok {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "common.error"))
		return
	}
	status := model.PartyStatus(c.PostForm("status"))
	party, err := a.partyService.ChangeStatus(c.Request.Context(), a.token(c), id, status)
	if err != nil {
		jsonMsgObj(c, "", nil, err)
		return
	}
	actions := make([]gin.H, 0, 2)
	for _, t := range party.Status.Actions() {
		actions = append(actions, gin.H{"status": t.Target, "label": I18nWeb(c, t.I18nKey())})
	}
	jsonMsgObj(c, I18nWeb(c, "party.statusUpdated"), gin.H{
		"party":   party,
		"label":   I18nWeb(c, party.Status.I18nKey()),
		"actions": actions,
	}, nil)
}

func (a *APIController) saveActor(c *gin.Context) {
	var form entity.ActorForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Debug("actor form:", err)
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "common.invalidFormData"))
		return
	}
	actor, err := a.actorService.Save(c.Request.Context(), a.token(c), formId(c), &form)
	jsonMsgObj(c, I18nWeb(c, "actor.saved"), actor, err)
}

func (a *APIController) delActor(c *gin.Context) {
	id, ok := a.paramId(c, "id")
	if !ok {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "common.error"))
		return
	}
	err := a.actorService.Delete(c.Request.Context(), a.token(c), id)
	jsonMsg(c, I18nWeb(c, "actor.deleted"), err)
}
