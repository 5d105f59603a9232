package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/partyhub/party-panel/logger"
	"github.com/partyhub/party-panel/model"
	"github.com/partyhub/party-panel/web/entity"
	"github.com/partyhub/party-panel/web/middleware"
	"github.com/partyhub/party-panel/web/service"
	"github.com/partyhub/party-panel/web/session"
)

// partyColumns are the sortable columns of the party table, in display
// order.
var partyColumns = []string{
	"date", "day", "time", "duration", "place", "event", "number_of_actors",
	"meeting_date", "meeting_time", "camera_man", "status",
}

// PartyController renders the party table and the party forms.
type PartyController struct {
	BaseController

	partyService *service.PartyService
	actorService *service.ActorService
	pageSize     int
}

func NewPartyController(g *gin.RouterGroup, partyService *service.PartyService, actorService *service.ActorService, pageSize int) *PartyController {
	a := &PartyController{
		partyService: partyService,
		actorService: actorService,
		pageSize:     pageSize,
	}
	a.initRouter(g)
	return a
}

func (a *PartyController) initRouter(g *gin.RouterGroup) {
	g.GET("/parties", middleware.PermissionRequired(model.AccessParties), a.list)

	manage := g.Group("/parties", middleware.PermissionRequired(model.ManageParties))
	manage.GET("/new", a.newParty)
	manage.GET("/:id/edit", a.editParty)
}

func (a *PartyController) list(c *gin.Context) {
	var filter entity.PartyFilter
	var sort entity.Sort
	if err := c.ShouldBindQuery(&filter); err != nil {
		logger.Debug("party filter:", err)
	}
	if err := c.ShouldBindQuery(&sort); err != nil {
		logger.Debug("party sort:", err)
	}

	data := gin.H{
		"filter":     filter,
		"statuses":   model.Statuses,
		"columns":    partyColumns,
		"filtered":   !filter.IsEmpty(),
		"can_manage": session.Current(c).Can(model.ManageParties),
	}

	list, err := a.partyService.List(c.Request.Context(), a.token(c), service.PartyQuery{
		Filter: filter,
		Sort:   sort,
		Page:   queryInt(c, "page", 1),
		Size:   a.pageSize,
	})
	if err != nil {
		renderError(c, "parties.html", "pages.parties.title", data)
		return
	}

	data["list"] = list
	data["pages"] = pageLinks(c, list.Page)
	data["sort_links"] = a.sortLinks(c, list.Query.Sort)
	html(c, "parties.html", "pages.parties.title", data)
}

// sortLinks maps every column to the URL that sorts by it next.
func (a *PartyController) sortLinks(c *gin.Context, current entity.Sort) map[string]string {
	links := make(map[string]string, len(partyColumns))
	for _, key := range partyColumns {
		next := current.Toggle(key)
		desc := ""
		if next.Desc {
			desc = "true"
		}
		links[key] = withQuery(c, map[string]string{"sort": next.Key, "desc": desc, "page": ""})
	}
	return links
}

// actorChoices lists the actors a party can be booked with. A user who may
// not list actors gets an empty choice instead of an error.
func (a *PartyController) actorChoices(c *gin.Context) []model.ActorProfile {
	actors, err := a.actorService.List(c.Request.Context(), a.token(c), entity.ActorFilter{},
		entity.TableSort{Key: "name", Dir: entity.SortAsc})
	if err != nil {
		return []model.ActorProfile{}
	}
	return actors
}

func (a *PartyController) newParty(c *gin.Context) {
	form := entity.PartyForm{NumberOfActors: 1, Songs: []string{""}}
	html(c, "party_form.html", "pages.parties.new", gin.H{
		"id":       0,
		"form":     form,
		"actors":   a.actorChoices(c),
		"statuses": model.Statuses,
	})
}

func (a *PartyController) editParty(c *gin.Context) {
	id, ok := a.paramId(c, "id")
	if !ok {
		redirect(c, "parties")
		return
	}
	data := gin.H{"id": id, "statuses": model.Statuses}

	party, err := a.partyService.Get(c.Request.Context(), a.token(c), id)
	if err != nil {
		renderError(c, "party_form.html", "pages.parties.edit", data)
		return
	}
	form := entity.PartyFormFrom(party)
	if len(form.Songs) == 0 {
		form.Songs = []string{""}
	}
	data["form"] = form
	data["actors"] = a.actorChoices(c)
	html(c, "party_form.html", "pages.parties.edit", data)
}
