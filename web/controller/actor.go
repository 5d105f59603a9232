package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/partyhub/party-panel/model"
	"github.com/partyhub/party-panel/web/entity"
	"github.com/partyhub/party-panel/web/middleware"
	"github.com/partyhub/party-panel/web/service"
	"github.com/partyhub/party-panel/web/session"
)

var actorColumns = []string{"name", "family", "age", "role", "username", "parties_count"}

// ActorController renders the actor table, the actor forms and the parties
// of one actor.
type ActorController struct {
	BaseController

	actorService *service.ActorService
}

func NewActorController(g *gin.RouterGroup, actorService *service.ActorService) *ActorController {
	a := &ActorController{actorService: actorService}
	a.initRouter(g)
	return a
}

func (a *ActorController) initRouter(g *gin.RouterGroup) {
	view := g.Group("/actors", middleware.PermissionRequired(model.AccessActors))
	view.GET("", a.list)
	view.GET("/:id/parties", a.parties)

	manage := g.Group("/actors", middleware.PermissionRequired(model.ManageActors))
	manage.GET("/new", a.newActor)
	manage.GET("/:id/edit", a.editActor)
}

func (a *ActorController) list(c *gin.Context) {
	var filter entity.ActorFilter
	_ = c.ShouldBindQuery(&filter)
	sort := entity.ParseTableSort(c.Query("key"), c.Query("dir"))

	data := gin.H{
		"filter":     filter,
		"sort":       sort,
		"columns":    actorColumns,
		"can_manage": session.Current(c).Can(model.ManageActors),
	}

	actors, err := a.actorService.List(c.Request.Context(), a.token(c), filter, sort)
	if err != nil {
		renderError(c, "actors.html", "pages.actors.title", data)
		return
	}

	links := make(map[string]string, len(actorColumns))
	for _, key := range actorColumns {
		next := sort.Next(key)
		links[key] = withQuery(c, map[string]string{"key": next.Key, "dir": next.DirParam()})
	}
	data["actors"] = actors
	data["sort_links"] = links
	html(c, "actors.html", "pages.actors.title", data)
}

func (a *ActorController) newActor(c *gin.Context) {
	form := entity.NewActorForm()
	html(c, "actor_form.html", "pages.actors.new", gin.H{
		"id":          0,
		"form":        form,
		"permissions": form.PermissionFields(),
	})
}

func (a *ActorController) editActor(c *gin.Context) {
	id, ok := a.paramId(c, "id")
	if !ok {
		redirect(c, "actors")
		return
	}
	actor, err := a.actorService.Get(c.Request.Context(), a.token(c), id)
	if err != nil {
		renderError(c, "actor_form.html", "pages.actors.edit", gin.H{"id": id})
		return
	}
	form := entity.ActorFormFrom(actor)
	html(c, "actor_form.html", "pages.actors.edit", gin.H{
		"id":          id,
		"form":        form,
		"permissions": form.PermissionFields(),
	})
}

func (a *ActorController) parties(c *gin.Context) {
	id, ok := a.paramId(c, "id")
	if !ok {
		redirect(c, "actors")
		return
	}
	ctx := c.Request.Context()
	data := gin.H{"id": id}

	actor, err := a.actorService.Get(ctx, a.token(c), id)
	if err != nil {
		renderError(c, "actor_parties.html", "pages.actors.parties", data)
		return
	}
	data["actor"] = actor

	parties, err := a.actorService.Parties(ctx, a.token(c), id)
	if err != nil {
		renderError(c, "actor_parties.html", "pages.actors.parties", data)
		return
	}
	hidden := make(map[int]bool)
	for i := range parties {
		if !parties[i].VisibleTo(actor) {
			hidden[parties[i].Id] = true
		}
	}
	data["parties"] = parties
	data["hidden"] = hidden
	html(c, "actor_parties.html", "pages.actors.parties", data)
}
