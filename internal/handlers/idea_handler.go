package handlers

import (
	"net/http"

	"github.com/anonto42/idea-board/backend/internal/logging"
	"github.com/anonto42/idea-board/backend/internal/models"
	"github.com/anonto42/idea-board/backend/internal/repositories"
	"github.com/anonto42/idea-board/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// IdeaHandler handles idea CRUD and voting
type IdeaHandler struct {
	ideas    *services.IdeaService
	activity activityRecorder
	pageSize int
}

// NewIdeaHandler creates a new IdeaHandler
func NewIdeaHandler(ideas *services.IdeaService, activity repositories.ActivityRepository, logger logging.Logger, pageSize int) *IdeaHandler {
	return &IdeaHandler{
		ideas:    ideas,
		activity: activityRecorder{repo: activity, logger: logger},
		pageSize: pageSize,
	}
}

// RegisterIdeaRoutes registers idea routes. Writes go through the given
// middleware, which must authenticate the caller.
func (h *IdeaHandler) RegisterIdeaRoutes(g *echo.Group, write ...echo.MiddlewareFunc) {
	g.GET("/ideas", h.GetIdeas)
	g.GET("/ideas/:id", h.GetIdea)
	g.POST("/ideas", h.CreateIdea, write...)
	g.PUT("/ideas/:id", h.UpdateIdea, write...)
	g.DELETE("/ideas/:id", h.DeleteIdea, write...)
	g.POST("/ideas/:id/upvote", h.Upvote, write...)
	g.POST("/ideas/:id/downvote", h.Downvote, write...)
}

// GetIdeas lists ideas with author and vote counts
func (h *IdeaHandler) GetIdeas(c echo.Context) error {
	page, err := pageFrom(c, h.pageSize)
	if err != nil {
		return err
	}
	ideas, err := h.ideas.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ideas)
}

// GetIdea returns one idea with author, vote counts and comments
func (h *IdeaHandler) GetIdea(c echo.Context) error {
	idea, err := h.ideas.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, idea)
}

// CreateIdea creates an idea authored by the caller
func (h *IdeaHandler) CreateIdea(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req models.CreateIdeaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	idea, err := h.ideas.Create(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	h.activity.record(c, models.ActivityIdeaCreated, userID, idea.ID, "idea")
	return c.JSON(http.StatusCreated, idea)
}

// UpdateIdea edits an idea; only its author may
func (h *IdeaHandler) UpdateIdea(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req models.UpdateIdeaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	idea, err := h.ideas.Update(c.Request().Context(), c.Param("id"), userID, req)
	if err != nil {
		return err
	}
	h.activity.record(c, models.ActivityIdeaUpdated, userID, idea.ID, "idea")
	return c.JSON(http.StatusOK, idea)
}

// DeleteIdea deletes an idea; only its author may
func (h *IdeaHandler) DeleteIdea(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	idea, err := h.ideas.Delete(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	h.activity.record(c, models.ActivityIdeaDeleted, userID, idea.ID, "idea")
	return c.JSON(http.StatusOK, idea)
}

func (h *IdeaHandler) Upvote(c echo.Context) error {
	return h.vote(c, models.VoteUp, models.ActivityUpvote)
}

func (h *IdeaHandler) Downvote(c echo.Context) error {
	return h.vote(c, models.VoteDown, models.ActivityDownvote)
}

func (h *IdeaHandler) vote(c echo.Context, dir models.VoteDirection, activity string) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	idea, err := h.ideas.CastVote(c.Request().Context(), c.Param("id"), userID, dir)
	if err != nil {
		return err
	}
	h.activity.record(c, activity, userID, idea.ID, "idea")
	return c.JSON(http.StatusOK, idea)
}
