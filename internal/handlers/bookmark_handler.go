package handlers

import (
	"net/http"

	"github.com/anonto42/idea-board/backend/internal/logging"
	"github.com/anonto42/idea-board/backend/internal/models"
	"github.com/anonto42/idea-board/backend/internal/repositories"
	"github.com/anonto42/idea-board/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// BookmarkHandler handles bookmark HTTP requests
type BookmarkHandler struct {
	users    *services.UserService
	activity activityRecorder
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(users *services.UserService, activity repositories.ActivityRepository, logger logging.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		users:    users,
		activity: activityRecorder{repo: activity, logger: logger},
	}
}

// RegisterBookmarkRoutes registers bookmark routes behind the given middleware
func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group, write ...echo.MiddlewareFunc) {
	g.POST("/ideas/:id/bookmark", h.Bookmark, write...)
	g.DELETE("/ideas/:id/bookmark", h.Unbookmark, write...)
}

// Bookmark adds an idea to the caller's bookmarks
func (h *BookmarkHandler) Bookmark(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	ideaID := c.Param("id")
	user, err := h.users.Bookmark(c.Request().Context(), ideaID, userID)
	if err != nil {
		return err
	}
	h.activity.record(c, models.ActivityBookmark, userID, ideaID, "idea")
	return c.JSON(http.StatusOK, user)
}

// Unbookmark removes an idea from the caller's bookmarks
func (h *BookmarkHandler) Unbookmark(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	ideaID := c.Param("id")
	user, err := h.users.Unbookmark(c.Request().Context(), ideaID, userID)
	if err != nil {
		return err
	}
	h.activity.record(c, models.ActivityUnbookmark, userID, ideaID, "idea")
	return c.JSON(http.StatusOK, user)
}
