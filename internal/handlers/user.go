package handlers

import (
	"net/http"

	"github.com/anonto42/idea-board/backend/internal/logging"
	"github.com/anonto42/idea-board/backend/internal/repositories"
	"github.com/anonto42/idea-board/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler serves user listings, profiles and activity
type UserHandler struct {
	users    *services.UserService
	activity activityRecorder
	pageSize int
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *services.UserService, activity repositories.ActivityRepository, logger logging.Logger, pageSize int) *UserHandler {
	return &UserHandler{
		users:    users,
		activity: activityRecorder{repo: activity, logger: logger},
		pageSize: pageSize,
	}
}

// RegisterUserRoutes registers user routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users", h.GetUsers)
	g.GET("/users/:id", h.GetUser)
	if h.activity.repo != nil {
		g.GET("/users/:id/activity", h.GetActivity)
	}
}

// GetUsers lists users, oldest first
func (h *UserHandler) GetUsers(c echo.Context) error {
	page, err := pageFrom(c, h.pageSize)
	if err != nil {
		return err
	}
	users, err := h.users.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns a user with their ideas and bookmarks
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetActivity returns a page of the user's activity, newest first
func (h *UserHandler) GetActivity(c echo.Context) error {
	ctx := c.Request().Context()
	page, err := pageFrom(c, h.pageSize)
	if err != nil {
		return err
	}
	if err := h.users.Exists(ctx, c.Param("id")); err != nil {
		return err
	}

	skip := int64((page.Number - 1) * page.Size)
	activities, err := h.activity.repo.GetActivitiesByActor(ctx, c.Param("id"), skip, int64(page.Size))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activities)
}
