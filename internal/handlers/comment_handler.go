package handlers

import (
	"net/http"

	"github.com/anonto42/idea-board/backend/internal/logging"
	"github.com/anonto42/idea-board/backend/internal/models"
	"github.com/anonto42/idea-board/backend/internal/repositories"
	"github.com/anonto42/idea-board/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments *services.CommentService
	activity activityRecorder
	pageSize int
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *services.CommentService, activity repositories.ActivityRepository, logger logging.Logger, pageSize int) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		activity: activityRecorder{repo: activity, logger: logger},
		pageSize: pageSize,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, write ...echo.MiddlewareFunc) {
	g.GET("/comments/idea/:id", h.GetCommentsByIdea)
	g.GET("/comments/user/:id", h.GetCommentsByUser)
	g.POST("/comments/idea/:id", h.CreateComment, write...)
	g.GET("/comments/:id", h.GetComment)
	g.DELETE("/comments/:id", h.DeleteComment, write...)
}

// GetCommentsByIdea lists an idea's comments, oldest first
func (h *CommentHandler) GetCommentsByIdea(c echo.Context) error {
	page, err := pageFrom(c, h.pageSize)
	if err != nil {
		return err
	}
	comments, err := h.comments.ListByIdea(c.Request().Context(), c.Param("id"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// GetCommentsByUser lists a user's comments, newest first
func (h *CommentHandler) GetCommentsByUser(c echo.Context) error {
	page, err := pageFrom(c, h.pageSize)
	if err != nil {
		return err
	}
	comments, err := h.comments.ListByUser(c.Request().Context(), c.Param("id"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// CreateComment creates a new comment on an idea
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.comments.Create(c.Request().Context(), c.Param("id"), userID, req)
	if err != nil {
		return err
	}
	h.activity.record(c, models.ActivityCommentCreated, userID, comment.ID, "comment")
	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) GetComment(c echo.Context) error {
	comment, err := h.comments.Show(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment deletes a comment; only its author may
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	comment, err := h.comments.Delete(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	h.activity.record(c, models.ActivityCommentDeleted, userID, comment.ID, "comment")
	return c.JSON(http.StatusOK, comment)
}
