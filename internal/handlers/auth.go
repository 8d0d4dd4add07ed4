package handlers

import (
	"net/http"

	"github.com/anonto42/idea-board/backend/internal/models"
	"github.com/anonto42/idea-board/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	users           *services.UserService
	firebaseEnabled bool
}

// NewAuthHandler creates a new AuthHandler. The Firebase route is only
// registered when firebaseEnabled is set.
func NewAuthHandler(users *services.UserService, firebaseEnabled bool) *AuthHandler {
	return &AuthHandler{users: users, firebaseEnabled: firebaseEnabled}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	if h.firebaseEnabled {
		g.POST("/login/firebase", h.FirebaseLogin)
	}
}

// Register creates a local account and returns it with a token
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.AuthRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Login checks username and password and returns the user with a token
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.AuthRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// FirebaseLogin exchanges a Firebase ID token for a local token
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.FirebaseLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
