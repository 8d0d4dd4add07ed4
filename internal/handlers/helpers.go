package handlers

import (
	"fmt"
	"strconv"

	"github.com/anonto42/idea-board/backend/internal/common"
	"github.com/anonto42/idea-board/backend/internal/middleware"
	"github.com/anonto42/idea-board/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated caller or common.ErrUnauthorized.
func currentUserID(c echo.Context) (string, error) {
	id := middleware.UserID(c)
	if id == "" {
		return "", fmt.Errorf("%w: user not authenticated", common.ErrUnauthorized)
	}
	return id, nil
}

// bindAndValidate decodes the request body into req and runs the echo validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: invalid request payload", common.ErrValidation)
	}
	return c.Validate(req)
}

// pageFrom reads ?page= and ?newest= from the query string.
func pageFrom(c echo.Context, size int) (repositories.Page, error) {
	page := repositories.Page{Number: 1, Size: size}
	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, fmt.Errorf("%w: page must be a positive integer", common.ErrValidation)
		}
		page.Number = n
	}
	if raw := c.QueryParam("newest"); raw != "" {
		newest, err := strconv.ParseBool(raw)
		if err != nil {
			return page, fmt.Errorf("%w: newest must be a boolean", common.ErrValidation)
		}
		page.Newest = newest
	}
	return page, nil
}
