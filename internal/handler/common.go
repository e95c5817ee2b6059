package handler // handler defines http handlers

import (
	"errors"   // errors classifies service failures
	"net/http" // http defines status code constants

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/iliyamo/library-membership/internal/repository" // repository holds the sentinel errors
)

// respondError maps a service error to an HTTP status and a JSON body.
// Unknown errors are logged and reported as 500 without their detail.
func respondError(c echo.Context, err error) error {
	var verr *repository.ValidationError
	switch {
	case errors.As(err, &verr): // field-level violations carry their messages
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "details": verr.Messages})
	case errors.Is(err, repository.ErrInvalidID):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid member id"})
	case errors.Is(err, repository.ErrMemberNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "member not found"})
	case errors.Is(err, repository.ErrSeatNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
	case errors.Is(err, repository.ErrDuplicateKey):
		return c.JSON(http.StatusConflict, echo.Map{"error": "duplicate key"})
	}
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
