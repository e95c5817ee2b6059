package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the JWT subject stored by JWTAuth, or "anon" when
// the request is unauthenticated.
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case nil:
	default:
		return fmt.Sprint(v)
	}
	return "anon"
}
