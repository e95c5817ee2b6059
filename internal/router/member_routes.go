package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-membership/internal/handler"
)

// RegisterMembers mounts the member endpoints on g (normally /api).
func RegisterMembers(g *echo.Group, h *handler.MemberHandler) {
	g.POST("/members", h.Add)
	g.GET("/members", h.List)
	g.PUT("/members/:id", h.Update)
	g.PATCH("/members/:id", h.Update) // alias for clients that use PATCH
	g.DELETE("/members/:id", h.Delete)
}
