package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-membership/internal/handler"
)

// RegisterSeats mounts the seat endpoints on g (normally /api).
func RegisterSeats(g *echo.Group, h *handler.SeatHandler) {
	g.POST("/seats", h.Create)
	g.GET("/seats", h.List)
	g.POST("/seats/sweep", h.Sweep)
	g.POST("/seats/:seatId/assign", h.Assign)
}
