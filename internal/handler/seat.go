package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-membership/internal/service"
)

// SeatHandler exposes seat registration, listing, assignment and the
// consistency sweep.
type SeatHandler struct {
	Seats *service.SeatService
}

func NewSeatHandler(seats *service.SeatService) *SeatHandler {
	if seats == nil {
		panic("nil service passed to NewSeatHandler")
	}
	return &SeatHandler{Seats: seats}
}

// Create handles POST /api/seats with body {"seatId": "..."}.
func (h *SeatHandler) Create(c echo.Context) error {
	var body struct {
		SeatID string `json:"seatId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	seat, err := h.Seats.Create(c.Request().Context(), body.SeatID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, seat)
}

// List handles GET /api/seats.
func (h *SeatHandler) List(c echo.Context) error {
	seats, err := h.Seats.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, seats)
}

// Assign handles POST /api/seats/:seatId/assign with body {"memberId": "..."}.
func (h *SeatHandler) Assign(c echo.Context) error {
	var body struct {
		MemberID string `json:"memberId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.MemberID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "memberId is required"})
	}
	m, err := h.Seats.Assign(c.Request().Context(), body.MemberID, c.Param("seatId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// Sweep handles POST /api/seats/sweep.  Seats that could not be saved are
// logged by the reconciler and flagged with "incomplete"; the count covers
// the seats that were saved.
func (h *SeatHandler) Sweep(c echo.Context) error {
	n, err := h.Seats.Sweep(c.Request().Context())
	if err != nil {
		c.Logger().Warnf("seat sweep incomplete: %v", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"repaired": n, "incomplete": err != nil})
}
