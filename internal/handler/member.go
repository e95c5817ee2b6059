package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-membership/internal/service"
)

// MemberHandler exposes the member gateway over HTTP.
type MemberHandler struct {
	Members *service.MemberService
}

// NewMemberHandler constructs a MemberHandler and panics if the service is nil.
func NewMemberHandler(members *service.MemberService) *MemberHandler {
	if members == nil {
		panic("nil service passed to NewMemberHandler")
	}
	return &MemberHandler{Members: members}
}

// deleteResponse is the body returned by DELETE /api/members/:id.
type deleteResponse struct {
	Message string `json:"message"`
	*service.DeleteResult
}

// Add handles POST /api/members.  A seat in the body is ignored.
func (h *MemberHandler) Add(c echo.Context) error {
	var in service.MemberInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	m, err := h.Members.Add(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// List handles GET /api/members and returns members newest first.
func (h *MemberHandler) List(c echo.Context) error {
	members, err := h.Members.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, members)
}

// Update handles PUT and PATCH /api/members/:id.  Only fields present in
// the body change.
func (h *MemberHandler) Update(c echo.Context) error {
	var in service.MemberInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	m, err := h.Members.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /api/members/:id.
func (h *MemberHandler) Delete(c echo.Context) error {
	res, err := h.Members.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, deleteResponse{Message: "member deleted", DeleteResult: res})
}
