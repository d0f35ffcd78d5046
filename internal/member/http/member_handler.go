// Package http provides HTTP handlers for member management. Access control is
// enforced upstream by the route policy; role changes are checked by the use case.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/cube/simple/internal/auth/http"
	"github.com/cube/simple/internal/httputil"
	"github.com/cube/simple/internal/member/http/dto"
	memberUseCase "github.com/cube/simple/internal/member/usecase"
	customValidation "github.com/cube/simple/internal/validation"
)

// MemberHandler handles HTTP requests for member operations.
type MemberHandler struct {
	memberUseCase memberUseCase.MemberUseCase
	responder     *httputil.ErrorResponder
	logger        *slog.Logger
}

// NewMemberHandler creates a new member handler with required dependencies.
func NewMemberHandler(
	memberUseCase memberUseCase.MemberUseCase,
	responder *httputil.ErrorResponder,
	logger *slog.Logger,
) *MemberHandler {
	return &MemberHandler{
		memberUseCase: memberUseCase,
		responder:     responder,
		logger:        logger,
	}
}

// CreateHandler registers a member.
// POST /api/members - ADMIN only. Returns 201 Created.
func (h *MemberHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.responder.Error(c, customValidation.WrapValidationError(err))
		return
	}

	member, err := h.memberUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.responder.Error(c, err)
		return
	}

	h.logger.Info("member created", slog.String("member_id", member.ID), slog.String("role", member.Role.String()))
	c.JSON(http.StatusCreated, dto.MapMemberToResponse(member))
}

// GetHandler returns a member.
// GET /api/members/:id - the member itself or ADMIN.
func (h *MemberHandler) GetHandler(c *gin.Context) {
	member, err := h.memberUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapMemberToResponse(member))
}

// ListHandler returns a page of members.
// GET /api/members?offset=0&limit=50 - ADMIN only.
func (h *MemberHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		h.responder.Error(c, err)
		return
	}

	members, err := h.memberUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		h.responder.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapMembersToListResponse(members))
}

// UpdateHandler replaces the mutable fields of a member.
// PUT /api/members/:id - the member itself or ADMIN. Only ADMIN may change a role.
func (h *MemberHandler) UpdateHandler(c *gin.Context) {
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.responder.Error(c, customValidation.WrapValidationError(err))
		return
	}

	// The stored role is compared in the use case; the token's role may be stale.
	input := req.ToInput()
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	input.AllowRoleChange = ok && principal.IsAdmin()

	member, err := h.memberUseCase.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.responder.Error(c, err)
		return
	}

	h.logger.Info("member updated", slog.String("member_id", member.ID))
	c.JSON(http.StatusOK, dto.MapMemberToResponse(member))
}

// DeleteHandler removes a member.
// DELETE /api/members/:id - the member itself or ADMIN. Returns 204 No Content.
func (h *MemberHandler) DeleteHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.memberUseCase.Delete(c.Request.Context(), id); err != nil {
		h.responder.Error(c, err)
		return
	}

	h.logger.Info("member deleted", slog.String("member_id", id))
	c.Data(http.StatusNoContent, "application/json", nil)
}
