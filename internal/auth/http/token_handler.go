package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/cube/simple/internal/auth/domain"
	"github.com/cube/simple/internal/auth/http/dto"
	authUseCase "github.com/cube/simple/internal/auth/usecase"
	"github.com/cube/simple/internal/httputil"
	customValidation "github.com/cube/simple/internal/validation"
)

// TokenHandler handles HTTP requests for token operations.
type TokenHandler struct {
	loginUseCase authUseCase.LoginUseCase
	responder    *httputil.ErrorResponder
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(
	loginUseCase authUseCase.LoginUseCase,
	responder *httputil.ErrorResponder,
	logger *slog.Logger,
) *TokenHandler {
	return &TokenHandler{
		loginUseCase: loginUseCase,
		responder:    responder,
		logger:       logger,
	}
}

// LoginHandler exchanges member credentials for an access and a refresh token.
// POST /api/auth/login - public, rate limited per IP.
func (h *TokenHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.responder.Error(c, customValidation.WrapValidationError(err))
		return
	}

	pair, err := h.loginUseCase.Login(c.Request.Context(), req.ID, req.Password)
	if err != nil {
		h.responder.Error(c, err)
		return
	}

	h.logger.Info("member logged in", slog.String("subject", req.ID))
	c.JSON(http.StatusOK, dto.MapTokenPairToResponse(pair))
}

// RefreshHandler issues a new token pair for a valid refresh token.
// POST /api/auth/refresh - public.
func (h *TokenHandler) RefreshHandler(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.responder.Error(c, customValidation.WrapValidationError(err))
		return
	}

	pair, err := h.loginUseCase.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		messageKey := httputil.MsgJWTInvalid
		if authDomain.IsTokenExpired(err) {
			messageKey = httputil.MsgJWTExpired
		}
		if authDomain.IsTokenError(err) {
			h.responder.Unauthorized(c, messageKey, err)
			return
		}
		h.responder.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenPairToResponse(pair))
}

// MeHandler returns the authenticated principal.
// GET /api/auth/me - any authenticated role.
func (h *TokenHandler) MeHandler(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok {
		h.responder.Unauthorized(c, httputil.MsgUnauthorized, authDomain.ErrUnauthenticated)
		return
	}

	c.JSON(http.StatusOK, dto.MapPrincipalToResponse(principal))
}
