// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/cube/simple/internal/errors"
)

// Stable machine-readable error codes.
const (
	CodeBadRequest          = "BAD_REQUEST"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeTooManyRequests     = "TOO_MANY_REQUESTS"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

// ErrorResponse is the uniform error envelope. Data carries diagnostic detail
// and is omitted unless detail exposure is enabled.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponder writes every error response of the API.
//
// Unauthorized and Forbidden are the entry points used by the authentication
// and authorization middlewares; Error maps any other domain error onto the same
// envelope.
type ErrorResponder struct {
	messages     *Messages
	exposeDetail bool
	logger       *slog.Logger
}

// NewErrorResponder creates an ErrorResponder. exposeDetail controls the data field.
func NewErrorResponder(messages *Messages, exposeDetail bool, logger *slog.Logger) *ErrorResponder {
	return &ErrorResponder{
		messages:     messages,
		exposeDetail: exposeDetail,
		logger:       logger,
	}
}

// Messages returns the catalog used for localization.
func (r *ErrorResponder) Messages() *Messages {
	return r.messages
}

// Unauthorized aborts with 401 and code UNAUTHORIZED. messageKey selects the
// localized message (e.g. MsgJWTExpired versus MsgJWTInvalid).
func (r *ErrorResponder) Unauthorized(c *gin.Context, messageKey string, detail error) {
	if messageKey == "" {
		messageKey = MsgUnauthorized
	}
	r.write(c, http.StatusUnauthorized, CodeUnauthorized, messageKey, detail)
}

// Forbidden aborts with 403 and code FORBIDDEN.
func (r *ErrorResponder) Forbidden(c *gin.Context, detail error) {
	r.write(c, http.StatusForbidden, CodeForbidden, MsgForbidden, detail)
}

// BadRequest aborts with 400 for malformed bodies or parameters.
func (r *ErrorResponder) BadRequest(c *gin.Context, err error) {
	r.write(c, http.StatusBadRequest, CodeBadRequest, MsgBadRequest, err)
}

// Error maps a domain error to a status code and writes the envelope.
func (r *ErrorResponder) Error(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch apperrors.Kind(err) {
	case apperrors.ErrUnauthorized:
		r.Unauthorized(c, MsgUnauthorized, err)
	case apperrors.ErrForbidden:
		r.Forbidden(c, err)
	case apperrors.ErrNotFound:
		r.write(c, http.StatusNotFound, CodeNotFound, MsgNotFound, err)
	case apperrors.ErrConflict:
		r.write(c, http.StatusConflict, CodeConflict, MsgConflict, err)
	case apperrors.ErrInvalidInput:
		r.write(c, http.StatusUnprocessableEntity, CodeInvalidInput, MsgInvalidInput, err)
	case apperrors.ErrTooManyRequests:
		r.write(c, http.StatusTooManyRequests, CodeTooManyRequests, MsgTooManyRequests, err)
	default:
		r.write(c, http.StatusInternalServerError, CodeInternalServerError, MsgError, err)
	}
}

func (r *ErrorResponder) write(c *gin.Context, status int, code, messageKey string, detail error) {
	body := ErrorResponse{
		Code:    code,
		Message: r.messages.Localize(c, messageKey),
	}
	if r.exposeDetail && detail != nil {
		body.Data = detail.Error()
	}

	if r.logger != nil {
		attrs := []any{
			slog.Int("status_code", status),
			slog.String("error_code", code),
			slog.String("path", c.Request.URL.Path),
		}
		if detail != nil {
			attrs = append(attrs, slog.Any("error", detail))
		}
		if status >= http.StatusInternalServerError {
			r.logger.Error("request failed", attrs...)
		} else {
			r.logger.Info("request rejected", attrs...)
		}
	}

	c.AbortWithStatusJSON(status, body)
}
