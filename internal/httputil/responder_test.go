package httputil

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cube/simple/internal/errors"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestContext(acceptLanguage string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/members/alice", nil)
	if acceptLanguage != "" {
		c.Request.Header.Set("Accept-Language", acceptLanguage)
	}
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorResponder_Unauthorized(t *testing.T) {
	detail := fmt.Errorf("token signature invalid: signature is invalid")

	t.Run("detail hidden by default", func(t *testing.T) {
		responder := NewErrorResponder(NewMessages(), false, createTestLogger())
		c, w := newTestContext("en")

		responder.Unauthorized(c, MsgJWTInvalid, detail)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, c.IsAborted())
		assert.JSONEq(t, `{"code":"UNAUTHORIZED","message":"The token is invalid."}`, w.Body.String())
	})

	t.Run("detail exposed when enabled", func(t *testing.T) {
		responder := NewErrorResponder(NewMessages(), true, createTestLogger())
		c, w := newTestContext("en-US,en;q=0.9")

		responder.Unauthorized(c, MsgJWTExpired, detail)

		body := decodeBody(t, w)
		assert.Equal(t, "UNAUTHORIZED", body["code"])
		assert.Equal(t, "The token has expired.", body["message"])
		assert.Equal(t, detail.Error(), body["data"])
	})

	t.Run("empty key falls back to generic message", func(t *testing.T) {
		responder := NewErrorResponder(NewMessages(), false, nil)
		c, w := newTestContext("")

		responder.Unauthorized(c, "", nil)

		body := decodeBody(t, w)
		assert.Equal(t, "인증에 실패했습니다.", body["message"])
		assert.NotContains(t, body, "data")
	})
}

func TestErrorResponder_Forbidden(t *testing.T) {
	responder := NewErrorResponder(NewMessages(), true, createTestLogger())
	c, w := newTestContext("ko-KR")

	responder.Forbidden(c, fmt.Errorf("role USER cannot access GET /api/members"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "FORBIDDEN", body["code"])
	assert.Equal(t, "권한이 없습니다.", body["message"])
	assert.Equal(t, "role USER cannot access GET /api/members", body["data"])
}

func TestErrorResponder_SameEnvelopeShape(t *testing.T) {
	responder := NewErrorResponder(NewMessages(), true, createTestLogger())

	c1, w1 := newTestContext("en")
	responder.Unauthorized(c1, MsgUnauthorized, fmt.Errorf("a"))
	c2, w2 := newTestContext("en")
	responder.Forbidden(c2, fmt.Errorf("b"))

	keys := func(m map[string]any) []string {
		out := make([]string, 0, len(m))
		for k := range m {
			out = append(out, k)
		}
		return out
	}
	assert.ElementsMatch(t, keys(decodeBody(t, w1)), keys(decodeBody(t, w2)))
}

func TestErrorResponder_Error(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"unauthorized", apperrors.Wrap(apperrors.ErrUnauthorized, "x"), http.StatusUnauthorized, CodeUnauthorized},
		{"forbidden", apperrors.Wrap(apperrors.ErrForbidden, "x"), http.StatusForbidden, CodeForbidden},
		{"not found", apperrors.Wrap(apperrors.ErrNotFound, "x"), http.StatusNotFound, CodeNotFound},
		{"conflict", apperrors.Wrap(apperrors.ErrConflict, "x"), http.StatusConflict, CodeConflict},
		{"invalid input", apperrors.Wrap(apperrors.ErrInvalidInput, "x"), http.StatusUnprocessableEntity, CodeInvalidInput},
		{"too many requests", apperrors.ErrTooManyRequests, http.StatusTooManyRequests, CodeTooManyRequests},
		{"internal", apperrors.Wrap(apperrors.ErrInternal, "x"), http.StatusInternalServerError, CodeInternalServerError},
		{"unknown", fmt.Errorf("database is down"), http.StatusInternalServerError, CodeInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responder := NewErrorResponder(NewMessages(), false, createTestLogger())
			c, w := newTestContext("en")

			responder.Error(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, tt.expectedCode, body["code"])
			assert.NotEmpty(t, body["message"])
			assert.NotContains(t, body, "data")
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		responder := NewErrorResponder(NewMessages(), false, createTestLogger())
		c, w := newTestContext("en")

		responder.Error(c, nil)
		assert.False(t, c.IsAborted())
		assert.Empty(t, w.Body.String())
	})
}

func TestErrorResponder_BadRequest(t *testing.T) {
	responder := NewErrorResponder(NewMessages(), true, createTestLogger())
	c, w := newTestContext("en")

	responder.BadRequest(c, fmt.Errorf("unexpected EOF"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(
		t,
		`{"code":"BAD_REQUEST","message":"Invalid request parameter.","data":"unexpected EOF"}`,
		w.Body.String(),
	)
}

func TestMessages_Resolve(t *testing.T) {
	messages := NewMessages()

	tests := []struct {
		name           string
		lang           string
		acceptLanguage string
		expected       string
	}{
		{"default is korean", "", "", "인증에 실패했습니다."},
		{"english header", "", "en-GB", "Authentication failed."},
		{"korean header", "", "ko-KR,ko;q=0.9", "인증에 실패했습니다."},
		{"weighted header prefers english", "", "fr;q=0.2,en;q=0.8", "Authentication failed."},
		{"unsupported header", "", "fr-FR", "인증에 실패했습니다."},
		{"lang overrides header", "en", "ko", "Authentication failed."},
		{"invalid lang ignored", "!!", "en", "Authentication failed."},
		{"malformed header", "", ";;;", "인증에 실패했습니다."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag := messages.Resolve(tt.lang, tt.acceptLanguage)
			assert.Equal(t, tt.expected, messages.Get(tag, MsgUnauthorized))
		})
	}
}

func TestMessages_UnknownKey(t *testing.T) {
	messages := NewMessages()
	tag := messages.Resolve("", "en")
	assert.Equal(t, "api.response.unknown", messages.Get(tag, "api.response.unknown"))
}

func TestMessages_Localize(t *testing.T) {
	messages := NewMessages()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?lang=en", nil)

	assert.Equal(t, "Authentication succeeded.", messages.Localize(c, MsgAuthorized))
}
