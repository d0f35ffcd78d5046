package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cube/simple/internal/errors"
	"github.com/cube/simple/internal/httputil"
)

func parse(t *testing.T, query string) (int, int, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/members"+query, nil)
	return httputil.ParsePagination(c)
}

func TestParsePagination(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		offset, limit, err := parse(t, "")
		require.NoError(t, err)
		assert.Equal(t, 0, offset)
		assert.Equal(t, httputil.DefaultLimit, limit)
	})

	t.Run("Explicit", func(t *testing.T) {
		offset, limit, err := parse(t, "?offset=40&limit=100")
		require.NoError(t, err)
		assert.Equal(t, 40, offset)
		assert.Equal(t, 100, limit)
	})

	for _, query := range []string{
		"?offset=-5",
		"?offset=first",
		"?limit=0",
		"?limit=101",
		"?limit=1.5",
	} {
		t.Run("Rejects"+query, func(t *testing.T) {
			_, _, err := parse(t, query)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}

	t.Run("MessageNamesField", func(t *testing.T) {
		_, _, err := parse(t, "?limit=500")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "limit")
		assert.NotContains(t, err.Error(), "offset")
	})
}

func TestParsePagination_ZeroLimit(t *testing.T) {
	_, _, err := parse(t, "?limit=0")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "limit: must be no less than 1")

	offset, _, err := parse(t, "?offset=0&limit=1")
	require.NoError(t, err)
	assert.Zero(t, offset)
}
