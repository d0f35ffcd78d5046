package httputil

import (
	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	apperrors "github.com/cube/simple/internal/errors"
)

// Page bounds for list endpoints.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

type pageQuery struct {
	Offset *int `form:"offset"`
	Limit  *int `form:"limit"`
}

// ParsePagination reads ?offset=&limit=. Missing values default to 0 and
// DefaultLimit; anything out of range is ErrInvalidInput.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return 0, 0, apperrors.Wrap(apperrors.ErrInvalidInput, "offset and limit must be integers")
	}

	offset, limit = 0, DefaultLimit
	if q.Offset != nil {
		offset = *q.Offset
	}
	if q.Limit != nil {
		limit = *q.Limit
	}

	// Min treats 0 as empty and skips it; Required rejects limit=0.
	if err := (validation.Errors{
		"offset": validation.Validate(offset, validation.Min(0)),
		"limit": validation.Validate(limit,
			validation.Required.Error("must be no less than 1"),
			validation.Min(1),
			validation.Max(MaxLimit),
		),
	}).Filter(); err != nil {
		return 0, 0, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}
	return offset, limit, nil
}
