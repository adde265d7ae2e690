package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Offset int
	Limit  int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
	Total  int64 `json:"total"`
}

// GetPaginationParams extracts offset and limit from the query string.
// Unparsable or out-of-range values fall back to the defaults.
func GetPaginationParams(c *gin.Context) PaginationParams {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil || limit < constants.MinPageSize {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	return PaginationParams{
		Offset: offset,
		Limit:  limit,
	}
}
