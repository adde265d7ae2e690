package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/constants"
	apierrors "github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/errors"
)

// RequireTaskID parses the :id path parameter. Existence and ownership are
// decided by the task service, which can tell a missing task from someone
// else's.
//
// Ids are limited to 63 bits, the range of a signed BIGINT primary key.
func RequireTaskID() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param("id"), 10, 63)
		if err != nil || taskID == 0 {
			apierrors.BadRequest(c, "Invalid task ID")
			return
		}

		c.Set(constants.ContextKeyTaskID, taskID)
		c.Next()
	}
}

// GetTaskID retrieves the task ID set by RequireTaskID
func GetTaskID(c *gin.Context) (uint64, bool) {
	v, exists := c.Get(constants.ContextKeyTaskID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}
