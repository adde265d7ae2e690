package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apierrors "github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/errors"
)

// Root returns the welcome message.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Todo API"})
}

// Health reports whether the database answers a ping.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			apierrors.ServiceUnavailable(c, "Database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}
