package api

import (
	"ideahub/internal/store" // Persistence layer
	"net/http"               // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// HealthHandler reports whether the database and Redis are reachable
func HealthHandler(s *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sqlDB, err := s.DB().DB()
		if err == nil {
			err = sqlDB.PingContext(ctx) // Check the database
		}
		if err == nil {
			err = rdb.Ping(ctx).Err() // Check Redis
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"error": err.Error(), // Error message
			}).Warn("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
