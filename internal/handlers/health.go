package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vikash-ftw/VideoTube-Backend/internal/cache"
	"github.com/vikash-ftw/VideoTube-Backend/internal/database"
	"github.com/vikash-ftw/VideoTube-Backend/internal/util"
)

var processStart = time.Now()

// Healthcheck handles GET /healthcheck. Reports dependency status but
// always answers 200 so load balancers see a live process.
func (h *Handlers) Healthcheck(c *gin.Context) {
	dbStatus := "ok"
	if database.DB == nil {
		dbStatus = "not connected"
	} else if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unreachable"
	}

	redisStatus := "ok"
	if rc := cache.GetRedisClient(); rc == nil {
		redisStatus = "not connected"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if rc.Ping(ctx) != nil {
			redisStatus = "unreachable"
		}
	}

	util.RespondOK(c, gin.H{
		"status":   "ok",
		"database": dbStatus,
		"redis":    redisStatus,
		"uptime":   time.Since(processStart).String(),
		"time":     time.Now().UTC(),
	}, "healthcheck passed")
}
