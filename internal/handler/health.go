package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gold-bot/internal/interfaces"
)

type HealthHandler struct {
	gateway interfaces.GatewayStatus
	started time.Time
}

func NewHealthHandler(gateway interfaces.GatewayStatus) *HealthHandler {
	return &HealthHandler{gateway: gateway, started: time.Now()}
}

// GetHealth handles GET /health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	status, code := "ok", http.StatusOK
	if !h.gateway.Ready() {
		status, code = "starting", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":  status,
		"gateway": h.gateway.Ready(),
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}

func NewRouter(h *HealthHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", h.GetHealth)
	return r
}
