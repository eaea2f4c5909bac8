package handlers

import (
	"net/http"

	"slotbook/services/status"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	Service status.StatusService
}

func NewStatusHandler(service status.StatusService) *StatusHandler {
	return &StatusHandler{Service: service}
}

// GetSystemStatusHandler reports the process uptime.
func (h *StatusHandler) GetSystemStatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.GetSystemStatus())
}

// HealthHandler returns the latest store/cache health snapshot.
func (h *StatusHandler) HealthHandler(c *gin.Context) {
	health := utils.GetHealthStatus()
	code := http.StatusOK
	if !health.CheckedAt.IsZero() && !health.Store {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, health)
}
