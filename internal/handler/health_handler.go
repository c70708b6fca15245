package handler

import (
	"net/http"

	"Mergington-App/internal/application"

	"github.com/gin-gonic/gin"
)

// HealthHandler ヘルスチェック用ハンドラー
type HealthHandler struct {
	serviceName       string
	activitiesService application.ActivitiesService
}

// NewHealthHandler HealthHandlerの新しいインスタンスを作成
func NewHealthHandler(serviceName string, activitiesService application.ActivitiesService) *HealthHandler {
	return &HealthHandler{
		serviceName:       serviceName,
		activitiesService: activitiesService,
	}
}

// GetHealth GET /api/health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"service":    h.serviceName,
		"activities": h.activitiesService.Count(),
	})
}
