package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/efficience-dental/agenda-api/internal/handler"
	"github.com/efficience-dental/agenda-api/internal/service/stats"
)

type Handler struct {
	service *stats.Service
}

func NewHandler(service *stats.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats/dashboard", h.Dashboard)
}

func (h *Handler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dashboard})
}
