package cabinet

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/efficience-dental/agenda-api/internal/handler"
	"github.com/efficience-dental/agenda-api/internal/model"
	"github.com/efficience-dental/agenda-api/internal/service/cabinet"
)

type Handler struct {
	service *cabinet.Service
}

func NewHandler(service *cabinet.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	cab := r.Group("/cabinet")
	{
		cab.GET("", h.GetCabinet)
		cab.PUT("", h.UpdateCabinet)
	}
}

func (h *Handler) GetCabinet(c *gin.Context) {
	info, err := h.service.Info(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": info})
}

func (h *Handler) UpdateCabinet(c *gin.Context) {
	var req model.UpdateCabinetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	cab, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": cab})
}
