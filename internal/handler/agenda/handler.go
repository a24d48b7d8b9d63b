package agenda

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/efficience-dental/agenda-api/internal/handler"
	"github.com/efficience-dental/agenda-api/internal/model"
	"github.com/efficience-dental/agenda-api/internal/service/agenda"
	apperrors "github.com/efficience-dental/agenda-api/pkg/errors"
)

type Handler struct {
	service *agenda.Service
}

func NewHandler(service *agenda.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/agenda", h.GetDayView)
	r.POST("/agenda/today", h.JumpToToday)

	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.POST("", h.CreateAppointment)
		appointments.PUT("/:id/schedule", h.RescheduleAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

// GetDayView returns the agenda screen for the requested date, or for
// the current selection when no date is given.
func (h *Handler) GetDayView(c *gin.Context) {
	view, err := h.service.DayView(c.Query("date"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": view})
}

func (h *Handler) JumpToToday(c *gin.Context) {
	today := h.service.JumpToToday()
	view, err := h.service.DayView(today)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": view})
}

func (h *Handler) ListAppointments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": h.service.Snapshot()})
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	apt, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": apt})
}

func (h *Handler) RescheduleAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	var req model.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	apt, err := h.service.Reschedule(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": apt})
}

// DeleteAppointment requires an explicit confirm=true query flag; the
// flag travels on the context so the confirmation gate runs inside the
// service, before any store call.
func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	ctx := agenda.WithConfirmation(c.Request.Context(), confirmed)

	if err := h.service.Delete(ctx, id); err != nil {
		if apperrors.IsCode(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "deletion requires confirm=true"})
			return
		}
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
