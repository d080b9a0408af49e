package handlers

import (
	"net/http"
	"strconv"
	"time"

	"timebridge/middleware"
	"timebridge/models"
	"timebridge/services/scheduling"
	"timebridge/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes conflict checks, slot discovery, and the
// provider's availability-window CRUD.
type AvailabilityHandler struct {
	Scheduler scheduling.SchedulingService
	Logger    *zap.Logger
}

func NewAvailabilityHandler(scheduler scheduling.SchedulingService, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Scheduler: scheduler, Logger: logger}
}

// CheckAvailability answers whether a concrete interval is bookable.
// Query params: start (RFC 3339), durationMinutes, optional excludeSessionId.
func (h *AvailabilityHandler) CheckAvailability(c *gin.Context) {
	providerID := c.Param("providerID")

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start; expected RFC 3339 timestamp"})
		return
	}
	duration, err := strconv.Atoi(c.Query("durationMinutes"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid durationMinutes"})
		return
	}

	result, err := h.Scheduler.CheckAvailability(c.Request.Context(), providerID, start, duration, c.Query("excludeSessionId"))
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAvailableSlots lists the bookable slots for a provider on a date.
// Query params: date (2006-01-02), durationMinutes.
func (h *AvailabilityHandler) GetAvailableSlots(c *gin.Context) {
	providerID := c.Param("providerID")

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date; expected 2006-01-02"})
		return
	}
	duration, err := strconv.Atoi(c.Query("durationMinutes"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid durationMinutes"})
		return
	}

	slots, err := h.Scheduler.GetAvailableSlots(c.Request.Context(), providerID, date, duration)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ListWindows lists a provider's availability windows.
func (h *AvailabilityHandler) ListWindows(c *gin.Context) {
	windows, err := h.Scheduler.ListWindows(c.Request.Context(), c.Param("providerID"))
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"windows": windows})
}

// CreateWindow declares a new availability window for the authenticated provider.
func (h *AvailabilityHandler) CreateWindow(c *gin.Context) {
	var window models.AvailabilityWindow
	if err := c.ShouldBindJSON(&window); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	window.ProviderID = middleware.ActorID(c)

	created, err := h.Scheduler.CreateWindow(c.Request.Context(), window)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateWindow replaces an existing window owned by the authenticated provider.
func (h *AvailabilityHandler) UpdateWindow(c *gin.Context) {
	var window models.AvailabilityWindow
	if err := c.ShouldBindJSON(&window); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	window.ID = c.Param("windowID")
	window.ProviderID = middleware.ActorID(c)

	updated, err := h.Scheduler.UpdateWindow(c.Request.Context(), window)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteWindow removes a window owned by the authenticated provider.
func (h *AvailabilityHandler) DeleteWindow(c *gin.Context) {
	if err := h.Scheduler.DeleteWindow(c.Request.Context(), middleware.ActorID(c), c.Param("windowID")); err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
