package handlers

import (
	"MediBook/middlewares"
	"MediBook/services"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	service *services.ScheduleService
}

func NewScheduleHandler(service *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// GetSchedule returns a doctor's weekly availability rows.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	rows, err := h.service.Get(c.Request.Context(), c.Param("doctor_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, rows)
}

// SaveSchedule replaces the doctor's full weekly schedule. An empty list
// clears every availability window.
func (h *ScheduleHandler) SaveSchedule(c *gin.Context) {
	scope, err := middlewares.ScopeFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Session not found"})
		return
	}

	var body struct {
		Rows []services.ScheduleRow `json:"rows"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	doctorID := c.Param("doctor_id")
	if err := h.service.Save(c.Request.Context(), scope, doctorID, body.Rows); err != nil {
		respondError(c, err)
		return
	}

	rows, err := h.service.Get(c.Request.Context(), doctorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, rows)
}
