package handlers

import (
	"MediBook/middlewares"
	"MediBook/models"
	"MediBook/repositories"
	"MediBook/scheduling"
	"MediBook/services"
	"time"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service *services.AppointmentService
}

func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// BookAppointment handles the confirm step of the booking flow.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	scope, err := middlewares.ScopeFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Session not found"})
		return
	}

	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	appointment, err := h.service.Book(c.Request.Context(), scope, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, appointment)
}

// GetAvailability returns the free slots for a doctor on one date, the
// datetime step of the booking flow.
func (h *AppointmentHandler) GetAvailability(c *gin.Context) {
	doctorID := c.Param("doctor_id")
	date := c.Query("date")
	if date == "" {
		c.JSON(400, gin.H{"error": "Missing date query parameter"})
		return
	}

	availability, err := h.service.Availability(c.Request.Context(), doctorID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, availability)
}

// GetAvailableDays returns the weekdays the doctor accepts bookings on.
func (h *AppointmentHandler) GetAvailableDays(c *gin.Context) {
	days, err := h.service.AvailableDays(c.Request.Context(), c.Param("doctor_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{
		"days":     days,
		"min_date": scheduling.MinBookableDate(time.Now()),
	})
}

// ListAppointments returns the appointments the actor may see, optionally
// filtered by status and date range.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	scope, err := middlewares.ScopeFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Session not found"})
		return
	}

	filter := repositories.AppointmentFilter{
		Status:   models.AppointmentStatus(c.Query("status")),
		DateFrom: c.Query("from"),
		DateTo:   c.Query("to"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		c.JSON(400, gin.H{"error": "Unknown status filter"})
		return
	}

	appointments, err := h.service.List(c.Request.Context(), scope, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointments)
}

func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	scope, err := middlewares.ScopeFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Session not found"})
		return
	}

	appointment, err := h.service.Get(c.Request.Context(), scope, c.Param("appointment_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointment)
}

// TransitionAppointment applies a status-machine action (confirm, start,
// complete, no_show, cancel) as the acting role.
func (h *AppointmentHandler) TransitionAppointment(c *gin.Context) {
	scope, err := middlewares.ScopeFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Session not found"})
		return
	}

	var body struct {
		Action scheduling.Action `json:"action"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	appointment, err := h.service.Transition(c.Request.Context(), scope, c.Param("appointment_id"), body.Action)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointment)
}

// GetStats returns appointment counts per status for the admin dashboard.
func (h *AppointmentHandler) GetStats(c *gin.Context) {
	scope, err := middlewares.ScopeFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Session not found"})
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), scope)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, stats)
}
