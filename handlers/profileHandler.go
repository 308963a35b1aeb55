package handlers

import (
	"MediBook/middlewares"
	"MediBook/models"
	"MediBook/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service *services.ProfileService
}

func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, profile)
}

// UpdateProfile mutates a profile; owners edit their own, admins any.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	scope, err := middlewares.ScopeFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Session not found"})
		return
	}

	var req services.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.service.Update(c.Request.Context(), scope, c.Param("user_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, profile)
}

// ListDoctors returns the doctors of one department, the booking flow's
// second step.
func (h *ProfileHandler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.ListDoctors(c.Request.Context(), c.Param("department_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, doctors)
}

// ListUsers returns all profiles, optionally filtered by role. Admin only.
func (h *ProfileHandler) ListUsers(c *gin.Context) {
	scope, err := middlewares.ScopeFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Session not found"})
		return
	}

	users, err := h.service.ListUsers(c.Request.Context(), scope, models.Role(c.Query("role")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, users)
}
