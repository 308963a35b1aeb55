package handlers

import (
	"MediBook/middlewares"
	"MediBook/services"

	"github.com/gin-gonic/gin"
)

type MedicalRecordHandler struct {
	service *services.MedicalRecordService
}

func NewMedicalRecordHandler(service *services.MedicalRecordService) *MedicalRecordHandler {
	return &MedicalRecordHandler{service: service}
}

// CreateMedicalRecord authors a record as the acting doctor.
func (h *MedicalRecordHandler) CreateMedicalRecord(c *gin.Context) {
	scope, err := middlewares.ScopeFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Session not found"})
		return
	}

	var req services.MedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	record, err := h.service.Create(c.Request.Context(), scope, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, record)
}

// ListMedicalRecords returns the records the actor may read.
func (h *MedicalRecordHandler) ListMedicalRecords(c *gin.Context) {
	scope, err := middlewares.ScopeFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Session not found"})
		return
	}

	records, err := h.service.List(c.Request.Context(), scope)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, records)
}

func (h *MedicalRecordHandler) GetMedicalRecordByID(c *gin.Context) {
	scope, err := middlewares.ScopeFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Session not found"})
		return
	}

	record, err := h.service.Get(c.Request.Context(), scope, c.Param("record_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, record)
}
