package handlers

import (
	"MediBook/middlewares"
	"MediBook/services"

	"github.com/gin-gonic/gin"
)

type DepartmentHandler struct {
	service *services.DepartmentService
}

func NewDepartmentHandler(service *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{service: service}
}

// ListDepartments is the booking flow's first step.
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	departments, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, departments)
}

func (h *DepartmentHandler) GetDepartmentByID(c *gin.Context) {
	department, err := h.service.Get(c.Request.Context(), c.Param("department_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, department)
}

func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	scope, err := middlewares.ScopeFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Session not found"})
		return
	}

	var req services.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	department, err := h.service.Create(c.Request.Context(), scope, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, department)
}

func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	scope, err := middlewares.ScopeFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Session not found"})
		return
	}

	var req services.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	department, err := h.service.Update(c.Request.Context(), scope, c.Param("department_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, department)
}

func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	scope, err := middlewares.ScopeFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Session not found"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), scope, c.Param("department_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Department deleted"})
}
