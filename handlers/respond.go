package handlers

import (
	"errors"
	"net/http"

	"MediBook/policy"
	"MediBook/repositories"
	"MediBook/scheduling"
	"MediBook/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
)

// respondError maps service-layer errors onto HTTP statuses. Unclassified
// errors surface as 500 with the error text, matching how the previous
// handlers reported persistence failures.
func respondError(c *gin.Context, err error) {
	var terr *scheduling.ErrTransition
	var verrs validation.Errors
	var verr validation.Error

	switch {
	case errors.Is(err, policy.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrAppointmentNotFound),
		errors.Is(err, repositories.ErrProfileNotFound),
		errors.Is(err, repositories.ErrDepartmentNotFound),
		errors.Is(err, repositories.ErrRecordNotFound),
		errors.Is(err, repositories.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &terr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDateUnavailable),
		errors.Is(err, services.ErrDoctorMismatch),
		errors.As(err, &verrs),
		errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
