package controllers

import (
	"MediBook/handlers"
	"MediBook/middlewares"
	"MediBook/models"

	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes registers the scheduling API. Everything here requires a
// valid session; role gating narrows the admin- and doctor-only surfaces.
// The access policy inside the services is the second enforcement layer.
func SetupAPIRoutes(
	router *gin.Engine,
	departmentHandler *handlers.DepartmentHandler,
	profileHandler *handlers.ProfileHandler,
	scheduleHandler *handlers.ScheduleHandler,
	appointmentHandler *handlers.AppointmentHandler,
	medicalRecordHandler *handlers.MedicalRecordHandler,
) {
	api := router.Group("/api").Use(middlewares.TokenAuthMiddleware())
	{
		// Booking flow: department -> doctor -> datetime -> confirm.
		api.GET("/departments", departmentHandler.ListDepartments)
		api.GET("/departments/:department_id", departmentHandler.GetDepartmentByID)
		api.GET("/departments/:department_id/doctors", profileHandler.ListDoctors)
		api.GET("/doctors/:doctor_id/available-days", appointmentHandler.GetAvailableDays)
		api.GET("/doctors/:doctor_id/availability", appointmentHandler.GetAvailability)

		api.GET("/appointments", appointmentHandler.ListAppointments)
		api.GET("/appointments/:appointment_id", appointmentHandler.GetAppointmentByID)
		api.PUT("/appointments/:appointment_id/status", appointmentHandler.TransitionAppointment)

		api.GET("/profiles/:user_id", profileHandler.GetProfile)
		api.PUT("/profiles/:user_id", profileHandler.UpdateProfile)

		api.GET("/doctors/:doctor_id/schedule", scheduleHandler.GetSchedule)

		api.GET("/medical-records", medicalRecordHandler.ListMedicalRecords)
		api.GET("/medical-records/:record_id", medicalRecordHandler.GetMedicalRecordByID)
	}

	patientGroup := router.Group("/api").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RolePatient),
	)
	{
		patientGroup.POST("/appointments", appointmentHandler.BookAppointment)
	}

	doctorGroup := router.Group("/api").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin),
	)
	{
		doctorGroup.PUT("/doctors/:doctor_id/schedule", scheduleHandler.SaveSchedule)
	}

	recordGroup := router.Group("/api").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RoleDoctor),
	)
	{
		recordGroup.POST("/medical-records", medicalRecordHandler.CreateMedicalRecord)
	}

	adminGroup := router.Group("/api/admin").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RoleAdmin),
	)
	{
		adminGroup.GET("/users", profileHandler.ListUsers)
		adminGroup.GET("/stats", appointmentHandler.GetStats)
		adminGroup.POST("/departments", departmentHandler.CreateDepartment)
		adminGroup.PUT("/departments/:department_id", departmentHandler.UpdateDepartment)
		adminGroup.DELETE("/departments/:department_id", departmentHandler.DeleteDepartment)
	}
}
