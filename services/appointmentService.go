package services

import (
	"MediBook/models"
	"MediBook/policy"
	"MediBook/repositories"
	"MediBook/scheduling"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// AppointmentStore is the persistence contract the booking flow depends on.
type AppointmentStore interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, scope policy.Scope, id string) (*models.Appointment, error)
	List(ctx context.Context, scope policy.Scope, filter repositories.AppointmentFilter) ([]models.Appointment, error)
	TakenSlots(ctx context.Context, doctorID, date string) ([]string, error)
	UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error
	CountByStatus(ctx context.Context) (map[models.AppointmentStatus]int64, error)
}

// ScheduleStore is the schedule access the booking flow depends on.
type ScheduleStore interface {
	GetAvailableByDoctor(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error)
}

// DoctorDirectory resolves doctors for booking validation.
type DoctorDirectory interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
}

// AccountDirectory resolves account emails for notifications.
type AccountDirectory interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// BookingNotifier delivers appointment emails. A nil notifier disables mail.
type BookingNotifier interface {
	AppointmentBooked(email string, appointment *models.Appointment) error
	AppointmentStatusChanged(email string, appointment *models.Appointment) error
}

// BookingRequest is the confirm-step submission of the booking flow.
type BookingRequest struct {
	DoctorID     string                 `json:"doctor_id"`
	DepartmentID string                 `json:"department_id"`
	Date         string                 `json:"appointment_date"`
	StartTime    string                 `json:"start_time"`
	Type         models.AppointmentType `json:"type"`
	Reason       string                 `json:"reason"`
}

// Validate checks the request shape; availability is checked separately.
func (r BookingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DoctorID, validation.Required),
		validation.Field(&r.DepartmentID, validation.Required),
		validation.Field(&r.Date, validation.Required, validation.Date(scheduling.DateLayout)),
		validation.Field(&r.StartTime, validation.Required, validation.Date(scheduling.TimeLayout)),
		validation.Field(&r.Reason, validation.Length(0, 2000)),
	)
}

// DayAvailability is the datetime step's payload for one bookable date.
type DayAvailability struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

var (
	// ErrDateUnavailable rejects dates outside the doctor's weekly schedule
	// or inside the one-day lead window.
	ErrDateUnavailable = errors.New("doctor is not available on this date")
	// ErrDoctorMismatch rejects a booking whose doctor is not a doctor in
	// the selected department.
	ErrDoctorMismatch = errors.New("selected doctor does not belong to the selected department")
)

type AppointmentService struct {
	appointments AppointmentStore
	schedules    ScheduleStore
	doctors      DoctorDirectory
	accounts     AccountDirectory
	notifier     BookingNotifier
	now          func() time.Time
}

func NewAppointmentService(appointments AppointmentStore, schedules ScheduleStore, doctors DoctorDirectory, accounts AccountDirectory, notifier BookingNotifier) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		schedules:    schedules,
		doctors:      doctors,
		accounts:     accounts,
		notifier:     notifier,
		now:          time.Now,
	}
}

// Availability returns the free slots for one doctor and date, the datetime
// step of the booking flow. The date must clear the weekly schedule and the
// one-day lead time; already-taken slots are excluded.
func (s *AppointmentService) Availability(ctx context.Context, doctorID, date string) (*DayAvailability, error) {
	day, err := scheduling.ParseDate(date)
	if err != nil {
		return nil, err
	}

	rows, err := s.schedules.GetAvailableByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !scheduling.IsDateAvailable(rows, day, s.now()) {
		return nil, ErrDateUnavailable
	}

	row, ok := scheduling.RowForWeekday(rows, day)
	if !ok {
		return nil, ErrDateUnavailable
	}

	taken, err := s.appointments.TakenSlots(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	return &DayAvailability{Date: date, Slots: scheduling.FreeSlots(row, taken)}, nil
}

// AvailableDays returns the weekdays a doctor accepts bookings on, shown next
// to the date picker.
func (s *AppointmentService) AvailableDays(ctx context.Context, doctorID string) ([]int, error) {
	rows, err := s.schedules.GetAvailableByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	days := make([]int, 0, len(rows))
	for _, row := range rows {
		days = append(days, row.DayOfWeek)
	}
	return days, nil
}

// Book validates and persists the confirm-step submission. The appointment is
// created in scheduled status with the end time derived from the fixed slot
// duration; the acting patient is taken from the scope, never the payload.
func (s *AppointmentService) Book(ctx context.Context, scope policy.Scope, req BookingRequest) (*models.Appointment, error) {
	if scope.Role != models.RolePatient {
		return nil, policy.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Type == "" {
		req.Type = models.TypeInPerson
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("invalid appointment type: %s", req.Type)
	}

	doctor, err := s.doctors.GetByUserID(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor.Role != models.RoleDoctor || doctor.DepartmentID != req.DepartmentID {
		return nil, ErrDoctorMismatch
	}

	// The requested slot must still be offerable and free.
	availability, err := s.Availability(ctx, req.DoctorID, req.Date)
	if err != nil {
		return nil, err
	}
	if !containsSlot(availability.Slots, req.StartTime) {
		return nil, repositories.ErrSlotTaken
	}

	endTime, err := scheduling.SlotEnd(req.StartTime)
	if err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		ID:              uuid.New().String(),
		PatientID:       scope.ActorID,
		DoctorID:        req.DoctorID,
		DepartmentID:    req.DepartmentID,
		AppointmentDate: req.Date,
		StartTime:       req.StartTime,
		EndTime:         endTime,
		Status:          models.StatusScheduled,
		Type:            req.Type,
		Reason:          req.Reason,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.notifyBooked(ctx, appointment)
	return appointment, nil
}

// Transition applies a status-machine action for the acting role. The status
// machine decides legality; the scope decides whether the actor may touch
// this appointment at all.
func (s *AppointmentService) Transition(ctx context.Context, scope policy.Scope, id string, action scheduling.Action) (*models.Appointment, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("unknown action: %s", action)
	}

	appointment, err := s.appointments.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	next, err := scheduling.Transition(appointment.Status, scope.Role, action)
	if err != nil {
		return nil, err
	}
	if err := s.appointments.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	appointment.Status = next

	s.notifyStatusChanged(ctx, appointment)
	return appointment, nil
}

// List returns the appointments the scope may see.
func (s *AppointmentService) List(ctx context.Context, scope policy.Scope, filter repositories.AppointmentFilter) ([]models.Appointment, error) {
	return s.appointments.List(ctx, scope, filter)
}

// Get returns one appointment the scope may see.
func (s *AppointmentService) Get(ctx context.Context, scope policy.Scope, id string) (*models.Appointment, error) {
	return s.appointments.GetByID(ctx, scope, id)
}

// Stats aggregates appointment counts per status for the admin dashboard.
func (s *AppointmentService) Stats(ctx context.Context, scope policy.Scope) (map[models.AppointmentStatus]int64, error) {
	if scope.Role != models.RoleAdmin {
		return nil, policy.ErrForbidden
	}
	return s.appointments.CountByStatus(ctx)
}

// Mail failures never fail the operation that triggered them.
func (s *AppointmentService) notifyBooked(ctx context.Context, appointment *models.Appointment) {
	if s.notifier == nil {
		return
	}
	email, err := s.patientEmail(ctx, appointment.PatientID)
	if err != nil {
		log.Printf("Failed to resolve patient email for appointment %s: %v", appointment.ID, err)
		return
	}
	if err := s.notifier.AppointmentBooked(email, appointment); err != nil {
		log.Printf("Failed to send booking email for appointment %s: %v", appointment.ID, err)
	}
}

func (s *AppointmentService) notifyStatusChanged(ctx context.Context, appointment *models.Appointment) {
	if s.notifier == nil {
		return
	}
	email, err := s.patientEmail(ctx, appointment.PatientID)
	if err != nil {
		log.Printf("Failed to resolve patient email for appointment %s: %v", appointment.ID, err)
		return
	}
	if err := s.notifier.AppointmentStatusChanged(email, appointment); err != nil {
		log.Printf("Failed to send status email for appointment %s: %v", appointment.ID, err)
	}
}

func (s *AppointmentService) patientEmail(ctx context.Context, patientID string) (string, error) {
	user, err := s.accounts.GetByID(ctx, patientID)
	if err != nil {
		return "", err
	}
	return user.Email, nil
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
