package services

import (
	"context"

	"MediBook/models"
	"MediBook/policy"
	"MediBook/repositories"
)

// stubAppointments implements AppointmentStore with overridable functions so
// each test wires only the calls it expects.
type stubAppointments struct {
	createFn        func(ctx context.Context, appointment *models.Appointment) error
	getByIDFn       func(ctx context.Context, scope policy.Scope, id string) (*models.Appointment, error)
	listFn          func(ctx context.Context, scope policy.Scope, filter repositories.AppointmentFilter) ([]models.Appointment, error)
	takenSlotsFn    func(ctx context.Context, doctorID, date string) ([]string, error)
	updateStatusFn  func(ctx context.Context, id string, status models.AppointmentStatus) error
	countByStatusFn func(ctx context.Context) (map[models.AppointmentStatus]int64, error)
}

func (s *stubAppointments) Create(ctx context.Context, appointment *models.Appointment) error {
	return s.createFn(ctx, appointment)
}

func (s *stubAppointments) GetByID(ctx context.Context, scope policy.Scope, id string) (*models.Appointment, error) {
	return s.getByIDFn(ctx, scope, id)
}

func (s *stubAppointments) List(ctx context.Context, scope policy.Scope, filter repositories.AppointmentFilter) ([]models.Appointment, error) {
	return s.listFn(ctx, scope, filter)
}

func (s *stubAppointments) TakenSlots(ctx context.Context, doctorID, date string) ([]string, error) {
	if s.takenSlotsFn == nil {
		return nil, nil
	}
	return s.takenSlotsFn(ctx, doctorID, date)
}

func (s *stubAppointments) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	return s.updateStatusFn(ctx, id, status)
}

func (s *stubAppointments) CountByStatus(ctx context.Context) (map[models.AppointmentStatus]int64, error) {
	return s.countByStatusFn(ctx)
}

// stubSchedules serves a fixed weekly schedule.
type stubSchedules struct {
	rows []models.DoctorSchedule
	err  error
}

func (s *stubSchedules) GetAvailableByDoctor(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	return s.rows, s.err
}

// stubScheduleWriter records the last replace call.
type stubScheduleWriter struct {
	rows         []models.DoctorSchedule
	replacedWith []models.DoctorSchedule
	replaced     bool
	err          error
}

func (s *stubScheduleWriter) GetByDoctor(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	return s.rows, s.err
}

func (s *stubScheduleWriter) Replace(ctx context.Context, doctorID string, rows []models.DoctorSchedule) error {
	s.replaced = true
	s.replacedWith = rows
	return s.err
}

// stubDoctors resolves every lookup to one fixed profile.
type stubDoctors struct {
	profile *models.Profile
	err     error
}

func (s *stubDoctors) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profile, s.err
}

// stubAccounts resolves every lookup to one fixed user.
type stubAccounts struct {
	user *models.User
	err  error
}

func (s *stubAccounts) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.user, s.err
}

// recordingNotifier counts deliveries instead of sending mail.
type recordingNotifier struct {
	booked        int
	statusChanged int
	lastEmail     string
}

func (n *recordingNotifier) AppointmentBooked(email string, appointment *models.Appointment) error {
	n.booked++
	n.lastEmail = email
	return nil
}

func (n *recordingNotifier) AppointmentStatusChanged(email string, appointment *models.Appointment) error {
	n.statusChanged++
	n.lastEmail = email
	return nil
}
