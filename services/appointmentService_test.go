package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"MediBook/models"
	"MediBook/policy"
	"MediBook/repositories"
	"MediBook/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Thursday. The Monday after it is 2026-03-09.
var testNow = time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)

func mondaySchedule() []models.DoctorSchedule {
	return []models.DoctorSchedule{
		{
			ID:          "row-1",
			DoctorID:    "doc-1",
			DayOfWeek:   1,
			StartTime:   "09:00",
			EndTime:     "17:00",
			IsAvailable: true,
		},
	}
}

func newBookingService(appointments *stubAppointments, schedules *stubSchedules, doctor *models.Profile, notifier BookingNotifier) *AppointmentService {
	service := NewAppointmentService(
		appointments,
		schedules,
		&stubDoctors{profile: doctor},
		&stubAccounts{user: &models.User{ID: "pat-1", Email: "patient@example.com"}},
		notifier,
	)
	service.now = func() time.Time { return testNow }
	return service
}

func TestAvailabilityReturnsFreeSlots(t *testing.T) {
	appointments := &stubAppointments{
		takenSlotsFn: func(ctx context.Context, doctorID, date string) ([]string, error) {
			return []string{"10:30"}, nil
		},
	}
	service := newBookingService(appointments, &stubSchedules{rows: mondaySchedule()}, nil, nil)

	availability, err := service.Availability(context.Background(), "doc-1", "2026-03-09")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-09", availability.Date)
	assert.Contains(t, availability.Slots, "10:00")
	assert.NotContains(t, availability.Slots, "10:30")
	assert.Len(t, availability.Slots, 13)
}

func TestAvailabilityRejectsUnscheduledDay(t *testing.T) {
	service := newBookingService(&stubAppointments{}, &stubSchedules{rows: mondaySchedule()}, nil, nil)

	// Tuesday: the doctor only works Mondays.
	_, err := service.Availability(context.Background(), "doc-1", "2026-03-10")
	assert.ErrorIs(t, err, ErrDateUnavailable)
}

func TestAvailabilityRejectsSameDay(t *testing.T) {
	service := newBookingService(&stubAppointments{}, &stubSchedules{rows: mondaySchedule()}, nil, nil)
	service.now = func() time.Time {
		// The requested Monday morning itself.
		return time.Date(2026, time.March, 9, 8, 0, 0, 0, time.UTC)
	}

	_, err := service.Availability(context.Background(), "doc-1", "2026-03-09")
	assert.ErrorIs(t, err, ErrDateUnavailable)
}

func TestBookCreatesScheduledAppointment(t *testing.T) {
	var created *models.Appointment
	appointments := &stubAppointments{
		createFn: func(ctx context.Context, appointment *models.Appointment) error {
			created = appointment
			return nil
		},
	}
	doctor := &models.Profile{UserID: "doc-1", Role: models.RoleDoctor, DepartmentID: "dep-cardio"}
	notifier := &recordingNotifier{}
	service := newBookingService(appointments, &stubSchedules{rows: mondaySchedule()}, doctor, notifier)

	scope := policy.Scope{Role: models.RolePatient, ActorID: "pat-1"}
	appointment, err := service.Book(context.Background(), scope, BookingRequest{
		DoctorID:     "doc-1",
		DepartmentID: "dep-cardio",
		Date:         "2026-03-09",
		StartTime:    "10:00",
		Reason:       "annual check-up",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotEmpty(t, appointment.ID)
	assert.Equal(t, "pat-1", appointment.PatientID)
	assert.Equal(t, "doc-1", appointment.DoctorID)
	assert.Equal(t, "2026-03-09", appointment.AppointmentDate)
	assert.Equal(t, "10:00", appointment.StartTime)
	assert.Equal(t, "10:30", appointment.EndTime)
	assert.Equal(t, models.StatusScheduled, appointment.Status)
	assert.Equal(t, models.TypeInPerson, appointment.Type)
	assert.Equal(t, 1, notifier.booked)
	assert.Equal(t, "patient@example.com", notifier.lastEmail)
}

func TestBookRejectsNonPatient(t *testing.T) {
	service := newBookingService(&stubAppointments{}, &stubSchedules{}, nil, nil)

	scope := policy.Scope{Role: models.RoleDoctor, ActorID: "doc-1"}
	_, err := service.Book(context.Background(), scope, BookingRequest{})
	assert.ErrorIs(t, err, policy.ErrForbidden)
}

func TestBookRejectsDoctorOutsideDepartment(t *testing.T) {
	doctor := &models.Profile{UserID: "doc-1", Role: models.RoleDoctor, DepartmentID: "dep-derm"}
	service := newBookingService(&stubAppointments{}, &stubSchedules{rows: mondaySchedule()}, doctor, nil)

	scope := policy.Scope{Role: models.RolePatient, ActorID: "pat-1"}
	_, err := service.Book(context.Background(), scope, BookingRequest{
		DoctorID:     "doc-1",
		DepartmentID: "dep-cardio",
		Date:         "2026-03-09",
		StartTime:    "10:00",
	})
	assert.ErrorIs(t, err, ErrDoctorMismatch)
}

func TestBookRejectsTakenSlot(t *testing.T) {
	appointments := &stubAppointments{
		takenSlotsFn: func(ctx context.Context, doctorID, date string) ([]string, error) {
			return []string{"10:00"}, nil
		},
	}
	doctor := &models.Profile{UserID: "doc-1", Role: models.RoleDoctor, DepartmentID: "dep-cardio"}
	service := newBookingService(appointments, &stubSchedules{rows: mondaySchedule()}, doctor, nil)

	scope := policy.Scope{Role: models.RolePatient, ActorID: "pat-1"}
	_, err := service.Book(context.Background(), scope, BookingRequest{
		DoctorID:     "doc-1",
		DepartmentID: "dep-cardio",
		Date:         "2026-03-09",
		StartTime:    "10:00",
	})
	assert.ErrorIs(t, err, repositories.ErrSlotTaken)
}

func TestBookRejectsMalformedRequest(t *testing.T) {
	service := newBookingService(&stubAppointments{}, &stubSchedules{}, nil, nil)

	scope := policy.Scope{Role: models.RolePatient, ActorID: "pat-1"}
	_, err := service.Book(context.Background(), scope, BookingRequest{
		DoctorID:     "doc-1",
		DepartmentID: "dep-cardio",
		Date:         "next monday",
		StartTime:    "10:00",
	})
	assert.Error(t, err)
}

func TestTransitionUpdatesStatusAndNotifies(t *testing.T) {
	var updatedTo models.AppointmentStatus
	appointments := &stubAppointments{
		getByIDFn: func(ctx context.Context, scope policy.Scope, id string) (*models.Appointment, error) {
			return &models.Appointment{ID: id, PatientID: "pat-1", DoctorID: "doc-1", Status: models.StatusScheduled}, nil
		},
		updateStatusFn: func(ctx context.Context, id string, status models.AppointmentStatus) error {
			updatedTo = status
			return nil
		},
	}
	notifier := &recordingNotifier{}
	service := newBookingService(appointments, &stubSchedules{}, nil, notifier)

	scope := policy.Scope{Role: models.RoleDoctor, ActorID: "doc-1"}
	appointment, err := service.Transition(context.Background(), scope, "appt-1", scheduling.ActionConfirm)
	require.NoError(t, err)

	assert.Equal(t, models.StatusConfirmed, appointment.Status)
	assert.Equal(t, models.StatusConfirmed, updatedTo)
	assert.Equal(t, 1, notifier.statusChanged)
}

func TestTransitionRejectsIllegalAction(t *testing.T) {
	appointments := &stubAppointments{
		getByIDFn: func(ctx context.Context, scope policy.Scope, id string) (*models.Appointment, error) {
			return &models.Appointment{ID: id, Status: models.StatusScheduled}, nil
		},
		updateStatusFn: func(ctx context.Context, id string, status models.AppointmentStatus) error {
			t.Fatal("status must not be updated for a rejected transition")
			return nil
		},
	}
	service := newBookingService(appointments, &stubSchedules{}, nil, nil)

	scope := policy.Scope{Role: models.RolePatient, ActorID: "pat-1"}
	_, err := service.Transition(context.Background(), scope, "appt-1", scheduling.ActionConfirm)

	var transitionErr *scheduling.ErrTransition
	assert.ErrorAs(t, err, &transitionErr)
}

func TestTransitionRejectsUnknownAction(t *testing.T) {
	service := newBookingService(&stubAppointments{}, &stubSchedules{}, nil, nil)

	scope := policy.Scope{Role: models.RoleAdmin, ActorID: "adm-1"}
	_, err := service.Transition(context.Background(), scope, "appt-1", scheduling.Action("archive"))
	assert.Error(t, err)
}

func TestAvailableDaysListsScheduledWeekdays(t *testing.T) {
	rows := append(mondaySchedule(), models.DoctorSchedule{
		ID: "row-2", DoctorID: "doc-1", DayOfWeek: 3,
		StartTime: "09:00", EndTime: "12:00", IsAvailable: true,
	})
	service := newBookingService(&stubAppointments{}, &stubSchedules{rows: rows}, nil, nil)

	days, err := service.AvailableDays(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, days)
}

func TestStatsRequiresAdmin(t *testing.T) {
	counts := map[models.AppointmentStatus]int64{models.StatusScheduled: 4}
	appointments := &stubAppointments{
		countByStatusFn: func(ctx context.Context) (map[models.AppointmentStatus]int64, error) {
			return counts, nil
		},
	}
	service := newBookingService(appointments, &stubSchedules{}, nil, nil)

	_, err := service.Stats(context.Background(), policy.Scope{Role: models.RolePatient, ActorID: "pat-1"})
	assert.ErrorIs(t, err, policy.ErrForbidden)

	got, err := service.Stats(context.Background(), policy.Scope{Role: models.RoleAdmin, ActorID: "adm-1"})
	require.NoError(t, err)
	assert.Equal(t, counts, got)
}

func TestAvailabilityPropagatesScheduleError(t *testing.T) {
	wantErr := errors.New("connection refused")
	service := newBookingService(&stubAppointments{}, &stubSchedules{err: wantErr}, nil, nil)

	_, err := service.Availability(context.Background(), "doc-1", "2026-03-09")
	assert.ErrorIs(t, err, wantErr)
}
