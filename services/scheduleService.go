package services

import (
	"MediBook/models"
	"MediBook/policy"
	"MediBook/scheduling"
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ScheduleWriter is the full schedule contract, including the replace save.
type ScheduleWriter interface {
	GetByDoctor(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error)
	Replace(ctx context.Context, doctorID string, rows []models.DoctorSchedule) error
}

// ScheduleRow is one weekly window in a schedule save request.
type ScheduleRow struct {
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

func (r ScheduleRow) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DayOfWeek, validation.Min(0), validation.Max(6)),
		validation.Field(&r.StartTime, validation.Required, validation.Date(scheduling.TimeLayout)),
		validation.Field(&r.EndTime, validation.Required, validation.Date(scheduling.TimeLayout)),
	)
}

type ScheduleService struct {
	schedules ScheduleWriter
}

func NewScheduleService(schedules ScheduleWriter) *ScheduleService {
	return &ScheduleService{schedules: schedules}
}

// Get returns the doctor's weekly rows. Readable by anyone authenticated;
// the rows only describe availability.
func (s *ScheduleService) Get(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	return s.schedules.GetByDoctor(ctx, doctorID)
}

// Save replaces the doctor's weekly schedule with the given rows. Doctors
// save their own schedule, admins any; an empty row set clears all
// availability.
func (s *ScheduleService) Save(ctx context.Context, scope policy.Scope, doctorID string, rows []ScheduleRow) error {
	if !scope.CanEditSchedule(doctorID) {
		return policy.ErrForbidden
	}

	seen := make(map[int]bool, len(rows))
	records := make([]models.DoctorSchedule, 0, len(rows))
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			return fmt.Errorf("invalid schedule row for day %d: %w", row.DayOfWeek, err)
		}
		start, err := scheduling.ParseTime(row.StartTime)
		if err != nil {
			return err
		}
		end, err := scheduling.ParseTime(row.EndTime)
		if err != nil {
			return err
		}
		if !start.Before(end) {
			return fmt.Errorf("schedule row for day %d must end after it starts", row.DayOfWeek)
		}
		if seen[row.DayOfWeek] {
			return fmt.Errorf("duplicate schedule row for day %d", row.DayOfWeek)
		}
		seen[row.DayOfWeek] = true

		records = append(records, models.DoctorSchedule{
			DoctorID:    doctorID,
			DayOfWeek:   row.DayOfWeek,
			StartTime:   row.StartTime,
			EndTime:     row.EndTime,
			IsAvailable: row.IsAvailable,
		})
	}

	return s.schedules.Replace(ctx, doctorID, records)
}
