package repositories

import (
	"MediBook/cache"
	"MediBook/database"
	"MediBook/models"
	"MediBook/policy"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentCacheExpiry = 24 * time.Hour
)

// ErrSlotTaken signals a booking collision: another live appointment already
// holds the requested doctor/date/start combination.
var ErrSlotTaken = errors.New("the selected time slot is no longer available")

// ErrAppointmentNotFound is returned when a point lookup finds no row the
// actor may see.
var ErrAppointmentNotFound = errors.New("appointment not found")

// AppointmentFilter narrows list queries beyond the actor scope.
type AppointmentFilter struct {
	Status   models.AppointmentStatus
	DateFrom string
	DateTo   string
}

type AppointmentRepository struct {
	cache *cache.Cache
}

func NewAppointmentRepository(cache *cache.Cache) *AppointmentRepository {
	return &AppointmentRepository{cache: cache}
}

// Create inserts a new appointment. The write is serialized per
// doctor/date/slot behind a redis lock and double-checked against live rows,
// with the partial unique index as the final guard, so two concurrent
// bookings of one slot cannot both land.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	lockKey := fmt.Sprintf("slot_lock:%s_%s_%s", appointment.DoctorID, appointment.AppointmentDate, appointment.StartTime)
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire slot lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release slot lock: %v", err)
		}
	}()

	var live int64
	err = database.DB.Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND start_time = ? AND status <> ?",
			appointment.DoctorID, appointment.AppointmentDate, appointment.StartTime, models.StatusCancelled).
		Count(&live).Error
	if err != nil {
		return fmt.Errorf("failed to check slot availability: %w", err)
	}
	if live > 0 {
		return ErrSlotTaken
	}

	if err := database.DB.Create(appointment).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return r.cache.DeleteAll(ctx, "appointment_cache:*")
}

// isUniqueViolation matches the live-slot index violation raised when the
// insert loses a race the lock and pre-check did not cover.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "idx_live_slot") ||
		strings.Contains(err.Error(), "duplicate key")
}

// GetByID returns one appointment with its display joins, restricted to what
// the scope may read.
func (r *AppointmentRepository) GetByID(ctx context.Context, scope policy.Scope, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.appointmentCacheKey(id)
	var cached models.Appointment
	if err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		if !scope.CanReadAppointment(&cached) {
			return nil, ErrAppointmentNotFound
		}
		return &cached, nil
	} else if err != cache.ErrMiss {
		log.Printf("Failed to get appointment from cache: %v", err)
	}

	var appointment models.Appointment
	err := database.DB.
		Preload("Patient", profileDisplayFields).
		Preload("Doctor", profileDisplayFields).
		Preload("Department").
		First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	if !scope.CanReadAppointment(&appointment) {
		return nil, ErrAppointmentNotFound
	}

	if err := r.cache.SetJSON(ctx, cacheKey, appointment, AppointmentCacheExpiry); err != nil {
		log.Printf("Failed to set appointment in cache: %v", err)
	}
	return &appointment, nil
}

// List returns the appointments visible to the scope, newest date first.
func (r *AppointmentRepository) List(ctx context.Context, scope policy.Scope, filter AppointmentFilter) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := scope.Appointments(database.DB.WithContext(ctx).Model(&models.Appointment{}))
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != "" {
		query = query.Where("appointment_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("appointment_date <= ?", filter.DateTo)
	}

	var appointments []models.Appointment
	err := query.
		Preload("Patient", profileDisplayFields).
		Preload("Doctor", profileDisplayFields).
		Preload("Department").
		Order("appointment_date DESC, start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// TakenSlots returns the start times already held by live appointments for
// the doctor on the given date.
func (r *AppointmentRepository) TakenSlots(ctx context.Context, doctorID, date string) ([]string, error) {
	var starts []string
	err := database.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND status <> ?", doctorID, date, models.StatusCancelled).
		Order("start_time").
		Pluck("start_time", &starts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load taken slots: %w", err)
	}
	return starts, nil
}

// UpdateStatus persists a status transition already validated by the caller.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status value: %s", status)
	}
	result := database.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update appointment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return r.cache.Delete(ctx, r.appointmentCacheKey(id))
}

// CountByStatus aggregates appointment counts for the admin dashboard.
func (r *AppointmentRepository) CountByStatus(ctx context.Context) (map[models.AppointmentStatus]int64, error) {
	type row struct {
		Status models.AppointmentStatus
		Total  int64
	}
	var rows []row
	err := database.DB.WithContext(ctx).Model(&models.Appointment{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}

	counts := make(map[models.AppointmentStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}

func (r *AppointmentRepository) appointmentCacheKey(id string) string {
	return fmt.Sprintf("appointment_cache:%s", id)
}

// profileDisplayFields limits joined profiles to the display columns the
// dashboards render.
func profileDisplayFields(db *gorm.DB) *gorm.DB {
	return db.Select("id, user_id, role, full_name, avatar_url, specialization, department_id")
}
