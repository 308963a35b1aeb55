package repositories

import (
	"MediBook/cache"
	"MediBook/database"
	"MediBook/models"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ScheduleCacheExpiry = 24 * time.Hour
)

type ScheduleRepository struct {
	cache *cache.Cache
}

func NewScheduleRepository(cache *cache.Cache) *ScheduleRepository {
	return &ScheduleRepository{cache: cache}
}

// GetByDoctor returns all weekly rows for the doctor, ordered by weekday.
func (r *ScheduleRepository) GetByDoctor(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.scheduleCacheKey(doctorID)
	var cached []models.DoctorSchedule
	if err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	} else if err != cache.ErrMiss {
		log.Printf("Failed to get schedule from cache: %v", err)
	}

	var rows []models.DoctorSchedule
	err := database.DB.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("day_of_week").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor schedule: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, rows, ScheduleCacheExpiry); err != nil {
		log.Printf("Failed to set schedule in cache: %v", err)
	}
	return rows, nil
}

// GetAvailableByDoctor returns only the rows marked available, the set the
// booking flow consults.
func (r *ScheduleRepository) GetAvailableByDoctor(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	rows, err := r.GetByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	available := rows[:0:0]
	for _, row := range rows {
		if row.IsAvailable {
			available = append(available, row)
		}
	}
	return available, nil
}

// Replace swaps the doctor's full weekly schedule for the given rows inside
// one transaction. A failed insert rolls the delete back, so the doctor is
// never left with fewer days than were saved. Saving zero rows clears the
// schedule entirely.
func (r *ScheduleRepository) Replace(ctx context.Context, doctorID string, rows []models.DoctorSchedule) error {
	lockKey := fmt.Sprintf("schedule_lock:%s", doctorID)
	lockValue := uuid.New().String()
	locked, err := database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to acquire schedule lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("schedule is being updated by another request")
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release schedule lock: %v", err)
		}
	}()

	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doctorID).Delete(&models.DoctorSchedule{}).Error; err != nil {
			return fmt.Errorf("failed to clear existing schedule: %w", err)
		}
		for i := range rows {
			rows[i].DoctorID = doctorID
			if rows[i].ID == "" {
				rows[i].ID = uuid.New().String()
			}
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to insert schedule rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return r.cache.Delete(ctx, r.scheduleCacheKey(doctorID))
}

func (r *ScheduleRepository) scheduleCacheKey(doctorID string) string {
	return fmt.Sprintf("schedule_cache:%s", doctorID)
}
