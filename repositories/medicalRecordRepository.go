package repositories

import (
	"MediBook/database"
	"MediBook/models"
	"MediBook/policy"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrRecordNotFound = errors.New("medical record not found")

// MedicalRecordRepository persists doctor-authored records. Records are
// immutable: there is no update or delete path.
type MedicalRecordRepository struct{}

func NewMedicalRecordRepository() *MedicalRecordRepository {
	return &MedicalRecordRepository{}
}

func (r *MedicalRecordRepository) Create(ctx context.Context, record *models.MedicalRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if err := database.DB.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create medical record: %w", err)
	}
	return nil
}

func (r *MedicalRecordRepository) GetByID(ctx context.Context, scope policy.Scope, id string) (*models.MedicalRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var record models.MedicalRecord
	err := database.DB.WithContext(ctx).
		Preload("Patient", profileDisplayFields).
		Preload("Doctor", profileDisplayFields).
		First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get medical record: %w", err)
	}
	if !scope.CanReadRecord(&record) {
		return nil, ErrRecordNotFound
	}
	return &record, nil
}

// List returns the records visible to the scope, newest first.
func (r *MedicalRecordRepository) List(ctx context.Context, scope policy.Scope) ([]models.MedicalRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var records []models.MedicalRecord
	err := scope.MedicalRecords(database.DB.WithContext(ctx).Model(&models.MedicalRecord{})).
		Preload("Patient", profileDisplayFields).
		Preload("Doctor", profileDisplayFields).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}
