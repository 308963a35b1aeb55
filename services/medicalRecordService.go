package services

import (
	"MediBook/models"
	"MediBook/policy"
	"MediBook/repositories"
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MedicalRecordRequest is a doctor's submission of a new record.
type MedicalRecordRequest struct {
	PatientID     string `json:"patient_id"`
	AppointmentID string `json:"appointment_id"`
	Diagnosis     string `json:"diagnosis"`
	Prescription  string `json:"prescription"`
	Notes         string `json:"notes"`
}

func (r MedicalRecordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PatientID, validation.Required),
		validation.Field(&r.Diagnosis, validation.Required, validation.Length(1, 5000)),
		validation.Field(&r.Prescription, validation.Length(0, 5000)),
		validation.Field(&r.Notes, validation.Length(0, 5000)),
	)
}

type MedicalRecordService struct {
	records      *repositories.MedicalRecordRepository
	appointments AppointmentStore
}

func NewMedicalRecordService(records *repositories.MedicalRecordRepository, appointments AppointmentStore) *MedicalRecordService {
	return &MedicalRecordService{records: records, appointments: appointments}
}

// Create authors a record as the acting doctor. When the record references an
// appointment, that appointment must be one of the doctor's own.
func (s *MedicalRecordService) Create(ctx context.Context, scope policy.Scope, req MedicalRecordRequest) (*models.MedicalRecord, error) {
	if scope.Role != models.RoleDoctor {
		return nil, policy.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.AppointmentID != "" {
		appointment, err := s.appointments.GetByID(ctx, scope, req.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appointment.PatientID != req.PatientID {
			return nil, validation.NewError("validation_record_mismatch", "appointment does not belong to this patient")
		}
	}

	record := &models.MedicalRecord{
		PatientID:     req.PatientID,
		DoctorID:      scope.ActorID,
		AppointmentID: req.AppointmentID,
		Diagnosis:     req.Diagnosis,
		Prescription:  req.Prescription,
		Notes:         req.Notes,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// List returns the records the scope may read.
func (s *MedicalRecordService) List(ctx context.Context, scope policy.Scope) ([]models.MedicalRecord, error) {
	return s.records.List(ctx, scope)
}

// Get returns one record the scope may read.
func (s *MedicalRecordService) Get(ctx context.Context, scope policy.Scope, id string) (*models.MedicalRecord, error) {
	return s.records.GetByID(ctx, scope, id)
}
