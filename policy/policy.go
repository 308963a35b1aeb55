package policy

import (
	"errors"

	"MediBook/models"

	"gorm.io/gorm"
)

// ErrForbidden is returned when a scope does not admit the requested row.
var ErrForbidden = errors.New("actor is not permitted to access this resource")

// Scope identifies the acting user for visibility filtering. Patients see
// rows where they are the patient, doctors where they are the doctor, admins
// see everything. The database-side row policies are the second enforcement
// layer; this package is the query-side one.
type Scope struct {
	Role    models.Role
	ActorID string
}

// Appointments narrows an appointment query to what the scope may read.
func (s Scope) Appointments(db *gorm.DB) *gorm.DB {
	switch s.Role {
	case models.RolePatient:
		return db.Where("patient_id = ?", s.ActorID)
	case models.RoleDoctor:
		return db.Where("doctor_id = ?", s.ActorID)
	case models.RoleAdmin:
		return db
	}
	// Unknown role reads nothing.
	return db.Where("1 = 0")
}

// MedicalRecords narrows a medical-record query to what the scope may read.
func (s Scope) MedicalRecords(db *gorm.DB) *gorm.DB {
	switch s.Role {
	case models.RolePatient:
		return db.Where("patient_id = ?", s.ActorID)
	case models.RoleDoctor:
		return db.Where("doctor_id = ?", s.ActorID)
	case models.RoleAdmin:
		return db
	}
	return db.Where("1 = 0")
}

// CanReadAppointment reports whether the scope may read one fetched row.
// Used after point lookups, where the query was keyed by ID alone.
func (s Scope) CanReadAppointment(a *models.Appointment) bool {
	switch s.Role {
	case models.RolePatient:
		return a.PatientID == s.ActorID
	case models.RoleDoctor:
		return a.DoctorID == s.ActorID
	case models.RoleAdmin:
		return true
	}
	return false
}

// CanReadRecord reports whether the scope may read a medical record.
func (s Scope) CanReadRecord(r *models.MedicalRecord) bool {
	switch s.Role {
	case models.RolePatient:
		return r.PatientID == s.ActorID
	case models.RoleDoctor:
		return r.DoctorID == s.ActorID
	case models.RoleAdmin:
		return true
	}
	return false
}

// CanEditProfile reports whether the scope may mutate the given profile.
// Owners edit their own profile, admins edit any.
func (s Scope) CanEditProfile(p *models.Profile) bool {
	if s.Role == models.RoleAdmin {
		return true
	}
	return p.UserID == s.ActorID
}

// CanEditSchedule reports whether the scope may replace a doctor's schedule.
func (s Scope) CanEditSchedule(doctorID string) bool {
	if s.Role == models.RoleAdmin {
		return true
	}
	return s.Role == models.RoleDoctor && s.ActorID == doctorID
}
