package models

import (
	"time"
)

// AppointmentStatus is the closed set of appointment lifecycle states.
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// Terminal reports whether no further transition is defined from s.
func (s AppointmentStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Valid reports whether s is one of the defined statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// AppointmentType distinguishes in-person visits from video consultations.
type AppointmentType string

const (
	TypeInPerson AppointmentType = "in_person"
	TypeVideo    AppointmentType = "video"
)

func (t AppointmentType) Valid() bool {
	return t == TypeInPerson || t == TypeVideo
}

// Appointment is the central booking entity. Rows are never deleted;
// a booking ends by transitioning into a terminal status.
// Dates are naive local "2006-01-02" strings, times "15:04".
type Appointment struct {
	ID              string            `gorm:"primaryKey;column:id" json:"id"`
	PatientID       string            `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID        string            `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	DepartmentID    string            `gorm:"column:department_id;not null;index" json:"department_id"`
	AppointmentDate string            `gorm:"column:appointment_date;not null;index" json:"appointment_date"`
	StartTime       string            `gorm:"column:start_time;not null" json:"start_time"`
	EndTime         string            `gorm:"column:end_time;not null" json:"end_time"`
	Status          AppointmentStatus `gorm:"size:20;not null;check:status IN ('scheduled', 'confirmed', 'in_progress', 'completed', 'cancelled', 'no_show');column:status" json:"status"`
	Type            AppointmentType   `gorm:"size:20;not null;check:type IN ('in_person', 'video');column:type" json:"type"`
	Reason          string            `gorm:"type:text;column:reason" json:"reason"`
	Notes           string            `gorm:"type:text;column:notes" json:"notes"`
	CreatedAt       time.Time         `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`
	Patient         Profile           `gorm:"foreignKey:PatientID;references:UserID" json:"patient,omitempty"`
	Doctor          Profile           `gorm:"foreignKey:DoctorID;references:UserID" json:"doctor,omitempty"`
	Department      Department        `gorm:"foreignKey:DepartmentID;references:ID" json:"department,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// DoctorSchedule is one weekly-recurring availability window. At most one
// row exists per (doctor_id, day_of_week); saving a schedule replaces the
// full set atomically.
type DoctorSchedule struct {
	ID          string    `gorm:"primaryKey;column:id" json:"id"`
	DoctorID    string    `gorm:"column:doctor_id;not null;index;uniqueIndex:idx_doctor_day" json:"doctor_id"`
	DayOfWeek   int       `gorm:"column:day_of_week;not null;check:day_of_week BETWEEN 0 AND 6;uniqueIndex:idx_doctor_day" json:"day_of_week"`
	StartTime   string    `gorm:"column:start_time;not null" json:"start_time"`
	EndTime     string    `gorm:"column:end_time;not null" json:"end_time"`
	IsAvailable bool      `gorm:"column:is_available;not null" json:"is_available"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (DoctorSchedule) TableName() string {
	return "doctor_schedules"
}

// MedicalRecord is authored by a doctor for a patient, optionally linked to
// an appointment. Records are immutable once created.
type MedicalRecord struct {
	ID            string    `gorm:"primaryKey;column:id" json:"id"`
	PatientID     string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID      string    `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	AppointmentID string    `gorm:"column:appointment_id;index" json:"appointment_id"`
	Diagnosis     string    `gorm:"type:text;not null;column:diagnosis" json:"diagnosis"`
	Prescription  string    `gorm:"type:text;column:prescription" json:"prescription"`
	Notes         string    `gorm:"type:text;column:notes" json:"notes"`
	CreatedAt     time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	Patient       Profile   `gorm:"foreignKey:PatientID;references:UserID" json:"patient,omitempty"`
	Doctor        Profile   `gorm:"foreignKey:DoctorID;references:UserID" json:"doctor,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
