package policy

import (
	"testing"

	"MediBook/models"

	"github.com/stretchr/testify/assert"
)

func TestCanReadAppointment(t *testing.T) {
	appt := &models.Appointment{PatientID: "pat-1", DoctorID: "doc-1"}

	tests := []struct {
		name  string
		scope Scope
		want  bool
	}{
		{"owning patient", Scope{Role: models.RolePatient, ActorID: "pat-1"}, true},
		{"other patient", Scope{Role: models.RolePatient, ActorID: "pat-2"}, false},
		{"owning doctor", Scope{Role: models.RoleDoctor, ActorID: "doc-1"}, true},
		{"other doctor", Scope{Role: models.RoleDoctor, ActorID: "doc-2"}, false},
		{"admin", Scope{Role: models.RoleAdmin, ActorID: "adm-1"}, true},
		{"unknown role", Scope{Role: models.Role("guest"), ActorID: "pat-1"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.scope.CanReadAppointment(appt))
		})
	}
}

func TestCanReadRecord(t *testing.T) {
	record := &models.MedicalRecord{PatientID: "pat-1", DoctorID: "doc-1"}

	assert.True(t, Scope{Role: models.RolePatient, ActorID: "pat-1"}.CanReadRecord(record))
	assert.False(t, Scope{Role: models.RolePatient, ActorID: "pat-2"}.CanReadRecord(record))
	assert.True(t, Scope{Role: models.RoleDoctor, ActorID: "doc-1"}.CanReadRecord(record))
	assert.False(t, Scope{Role: models.RoleDoctor, ActorID: "doc-9"}.CanReadRecord(record))
	assert.True(t, Scope{Role: models.RoleAdmin}.CanReadRecord(record))
}

func TestCanEditProfile(t *testing.T) {
	profile := &models.Profile{UserID: "user-1"}

	assert.True(t, Scope{Role: models.RolePatient, ActorID: "user-1"}.CanEditProfile(profile))
	assert.False(t, Scope{Role: models.RolePatient, ActorID: "user-2"}.CanEditProfile(profile))
	assert.True(t, Scope{Role: models.RoleAdmin, ActorID: "adm-1"}.CanEditProfile(profile))
}

func TestCanEditSchedule(t *testing.T) {
	assert.True(t, Scope{Role: models.RoleDoctor, ActorID: "doc-1"}.CanEditSchedule("doc-1"))
	assert.False(t, Scope{Role: models.RoleDoctor, ActorID: "doc-2"}.CanEditSchedule("doc-1"))
	assert.False(t, Scope{Role: models.RolePatient, ActorID: "doc-1"}.CanEditSchedule("doc-1"))
	assert.True(t, Scope{Role: models.RoleAdmin, ActorID: "adm-1"}.CanEditSchedule("doc-1"))
}
