package scheduling

import (
	"testing"

	"MediBook/models"

	"github.com/stretchr/testify/assert"
)

func TestDoctorLifecycle(t *testing.T) {
	status := models.StatusScheduled

	status, err := Transition(status, models.RoleDoctor, ActionConfirm)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, status)

	status, err = Transition(status, models.RoleDoctor, ActionStart)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, status)

	status, err = Transition(status, models.RoleDoctor, ActionComplete)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, status)

	// Terminal: every further action is rejected and status is unchanged.
	for _, action := range []Action{ActionConfirm, ActionStart, ActionComplete, ActionNoShow} {
		next, err := Transition(status, models.RoleDoctor, action)
		assert.Error(t, err)
		assert.Equal(t, models.StatusCompleted, next)
	}
}

func TestPatientCancel(t *testing.T) {
	status, err := Transition(models.StatusConfirmed, models.RolePatient, ActionCancel)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, status)

	// Cancelling again is rejected, status stays cancelled.
	next, err := Transition(status, models.RolePatient, ActionCancel)
	assert.Error(t, err)
	assert.Equal(t, models.StatusCancelled, next)
}

func TestPatientCancelOnlyBeforeStart(t *testing.T) {
	for _, current := range []models.AppointmentStatus{
		models.StatusInProgress, models.StatusCompleted, models.StatusNoShow,
	} {
		next, err := Transition(current, models.RolePatient, ActionCancel)
		assert.Error(t, err, "patient cancel from %s", current)
		assert.Equal(t, current, next)
	}
}

func TestDoctorNoShowFromNonTerminal(t *testing.T) {
	for _, current := range []models.AppointmentStatus{
		models.StatusScheduled, models.StatusConfirmed, models.StatusInProgress,
	} {
		next, err := Transition(current, models.RoleDoctor, ActionNoShow)
		assert.NoError(t, err, "no_show from %s", current)
		assert.Equal(t, models.StatusNoShow, next)
	}

	for _, current := range []models.AppointmentStatus{
		models.StatusCompleted, models.StatusCancelled, models.StatusNoShow,
	} {
		next, err := Transition(current, models.RoleDoctor, ActionNoShow)
		assert.Error(t, err)
		assert.Equal(t, current, next)
	}
}

func TestAdminCancel(t *testing.T) {
	for _, current := range []models.AppointmentStatus{
		models.StatusScheduled, models.StatusConfirmed, models.StatusInProgress,
	} {
		next, err := Transition(current, models.RoleAdmin, ActionCancel)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, next)
	}
}

func TestReconfirmRejected(t *testing.T) {
	next, err := Transition(models.StatusConfirmed, models.RoleDoctor, ActionConfirm)
	assert.Error(t, err)
	assert.Equal(t, models.StatusConfirmed, next)

	var terr *ErrTransition
	assert.ErrorAs(t, err, &terr)
	assert.Equal(t, ActionConfirm, terr.Action)
}

// Every (status, role, action) combination either appears in the transition
// table or rejects with the current status unchanged.
func TestTransitionTableIsTotal(t *testing.T) {
	statuses := []models.AppointmentStatus{
		models.StatusScheduled, models.StatusConfirmed, models.StatusInProgress,
		models.StatusCompleted, models.StatusCancelled, models.StatusNoShow,
	}
	roles := []models.Role{models.RolePatient, models.RoleDoctor, models.RoleAdmin}
	actions := []Action{ActionConfirm, ActionStart, ActionComplete, ActionNoShow, ActionCancel}

	for _, status := range statuses {
		for _, role := range roles {
			for _, action := range actions {
				next, err := Transition(status, role, action)
				if err != nil {
					assert.Equal(t, status, next, "rejected transition must not move %s", status)
					continue
				}
				assert.True(t, next.Valid())
				if status.Terminal() {
					t.Errorf("terminal status %s allowed %s/%s", status, role, action)
				}
			}
		}
	}
}

func TestPatientMayNotDriveDoctorActions(t *testing.T) {
	for _, action := range []Action{ActionConfirm, ActionStart, ActionComplete, ActionNoShow} {
		next, err := Transition(models.StatusScheduled, models.RolePatient, action)
		assert.Error(t, err)
		assert.Equal(t, models.StatusScheduled, next)
	}
}
