package scheduling

import (
	"fmt"

	"MediBook/models"
)

// Action is a status-machine trigger requested by an actor.
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionNoShow   Action = "no_show"
	ActionCancel   Action = "cancel"
)

func (a Action) Valid() bool {
	switch a {
	case ActionConfirm, ActionStart, ActionComplete, ActionNoShow, ActionCancel:
		return true
	}
	return false
}

// ErrTransition is returned when a (status, role, action) combination is not
// in the transition table. Requests outside the table are rejected rather
// than silently ignored so a stale client sees why nothing changed.
type ErrTransition struct {
	Status models.AppointmentStatus
	Role   models.Role
	Action Action
}

func (e *ErrTransition) Error() string {
	return fmt.Sprintf("role %s may not %s an appointment in status %s", e.Role, e.Action, e.Status)
}

// Transition applies the status machine table and returns the next status.
//
//	scheduled  --doctor confirm-->  confirmed
//	confirmed  --doctor start---->  in_progress
//	in_progress --doctor complete-> completed
//	non-terminal --doctor no_show-> no_show
//	scheduled|confirmed --patient cancel--> cancelled
//	non-terminal --admin cancel-->  cancelled
//
// Every other combination, including re-applying an action to a status it
// already produced, returns *ErrTransition and leaves the status unchanged.
func Transition(current models.AppointmentStatus, role models.Role, action Action) (models.AppointmentStatus, error) {
	reject := func() (models.AppointmentStatus, error) {
		return current, &ErrTransition{Status: current, Role: role, Action: action}
	}

	switch role {
	case models.RoleDoctor:
		switch action {
		case ActionConfirm:
			if current == models.StatusScheduled {
				return models.StatusConfirmed, nil
			}
		case ActionStart:
			if current == models.StatusConfirmed {
				return models.StatusInProgress, nil
			}
		case ActionComplete:
			if current == models.StatusInProgress {
				return models.StatusCompleted, nil
			}
		case ActionNoShow:
			if !current.Terminal() {
				return models.StatusNoShow, nil
			}
		}
	case models.RolePatient:
		if action == ActionCancel {
			if current == models.StatusScheduled || current == models.StatusConfirmed {
				return models.StatusCancelled, nil
			}
		}
	case models.RoleAdmin:
		if action == ActionCancel {
			if !current.Terminal() {
				return models.StatusCancelled, nil
			}
		}
	}
	return reject()
}
