package services

import (
	"context"
	"testing"

	"MediBook/models"
	"MediBook/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleSavePersistsRows(t *testing.T) {
	writer := &stubScheduleWriter{}
	service := NewScheduleService(writer)

	scope := policy.Scope{Role: models.RoleDoctor, ActorID: "doc-1"}
	err := service.Save(context.Background(), scope, "doc-1", []ScheduleRow{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		{DayOfWeek: 3, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
	})
	require.NoError(t, err)

	require.True(t, writer.replaced)
	require.Len(t, writer.replacedWith, 2)
	assert.Equal(t, "doc-1", writer.replacedWith[0].DoctorID)
	assert.Equal(t, 1, writer.replacedWith[0].DayOfWeek)
	assert.Equal(t, 3, writer.replacedWith[1].DayOfWeek)
}

func TestScheduleSaveEmptyClearsAvailability(t *testing.T) {
	writer := &stubScheduleWriter{}
	service := NewScheduleService(writer)

	scope := policy.Scope{Role: models.RoleDoctor, ActorID: "doc-1"}
	err := service.Save(context.Background(), scope, "doc-1", nil)
	require.NoError(t, err)

	assert.True(t, writer.replaced)
	assert.Empty(t, writer.replacedWith)
}

func TestScheduleSaveForbidsOtherDoctors(t *testing.T) {
	writer := &stubScheduleWriter{}
	service := NewScheduleService(writer)

	scope := policy.Scope{Role: models.RoleDoctor, ActorID: "doc-2"}
	err := service.Save(context.Background(), scope, "doc-1", nil)

	assert.ErrorIs(t, err, policy.ErrForbidden)
	assert.False(t, writer.replaced)
}

func TestScheduleSaveAdminMayEditAnySchedule(t *testing.T) {
	writer := &stubScheduleWriter{}
	service := NewScheduleService(writer)

	scope := policy.Scope{Role: models.RoleAdmin, ActorID: "adm-1"}
	err := service.Save(context.Background(), scope, "doc-1", []ScheduleRow{
		{DayOfWeek: 5, StartTime: "13:00", EndTime: "17:00", IsAvailable: true},
	})

	require.NoError(t, err)
	assert.True(t, writer.replaced)
}

func TestScheduleSaveRejectsInvertedWindow(t *testing.T) {
	writer := &stubScheduleWriter{}
	service := NewScheduleService(writer)

	scope := policy.Scope{Role: models.RoleDoctor, ActorID: "doc-1"}
	err := service.Save(context.Background(), scope, "doc-1", []ScheduleRow{
		{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00", IsAvailable: true},
	})

	assert.Error(t, err)
	assert.False(t, writer.replaced)
}

func TestScheduleSaveRejectsDuplicateDays(t *testing.T) {
	writer := &stubScheduleWriter{}
	service := NewScheduleService(writer)

	scope := policy.Scope{Role: models.RoleDoctor, ActorID: "doc-1"}
	err := service.Save(context.Background(), scope, "doc-1", []ScheduleRow{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
		{DayOfWeek: 1, StartTime: "13:00", EndTime: "17:00", IsAvailable: true},
	})

	assert.Error(t, err)
	assert.False(t, writer.replaced)
}
