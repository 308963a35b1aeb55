package scheduling

import (
	"testing"
	"time"

	"MediBook/models"

	"github.com/stretchr/testify/assert"
)

func mondaySchedule() []models.DoctorSchedule {
	return []models.DoctorSchedule{
		{DoctorID: "doc-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
	}
}

func TestIsDateAvailable(t *testing.T) {
	// Friday 2026-01-02
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	nextMonday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)

	rows := mondaySchedule()

	assert.True(t, IsDateAvailable(rows, nextMonday, now), "next Monday should be bookable")
	assert.False(t, IsDateAvailable(rows, tuesday, now), "Tuesday has no schedule row")
}

func TestIsDateAvailableLeadTime(t *testing.T) {
	// Monday 2026-01-05
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	rows := mondaySchedule()

	sameDay := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	lastMonday := time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)
	weekAhead := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	assert.False(t, IsDateAvailable(rows, sameDay, now), "same-day booking is not offered")
	assert.False(t, IsDateAvailable(rows, lastMonday, now), "past dates are never offered")
	assert.True(t, IsDateAvailable(rows, weekAhead, now))
}

func TestIsDateAvailableIgnoresUnavailableRows(t *testing.T) {
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	nextMonday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	rows := []models.DoctorSchedule{
		{DoctorID: "doc-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: false},
	}

	assert.False(t, IsDateAvailable(rows, nextMonday, now))
}

func TestIsDateAvailableEmptySchedule(t *testing.T) {
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	for days := 1; days <= 14; days++ {
		date := now.AddDate(0, 0, days)
		assert.False(t, IsDateAvailable(nil, date, now))
	}
}

func TestSlotsFullDay(t *testing.T) {
	row := models.DoctorSchedule{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: true}

	slots := Slots(row)
	assert.Equal(t, []string{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30",
		"16:00", "16:30",
	}, slots)
}

func TestSlotsClippedToWindow(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  []string
	}{
		{"morning only", "09:00", "12:00", []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}},
		{"afternoon only", "13:00", "15:00", []string{"13:00", "13:30", "14:00", "14:30"}},
		{"late start", "10:00", "17:00", []string{"10:00", "10:30", "11:00", "11:30", "13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30"}},
		{"slot must fit fully", "09:00", "09:45", []string{"09:00"}},
		{"window outside table", "18:00", "20:00", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row := models.DoctorSchedule{StartTime: tc.start, EndTime: tc.end, IsAvailable: true}
			assert.Equal(t, tc.want, Slots(row))
		})
	}
}

func TestSlotsUnavailableRow(t *testing.T) {
	row := models.DoctorSchedule{StartTime: "09:00", EndTime: "17:00", IsAvailable: false}
	assert.Nil(t, Slots(row))
}

func TestFreeSlotsExcludesTaken(t *testing.T) {
	row := models.DoctorSchedule{StartTime: "09:00", EndTime: "12:00", IsAvailable: true}

	free := FreeSlots(row, []string{"09:30", "11:00"})
	assert.Equal(t, []string{"09:00", "10:00", "10:30", "11:30"}, free)
}

func TestFreeSlotsNothingTaken(t *testing.T) {
	row := models.DoctorSchedule{StartTime: "09:00", EndTime: "10:00", IsAvailable: true}
	assert.Equal(t, []string{"09:00", "09:30"}, FreeSlots(row, nil))
}

func TestSlotEnd(t *testing.T) {
	end, err := SlotEnd("10:00")
	assert.NoError(t, err)
	assert.Equal(t, "10:30", end)

	end, err = SlotEnd("16:30")
	assert.NoError(t, err)
	assert.Equal(t, "17:00", end)

	_, err = SlotEnd("not-a-time")
	assert.Error(t, err)
}

func TestMinBookableDate(t *testing.T) {
	now := time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-02-01", MinBookableDate(now))
}

func TestRowForWeekday(t *testing.T) {
	rows := mondaySchedule()
	monday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)

	row, ok := RowForWeekday(rows, monday)
	assert.True(t, ok)
	assert.Equal(t, "09:00", row.StartTime)

	_, ok = RowForWeekday(rows, tuesday)
	assert.False(t, ok)
}
