package scheduling

import (
	"fmt"
	"time"

	"MediBook/models"
)

const (
	// DateLayout is the naive local calendar-date format used throughout.
	DateLayout = "2006-01-02"
	// TimeLayout is the wall-clock format for slot boundaries.
	TimeLayout = "15:04"

	// SlotDuration is the fixed length of every bookable slot.
	SlotDuration = 30 * time.Minute
)

// candidateSlots is the fixed morning/afternoon slot table offered to
// patients, expressed as slot start times.
var candidateSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"13:00", "13:30", "14:00", "14:30", "15:00", "15:30",
	"16:00", "16:30",
}

// ParseDate parses a calendar date in DateLayout.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return date, nil
}

// ParseTime parses a wall-clock time in TimeLayout.
func ParseTime(value string) (time.Time, error) {
	clock, err := time.Parse(TimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", value, err)
	}
	return clock, nil
}

// SlotEnd returns the end of the slot beginning at start.
func SlotEnd(start string) (string, error) {
	clock, err := ParseTime(start)
	if err != nil {
		return "", err
	}
	return clock.Add(SlotDuration).Format(TimeLayout), nil
}

// IsDateAvailable reports whether date is bookable for a doctor with the
// given weekly schedule rows: the date's weekday must have an available row
// and the date must be at least one calendar day after now.
func IsDateAvailable(rows []models.DoctorSchedule, date, now time.Time) bool {
	if !afterToday(date, now) {
		return false
	}
	for _, row := range rows {
		if row.IsAvailable && row.DayOfWeek == int(date.Weekday()) {
			return true
		}
	}
	return false
}

// afterToday compares calendar dates, ignoring clock time.
func afterToday(date, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return day.After(today)
}

// Slots returns the candidate slot starts clipped to the schedule row's
// configured window: a slot is offered only when it fits entirely inside
// [start_time, end_time]. An unavailable row yields no slots.
func Slots(row models.DoctorSchedule) []string {
	if !row.IsAvailable {
		return nil
	}
	windowStart, err := ParseTime(row.StartTime)
	if err != nil {
		return nil
	}
	windowEnd, err := ParseTime(row.EndTime)
	if err != nil {
		return nil
	}

	var slots []string
	for _, slot := range candidateSlots {
		start, err := ParseTime(slot)
		if err != nil {
			continue
		}
		if start.Before(windowStart) {
			continue
		}
		if start.Add(SlotDuration).After(windowEnd) {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

// FreeSlots returns the offerable slots for row with the already-taken slot
// starts removed. Taken slots come from non-cancelled appointments on the
// same doctor and date.
func FreeSlots(row models.DoctorSchedule, taken []string) []string {
	reserved := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		reserved[t] = struct{}{}
	}

	var free []string
	for _, slot := range Slots(row) {
		if _, ok := reserved[slot]; ok {
			continue
		}
		free = append(free, slot)
	}
	return free
}

// RowForWeekday returns the schedule row covering the weekday of date, if any.
func RowForWeekday(rows []models.DoctorSchedule, date time.Time) (models.DoctorSchedule, bool) {
	for _, row := range rows {
		if row.DayOfWeek == int(date.Weekday()) {
			return row, true
		}
	}
	return models.DoctorSchedule{}, false
}

// MinBookableDate returns the earliest date a patient may book, one calendar
// day after now.
func MinBookableDate(now time.Time) string {
	return now.AddDate(0, 0, 1).Format(DateLayout)
}
