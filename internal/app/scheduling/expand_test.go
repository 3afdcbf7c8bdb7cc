package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tutorhive/tutorhive/internal/pkg/apperrors"
)

func mondayWednesday() Recurrence {
	return Recurrence{
		StartDate:       "2025-01-06", // a Monday
		Weekdays:        []time.Weekday{time.Monday, time.Wednesday},
		SessionCount:    4,
		DailyStart:      "08:00",
		DurationMinutes: 90,
	}
}

func TestExpandMondayWednesday(t *testing.T) {
	windows, err := Expand(mondayWednesday())
	require.NoError(t, err)
	require.Len(t, windows, 4)

	expected := []time.Time{
		time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 8, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 13, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC),
	}
	for i, w := range windows {
		require.Equal(t, expected[i], w.StartsAt, "window %d start", i)
		require.Equal(t, expected[i].Add(90*time.Minute), w.EndsAt, "window %d end", i)
	}
}

func TestExpandStartDateInclusive(t *testing.T) {
	r := mondayWednesday()
	r.Weekdays = []time.Weekday{time.Monday}
	r.SessionCount = 1

	windows, err := Expand(r)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC), windows[0].StartsAt)
}

func TestExpandIsDeterministic(t *testing.T) {
	first, err := Expand(mondayWednesday())
	require.NoError(t, err)

	second, err := Expand(mondayWednesday())
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestExpandChronologicalOrder(t *testing.T) {
	r := mondayWednesday()
	// Out-of-order weekday set must not affect emission order
	r.Weekdays = []time.Weekday{time.Friday, time.Monday, time.Wednesday}
	r.SessionCount = 9

	windows, err := Expand(r)
	require.NoError(t, err)
	require.Len(t, windows, 9)
	for i := 1; i < len(windows); i++ {
		require.True(t, windows[i-1].StartsAt.Before(windows[i].StartsAt))
	}
}

func TestExpandCrossesMidnight(t *testing.T) {
	r := mondayWednesday()
	r.DailyStart = "23:30"
	r.SessionCount = 1

	windows, err := Expand(r)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 1, 6, 23, 30, 0, 0, time.UTC), windows[0].StartsAt)
	require.Equal(t, time.Date(2025, 1, 7, 1, 0, 0, 0, time.UTC), windows[0].EndsAt)
}

func TestExpandValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Recurrence)
	}{
		{"empty weekday set", func(r *Recurrence) { r.Weekdays = nil }},
		{"weekday out of range", func(r *Recurrence) { r.Weekdays = []time.Weekday{7} }},
		{"zero session count", func(r *Recurrence) { r.SessionCount = 0 }},
		{"negative session count", func(r *Recurrence) { r.SessionCount = -3 }},
		{"zero duration", func(r *Recurrence) { r.DurationMinutes = 0 }},
		{"bad date", func(r *Recurrence) { r.StartDate = "06.01.2025" }},
		{"bad clock", func(r *Recurrence) { r.DailyStart = "8am" }},
		{"clock out of range", func(r *Recurrence) { r.DailyStart = "24:00" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mondayWednesday()
			tt.mutate(&r)

			windows, err := Expand(r)
			require.Error(t, err)
			require.True(t, errors.Is(err, apperrors.ErrValidationFailed))
			require.Nil(t, windows)
		})
	}
}

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2025-01-06")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), day)

	_, err = ParseDate("2025-13-40")
	require.Error(t, err)
}

func TestParseClock(t *testing.T) {
	clock, err := ParseClock("14:05")
	require.NoError(t, err)
	require.Equal(t, 14, clock.Hour())
	require.Equal(t, 5, clock.Minute())

	_, err = ParseClock("14:65")
	require.Error(t, err)
}
