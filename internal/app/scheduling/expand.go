package scheduling

import (
	"fmt"
	"time"

	"github.com/tutorhive/tutorhive/internal/pkg/apperrors"
	"github.com/tutorhive/tutorhive/internal/pkg/validation"
)

// Layouts for recurrence descriptor fields
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Recurrence is the compact descriptor a course offering is expanded from:
// starting at StartDate, one session on every listed weekday at DailyStart,
// until SessionCount sessions exist.
type Recurrence struct {
	StartDate       string         // "YYYY-MM-DD", first candidate day (inclusive)
	Weekdays        []time.Weekday // Sunday = 0
	SessionCount    int
	DailyStart      string // "HH:MM", 24h
	DurationMinutes int
}

// Window is one concrete session time window. The end timestamp may fall on
// the next calendar day when DailyStart plus the duration crosses midnight.
type Window struct {
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
}

// Validate checks the descriptor before any expansion is attempted. An empty
// weekday set or a non-positive count/duration would make the day walk loop
// forever, so these are rejected up front.
func (r Recurrence) Validate() error {
	if len(r.Weekdays) == 0 {
		return apperrors.NewValidationError("weekday set cannot be empty")
	}
	for _, wd := range r.Weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return apperrors.NewValidationError(fmt.Sprintf("weekday %d out of range 0..6", wd))
		}
	}
	if r.SessionCount <= 0 {
		return apperrors.NewValidationError("session count must be positive")
	}
	if r.DurationMinutes <= 0 {
		return apperrors.NewValidationError("duration must be positive")
	}
	if _, err := ParseDate(r.StartDate); err != nil {
		return err
	}
	if _, err := ParseClock(r.DailyStart); err != nil {
		return err
	}
	return nil
}

// Expand turns a recurrence descriptor into the ordered list of concrete
// session windows. It is pure and deterministic: identical input always
// yields identical output, which lets callers preview before committing.
func Expand(r Recurrence) ([]Window, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	startDate, _ := ParseDate(r.StartDate)
	dailyStart, _ := ParseClock(r.DailyStart)
	duration := time.Duration(r.DurationMinutes) * time.Minute

	wanted := make(map[time.Weekday]bool, len(r.Weekdays))
	for _, wd := range r.Weekdays {
		wanted[wd] = true
	}

	windows := make([]Window, 0, r.SessionCount)
	for day := startDate; len(windows) < r.SessionCount; day = day.AddDate(0, 0, 1) {
		if !wanted[day.Weekday()] {
			continue
		}
		startsAt := time.Date(day.Year(), day.Month(), day.Day(),
			dailyStart.Hour(), dailyStart.Minute(), 0, 0, time.UTC)
		windows = append(windows, Window{
			StartsAt: startsAt,
			EndsAt:   startsAt.Add(duration),
		})
	}

	return windows, nil
}

// ParseDate parses a "YYYY-MM-DD" calendar date into a UTC midnight timestamp.
func ParseDate(value string) (time.Time, error) {
	if !validation.CompiledPatterns.Date.MatchString(value) {
		return time.Time{}, apperrors.NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value))
	}
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(fmt.Sprintf("invalid date %q: %v", value, err))
	}
	return t, nil
}

// ParseClock parses a 24h "HH:MM" time of day.
func ParseClock(value string) (time.Time, error) {
	if !validation.CompiledPatterns.Clock.MatchString(value) {
		return time.Time{}, apperrors.NewValidationError(fmt.Sprintf("invalid time %q, expected HH:MM", value))
	}
	t, err := time.ParseInLocation(ClockLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(fmt.Sprintf("invalid time %q: %v", value, err))
	}
	return t, nil
}
