package models

import (
	"time"

	"github.com/tutorhive/tutorhive/internal/app/scheduling"
)

// CourseOffering represents a tutor's course offering together with the
// recurrence descriptor its sessions were generated from. The descriptor is a
// one-time generation input, not a live template: amending one session never
// touches the rest of the series.
type CourseOffering struct {
	ID               int64     `json:"id" db:"id" example:"1"`
	TutorID          int64     `json:"tutorId" db:"tutor_id" example:"7"`
	Title            string    `json:"title" db:"title" example:"IELTS Writing Intensive"`
	Description      *string   `json:"description,omitempty" db:"description"` // Nullable
	Capacity         int       `json:"capacity" db:"capacity" example:"8"`
	ApprovalRequired bool      `json:"approvalRequired" db:"approval_required" example:"false"`
	StartDate        time.Time `json:"startDate" db:"start_date"`
	Weekdays         []int16   `json:"weekdays" db:"weekdays" example:"1,3"` // 0 = Sunday
	SessionCount     int       `json:"sessionCount" db:"session_count" example:"8"`
	DailyStart       string    `json:"dailyStart" db:"daily_start" example:"08:00"`
	DurationMinutes  int       `json:"durationMinutes" db:"duration_minutes" example:"90"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`

	// ActiveEnrollments is the current ACTIVE seat count, populated on
	// single-offering reads.
	ActiveEnrollments *int `json:"activeEnrollments,omitempty"`

	// Relations (populated when needed)
	Sessions []*Session `json:"sessions,omitempty"`
	Tutor    *User      `json:"tutor,omitempty"`
}

// Recurrence builds the expansion descriptor for this offering.
func (o *CourseOffering) Recurrence() scheduling.Recurrence {
	weekdays := make([]time.Weekday, 0, len(o.Weekdays))
	for _, wd := range o.Weekdays {
		weekdays = append(weekdays, time.Weekday(wd))
	}
	return scheduling.Recurrence{
		StartDate:       o.StartDate.Format(scheduling.DateLayout),
		Weekdays:        weekdays,
		SessionCount:    o.SessionCount,
		DailyStart:      o.DailyStart,
		DurationMinutes: o.DurationMinutes,
	}
}
