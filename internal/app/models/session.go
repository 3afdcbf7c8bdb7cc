package models

import (
	"fmt"
	"time"

	"github.com/tutorhive/tutorhive/internal/app/scheduling"
	"github.com/tutorhive/tutorhive/internal/pkg/apperrors"
)

// SessionStatus represents the lifecycle of a single generated session
type SessionStatus string

const (
	SessionUpcoming    SessionStatus = "UPCOMING"
	SessionCompleted   SessionStatus = "COMPLETED"
	SessionRescheduled SessionStatus = "RESCHEDULED"
	SessionCancelled   SessionStatus = "CANCELLED"
)

// Session is one concrete dated occurrence of a course offering. Sessions are
// created once when the offering's recurrence is expanded and are never
// deleted; calling one off is a status change.
type Session struct {
	ID         int64         `json:"id" db:"id" example:"1"`
	OfferingID int64         `json:"offeringId" db:"offering_id" example:"1"`
	StartsAt   time.Time     `json:"startsAt" db:"starts_at"`
	EndsAt     time.Time     `json:"endsAt" db:"ends_at"`
	Status     SessionStatus `json:"status" db:"status" example:"UPCOMING"`
	Topic      *string       `json:"topic,omitempty" db:"topic"` // Nullable title override
	Note       *string       `json:"note,omitempty" db:"note"`   // Nullable, reason for the last amendment
}

// SessionPatch carries the fields of a reschedule request. Nil fields are
// left unchanged.
type SessionPatch struct {
	Date      *string `json:"date,omitempty" example:"2025-01-09"`    // "YYYY-MM-DD"
	StartTime *string `json:"startTime,omitempty" example:"14:00"`    // "HH:MM"
	Topic     *string `json:"topic,omitempty" example:"Mock test #2"` //
	Reason    *string `json:"reason,omitempty" example:"tutor unavailable"`
}

// IsEmpty reports whether the patch changes nothing about the session itself.
func (p SessionPatch) IsEmpty() bool {
	return p.Date == nil && p.StartTime == nil && p.Topic == nil
}

// Reschedule applies a targeted amendment to this session only: its date,
// start time and topic can move, the window duration is preserved, status
// becomes RESCHEDULED and the note is overwritten with the given reason.
func (s *Session) Reschedule(patch SessionPatch) error {
	switch s.Status {
	case SessionCompleted, SessionCancelled:
		return apperrors.NewInvalidTransitionError(fmt.Sprintf("cannot reschedule a %s session", s.Status))
	}
	if patch.IsEmpty() {
		return apperrors.NewValidationError("reschedule patch must change at least one of date, time or topic")
	}

	duration := s.EndsAt.Sub(s.StartsAt)
	startsAt := s.StartsAt

	if patch.Date != nil {
		day, err := scheduling.ParseDate(*patch.Date)
		if err != nil {
			return err
		}
		startsAt = time.Date(day.Year(), day.Month(), day.Day(),
			startsAt.Hour(), startsAt.Minute(), 0, 0, startsAt.Location())
	}
	if patch.StartTime != nil {
		clock, err := scheduling.ParseClock(*patch.StartTime)
		if err != nil {
			return err
		}
		startsAt = time.Date(startsAt.Year(), startsAt.Month(), startsAt.Day(),
			clock.Hour(), clock.Minute(), 0, 0, startsAt.Location())
	}

	s.StartsAt = startsAt
	s.EndsAt = startsAt.Add(duration)
	if patch.Topic != nil {
		s.Topic = patch.Topic
	}
	s.Status = SessionRescheduled
	s.Note = patch.Reason // overwrite, no history
	return nil
}

// Complete marks the session as held. Completing an already completed session
// is a no-op; the returned flag tells the caller whether anything changed.
func (s *Session) Complete() (bool, error) {
	switch s.Status {
	case SessionCompleted:
		return false, nil
	case SessionCancelled:
		return false, apperrors.NewInvalidTransitionError("cannot complete a cancelled session")
	}
	s.Status = SessionCompleted
	return true, nil
}

// Cancel calls off the session, keeping it in the series with a CANCELLED
// status. Cancelling twice is a no-op.
func (s *Session) Cancel(reason *string) (bool, error) {
	switch s.Status {
	case SessionCancelled:
		return false, nil
	case SessionCompleted:
		return false, apperrors.NewInvalidTransitionError("cannot cancel a completed session")
	}
	s.Status = SessionCancelled
	s.Note = reason
	return true, nil
}
