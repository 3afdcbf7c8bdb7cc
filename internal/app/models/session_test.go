package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tutorhive/tutorhive/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func upcomingSession() *Session {
	return &Session{
		ID:         1,
		OfferingID: 1,
		StartsAt:   time.Date(2025, 1, 8, 8, 0, 0, 0, time.UTC),
		EndsAt:     time.Date(2025, 1, 8, 9, 30, 0, 0, time.UTC),
		Status:     SessionUpcoming,
	}
}

func TestRescheduleMovesDateAndTime(t *testing.T) {
	s := upcomingSession()

	err := s.Reschedule(SessionPatch{
		Date:      strPtr("2025-01-09"),
		StartTime: strPtr("14:00"),
		Reason:    strPtr("giảng viên bận"),
	})
	require.NoError(t, err)

	require.Equal(t, time.Date(2025, 1, 9, 14, 0, 0, 0, time.UTC), s.StartsAt)
	// 90 minute window is preserved
	require.Equal(t, time.Date(2025, 1, 9, 15, 30, 0, 0, time.UTC), s.EndsAt)
	require.Equal(t, SessionRescheduled, s.Status)
	require.Equal(t, "giảng viên bận", *s.Note)
}

func TestRescheduleDateOnlyKeepsClock(t *testing.T) {
	s := upcomingSession()

	err := s.Reschedule(SessionPatch{Date: strPtr("2025-01-10")})
	require.NoError(t, err)

	require.Equal(t, time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC), s.StartsAt)
	require.Equal(t, time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC), s.EndsAt)
}

func TestRescheduleTopicOnly(t *testing.T) {
	s := upcomingSession()
	originalStart := s.StartsAt

	err := s.Reschedule(SessionPatch{Topic: strPtr("Mock test #2")})
	require.NoError(t, err)

	require.Equal(t, originalStart, s.StartsAt)
	require.Equal(t, "Mock test #2", *s.Topic)
	require.Equal(t, SessionRescheduled, s.Status)
}

func TestRescheduleOverwritesNote(t *testing.T) {
	s := upcomingSession()
	s.Note = strPtr("earlier reason")

	err := s.Reschedule(SessionPatch{Date: strPtr("2025-01-09"), Reason: strPtr("new reason")})
	require.NoError(t, err)
	require.Equal(t, "new reason", *s.Note)

	// A patch without a reason clears the note rather than keeping history
	err = s.Reschedule(SessionPatch{Date: strPtr("2025-01-10")})
	require.NoError(t, err)
	require.Nil(t, s.Note)
}

func TestRescheduleRejectsEmptyPatch(t *testing.T) {
	s := upcomingSession()

	err := s.Reschedule(SessionPatch{Reason: strPtr("just a reason")})
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrValidationFailed))
	require.Equal(t, SessionUpcoming, s.Status)
}

func TestRescheduleRejectsTerminalStates(t *testing.T) {
	for _, status := range []SessionStatus{SessionCompleted, SessionCancelled} {
		s := upcomingSession()
		s.Status = status

		err := s.Reschedule(SessionPatch{Date: strPtr("2025-01-09")})
		require.Error(t, err)
		require.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
		require.Equal(t, status, s.Status)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	s := upcomingSession()

	changed, err := s.Complete()
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, SessionCompleted, s.Status)

	changed, err = s.Complete()
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, SessionCompleted, s.Status)
}

func TestCompleteRejectsCancelled(t *testing.T) {
	s := upcomingSession()
	s.Status = SessionCancelled

	_, err := s.Complete()
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
}

func TestCancelIsIdempotent(t *testing.T) {
	s := upcomingSession()

	changed, err := s.Cancel(strPtr("room unavailable"))
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, SessionCancelled, s.Status)
	require.Equal(t, "room unavailable", *s.Note)

	changed, err = s.Cancel(nil)
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, "room unavailable", *s.Note)
}

func TestCancelRejectsCompleted(t *testing.T) {
	s := upcomingSession()
	s.Status = SessionCompleted

	_, err := s.Cancel(nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
	require.Equal(t, SessionCompleted, s.Status)
}

// A rescheduled session can still be completed or cancelled later
func TestRescheduledSessionRemainsAmendable(t *testing.T) {
	s := upcomingSession()
	require.NoError(t, s.Reschedule(SessionPatch{Date: strPtr("2025-01-09")}))

	changed, err := s.Complete()
	require.NoError(t, err)
	require.True(t, changed)
}
