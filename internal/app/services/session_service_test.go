package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tutorhive/tutorhive/internal/app/models"
	"github.com/tutorhive/tutorhive/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func newSessionService(t *testing.T) (*SessionService, *fakeSessionRepo, []*models.Session) {
	t.Helper()
	offeringRepo := newFakeOfferingRepo()
	sessionRepo := newFakeSessionRepo(offeringRepo)

	offering := &models.CourseOffering{TutorID: tutorID, Title: "Evening Algebra", Capacity: 5}
	sessions := []*models.Session{
		{
			StartsAt: time.Date(2025, 1, 8, 8, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2025, 1, 8, 9, 30, 0, 0, time.UTC),
			Status:   models.SessionUpcoming,
		},
		{
			StartsAt: time.Date(2025, 1, 13, 8, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2025, 1, 13, 9, 30, 0, 0, time.UTC),
			Status:   models.SessionUpcoming,
		},
	}
	require.NoError(t, offeringRepo.Create(context.Background(), offering, sessions))

	return NewSessionService(sessionRepo, offeringRepo, zerolog.Nop()), sessionRepo, sessions
}

func TestRescheduleAmendsOnlyTargetSession(t *testing.T) {
	service, _, sessions := newSessionService(t)

	amended, err := service.Reschedule(context.Background(), tutorID, sessions[0].ID, models.SessionPatch{
		Date:      strPtr("2025-01-09"),
		StartTime: strPtr("14:00"),
		Reason:    strPtr("giảng viên bận"),
	})
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 1, 9, 14, 0, 0, 0, time.UTC), amended.StartsAt)
	require.Equal(t, models.SessionRescheduled, amended.Status)

	// The sibling session never moves
	require.Equal(t, time.Date(2025, 1, 13, 8, 0, 0, 0, time.UTC), sessions[1].StartsAt)
	require.Equal(t, models.SessionUpcoming, sessions[1].Status)
}

func TestRescheduleRequiresOwnership(t *testing.T) {
	service, repo, sessions := newSessionService(t)

	_, err := service.Reschedule(context.Background(), intruderT, sessions[0].ID, models.SessionPatch{
		Date: strPtr("2025-01-09"),
	})
	require.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
	require.Zero(t, repo.updates)
}

func TestRescheduleUnknownSession(t *testing.T) {
	service, _, _ := newSessionService(t)

	_, err := service.Reschedule(context.Background(), tutorID, 12345, models.SessionPatch{
		Date: strPtr("2025-01-09"),
	})
	require.True(t, errors.Is(err, apperrors.ErrSessionNotFound))
}

func TestCompleteSkipsUpdateWhenUnchanged(t *testing.T) {
	service, repo, sessions := newSessionService(t)
	ctx := context.Background()

	_, err := service.Complete(ctx, tutorID, sessions[0].ID)
	require.NoError(t, err)
	require.Equal(t, 1, repo.updates)

	// Idempotent second call does not write
	session, err := service.Complete(ctx, tutorID, sessions[0].ID)
	require.NoError(t, err)
	require.Equal(t, models.SessionCompleted, session.Status)
	require.Equal(t, 1, repo.updates)
}

func TestCancelStoresReason(t *testing.T) {
	service, _, sessions := newSessionService(t)

	session, err := service.Cancel(context.Background(), tutorID, sessions[0].ID, strPtr("room unavailable"))
	require.NoError(t, err)
	require.Equal(t, models.SessionCancelled, session.Status)
	require.Equal(t, "room unavailable", *session.Note)
}

func TestCancelCompletedSessionFails(t *testing.T) {
	service, _, sessions := newSessionService(t)
	ctx := context.Background()

	_, err := service.Complete(ctx, tutorID, sessions[0].ID)
	require.NoError(t, err)

	_, err = service.Cancel(ctx, tutorID, sessions[0].ID, nil)
	require.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
}
