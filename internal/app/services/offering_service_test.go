package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tutorhive/tutorhive/internal/app/models"
	"github.com/tutorhive/tutorhive/internal/app/models/dto"
	"github.com/tutorhive/tutorhive/internal/pkg/apperrors"
)

func newOfferingService(t *testing.T) (*OfferingService, *fakeOfferingRepo) {
	t.Helper()
	offeringRepo := newFakeOfferingRepo()
	sessionRepo := newFakeSessionRepo(offeringRepo)
	return NewOfferingService(offeringRepo, sessionRepo, zerolog.Nop()), offeringRepo
}

func validCreateRequest() *dto.CreateOfferingRequest {
	return &dto.CreateOfferingRequest{
		Title:            "IELTS Writing Intensive",
		Capacity:         8,
		StartDate:        "2025-01-06",
		Weekdays:         []int{1, 3},
		SessionCount:     8,
		DailyStart:       "08:00",
		DurationMinutes:  90,
		ApprovalRequired: false,
	}
}

func TestCreateOfferingGeneratesSessionSeries(t *testing.T) {
	service, repo := newOfferingService(t)

	offering, err := service.CreateOffering(context.Background(), 1, validCreateRequest())
	require.NoError(t, err)
	require.NotZero(t, offering.ID)
	require.Equal(t, int64(1), offering.TutorID)

	sessions := repo.sessions[offering.ID]
	require.Len(t, sessions, 8)
	for _, s := range sessions {
		require.Equal(t, models.SessionUpcoming, s.Status)
		require.Equal(t, offering.ID, s.OfferingID)
		require.Equal(t, 90*time.Minute, s.EndsAt.Sub(s.StartsAt))
	}
	require.Equal(t, time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC), sessions[0].StartsAt)
}

func TestCreateOfferingRejectsBadInput(t *testing.T) {
	service, repo := newOfferingService(t)

	tests := []struct {
		name   string
		mutate func(*dto.CreateOfferingRequest)
	}{
		{"short title", func(r *dto.CreateOfferingRequest) { r.Title = "x" }},
		{"zero capacity", func(r *dto.CreateOfferingRequest) { r.Capacity = 0 }},
		{"bad start date", func(r *dto.CreateOfferingRequest) { r.StartDate = "Jan 6" }},
		{"empty weekdays", func(r *dto.CreateOfferingRequest) { r.Weekdays = nil }},
		{"zero sessions", func(r *dto.CreateOfferingRequest) { r.SessionCount = 0 }},
		{"zero duration", func(r *dto.CreateOfferingRequest) { r.DurationMinutes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			_, err := service.CreateOffering(context.Background(), 1, req)
			require.Error(t, err)
			require.True(t, errors.Is(err, apperrors.ErrValidationFailed))
		})
	}

	// Nothing was persisted by the failed attempts
	require.Empty(t, repo.offerings)
}

func TestPreviewMatchesCreate(t *testing.T) {
	service, repo := newOfferingService(t)

	windows, err := service.PreviewSessions(&dto.PreviewOfferingRequest{
		StartDate:       "2025-01-06",
		Weekdays:        []int{1, 3},
		SessionCount:    8,
		DailyStart:      "08:00",
		DurationMinutes: 90,
	})
	require.NoError(t, err)
	require.Len(t, windows, 8)

	offering, err := service.CreateOffering(context.Background(), 1, validCreateRequest())
	require.NoError(t, err)

	sessions := repo.sessions[offering.ID]
	require.Len(t, sessions, len(windows))
	for i := range windows {
		require.Equal(t, windows[i].StartsAt, sessions[i].StartsAt)
		require.Equal(t, windows[i].EndsAt, sessions[i].EndsAt)
	}
}

func TestGetOfferingAttachesSessions(t *testing.T) {
	service, repo := newOfferingService(t)

	created, err := service.CreateOffering(context.Background(), 1, validCreateRequest())
	require.NoError(t, err)
	repo.activeCounts[created.ID] = 3

	offering, err := service.GetOffering(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, offering.Sessions, 8)
	require.NotNil(t, offering.ActiveEnrollments)
	require.Equal(t, 3, *offering.ActiveEnrollments)
}

func TestGetOfferingNotFound(t *testing.T) {
	service, _ := newOfferingService(t)

	_, err := service.GetOffering(context.Background(), 42)
	require.True(t, errors.Is(err, apperrors.ErrOfferingNotFound))
}

func TestListOfferingsPagination(t *testing.T) {
	service, _ := newOfferingService(t)

	for i := 0; i < 3; i++ {
		_, err := service.CreateOffering(context.Background(), 1, validCreateRequest())
		require.NoError(t, err)
	}

	page, total, err := service.ListOfferings(context.Background(), 0, 2)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, page, 2)

	rest, _, err := service.ListOfferings(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
}
