package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tutorhive/tutorhive/internal/app/models"
	"github.com/tutorhive/tutorhive/internal/pkg/apperrors"
)

// SessionService handles targeted amendments to generated sessions
type SessionService struct {
	sessionRepo  SessionRepository
	offeringRepo OfferingRepository
	logger       zerolog.Logger
}

// NewSessionService creates a new session service instance
func NewSessionService(sessionRepo SessionRepository, offeringRepo OfferingRepository, logger zerolog.Logger) *SessionService {
	return &SessionService{
		sessionRepo:  sessionRepo,
		offeringRepo: offeringRepo,
		logger:       logger,
	}
}

// Reschedule amends exactly one session of a series. The rest of the series
// is never regenerated or shifted.
func (s *SessionService) Reschedule(ctx context.Context, tutorID, sessionID int64, patch models.SessionPatch) (*models.Session, error) {
	session, err := s.loadOwned(ctx, tutorID, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.Reschedule(patch); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("sessionId", session.ID).
		Time("startsAt", session.StartsAt).
		Msg("Session rescheduled")

	return session, nil
}

// Complete marks a session as held, unlocking downstream feedback for it.
// Completing an already completed session is a no-op.
func (s *SessionService) Complete(ctx context.Context, tutorID, sessionID int64) (*models.Session, error) {
	session, err := s.loadOwned(ctx, tutorID, sessionID)
	if err != nil {
		return nil, err
	}

	changed, err := session.Complete()
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.sessionRepo.Update(ctx, session); err != nil {
			return nil, err
		}
		s.logger.Info().Int64("sessionId", session.ID).Msg("Session completed")
	}

	return session, nil
}

// Cancel calls off a single session with an optional reason
func (s *SessionService) Cancel(ctx context.Context, tutorID, sessionID int64, reason *string) (*models.Session, error) {
	session, err := s.loadOwned(ctx, tutorID, sessionID)
	if err != nil {
		return nil, err
	}

	changed, err := session.Cancel(reason)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.sessionRepo.Update(ctx, session); err != nil {
			return nil, err
		}
		s.logger.Info().Int64("sessionId", session.ID).Msg("Session cancelled")
	}

	return session, nil
}

// loadOwned retrieves a session and verifies its offering belongs to tutorID
func (s *SessionService) loadOwned(ctx context.Context, tutorID, sessionID int64) (*models.Session, error) {
	if sessionID <= 0 {
		return nil, apperrors.NewValidationError("invalid session ID")
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	offering, err := s.offeringRepo.GetByID(ctx, session.OfferingID)
	if err != nil {
		return nil, err
	}
	if offering.TutorID != tutorID {
		return nil, apperrors.NewForbiddenError("session belongs to another tutor's offering")
	}

	return session, nil
}
