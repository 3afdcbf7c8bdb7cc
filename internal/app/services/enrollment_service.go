package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tutorhive/tutorhive/internal/app/models"
	"github.com/tutorhive/tutorhive/internal/pkg/apperrors"
)

// EnrollmentRepository is the persistence surface for enrollment state.
// Implementations must make each state change atomic with its capacity check
// at the database; the service layer never re-implements that locking.
type EnrollmentRepository interface {
	Request(ctx context.Context, offeringID, learnerID int64) (*models.Enrollment, error)
	Decide(ctx context.Context, enrollmentID int64, action models.EnrollmentAction) (*models.Enrollment, error)
	Cancel(ctx context.Context, enrollmentID int64) (*models.Enrollment, *models.Enrollment, error)
	Promote(ctx context.Context, enrollmentID int64) (*models.Enrollment, error)
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	ListByOffering(ctx context.Context, offeringID int64) ([]*models.Enrollment, error)
	ListByLearner(ctx context.Context, learnerID int64) ([]*models.Enrollment, error)
}

// EnrollmentService handles the learner/offering enrollment lifecycle
type EnrollmentService struct {
	enrollmentRepo EnrollmentRepository
	offeringRepo   OfferingRepository
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(enrollmentRepo EnrollmentRepository, offeringRepo OfferingRepository, logger zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		offeringRepo:   offeringRepo,
		logger:         logger,
	}
}

// Request registers a learner for an offering. The initial state comes from
// the capacity gate evaluated at the repository, atomically with the write.
// The caller must read the returned status rather than assume ACTIVE: losing
// the race for the last seat yields WAITLIST, which is still a success.
func (s *EnrollmentService) Request(ctx context.Context, offeringID, learnerID int64) (*models.Enrollment, error) {
	offering, err := s.offeringRepo.GetByID(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	if offering.TutorID == learnerID {
		return nil, apperrors.NewForbiddenError("tutors cannot enroll in their own offering")
	}

	enrollment, err := s.enrollmentRepo.Request(ctx, offeringID, learnerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("enrollmentId", enrollment.ID).
		Int64("offeringId", offeringID).
		Int64("learnerId", learnerID).
		Str("status", string(enrollment.Status)).
		Msg("Enrollment requested")

	return enrollment, nil
}

// Decide applies a tutor's approve or reject to a pending enrollment.
// Capacity is re-evaluated at decision time, so approving into a full
// offering waitlists the learner instead of activating them.
func (s *EnrollmentService) Decide(ctx context.Context, tutorID, enrollmentID int64, action models.EnrollmentAction) (*models.Enrollment, error) {
	if err := s.checkOwnership(ctx, tutorID, enrollmentID); err != nil {
		return nil, err
	}

	enrollment, err := s.enrollmentRepo.Decide(ctx, enrollmentID, action)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("enrollmentId", enrollment.ID).
		Str("action", string(action)).
		Str("status", string(enrollment.Status)).
		Msg("Enrollment decided")

	return enrollment, nil
}

// Cancel withdraws a learner's own enrollment. Cancelling an ACTIVE
// enrollment frees a seat, which the repository hands to the waitlist head
// in the same transaction.
func (s *EnrollmentService) Cancel(ctx context.Context, learnerID, enrollmentID int64) (*models.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.LearnerID != learnerID {
		return nil, apperrors.NewForbiddenError("enrollment belongs to another learner")
	}

	cancelled, promoted, err := s.enrollmentRepo.Cancel(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	event := s.logger.Info().Int64("enrollmentId", cancelled.ID)
	if promoted != nil {
		event = event.Int64("promotedEnrollmentId", promoted.ID)
	}
	event.Msg("Enrollment cancelled")

	return cancelled, nil
}

// Promote manually moves a waitlisted enrollment into a free seat
func (s *EnrollmentService) Promote(ctx context.Context, tutorID, enrollmentID int64) (*models.Enrollment, error) {
	if err := s.checkOwnership(ctx, tutorID, enrollmentID); err != nil {
		return nil, err
	}

	enrollment, err := s.enrollmentRepo.Promote(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("enrollmentId", enrollment.ID).Msg("Enrollment promoted from waitlist")
	return enrollment, nil
}

// ListForOffering retrieves an offering's enrollments for its tutor
func (s *EnrollmentService) ListForOffering(ctx context.Context, tutorID, offeringID int64) ([]*models.Enrollment, error) {
	offering, err := s.offeringRepo.GetByID(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	if offering.TutorID != tutorID {
		return nil, apperrors.NewForbiddenError("offering belongs to another tutor")
	}

	return s.enrollmentRepo.ListByOffering(ctx, offeringID)
}

// ListForLearner retrieves a learner's own enrollments
func (s *EnrollmentService) ListForLearner(ctx context.Context, learnerID int64) ([]*models.Enrollment, error) {
	return s.enrollmentRepo.ListByLearner(ctx, learnerID)
}

// checkOwnership verifies that the enrollment's offering belongs to tutorID
func (s *EnrollmentService) checkOwnership(ctx context.Context, tutorID, enrollmentID int64) error {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return err
	}

	offering, err := s.offeringRepo.GetByID(ctx, enrollment.OfferingID)
	if err != nil {
		return err
	}
	if offering.TutorID != tutorID {
		return apperrors.NewForbiddenError("offering belongs to another tutor")
	}

	return nil
}
