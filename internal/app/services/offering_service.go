package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tutorhive/tutorhive/internal/app/models"
	"github.com/tutorhive/tutorhive/internal/app/models/dto"
	"github.com/tutorhive/tutorhive/internal/app/scheduling"
	"github.com/tutorhive/tutorhive/internal/pkg/apperrors"
	"github.com/tutorhive/tutorhive/internal/pkg/validation"
)

// OfferingRepository is the persistence surface the offering service needs
type OfferingRepository interface {
	Create(ctx context.Context, offering *models.CourseOffering, sessions []*models.Session) error
	GetByID(ctx context.Context, id int64) (*models.CourseOffering, error)
	List(ctx context.Context, offset uint64, limit int) ([]*models.CourseOffering, int64, error)
	CountActiveEnrollments(ctx context.Context, offeringID int64) (int, error)
}

// SessionRepository is the persistence surface for generated sessions
type SessionRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Session, error)
	ListByOffering(ctx context.Context, offeringID int64) ([]*models.Session, error)
	Update(ctx context.Context, session *models.Session) error
}

// OfferingService handles course offerings and their session series
type OfferingService struct {
	offeringRepo OfferingRepository
	sessionRepo  SessionRepository
	logger       zerolog.Logger
}

// NewOfferingService creates a new offering service instance
func NewOfferingService(offeringRepo OfferingRepository, sessionRepo SessionRepository, logger zerolog.Logger) *OfferingService {
	return &OfferingService{
		offeringRepo: offeringRepo,
		sessionRepo:  sessionRepo,
		logger:       logger,
	}
}

// CreateOffering validates the request, expands the recurrence descriptor
// into the concrete session list and persists both together. Expansion
// happens exactly once here; later amendments never regenerate the series.
func (s *OfferingService) CreateOffering(ctx context.Context, tutorID int64, req *dto.CreateOfferingRequest) (*models.CourseOffering, error) {
	title := strings.TrimSpace(req.Title)
	if len(title) < validation.TitleMinLength || len(title) > validation.TitleMaxLength {
		return nil, apperrors.NewValidationError(fmt.Sprintf("title must be between %d and %d characters",
			validation.TitleMinLength, validation.TitleMaxLength))
	}
	if req.Capacity <= 0 {
		return nil, apperrors.NewValidationError("capacity must be positive")
	}

	startDate, err := scheduling.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	weekdays := make([]int16, 0, len(req.Weekdays))
	for _, wd := range req.Weekdays {
		weekdays = append(weekdays, int16(wd))
	}

	offering := &models.CourseOffering{
		TutorID:          tutorID,
		Title:            title,
		Description:      req.Description,
		Capacity:         req.Capacity,
		ApprovalRequired: req.ApprovalRequired,
		StartDate:        startDate,
		Weekdays:         weekdays,
		SessionCount:     req.SessionCount,
		DailyStart:       req.DailyStart,
		DurationMinutes:  req.DurationMinutes,
	}

	windows, err := scheduling.Expand(offering.Recurrence())
	if err != nil {
		return nil, err
	}

	sessions := make([]*models.Session, 0, len(windows))
	for _, w := range windows {
		sessions = append(sessions, &models.Session{
			StartsAt: w.StartsAt,
			EndsAt:   w.EndsAt,
			Status:   models.SessionUpcoming,
		})
	}

	if err := s.offeringRepo.Create(ctx, offering, sessions); err != nil {
		return nil, fmt.Errorf("error creating offering: %w", err)
	}

	s.logger.Info().
		Int64("offeringId", offering.ID).
		Int64("tutorId", tutorID).
		Int("sessions", len(sessions)).
		Msg("Course offering created")

	return offering, nil
}

// PreviewSessions expands a recurrence descriptor without persisting
// anything. Expansion is deterministic, so the preview matches what a
// subsequent create will produce for the same descriptor.
func (s *OfferingService) PreviewSessions(req *dto.PreviewOfferingRequest) ([]scheduling.Window, error) {
	rec := scheduling.Recurrence{
		StartDate:       req.StartDate,
		SessionCount:    req.SessionCount,
		DailyStart:      req.DailyStart,
		DurationMinutes: req.DurationMinutes,
	}
	for _, wd := range req.Weekdays {
		rec.Weekdays = append(rec.Weekdays, time.Weekday(wd))
	}

	return scheduling.Expand(rec)
}

// GetOffering retrieves an offering with its session series
func (s *OfferingService) GetOffering(ctx context.Context, id int64) (*models.CourseOffering, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid offering ID")
	}

	offering, err := s.offeringRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.ListByOffering(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving sessions: %w", err)
	}
	offering.Sessions = sessions

	active, err := s.offeringRepo.CountActiveEnrollments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error counting active enrollments: %w", err)
	}
	offering.ActiveEnrollments = &active

	return offering, nil
}

// ListOfferings retrieves a page of offerings
func (s *OfferingService) ListOfferings(ctx context.Context, offset uint64, limit int) ([]*models.CourseOffering, int64, error) {
	return s.offeringRepo.List(ctx, offset, limit)
}
