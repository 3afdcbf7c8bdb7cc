package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorhive/tutorhive/internal/app/models"
	"github.com/tutorhive/tutorhive/internal/pkg/apperrors"
)

// OfferingRepository handles database operations for course offerings
type OfferingRepository struct {
	db *pgxpool.Pool
}

// NewOfferingRepository creates a new offering repository
func NewOfferingRepository(db *pgxpool.Pool) *OfferingRepository {
	return &OfferingRepository{
		db: db,
	}
}

const offeringColumns = `id, tutor_id, title, description, capacity, approval_required,
	start_date, weekdays, session_count, daily_start, duration_minutes, created_at`

func scanOffering(row pgx.Row) (*models.CourseOffering, error) {
	var o models.CourseOffering
	err := row.Scan(
		&o.ID,
		&o.TutorID,
		&o.Title,
		&o.Description,
		&o.Capacity,
		&o.ApprovalRequired,
		&o.StartDate,
		&o.Weekdays,
		&o.SessionCount,
		&o.DailyStart,
		&o.DurationMinutes,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persists a new offering together with its expanded session list in
// one transaction, so a half-created series is never observable.
func (r *OfferingRepository) Create(ctx context.Context, offering *models.CourseOffering, sessions []*models.Session) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO course_offerings
			(tutor_id, title, description, capacity, approval_required,
			 start_date, weekdays, session_count, daily_start, duration_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err = tx.QueryRow(ctx, query,
		offering.TutorID,
		offering.Title,
		offering.Description,
		offering.Capacity,
		offering.ApprovalRequired,
		offering.StartDate,
		offering.Weekdays,
		offering.SessionCount,
		offering.DailyStart,
		offering.DurationMinutes,
	).Scan(&offering.ID, &offering.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating offering: %w", err)
	}

	sessionQuery := `
		INSERT INTO sessions (offering_id, starts_at, ends_at, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for _, s := range sessions {
		s.OfferingID = offering.ID
		if err := tx.QueryRow(ctx, sessionQuery, s.OfferingID, s.StartsAt, s.EndsAt, s.Status).Scan(&s.ID); err != nil {
			return fmt.Errorf("error creating session: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	offering.Sessions = sessions
	return nil
}

// GetByID retrieves an offering by ID
func (r *OfferingRepository) GetByID(ctx context.Context, id int64) (*models.CourseOffering, error) {
	query := `SELECT ` + offeringColumns + ` FROM course_offerings WHERE id = $1`

	offering, err := scanOffering(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOfferingNotFound
		}
		return nil, fmt.Errorf("error retrieving offering: %w", err)
	}

	return offering, nil
}

// List retrieves offerings ordered by creation time, newest first
func (r *OfferingRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.CourseOffering, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM course_offerings`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting offerings: %w", err)
	}

	query := `SELECT ` + offeringColumns + `
		FROM course_offerings
		ORDER BY created_at DESC, id DESC
		OFFSET $1 LIMIT $2`

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing offerings: %w", err)
	}
	defer rows.Close()

	var offerings []*models.CourseOffering
	for rows.Next() {
		offering, err := scanOffering(rows)
		if err != nil {
			return nil, 0, err
		}
		offerings = append(offerings, offering)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return offerings, total, nil
}

// CountActiveEnrollments returns the number of ACTIVE enrollments for an offering
func (r *OfferingRepository) CountActiveEnrollments(ctx context.Context, offeringID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE offering_id = $1 AND status = $2`,
		offeringID, models.EnrollmentActive).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting active enrollments: %w", err)
	}
	return count, nil
}
