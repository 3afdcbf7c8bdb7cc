package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorhive/tutorhive/internal/app/models"
	"github.com/tutorhive/tutorhive/internal/pkg/apperrors"
	"github.com/tutorhive/tutorhive/internal/pkg/dberrors"
)

// EnrollmentRepository handles database operations for enrollments.
//
// Every state change runs inside a transaction that first locks the owning
// offering row, so the capacity check and the enrollment write are a single
// atomic step: two learners racing for the last seat serialize here, and
// count(ACTIVE) <= capacity holds at all times.
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

const enrollmentColumns = `id, offering_id, learner_id, status, requested_at, transitioned_at`

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	var e models.Enrollment
	err := row.Scan(
		&e.ID,
		&e.OfferingID,
		&e.LearnerID,
		&e.Status,
		&e.RequestedAt,
		&e.TransitionedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// lockOffering takes the per-offering row lock and returns capacity and
// approval policy. All enrollment transactions go through this first, which
// gives a consistent lock order.
func lockOffering(ctx context.Context, tx pgx.Tx, offeringID int64) (capacity int, approvalRequired bool, err error) {
	err = tx.QueryRow(ctx,
		`SELECT capacity, approval_required FROM course_offerings WHERE id = $1 FOR UPDATE`,
		offeringID).Scan(&capacity, &approvalRequired)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, apperrors.ErrOfferingNotFound
		}
		return 0, false, fmt.Errorf("error locking offering: %w", err)
	}
	return capacity, approvalRequired, nil
}

func countActive(ctx context.Context, tx pgx.Tx, offeringID int64) (int, error) {
	var count int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE offering_id = $1 AND status = $2`,
		offeringID, models.EnrollmentActive).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting active enrollments: %w", err)
	}
	return count, nil
}

// Request registers a learner for an offering. The initial state comes from
// the capacity gate, evaluated under the offering lock.
func (r *EnrollmentRepository) Request(ctx context.Context, offeringID, learnerID int64) (*models.Enrollment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	capacity, approvalRequired, err := lockOffering(ctx, tx, offeringID)
	if err != nil {
		return nil, err
	}

	activeCount, err := countActive(ctx, tx, offeringID)
	if err != nil {
		return nil, err
	}

	status := models.DecideInitialStatus(approvalRequired, capacity, activeCount)

	enrollment, err := scanEnrollment(tx.QueryRow(ctx, `
		INSERT INTO enrollments (offering_id, learner_id, status)
		VALUES ($1, $2, $3)
		RETURNING `+enrollmentColumns,
		offeringID, learnerID, status))
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_enrollments_open") {
			return nil, apperrors.ErrEnrollmentExists
		}
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return enrollment, nil
}

// Decide applies a tutor's approve or reject to a pending enrollment.
// Capacity is re-evaluated now, not at request time, so approving into a
// full offering yields WAITLIST.
func (r *EnrollmentRepository) Decide(ctx context.Context, enrollmentID int64, action models.EnrollmentAction) (*models.Enrollment, error) {
	if action != models.ActionApprove && action != models.ActionReject {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported decision %q", action))
	}
	return r.transition(ctx, enrollmentID, action)
}

// Cancel withdraws an enrollment (learner cancel or leave-waitlist). When an
// ACTIVE enrollment is cancelled the freed seat is immediately offered to the
// oldest waitlisted learner, in the same transaction.
func (r *EnrollmentRepository) Cancel(ctx context.Context, enrollmentID int64) (*models.Enrollment, *models.Enrollment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	enrollment, _, err := r.lockEnrollment(ctx, tx, enrollmentID)
	if err != nil {
		return nil, nil, err
	}
	wasActive := enrollment.Status == models.EnrollmentActive

	next, err := models.NextStatus(enrollment.Status, models.ActionCancel, false)
	if err != nil {
		return nil, nil, err
	}
	if err := r.updateStatus(ctx, tx, enrollment, next); err != nil {
		return nil, nil, err
	}

	var promoted *models.Enrollment
	if wasActive {
		promoted, err = r.promoteOldestWaitlisted(ctx, tx, enrollment.OfferingID)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return enrollment, promoted, nil
}

// Promote moves a waitlisted enrollment into a free seat (manual trigger).
func (r *EnrollmentRepository) Promote(ctx context.Context, enrollmentID int64) (*models.Enrollment, error) {
	return r.transition(ctx, enrollmentID, models.ActionPromote)
}

// transition runs one state-machine step under the offering lock.
func (r *EnrollmentRepository) transition(ctx context.Context, enrollmentID int64, action models.EnrollmentAction) (*models.Enrollment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	enrollment, capacity, err := r.lockEnrollment(ctx, tx, enrollmentID)
	if err != nil {
		return nil, err
	}

	seatAvailable := false
	if action == models.ActionApprove || action == models.ActionPromote {
		activeCount, err := countActive(ctx, tx, enrollment.OfferingID)
		if err != nil {
			return nil, err
		}
		seatAvailable = activeCount < capacity
	}

	next, err := models.NextStatus(enrollment.Status, action, seatAvailable)
	if err != nil {
		return nil, err
	}
	if err := r.updateStatus(ctx, tx, enrollment, next); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return enrollment, nil
}

// lockEnrollment locks the owning offering first, then the enrollment row,
// and returns both the enrollment and the offering's capacity.
func (r *EnrollmentRepository) lockEnrollment(ctx context.Context, tx pgx.Tx, enrollmentID int64) (*models.Enrollment, int, error) {
	var offeringID int64
	err := tx.QueryRow(ctx, `SELECT offering_id FROM enrollments WHERE id = $1`, enrollmentID).Scan(&offeringID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, apperrors.ErrEnrollmentNotFound
		}
		return nil, 0, fmt.Errorf("error resolving enrollment offering: %w", err)
	}

	capacity, _, err := lockOffering(ctx, tx, offeringID)
	if err != nil {
		return nil, 0, err
	}

	enrollment, err := scanEnrollment(tx.QueryRow(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE id = $1 FOR UPDATE`, enrollmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, apperrors.ErrEnrollmentNotFound
		}
		return nil, 0, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return enrollment, capacity, nil
}

func (r *EnrollmentRepository) updateStatus(ctx context.Context, tx pgx.Tx, enrollment *models.Enrollment, next models.EnrollmentStatus) error {
	err := tx.QueryRow(ctx, `
		UPDATE enrollments
		SET status = $1, transitioned_at = now()
		WHERE id = $2
		RETURNING transitioned_at`,
		next, enrollment.ID).Scan(&enrollment.TransitionedAt)
	if err != nil {
		return fmt.Errorf("error updating enrollment status: %w", err)
	}
	enrollment.Status = next
	return nil
}

// promoteOldestWaitlisted gives the freed seat to the FIFO head of the
// waitlist. Returns nil when the waitlist is empty.
func (r *EnrollmentRepository) promoteOldestWaitlisted(ctx context.Context, tx pgx.Tx, offeringID int64) (*models.Enrollment, error) {
	promoted, err := scanEnrollment(tx.QueryRow(ctx, `
		UPDATE enrollments
		SET status = $1, transitioned_at = now()
		WHERE id = (
			SELECT id FROM enrollments
			WHERE offering_id = $2 AND status = $3
			ORDER BY requested_at, id
			LIMIT 1
		)
		RETURNING `+enrollmentColumns,
		models.EnrollmentActive, offeringID, models.EnrollmentWaitlist))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error promoting waitlisted enrollment: %w", err)
	}
	return promoted, nil
}

// GetByID retrieves an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	enrollment, err := scanEnrollment(r.db.QueryRow(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return enrollment, nil
}

// waitlistPositionExpr computes the 1-based FIFO position among the
// offering's WAITLIST rows; NULL for every other status.
const waitlistPositionExpr = `
	CASE WHEN e.status = 'WAITLIST' THEN (
		SELECT COUNT(*) FROM enrollments w
		WHERE w.offering_id = e.offering_id
		  AND w.status = 'WAITLIST'
		  AND (w.requested_at, w.id) <= (e.requested_at, e.id)
	) END`

// ListByOffering retrieves an offering's enrollments with learner info and
// waitlist positions, oldest request first.
func (r *EnrollmentRepository) ListByOffering(ctx context.Context, offeringID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT e.id, e.offering_id, e.learner_id, e.status, e.requested_at, e.transitioned_at,
		       ` + waitlistPositionExpr + ` AS waitlist_position,
		       u.id, u.email, u.full_name, u.role_type
		FROM enrollments e
		JOIN users u ON u.id = e.learner_id
		WHERE e.offering_id = $1
		ORDER BY e.requested_at, e.id`

	rows, err := r.db.Query(ctx, query, offeringID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		var learner models.User
		if err := rows.Scan(
			&e.ID, &e.OfferingID, &e.LearnerID, &e.Status, &e.RequestedAt, &e.TransitionedAt,
			&e.WaitlistPosition,
			&learner.ID, &learner.Email, &learner.FullName, &learner.RoleType,
		); err != nil {
			return nil, err
		}
		e.Learner = &learner
		enrollments = append(enrollments, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// ListByLearner retrieves a learner's enrollments with waitlist positions,
// most recent request first.
func (r *EnrollmentRepository) ListByLearner(ctx context.Context, learnerID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT e.id, e.offering_id, e.learner_id, e.status, e.requested_at, e.transitioned_at,
		       ` + waitlistPositionExpr + ` AS waitlist_position
		FROM enrollments e
		WHERE e.learner_id = $1
		ORDER BY e.requested_at DESC, e.id DESC`

	rows, err := r.db.Query(ctx, query, learnerID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(
			&e.ID, &e.OfferingID, &e.LearnerID, &e.Status, &e.RequestedAt, &e.TransitionedAt,
			&e.WaitlistPosition,
		); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}
