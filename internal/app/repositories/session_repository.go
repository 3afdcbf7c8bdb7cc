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

// SessionRepository handles database operations for sessions
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
	}
}

const sessionColumns = `id, offering_id, starts_at, ends_at, status, topic, note`

func scanSession(row pgx.Row) (*models.Session, error) {
	var s models.Session
	err := row.Scan(
		&s.ID,
		&s.OfferingID,
		&s.StartsAt,
		&s.EndsAt,
		&s.Status,
		&s.Topic,
		&s.Note,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID retrieves a session by ID
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	session, err := scanSession(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}

	return session, nil
}

// ListByOffering retrieves all sessions of an offering in chronological order
func (r *SessionRepository) ListByOffering(ctx context.Context, offeringID int64) ([]*models.Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM sessions
		WHERE offering_id = $1
		ORDER BY starts_at, id`

	rows, err := r.db.Query(ctx, query, offeringID)
	if err != nil {
		return nil, fmt.Errorf("error listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// Update persists an amended session. Only the amendable fields move; the
// owning offering and the rest of the series are untouched.
func (r *SessionRepository) Update(ctx context.Context, session *models.Session) error {
	query := `
		UPDATE sessions
		SET starts_at = $1, ends_at = $2, status = $3, topic = $4, note = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		session.StartsAt,
		session.EndsAt,
		session.Status,
		session.Topic,
		session.Note,
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating session: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}

	return nil
}
