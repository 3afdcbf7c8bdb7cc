package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	TokenRepository      *TokenRepository
	OfferingRepository   *OfferingRepository
	SessionRepository    *SessionRepository
	EnrollmentRepository *EnrollmentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		TokenRepository:      NewTokenRepository(db),
		OfferingRepository:   NewOfferingRepository(db),
		SessionRepository:    NewSessionRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
	}
}
