package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/tutorhive/tutorhive/internal/app/models"
	"github.com/tutorhive/tutorhive/internal/app/repositories"
	"github.com/tutorhive/tutorhive/internal/config"
	"github.com/tutorhive/tutorhive/internal/pkg/auth"
)

const defaultTutorEmail = "tutor@tutorhive.app"

// CreateDefaultData seeds a default tutor account so a fresh install has a
// user that can create offerings. Safe to run on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, defaultTutorEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if default tutor exists")
		return err
	}
	if exists {
		return nil
	}

	lgr.Info().Str("email", defaultTutorEmail).Msg("Creating default tutor account...")

	// Password comes from the environment on real deployments
	password := config.GetEnv("SEED_TUTOR_PASSWORD", "ChangeMe123!")
	hashed, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default tutor password")
		return err
	}

	tutor := &models.User{
		Email:    defaultTutorEmail,
		Password: hashed,
		FullName: "TutorHive Tutor",
		RoleType: models.RoleTutor,
	}
	if err := userRepo.Create(ctx, tutor); err != nil {
		lgr.Error().Err(err).Msg("Error creating default tutor")
		return err
	}

	lgr.Info().Int64("userId", tutor.ID).Msg("Default tutor account created")
	return nil
}
