package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/keiji0711/final-final/internal/app/models"
	appRepos "github.com/keiji0711/final-final/internal/app/repositories"
	"github.com/keiji0711/final-final/internal/pkg/auth"
)

const defaultAdminUsername = "admin"

// CreateDefaultData creates the default officer account if no account exists
// yet. The password comes from ADMIN_PASSWORD, falling back to a development
// default so a fresh checkout can log in.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default officer account...")

	existing, err := userRepo.GetByUsername(ctx, defaultAdminUsername)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default officer")
		return err
	}
	if existing != nil {
		lgr.Debug().Msg("Default officer already exists, skipping")
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
		lgr.Warn().Msg("ADMIN_PASSWORD not set, seeding default officer with development password")
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default officer password")
		return err
	}

	officer := &appModels.User{
		Username: defaultAdminUsername,
		Password: hashed,
		FullName: "OSAS Officer",
		RoleType: appModels.RoleOfficer,
	}

	if err := userRepo.Create(ctx, officer); err != nil {
		if errors.Is(err, appRepos.ErrUsernameAlreadyUsed) {
			// Another instance seeded first
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default officer")
		return err
	}

	lgr.Info().Str("username", defaultAdminUsername).Msg("Default officer account created")
	return nil
}
