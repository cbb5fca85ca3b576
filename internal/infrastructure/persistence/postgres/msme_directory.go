package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/msmebridge/marketplace/internal/domain/model"
	"github.com/msmebridge/marketplace/internal/domain/port"
	pkgpostgres "github.com/msmebridge/marketplace/pkg/postgres"
)

// MSMEDirectory implements port.MSMEDirectory over the user profiles table
// owned by the identity service.
type MSMEDirectory struct {
	db pkgpostgres.Querier
}

// NewMSMEDirectory creates a directory backed by PostgreSQL.
func NewMSMEDirectory(db pkgpostgres.Querier) *MSMEDirectory {
	return &MSMEDirectory{db: db}
}

// FindProfile looks up a user by their marketplace id.
func (r *MSMEDirectory) FindProfile(ctx context.Context, msmeID string) (model.MSMEProfile, error) {
	query := `
		SELECT id, name, role, email, phone, gstin, msme_type, sector, address, business_vintage_years
		FROM user_profiles
		WHERE id = $1
	`

	var p model.MSMEProfile
	err := r.db.QueryRow(ctx, query, msmeID).Scan(
		&p.ID, &p.Name, &p.Role, &p.Email, &p.Phone, &p.GSTIN,
		&p.MSMEType, &p.Sector, &p.Address, &p.BusinessVintageYears,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.MSMEProfile{}, fmt.Errorf("MSME user %s: %w", msmeID, port.ErrNotFound)
	}
	if err != nil {
		return model.MSMEProfile{}, fmt.Errorf("scan user profile: %w", err)
	}
	return p, nil
}
