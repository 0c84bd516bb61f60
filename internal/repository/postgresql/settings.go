package postgresql

import (
	"context"
	"fmt"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/settings"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

// NewSettingsRepository creates a PostgreSQL-backed settings.Repository.
func NewSettingsRepository(db *database.DB) settings.Repository {
	return &settingsRepository{db: db}
}

// Get implements settings.Repository. The settings table holds exactly one
// row, seeded by the schema migration.
func (r *settingsRepository) Get(ctx context.Context) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company_name, logo_url, primary_color, secondary_color,
		       default_geofence_radius, geofence_enabled,
		       notify_on_checkin, notify_on_checkout, updated_at
		FROM organization_settings
		LIMIT 1
	`

	var s settings.Settings
	err := q.QueryRow(ctx, query).Scan(
		&s.CompanyName, &s.LogoURL, &s.PrimaryColor, &s.SecondaryColor,
		&s.DefaultGeofenceRadius, &s.GeofenceEnabled,
		&s.NotifyOnCheckin, &s.NotifyOnCheckout, &s.UpdatedAt,
	)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return s, nil
}

// Update implements settings.Repository.
func (r *settingsRepository) Update(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE organization_settings
		SET company_name = $1, logo_url = $2, primary_color = $3, secondary_color = $4,
		    default_geofence_radius = $5, geofence_enabled = $6,
		    notify_on_checkin = $7, notify_on_checkout = $8, updated_at = NOW()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		s.CompanyName, s.LogoURL, s.PrimaryColor, s.SecondaryColor,
		s.DefaultGeofenceRadius, s.GeofenceEnabled,
		s.NotifyOnCheckin, s.NotifyOnCheckout,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to update settings: %w", err)
	}

	return s, nil
}
