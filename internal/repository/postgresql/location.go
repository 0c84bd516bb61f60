package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/location"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type locationRepository struct {
	db *database.DB
}

// NewLocationRepository creates a PostgreSQL-backed location.Repository.
func NewLocationRepository(db *database.DB) location.Repository {
	return &locationRepository{db: db}
}

const locationColumns = `id, name, address, latitude, longitude, geofence_radius, geofence_enabled, is_active, created_at, updated_at`

func scanLocation(row pgx.Row) (location.Location, error) {
	var l location.Location
	err := row.Scan(
		&l.ID, &l.Name, &l.Address, &l.Latitude, &l.Longitude,
		&l.GeofenceRadius, &l.GeofenceEnabled, &l.IsActive, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

// Create implements location.Repository.
func (r *locationRepository) Create(ctx context.Context, l location.Location) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO locations (name, address, latitude, longitude, geofence_radius, geofence_enabled, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		l.Name,
		l.Address,
		l.Latitude,
		l.Longitude,
		l.GeofenceRadius,
		l.GeofenceEnabled,
		l.IsActive,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)

	if err != nil {
		return location.Location{}, fmt.Errorf("failed to create location: %w", err)
	}

	return l, nil
}

// GetByID implements location.Repository.
func (r *locationRepository) GetByID(ctx context.Context, id string) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`

	l, err := scanLocation(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{}, fmt.Errorf("failed to get location by ID: %w", err)
	}

	return l, nil
}

// List implements location.Repository.
func (r *locationRepository) List(ctx context.Context, filter location.Filter) ([]location.Location, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR address ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filter.Active)
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM locations ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count locations: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM locations %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, locationColumns, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []location.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate locations: %w", err)
	}

	return locations, total, nil
}

// Update implements location.Repository.
func (r *locationRepository) Update(ctx context.Context, l location.Location) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE locations
		SET name = $2, address = $3, latitude = $4, longitude = $5,
		    geofence_radius = $6, geofence_enabled = $7, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		l.ID, l.Name, l.Address, l.Latitude, l.Longitude,
		l.GeofenceRadius, l.GeofenceEnabled,
	)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}

// SetActive implements location.Repository.
func (r *locationRepository) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE locations SET is_active = $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("failed to set location active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}
