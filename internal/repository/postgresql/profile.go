package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/auth"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/profile"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type profileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a PostgreSQL-backed profile.Repository.
func NewProfileRepository(db *database.DB) profile.Repository {
	return &profileRepository{db: db}
}

const profileColumns = `id, full_name, email, phone, role, avatar_url, password_hash, is_active, invited_by, created_at, updated_at`

func scanProfile(row pgx.Row) (profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(
		&p.ID, &p.FullName, &p.Email, &p.Phone, &p.Role, &p.AvatarURL,
		&p.PasswordHash, &p.IsActive, &p.InvitedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create implements profile.Repository.
func (r *profileRepository) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO profiles (full_name, email, phone, role, avatar_url, password_hash, is_active, invited_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.FullName,
		p.Email,
		p.Phone,
		p.Role,
		p.AvatarURL,
		p.PasswordHash,
		p.IsActive,
		p.InvitedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "") {
			return profile.Profile{}, profile.ErrEmailExists
		}
		return profile.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	return p, nil
}

// GetByID implements profile.Repository.
func (r *profileRepository) GetByID(ctx context.Context, id string) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	p, err := scanProfile(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		return profile.Profile{}, fmt.Errorf("failed to get profile by ID: %w", err)
	}

	return p, nil
}

// GetByEmail implements profile.Repository.
func (r *profileRepository) GetByEmail(ctx context.Context, email string) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE LOWER(email) = LOWER($1)`

	p, err := scanProfile(q.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		return profile.Profile{}, fmt.Errorf("failed to get profile by email: %w", err)
	}

	return p, nil
}

// ListCleaners implements profile.Repository.
func (r *profileRepository) ListCleaners(ctx context.Context, filter profile.CleanerFilter) ([]profile.Profile, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"role = $1"}
	args := []interface{}{auth.RoleCleaner}
	argPos := 2

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR email ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filter.Active)
		argPos++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM profiles ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count cleaners: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM profiles %s
		ORDER BY full_name ASC
		LIMIT $%d OFFSET $%d
	`, profileColumns, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cleaners: %w", err)
	}
	defer rows.Close()

	var profiles []profile.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan cleaner: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate cleaners: %w", err)
	}

	return profiles, total, nil
}

// ListActiveAdmins implements profile.Repository.
func (r *profileRepository) ListActiveAdmins(ctx context.Context) ([]profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE role = $1 AND is_active = TRUE ORDER BY full_name ASC`

	rows, err := q.Query(ctx, query, auth.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to list active admins: %w", err)
	}
	defer rows.Close()

	var admins []profile.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}
		admins = append(admins, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate admins: %w", err)
	}

	return admins, nil
}

// Update implements profile.Repository.
func (r *profileRepository) Update(ctx context.Context, p profile.Profile) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE profiles
		SET full_name = $2, phone = $3, avatar_url = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, p.ID, p.FullName, p.Phone, p.AvatarURL)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}

	return nil
}

// SetActive implements profile.Repository.
func (r *profileRepository) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE profiles SET is_active = $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("failed to set profile active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}

	return nil
}
