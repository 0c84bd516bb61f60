package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/assignment"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type assignmentRepository struct {
	db *database.DB
}

// NewAssignmentRepository creates a PostgreSQL-backed assignment.Repository.
func NewAssignmentRepository(db *database.DB) assignment.Repository {
	return &assignmentRepository{db: db}
}

const assignmentSelect = `
	SELECT a.id, a.cleaner_id, a.location_id, a.is_active, a.created_at,
	       p.full_name AS cleaner_name,
	       l.name AS location_name,
	       l.address AS location_address
	FROM assignments a
	LEFT JOIN profiles p ON p.id = a.cleaner_id
	LEFT JOIN locations l ON l.id = a.location_id
`

func scanAssignment(row pgx.Row) (assignment.Assignment, error) {
	var a assignment.Assignment
	err := row.Scan(
		&a.ID, &a.CleanerID, &a.LocationID, &a.IsActive, &a.CreatedAt,
		&a.CleanerName, &a.LocationName, &a.LocationAddress,
	)
	return a, err
}

// Create implements assignment.Repository.
func (r *assignmentRepository) Create(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO assignments (cleaner_id, location_id, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, a.CleanerID, a.LocationID, a.IsActive).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return assignment.Assignment{}, assignment.ErrAssignmentExists
		}
		return assignment.Assignment{}, fmt.Errorf("failed to create assignment: %w", err)
	}

	return a, nil
}

// GetByID implements assignment.Repository.
func (r *assignmentRepository) GetByID(ctx context.Context, id string) (assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := assignmentSelect + ` WHERE a.id = $1`

	a, err := scanAssignment(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return assignment.Assignment{}, assignment.ErrAssignmentNotFound
		}
		return assignment.Assignment{}, fmt.Errorf("failed to get assignment by ID: %w", err)
	}

	return a, nil
}

// GetActive implements assignment.Repository.
func (r *assignmentRepository) GetActive(ctx context.Context, cleanerID, locationID string) (*assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := assignmentSelect + `
		WHERE a.cleaner_id = $1 AND a.location_id = $2 AND a.is_active = TRUE
		LIMIT 1
	`

	a, err := scanAssignment(q.QueryRow(ctx, query, cleanerID, locationID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active assignment: %w", err)
	}

	return &a, nil
}

// ListForCleaner implements assignment.Repository.
func (r *assignmentRepository) ListForCleaner(ctx context.Context, cleanerID string) ([]assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := assignmentSelect + `
		WHERE a.cleaner_id = $1 AND a.is_active = TRUE AND l.is_active = TRUE
		ORDER BY l.name ASC
	`

	rows, err := q.Query(ctx, query, cleanerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for cleaner: %w", err)
	}
	defer rows.Close()

	var assignments []assignment.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	return assignments, nil
}

// List implements assignment.Repository.
func (r *assignmentRepository) List(ctx context.Context, filter assignment.Filter) ([]assignment.Assignment, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.CleanerID != nil {
		conditions = append(conditions, fmt.Sprintf("a.cleaner_id = $%d", argPos))
		args = append(args, *filter.CleanerID)
		argPos++
	}

	if filter.LocationID != nil {
		conditions = append(conditions, fmt.Sprintf("a.location_id = $%d", argPos))
		args = append(args, *filter.LocationID)
		argPos++
	}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("a.is_active = $%d", argPos))
		args = append(args, *filter.Active)
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM assignments a ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count assignments: %w", err)
	}

	query := fmt.Sprintf(`%s %s
		ORDER BY a.created_at DESC
		LIMIT $%d OFFSET $%d
	`, assignmentSelect, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []assignment.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	return assignments, total, nil
}

// SetActive implements assignment.Repository.
func (r *assignmentRepository) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE assignments SET is_active = $2 WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("failed to set assignment active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return assignment.ErrAssignmentNotFound
	}

	return nil
}
