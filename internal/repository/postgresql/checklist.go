package postgresql

import (
	"context"
	"fmt"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/checklist"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type checklistRepository struct {
	db *database.DB
}

// NewChecklistRepository creates a PostgreSQL-backed checklist.Repository.
func NewChecklistRepository(db *database.DB) checklist.Repository {
	return &checklistRepository{db: db}
}

const checklistColumns = `id, label, is_default, location_id, sort_order, is_active, created_at`

func scanItem(row pgx.Row) (checklist.Item, error) {
	var item checklist.Item
	err := row.Scan(
		&item.ID, &item.Label, &item.IsDefault, &item.LocationID,
		&item.SortOrder, &item.IsActive, &item.CreatedAt,
	)
	return item, err
}

// CreateBatch implements checklist.Repository.
func (r *checklistRepository) CreateBatch(ctx context.Context, items []checklist.Item) ([]checklist.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO checklist_items (label, is_default, location_id, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	created := make([]checklist.Item, 0, len(items))
	for _, item := range items {
		err := q.QueryRow(ctx, query,
			item.Label, item.IsDefault, item.LocationID, item.SortOrder, item.IsActive,
		).Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to create checklist item: %w", err)
		}
		created = append(created, item)
	}

	return created, nil
}

// ListPresented implements checklist.Repository.
func (r *checklistRepository) ListPresented(ctx context.Context, locationID string) ([]checklist.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + checklistColumns + `
		FROM checklist_items
		WHERE is_active = TRUE
		  AND (is_default = TRUE OR location_id = $1)
		ORDER BY is_default DESC, sort_order ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list presented checklist items: %w", err)
	}
	defer rows.Close()

	var items []checklist.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checklist item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate checklist items: %w", err)
	}

	return items, nil
}

// List implements checklist.Repository.
func (r *checklistRepository) List(ctx context.Context, locationID *string) ([]checklist.Item, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	var args []interface{}
	if locationID == nil {
		query = `
			SELECT ` + checklistColumns + `
			FROM checklist_items
			WHERE is_default = TRUE
			ORDER BY sort_order ASC, created_at ASC
		`
	} else {
		query = `
			SELECT ` + checklistColumns + `
			FROM checklist_items
			WHERE location_id = $1
			ORDER BY sort_order ASC, created_at ASC
		`
		args = append(args, *locationID)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	defer rows.Close()

	var items []checklist.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checklist item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate checklist items: %w", err)
	}

	return items, nil
}

// GetByID implements checklist.Repository.
func (r *checklistRepository) GetByID(ctx context.Context, id string) (checklist.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + checklistColumns + ` FROM checklist_items WHERE id = $1`

	item, err := scanItem(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return checklist.Item{}, checklist.ErrItemNotFound
		}
		return checklist.Item{}, fmt.Errorf("failed to get checklist item by ID: %w", err)
	}

	return item, nil
}

// SetActive implements checklist.Repository.
func (r *checklistRepository) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE checklist_items SET is_active = $2 WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("failed to set checklist item active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return checklist.ErrItemNotFound
	}

	return nil
}
