package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/session"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// uniqOpenSessionConstraint is the partial unique index on
// sessions(cleaner_id) WHERE status = 'checked_in'. It is the line of
// defense that keeps two concurrent check-ins from both succeeding.
const uniqOpenSessionConstraint = "uniq_open_session_per_cleaner"

type sessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a PostgreSQL-backed session.Repository.
func NewSessionRepository(db *database.DB) session.Repository {
	return &sessionRepository{db: db}
}

const sessionSelect = `
	SELECT s.id, s.cleaner_id, s.location_id, s.assignment_id, s.status,
	       s.checkin_at, s.checkin_latitude, s.checkin_longitude,
	       s.checkin_distance_meters, s.checkin_within_geofence,
	       s.checkout_at, s.checkout_latitude, s.checkout_longitude,
	       s.checkout_distance_meters, s.checkout_within_geofence,
	       s.remarks, s.created_at,
	       p.full_name AS cleaner_name,
	       p.email AS cleaner_email,
	       l.name AS location_name,
	       l.address AS location_address
	FROM sessions s
	LEFT JOIN profiles p ON p.id = s.cleaner_id
	LEFT JOIN locations l ON l.id = s.location_id
`

func scanSession(row pgx.Row) (session.Session, error) {
	var s session.Session
	err := row.Scan(
		&s.ID, &s.CleanerID, &s.LocationID, &s.AssignmentID, &s.Status,
		&s.CheckinAt, &s.CheckinLatitude, &s.CheckinLongitude,
		&s.CheckinDistanceMeters, &s.CheckinWithinGeofence,
		&s.CheckoutAt, &s.CheckoutLatitude, &s.CheckoutLongitude,
		&s.CheckoutDistanceMeters, &s.CheckoutWithinGeofence,
		&s.Remarks, &s.CreatedAt,
		&s.CleanerName, &s.CleanerEmail, &s.LocationName, &s.LocationAddress,
	)
	return s, err
}

// Create implements session.Repository.
func (r *sessionRepository) Create(ctx context.Context, s session.Session) (session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sessions (
			cleaner_id, location_id, assignment_id, status,
			checkin_at, checkin_latitude, checkin_longitude,
			checkin_distance_meters, checkin_within_geofence
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		s.CleanerID,
		s.LocationID,
		s.AssignmentID,
		s.Status,
		s.CheckinAt,
		s.CheckinLatitude,
		s.CheckinLongitude,
		s.CheckinDistanceMeters,
		s.CheckinWithinGeofence,
	).Scan(&s.ID, &s.CreatedAt)

	if err != nil {
		if isUniqueViolation(err, uniqOpenSessionConstraint) {
			return session.Session{}, session.ErrAlreadyCheckedIn
		}
		return session.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return s, nil
}

// GetByID implements session.Repository.
func (r *sessionRepository) GetByID(ctx context.Context, id string) (session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := sessionSelect + ` WHERE s.id = $1`

	s, err := scanSession(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return session.Session{}, session.ErrSessionNotFound
		}
		return session.Session{}, fmt.Errorf("failed to get session by ID: %w", err)
	}

	return s, nil
}

// GetByIDForCleaner implements session.Repository.
func (r *sessionRepository) GetByIDForCleaner(ctx context.Context, id, cleanerID string) (session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := sessionSelect + ` WHERE s.id = $1 AND s.cleaner_id = $2`

	s, err := scanSession(q.QueryRow(ctx, query, id, cleanerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return session.Session{}, session.ErrSessionNotFound
		}
		return session.Session{}, fmt.Errorf("failed to get session for cleaner: %w", err)
	}

	return s, nil
}

// GetOpenByCleaner implements session.Repository.
func (r *sessionRepository) GetOpenByCleaner(ctx context.Context, cleanerID string) (*session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := sessionSelect + `
		WHERE s.cleaner_id = $1 AND s.status = $2
		ORDER BY s.checkin_at DESC
		LIMIT 1
	`

	s, err := scanSession(q.QueryRow(ctx, query, cleanerID, session.StatusCheckedIn))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	return &s, nil
}

// Close implements session.Repository.
func (r *sessionRepository) Close(ctx context.Context, id string, checkoutAt time.Time, lat, lng, distance float64, within bool, remarks *string) (session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sessions
		SET status = $2, checkout_at = $3,
		    checkout_latitude = $4, checkout_longitude = $5,
		    checkout_distance_meters = $6, checkout_within_geofence = $7,
		    remarks = $8
		WHERE id = $1 AND status = $9
		RETURNING id
	`

	var closedID string
	err := q.QueryRow(ctx, query,
		id, session.StatusCheckedOut, checkoutAt,
		lat, lng, distance, within, remarks,
		session.StatusCheckedIn,
	).Scan(&closedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			// Session missing or already closed; look again to tell which.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return session.Session{}, getErr
			}
			return session.Session{}, session.ErrAlreadyCheckedOut
		}
		return session.Session{}, fmt.Errorf("failed to close session: %w", err)
	}

	return r.GetByID(ctx, id)
}

// CreateTasks implements session.Repository.
func (r *sessionRepository) CreateTasks(ctx context.Context, tasks []session.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO session_tasks (session_id, item_id, label, completed)
		VALUES ($1, $2, $3, $4)
	`

	for _, t := range tasks {
		if _, err := q.Exec(ctx, query, t.SessionID, t.ItemID, t.Label, t.Completed); err != nil {
			return fmt.Errorf("failed to create session task: %w", err)
		}
	}

	return nil
}

// CreatePhotos implements session.Repository.
func (r *sessionRepository) CreatePhotos(ctx context.Context, photos []session.Photo) error {
	if len(photos) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO session_photos (session_id, path, size_bytes)
		VALUES ($1, $2, $3)
	`

	for _, p := range photos {
		if _, err := q.Exec(ctx, query, p.SessionID, p.Path, p.SizeBytes); err != nil {
			return fmt.Errorf("failed to create session photo: %w", err)
		}
	}

	return nil
}

// ListTasks implements session.Repository.
func (r *sessionRepository) ListTasks(ctx context.Context, sessionID string) ([]session.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, session_id, item_id, label, completed, created_at
		FROM session_tasks
		WHERE session_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session tasks: %w", err)
	}
	defer rows.Close()

	var tasks []session.Task
	for rows.Next() {
		var t session.Task
		if err := rows.Scan(&t.ID, &t.SessionID, &t.ItemID, &t.Label, &t.Completed, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session task: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session tasks: %w", err)
	}

	return tasks, nil
}

// ListPhotos implements session.Repository.
func (r *sessionRepository) ListPhotos(ctx context.Context, sessionID string) ([]session.Photo, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, session_id, path, size_bytes, created_at
		FROM session_photos
		WHERE session_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session photos: %w", err)
	}
	defer rows.Close()

	var photos []session.Photo
	for rows.Next() {
		var p session.Photo
		if err := rows.Scan(&p.ID, &p.SessionID, &p.Path, &p.SizeBytes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session photo: %w", err)
		}
		photos = append(photos, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session photos: %w", err)
	}

	return photos, nil
}

// List implements session.Repository.
func (r *sessionRepository) List(ctx context.Context, filter session.Filter) ([]session.Session, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.CleanerID != nil {
		conditions = append(conditions, fmt.Sprintf("s.cleaner_id = $%d", argPos))
		args = append(args, *filter.CleanerID)
		argPos++
	}

	if filter.LocationID != nil {
		conditions = append(conditions, fmt.Sprintf("s.location_id = $%d", argPos))
		args = append(args, *filter.LocationID)
		argPos++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("s.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}

	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("s.checkin_at >= $%d", argPos))
		args = append(args, *filter.DateFrom)
		argPos++
	}

	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("s.checkin_at <= $%d", argPos))
		args = append(args, *filter.DateTo)
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM sessions s ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	query := fmt.Sprintf(`%s %s
		ORDER BY s.checkin_at DESC
		LIMIT $%d OFFSET $%d
	`, sessionSelect, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []session.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, total, nil
}
