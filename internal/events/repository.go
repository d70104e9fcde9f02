package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/morocco-events/backend/internal/models"
	"github.com/morocco-events/backend/pkg/database"
)

const eventColumns = `id, slug, title, subtitle, description, image, images, start_date, end_date,
	city, location, category, organizer, user_id, status, lat, lng, created_at, updated_at`

// PostgresRepository stores events and their subscribers in PostgreSQL.
type PostgresRepository struct {
	db database.DBTX
}

// NewRepository creates an event repository.
func NewRepository(db database.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	var lat, lng *float64
	err := row.Scan(&e.ID, &e.Slug, &e.Title, &e.Subtitle, &e.Description, &e.Image, &e.Images,
		&e.StartDate, &e.EndDate, &e.City, &e.Location, &e.Category, &e.Organizer, &e.UserID,
		&e.Status, &lat, &lng, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		e.Coordinates = &models.Coordinates{Lat: *lat, Lng: *lng}
	}
	if e.Images == nil {
		e.Images = []string{}
	}
	e.Subscribers = []models.Subscriber{}
	return &e, nil
}

func coords(c *models.Coordinates) (lat, lng *float64) {
	if c == nil {
		return nil, nil
	}
	return &c.Lat, &c.Lng
}

// Create inserts a new event.
func (r *PostgresRepository) Create(ctx context.Context, e *models.Event) error {
	lat, lng := coords(e.Coordinates)
	const q = `INSERT INTO events (id, slug, title, subtitle, description, image, images, start_date, end_date,
		city, location, category, organizer, user_id, status, lat, lng, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.db.Exec(ctx, q, e.ID, e.Slug, e.Title, e.Subtitle, e.Description, e.Image, e.Images,
		e.StartDate, e.EndDate, e.City, e.Location, e.Category, e.Organizer, e.UserID, string(e.Status),
		lat, lng, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", database.MapError(err))
	}
	return nil
}

// GetByID returns an event with its subscribers.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	e, err := scanEvent(r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get event by id: %w", database.MapError(err))
	}
	if err := r.loadSubscribers(ctx, []*models.Event{e}); err != nil {
		return nil, err
	}
	return e, nil
}

// GetBySlug returns an event with its subscribers.
func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	e, err := scanEvent(r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE slug = $1`, slug))
	if err != nil {
		return nil, fmt.Errorf("get event by slug: %w", database.MapError(err))
	}
	if err := r.loadSubscribers(ctx, []*models.Event{e}); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns events in insertion order. Zero-valued filter fields match everything.
func (r *PostgresRepository) List(ctx context.Context, f ListFilter) ([]models.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	var args []any
	if f.Status != "" {
		args = append(args, string(f.Status))
		q += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.OwnerID != uuid.Nil {
		args = append(args, f.OwnerID)
		q += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	q += ` ORDER BY created_at, seq`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	var list []*models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadSubscribers(ctx, list); err != nil {
		return nil, err
	}
	out := make([]models.Event, 0, len(list))
	for _, e := range list {
		out = append(out, *e)
	}
	return out, nil
}

func (r *PostgresRepository) loadSubscribers(ctx context.Context, list []*models.Event) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(list))
	byID := make(map[uuid.UUID]*models.Event, len(list))
	for _, e := range list {
		ids = append(ids, e.ID)
		byID[e.ID] = e
	}
	rows, err := r.db.Query(ctx, `SELECT id, event_id, name, whatsapp, created_at
		FROM event_subscribers WHERE event_id = ANY($1) ORDER BY seq`, ids)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s models.Subscriber
		if err := rows.Scan(&s.ID, &s.EventID, &s.Name, &s.WhatsApp, &s.CreatedAt); err != nil {
			return fmt.Errorf("scan subscriber: %w", err)
		}
		if e := byID[s.EventID]; e != nil {
			e.Subscribers = append(e.Subscribers, s)
		}
	}
	return rows.Err()
}

// Update writes the editable fields. Slug, owner, status and created_at are not touched.
func (r *PostgresRepository) Update(ctx context.Context, e *models.Event) error {
	lat, lng := coords(e.Coordinates)
	const q = `UPDATE events SET title = $2, subtitle = $3, description = $4, image = $5, images = $6,
		start_date = $7, end_date = $8, city = $9, location = $10, category = $11, organizer = $12,
		lat = $13, lng = $14, updated_at = $15 WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, e.ID, e.Title, e.Subtitle, e.Description, e.Image, e.Images,
		e.StartDate, e.EndDate, e.City, e.Location, e.Category, e.Organizer, lat, lng, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update event: %w", database.ErrNotFound)
	}
	return nil
}

// UpdateStatus locks the row, lets guard check the current status, then writes to.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, to models.Status, at time.Time, guard StatusGuard) (*models.Event, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current string
	if err := tx.QueryRow(ctx, `SELECT status FROM events WHERE id = $1 FOR UPDATE`, id).Scan(&current); err != nil {
		return nil, fmt.Errorf("lock event: %w", database.MapError(err))
	}
	from := models.Status(current)
	if guard != nil {
		if err := guard(from); err != nil {
			return nil, err
		}
	}
	tag, err := tx.Exec(ctx, `UPDATE events SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`,
		id, string(to), at, string(from))
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("update status: %w", database.ErrNotFound)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return r.GetByID(ctx, id)
}

// AppendSubscriber inserts one subscriber row. ErrNotFound when the event does not exist.
func (r *PostgresRepository) AppendSubscriber(ctx context.Context, s *models.Subscriber) error {
	const q = `INSERT INTO event_subscribers (id, event_id, name, whatsapp, created_at)
		SELECT $1, $2, $3, $4, $5 WHERE EXISTS (SELECT 1 FROM events WHERE id = $2)`
	tag, err := r.db.Exec(ctx, q, s.ID, s.EventID, s.Name, s.WhatsApp, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert subscriber: %w", database.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insert subscriber: %w", database.ErrNotFound)
	}
	return nil
}
