package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/baiana/danceclub/internal/domain/event"
	"github.com/baiana/danceclub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// EVENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// EventRepository implements event.Repository.
type EventRepository struct {
	conn *Connection
}

var _ event.Repository = (*EventRepository)(nil)

// NewEventRepository creates a new EventRepository.
func NewEventRepository(conn *Connection) *EventRepository {
	return &EventRepository{conn: conn}
}

const eventColumns = `id, name, event_date, honoree`

// Save inserts a new event or updates an existing one.
func (r *EventRepository) Save(ctx context.Context, e *event.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}

	if e.ID == 0 {
		err := r.conn.QueryRow(ctx,
			`INSERT INTO events (name, event_date, honoree) VALUES (?, ?, ?) RETURNING id`,
			e.Name, dateArg(e.Date), e.Honoree,
		).Scan(&e.ID)
		if err != nil {
			if IsUniqueViolation(err) {
				return shared.ErrEventAlreadyExists
			}
			return fmt.Errorf("failed to create event: %w", err)
		}
		return nil
	}

	res, err := r.conn.Exec(ctx,
		`UPDATE events SET name = ?, event_date = ?, honoree = ? WHERE id = ?`,
		e.Name, dateArg(e.Date), e.Honoree, e.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrEventAlreadyExists
		}
		return fmt.Errorf("failed to update event: %w", err)
	}
	return rowsAffected(res, shared.ErrEventNotFound)
}

// GetByID returns an event by ID.
func (r *EventRepository) GetByID(ctx context.Context, id shared.ID) (*event.Event, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	return scanEvent(row)
}

// GetByName returns an event by exact, case-insensitive name.
func (r *EventRepository) GetByName(ctx context.Context, name string) (*event.Event, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE LOWER(name) = LOWER(?)`, name)
	return scanEvent(row)
}

// List returns all events ordered by date.
func (r *EventRepository) List(ctx context.Context) ([]*event.Event, error) {
	return r.query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY event_date, id`)
}

// SearchByName returns events whose name contains the query, ordered by date.
func (r *EventRepository) SearchByName(ctx context.Context, query string) ([]*event.Event, error) {
	return r.query(ctx,
		`SELECT `+eventColumns+` FROM events
		WHERE LOWER(name) LIKE ? ESCAPE '\'
		ORDER BY event_date, id`,
		likePattern(query),
	)
}

// Delete removes an event without evaluations.
func (r *EventRepository) Delete(ctx context.Context, id shared.ID) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.ErrEventInUse
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return rowsAffected(res, shared.ErrEventNotFound)
}

// Exists reports whether an event with the ID exists.
func (r *EventRepository) Exists(ctx context.Context, id shared.ID) (bool, error) {
	return exists(ctx, r.conn, "events", id)
}

func (r *EventRepository) query(ctx context.Context, query string, args ...any) ([]*event.Event, error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var result []*event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func scanEvent(row scanner) (*event.Event, error) {
	var e event.Event
	var date time.Time
	err := row.Scan(&e.ID, &e.Name, &date, &e.Honoree)
	if IsNoRows(err) {
		return nil, shared.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}
	e.Date = dateFrom(date)
	return &e, nil
}
