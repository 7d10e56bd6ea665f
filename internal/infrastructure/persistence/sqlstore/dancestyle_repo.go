package sqlstore

import (
	"context"
	"fmt"

	"github.com/baiana/danceclub/internal/domain/dancestyle"
	"github.com/baiana/danceclub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DANCE STYLE REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// DanceStyleRepository implements dancestyle.Repository.
type DanceStyleRepository struct {
	conn *Connection
}

var _ dancestyle.Repository = (*DanceStyleRepository)(nil)

// NewDanceStyleRepository creates a new DanceStyleRepository.
func NewDanceStyleRepository(conn *Connection) *DanceStyleRepository {
	return &DanceStyleRepository{conn: conn}
}

const styleColumns = `id, name`

// Save inserts a new style or updates an existing one.
func (r *DanceStyleRepository) Save(ctx context.Context, s *dancestyle.Style) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if s.ID == 0 {
		err := r.conn.QueryRow(ctx,
			`INSERT INTO dance_styles (name) VALUES (?) RETURNING id`,
			s.Name,
		).Scan(&s.ID)
		if err != nil {
			if IsUniqueViolation(err) {
				return shared.ErrStyleAlreadyExists
			}
			return fmt.Errorf("failed to create dance style: %w", err)
		}
		return nil
	}

	res, err := r.conn.Exec(ctx, `UPDATE dance_styles SET name = ? WHERE id = ?`, s.Name, s.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrStyleAlreadyExists
		}
		return fmt.Errorf("failed to update dance style: %w", err)
	}
	return rowsAffected(res, shared.ErrStyleNotFound)
}

// GetByID returns a style by ID.
func (r *DanceStyleRepository) GetByID(ctx context.Context, id shared.ID) (*dancestyle.Style, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+styleColumns+` FROM dance_styles WHERE id = ?`, id)
	return scanStyle(row)
}

// GetByName returns a style by exact, case-insensitive name.
func (r *DanceStyleRepository) GetByName(ctx context.Context, name string) (*dancestyle.Style, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+styleColumns+` FROM dance_styles WHERE LOWER(name) = LOWER(?)`, name)
	return scanStyle(row)
}

// List returns all styles ordered by name.
func (r *DanceStyleRepository) List(ctx context.Context) ([]*dancestyle.Style, error) {
	return r.query(ctx, `SELECT `+styleColumns+` FROM dance_styles ORDER BY LOWER(name), id`)
}

// SearchByName returns styles whose name contains the query.
func (r *DanceStyleRepository) SearchByName(ctx context.Context, query string) ([]*dancestyle.Style, error) {
	return r.query(ctx,
		`SELECT `+styleColumns+` FROM dance_styles
		WHERE LOWER(name) LIKE ? ESCAPE '\'
		ORDER BY LOWER(name), id`,
		likePattern(query),
	)
}

// Delete removes a style and its parameter links.
func (r *DanceStyleRepository) Delete(ctx context.Context, id shared.ID) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM dance_styles WHERE id = ?`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.ErrStyleInUse
		}
		return fmt.Errorf("failed to delete dance style: %w", err)
	}
	return rowsAffected(res, shared.ErrStyleNotFound)
}

// Exists reports whether a style with the ID exists.
func (r *DanceStyleRepository) Exists(ctx context.Context, id shared.ID) (bool, error) {
	return exists(ctx, r.conn, "dance_styles", id)
}

func (r *DanceStyleRepository) query(ctx context.Context, query string, args ...any) ([]*dancestyle.Style, error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dance styles: %w", err)
	}
	defer rows.Close()

	var styles []*dancestyle.Style
	for rows.Next() {
		s, err := scanStyle(rows)
		if err != nil {
			return nil, err
		}
		styles = append(styles, s)
	}
	return styles, rows.Err()
}

func scanStyle(row scanner) (*dancestyle.Style, error) {
	var s dancestyle.Style
	err := row.Scan(&s.ID, &s.Name)
	if IsNoRows(err) {
		return nil, shared.ErrStyleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan dance style: %w", err)
	}
	return &s, nil
}
