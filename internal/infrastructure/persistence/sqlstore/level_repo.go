package sqlstore

import (
	"context"
	"fmt"

	"github.com/baiana/danceclub/internal/domain/level"
	"github.com/baiana/danceclub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEVEL REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// LevelRepository implements level.Repository.
type LevelRepository struct {
	conn *Connection
}

var _ level.Repository = (*LevelRepository)(nil)

// NewLevelRepository creates a new LevelRepository.
func NewLevelRepository(conn *Connection) *LevelRepository {
	return &LevelRepository{conn: conn}
}

// Save inserts a new level or updates an existing one.
func (r *LevelRepository) Save(ctx context.Context, l *level.Level) error {
	if err := l.Validate(); err != nil {
		return err
	}

	if l.IsNew() {
		err := r.conn.QueryRow(ctx,
			`INSERT INTO levels (name) VALUES (?) RETURNING id`,
			l.Name,
		).Scan(&l.ID)
		if err != nil {
			if IsUniqueViolation(err) {
				return shared.ErrLevelAlreadyExists
			}
			return fmt.Errorf("failed to create level: %w", err)
		}
		return nil
	}

	res, err := r.conn.Exec(ctx, `UPDATE levels SET name = ? WHERE id = ?`, l.Name, l.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrLevelAlreadyExists
		}
		return fmt.Errorf("failed to update level: %w", err)
	}
	return rowsAffected(res, shared.ErrLevelNotFound)
}

// GetByID returns a level by ID.
func (r *LevelRepository) GetByID(ctx context.Context, id shared.ID) (*level.Level, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name FROM levels WHERE id = ?`, id)
	return r.scanLevel(row)
}

// GetByName returns a level by exact, case-insensitive name.
func (r *LevelRepository) GetByName(ctx context.Context, name string) (*level.Level, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name FROM levels WHERE LOWER(name) = LOWER(?)`, name)
	return r.scanLevel(row)
}

// List returns all levels ordered by name.
func (r *LevelRepository) List(ctx context.Context) ([]*level.Level, error) {
	rows, err := r.conn.Query(ctx, `SELECT id, name FROM levels ORDER BY LOWER(name), id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	defer rows.Close()

	var levels []*level.Level
	for rows.Next() {
		l, err := r.scanLevel(rows)
		if err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}

// Delete removes a level. Referenced levels are rejected by the foreign keys.
func (r *LevelRepository) Delete(ctx context.Context, id shared.ID) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM levels WHERE id = ?`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.ErrLevelInUse
		}
		return fmt.Errorf("failed to delete level: %w", err)
	}
	return rowsAffected(res, shared.ErrLevelNotFound)
}

// Exists reports whether a level with the ID exists.
func (r *LevelRepository) Exists(ctx context.Context, id shared.ID) (bool, error) {
	return exists(ctx, r.conn, "levels", id)
}

func (r *LevelRepository) scanLevel(row scanner) (*level.Level, error) {
	var l level.Level
	err := row.Scan(&l.ID, &l.Name)
	if IsNoRows(err) {
		return nil, shared.ErrLevelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan level: %w", err)
	}
	return &l, nil
}

// exists runs the shared id lookup used by every repository.
func exists(ctx context.Context, conn *Connection, table string, id shared.ID) (bool, error) {
	var found bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = ?)`, table)
	if err := conn.QueryRow(ctx, query, id).Scan(&found); err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", table, err)
	}
	return found, nil
}
