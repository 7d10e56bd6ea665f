package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/baiana/danceclub/internal/domain/dancestyle"
	"github.com/baiana/danceclub/internal/domain/parameter"
	"github.com/baiana/danceclub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PARAMETER REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ParameterRepository implements parameter.Repository, including the
// parameter_styles link table.
type ParameterRepository struct {
	conn *Connection
}

var _ parameter.Repository = (*ParameterRepository)(nil)

// NewParameterRepository creates a new ParameterRepository.
func NewParameterRepository(conn *Connection) *ParameterRepository {
	return &ParameterRepository{conn: conn}
}

const parameterSelect = `
	SELECT p.id, p.name, p.conduction_type, p.style_id, ds.name, p.level_id, l.name
	FROM parameters p
	JOIN levels l ON l.id = p.level_id
	LEFT JOIN dance_styles ds ON ds.id = p.style_id
`

const parameterOrder = ` ORDER BY LOWER(p.name), p.id`

// ─────────────────────────────────────────────────────────────────────────────
// CRUD Operations
// ─────────────────────────────────────────────────────────────────────────────

// Save inserts a new parameter or updates an existing one.
func (r *ParameterRepository) Save(ctx context.Context, p *parameter.Parameter) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if p.ID == 0 {
		err := r.conn.QueryRow(ctx, `
			INSERT INTO parameters (name, conduction_type, style_id, level_id)
			VALUES (?, ?, ?, ?)
			RETURNING id`,
			p.Name, string(p.ConductionType), nullID(p.StyleID), p.LevelID,
		).Scan(&p.ID)
		if err != nil {
			return r.mapWriteError("create", err)
		}
		return nil
	}

	res, err := r.conn.Exec(ctx, `
		UPDATE parameters SET
			name = ?,
			conduction_type = ?,
			style_id = ?,
			level_id = ?
		WHERE id = ?`,
		p.Name, string(p.ConductionType), nullID(p.StyleID), p.LevelID, p.ID,
	)
	if err != nil {
		return r.mapWriteError("update", err)
	}
	return rowsAffected(res, shared.ErrParameterNotFound)
}

func (r *ParameterRepository) mapWriteError(op string, err error) error {
	switch {
	case IsUniqueViolation(err):
		return shared.ErrParameterAlreadyExists
	case IsForeignKeyViolation(err):
		return shared.ErrParameterRefMissing
	default:
		return fmt.Errorf("failed to %s parameter: %w", op, err)
	}
}

// GetByID returns a parameter by ID.
func (r *ParameterRepository) GetByID(ctx context.Context, id shared.ID) (*parameter.Parameter, error) {
	row := r.conn.QueryRow(ctx, parameterSelect+` WHERE p.id = ?`, id)
	return scanParameter(row)
}

// GetByName returns a parameter by exact, case-insensitive name.
func (r *ParameterRepository) GetByName(ctx context.Context, name string) (*parameter.Parameter, error) {
	row := r.conn.QueryRow(ctx, parameterSelect+` WHERE LOWER(p.name) = LOWER(?)`, name)
	return scanParameter(row)
}

// List returns all parameters ordered by name.
func (r *ParameterRepository) List(ctx context.Context) ([]*parameter.Parameter, error) {
	return r.query(ctx, parameterSelect+parameterOrder)
}

// SearchByName returns parameters whose name contains the query.
func (r *ParameterRepository) SearchByName(ctx context.Context, query string) ([]*parameter.Parameter, error) {
	return r.query(ctx,
		parameterSelect+` WHERE LOWER(p.name) LIKE ? ESCAPE '\'`+parameterOrder,
		likePattern(query),
	)
}

// Delete removes a parameter and its style links.
func (r *ParameterRepository) Delete(ctx context.Context, id shared.ID) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM parameters WHERE id = ?`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.ErrParameterInUse
		}
		return fmt.Errorf("failed to delete parameter: %w", err)
	}
	return rowsAffected(res, shared.ErrParameterNotFound)
}

// Exists reports whether a parameter with the ID exists.
func (r *ParameterRepository) Exists(ctx context.Context, id shared.ID) (bool, error) {
	return exists(ctx, r.conn, "parameters", id)
}

// ─────────────────────────────────────────────────────────────────────────────
// Style links
// ─────────────────────────────────────────────────────────────────────────────

// LinkStyle links a style to a parameter. It returns false when the link already exists.
func (r *ParameterRepository) LinkStyle(ctx context.Context, parameterID, styleID shared.ID) (bool, error) {
	res, err := r.conn.Exec(ctx, `
		INSERT INTO parameter_styles (parameter_id, style_id)
		VALUES (?, ?)
		ON CONFLICT (parameter_id, style_id) DO NOTHING`,
		parameterID, styleID,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return false, shared.ErrParameterRefMissing
		}
		return false, fmt.Errorf("failed to link style: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// UnlinkStyle removes the link between a parameter and a style.
func (r *ParameterRepository) UnlinkStyle(ctx context.Context, parameterID, styleID shared.ID) error {
	res, err := r.conn.Exec(ctx,
		`DELETE FROM parameter_styles WHERE parameter_id = ? AND style_id = ?`,
		parameterID, styleID,
	)
	if err != nil {
		return fmt.Errorf("failed to unlink style: %w", err)
	}
	return rowsAffected(res, shared.ErrLinkNotFound)
}

// StylesOf returns the styles linked to a parameter ordered by name.
func (r *ParameterRepository) StylesOf(ctx context.Context, parameterID shared.ID) ([]*dancestyle.Style, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT ds.id, ds.name
		FROM dance_styles ds
		JOIN parameter_styles ps ON ps.style_id = ds.id
		WHERE ps.parameter_id = ?
		ORDER BY LOWER(ds.name), ds.id`,
		parameterID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query parameter styles: %w", err)
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

// ParametersOf returns the parameters linked to a style ordered by name.
func (r *ParameterRepository) ParametersOf(ctx context.Context, styleID shared.ID) ([]*parameter.Parameter, error) {
	return r.query(ctx,
		parameterSelect+`
		JOIN parameter_styles ps ON ps.parameter_id = p.id
		WHERE ps.style_id = ?`+parameterOrder,
		styleID,
	)
}

func (r *ParameterRepository) query(ctx context.Context, query string, args ...any) ([]*parameter.Parameter, error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query parameters: %w", err)
	}
	defer rows.Close()

	var result []*parameter.Parameter
	for rows.Next() {
		p, err := scanParameter(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func scanParameter(row scanner) (*parameter.Parameter, error) {
	var p parameter.Parameter
	var conduction string
	var styleID sql.NullInt64
	var styleName sql.NullString

	err := row.Scan(
		&p.ID,
		&p.Name,
		&conduction,
		&styleID,
		&styleName,
		&p.LevelID,
		&p.LevelName,
	)
	if IsNoRows(err) {
		return nil, shared.ErrParameterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan parameter: %w", err)
	}

	p.ConductionType = shared.ConductionType(conduction)
	p.StyleID = styleID.Int64
	p.StyleName = styleName.String
	return &p, nil
}
