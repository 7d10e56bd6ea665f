package sqlstore

import (
	"context"
	"fmt"

	"github.com/baiana/danceclub/internal/domain/examiner"
	"github.com/baiana/danceclub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// EXAMINER REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ExaminerRepository implements examiner.Repository.
type ExaminerRepository struct {
	conn *Connection
}

var _ examiner.Repository = (*ExaminerRepository)(nil)

// NewExaminerRepository creates a new ExaminerRepository.
func NewExaminerRepository(conn *Connection) *ExaminerRepository {
	return &ExaminerRepository{conn: conn}
}

const examinerColumns = `id, name, contact`

// Save inserts a new examiner or updates an existing one.
func (r *ExaminerRepository) Save(ctx context.Context, e *examiner.Examiner) error {
	if err := e.Validate(); err != nil {
		return err
	}

	if e.ID == 0 {
		err := r.conn.QueryRow(ctx,
			`INSERT INTO examiners (name, contact) VALUES (?, ?) RETURNING id`,
			e.Name, e.Contact,
		).Scan(&e.ID)
		if err != nil {
			if IsUniqueViolation(err) {
				return shared.ErrExaminerContactTaken
			}
			return fmt.Errorf("failed to create examiner: %w", err)
		}
		return nil
	}

	res, err := r.conn.Exec(ctx,
		`UPDATE examiners SET name = ?, contact = ? WHERE id = ?`,
		e.Name, e.Contact, e.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrExaminerContactTaken
		}
		return fmt.Errorf("failed to update examiner: %w", err)
	}
	return rowsAffected(res, shared.ErrExaminerNotFound)
}

// GetByID returns an examiner by ID.
func (r *ExaminerRepository) GetByID(ctx context.Context, id shared.ID) (*examiner.Examiner, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+examinerColumns+` FROM examiners WHERE id = ?`, id)
	return scanExaminer(row)
}

// GetByContact returns an examiner by case-insensitive contact.
func (r *ExaminerRepository) GetByContact(ctx context.Context, contact string) (*examiner.Examiner, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT `+examinerColumns+` FROM examiners WHERE LOWER(contact) = ?`,
		shared.NormalizeContact(contact),
	)
	return scanExaminer(row)
}

// List returns all examiners ordered by name.
func (r *ExaminerRepository) List(ctx context.Context) ([]*examiner.Examiner, error) {
	return r.query(ctx, `SELECT `+examinerColumns+` FROM examiners ORDER BY LOWER(name), id`)
}

// SearchByName returns examiners whose name contains the query.
func (r *ExaminerRepository) SearchByName(ctx context.Context, query string) ([]*examiner.Examiner, error) {
	return r.query(ctx,
		`SELECT `+examinerColumns+` FROM examiners
		WHERE LOWER(name) LIKE ? ESCAPE '\'
		ORDER BY LOWER(name), id`,
		likePattern(query),
	)
}

// Delete removes an examiner without evaluations.
func (r *ExaminerRepository) Delete(ctx context.Context, id shared.ID) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM examiners WHERE id = ?`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.ErrExaminerInUse
		}
		return fmt.Errorf("failed to delete examiner: %w", err)
	}
	return rowsAffected(res, shared.ErrExaminerNotFound)
}

// Exists reports whether an examiner with the ID exists.
func (r *ExaminerRepository) Exists(ctx context.Context, id shared.ID) (bool, error) {
	return exists(ctx, r.conn, "examiners", id)
}

func (r *ExaminerRepository) query(ctx context.Context, query string, args ...any) ([]*examiner.Examiner, error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query examiners: %w", err)
	}
	defer rows.Close()

	var result []*examiner.Examiner
	for rows.Next() {
		e, err := scanExaminer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func scanExaminer(row scanner) (*examiner.Examiner, error) {
	var e examiner.Examiner
	err := row.Scan(&e.ID, &e.Name, &e.Contact)
	if IsNoRows(err) {
		return nil, shared.ErrExaminerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan examiner: %w", err)
	}
	return &e, nil
}
