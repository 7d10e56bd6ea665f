package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/baiana/danceclub/internal/domain/evaluation"
	"github.com/baiana/danceclub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// EVALUATION REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// EvaluationRepository implements evaluation.Repository, including evaluation items.
type EvaluationRepository struct {
	conn *Connection
}

var _ evaluation.Repository = (*EvaluationRepository)(nil)

// NewEvaluationRepository creates a new EvaluationRepository.
func NewEvaluationRepository(conn *Connection) *EvaluationRepository {
	return &EvaluationRepository{conn: conn}
}

const evaluationSelect = `
	SELECT e.id, e.evaluation_date,
		   e.student_id, s.name,
		   e.examiner_id, x.name,
		   e.level_id, l.name,
		   e.event_id, ev.name,
		   e.notes
	FROM evaluations e
	JOIN students s ON s.id = e.student_id
	JOIN examiners x ON x.id = e.examiner_id
	JOIN levels l ON l.id = e.level_id
	LEFT JOIN events ev ON ev.id = e.event_id
`

const evaluationOrder = ` ORDER BY e.evaluation_date, e.id`

// ─────────────────────────────────────────────────────────────────────────────
// CRUD Operations
// ─────────────────────────────────────────────────────────────────────────────

// Save inserts a new evaluation or updates an existing one.
func (r *EvaluationRepository) Save(ctx context.Context, e *evaluation.Evaluation) error {
	if err := e.Validate(); err != nil {
		return err
	}

	if e.ID == 0 {
		err := r.conn.QueryRow(ctx, `
			INSERT INTO evaluations (evaluation_date, student_id, examiner_id, level_id, event_id, notes)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id`,
			dateArg(e.Date), e.StudentID, e.ExaminerID, e.LevelID, nullID(e.EventID), e.Notes,
		).Scan(&e.ID)
		if err != nil {
			return r.mapWriteError("create", err)
		}
		return nil
	}

	res, err := r.conn.Exec(ctx, `
		UPDATE evaluations SET
			evaluation_date = ?,
			student_id = ?,
			examiner_id = ?,
			level_id = ?,
			event_id = ?,
			notes = ?
		WHERE id = ?`,
		dateArg(e.Date), e.StudentID, e.ExaminerID, e.LevelID, nullID(e.EventID), e.Notes, e.ID,
	)
	if err != nil {
		return r.mapWriteError("update", err)
	}
	return rowsAffected(res, shared.ErrEvaluationNotFound)
}

func (r *EvaluationRepository) mapWriteError(op string, err error) error {
	if IsForeignKeyViolation(err) {
		return shared.ErrEvaluationRefMissing
	}
	return fmt.Errorf("failed to %s evaluation: %w", op, err)
}

// GetByID returns an evaluation by ID.
func (r *EvaluationRepository) GetByID(ctx context.Context, id shared.ID) (*evaluation.Evaluation, error) {
	row := r.conn.QueryRow(ctx, evaluationSelect+` WHERE e.id = ?`, id)
	return scanEvaluation(row)
}

// Delete removes an evaluation and its items.
func (r *EvaluationRepository) Delete(ctx context.Context, id shared.ID) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM evaluations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete evaluation: %w", err)
	}
	return rowsAffected(res, shared.ErrEvaluationNotFound)
}

// Exists reports whether an evaluation with the ID exists.
func (r *EvaluationRepository) Exists(ctx context.Context, id shared.ID) (bool, error) {
	return exists(ctx, r.conn, "evaluations", id)
}

// ─────────────────────────────────────────────────────────────────────────────
// Search & Filter
// ─────────────────────────────────────────────────────────────────────────────

// List returns all evaluations ordered by date.
func (r *EvaluationRepository) List(ctx context.Context) ([]*evaluation.Evaluation, error) {
	return r.query(ctx, evaluationSelect+evaluationOrder)
}

// ListByDate returns the evaluations of one day.
func (r *EvaluationRepository) ListByDate(ctx context.Context, day time.Time) ([]*evaluation.Evaluation, error) {
	return r.query(ctx, evaluationSelect+` WHERE e.evaluation_date = ?`+evaluationOrder, dateArg(day))
}

// ListByStudent returns the evaluations of a student ordered by date.
func (r *EvaluationRepository) ListByStudent(ctx context.Context, studentID shared.ID) ([]*evaluation.Evaluation, error) {
	return r.query(ctx, evaluationSelect+` WHERE e.student_id = ?`+evaluationOrder, studentID)
}

func (r *EvaluationRepository) query(ctx context.Context, query string, args ...any) ([]*evaluation.Evaluation, error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer rows.Close()

	var result []*evaluation.Evaluation
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func scanEvaluation(row scanner) (*evaluation.Evaluation, error) {
	var e evaluation.Evaluation
	var date time.Time
	var eventID sql.NullInt64
	var eventName sql.NullString

	err := row.Scan(
		&e.ID,
		&date,
		&e.StudentID,
		&e.StudentName,
		&e.ExaminerID,
		&e.ExaminerName,
		&e.LevelID,
		&e.LevelName,
		&eventID,
		&eventName,
		&e.Notes,
	)
	if IsNoRows(err) {
		return nil, shared.ErrEvaluationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan evaluation: %w", err)
	}

	e.Date = dateFrom(date)
	e.EventID = eventID.Int64
	e.EventName = eventName.String
	return &e, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Items
// ─────────────────────────────────────────────────────────────────────────────

// AddItem inserts an evaluation item.
func (r *EvaluationRepository) AddItem(ctx context.Context, item *evaluation.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	err := r.conn.QueryRow(ctx, `
		INSERT INTO evaluation_items (evaluation_id, parameter_id, score)
		VALUES (?, ?, ?)
		RETURNING id`,
		item.EvaluationID, item.ParameterID, item.Score,
	).Scan(&item.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.ErrItemRefMissing
		}
		return fmt.Errorf("failed to create evaluation item: %w", err)
	}
	return nil
}

// ListItems returns the items of an evaluation in insertion order.
func (r *EvaluationRepository) ListItems(ctx context.Context, evaluationID shared.ID) ([]*evaluation.Item, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT i.id, i.evaluation_id, i.parameter_id, p.name, i.score
		FROM evaluation_items i
		JOIN parameters p ON p.id = i.parameter_id
		WHERE i.evaluation_id = ?
		ORDER BY i.id`,
		evaluationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation items: %w", err)
	}
	defer rows.Close()

	var items []*evaluation.Item
	for rows.Next() {
		var it evaluation.Item
		if err := rows.Scan(&it.ID, &it.EvaluationID, &it.ParameterID, &it.ParameterName, &it.Score); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// DeleteItem removes one evaluation item.
func (r *EvaluationRepository) DeleteItem(ctx context.Context, itemID shared.ID) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM evaluation_items WHERE id = ?`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete evaluation item: %w", err)
	}
	return rowsAffected(res, shared.ErrItemNotFound)
}
