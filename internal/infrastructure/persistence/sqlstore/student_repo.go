package sqlstore

import (
	"context"
	"fmt"

	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// StudentRepository implements student.Repository.
type StudentRepository struct {
	conn *Connection
}

var _ student.Repository = (*StudentRepository)(nil)

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(conn *Connection) *StudentRepository {
	return &StudentRepository{conn: conn}
}

const studentSelect = `
	SELECT s.id, s.name, s.contact, s.level_id, l.name, s.active, s.conduction_type
	FROM students s
	JOIN levels l ON l.id = s.level_id
`

const studentOrder = ` ORDER BY LOWER(s.name), s.id`

// ─────────────────────────────────────────────────────────────────────────────
// CRUD Operations
// ─────────────────────────────────────────────────────────────────────────────

// Save inserts a new student or updates an existing one.
func (r *StudentRepository) Save(ctx context.Context, s *student.Student) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if s.ID == 0 {
		err := r.conn.QueryRow(ctx, `
			INSERT INTO students (name, contact, level_id, active, conduction_type)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id`,
			s.Name, s.Contact, s.LevelID, s.Active, string(s.ConductionType),
		).Scan(&s.ID)
		if err != nil {
			return r.mapWriteError("create", err)
		}
		return nil
	}

	res, err := r.conn.Exec(ctx, `
		UPDATE students SET
			name = ?,
			contact = ?,
			level_id = ?,
			active = ?,
			conduction_type = ?
		WHERE id = ?`,
		s.Name, s.Contact, s.LevelID, s.Active, string(s.ConductionType), s.ID,
	)
	if err != nil {
		return r.mapWriteError("update", err)
	}
	return rowsAffected(res, shared.ErrStudentNotFound)
}

func (r *StudentRepository) mapWriteError(op string, err error) error {
	switch {
	case IsUniqueViolation(err):
		return shared.ErrStudentContactTaken
	case IsForeignKeyViolation(err):
		return shared.ErrStudentLevelMissing
	default:
		return fmt.Errorf("failed to %s student: %w", op, err)
	}
}

// GetByID returns a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id shared.ID) (*student.Student, error) {
	row := r.conn.QueryRow(ctx, studentSelect+` WHERE s.id = ?`, id)
	return scanStudent(row)
}

// Delete removes a student; the linked user goes with it.
func (r *StudentRepository) Delete(ctx context.Context, id shared.ID) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM students WHERE id = ?`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.ErrStudentInUse
		}
		return fmt.Errorf("failed to delete student: %w", err)
	}
	return rowsAffected(res, shared.ErrStudentNotFound)
}

// Exists reports whether a student with the ID exists.
func (r *StudentRepository) Exists(ctx context.Context, id shared.ID) (bool, error) {
	return exists(ctx, r.conn, "students", id)
}

// ─────────────────────────────────────────────────────────────────────────────
// Search & Filter
// ─────────────────────────────────────────────────────────────────────────────

// List returns all students ordered by name.
func (r *StudentRepository) List(ctx context.Context) ([]*student.Student, error) {
	return r.query(ctx, studentSelect+studentOrder)
}

// SearchByName returns students whose name contains the query.
func (r *StudentRepository) SearchByName(ctx context.Context, query string) ([]*student.Student, error) {
	return r.query(ctx,
		studentSelect+` WHERE LOWER(s.name) LIKE ? ESCAPE '\'`+studentOrder,
		likePattern(query),
	)
}

// GetByContact returns a student by case-insensitive contact.
func (r *StudentRepository) GetByContact(ctx context.Context, contact string) (*student.Student, error) {
	row := r.conn.QueryRow(ctx,
		studentSelect+` WHERE LOWER(s.contact) = ?`,
		shared.NormalizeContact(contact),
	)
	return scanStudent(row)
}

// ListByLevel returns the students of a level ordered by name.
func (r *StudentRepository) ListByLevel(ctx context.Context, levelID shared.ID) ([]*student.Student, error) {
	return r.query(ctx, studentSelect+` WHERE s.level_id = ?`+studentOrder, levelID)
}

// ListWithoutUser returns students that have no user yet.
func (r *StudentRepository) ListWithoutUser(ctx context.Context) ([]*student.Student, error) {
	return r.query(ctx,
		studentSelect+` WHERE NOT EXISTS (SELECT 1 FROM users u WHERE u.id = s.id)`+studentOrder,
	)
}

func (r *StudentRepository) query(ctx context.Context, query string, args ...any) ([]*student.Student, error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	var result []*student.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func scanStudent(row scanner) (*student.Student, error) {
	var s student.Student
	var conduction string

	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Contact,
		&s.LevelID,
		&s.LevelName,
		&s.Active,
		&conduction,
	)
	if IsNoRows(err) {
		return nil, shared.ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan student: %w", err)
	}

	s.ConductionType = shared.ConductionType(conduction)
	return &s, nil
}
