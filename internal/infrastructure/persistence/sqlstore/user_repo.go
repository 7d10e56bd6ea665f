package sqlstore

import (
	"context"
	"fmt"

	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// USER REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// UserRepository implements user.Repository.
type UserRepository struct {
	conn *Connection
}

var _ user.Repository = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository.
func NewUserRepository(conn *Connection) *UserRepository {
	return &UserRepository{conn: conn}
}

const userSelect = `
	SELECT u.id, u.login, u.password_hash, u.role, s.name
	FROM users u
	JOIN students s ON s.id = u.id
`

// Save inserts a user under its student's ID or updates an existing one.
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	if u.ID == 0 {
		_, err := r.conn.Exec(ctx,
			`INSERT INTO users (id, login, password_hash, role) VALUES (?, ?, ?, ?)`,
			u.StudentID, u.Login, u.PasswordHash, string(u.Role),
		)
		if err != nil {
			return r.mapWriteError(ctx, "create", u, err)
		}
		u.ID = u.StudentID
		return nil
	}

	res, err := r.conn.Exec(ctx,
		`UPDATE users SET login = ?, password_hash = ?, role = ? WHERE id = ?`,
		u.Login, u.PasswordHash, string(u.Role), u.ID,
	)
	if err != nil {
		return r.mapWriteError(ctx, "update", u, err)
	}
	return rowsAffected(res, shared.ErrUserNotFound)
}

// mapWriteError tells a duplicate login apart from a second user for the same student.
func (r *UserRepository) mapWriteError(ctx context.Context, op string, u *user.User, err error) error {
	switch {
	case IsForeignKeyViolation(err):
		return shared.ErrUserStudentMissing
	case IsUniqueViolation(err):
		if op == "create" {
			if taken, _ := r.Exists(ctx, u.StudentID); taken {
				return shared.ErrStudentHasUser
			}
		}
		return shared.ErrLoginTaken
	default:
		return fmt.Errorf("failed to %s user: %w", op, err)
	}
}

// GetByID returns a user by ID, which is also the student ID.
func (r *UserRepository) GetByID(ctx context.Context, id shared.ID) (*user.User, error) {
	row := r.conn.QueryRow(ctx, userSelect+` WHERE u.id = ?`, id)
	return scanUser(row)
}

// GetByLogin returns a user by case-insensitive login.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*user.User, error) {
	row := r.conn.QueryRow(ctx, userSelect+` WHERE LOWER(u.login) = LOWER(?)`, login)
	return scanUser(row)
}

// List returns all users ordered by login.
func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	rows, err := r.conn.Query(ctx, userSelect+` ORDER BY LOWER(u.login), u.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var result []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

// Delete removes a user. The student is kept.
func (r *UserRepository) Delete(ctx context.Context, id shared.ID) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return rowsAffected(res, shared.ErrUserNotFound)
}

// Exists reports whether a user with the ID exists.
func (r *UserRepository) Exists(ctx context.Context, id shared.ID) (bool, error) {
	return exists(ctx, r.conn, "users", id)
}

func scanUser(row scanner) (*user.User, error) {
	var u user.User
	var role string

	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &role, &u.StudentName)
	if IsNoRows(err) {
		return nil, shared.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	u.StudentID = u.ID
	u.Role = user.Role(role)
	return &u, nil
}
