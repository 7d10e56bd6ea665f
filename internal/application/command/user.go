package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/internal/domain/student"
	"github.com/baiana/danceclub/internal/domain/user"
	"github.com/baiana/danceclub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// USER COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// maxPasswordBytes is the longest password bcrypt accepts.
const maxPasswordBytes = 72

// ErrPasswordTooLong is returned for passwords bcrypt would reject.
var ErrPasswordTooLong = shared.NewDomainError("user", "Validate", shared.ErrInvalidInput,
	"a senha deve ter no máximo 72 bytes")

func validatePassword(password string) error {
	if password == "" {
		return shared.EmptyField("user", "senha")
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// CreateUserCommand gives an existing student a login.
type CreateUserCommand struct {
	StudentID shared.ID
	Login     string
	Password  string
	Role      user.Role
}

// Validate validates the command.
func (c CreateUserCommand) Validate() error {
	if c.StudentID <= 0 {
		return shared.EmptyField("user", "aluno")
	}
	if shared.IsBlank(c.Login) {
		return shared.EmptyField("user", "login")
	}
	if err := validatePassword(c.Password); err != nil {
		return err
	}
	if !c.Role.IsValid() {
		return shared.ErrInvalidRole
	}
	return nil
}

// UpdateUserCommand changes a user. Blank fields keep the current value; a
// non-empty Password is hashed again.
type UpdateUserCommand struct {
	ID       shared.ID
	Login    string
	Password string
	Role     user.Role
}

// Validate validates the command.
func (c UpdateUserCommand) Validate() error {
	if c.ID <= 0 {
		return invalidID("user", "Update")
	}
	if c.Password != "" {
		if err := validatePassword(c.Password); err != nil {
			return err
		}
	}
	if c.Role != "" && !c.Role.IsValid() {
		return shared.ErrInvalidRole
	}
	return nil
}

// UserHandler handles user writes and password checks.
type UserHandler struct {
	users      user.Repository
	students   student.Repository
	bcryptCost int
	log        *logger.Logger
}

// NewUserHandler creates a new UserHandler. A zero cost uses bcrypt.DefaultCost.
func NewUserHandler(users user.Repository, students student.Repository, bcryptCost int, log *logger.Logger) *UserHandler {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserHandler{
		users:      users,
		students:   students,
		bcryptCost: bcryptCost,
		log:        componentLogger(log, "user_handler"),
	}
}

// Create stores a user for a student that has none yet.
func (h *UserHandler) Create(ctx context.Context, cmd CreateUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := ensureExists(ctx, h.students.Exists, cmd.StudentID, shared.ErrUserStudentMissing); err != nil {
		return nil, err
	}

	has, err := h.users.Exists(ctx, cmd.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if has {
		return nil, shared.ErrStudentHasUser
	}

	hash, err := h.hash(cmd.Password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		StudentID:    cmd.StudentID,
		Login:        strings.TrimSpace(cmd.Login),
		PasswordHash: hash,
		Role:         cmd.Role,
	}
	if err := h.Save(ctx, u); err != nil {
		return nil, err
	}
	return h.users.GetByID(ctx, u.ID)
}

// Update applies the command to an existing user.
func (h *UserHandler) Update(ctx context.Context, cmd UpdateUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	u, err := h.users.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	u.Login = keep(u.Login, cmd.Login)
	if cmd.Role != "" {
		u.Role = cmd.Role
	}
	if cmd.Password != "" {
		if u.PasswordHash, err = h.hash(cmd.Password); err != nil {
			return nil, err
		}
	}

	if err := h.Save(ctx, u); err != nil {
		return nil, err
	}
	return h.users.GetByID(ctx, u.ID)
}

// Save checks the login is free for this user and persists it.
func (h *UserHandler) Save(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	other, err := h.users.GetByLogin(ctx, u.Login)
	if err := checkConflict(err, func() bool { return other.StudentID != u.StudentID }, shared.ErrLoginTaken); err != nil {
		return err
	}

	created := u.ID == 0
	if err := h.users.Save(ctx, u); err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	logFor(ctx, h.log).Info("user saved",
		logger.EntityID(u.ID),
		logger.Bool("created", created),
		logger.Login(u.Login),
		logger.String("role", string(u.Role)),
	)
	return nil
}

// Delete removes a user; the student is kept.
func (h *UserHandler) Delete(ctx context.Context, id shared.ID) error {
	if err := h.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	logFor(ctx, h.log).Info("user deleted", logger.EntityID(id))
	return nil
}

// Authenticate returns the user when login and password match.
// Unknown logins and wrong passwords both yield ErrInvalidCredentials.
func (h *UserHandler) Authenticate(ctx context.Context, login, password string) (*user.User, error) {
	u, err := h.users.GetByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if shared.IsNotFound(err) {
			logFor(ctx, h.log).Warn("authentication failed", logger.Login(login))
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			logFor(ctx, h.log).Warn("authentication failed", logger.Login(login))
			return nil, shared.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password: %w", err)
	}

	logFor(ctx, h.log).Info("user authenticated", logger.EntityID(u.ID), logger.Login(u.Login))
	return u, nil
}

func (h *UserHandler) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}
