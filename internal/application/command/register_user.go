package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/internal/domain/student"
	"github.com/baiana/danceclub/internal/domain/user"
	"github.com/baiana/danceclub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// USER REGISTRATION
// Flow: Validate → Check Login → Create Student → Create User
// A failed user step deletes the student created for it.
// ══════════════════════════════════════════════════════════════════════════════

// RegisterUserCommand enrolls a new student and gives it a login in one step.
type RegisterUserCommand struct {
	Student  CreateStudentCommand
	Login    string
	Password string
	Role     user.Role
}

// Validate validates both halves of the registration.
func (c RegisterUserCommand) Validate() error {
	if err := c.Student.Validate(); err != nil {
		return err
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

// RegistrationStep names a stage of the registration flow.
type RegistrationStep string

const (
	StepValidateInput RegistrationStep = "validate_input"
	StepCheckLogin    RegistrationStep = "check_login"
	StepCreateStudent RegistrationStep = "create_student"
	StepCreateUser    RegistrationStep = "create_user"
	StepComplete      RegistrationStep = "complete"
)

// RegistrationResult holds the records created by a registration.
type RegistrationResult struct {
	Student *student.Student
	User    *user.User
}

// RegistrationError reports the step a registration stopped at.
type RegistrationError struct {
	Step       RegistrationStep
	RolledBack bool
	Err        error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registration failed at %s: %v", e.Step, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// Register creates the student and then the user. The two writes are not
// atomic: when the user cannot be saved the student is deleted again.
func (h *UserHandler) Register(ctx context.Context, students *StudentHandler, cmd RegisterUserCommand) (*RegistrationResult, error) {
	log := logFor(ctx, h.log).With(logger.Operation("register_user"))

	// Step 1: Validate input
	if err := cmd.Validate(); err != nil {
		return nil, &RegistrationError{Step: StepValidateInput, Err: err}
	}

	// Step 2: Fail early on a taken login, before any row is written
	other, err := h.users.GetByLogin(ctx, strings.TrimSpace(cmd.Login))
	if err := checkConflict(err, func() bool { return other != nil }, shared.ErrLoginTaken); err != nil {
		return nil, &RegistrationError{Step: StepCheckLogin, Err: err}
	}

	// Step 3: Create student
	s, err := students.Create(ctx, cmd.Student)
	if err != nil {
		return nil, &RegistrationError{Step: StepCreateStudent, Err: err}
	}

	// Step 4: Create user
	u, err := h.Create(ctx, CreateUserCommand{
		StudentID: s.ID,
		Login:     cmd.Login,
		Password:  cmd.Password,
		Role:      cmd.Role,
	})
	if err != nil {
		rolledBack := h.rollbackStudentCreation(ctx, students, s, log)
		return nil, &RegistrationError{Step: StepCreateUser, RolledBack: rolledBack, Err: err}
	}

	log.Info("user registered",
		logger.EntityID(s.ID),
		logger.Login(u.Login),
		logger.String("step", string(StepComplete)),
	)
	return &RegistrationResult{Student: s, User: u}, nil
}

// rollbackStudentCreation compensates step 3.
func (h *UserHandler) rollbackStudentCreation(ctx context.Context, students *StudentHandler, s *student.Student, log *logger.Logger) bool {
	if err := students.Delete(ctx, s.ID); err != nil {
		log.Error("failed to roll back student creation",
			logger.EntityID(s.ID),
			logger.Err(err),
		)
		return false
	}
	log.Warn("student creation rolled back", logger.EntityID(s.ID))
	return true
}
