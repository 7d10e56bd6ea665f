package command

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/internal/domain/user"
)

func TestUserHandler_Create(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	lvl := seedLevel(t, h, "Basico")
	ana, err := h.students.Create(ctx, CreateStudentCommand{
		Name: "Ana", Contact: "ana@club", LevelID: lvl.ID, ConductionType: shared.ConductionFollow,
	})
	require.NoError(t, err)
	bia, err := h.students.Create(ctx, CreateStudentCommand{
		Name: "Bia", Contact: "bia@club", LevelID: lvl.ID, ConductionType: shared.ConductionLead,
	})
	require.NoError(t, err)

	u, err := h.users.Create(ctx, CreateUserCommand{
		StudentID: ana.ID, Login: "ana", Password: "segredo", Role: user.RoleStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, ana.ID, u.ID)
	assert.Equal(t, "Ana", u.StudentName)
	assert.NotEqual(t, "segredo", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("segredo")))

	_, err = h.users.Create(ctx, CreateUserCommand{
		StudentID: ana.ID, Login: "ana2", Password: "x", Role: user.RoleStudent,
	})
	assert.ErrorIs(t, err, shared.ErrStudentHasUser)

	_, err = h.users.Create(ctx, CreateUserCommand{
		StudentID: bia.ID, Login: "ANA", Password: "x", Role: user.RoleStudent,
	})
	assert.ErrorIs(t, err, shared.ErrLoginTaken)

	_, err = h.users.Create(ctx, CreateUserCommand{
		StudentID: 99, Login: "ghost", Password: "x", Role: user.RoleStudent,
	})
	assert.ErrorIs(t, err, shared.ErrUserStudentMissing)
}

func TestUserHandler_Validation(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	tests := []struct {
		name string
		cmd  CreateUserCommand
		want error
	}{
		{name: "no student", cmd: CreateUserCommand{Login: "a", Password: "p", Role: user.RoleStudent}, want: shared.ErrEmptyValue},
		{name: "no login", cmd: CreateUserCommand{StudentID: 1, Password: "p", Role: user.RoleStudent}, want: shared.ErrEmptyValue},
		{name: "no password", cmd: CreateUserCommand{StudentID: 1, Login: "a", Role: user.RoleStudent}, want: shared.ErrEmptyValue},
		{name: "long password", cmd: CreateUserCommand{StudentID: 1, Login: "a", Password: strings.Repeat("x", 73), Role: user.RoleStudent}, want: ErrPasswordTooLong},
		{name: "bad role", cmd: CreateUserCommand{StudentID: 1, Login: "a", Password: "p", Role: "admin"}, want: shared.ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.users.Create(ctx, tt.cmd)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUserHandler_UpdateAndAuthenticate(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	lvl := seedLevel(t, h, "Basico")
	res, err := h.users.Register(ctx, h.students, RegisterUserCommand{
		Student: CreateStudentCommand{
			Name: "Ana", Contact: "ana@club", LevelID: lvl.ID, ConductionType: shared.ConductionFollow,
		},
		Login:    "ana",
		Password: "segredo",
		Role:     user.RoleStudent,
	})
	require.NoError(t, err)

	got, err := h.users.Authenticate(ctx, " ANA ", "segredo")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, got.ID)

	_, err = h.users.Authenticate(ctx, "ana", "errada")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	_, err = h.users.Authenticate(ctx, "ninguem", "segredo")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

	updated, err := h.users.Update(ctx, UpdateUserCommand{ID: res.User.ID, Password: "nova", Role: user.RoleExaminer})
	require.NoError(t, err)
	assert.Equal(t, "ana", updated.Login)
	assert.True(t, updated.IsExaminer())

	_, err = h.users.Authenticate(ctx, "ana", "segredo")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	_, err = h.users.Authenticate(ctx, "ana", "nova")
	assert.NoError(t, err)

	require.NoError(t, h.users.Delete(ctx, res.User.ID))
	ok, err := h.students.students.Exists(ctx, res.Student.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserHandler_RegisterRollsBackStudent(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	lvl := seedLevel(t, h, "Basico")
	register := func(contact, login string) (*RegistrationResult, error) {
		return h.users.Register(ctx, h.students, RegisterUserCommand{
			Student: CreateStudentCommand{
				Name: "Aluno", Contact: contact, LevelID: lvl.ID, ConductionType: shared.ConductionLead,
			},
			Login:    login,
			Password: "segredo",
			Role:     user.RoleStudent,
		})
	}

	_, err := register("ana@club", "ana")
	require.NoError(t, err)

	// Taken login: stopped before the student is written.
	_, err = register("bia@club", "ANA")
	var regErr *RegistrationError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, StepCheckLogin, regErr.Step)
	assert.ErrorIs(t, err, shared.ErrLoginTaken)

	// Duplicate contact: the student step fails.
	_, err = register("ana@club", "outra")
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, StepCreateStudent, regErr.Step)
	assert.ErrorIs(t, err, shared.ErrStudentContactTaken)

	students, err := h.students.students.List(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 1)
}

func TestUserHandler_RegisterCompensates(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()
	lvl := seedLevel(t, h, "Basico")

	// Force the user step to fail after the student exists: bcrypt rejects
	// an out-of-range cost.
	h.users.bcryptCost = bcrypt.MaxCost + 1

	_, err := h.users.Register(ctx, h.students, RegisterUserCommand{
		Student: CreateStudentCommand{
			Name: "Ana", Contact: "ana@club", LevelID: lvl.ID, ConductionType: shared.ConductionFollow,
		},
		Login:    "ana",
		Password: "segredo",
		Role:     user.RoleStudent,
	})

	var regErr *RegistrationError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, StepCreateUser, regErr.Step)
	assert.True(t, regErr.RolledBack)

	students, err := h.students.students.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)
}
