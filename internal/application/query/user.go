package query

import (
	"context"

	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// USER QUERIES
// O hash da senha nunca sai daqui.
// ══════════════════════════════════════════════════════════════════════════════

// UserDTO - usuário para exibição.
type UserDTO struct {
	ID          int64  `json:"id"`
	StudentName string `json:"student_name"`
	Login       string `json:"login"`
	Role        string `json:"role"`
	// RoleLabel - "Examinador" ou "Aluno".
	RoleLabel string `json:"role_label"`
}

func toUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		StudentName: u.StudentName,
		Login:       u.Login,
		Role:        string(u.Role),
		RoleLabel:   u.Role.Label(),
	}
}

// UserQueries responde às consultas de usuários.
type UserQueries struct {
	users user.Repository
}

// NewUserQueries cria o handler.
func NewUserQueries(users user.Repository) *UserQueries {
	return &UserQueries{users: users}
}

// Get busca um usuário pelo ID, que é o mesmo do aluno dono.
func (q *UserQueries) Get(ctx context.Context, id shared.ID) (*UserDTO, error) {
	u, err := q.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

// ByStudent busca o usuário de um aluno.
func (q *UserQueries) ByStudent(ctx context.Context, studentID shared.ID) (*UserDTO, error) {
	return q.Get(ctx, studentID)
}

// ByLogin busca um usuário pelo login.
func (q *UserQueries) ByLogin(ctx context.Context, login string) (*UserDTO, error) {
	u, err := q.users.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

// List lista os usuários por login.
func (q *UserQueries) List(ctx context.Context) ([]UserDTO, error) {
	list, err := q.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toUserDTO), nil
}
