package user

import (
	"context"

	"github.com/baiana/danceclub/internal/domain/shared"
)

// Repository define as operações de persistência de usuários.
type Repository interface {
	// Save insere com ID = StudentID quando ID == 0 e atualiza caso contrário.
	// Retorna ErrLoginTaken, ErrStudentHasUser ou ErrUserStudentMissing.
	Save(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id shared.ID) (*User, error)
	// GetByLogin compara o login sem diferenciar maiúsculas.
	GetByLogin(ctx context.Context, login string) (*User, error)
	// List retorna os usuários ordenados por login.
	List(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id shared.ID) error
	Exists(ctx context.Context, id shared.ID) (bool, error)
}
