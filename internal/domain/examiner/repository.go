package examiner

import (
	"context"

	"github.com/baiana/danceclub/internal/domain/shared"
)

// Repository define as operações de persistência de examinadores.
type Repository interface {
	// Save insere quando ID == 0 e atualiza caso contrário.
	// Retorna ErrExaminerContactTaken para contato duplicado.
	Save(ctx context.Context, e *Examiner) error
	GetByID(ctx context.Context, id shared.ID) (*Examiner, error)
	// GetByContact compara sem diferenciar maiúsculas.
	GetByContact(ctx context.Context, contact string) (*Examiner, error)
	// List retorna os examinadores ordenados por nome.
	List(ctx context.Context) ([]*Examiner, error)
	SearchByName(ctx context.Context, query string) ([]*Examiner, error)
	Delete(ctx context.Context, id shared.ID) error
	Exists(ctx context.Context, id shared.ID) (bool, error)
}
