package dancestyle

import (
	"context"

	"github.com/baiana/danceclub/internal/domain/shared"
)

// Repository define as operações de persistência de estilos.
type Repository interface {
	// Save insere quando ID == 0 e atualiza caso contrário.
	Save(ctx context.Context, s *Style) error
	GetByID(ctx context.Context, id shared.ID) (*Style, error)
	GetByName(ctx context.Context, name string) (*Style, error)
	// List retorna os estilos ordenados por nome.
	List(ctx context.Context) ([]*Style, error)
	// SearchByName faz busca parcial, sem diferenciar maiúsculas.
	SearchByName(ctx context.Context, query string) ([]*Style, error)
	Delete(ctx context.Context, id shared.ID) error
	Exists(ctx context.Context, id shared.ID) (bool, error)
}
