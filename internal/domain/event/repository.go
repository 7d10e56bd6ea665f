package event

import (
	"context"

	"github.com/baiana/danceclub/internal/domain/shared"
)

// Repository define as operações de persistência de eventos.
type Repository interface {
	// Save insere quando ID == 0 e atualiza caso contrário.
	Save(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id shared.ID) (*Event, error)
	GetByName(ctx context.Context, name string) (*Event, error)
	// List retorna os eventos ordenados por data.
	List(ctx context.Context) ([]*Event, error)
	SearchByName(ctx context.Context, query string) ([]*Event, error)
	Delete(ctx context.Context, id shared.ID) error
	Exists(ctx context.Context, id shared.ID) (bool, error)
}
