package level

import (
	"context"

	"github.com/baiana/danceclub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Implementações ficam em infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository define as operações de persistência de níveis.
type Repository interface {
	// Save insere quando ID == 0 (preenchendo o ID) e atualiza caso contrário.
	// Retorna ErrLevelAlreadyExists para nome duplicado e ErrLevelNotFound
	// quando a atualização não encontra a linha.
	Save(ctx context.Context, l *Level) error

	// GetByID retorna ErrLevelNotFound se o nível não existir.
	GetByID(ctx context.Context, id shared.ID) (*Level, error)

	// GetByName busca pelo nome exato (sem diferenciar maiúsculas).
	GetByName(ctx context.Context, name string) (*Level, error)

	// List retorna todos os níveis ordenados por nome.
	List(ctx context.Context) ([]*Level, error)

	// Delete remove o nível. Retorna ErrLevelInUse se ainda houver referências.
	Delete(ctx context.Context, id shared.ID) error

	Exists(ctx context.Context, id shared.ID) (bool, error)
}
