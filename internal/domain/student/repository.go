package student

import (
	"context"

	"github.com/baiana/danceclub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Estas interfaces definem o contrato com o armazenamento.
// Implementações ficam em infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository define as operações CRUD de alunos.
type Repository interface {
	// ─────────────────────────────────────────────────────────────────────────
	// CRUD Operations
	// ─────────────────────────────────────────────────────────────────────────

	// Save insere quando ID == 0 e atualiza caso contrário.
	// Retorna ErrStudentContactTaken para contato duplicado e
	// ErrStudentLevelMissing se o nível não existir.
	Save(ctx context.Context, s *Student) error

	// GetByID retorna ErrStudentNotFound se o aluno não existir.
	GetByID(ctx context.Context, id shared.ID) (*Student, error)

	// Delete remove o aluno (e o usuário vinculado, por cascata).
	Delete(ctx context.Context, id shared.ID) error

	Exists(ctx context.Context, id shared.ID) (bool, error)

	// ─────────────────────────────────────────────────────────────────────────
	// Search & Filter
	// ─────────────────────────────────────────────────────────────────────────

	// List retorna todos os alunos ordenados por nome.
	List(ctx context.Context) ([]*Student, error)

	// SearchByName faz busca parcial pelo nome, sem diferenciar maiúsculas.
	SearchByName(ctx context.Context, query string) ([]*Student, error)

	// GetByContact compara o contato sem diferenciar maiúsculas.
	GetByContact(ctx context.Context, contact string) (*Student, error)

	// ListByLevel retorna os alunos de um nível, ordenados por nome.
	ListByLevel(ctx context.Context, levelID shared.ID) ([]*Student, error)

	// ListWithoutUser retorna os alunos que ainda não têm usuário.
	ListWithoutUser(ctx context.Context) ([]*Student, error)
}
