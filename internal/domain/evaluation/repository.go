package evaluation

import (
	"context"
	"time"

	"github.com/baiana/danceclub/internal/domain/shared"
)

// Repository define as operações de persistência de avaliações e itens.
type Repository interface {
	// ─────────────────────────────────────────────────────────────────────────
	// CRUD Operations
	// ─────────────────────────────────────────────────────────────────────────

	// Save insere quando ID == 0 e atualiza caso contrário.
	// Retorna ErrEvaluationRefMissing se alguma referência não existir.
	Save(ctx context.Context, e *Evaluation) error
	GetByID(ctx context.Context, id shared.ID) (*Evaluation, error)
	// Delete remove a avaliação e seus itens.
	Delete(ctx context.Context, id shared.ID) error
	Exists(ctx context.Context, id shared.ID) (bool, error)

	// ─────────────────────────────────────────────────────────────────────────
	// Search & Filter
	// ─────────────────────────────────────────────────────────────────────────

	// List retorna as avaliações ordenadas por data.
	List(ctx context.Context) ([]*Evaluation, error)
	// ListByDate retorna as avaliações de um dia.
	ListByDate(ctx context.Context, day time.Time) ([]*Evaluation, error)
	ListByStudent(ctx context.Context, studentID shared.ID) ([]*Evaluation, error)

	// ─────────────────────────────────────────────────────────────────────────
	// Items
	// ─────────────────────────────────────────────────────────────────────────

	// AddItem insere o item e preenche seu ID.
	AddItem(ctx context.Context, item *Item) error
	// ListItems retorna os itens de uma avaliação na ordem de inserção.
	ListItems(ctx context.Context, evaluationID shared.ID) ([]*Item, error)
	DeleteItem(ctx context.Context, itemID shared.ID) error
}
