package query

import (
	"context"

	"github.com/baiana/danceclub/internal/domain/level"
	"github.com/baiana/danceclub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEVEL QUERIES
// ══════════════════════════════════════════════════════════════════════════════

// LevelDTO - nível para exibição.
type LevelDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toLevelDTO(l *level.Level) LevelDTO {
	return LevelDTO{ID: l.ID, Name: l.Name}
}

// LevelQueries responde às consultas de níveis.
type LevelQueries struct {
	levels level.Repository
}

// NewLevelQueries cria o handler.
func NewLevelQueries(levels level.Repository) *LevelQueries {
	return &LevelQueries{levels: levels}
}

// Get busca um nível pelo ID.
func (q *LevelQueries) Get(ctx context.Context, id shared.ID) (*LevelDTO, error) {
	l, err := q.levels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toLevelDTO(l)
	return &dto, nil
}

// FindByName busca um nível pelo nome exato (sem diferenciar maiúsculas).
func (q *LevelQueries) FindByName(ctx context.Context, name string) (*LevelDTO, error) {
	l, err := q.levels.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	dto := toLevelDTO(l)
	return &dto, nil
}

// List lista os níveis em ordem alfabética.
func (q *LevelQueries) List(ctx context.Context) ([]LevelDTO, error) {
	levels, err := q.levels.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(levels, toLevelDTO), nil
}
