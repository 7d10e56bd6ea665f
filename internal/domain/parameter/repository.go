package parameter

import (
	"context"

	"github.com/baiana/danceclub/internal/domain/dancestyle"
	"github.com/baiana/danceclub/internal/domain/shared"
)

// Repository define as operações de persistência de parâmetros e do vínculo
// muitos-para-muitos com estilos de dança.
type Repository interface {
	// ─────────────────────────────────────────────────────────────────────────
	// CRUD Operations
	// ─────────────────────────────────────────────────────────────────────────

	// Save insere quando ID == 0 e atualiza caso contrário.
	Save(ctx context.Context, p *Parameter) error
	GetByID(ctx context.Context, id shared.ID) (*Parameter, error)
	GetByName(ctx context.Context, name string) (*Parameter, error)
	// List retorna os parâmetros ordenados por nome.
	List(ctx context.Context) ([]*Parameter, error)
	SearchByName(ctx context.Context, query string) ([]*Parameter, error)
	// Delete remove o parâmetro e seus vínculos com estilos.
	Delete(ctx context.Context, id shared.ID) error
	Exists(ctx context.Context, id shared.ID) (bool, error)

	// ─────────────────────────────────────────────────────────────────────────
	// Style links
	// ─────────────────────────────────────────────────────────────────────────

	// LinkStyle cria o vínculo. Retorna false se ele já existia.
	LinkStyle(ctx context.Context, parameterID, styleID shared.ID) (bool, error)

	// UnlinkStyle remove o vínculo. Retorna ErrLinkNotFound se não existia.
	UnlinkStyle(ctx context.Context, parameterID, styleID shared.ID) error

	// StylesOf lista os estilos vinculados ao parâmetro, ordenados por nome.
	StylesOf(ctx context.Context, parameterID shared.ID) ([]*dancestyle.Style, error)

	// ParametersOf lista os parâmetros vinculados ao estilo, ordenados por nome.
	ParametersOf(ctx context.Context, styleID shared.ID) ([]*Parameter, error)
}
