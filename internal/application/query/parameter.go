package query

import (
	"context"

	"github.com/baiana/danceclub/internal/domain/parameter"
	"github.com/baiana/danceclub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PARAMETER QUERIES
// ══════════════════════════════════════════════════════════════════════════════

// ParameterDTO - parâmetro de avaliação para exibição.
type ParameterDTO struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ConductionType string `json:"conduction_type"`
	Conduction     string `json:"conduction"`

	// StyleID - estilo principal; zero quando não há.
	StyleID   int64  `json:"style_id,omitempty"`
	StyleName string `json:"style_name,omitempty"`

	LevelID   int64  `json:"level_id"`
	LevelName string `json:"level_name"`

	// Styles - estilos vinculados; só preenchido em Get.
	Styles []StyleDTO `json:"styles,omitempty"`
}

func toParameterDTO(p *parameter.Parameter) ParameterDTO {
	return ParameterDTO{
		ID:             p.ID,
		Name:           p.Name,
		ConductionType: p.ConductionType.String(),
		Conduction:     ConductionLabel(p.ConductionType),
		StyleID:        p.StyleID,
		StyleName:      p.StyleName,
		LevelID:        p.LevelID,
		LevelName:      p.LevelName,
	}
}

// ParameterQueries responde às consultas de parâmetros e vínculos com estilos.
type ParameterQueries struct {
	parameters parameter.Repository
}

// NewParameterQueries cria o handler.
func NewParameterQueries(parameters parameter.Repository) *ParameterQueries {
	return &ParameterQueries{parameters: parameters}
}

// Get busca um parâmetro com os estilos vinculados.
func (q *ParameterQueries) Get(ctx context.Context, id shared.ID) (*ParameterDTO, error) {
	p, err := q.parameters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	styles, err := q.parameters.StylesOf(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := toParameterDTO(p)
	dto.Styles = mapAll(styles, toStyleDTO)
	return &dto, nil
}

// List lista os parâmetros por nome.
func (q *ParameterQueries) List(ctx context.Context) ([]ParameterDTO, error) {
	list, err := q.parameters.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toParameterDTO), nil
}

// Search faz busca parcial pelo nome.
func (q *ParameterQueries) Search(ctx context.Context, name string) ([]ParameterDTO, error) {
	if shared.IsBlank(name) {
		return q.List(ctx)
	}
	list, err := q.parameters.SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toParameterDTO), nil
}

// StylesOf lista os estilos vinculados a um parâmetro.
func (q *ParameterQueries) StylesOf(ctx context.Context, parameterID shared.ID) ([]StyleDTO, error) {
	if ok, err := q.parameters.Exists(ctx, parameterID); err != nil {
		return nil, err
	} else if !ok {
		return nil, shared.ErrParameterNotFound
	}
	styles, err := q.parameters.StylesOf(ctx, parameterID)
	if err != nil {
		return nil, err
	}
	return mapAll(styles, toStyleDTO), nil
}

// ParametersOf lista os parâmetros vinculados a um estilo.
func (q *ParameterQueries) ParametersOf(ctx context.Context, styleID shared.ID) ([]ParameterDTO, error) {
	list, err := q.parameters.ParametersOf(ctx, styleID)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toParameterDTO), nil
}
