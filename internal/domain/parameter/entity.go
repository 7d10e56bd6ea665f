// Package parameter contém o modelo de parâmetro de avaliação: um critério
// (ex. "postura", "musicalidade") ligado a um nível e a estilos de dança.
package parameter

import (
	"strings"

	"github.com/baiana/danceclub/internal/domain/shared"
)

// Parameter representa um critério avaliado nos exames.
type Parameter struct {
	ID             shared.ID
	Name           string
	ConductionType shared.ConductionType

	// StyleID é o estilo principal; zero quando não definido.
	StyleID   shared.ID
	StyleName string

	LevelID   shared.ID
	LevelName string
}

// NewParameterParams agrupa os dados para criar um parâmetro.
type NewParameterParams struct {
	Name           string
	ConductionType shared.ConductionType
	StyleID        shared.ID
	LevelID        shared.ID
}

// NewParameter cria um parâmetro com validação.
func NewParameter(p NewParameterParams) (*Parameter, error) {
	param := &Parameter{
		Name:           strings.TrimSpace(p.Name),
		ConductionType: p.ConductionType,
		StyleID:        p.StyleID,
		LevelID:        p.LevelID,
	}
	if err := param.Validate(); err != nil {
		return nil, err
	}
	return param, nil
}

// Validate verifica os campos obrigatórios.
func (p *Parameter) Validate() error {
	if shared.IsBlank(p.Name) {
		return shared.EmptyField("parameter", "nome")
	}
	if !p.ConductionType.IsValid() {
		return shared.ErrInvalidConductionType
	}
	if p.LevelID <= 0 {
		return shared.EmptyField("parameter", "nível")
	}
	return nil
}

// HasStyle indica se há um estilo principal.
func (p *Parameter) HasStyle() bool {
	return p.StyleID > 0
}
