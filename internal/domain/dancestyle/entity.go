// Package dancestyle contém o modelo de estilo de dança (samba de gafieira, forró, zouk...).
package dancestyle

import (
	"strings"

	"github.com/baiana/danceclub/internal/domain/shared"
)

// Style representa um estilo de dança.
type Style struct {
	ID   shared.ID
	Name string
}

// New cria um estilo novo com validação.
func New(name string) (*Style, error) {
	s := &Style{Name: strings.TrimSpace(name)}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate verifica os campos obrigatórios.
func (s *Style) Validate() error {
	if shared.IsBlank(s.Name) {
		return shared.EmptyField("dance_style", "nome")
	}
	return nil
}
