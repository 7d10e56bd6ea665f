// Package examiner contém o modelo de examinador, quem aplica as avaliações.
package examiner

import (
	"strings"

	"github.com/baiana/danceclub/internal/domain/shared"
)

// Examiner representa um examinador.
type Examiner struct {
	ID      shared.ID
	Name    string
	Contact string
}

// New cria um examinador novo com validação.
func New(name, contact string) (*Examiner, error) {
	e := &Examiner{
		Name:    strings.TrimSpace(name),
		Contact: strings.TrimSpace(contact),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate verifica os campos obrigatórios.
func (e *Examiner) Validate() error {
	if shared.IsBlank(e.Name) {
		return shared.EmptyField("examiner", "nome")
	}
	if shared.IsBlank(e.Contact) {
		return shared.EmptyField("examiner", "contato")
	}
	return nil
}
