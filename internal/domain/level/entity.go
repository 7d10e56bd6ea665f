// Package level contém o modelo de nível (turma) da escola de dança.
// Níveis são dados de referência: alunos, parâmetros e avaliações apontam para eles.
package level

import (
	"strings"

	"github.com/baiana/danceclub/internal/domain/shared"
)

// Level representa um nível de aprendizado, por exemplo "Iniciante" ou "Avançado".
type Level struct {
	ID   shared.ID
	Name string
}

// New cria um nível novo (ainda não salvo) com validação.
func New(name string) (*Level, error) {
	l := &Level{Name: strings.TrimSpace(name)}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate verifica os campos obrigatórios.
func (l *Level) Validate() error {
	if shared.IsBlank(l.Name) {
		return shared.EmptyField("level", "nome")
	}
	return nil
}

// IsNew indica que o nível ainda não foi persistido.
func (l *Level) IsNew() bool {
	return l.ID == 0
}
