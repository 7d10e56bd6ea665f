// Package student contém o modelo de aluno da escola de dança.
// Aqui não há dependências externas, só regras do próprio aluno.
package student

import (
	"strings"

	"github.com/baiana/danceclub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student representa um aluno matriculado.
type Student struct {
	ID      shared.ID
	Name    string
	Contact string

	// LevelID aponta para o nível atual; LevelName é preenchido nas leituras.
	LevelID   shared.ID
	LevelName string

	// Active indica se o aluno está frequentando as aulas.
	Active bool

	ConductionType shared.ConductionType
}

// NewStudentParams agrupa os dados para criar um aluno.
type NewStudentParams struct {
	Name           string
	Contact        string
	LevelID        shared.ID
	ConductionType shared.ConductionType
}

// NewStudent cria um aluno ativo com validação.
func NewStudent(p NewStudentParams) (*Student, error) {
	s := &Student{
		Name:           strings.TrimSpace(p.Name),
		Contact:        strings.TrimSpace(p.Contact),
		LevelID:        p.LevelID,
		Active:         true,
		ConductionType: p.ConductionType,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate verifica os campos obrigatórios e o tipo de condução.
func (s *Student) Validate() error {
	if shared.IsBlank(s.Name) {
		return shared.EmptyField("student", "nome")
	}
	if shared.IsBlank(s.Contact) {
		return shared.EmptyField("student", "contato")
	}
	if s.LevelID <= 0 {
		return shared.EmptyField("student", "nível")
	}
	if !s.ConductionType.IsValid() {
		return shared.ErrInvalidConductionType
	}
	return nil
}

// SameContact compara contatos sem diferenciar maiúsculas.
func (s *Student) SameContact(contact string) bool {
	return shared.NormalizeContact(s.Contact) == shared.NormalizeContact(contact)
}

// StatusLabel devolve "Ativo" ou "Inativo" para exibição.
func (s *Student) StatusLabel() string {
	if s.Active {
		return "Ativo"
	}
	return "Inativo"
}
