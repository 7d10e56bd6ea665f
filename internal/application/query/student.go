package query

import (
	"context"

	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT QUERIES
// ══════════════════════════════════════════════════════════════════════════════

// StudentDTO - aluno para exibição.
type StudentDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`

	LevelID   int64  `json:"level_id"`
	LevelName string `json:"level_name"`

	Active bool `json:"active"`
	// Status - "Ativo" ou "Inativo".
	Status string `json:"status"`

	ConductionType string `json:"conduction_type"`
	// Conduction - rótulo em português do tipo de condução.
	Conduction string `json:"conduction"`
}

func toStudentDTO(s *student.Student) StudentDTO {
	return StudentDTO{
		ID:             s.ID,
		Name:           s.Name,
		Contact:        s.Contact,
		LevelID:        s.LevelID,
		LevelName:      s.LevelName,
		Active:         s.Active,
		Status:         s.StatusLabel(),
		ConductionType: s.ConductionType.String(),
		Conduction:     ConductionLabel(s.ConductionType),
	}
}

// ConductionLabel devolve o rótulo do tipo de condução usado no menu.
func ConductionLabel(c shared.ConductionType) string {
	switch c {
	case shared.ConductionLead:
		return "Condutor"
	case shared.ConductionFollow:
		return "Conduzido"
	case shared.ConductionBoth:
		return "Ambos"
	default:
		return string(c)
	}
}

// StudentQueries responde às consultas de alunos.
type StudentQueries struct {
	students student.Repository
}

// NewStudentQueries cria o handler.
func NewStudentQueries(students student.Repository) *StudentQueries {
	return &StudentQueries{students: students}
}

// Get busca um aluno pelo ID.
func (q *StudentQueries) Get(ctx context.Context, id shared.ID) (*StudentDTO, error) {
	s, err := q.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toStudentDTO(s)
	return &dto, nil
}

// FindByContact busca um aluno pelo contato.
func (q *StudentQueries) FindByContact(ctx context.Context, contact string) (*StudentDTO, error) {
	s, err := q.students.GetByContact(ctx, contact)
	if err != nil {
		return nil, err
	}
	dto := toStudentDTO(s)
	return &dto, nil
}

// List lista todos os alunos por nome.
func (q *StudentQueries) List(ctx context.Context) ([]StudentDTO, error) {
	return q.many(q.students.List(ctx))
}

// Search faz busca parcial pelo nome. Consulta vazia devolve todos.
func (q *StudentQueries) Search(ctx context.Context, name string) ([]StudentDTO, error) {
	if shared.IsBlank(name) {
		return q.List(ctx)
	}
	return q.many(q.students.SearchByName(ctx, name))
}

// ByLevel lista os alunos de um nível.
func (q *StudentQueries) ByLevel(ctx context.Context, levelID shared.ID) ([]StudentDTO, error) {
	return q.many(q.students.ListByLevel(ctx, levelID))
}

// WithoutUser lista os alunos que ainda podem receber um usuário.
func (q *StudentQueries) WithoutUser(ctx context.Context) ([]StudentDTO, error) {
	return q.many(q.students.ListWithoutUser(ctx))
}

func (q *StudentQueries) many(students []*student.Student, err error) ([]StudentDTO, error) {
	if err != nil {
		return nil, err
	}
	return mapAll(students, toStudentDTO), nil
}
