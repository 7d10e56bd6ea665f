// Package evaluation contém o modelo de avaliação de um aluno e seus itens
// (a nota de cada parâmetro avaliado).
package evaluation

import (
	"strings"
	"time"

	"github.com/baiana/danceclub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: EVALUATION
// ══════════════════════════════════════════════════════════════════════════════

// Evaluation representa uma avaliação aplicada por um examinador.
// Os campos *Name são preenchidos nas leituras.
type Evaluation struct {
	ID   shared.ID
	Date time.Time

	StudentID   shared.ID
	StudentName string

	ExaminerID   shared.ID
	ExaminerName string

	LevelID   shared.ID
	LevelName string

	// EventID é zero quando a avaliação não aconteceu em um evento.
	EventID   shared.ID
	EventName string

	Notes string
}

// NewEvaluationParams agrupa os dados para criar uma avaliação.
type NewEvaluationParams struct {
	Date       time.Time
	StudentID  shared.ID
	ExaminerID shared.ID
	LevelID    shared.ID
	EventID    shared.ID
	Notes      string
}

// NewEvaluation cria uma avaliação com validação.
func NewEvaluation(p NewEvaluationParams) (*Evaluation, error) {
	e := &Evaluation{
		Date:       p.Date,
		StudentID:  p.StudentID,
		ExaminerID: p.ExaminerID,
		LevelID:    p.LevelID,
		EventID:    p.EventID,
		Notes:      strings.TrimSpace(p.Notes),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate verifica os campos obrigatórios.
func (e *Evaluation) Validate() error {
	if e.Date.IsZero() {
		return shared.NewDomainError("evaluation", "Validate", shared.ErrInvalidDate, "data é obrigatória")
	}
	if e.StudentID <= 0 {
		return shared.EmptyField("evaluation", "aluno")
	}
	if e.ExaminerID <= 0 {
		return shared.EmptyField("evaluation", "examinador")
	}
	if e.LevelID <= 0 {
		return shared.EmptyField("evaluation", "nível")
	}
	return nil
}

// HasEvent indica se a avaliação pertence a um evento.
func (e *Evaluation) HasEvent() bool {
	return e.EventID > 0
}

// ══════════════════════════════════════════════════════════════════════════════
// ITEM
// ══════════════════════════════════════════════════════════════════════════════

// Item é a nota de um parâmetro dentro de uma avaliação.
type Item struct {
	ID            shared.ID
	EvaluationID  shared.ID
	ParameterID   shared.ID
	ParameterName string
	Score         float64
}

// Validate verifica as referências obrigatórias.
func (i *Item) Validate() error {
	if i.EvaluationID <= 0 {
		return shared.EmptyField("evaluation", "avaliação")
	}
	if i.ParameterID <= 0 {
		return shared.EmptyField("evaluation", "parâmetro")
	}
	return nil
}

// Average calcula a média das notas; zero para lista vazia.
func Average(items []*Item) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, it := range items {
		sum += it.Score
	}
	return sum / float64(len(items))
}
