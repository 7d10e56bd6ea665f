package query

import (
	"context"
	"time"

	"github.com/baiana/danceclub/internal/domain/evaluation"
	"github.com/baiana/danceclub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// EVALUATION QUERIES
// Avaliações com nomes já resolvidos e, no detalhe, itens e média das notas.
// ══════════════════════════════════════════════════════════════════════════════

// EvaluationDTO - avaliação para exibição.
type EvaluationDTO struct {
	ID      int64  `json:"id"`
	Date    string `json:"-"`
	DateISO string `json:"date"`

	StudentID    int64  `json:"student_id"`
	StudentName  string `json:"student_name"`
	ExaminerID   int64  `json:"examiner_id"`
	ExaminerName string `json:"examiner_name"`
	LevelID      int64  `json:"level_id"`
	LevelName    string `json:"level_name"`

	// EventID - zero quando a avaliação foi fora de evento.
	EventID   int64  `json:"event_id,omitempty"`
	EventName string `json:"event_name,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// ItemDTO - nota de um parâmetro.
type ItemDTO struct {
	ID            int64   `json:"id"`
	ParameterID   int64   `json:"parameter_id"`
	ParameterName string  `json:"parameter_name"`
	Score         float64 `json:"score"`
}

// EvaluationDetailDTO - avaliação com itens e média.
type EvaluationDetailDTO struct {
	EvaluationDTO
	Items   []ItemDTO `json:"items"`
	Average float64   `json:"average"`
}

func toEvaluationDTO(e *evaluation.Evaluation) EvaluationDTO {
	display, iso := dateDTO(e.Date)
	return EvaluationDTO{
		ID:           e.ID,
		Date:         display,
		DateISO:      iso,
		StudentID:    e.StudentID,
		StudentName:  e.StudentName,
		ExaminerID:   e.ExaminerID,
		ExaminerName: e.ExaminerName,
		LevelID:      e.LevelID,
		LevelName:    e.LevelName,
		EventID:      e.EventID,
		EventName:    e.EventName,
		Notes:        e.Notes,
	}
}

func toItemDTO(it *evaluation.Item) ItemDTO {
	return ItemDTO{
		ID:            it.ID,
		ParameterID:   it.ParameterID,
		ParameterName: it.ParameterName,
		Score:         it.Score,
	}
}

// EvaluationQueries responde às consultas de avaliações.
type EvaluationQueries struct {
	evaluations evaluation.Repository
}

// NewEvaluationQueries cria o handler.
func NewEvaluationQueries(evaluations evaluation.Repository) *EvaluationQueries {
	return &EvaluationQueries{evaluations: evaluations}
}

// Get busca a avaliação com seus itens.
func (q *EvaluationQueries) Get(ctx context.Context, id shared.ID) (*EvaluationDetailDTO, error) {
	e, err := q.evaluations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := q.evaluations.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}

	return &EvaluationDetailDTO{
		EvaluationDTO: toEvaluationDTO(e),
		Items:         mapAll(items, toItemDTO),
		Average:       evaluation.Average(items),
	}, nil
}

// Items lista as notas de uma avaliação.
func (q *EvaluationQueries) Items(ctx context.Context, evaluationID shared.ID) ([]ItemDTO, error) {
	if ok, err := q.evaluations.Exists(ctx, evaluationID); err != nil {
		return nil, err
	} else if !ok {
		return nil, shared.ErrEvaluationNotFound
	}
	items, err := q.evaluations.ListItems(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	return mapAll(items, toItemDTO), nil
}

// List lista todas as avaliações por data.
func (q *EvaluationQueries) List(ctx context.Context) ([]EvaluationDTO, error) {
	return q.many(q.evaluations.List(ctx))
}

// ByDate lista as avaliações de um dia.
func (q *EvaluationQueries) ByDate(ctx context.Context, day time.Time) ([]EvaluationDTO, error) {
	return q.many(q.evaluations.ListByDate(ctx, day))
}

// ByStudent lista as avaliações de um aluno.
func (q *EvaluationQueries) ByStudent(ctx context.Context, studentID shared.ID) ([]EvaluationDTO, error) {
	return q.many(q.evaluations.ListByStudent(ctx, studentID))
}

func (q *EvaluationQueries) many(list []*evaluation.Evaluation, err error) ([]EvaluationDTO, error) {
	if err != nil {
		return nil, err
	}
	return mapAll(list, toEvaluationDTO), nil
}
