package query

import (
	"context"

	"github.com/baiana/danceclub/internal/domain/dancestyle"
	"github.com/baiana/danceclub/internal/domain/event"
	"github.com/baiana/danceclub/internal/domain/examiner"
	"github.com/baiana/danceclub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CATALOG QUERIES
// Examinadores, estilos de dança e eventos: cadastros simples, sem relações.
// ══════════════════════════════════════════════════════════════════════════════

// ─────────────────────────────────────────────────────────────────────────────
// Examinadores
// ─────────────────────────────────────────────────────────────────────────────

// ExaminerDTO - examinador para exibição.
type ExaminerDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

func toExaminerDTO(e *examiner.Examiner) ExaminerDTO {
	return ExaminerDTO{ID: e.ID, Name: e.Name, Contact: e.Contact}
}

// ExaminerQueries responde às consultas de examinadores.
type ExaminerQueries struct {
	examiners examiner.Repository
}

// NewExaminerQueries cria o handler.
func NewExaminerQueries(examiners examiner.Repository) *ExaminerQueries {
	return &ExaminerQueries{examiners: examiners}
}

// Get busca um examinador pelo ID.
func (q *ExaminerQueries) Get(ctx context.Context, id shared.ID) (*ExaminerDTO, error) {
	e, err := q.examiners.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toExaminerDTO(e)
	return &dto, nil
}

// List lista os examinadores por nome.
func (q *ExaminerQueries) List(ctx context.Context) ([]ExaminerDTO, error) {
	list, err := q.examiners.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toExaminerDTO), nil
}

// Search faz busca parcial pelo nome.
func (q *ExaminerQueries) Search(ctx context.Context, name string) ([]ExaminerDTO, error) {
	if shared.IsBlank(name) {
		return q.List(ctx)
	}
	list, err := q.examiners.SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toExaminerDTO), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Estilos de dança
// ─────────────────────────────────────────────────────────────────────────────

// StyleDTO - estilo de dança para exibição.
type StyleDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toStyleDTO(s *dancestyle.Style) StyleDTO {
	return StyleDTO{ID: s.ID, Name: s.Name}
}

// StyleQueries responde às consultas de estilos de dança.
type StyleQueries struct {
	styles dancestyle.Repository
}

// NewStyleQueries cria o handler.
func NewStyleQueries(styles dancestyle.Repository) *StyleQueries {
	return &StyleQueries{styles: styles}
}

// Get busca um estilo pelo ID.
func (q *StyleQueries) Get(ctx context.Context, id shared.ID) (*StyleDTO, error) {
	s, err := q.styles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toStyleDTO(s)
	return &dto, nil
}

// List lista os estilos por nome.
func (q *StyleQueries) List(ctx context.Context) ([]StyleDTO, error) {
	list, err := q.styles.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toStyleDTO), nil
}

// Search faz busca parcial pelo nome.
func (q *StyleQueries) Search(ctx context.Context, name string) ([]StyleDTO, error) {
	if shared.IsBlank(name) {
		return q.List(ctx)
	}
	list, err := q.styles.SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toStyleDTO), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Eventos
// ─────────────────────────────────────────────────────────────────────────────

// EventDTO - evento para exibição.
type EventDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// Date - data no formato dd/mm/aaaa.
	Date string `json:"-"`
	// DateISO - data no formato aaaa-mm-dd.
	DateISO string `json:"date"`
	Honoree string `json:"honoree,omitempty"`
}

func toEventDTO(e *event.Event) EventDTO {
	display, iso := dateDTO(e.Date)
	return EventDTO{ID: e.ID, Name: e.Name, Date: display, DateISO: iso, Honoree: e.Honoree}
}

// EventQueries responde às consultas de eventos.
type EventQueries struct {
	events event.Repository
}

// NewEventQueries cria o handler.
func NewEventQueries(events event.Repository) *EventQueries {
	return &EventQueries{events: events}
}

// Get busca um evento pelo ID.
func (q *EventQueries) Get(ctx context.Context, id shared.ID) (*EventDTO, error) {
	e, err := q.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toEventDTO(e)
	return &dto, nil
}

// List lista os eventos por data.
func (q *EventQueries) List(ctx context.Context) ([]EventDTO, error) {
	list, err := q.events.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toEventDTO), nil
}

// Search faz busca parcial pelo nome.
func (q *EventQueries) Search(ctx context.Context, name string) ([]EventDTO, error) {
	if shared.IsBlank(name) {
		return q.List(ctx)
	}
	list, err := q.events.SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toEventDTO), nil
}
