package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/baiana/danceclub/internal/domain/evaluation"
	"github.com/baiana/danceclub/internal/domain/event"
	"github.com/baiana/danceclub/internal/domain/examiner"
	"github.com/baiana/danceclub/internal/domain/level"
	"github.com/baiana/danceclub/internal/domain/parameter"
	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/internal/domain/student"
	"github.com/baiana/danceclub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// EVALUATION COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// CreateEvaluationCommand contains the data to record an evaluation.
type CreateEvaluationCommand struct {
	Date       time.Time
	StudentID  shared.ID
	ExaminerID shared.ID
	LevelID    shared.ID
	// EventID is optional; zero means the evaluation happened outside an event.
	EventID shared.ID
	Notes   string
}

// Validate validates the command.
func (c CreateEvaluationCommand) Validate() error {
	e := evaluation.Evaluation{
		Date:       c.Date,
		StudentID:  c.StudentID,
		ExaminerID: c.ExaminerID,
		LevelID:    c.LevelID,
	}
	return e.Validate()
}

// UpdateEvaluationCommand changes an evaluation. Blank or zero fields keep the
// current value; ClearEvent detaches the evaluation from its event and
// ClearNotes empties the notes.
type UpdateEvaluationCommand struct {
	ID         shared.ID
	Date       time.Time
	StudentID  shared.ID
	ExaminerID shared.ID
	LevelID    shared.ID
	EventID    shared.ID
	ClearEvent bool
	Notes      string
	ClearNotes bool
}

// Validate validates the command.
func (c UpdateEvaluationCommand) Validate() error {
	if c.ID <= 0 {
		return invalidID("evaluation", "Update")
	}
	return nil
}

// AddItemCommand scores one parameter within an evaluation.
type AddItemCommand struct {
	EvaluationID shared.ID
	ParameterID  shared.ID
	Score        float64
}

// Validate validates the command.
func (c AddItemCommand) Validate() error {
	it := evaluation.Item{EvaluationID: c.EvaluationID, ParameterID: c.ParameterID}
	return it.Validate()
}

// reference is one foreign key checked before an evaluation is saved.
type reference struct {
	exists existsFunc
	id     shared.ID
}

// EvaluationHandler handles evaluation and evaluation item writes.
type EvaluationHandler struct {
	evaluations evaluation.Repository
	students    student.Repository
	examiners   examiner.Repository
	levels      level.Repository
	events      event.Repository
	parameters  parameter.Repository
	log         *logger.Logger
}

// EvaluationDeps groups the repositories an EvaluationHandler checks references against.
type EvaluationDeps struct {
	Evaluations evaluation.Repository
	Students    student.Repository
	Examiners   examiner.Repository
	Levels      level.Repository
	Events      event.Repository
	Parameters  parameter.Repository
}

// NewEvaluationHandler creates a new EvaluationHandler.
func NewEvaluationHandler(deps EvaluationDeps, log *logger.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		evaluations: deps.Evaluations,
		students:    deps.Students,
		examiners:   deps.Examiners,
		levels:      deps.Levels,
		events:      deps.Events,
		parameters:  deps.Parameters,
		log:         componentLogger(log, "evaluation_handler"),
	}
}

// Create records an evaluation.
func (h *EvaluationHandler) Create(ctx context.Context, cmd CreateEvaluationCommand) (*evaluation.Evaluation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	e, err := evaluation.NewEvaluation(evaluation.NewEvaluationParams{
		Date:       cmd.Date,
		StudentID:  cmd.StudentID,
		ExaminerID: cmd.ExaminerID,
		LevelID:    cmd.LevelID,
		EventID:    cmd.EventID,
		Notes:      cmd.Notes,
	})
	if err != nil {
		return nil, err
	}
	if err := h.Save(ctx, e); err != nil {
		return nil, err
	}
	return h.evaluations.GetByID(ctx, e.ID)
}

// Update applies the command to an existing evaluation.
func (h *EvaluationHandler) Update(ctx context.Context, cmd UpdateEvaluationCommand) (*evaluation.Evaluation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	e, err := h.evaluations.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if !cmd.Date.IsZero() {
		e.Date = cmd.Date
	}
	e.StudentID = keepID(e.StudentID, cmd.StudentID)
	e.ExaminerID = keepID(e.ExaminerID, cmd.ExaminerID)
	e.LevelID = keepID(e.LevelID, cmd.LevelID)
	switch {
	case cmd.ClearEvent:
		e.EventID = 0
	case cmd.EventID > 0:
		e.EventID = cmd.EventID
	}
	switch notes := strings.TrimSpace(cmd.Notes); {
	case cmd.ClearNotes:
		e.Notes = ""
	case notes != "":
		e.Notes = notes
	}

	if err := h.Save(ctx, e); err != nil {
		return nil, err
	}
	return h.evaluations.GetByID(ctx, e.ID)
}

// Save inserts the evaluation when its ID is zero and updates it otherwise.
func (h *EvaluationHandler) Save(ctx context.Context, e *evaluation.Evaluation) error {
	if err := e.Validate(); err != nil {
		return err
	}

	refs := []reference{
		{h.students.Exists, e.StudentID},
		{h.examiners.Exists, e.ExaminerID},
		{h.levels.Exists, e.LevelID},
	}
	if e.HasEvent() {
		refs = append(refs, reference{h.events.Exists, e.EventID})
	}
	for _, ref := range refs {
		if err := ensureExists(ctx, ref.exists, ref.id, shared.ErrEvaluationRefMissing); err != nil {
			return err
		}
	}

	created := e.ID == 0
	if err := h.evaluations.Save(ctx, e); err != nil {
		return fmt.Errorf("save evaluation: %w", err)
	}

	logFor(ctx, h.log).Info("evaluation saved",
		logger.EntityID(e.ID),
		logger.Bool("created", created),
		logger.Int64("student_id", e.StudentID),
	)
	return nil
}

// Delete removes an evaluation and its items.
func (h *EvaluationHandler) Delete(ctx context.Context, id shared.ID) error {
	if err := h.evaluations.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete evaluation: %w", err)
	}
	logFor(ctx, h.log).Info("evaluation deleted", logger.EntityID(id))
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Items
// ─────────────────────────────────────────────────────────────────────────────

// AddItem scores a parameter within an evaluation.
func (h *EvaluationHandler) AddItem(ctx context.Context, cmd AddItemCommand) (*evaluation.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := ensureExists(ctx, h.evaluations.Exists, cmd.EvaluationID, shared.ErrEvaluationNotFound); err != nil {
		return nil, err
	}

	p, err := h.parameters.GetByID(ctx, cmd.ParameterID)
	if err != nil {
		return nil, err
	}

	item := &evaluation.Item{
		EvaluationID:  cmd.EvaluationID,
		ParameterID:   p.ID,
		ParameterName: p.Name,
		Score:         cmd.Score,
	}
	if err := h.evaluations.AddItem(ctx, item); err != nil {
		return nil, fmt.Errorf("add evaluation item: %w", err)
	}

	logFor(ctx, h.log).Info("evaluation item added",
		logger.EntityID(cmd.EvaluationID),
		logger.Int64("item_id", item.ID),
		logger.Float64("score", item.Score),
	)
	return item, nil
}

// RemoveItem deletes one evaluation item.
func (h *EvaluationHandler) RemoveItem(ctx context.Context, itemID shared.ID) error {
	if err := h.evaluations.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("remove evaluation item: %w", err)
	}
	logFor(ctx, h.log).Info("evaluation item removed", logger.Int64("item_id", itemID))
	return nil
}
