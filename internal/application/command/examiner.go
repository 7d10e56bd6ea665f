package command

import (
	"context"
	"fmt"

	"github.com/baiana/danceclub/internal/domain/examiner"
	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/pkg/logger"
)

// CreateExaminerCommand contains the data to register an examiner.
type CreateExaminerCommand struct {
	Name    string
	Contact string
}

// Validate validates the command.
func (c CreateExaminerCommand) Validate() error {
	if shared.IsBlank(c.Name) {
		return shared.EmptyField("examiner", "nome")
	}
	if shared.IsBlank(c.Contact) {
		return shared.EmptyField("examiner", "contato")
	}
	return nil
}

// UpdateExaminerCommand changes an examiner. Blank fields keep the current value.
type UpdateExaminerCommand struct {
	ID      shared.ID
	Name    string
	Contact string
}

// Validate validates the command.
func (c UpdateExaminerCommand) Validate() error {
	if c.ID <= 0 {
		return invalidID("examiner", "Update")
	}
	return nil
}

// ExaminerHandler handles examiner writes.
type ExaminerHandler struct {
	examiners examiner.Repository
	log       *logger.Logger
}

// NewExaminerHandler creates a new ExaminerHandler.
func NewExaminerHandler(examiners examiner.Repository, log *logger.Logger) *ExaminerHandler {
	return &ExaminerHandler{examiners: examiners, log: componentLogger(log, "examiner_handler")}
}

// Create registers an examiner.
func (h *ExaminerHandler) Create(ctx context.Context, cmd CreateExaminerCommand) (*examiner.Examiner, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	e, err := examiner.New(cmd.Name, cmd.Contact)
	if err != nil {
		return nil, err
	}
	if err := h.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update applies the command to an existing examiner.
func (h *ExaminerHandler) Update(ctx context.Context, cmd UpdateExaminerCommand) (*examiner.Examiner, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	e, err := h.examiners.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	e.Name = keep(e.Name, cmd.Name)
	e.Contact = keep(e.Contact, cmd.Contact)
	if err := h.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Save inserts the examiner when its ID is zero and updates it otherwise.
func (h *ExaminerHandler) Save(ctx context.Context, e *examiner.Examiner) error {
	if err := e.Validate(); err != nil {
		return err
	}

	other, err := h.examiners.GetByContact(ctx, e.Contact)
	if err := checkConflict(err, func() bool { return other.ID != e.ID }, shared.ErrExaminerContactTaken); err != nil {
		return err
	}

	created := e.ID == 0
	if err := h.examiners.Save(ctx, e); err != nil {
		return fmt.Errorf("save examiner: %w", err)
	}

	logFor(ctx, h.log).Info("examiner saved", logger.EntityID(e.ID), logger.Bool("created", created))
	return nil
}

// Delete removes an examiner without evaluations.
func (h *ExaminerHandler) Delete(ctx context.Context, id shared.ID) error {
	if err := h.examiners.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete examiner: %w", err)
	}
	logFor(ctx, h.log).Info("examiner deleted", logger.EntityID(id))
	return nil
}
