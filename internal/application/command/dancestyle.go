package command

import (
	"context"
	"fmt"

	"github.com/baiana/danceclub/internal/domain/dancestyle"
	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/pkg/logger"
)

// CreateStyleCommand contains the data to create a dance style.
type CreateStyleCommand struct {
	Name string
}

// Validate validates the command.
func (c CreateStyleCommand) Validate() error {
	if shared.IsBlank(c.Name) {
		return shared.EmptyField("dance_style", "nome")
	}
	return nil
}

// UpdateStyleCommand renames a dance style. A blank Name keeps the current one.
type UpdateStyleCommand struct {
	ID   shared.ID
	Name string
}

// Validate validates the command.
func (c UpdateStyleCommand) Validate() error {
	if c.ID <= 0 {
		return invalidID("dance_style", "Update")
	}
	return nil
}

// DanceStyleHandler handles dance style writes.
type DanceStyleHandler struct {
	styles dancestyle.Repository
	log    *logger.Logger
}

// NewDanceStyleHandler creates a new DanceStyleHandler.
func NewDanceStyleHandler(styles dancestyle.Repository, log *logger.Logger) *DanceStyleHandler {
	return &DanceStyleHandler{styles: styles, log: componentLogger(log, "dance_style_handler")}
}

// Create creates a dance style.
func (h *DanceStyleHandler) Create(ctx context.Context, cmd CreateStyleCommand) (*dancestyle.Style, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := dancestyle.New(cmd.Name)
	if err != nil {
		return nil, err
	}
	if err := h.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Update applies the command to an existing dance style.
func (h *DanceStyleHandler) Update(ctx context.Context, cmd UpdateStyleCommand) (*dancestyle.Style, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := h.styles.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	s.Name = keep(s.Name, cmd.Name)
	if err := h.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Save inserts the style when its ID is zero and updates it otherwise.
func (h *DanceStyleHandler) Save(ctx context.Context, s *dancestyle.Style) error {
	if err := s.Validate(); err != nil {
		return err
	}

	other, err := h.styles.GetByName(ctx, s.Name)
	if err := checkConflict(err, func() bool { return other.ID != s.ID }, shared.ErrStyleAlreadyExists); err != nil {
		return err
	}

	created := s.ID == 0
	if err := h.styles.Save(ctx, s); err != nil {
		return fmt.Errorf("save dance style: %w", err)
	}

	logFor(ctx, h.log).Info("dance style saved", logger.EntityID(s.ID), logger.Bool("created", created))
	return nil
}

// Delete removes a dance style and its parameter links.
func (h *DanceStyleHandler) Delete(ctx context.Context, id shared.ID) error {
	if err := h.styles.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete dance style: %w", err)
	}
	logFor(ctx, h.log).Info("dance style deleted", logger.EntityID(id))
	return nil
}
