package command

import (
	"context"
	"fmt"

	"github.com/baiana/danceclub/internal/domain/level"
	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEVEL COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// CreateLevelCommand contains the data to create a level.
type CreateLevelCommand struct {
	Name string
}

// Validate validates the command.
func (c CreateLevelCommand) Validate() error {
	if shared.IsBlank(c.Name) {
		return shared.EmptyField("level", "nome")
	}
	return nil
}

// UpdateLevelCommand renames a level. A blank Name keeps the current one.
type UpdateLevelCommand struct {
	ID   shared.ID
	Name string
}

// Validate validates the command.
func (c UpdateLevelCommand) Validate() error {
	if c.ID <= 0 {
		return invalidID("level", "Update")
	}
	return nil
}

// LevelHandler handles level writes.
type LevelHandler struct {
	levels level.Repository
	log    *logger.Logger
}

// NewLevelHandler creates a new LevelHandler.
func NewLevelHandler(levels level.Repository, log *logger.Logger) *LevelHandler {
	return &LevelHandler{levels: levels, log: componentLogger(log, "level_handler")}
}

// Create creates a level.
func (h *LevelHandler) Create(ctx context.Context, cmd CreateLevelCommand) (*level.Level, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	l, err := level.New(cmd.Name)
	if err != nil {
		return nil, err
	}
	if err := h.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Update applies the command to an existing level.
func (h *LevelHandler) Update(ctx context.Context, cmd UpdateLevelCommand) (*level.Level, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	l, err := h.levels.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	l.Name = keep(l.Name, cmd.Name)
	if err := h.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Save inserts the level when its ID is zero and updates it otherwise.
func (h *LevelHandler) Save(ctx context.Context, l *level.Level) error {
	if err := l.Validate(); err != nil {
		return err
	}

	other, err := h.levels.GetByName(ctx, l.Name)
	if err := checkConflict(err, func() bool { return other.ID != l.ID }, shared.ErrLevelAlreadyExists); err != nil {
		return err
	}

	created := l.IsNew()
	if err := h.levels.Save(ctx, l); err != nil {
		return fmt.Errorf("save level: %w", err)
	}

	logFor(ctx, h.log).Info("level saved",
		logger.EntityID(l.ID),
		logger.Bool("created", created),
	)
	return nil
}

// Delete removes a level.
func (h *LevelHandler) Delete(ctx context.Context, id shared.ID) error {
	if err := h.levels.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete level: %w", err)
	}
	logFor(ctx, h.log).Info("level deleted", logger.EntityID(id))
	return nil
}
