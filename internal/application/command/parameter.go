package command

import (
	"context"
	"fmt"

	"github.com/baiana/danceclub/internal/domain/dancestyle"
	"github.com/baiana/danceclub/internal/domain/level"
	"github.com/baiana/danceclub/internal/domain/parameter"
	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// PARAMETER COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// CreateParameterCommand contains the data to create an evaluation parameter.
type CreateParameterCommand struct {
	Name           string
	ConductionType shared.ConductionType
	// StyleID is the main dance style; zero means none.
	StyleID shared.ID
	LevelID shared.ID
}

// Validate validates the command.
func (c CreateParameterCommand) Validate() error {
	if shared.IsBlank(c.Name) {
		return shared.EmptyField("parameter", "nome")
	}
	if !c.ConductionType.IsValid() {
		return shared.ErrInvalidConductionType
	}
	if c.LevelID <= 0 {
		return shared.EmptyField("parameter", "nível")
	}
	return nil
}

// UpdateParameterCommand changes a parameter. Blank or zero fields keep the
// current value; ClearStyle removes the main style.
type UpdateParameterCommand struct {
	ID             shared.ID
	Name           string
	ConductionType shared.ConductionType
	StyleID        shared.ID
	ClearStyle     bool
	LevelID        shared.ID
}

// Validate validates the command.
func (c UpdateParameterCommand) Validate() error {
	if c.ID <= 0 {
		return invalidID("parameter", "Update")
	}
	if c.ConductionType != "" && !c.ConductionType.IsValid() {
		return shared.ErrInvalidConductionType
	}
	return nil
}

// ParameterHandler handles parameter writes and style links.
type ParameterHandler struct {
	parameters parameter.Repository
	styles     dancestyle.Repository
	levels     level.Repository
	log        *logger.Logger
}

// NewParameterHandler creates a new ParameterHandler.
func NewParameterHandler(
	parameters parameter.Repository,
	styles dancestyle.Repository,
	levels level.Repository,
	log *logger.Logger,
) *ParameterHandler {
	return &ParameterHandler{
		parameters: parameters,
		styles:     styles,
		levels:     levels,
		log:        componentLogger(log, "parameter_handler"),
	}
}

// Create creates a parameter.
func (h *ParameterHandler) Create(ctx context.Context, cmd CreateParameterCommand) (*parameter.Parameter, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := parameter.NewParameter(parameter.NewParameterParams{
		Name:           cmd.Name,
		ConductionType: cmd.ConductionType,
		StyleID:        cmd.StyleID,
		LevelID:        cmd.LevelID,
	})
	if err != nil {
		return nil, err
	}
	if err := h.Save(ctx, p); err != nil {
		return nil, err
	}
	return h.parameters.GetByID(ctx, p.ID)
}

// Update applies the command to an existing parameter.
func (h *ParameterHandler) Update(ctx context.Context, cmd UpdateParameterCommand) (*parameter.Parameter, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := h.parameters.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	p.Name = keep(p.Name, cmd.Name)
	p.LevelID = keepID(p.LevelID, cmd.LevelID)
	if cmd.ConductionType != "" {
		p.ConductionType = cmd.ConductionType
	}
	switch {
	case cmd.ClearStyle:
		p.StyleID = 0
	case cmd.StyleID > 0:
		p.StyleID = cmd.StyleID
	}

	if err := h.Save(ctx, p); err != nil {
		return nil, err
	}
	return h.parameters.GetByID(ctx, p.ID)
}

// Save inserts the parameter when its ID is zero and updates it otherwise.
func (h *ParameterHandler) Save(ctx context.Context, p *parameter.Parameter) error {
	if err := p.Validate(); err != nil {
		return err
	}

	other, err := h.parameters.GetByName(ctx, p.Name)
	if err := checkConflict(err, func() bool { return other.ID != p.ID }, shared.ErrParameterAlreadyExists); err != nil {
		return err
	}

	if err := ensureExists(ctx, h.levels.Exists, p.LevelID, shared.ErrParameterRefMissing); err != nil {
		return err
	}
	if p.HasStyle() {
		if err := ensureExists(ctx, h.styles.Exists, p.StyleID, shared.ErrParameterRefMissing); err != nil {
			return err
		}
	}

	created := p.ID == 0
	if err := h.parameters.Save(ctx, p); err != nil {
		return fmt.Errorf("save parameter: %w", err)
	}

	logFor(ctx, h.log).Info("parameter saved", logger.EntityID(p.ID), logger.Bool("created", created))
	return nil
}

// Delete removes a parameter and its style links.
func (h *ParameterHandler) Delete(ctx context.Context, id shared.ID) error {
	if err := h.parameters.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete parameter: %w", err)
	}
	logFor(ctx, h.log).Info("parameter deleted", logger.EntityID(id))
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Style links
// ─────────────────────────────────────────────────────────────────────────────

// LinkStyle links a dance style to a parameter. It returns false when the
// pair was already linked.
func (h *ParameterHandler) LinkStyle(ctx context.Context, parameterID, styleID shared.ID) (bool, error) {
	if err := ensureExists(ctx, h.parameters.Exists, parameterID, shared.ErrParameterNotFound); err != nil {
		return false, err
	}
	if err := ensureExists(ctx, h.styles.Exists, styleID, shared.ErrStyleNotFound); err != nil {
		return false, err
	}

	linked, err := h.parameters.LinkStyle(ctx, parameterID, styleID)
	if err != nil {
		return false, fmt.Errorf("link style: %w", err)
	}

	logFor(ctx, h.log).Info("style linked",
		logger.EntityID(parameterID),
		logger.Int64("style_id", styleID),
		logger.Bool("new_link", linked),
	)
	return linked, nil
}

// UnlinkStyle removes the link between a parameter and a dance style.
func (h *ParameterHandler) UnlinkStyle(ctx context.Context, parameterID, styleID shared.ID) error {
	if err := h.parameters.UnlinkStyle(ctx, parameterID, styleID); err != nil {
		return fmt.Errorf("unlink style: %w", err)
	}
	logFor(ctx, h.log).Info("style unlinked", logger.EntityID(parameterID), logger.Int64("style_id", styleID))
	return nil
}
