package command

import (
	"context"
	"fmt"
	"time"

	"github.com/baiana/danceclub/internal/domain/event"
	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/pkg/logger"
)

// CreateEventCommand contains the data to schedule an event.
type CreateEventCommand struct {
	Name    string
	Date    time.Time
	Honoree string
}

// Validate validates the command.
func (c CreateEventCommand) Validate() error {
	if shared.IsBlank(c.Name) {
		return shared.EmptyField("event", "nome")
	}
	if c.Date.IsZero() {
		return shared.NewDomainError("event", "Validate", shared.ErrInvalidDate, "data é obrigatória")
	}
	return nil
}

// UpdateEventCommand changes an event. Blank or zero fields keep the current value.
type UpdateEventCommand struct {
	ID      shared.ID
	Name    string
	Date    time.Time
	Honoree string
}

// Validate validates the command.
func (c UpdateEventCommand) Validate() error {
	if c.ID <= 0 {
		return invalidID("event", "Update")
	}
	return nil
}

// EventHandler handles event writes.
type EventHandler struct {
	events event.Repository
	log    *logger.Logger
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(events event.Repository, log *logger.Logger) *EventHandler {
	return &EventHandler{events: events, log: componentLogger(log, "event_handler")}
}

// Create schedules an event.
func (h *EventHandler) Create(ctx context.Context, cmd CreateEventCommand) (*event.Event, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	e, err := event.New(cmd.Name, cmd.Date, cmd.Honoree)
	if err != nil {
		return nil, err
	}
	if err := h.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update applies the command to an existing event.
func (h *EventHandler) Update(ctx context.Context, cmd UpdateEventCommand) (*event.Event, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	e, err := h.events.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	e.Name = keep(e.Name, cmd.Name)
	e.Honoree = keep(e.Honoree, cmd.Honoree)
	if !cmd.Date.IsZero() {
		e.Date = cmd.Date
	}

	if err := h.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Save inserts the event when its ID is zero and updates it otherwise.
func (h *EventHandler) Save(ctx context.Context, e *event.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}

	other, err := h.events.GetByName(ctx, e.Name)
	if err := checkConflict(err, func() bool { return other.ID != e.ID }, shared.ErrEventAlreadyExists); err != nil {
		return err
	}

	created := e.ID == 0
	if err := h.events.Save(ctx, e); err != nil {
		return fmt.Errorf("save event: %w", err)
	}

	logFor(ctx, h.log).Info("event saved", logger.EntityID(e.ID), logger.Bool("created", created))
	return nil
}

// Delete removes an event without evaluations.
func (h *EventHandler) Delete(ctx context.Context, id shared.ID) error {
	if err := h.events.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	logFor(ctx, h.log).Info("event deleted", logger.EntityID(id))
	return nil
}
