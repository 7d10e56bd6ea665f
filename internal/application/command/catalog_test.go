package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baiana/danceclub/internal/domain/shared"
)

func TestExaminerHandler(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	e, err := h.examiners.Create(ctx, CreateExaminerCommand{Name: "Carla", Contact: "carla@club"})
	require.NoError(t, err)

	_, err = h.examiners.Create(ctx, CreateExaminerCommand{Name: "Outra", Contact: "CARLA@club"})
	assert.ErrorIs(t, err, shared.ErrExaminerContactTaken)

	updated, err := h.examiners.Update(ctx, UpdateExaminerCommand{ID: e.ID, Name: "Carla Lima"})
	require.NoError(t, err)
	assert.Equal(t, "Carla Lima", updated.Name)
	assert.Equal(t, "carla@club", updated.Contact)

	require.NoError(t, h.examiners.Delete(ctx, e.ID))
	assert.ErrorIs(t, h.examiners.Delete(ctx, e.ID), shared.ErrExaminerNotFound)
}

func TestDanceStyleHandler(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	s, err := h.styles.Create(ctx, CreateStyleCommand{Name: "Samba"})
	require.NoError(t, err)

	_, err = h.styles.Create(ctx, CreateStyleCommand{Name: "samba"})
	assert.ErrorIs(t, err, shared.ErrStyleAlreadyExists)

	_, err = h.styles.Create(ctx, CreateStyleCommand{Name: ""})
	assert.True(t, shared.IsValidation(err))

	renamed, err := h.styles.Update(ctx, UpdateStyleCommand{ID: s.ID, Name: "Samba de Gafieira"})
	require.NoError(t, err)
	assert.Equal(t, "Samba de Gafieira", renamed.Name)
}

func TestEventHandler(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	ev, err := h.events.Create(ctx, CreateEventCommand{
		Name: "Baile de Maio", Date: day(2024, time.May, 4), Honoree: "Mestre Zé",
	})
	require.NoError(t, err)

	_, err = h.events.Create(ctx, CreateEventCommand{Name: "baile de maio", Date: day(2024, time.May, 5)})
	assert.ErrorIs(t, err, shared.ErrEventAlreadyExists)

	_, err = h.events.Create(ctx, CreateEventCommand{Name: "Sem data"})
	assert.True(t, shared.IsValidation(err))

	// A zero date keeps the stored one.
	updated, err := h.events.Update(ctx, UpdateEventCommand{ID: ev.ID, Honoree: "Dona Ana"})
	require.NoError(t, err)
	assert.True(t, updated.Date.Equal(day(2024, time.May, 4)))
	assert.Equal(t, "Dona Ana", updated.Honoree)
	assert.Equal(t, "Baile de Maio", updated.Name)
}
