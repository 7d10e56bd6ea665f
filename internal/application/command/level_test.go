package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baiana/danceclub/internal/domain/shared"
)

func TestLevelHandler_CreateAndUpdate(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	basic, err := h.levels.Create(ctx, CreateLevelCommand{Name: "  Basico "})
	require.NoError(t, err)
	assert.Positive(t, basic.ID)
	assert.Equal(t, "Basico", basic.Name)

	_, err = h.levels.Create(ctx, CreateLevelCommand{Name: "basico"})
	assert.ErrorIs(t, err, shared.ErrLevelAlreadyExists)

	// Renaming to its own name is not a conflict.
	same, err := h.levels.Update(ctx, UpdateLevelCommand{ID: basic.ID, Name: "BASICO"})
	require.NoError(t, err)
	assert.Equal(t, "BASICO", same.Name)

	kept, err := h.levels.Update(ctx, UpdateLevelCommand{ID: basic.ID, Name: ""})
	require.NoError(t, err)
	assert.Equal(t, "BASICO", kept.Name)
}

func TestLevelHandler_Errors(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	_, err := h.levels.Create(ctx, CreateLevelCommand{Name: " "})
	assert.True(t, shared.IsValidation(err))

	_, err = h.levels.Update(ctx, UpdateLevelCommand{ID: 0, Name: "x"})
	assert.ErrorIs(t, err, shared.ErrInvalidID)

	_, err = h.levels.Update(ctx, UpdateLevelCommand{ID: 99, Name: "x"})
	assert.ErrorIs(t, err, shared.ErrLevelNotFound)

	assert.ErrorIs(t, h.levels.Delete(ctx, 99), shared.ErrLevelNotFound)
}

func TestLevelHandler_RenameConflict(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	_, err := h.levels.Create(ctx, CreateLevelCommand{Name: "Basico"})
	require.NoError(t, err)
	adv, err := h.levels.Create(ctx, CreateLevelCommand{Name: "Avancado"})
	require.NoError(t, err)

	_, err = h.levels.Update(ctx, UpdateLevelCommand{ID: adv.ID, Name: "basico"})
	assert.ErrorIs(t, err, shared.ErrLevelAlreadyExists)
}

func TestLevelHandler_DeleteInUse(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	lvl, err := h.levels.Create(ctx, CreateLevelCommand{Name: "Basico"})
	require.NoError(t, err)
	_, err = h.students.Create(ctx, CreateStudentCommand{
		Name: "Ana", Contact: "ana@club", LevelID: lvl.ID, ConductionType: shared.ConductionFollow,
	})
	require.NoError(t, err)

	err = h.levels.Delete(ctx, lvl.ID)
	assert.ErrorIs(t, err, shared.ErrLevelInUse)
	assert.True(t, shared.IsInvalidReference(err))
}
