package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baiana/danceclub/internal/domain/shared"
)

func TestStudentHandler_Create(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	lvl, err := h.levels.Create(ctx, CreateLevelCommand{Name: "Basico"})
	require.NoError(t, err)

	s, err := h.students.Create(ctx, CreateStudentCommand{
		Name:           "Ana Souza",
		Contact:        "ana@club",
		LevelID:        lvl.ID,
		ConductionType: shared.ConductionFollow,
	})
	require.NoError(t, err)
	assert.Positive(t, s.ID)
	assert.True(t, s.Active)

	_, err = h.students.Create(ctx, CreateStudentCommand{
		Name: "Outra Ana", Contact: "ANA@club", LevelID: lvl.ID, ConductionType: shared.ConductionLead,
	})
	assert.ErrorIs(t, err, shared.ErrStudentContactTaken)

	_, err = h.students.Create(ctx, CreateStudentCommand{
		Name: "Bia", Contact: "bia@club", LevelID: 42, ConductionType: shared.ConductionLead,
	})
	assert.ErrorIs(t, err, shared.ErrStudentLevelMissing)

	_, err = h.students.Create(ctx, CreateStudentCommand{
		Name: "Bia", Contact: "bia@club", LevelID: lvl.ID, ConductionType: "solo",
	})
	assert.ErrorIs(t, err, shared.ErrInvalidConductionType)
}

func TestStudentHandler_UpdateKeepsBlankFields(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	basic, err := h.levels.Create(ctx, CreateLevelCommand{Name: "Basico"})
	require.NoError(t, err)
	adv, err := h.levels.Create(ctx, CreateLevelCommand{Name: "Avancado"})
	require.NoError(t, err)

	s, err := h.students.Create(ctx, CreateStudentCommand{
		Name: "Ana", Contact: "ana@club", LevelID: basic.ID, ConductionType: shared.ConductionFollow,
	})
	require.NoError(t, err)

	inactive := false
	updated, err := h.students.Update(ctx, UpdateStudentCommand{
		ID:      s.ID,
		Contact: "ana@club",
		LevelID: adv.ID,
		Active:  &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana", updated.Name)
	assert.Equal(t, "ana@club", updated.Contact)
	assert.Equal(t, adv.ID, updated.LevelID)
	assert.Equal(t, "Avancado", updated.LevelName)
	assert.False(t, updated.Active)
	assert.Equal(t, shared.ConductionFollow, updated.ConductionType)
}

func TestStudentHandler_UpdateContactConflict(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	lvl, err := h.levels.Create(ctx, CreateLevelCommand{Name: "Basico"})
	require.NoError(t, err)
	_, err = h.students.Create(ctx, CreateStudentCommand{
		Name: "Ana", Contact: "ana@club", LevelID: lvl.ID, ConductionType: shared.ConductionFollow,
	})
	require.NoError(t, err)
	bia, err := h.students.Create(ctx, CreateStudentCommand{
		Name: "Bia", Contact: "bia@club", LevelID: lvl.ID, ConductionType: shared.ConductionLead,
	})
	require.NoError(t, err)

	_, err = h.students.Update(ctx, UpdateStudentCommand{ID: bia.ID, Contact: "Ana@Club"})
	assert.ErrorIs(t, err, shared.ErrStudentContactTaken)

	_, err = h.students.Update(ctx, UpdateStudentCommand{ID: bia.ID, ConductionType: "solo"})
	assert.ErrorIs(t, err, shared.ErrInvalidConductionType)
}

func TestStudentHandler_Delete(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	lvl, err := h.levels.Create(ctx, CreateLevelCommand{Name: "Basico"})
	require.NoError(t, err)
	s, err := h.students.Create(ctx, CreateStudentCommand{
		Name: "Ana", Contact: "ana@club", LevelID: lvl.ID, ConductionType: shared.ConductionBoth,
	})
	require.NoError(t, err)

	require.NoError(t, h.students.Delete(ctx, s.ID))
	assert.ErrorIs(t, h.students.Delete(ctx, s.ID), shared.ErrStudentNotFound)
}
