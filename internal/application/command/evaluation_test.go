package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baiana/danceclub/internal/domain/evaluation"
	"github.com/baiana/danceclub/internal/domain/shared"
)

type evaluationSeed struct {
	levelID, studentID, examinerID, eventID, parameterID shared.ID
}

func seedEvaluationRefs(t *testing.T, h *handlers) evaluationSeed {
	t.Helper()
	ctx := context.Background()

	lvl := seedLevel(t, h, "Basico")
	s, err := h.students.Create(ctx, CreateStudentCommand{
		Name: "Ana", Contact: "ana@club", LevelID: lvl.ID, ConductionType: shared.ConductionFollow,
	})
	require.NoError(t, err)
	ex, err := h.examiners.Create(ctx, CreateExaminerCommand{Name: "Carla", Contact: "carla@club"})
	require.NoError(t, err)
	ev, err := h.events.Create(ctx, CreateEventCommand{Name: "Baile", Date: day(2024, time.May, 4)})
	require.NoError(t, err)
	p, err := h.parameters.Create(ctx, CreateParameterCommand{
		Name: "Postura", ConductionType: shared.ConductionBoth, LevelID: lvl.ID,
	})
	require.NoError(t, err)

	return evaluationSeed{
		levelID:     lvl.ID,
		studentID:   s.ID,
		examinerID:  ex.ID,
		eventID:     ev.ID,
		parameterID: p.ID,
	}
}

func TestEvaluationHandler_Create(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()
	seed := seedEvaluationRefs(t, h)

	e, err := h.evaluations.Create(ctx, CreateEvaluationCommand{
		Date:       day(2024, time.May, 4),
		StudentID:  seed.studentID,
		ExaminerID: seed.examinerID,
		LevelID:    seed.levelID,
		EventID:    seed.eventID,
		Notes:      " boa postura ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", e.StudentName)
	assert.Equal(t, "Carla", e.ExaminerName)
	assert.Equal(t, "Baile", e.EventName)
	assert.Equal(t, "boa postura", e.Notes)

	noEvent, err := h.evaluations.Create(ctx, CreateEvaluationCommand{
		Date:       day(2024, time.June, 1),
		StudentID:  seed.studentID,
		ExaminerID: seed.examinerID,
		LevelID:    seed.levelID,
	})
	require.NoError(t, err)
	assert.False(t, noEvent.HasEvent())
}

func TestEvaluationHandler_MissingReferences(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()
	seed := seedEvaluationRefs(t, h)

	base := CreateEvaluationCommand{
		Date:       day(2024, time.May, 4),
		StudentID:  seed.studentID,
		ExaminerID: seed.examinerID,
		LevelID:    seed.levelID,
	}

	tests := []struct {
		name   string
		mutate func(c *CreateEvaluationCommand)
	}{
		{name: "student", mutate: func(c *CreateEvaluationCommand) { c.StudentID = 99 }},
		{name: "examiner", mutate: func(c *CreateEvaluationCommand) { c.ExaminerID = 99 }},
		{name: "level", mutate: func(c *CreateEvaluationCommand) { c.LevelID = 99 }},
		{name: "event", mutate: func(c *CreateEvaluationCommand) { c.EventID = 99 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := base
			tt.mutate(&cmd)
			_, err := h.evaluations.Create(ctx, cmd)
			assert.ErrorIs(t, err, shared.ErrEvaluationRefMissing)
		})
	}

	_, err := h.evaluations.Create(ctx, CreateEvaluationCommand{StudentID: seed.studentID})
	assert.True(t, shared.IsValidation(err))
}

func TestEvaluationHandler_UpdateAndClearEvent(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()
	seed := seedEvaluationRefs(t, h)

	e, err := h.evaluations.Create(ctx, CreateEvaluationCommand{
		Date:       day(2024, time.May, 4),
		StudentID:  seed.studentID,
		ExaminerID: seed.examinerID,
		LevelID:    seed.levelID,
		EventID:    seed.eventID,
		Notes:      "primeira",
	})
	require.NoError(t, err)

	kept, err := h.evaluations.Update(ctx, UpdateEvaluationCommand{ID: e.ID, Date: day(2024, time.May, 5)})
	require.NoError(t, err)
	assert.True(t, kept.Date.Equal(day(2024, time.May, 5)))
	assert.Equal(t, seed.eventID, kept.EventID)
	assert.Equal(t, "primeira", kept.Notes)

	cleared, err := h.evaluations.Update(ctx, UpdateEvaluationCommand{ID: e.ID, ClearEvent: true})
	require.NoError(t, err)
	assert.False(t, cleared.HasEvent())
	assert.Equal(t, "primeira", cleared.Notes)

	noNotes, err := h.evaluations.Update(ctx, UpdateEvaluationCommand{ID: e.ID, Notes: "ignorada", ClearNotes: true})
	require.NoError(t, err)
	assert.Empty(t, noNotes.Notes)

	_, err = h.evaluations.Update(ctx, UpdateEvaluationCommand{ID: 99})
	assert.ErrorIs(t, err, shared.ErrEvaluationNotFound)
}

func TestEvaluationHandler_Items(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()
	seed := seedEvaluationRefs(t, h)

	e, err := h.evaluations.Create(ctx, CreateEvaluationCommand{
		Date:       day(2024, time.May, 4),
		StudentID:  seed.studentID,
		ExaminerID: seed.examinerID,
		LevelID:    seed.levelID,
	})
	require.NoError(t, err)

	first, err := h.evaluations.AddItem(ctx, AddItemCommand{EvaluationID: e.ID, ParameterID: seed.parameterID, Score: 8})
	require.NoError(t, err)
	assert.Positive(t, first.ID)
	assert.Equal(t, "Postura", first.ParameterName)

	_, err = h.evaluations.AddItem(ctx, AddItemCommand{EvaluationID: e.ID, ParameterID: seed.parameterID, Score: 7})
	require.NoError(t, err)

	_, err = h.evaluations.AddItem(ctx, AddItemCommand{EvaluationID: 99, ParameterID: seed.parameterID})
	assert.ErrorIs(t, err, shared.ErrEvaluationNotFound)
	_, err = h.evaluations.AddItem(ctx, AddItemCommand{EvaluationID: e.ID, ParameterID: 99})
	assert.ErrorIs(t, err, shared.ErrParameterNotFound)

	repo := evaluationRepo(h)
	items, err := repo.ListItems(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.InDelta(t, 7.5, evaluation.Average(items), 0.001)

	require.NoError(t, h.evaluations.RemoveItem(ctx, first.ID))
	assert.ErrorIs(t, h.evaluations.RemoveItem(ctx, first.ID), shared.ErrItemNotFound)

	// The parameter is scored, so it cannot go away.
	assert.ErrorIs(t, h.parameters.Delete(ctx, seed.parameterID), shared.ErrParameterInUse)

	require.NoError(t, h.evaluations.Delete(ctx, e.ID))
	require.NoError(t, h.parameters.Delete(ctx, seed.parameterID))
}

func evaluationRepo(h *handlers) evaluation.Repository {
	return h.evaluations.evaluations
}
