package command

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/internal/infrastructure/persistence/sqlstore"
	"github.com/baiana/danceclub/pkg/logger"
)

// handlers wires every command handler to a migrated sqlite file.
type handlers struct {
	conn        *sqlstore.Connection
	levels      *LevelHandler
	students    *StudentHandler
	examiners   *ExaminerHandler
	styles      *DanceStyleHandler
	events      *EventHandler
	parameters  *ParameterHandler
	evaluations *EvaluationHandler
	users       *UserHandler
}

func newHandlers(t *testing.T) *handlers {
	t.Helper()
	ctx := context.Background()

	conn, err := sqlstore.NewConnection(ctx, sqlstore.DefaultConfig(filepath.Join(t.TempDir(), "club.db")), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = sqlstore.NewMigrator(conn).Migrate(ctx)
	require.NoError(t, err)

	log := logger.Nop()
	levels := sqlstore.NewLevelRepository(conn)
	students := sqlstore.NewStudentRepository(conn)
	examiners := sqlstore.NewExaminerRepository(conn)
	styles := sqlstore.NewDanceStyleRepository(conn)
	events := sqlstore.NewEventRepository(conn)
	parameters := sqlstore.NewParameterRepository(conn)
	evaluations := sqlstore.NewEvaluationRepository(conn)
	users := sqlstore.NewUserRepository(conn)

	return &handlers{
		conn:       conn,
		levels:     NewLevelHandler(levels, log),
		students:   NewStudentHandler(students, levels, log),
		examiners:  NewExaminerHandler(examiners, log),
		styles:     NewDanceStyleHandler(styles, log),
		events:     NewEventHandler(events, log),
		parameters: NewParameterHandler(parameters, styles, levels, log),
		evaluations: NewEvaluationHandler(EvaluationDeps{
			Evaluations: evaluations,
			Students:    students,
			Examiners:   examiners,
			Levels:      levels,
			Events:      events,
			Parameters:  parameters,
		}, log),
		// bcrypt.MinCost keeps the tests fast.
		users: NewUserHandler(users, students, 4, log),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCheckConflict(t *testing.T) {
	conflict := shared.ErrLevelAlreadyExists

	assert.NoError(t, checkConflict(shared.ErrLevelNotFound, nil, conflict))
	assert.NoError(t, checkConflict(nil, func() bool { return false }, conflict))
	assert.ErrorIs(t, checkConflict(nil, func() bool { return true }, conflict), conflict)

	err := checkConflict(assert.AnError, nil, conflict)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestKeep(t *testing.T) {
	assert.Equal(t, "old", keep("old", ""))
	assert.Equal(t, "old", keep("old", "   "))
	assert.Equal(t, "new", keep("old", " new "))
	assert.Equal(t, int64(3), keepID(3, 0))
	assert.Equal(t, int64(5), keepID(3, 5))
}

func TestEnsureExists(t *testing.T) {
	ctx := context.Background()
	found := func(context.Context, shared.ID) (bool, error) { return true, nil }
	absent := func(context.Context, shared.ID) (bool, error) { return false, nil }
	broken := func(context.Context, shared.ID) (bool, error) { return false, assert.AnError }

	assert.NoError(t, ensureExists(ctx, found, 1, shared.ErrLevelNotFound))
	assert.ErrorIs(t, ensureExists(ctx, found, 0, shared.ErrLevelNotFound), shared.ErrLevelNotFound)
	assert.ErrorIs(t, ensureExists(ctx, absent, 1, shared.ErrLevelNotFound), shared.ErrLevelNotFound)
	assert.ErrorIs(t, ensureExists(ctx, broken, 1, shared.ErrLevelNotFound), assert.AnError)
}
