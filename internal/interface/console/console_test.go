package console

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/baiana/danceclub/config"
	"github.com/baiana/danceclub/internal/application/command"
	"github.com/baiana/danceclub/internal/application/query"
	"github.com/baiana/danceclub/internal/infrastructure/persistence/sqlstore"
	"github.com/baiana/danceclub/pkg/logger"
)

type harness struct {
	conn *sqlstore.Connection
	cfg  Config
	out  *bytes.Buffer
}

// newHarness wires a console to a migrated sqlite file. In and Flags are set per test.
func newHarness(t *testing.T) *harness {
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

	out := &bytes.Buffer{}
	return &harness{
		conn: conn,
		out:  out,
		cfg: Config{
			Out: out,
			Commands: Commands{
				Levels:     command.NewLevelHandler(levels, log),
				Students:   command.NewStudentHandler(students, levels, log),
				Examiners:  command.NewExaminerHandler(examiners, log),
				Styles:     command.NewDanceStyleHandler(styles, log),
				Events:     command.NewEventHandler(events, log),
				Parameters: command.NewParameterHandler(parameters, styles, levels, log),
				Evaluations: command.NewEvaluationHandler(command.EvaluationDeps{
					Evaluations: evaluations,
					Students:    students,
					Examiners:   examiners,
					Levels:      levels,
					Events:      events,
					Parameters:  parameters,
				}, log),
				Users: command.NewUserHandler(users, students, 4, log),
			},
			Queries: Queries{
				Levels:      query.NewLevelQueries(levels),
				Students:    query.NewStudentQueries(students),
				Examiners:   query.NewExaminerQueries(examiners),
				Styles:      query.NewStyleQueries(styles),
				Events:      query.NewEventQueries(events),
				Parameters:  query.NewParameterQueries(parameters),
				Evaluations: query.NewEvaluationQueries(evaluations),
				Users:       query.NewUserQueries(users),
			},
			Logger: log,
		},
	}
}

// script runs the console over the given input lines.
func (h *harness) script(t *testing.T, lines ...string) string {
	t.Helper()
	h.out.Reset()
	cfg := h.cfg
	cfg.In = strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, New(cfg).Run(context.Background()))
	return h.out.String()
}

func TestConsole_ExitAndEOF(t *testing.T) {
	h := newHarness(t)

	out := h.script(t, "0")
	assert.Contains(t, out, "Menu principal")
	assert.Contains(t, out, "8. Usuários")
	assert.Contains(t, out, "Até logo!")

	// No "0": input ends inside a submenu.
	out = h.script(t, "1")
	assert.Contains(t, out, "── Níveis ──")
	assert.Contains(t, out, "Até logo!")
}

func TestConsole_InvalidOption(t *testing.T) {
	h := newHarness(t)

	out := h.script(t, "9", "0")
	assert.Contains(t, out, `Opção inválida: "9"`)
}

func TestConsole_LevelLifecycle(t *testing.T) {
	h := newHarness(t)

	out := h.script(t,
		"1",
		"3", "Basico",
		"3", "basico",
		"1",
		"0", "0",
	)
	assert.Contains(t, out, "[ok] Nível cadastrado com ID 1.")
	assert.Contains(t, out, "[erro] já existe um nível com este nome")
	assert.Regexp(t, `1\s+Basico`, out)

	out = h.script(t, "1", "4", "1", "", "2", "basico", "0", "0")
	assert.Contains(t, out, "Nível alterado.")
	assert.Regexp(t, `Nome:\s+Basico`, out)
}

func TestConsole_InputErrorsKeepTheLoopRunning(t *testing.T) {
	h := newHarness(t)

	out := h.script(t,
		"1", "4", "abc",
		"4", "",
		"4", "42",
		"0", "0",
	)
	assert.Contains(t, out, "identificador inválido: informe um número inteiro positivo")
	assert.Contains(t, out, "valor obrigatório não informado")
	assert.Contains(t, out, "nível não encontrado")
	assert.Contains(t, out, "Até logo!")
}

func TestConsole_DeleteConfirmation(t *testing.T) {
	h := newHarness(t)
	h.script(t, "1", "3", "Basico", "0", "0")

	out := h.script(t, "1", "5", "1", "n", "1", "0", "0")
	assert.Contains(t, out, "Exclusão cancelada.")
	assert.Regexp(t, `1\s+Basico`, out)

	out = h.script(t, "1", "5", "1", "s", "1", "0", "0")
	assert.Contains(t, out, "Nível excluído.")
	assert.Contains(t, out, "Nenhum registro encontrado.")
}

func TestConsole_DeleteWithoutConfirmation(t *testing.T) {
	h := newHarness(t)
	h.script(t, "1", "3", "Basico", "0", "0")

	flags := config.LoadFeatureFlags()
	require.NoError(t, flags.Set(config.FeatureConfirmDelete, false))
	require.NoError(t, flags.Set(config.FeatureColorOutput, false))
	h.cfg.Flags = flags

	out := h.script(t, "1", "5", "1", "0", "0")
	assert.Contains(t, out, "Nível excluído.")
	assert.NotContains(t, out, "[ok]")
	assert.NotContains(t, out, "s/N")
}

func TestConsole_RegisterAndAuthenticate(t *testing.T) {
	h := newHarness(t)
	h.script(t, "1", "3", "Basico", "0", "0")

	out := h.script(t,
		"8", "4",
		"Ana Souza", "ana@club", "1", "2",
		"ana", "segredo", "2",
		"1",
		"8", "ana", "segredo",
		"8", "ana", "errada",
		"0", "0",
	)
	assert.Contains(t, out, `Aluno "Ana Souza" cadastrado com usuário "ana" (ID 1).`)
	assert.Regexp(t, `1\s+ana\s+Ana Souza\s+Aluno`, out)
	assert.Contains(t, out, "Login válido: Ana Souza (Aluno).")
	assert.Contains(t, out, "login ou senha inválidos")
}

func TestConsole_EvaluationFlow(t *testing.T) {
	h := newHarness(t)

	out := h.script(t,
		"1", "3", "Basico", "0",
		"2", "5", "Ana", "ana@club", "1", "1", "0",
		"3", "3", "Carla", "carla@club", "0",
		"6", "4", "Postura", "3", "1", "", "0",
		"7", "5", "04/05/2024", "1", "1", "1", "", "boa base",
		"8", "1", "1", "8,5",
		"8", "1", "1", "x",
		"8", "1", "1", "NaN",
		"8", "1", "1", "-Inf",
		"4", "1",
		"2", "04/05/2024",
		"6", "1", "", "", "", "", "", "-",
		"0", "0",
	)
	assert.Contains(t, out, "Avaliação cadastrada com ID 1.")
	assert.Contains(t, out, `Nota 8.50 lançada para "Postura" (item 1).`)
	assert.Equal(t, 3, strings.Count(out, "número inválido"))
	assert.NotContains(t, out, "erro inesperado")
	assert.Contains(t, out, "| Postura")
	assert.Contains(t, out, "Média: 8.50")
	assert.Contains(t, out, "sábado, 4 de maio de 2024")
	assert.Contains(t, out, "Avaliação alterada.")

	e, err := h.cfg.Queries.Evaluations.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, e.Notes)
	assert.Len(t, e.Items, 1)
}

func TestConsole_ContextCancelled(t *testing.T) {
	h := newHarness(t)

	r, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })
	h.cfg.In = r

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(h.cfg).Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("console did not stop after cancel")
	}
	assert.Contains(t, h.out.String(), "Até logo!")
}

func TestConsole_ActionsCarryActionID(t *testing.T) {
	h := newHarness(t)

	core, logs := observer.New(zapcore.DebugLevel)
	h.cfg.Logger = logger.NewFromZap(zap.New(core))

	h.script(t, "1", "1", "0", "0")

	started := logs.FilterMessage("action started").All()
	require.Len(t, started, 1)
	fields := started[0].ContextMap()
	assert.Equal(t, "level.list", fields["operation"])
	assert.NotEmpty(t, fields[logger.RequestIDKey])
}
