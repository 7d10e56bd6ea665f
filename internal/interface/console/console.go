// Package console implements the interactive text menu of danceclub.
//
// Input is read line by line from a single reader goroutine; every menu action
// runs with its own action id in the logger and a panic guard, so a failing
// action prints a message and returns to the menu.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"

	"github.com/baiana/danceclub/config"
	"github.com/baiana/danceclub/internal/application/command"
	"github.com/baiana/danceclub/internal/application/query"
	"github.com/baiana/danceclub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrInputClosed is returned when stdin reaches EOF.
	ErrInputClosed = errors.New("console: input closed")

	// errBack leaves the current submenu.
	errBack = errors.New("console: back")
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Commands groups the write handlers the menu drives.
type Commands struct {
	Levels      *command.LevelHandler
	Students    *command.StudentHandler
	Examiners   *command.ExaminerHandler
	Styles      *command.DanceStyleHandler
	Events      *command.EventHandler
	Parameters  *command.ParameterHandler
	Evaluations *command.EvaluationHandler
	Users       *command.UserHandler
}

// Queries groups the read handlers the menu drives.
type Queries struct {
	Levels      *query.LevelQueries
	Students    *query.StudentQueries
	Examiners   *query.ExaminerQueries
	Styles      *query.StyleQueries
	Events      *query.EventQueries
	Parameters  *query.ParameterQueries
	Evaluations *query.EvaluationQueries
	Users       *query.UserQueries
}

// Config contains everything a Console needs.
type Config struct {
	In       io.Reader
	Out      io.Writer
	Commands Commands
	Queries  Queries
	// Flags may be nil; every flag then keeps its default.
	Flags  *config.FeatureFlags
	Logger *logger.Logger
}

// ══════════════════════════════════════════════════════════════════════════════
// CONSOLE
// ══════════════════════════════════════════════════════════════════════════════

// Console is the interactive menu loop.
type Console struct {
	cmd   Commands
	qry   Queries
	flags *config.FeatureFlags
	log   *logger.Logger

	in    io.Reader
	out   io.Writer
	lines chan string
	view  *presenter
}

// New creates a console. Nothing is read until Run.
func New(cfg Config) *Console {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Console{
		cmd:   cfg.Commands,
		qry:   cfg.Queries,
		flags: cfg.Flags,
		log:   log.With(logger.Component("console")),
		in:    cfg.In,
		out:   cfg.Out,
		view:  newPresenter(cfg.Out, cfg.Flags.IsEnabled(config.FeatureColorOutput)),
	}
}

// Run shows the main menu until the operator exits, input ends or ctx is
// cancelled. Only unexpected failures are returned.
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.lines = make(chan string)
	go c.readLines(ctx)

	c.log.Info("console started")
	c.view.banner()

	err := c.mainMenu(ctx)
	switch {
	case err == nil, errors.Is(err, errBack):
		c.view.println("Até logo!")
	case errors.Is(err, ErrInputClosed), errors.Is(err, context.Canceled):
		c.view.println("")
		c.view.println("Até logo!")
	default:
		return err
	}

	c.log.Info("console stopped")
	return nil
}

// readLines feeds c.lines until EOF or cancellation.
func (c *Console) readLines(ctx context.Context) {
	defer close(c.lines)

	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		select {
		case c.lines <- strings.TrimRight(scanner.Text(), "\r"):
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		c.log.Warn("input read failed", logger.Err(err))
	}
}

// readLine waits for the next input line.
func (c *Console) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", ErrInputClosed
		}
		return line, nil
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// ACTION EXECUTION
// ══════════════════════════════════════════════════════════════════════════════

// run executes one menu action. Domain and input errors are printed and
// swallowed; only end of input and cancellation propagate.
func (c *Console) run(ctx context.Context, name string, action func(ctx context.Context) error) (err error) {
	actionID := uuid.NewString()
	log := c.log.WithRequestID(actionID).With(logger.Operation(name))
	ctx = logger.WithContext(ctx, log)

	defer func() {
		if p := recover(); p != nil {
			log.Error("panic recovered",
				logger.Any("panic", p),
				logger.String("stack", string(debug.Stack())),
			)
			c.view.failure("Ocorreu um erro interno. A ação foi cancelada.")
			err = nil
		}
	}()

	log.Debug("action started")
	err = action(ctx)
	if isTerminal(err) {
		return err
	}
	if err != nil {
		c.report(log, err)
	}

	if c.flags.IsEnabled(config.FeaturePauseAfterAction) {
		c.view.prompt("Pressione Enter para continuar...")
		if _, err := c.readLine(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c *Console) report(log *logger.Logger, err error) {
	msg, unexpected := userMessage(err)
	if unexpected {
		log.Error("action failed", logger.Err(err))
	} else {
		log.Info("action rejected", logger.Err(err))
	}
	c.view.failure(msg)
}

func isTerminal(err error) bool {
	return errors.Is(err, ErrInputClosed) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// ══════════════════════════════════════════════════════════════════════════════
// MENUS
// ══════════════════════════════════════════════════════════════════════════════

// menuItem is one numbered option.
type menuItem struct {
	key    string
	label  string
	action func(ctx context.Context) error
}

// menu shows items until "0" is chosen. Submenu actions run through c.run.
func (c *Console) menu(ctx context.Context, title string, items []menuItem, back string) error {
	for {
		c.view.menu(title, items, back)

		choice, err := c.readLine(ctx)
		if err != nil {
			return err
		}
		choice = strings.TrimSpace(choice)
		if choice == "0" {
			return nil
		}

		item, ok := findItem(items, choice)
		if !ok {
			c.view.failure(fmt.Sprintf("Opção inválida: %q", choice))
			continue
		}

		if err := item.action(ctx); err != nil {
			return err
		}
	}
}

func findItem(items []menuItem, key string) (menuItem, bool) {
	for _, it := range items {
		if it.key == key {
			return it, true
		}
	}
	return menuItem{}, false
}

// act adapts an action to a menu entry that runs through c.run.
func (c *Console) act(key, label, name string, action func(ctx context.Context) error) menuItem {
	return menuItem{
		key:   key,
		label: label,
		action: func(ctx context.Context) error {
			return c.run(ctx, name, action)
		},
	}
}

// sub adapts a submenu to a main menu entry.
func (c *Console) sub(key, label string, items func() []menuItem) menuItem {
	return menuItem{
		key:   key,
		label: label,
		action: func(ctx context.Context) error {
			return c.menu(ctx, label, items(), "Voltar")
		},
	}
}

func (c *Console) mainMenu(ctx context.Context) error {
	items := []menuItem{
		c.sub("1", "Níveis", c.levelMenu),
		c.sub("2", "Alunos", c.studentMenu),
		c.sub("3", "Examinadores", c.examinerMenu),
		c.sub("4", "Estilos de dança", c.styleMenu),
		c.sub("5", "Eventos", c.eventMenu),
		c.sub("6", "Parâmetros", c.parameterMenu),
		c.sub("7", "Avaliações", c.evaluationMenu),
		c.sub("8", "Usuários", c.userMenu),
	}
	return c.menu(ctx, "Menu principal", items, "Sair")
}

// confirmDelete asks s/N unless confirmation is switched off.
func (c *Console) confirmDelete(ctx context.Context, what string) (bool, error) {
	if !c.flags.IsEnabled(config.FeatureConfirmDelete) {
		return true, nil
	}
	ok, err := c.confirm(ctx, fmt.Sprintf("Confirma a exclusão de %s?", what))
	if err != nil {
		return false, err
	}
	if !ok {
		c.view.info("Exclusão cancelada.")
	}
	return ok, nil
}
