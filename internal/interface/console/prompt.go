package console

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/internal/domain/user"
	"github.com/baiana/danceclub/pkg/timeutil"
)

// errInvalidNumber is returned for a score that is not a number.
var errInvalidNumber = errors.New("console: invalid number")

// ask prints label and returns the trimmed answer.
func (c *Console) ask(ctx context.Context, label string) (string, error) {
	c.view.prompt(label + ":")
	line, err := c.readLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askKeep is ask for updates: the current value is shown and a blank answer keeps it.
func (c *Console) askKeep(ctx context.Context, label, current string) (string, error) {
	return c.ask(ctx, label+" ["+orDash(current)+"] (Enter mantém)")
}

// askID reads a required positive identifier.
func (c *Console) askID(ctx context.Context, label string) (shared.ID, error) {
	s, err := c.ask(ctx, label)
	if err != nil {
		return 0, err
	}
	return shared.ParseID(s)
}

// askOptionalID returns zero for a blank answer.
func (c *Console) askOptionalID(ctx context.Context, label string) (shared.ID, error) {
	s, err := c.ask(ctx, label)
	if err != nil || s == "" {
		return 0, err
	}
	return shared.ParseID(s)
}

// askDate reads a required date (dd/mm/aaaa or "hoje").
func (c *Console) askDate(ctx context.Context, label string) (time.Time, error) {
	s, err := c.ask(ctx, label+" (dd/mm/aaaa)")
	if err != nil {
		return time.Time{}, err
	}
	return timeutil.ParseDate(s)
}

// askOptionalDate returns the zero time for a blank answer.
func (c *Console) askOptionalDate(ctx context.Context, label string) (time.Time, error) {
	s, err := c.ask(ctx, label+" (dd/mm/aaaa)")
	if err != nil || s == "" {
		return time.Time{}, err
	}
	return timeutil.ParseDate(s)
}

// askConduction reads a conduction type; optional answers may be blank.
func (c *Console) askConduction(ctx context.Context, optional bool) (shared.ConductionType, error) {
	label := "Tipo de condução (1 Condutor, 2 Conduzido, 3 Ambos)"
	if optional {
		label += " (Enter mantém)"
	}
	s, err := c.ask(ctx, label)
	if err != nil {
		return "", err
	}
	if s == "" && optional {
		return "", nil
	}
	if n, convErr := strconv.Atoi(s); convErr == nil && n >= 1 && n <= len(shared.ConductionTypes) {
		return shared.ConductionTypes[n-1], nil
	}
	return shared.ParseConductionType(s)
}

// askRole reads a user role; optional answers may be blank.
func (c *Console) askRole(ctx context.Context, optional bool) (user.Role, error) {
	label := "Perfil (1 Examinador, 2 Aluno)"
	if optional {
		label += " (Enter mantém)"
	}
	s, err := c.ask(ctx, label)
	if err != nil {
		return "", err
	}
	if s == "" && optional {
		return "", nil
	}
	return user.ParseRole(s)
}

// askScore reads a numeric score; a comma is accepted as decimal separator.
func (c *Console) askScore(ctx context.Context) (float64, error) {
	s, err := c.ask(ctx, "Nota")
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errInvalidNumber
	}
	return v, nil
}

// askActive returns nil for a blank answer.
func (c *Console) askActive(ctx context.Context, current bool) (*bool, error) {
	label := "Ativo? (s/n)"
	if current {
		label += " [s]"
	} else {
		label += " [n]"
	}
	s, err := c.ask(ctx, label+" (Enter mantém)")
	if err != nil || s == "" {
		return nil, err
	}
	v := isYes(s)
	return &v, nil
}

// confirm asks a s/N question; anything but yes is no.
func (c *Console) confirm(ctx context.Context, question string) (bool, error) {
	s, err := c.ask(ctx, question+" (s/N)")
	if err != nil {
		return false, err
	}
	return isYes(s), nil
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "sim", "y", "yes":
		return true
	default:
		return false
	}
}
