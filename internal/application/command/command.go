// Package command contains write operations (CQRS - Commands).
//
// Every handler validates its command, checks natural-key uniqueness and the
// existence of referenced rows, then persists through the domain repository.
package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/pkg/logger"
)

// existsFunc matches the Exists method of every repository.
type existsFunc func(ctx context.Context, id shared.ID) (bool, error)

// checkConflict turns a natural-key lookup into a uniqueness check.
// clash must report whether the record found belongs to someone else.
func checkConflict(lookupErr error, clash func() bool, conflict error) error {
	if lookupErr != nil {
		if shared.IsNotFound(lookupErr) {
			return nil
		}
		return fmt.Errorf("failed to check uniqueness: %w", lookupErr)
	}
	if clash() {
		return conflict
	}
	return nil
}

// ensureExists fails with missing when the referenced row is absent.
func ensureExists(ctx context.Context, exists existsFunc, id shared.ID, missing error) error {
	if id <= 0 {
		return missing
	}
	ok, err := exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check reference: %w", err)
	}
	if !ok {
		return missing
	}
	return nil
}

// keep returns current when value is blank ("Enter to keep").
func keep(current, value string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return current
}

// keepID returns current when value is zero.
func keepID(current, value shared.ID) shared.ID {
	if value > 0 {
		return value
	}
	return current
}

func invalidID(domain, op string) error {
	return shared.NewDomainError(domain, op, shared.ErrInvalidID, "identificador inválido")
}

func logFor(ctx context.Context, fallback *logger.Logger) *logger.Logger {
	return logger.FromContextOr(ctx, fallback)
}

func componentLogger(log *logger.Logger, name string) *logger.Logger {
	if log == nil {
		log = logger.Nop()
	}
	return log.With(logger.Component(name))
}
