package console

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baiana/danceclub/internal/application/command"
	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/pkg/timeutil"
)

func TestUserMessage(t *testing.T) {
	_, parseErr := shared.ParseID("abc")

	tests := []struct {
		name           string
		err            error
		want           string
		wantUnexpected bool
	}{
		{name: "domain", err: shared.ErrLevelNotFound, want: "nível não encontrado"},
		{name: "wrapped domain", err: fmt.Errorf("delete level: %w", shared.ErrLevelInUse), want: shared.ErrLevelInUse.Message},
		{name: "registration", err: &command.RegistrationError{Step: command.StepCreateUser, Err: shared.ErrLoginTaken}, want: "este login já está em uso"},
		{name: "bad id", err: parseErr, want: "identificador inválido: informe um número inteiro positivo"},
		{name: "empty id", err: shared.ErrEmptyValue, want: "valor obrigatório não informado"},
		{name: "bad date", err: timeutil.ErrInvalidDate, want: "data inválida: use o formato dd/mm/aaaa"},
		{name: "bad number", err: errInvalidNumber, want: "número inválido"},
		{name: "unexpected", err: errors.New("disk full"), want: "erro inesperado: disk full", wantUnexpected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, unexpected := userMessage(tt.err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantUnexpected, unexpected)
		})
	}
}

func TestIsYes(t *testing.T) {
	for _, s := range []string{"s", "S", "sim", " y ", "yes"} {
		assert.True(t, isYes(s), s)
	}
	for _, s := range []string{"", "n", "nao", "talvez"} {
		assert.False(t, isYes(s), s)
	}
}
