package console

import (
	"errors"

	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/pkg/timeutil"
)

// userMessage turns an action error into the text shown to the operator.
// unexpected is true for errors that are not the operator's fault.
func userMessage(err error) (msg string, unexpected bool) {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Message, false
	}

	switch {
	case errors.Is(err, shared.ErrInvalidID):
		return "identificador inválido: informe um número inteiro positivo", false
	case errors.Is(err, shared.ErrEmptyValue):
		return "valor obrigatório não informado", false
	case errors.Is(err, timeutil.ErrInvalidDate):
		return "data inválida: use o formato dd/mm/aaaa", false
	case errors.Is(err, errInvalidNumber):
		return "número inválido", false
	default:
		return "erro inesperado: " + err.Error(), true
	}
}
