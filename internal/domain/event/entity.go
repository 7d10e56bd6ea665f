// Package event contém o modelo de evento (baile, festival, exame de troca de nível).
package event

import (
	"strings"
	"time"

	"github.com/baiana/danceclub/internal/domain/shared"
)

// Event representa um evento da escola.
type Event struct {
	ID   shared.ID
	Name string
	// Date guarda apenas o dia (meia-noite UTC).
	Date time.Time
	// Honoree é a pessoa homenageada, opcional.
	Honoree string
}

// New cria um evento novo com validação.
func New(name string, date time.Time, honoree string) (*Event, error) {
	e := &Event{
		Name:    strings.TrimSpace(name),
		Date:    date,
		Honoree: strings.TrimSpace(honoree),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate verifica os campos obrigatórios.
func (e *Event) Validate() error {
	if shared.IsBlank(e.Name) {
		return shared.EmptyField("event", "nome")
	}
	if e.Date.IsZero() {
		return shared.NewDomainError("event", "Validate", shared.ErrInvalidDate, "data é obrigatória")
	}
	return nil
}
