// Package query contains read operations (CQRS - Queries).
//
// Os handlers daqui só leem: devolvem DTOs prontos para exibição no console
// ou para exportação em JSON.
package query

import (
	"time"

	"github.com/baiana/danceclub/pkg/timeutil"
)

// mapAll converte uma lista de entidades em DTOs, preservando a ordem.
func mapAll[E any, D any](items []E, fn func(E) D) []D {
	out := make([]D, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}

// dateDTO devolve a data no formato de exibição e no formato ISO.
func dateDTO(t time.Time) (display, iso string) {
	return timeutil.FormatDate(t), timeutil.FormatISO(t)
}
