package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// ID Value Objects
// ═══════════════════════════════════════════════════════════════════════════

// ID is the surrogate key of every stored record. Zero means "not saved yet".
type ID = int64

// ParseID parses an identifier typed by the operator.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyValue
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a positive number", ErrInvalidID, s)
	}
	return id, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Conduction Type
// ═══════════════════════════════════════════════════════════════════════════

// ConductionType tells whether a dancer (or a parameter) applies to the leading
// or the following role of the couple.
type ConductionType string

const (
	ConductionLead   ConductionType = "lead"
	ConductionFollow ConductionType = "follow"
	ConductionBoth   ConductionType = "both"
)

// ConductionTypes lists the valid values in menu order.
var ConductionTypes = []ConductionType{ConductionLead, ConductionFollow, ConductionBoth}

// IsValid checks if the conduction type is one of the known values.
func (c ConductionType) IsValid() bool {
	switch c {
	case ConductionLead, ConductionFollow, ConductionBoth:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c ConductionType) String() string {
	return string(c)
}

// ParseConductionType accepts the stored value or the Portuguese menu labels.
func ParseConductionType(s string) (ConductionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lead", "condutor", "conduz":
		return ConductionLead, nil
	case "follow", "conduzido", "conduzida":
		return ConductionFollow, nil
	case "both", "ambos":
		return ConductionBoth, nil
	default:
		return "", ErrInvalidConductionType
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Text helpers
// ═══════════════════════════════════════════════════════════════════════════

// IsBlank reports whether s has no visible characters.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// NormalizeContact returns the form used to compare contacts case-insensitively.
func NormalizeContact(contact string) string {
	return strings.ToLower(strings.TrimSpace(contact))
}
