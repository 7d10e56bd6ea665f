// Package shared contains common domain types, errors and value objects
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound         = errors.New("entity not found")
	ErrAlreadyExists    = errors.New("entity already exists")
	ErrInvalidReference = errors.New("referenced entity does not exist or is still referenced")

	// Validation errors
	ErrValidation   = errors.New("validation error")
	ErrInvalidID    = errors.New("invalid ID")
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyValue   = errors.New("value cannot be empty")
	ErrInvalidDate  = errors.New("invalid date")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "student", "level", "evaluation"
	Op      string // Operation that failed, e.g., "Save", "Delete"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message shown to the operator
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// EmptyField reports a required field left blank.
func EmptyField(domain, field string) *DomainError {
	return NewDomainError(domain, "Validate", ErrEmptyValue, fmt.Sprintf("campo obrigatório: %s", field))
}

// Level domain errors
var (
	ErrLevelNotFound      = NewDomainError("level", "Find", ErrNotFound, "nível não encontrado")
	ErrLevelAlreadyExists = NewDomainError("level", "Save", ErrAlreadyExists, "já existe um nível com este nome")
	ErrLevelInUse         = NewDomainError("level", "Delete", ErrInvalidReference, "o nível está em uso por alunos, parâmetros ou avaliações")
)

// Student domain errors
var (
	ErrStudentNotFound       = NewDomainError("student", "Find", ErrNotFound, "aluno não encontrado")
	ErrStudentContactTaken   = NewDomainError("student", "Save", ErrAlreadyExists, "já existe um aluno com este contato")
	ErrStudentLevelMissing   = NewDomainError("student", "Save", ErrInvalidReference, "o nível informado não existe")
	ErrInvalidConductionType = NewDomainError("student", "Validate", ErrInvalidInput, "tipo de condução deve ser condutor, conduzido ou ambos")
	ErrStudentInUse          = NewDomainError("student", "Delete", ErrInvalidReference, "o aluno ainda possui avaliações")
)

// Examiner domain errors
var (
	ErrExaminerNotFound     = NewDomainError("examiner", "Find", ErrNotFound, "examinador não encontrado")
	ErrExaminerContactTaken = NewDomainError("examiner", "Save", ErrAlreadyExists, "já existe um examinador com este contato")
	ErrExaminerInUse        = NewDomainError("examiner", "Delete", ErrInvalidReference, "o examinador ainda possui avaliações")
)

// Dance style domain errors
var (
	ErrStyleNotFound      = NewDomainError("dance_style", "Find", ErrNotFound, "estilo de dança não encontrado")
	ErrStyleAlreadyExists = NewDomainError("dance_style", "Save", ErrAlreadyExists, "já existe um estilo de dança com este nome")
	ErrStyleInUse         = NewDomainError("dance_style", "Delete", ErrInvalidReference, "o estilo de dança é o estilo principal de um parâmetro")
)

// Event domain errors
var (
	ErrEventNotFound      = NewDomainError("event", "Find", ErrNotFound, "evento não encontrado")
	ErrEventAlreadyExists = NewDomainError("event", "Save", ErrAlreadyExists, "já existe um evento com este nome")
	ErrEventInUse         = NewDomainError("event", "Delete", ErrInvalidReference, "o evento ainda possui avaliações")
)

// Parameter domain errors
var (
	ErrParameterNotFound      = NewDomainError("parameter", "Find", ErrNotFound, "parâmetro não encontrado")
	ErrParameterAlreadyExists = NewDomainError("parameter", "Save", ErrAlreadyExists, "já existe um parâmetro com este nome")
	ErrParameterRefMissing    = NewDomainError("parameter", "Save", ErrInvalidReference, "o nível ou estilo de dança informado não existe")
	ErrParameterInUse         = NewDomainError("parameter", "Delete", ErrInvalidReference, "o parâmetro é usado em itens de avaliação")
	ErrLinkNotFound           = NewDomainError("parameter", "UnlinkStyle", ErrNotFound, "o parâmetro não está vinculado a este estilo")
)

// Evaluation domain errors
var (
	ErrEvaluationNotFound   = NewDomainError("evaluation", "Find", ErrNotFound, "avaliação não encontrada")
	ErrEvaluationRefMissing = NewDomainError("evaluation", "Save", ErrInvalidReference, "aluno, examinador, nível ou evento informado não existe")
	ErrItemNotFound         = NewDomainError("evaluation", "FindItem", ErrNotFound, "item de avaliação não encontrado")
	ErrItemRefMissing       = NewDomainError("evaluation", "AddItem", ErrInvalidReference, "a avaliação ou o parâmetro informado não existe")
)

// User domain errors
var (
	ErrUserNotFound       = NewDomainError("user", "Find", ErrNotFound, "usuário não encontrado")
	ErrLoginTaken         = NewDomainError("user", "Save", ErrAlreadyExists, "este login já está em uso")
	ErrStudentHasUser     = NewDomainError("user", "Save", ErrAlreadyExists, "este aluno já possui um usuário")
	ErrUserStudentMissing = NewDomainError("user", "Save", ErrInvalidReference, "o aluno do usuário não existe")
	ErrInvalidRole        = NewDomainError("user", "Validate", ErrInvalidInput, "perfil deve ser examinador ou aluno")
	ErrInvalidCredentials = NewDomainError("user", "Authenticate", ErrUnauthorized, "login ou senha inválidos")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsInvalidReference checks if the error is a broken foreign key.
func IsInvalidReference(err error) bool {
	return errors.Is(err, ErrInvalidReference)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrInvalidDate)
}

// IsUnauthorized checks if the error is an authentication failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
