// Package user contém o modelo de usuário do sistema. Todo usuário pertence a
// um aluno e compartilha o identificador dele (relação 1:1).
package user

import (
	"strings"

	"github.com/baiana/danceclub/internal/domain/shared"
)

// Role define o perfil de acesso.
type Role string

const (
	RoleExaminer Role = "examiner"
	RoleStudent  Role = "student"
)

// IsValid verifica se o perfil é conhecido.
func (r Role) IsValid() bool {
	return r == RoleExaminer || r == RoleStudent
}

// Label devolve o nome do perfil para exibição.
func (r Role) Label() string {
	switch r {
	case RoleExaminer:
		return "Examinador"
	case RoleStudent:
		return "Aluno"
	default:
		return string(r)
	}
}

// ParseRole aceita o valor armazenado ou os rótulos em português.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "examiner", "examinador", "1":
		return RoleExaminer, nil
	case "student", "aluno", "2":
		return RoleStudent, nil
	default:
		return "", shared.ErrInvalidRole
	}
}

// User representa as credenciais de acesso de um aluno.
type User struct {
	// ID é zero até o primeiro Save; depois é igual a StudentID.
	ID        shared.ID
	StudentID shared.ID
	Login     string
	// PasswordHash nunca guarda a senha em texto puro.
	PasswordHash string
	Role         Role

	// StudentName é preenchido nas leituras.
	StudentName string
}

// Validate verifica os campos obrigatórios.
func (u *User) Validate() error {
	if u.StudentID <= 0 {
		return shared.EmptyField("user", "aluno")
	}
	if shared.IsBlank(u.Login) {
		return shared.EmptyField("user", "login")
	}
	if u.PasswordHash == "" {
		return shared.EmptyField("user", "senha")
	}
	if !u.Role.IsValid() {
		return shared.ErrInvalidRole
	}
	return nil
}

// IsExaminer indica se o usuário pode aplicar avaliações.
func (u *User) IsExaminer() bool {
	return u.Role == RoleExaminer
}
