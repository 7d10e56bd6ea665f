package command

import (
	"context"
	"fmt"

	"github.com/baiana/danceclub/internal/domain/level"
	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/internal/domain/student"
	"github.com/baiana/danceclub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// CreateStudentCommand contains the data to enroll a student.
type CreateStudentCommand struct {
	Name           string
	Contact        string
	LevelID        shared.ID
	ConductionType shared.ConductionType
}

// Validate validates the command.
func (c CreateStudentCommand) Validate() error {
	if shared.IsBlank(c.Name) {
		return shared.EmptyField("student", "nome")
	}
	if shared.IsBlank(c.Contact) {
		return shared.EmptyField("student", "contato")
	}
	if c.LevelID <= 0 {
		return shared.EmptyField("student", "nível")
	}
	if !c.ConductionType.IsValid() {
		return shared.ErrInvalidConductionType
	}
	return nil
}

// UpdateStudentCommand changes a student. Blank or zero fields keep the
// current value; Active is only applied when set.
type UpdateStudentCommand struct {
	ID             shared.ID
	Name           string
	Contact        string
	LevelID        shared.ID
	Active         *bool
	ConductionType shared.ConductionType
}

// Validate validates the command.
func (c UpdateStudentCommand) Validate() error {
	if c.ID <= 0 {
		return invalidID("student", "Update")
	}
	if c.ConductionType != "" && !c.ConductionType.IsValid() {
		return shared.ErrInvalidConductionType
	}
	return nil
}

// StudentHandler handles student writes.
type StudentHandler struct {
	students student.Repository
	levels   level.Repository
	log      *logger.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(students student.Repository, levels level.Repository, log *logger.Logger) *StudentHandler {
	return &StudentHandler{
		students: students,
		levels:   levels,
		log:      componentLogger(log, "student_handler"),
	}
}

// Create enrolls a new, active student.
func (h *StudentHandler) Create(ctx context.Context, cmd CreateStudentCommand) (*student.Student, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := student.NewStudent(student.NewStudentParams{
		Name:           cmd.Name,
		Contact:        cmd.Contact,
		LevelID:        cmd.LevelID,
		ConductionType: cmd.ConductionType,
	})
	if err != nil {
		return nil, err
	}
	if err := h.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Update applies the command to an existing student.
func (h *StudentHandler) Update(ctx context.Context, cmd UpdateStudentCommand) (*student.Student, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := h.students.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	s.Name = keep(s.Name, cmd.Name)
	s.Contact = keep(s.Contact, cmd.Contact)
	s.LevelID = keepID(s.LevelID, cmd.LevelID)
	if cmd.ConductionType != "" {
		s.ConductionType = cmd.ConductionType
	}
	if cmd.Active != nil {
		s.Active = *cmd.Active
	}

	if err := h.Save(ctx, s); err != nil {
		return nil, err
	}
	return h.students.GetByID(ctx, s.ID)
}

// Save inserts the student when its ID is zero and updates it otherwise.
func (h *StudentHandler) Save(ctx context.Context, s *student.Student) error {
	if err := s.Validate(); err != nil {
		return err
	}

	other, err := h.students.GetByContact(ctx, s.Contact)
	if err := checkConflict(err, func() bool { return other.ID != s.ID }, shared.ErrStudentContactTaken); err != nil {
		return err
	}

	if err := ensureExists(ctx, h.levels.Exists, s.LevelID, shared.ErrStudentLevelMissing); err != nil {
		return err
	}

	created := s.ID == 0
	if err := h.students.Save(ctx, s); err != nil {
		return fmt.Errorf("save student: %w", err)
	}

	logFor(ctx, h.log).Info("student saved",
		logger.EntityID(s.ID),
		logger.Bool("created", created),
		logger.Int64("level_id", s.LevelID),
	)
	return nil
}

// Delete removes a student together with the student's user.
func (h *StudentHandler) Delete(ctx context.Context, id shared.ID) error {
	if err := h.students.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	logFor(ctx, h.log).Info("student deleted", logger.EntityID(id))
	return nil
}
