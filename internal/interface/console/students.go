package console

import (
	"context"
	"fmt"

	"github.com/baiana/danceclub/internal/application/command"
)

func (c *Console) studentMenu() []menuItem {
	return []menuItem{
		c.act("1", "Listar", "student.list", c.listStudents),
		c.act("2", "Buscar por nome", "student.search", c.searchStudents),
		c.act("3", "Listar por nível", "student.by_level", c.studentsByLevel),
		c.act("4", "Ver", "student.get", c.showStudent),
		c.act("5", "Cadastrar", "student.create", c.createStudent),
		c.act("6", "Alterar", "student.update", c.updateStudent),
		c.act("7", "Excluir", "student.delete", c.deleteStudent),
	}
}

func (c *Console) listStudents(ctx context.Context) error {
	list, err := c.qry.Students.List(ctx)
	if err != nil {
		return err
	}
	c.view.students(list)
	return nil
}

func (c *Console) searchStudents(ctx context.Context) error {
	name, err := c.ask(ctx, "Nome (ou parte)")
	if err != nil {
		return err
	}
	list, err := c.qry.Students.Search(ctx, name)
	if err != nil {
		return err
	}
	c.view.students(list)
	return nil
}

func (c *Console) studentsByLevel(ctx context.Context) error {
	levelID, err := c.askID(ctx, "ID do nível")
	if err != nil {
		return err
	}
	if _, err := c.qry.Levels.Get(ctx, levelID); err != nil {
		return err
	}
	list, err := c.qry.Students.ByLevel(ctx, levelID)
	if err != nil {
		return err
	}
	c.view.students(list)
	return nil
}

func (c *Console) showStudent(ctx context.Context) error {
	studentID, err := c.askID(ctx, "ID do aluno")
	if err != nil {
		return err
	}
	s, err := c.qry.Students.Get(ctx, studentID)
	if err != nil {
		return err
	}
	c.view.student(s)
	return nil
}

// askNewStudent collects the fields of a new student.
func (c *Console) askNewStudent(ctx context.Context) (command.CreateStudentCommand, error) {
	var cmd command.CreateStudentCommand
	var err error

	if cmd.Name, err = c.ask(ctx, "Nome"); err != nil {
		return cmd, err
	}
	if cmd.Contact, err = c.ask(ctx, "Contato"); err != nil {
		return cmd, err
	}
	if err = c.listLevels(ctx); err != nil {
		return cmd, err
	}
	if cmd.LevelID, err = c.askID(ctx, "ID do nível"); err != nil {
		return cmd, err
	}
	cmd.ConductionType, err = c.askConduction(ctx, false)
	return cmd, err
}

func (c *Console) createStudent(ctx context.Context) error {
	cmd, err := c.askNewStudent(ctx)
	if err != nil {
		return err
	}
	s, err := c.cmd.Students.Create(ctx, cmd)
	if err != nil {
		return err
	}
	c.view.success(fmt.Sprintf("Aluno cadastrado com ID %d.", s.ID))
	return nil
}

func (c *Console) updateStudent(ctx context.Context) error {
	studentID, err := c.askID(ctx, "ID do aluno")
	if err != nil {
		return err
	}
	current, err := c.qry.Students.Get(ctx, studentID)
	if err != nil {
		return err
	}

	cmd := command.UpdateStudentCommand{ID: studentID}
	if cmd.Name, err = c.askKeep(ctx, "Nome", current.Name); err != nil {
		return err
	}
	if cmd.Contact, err = c.askKeep(ctx, "Contato", current.Contact); err != nil {
		return err
	}
	if cmd.LevelID, err = c.askOptionalID(ctx, fmt.Sprintf("ID do nível [%d] (Enter mantém)", current.LevelID)); err != nil {
		return err
	}
	if cmd.ConductionType, err = c.askConduction(ctx, true); err != nil {
		return err
	}
	if cmd.Active, err = c.askActive(ctx, current.Active); err != nil {
		return err
	}

	if _, err := c.cmd.Students.Update(ctx, cmd); err != nil {
		return err
	}
	c.view.success("Aluno alterado.")
	return nil
}

func (c *Console) deleteStudent(ctx context.Context) error {
	studentID, err := c.askID(ctx, "ID do aluno")
	if err != nil {
		return err
	}
	s, err := c.qry.Students.Get(ctx, studentID)
	if err != nil {
		return err
	}
	if ok, err := c.confirmDelete(ctx, fmt.Sprintf("%q (o usuário do aluno também será excluído)", s.Name)); err != nil || !ok {
		return err
	}
	if err := c.cmd.Students.Delete(ctx, studentID); err != nil {
		return err
	}
	c.view.success("Aluno excluído.")
	return nil
}
