package console

import (
	"context"
	"fmt"

	"github.com/baiana/danceclub/internal/application/command"
)

func (c *Console) userMenu() []menuItem {
	return []menuItem{
		c.act("1", "Listar", "user.list", c.listUsers),
		c.act("2", "Buscar por login", "user.by_login", c.userByLogin),
		c.act("3", "Ver usuário de um aluno", "user.by_student", c.userByStudent),
		c.act("4", "Cadastrar aluno com usuário", "user.register", c.registerUser),
		c.act("5", "Criar usuário para aluno existente", "user.create", c.createUser),
		c.act("6", "Alterar", "user.update", c.updateUser),
		c.act("7", "Excluir", "user.delete", c.deleteUser),
		c.act("8", "Testar login", "user.authenticate", c.authenticate),
	}
}

func (c *Console) listUsers(ctx context.Context) error {
	list, err := c.qry.Users.List(ctx)
	if err != nil {
		return err
	}
	c.view.users(list)
	return nil
}

func (c *Console) userByLogin(ctx context.Context) error {
	login, err := c.ask(ctx, "Login")
	if err != nil {
		return err
	}
	u, err := c.qry.Users.ByLogin(ctx, login)
	if err != nil {
		return err
	}
	c.view.fields("ID", idText(u.ID), "Login", u.Login, "Aluno", u.StudentName, "Perfil", u.RoleLabel)
	return nil
}

func (c *Console) userByStudent(ctx context.Context) error {
	studentID, err := c.askID(ctx, "ID do aluno")
	if err != nil {
		return err
	}
	if _, err := c.qry.Students.Get(ctx, studentID); err != nil {
		return err
	}
	u, err := c.qry.Users.ByStudent(ctx, studentID)
	if err != nil {
		return err
	}
	c.view.fields("ID", idText(u.ID), "Login", u.Login, "Aluno", u.StudentName, "Perfil", u.RoleLabel)
	return nil
}

// askCredentials collects login, password and role for a new user.
func (c *Console) askCredentials(ctx context.Context) (login, password string, err error) {
	if login, err = c.ask(ctx, "Login"); err != nil {
		return "", "", err
	}
	password, err = c.ask(ctx, "Senha")
	return login, password, err
}

func (c *Console) registerUser(ctx context.Context) error {
	student, err := c.askNewStudent(ctx)
	if err != nil {
		return err
	}
	login, password, err := c.askCredentials(ctx)
	if err != nil {
		return err
	}
	role, err := c.askRole(ctx, false)
	if err != nil {
		return err
	}

	res, err := c.cmd.Users.Register(ctx, c.cmd.Students, command.RegisterUserCommand{
		Student:  student,
		Login:    login,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return err
	}
	c.view.success(fmt.Sprintf("Aluno %q cadastrado com usuário %q (ID %d).", res.Student.Name, res.User.Login, res.User.ID))
	return nil
}

func (c *Console) createUser(ctx context.Context) error {
	free, err := c.qry.Students.WithoutUser(ctx)
	if err != nil {
		return err
	}
	c.view.info("Alunos sem usuário:")
	c.view.students(free)
	if len(free) == 0 {
		return nil
	}

	cmd := command.CreateUserCommand{}
	if cmd.StudentID, err = c.askID(ctx, "ID do aluno"); err != nil {
		return err
	}
	if cmd.Login, cmd.Password, err = c.askCredentials(ctx); err != nil {
		return err
	}
	if cmd.Role, err = c.askRole(ctx, false); err != nil {
		return err
	}

	u, err := c.cmd.Users.Create(ctx, cmd)
	if err != nil {
		return err
	}
	c.view.success(fmt.Sprintf("Usuário %q criado para %s.", u.Login, u.StudentName))
	return nil
}

func (c *Console) updateUser(ctx context.Context) error {
	userID, err := c.askID(ctx, "ID do usuário")
	if err != nil {
		return err
	}
	current, err := c.qry.Users.Get(ctx, userID)
	if err != nil {
		return err
	}

	cmd := command.UpdateUserCommand{ID: userID}
	if cmd.Login, err = c.askKeep(ctx, "Login", current.Login); err != nil {
		return err
	}
	if cmd.Password, err = c.ask(ctx, "Nova senha (Enter mantém)"); err != nil {
		return err
	}
	if cmd.Role, err = c.askRole(ctx, true); err != nil {
		return err
	}

	if _, err := c.cmd.Users.Update(ctx, cmd); err != nil {
		return err
	}
	c.view.success("Usuário alterado.")
	return nil
}

func (c *Console) deleteUser(ctx context.Context) error {
	userID, err := c.askID(ctx, "ID do usuário")
	if err != nil {
		return err
	}
	if ok, err := c.confirmDelete(ctx, fmt.Sprintf("usuário %d (o aluno é mantido)", userID)); err != nil || !ok {
		return err
	}
	if err := c.cmd.Users.Delete(ctx, userID); err != nil {
		return err
	}
	c.view.success("Usuário excluído.")
	return nil
}

func (c *Console) authenticate(ctx context.Context) error {
	login, password, err := c.askCredentials(ctx)
	if err != nil {
		return err
	}
	u, err := c.cmd.Users.Authenticate(ctx, login, password)
	if err != nil {
		return err
	}
	c.view.success(fmt.Sprintf("Login válido: %s (%s).", u.StudentName, u.Role.Label()))
	return nil
}
