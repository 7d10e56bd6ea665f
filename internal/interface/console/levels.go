package console

import (
	"context"
	"fmt"

	"github.com/baiana/danceclub/internal/application/command"
)

func (c *Console) levelMenu() []menuItem {
	return []menuItem{
		c.act("1", "Listar", "level.list", c.listLevels),
		c.act("2", "Buscar por nome", "level.find", c.findLevel),
		c.act("3", "Cadastrar", "level.create", c.createLevel),
		c.act("4", "Alterar", "level.update", c.updateLevel),
		c.act("5", "Excluir", "level.delete", c.deleteLevel),
	}
}

func (c *Console) listLevels(ctx context.Context) error {
	list, err := c.qry.Levels.List(ctx)
	if err != nil {
		return err
	}
	c.view.levels(list)
	return nil
}

func (c *Console) findLevel(ctx context.Context) error {
	name, err := c.ask(ctx, "Nome do nível")
	if err != nil {
		return err
	}
	l, err := c.qry.Levels.FindByName(ctx, name)
	if err != nil {
		return err
	}
	c.view.fields("ID", idText(l.ID), "Nome", l.Name)
	return nil
}

func (c *Console) createLevel(ctx context.Context) error {
	name, err := c.ask(ctx, "Nome")
	if err != nil {
		return err
	}
	l, err := c.cmd.Levels.Create(ctx, command.CreateLevelCommand{Name: name})
	if err != nil {
		return err
	}
	c.view.success(fmt.Sprintf("Nível cadastrado com ID %d.", l.ID))
	return nil
}

func (c *Console) updateLevel(ctx context.Context) error {
	levelID, err := c.askID(ctx, "ID do nível")
	if err != nil {
		return err
	}
	current, err := c.qry.Levels.Get(ctx, levelID)
	if err != nil {
		return err
	}
	name, err := c.askKeep(ctx, "Nome", current.Name)
	if err != nil {
		return err
	}
	if _, err := c.cmd.Levels.Update(ctx, command.UpdateLevelCommand{ID: levelID, Name: name}); err != nil {
		return err
	}
	c.view.success("Nível alterado.")
	return nil
}

func (c *Console) deleteLevel(ctx context.Context) error {
	levelID, err := c.askID(ctx, "ID do nível")
	if err != nil {
		return err
	}
	if ok, err := c.confirmDelete(ctx, fmt.Sprintf("nível %d", levelID)); err != nil || !ok {
		return err
	}
	if err := c.cmd.Levels.Delete(ctx, levelID); err != nil {
		return err
	}
	c.view.success("Nível excluído.")
	return nil
}
