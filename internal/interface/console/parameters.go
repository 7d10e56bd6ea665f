package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/baiana/danceclub/internal/application/command"
	"github.com/baiana/danceclub/internal/domain/shared"
)

func (c *Console) parameterMenu() []menuItem {
	return []menuItem{
		c.act("1", "Listar", "parameter.list", c.listParameters),
		c.act("2", "Buscar por nome", "parameter.search", c.searchParameters),
		c.act("3", "Ver", "parameter.get", c.showParameter),
		c.act("4", "Cadastrar", "parameter.create", c.createParameter),
		c.act("5", "Alterar", "parameter.update", c.updateParameter),
		c.act("6", "Excluir", "parameter.delete", c.deleteParameter),
		c.act("7", "Vincular estilo", "parameter.link_style", c.linkStyle),
		c.act("8", "Desvincular estilo", "parameter.unlink_style", c.unlinkStyle),
		c.act("9", "Estilos do parâmetro", "parameter.styles", c.stylesOfParameter),
	}
}

func (c *Console) listParameters(ctx context.Context) error {
	list, err := c.qry.Parameters.List(ctx)
	if err != nil {
		return err
	}
	c.view.parameters(list)
	return nil
}

func (c *Console) searchParameters(ctx context.Context) error {
	name, err := c.ask(ctx, "Nome (ou parte)")
	if err != nil {
		return err
	}
	list, err := c.qry.Parameters.Search(ctx, name)
	if err != nil {
		return err
	}
	c.view.parameters(list)
	return nil
}

func (c *Console) showParameter(ctx context.Context) error {
	paramID, err := c.askID(ctx, "ID do parâmetro")
	if err != nil {
		return err
	}
	p, err := c.qry.Parameters.Get(ctx, paramID)
	if err != nil {
		return err
	}
	c.view.parameter(p)
	return nil
}

func (c *Console) createParameter(ctx context.Context) error {
	var cmd command.CreateParameterCommand
	var err error
	if cmd.Name, err = c.ask(ctx, "Nome"); err != nil {
		return err
	}
	if cmd.ConductionType, err = c.askConduction(ctx, false); err != nil {
		return err
	}
	if cmd.LevelID, err = c.askID(ctx, "ID do nível"); err != nil {
		return err
	}
	if cmd.StyleID, err = c.askOptionalID(ctx, "ID do estilo principal (Enter para nenhum)"); err != nil {
		return err
	}
	p, err := c.cmd.Parameters.Create(ctx, cmd)
	if err != nil {
		return err
	}
	c.view.success(fmt.Sprintf("Parâmetro cadastrado com ID %d.", p.ID))
	return nil
}

func (c *Console) updateParameter(ctx context.Context) error {
	paramID, err := c.askID(ctx, "ID do parâmetro")
	if err != nil {
		return err
	}
	current, err := c.qry.Parameters.Get(ctx, paramID)
	if err != nil {
		return err
	}

	cmd := command.UpdateParameterCommand{ID: paramID}
	if cmd.Name, err = c.askKeep(ctx, "Nome", current.Name); err != nil {
		return err
	}
	if cmd.ConductionType, err = c.askConduction(ctx, true); err != nil {
		return err
	}
	if cmd.LevelID, err = c.askOptionalID(ctx, fmt.Sprintf("ID do nível [%d] (Enter mantém)", current.LevelID)); err != nil {
		return err
	}

	style, err := c.ask(ctx, fmt.Sprintf("ID do estilo principal [%s] (Enter mantém, \"-\" remove)", orDash(current.StyleName)))
	if err != nil {
		return err
	}
	switch strings.TrimSpace(style) {
	case "":
	case "-":
		cmd.ClearStyle = true
	default:
		if cmd.StyleID, err = shared.ParseID(style); err != nil {
			return err
		}
	}

	if _, err := c.cmd.Parameters.Update(ctx, cmd); err != nil {
		return err
	}
	c.view.success("Parâmetro alterado.")
	return nil
}

func (c *Console) deleteParameter(ctx context.Context) error {
	paramID, err := c.askID(ctx, "ID do parâmetro")
	if err != nil {
		return err
	}
	if ok, err := c.confirmDelete(ctx, fmt.Sprintf("parâmetro %d", paramID)); err != nil || !ok {
		return err
	}
	if err := c.cmd.Parameters.Delete(ctx, paramID); err != nil {
		return err
	}
	c.view.success("Parâmetro excluído.")
	return nil
}

func (c *Console) askLink(ctx context.Context) (paramID, styleID shared.ID, err error) {
	if paramID, err = c.askID(ctx, "ID do parâmetro"); err != nil {
		return 0, 0, err
	}
	styleID, err = c.askID(ctx, "ID do estilo")
	return paramID, styleID, err
}

func (c *Console) linkStyle(ctx context.Context) error {
	paramID, styleID, err := c.askLink(ctx)
	if err != nil {
		return err
	}
	linked, err := c.cmd.Parameters.LinkStyle(ctx, paramID, styleID)
	if err != nil {
		return err
	}
	if !linked {
		c.view.info("O estilo já estava vinculado a este parâmetro.")
		return nil
	}
	c.view.success("Estilo vinculado.")
	return nil
}

func (c *Console) unlinkStyle(ctx context.Context) error {
	paramID, styleID, err := c.askLink(ctx)
	if err != nil {
		return err
	}
	if err := c.cmd.Parameters.UnlinkStyle(ctx, paramID, styleID); err != nil {
		return err
	}
	c.view.success("Estilo desvinculado.")
	return nil
}

func (c *Console) stylesOfParameter(ctx context.Context) error {
	paramID, err := c.askID(ctx, "ID do parâmetro")
	if err != nil {
		return err
	}
	list, err := c.qry.Parameters.StylesOf(ctx, paramID)
	if err != nil {
		return err
	}
	c.view.styles(list)
	return nil
}
