package console

import (
	"context"
	"fmt"

	"github.com/baiana/danceclub/internal/application/command"
	"github.com/baiana/danceclub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// EXAMINERS
// ══════════════════════════════════════════════════════════════════════════════

func (c *Console) examinerMenu() []menuItem {
	return []menuItem{
		c.act("1", "Listar", "examiner.list", c.listExaminers),
		c.act("2", "Buscar por nome", "examiner.search", c.searchExaminers),
		c.act("3", "Cadastrar", "examiner.create", c.createExaminer),
		c.act("4", "Alterar", "examiner.update", c.updateExaminer),
		c.act("5", "Excluir", "examiner.delete", c.deleteExaminer),
	}
}

func (c *Console) listExaminers(ctx context.Context) error {
	list, err := c.qry.Examiners.List(ctx)
	if err != nil {
		return err
	}
	c.view.examiners(list)
	return nil
}

func (c *Console) searchExaminers(ctx context.Context) error {
	name, err := c.ask(ctx, "Nome (ou parte)")
	if err != nil {
		return err
	}
	list, err := c.qry.Examiners.Search(ctx, name)
	if err != nil {
		return err
	}
	c.view.examiners(list)
	return nil
}

func (c *Console) createExaminer(ctx context.Context) error {
	var cmd command.CreateExaminerCommand
	var err error
	if cmd.Name, err = c.ask(ctx, "Nome"); err != nil {
		return err
	}
	if cmd.Contact, err = c.ask(ctx, "Contato"); err != nil {
		return err
	}
	e, err := c.cmd.Examiners.Create(ctx, cmd)
	if err != nil {
		return err
	}
	c.view.success(fmt.Sprintf("Examinador cadastrado com ID %d.", e.ID))
	return nil
}

func (c *Console) updateExaminer(ctx context.Context) error {
	examinerID, err := c.askID(ctx, "ID do examinador")
	if err != nil {
		return err
	}
	current, err := c.qry.Examiners.Get(ctx, examinerID)
	if err != nil {
		return err
	}

	cmd := command.UpdateExaminerCommand{ID: examinerID}
	if cmd.Name, err = c.askKeep(ctx, "Nome", current.Name); err != nil {
		return err
	}
	if cmd.Contact, err = c.askKeep(ctx, "Contato", current.Contact); err != nil {
		return err
	}
	if _, err := c.cmd.Examiners.Update(ctx, cmd); err != nil {
		return err
	}
	c.view.success("Examinador alterado.")
	return nil
}

func (c *Console) deleteExaminer(ctx context.Context) error {
	examinerID, err := c.askID(ctx, "ID do examinador")
	if err != nil {
		return err
	}
	if ok, err := c.confirmDelete(ctx, fmt.Sprintf("examinador %d", examinerID)); err != nil || !ok {
		return err
	}
	if err := c.cmd.Examiners.Delete(ctx, examinerID); err != nil {
		return err
	}
	c.view.success("Examinador excluído.")
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DANCE STYLES
// ══════════════════════════════════════════════════════════════════════════════

func (c *Console) styleMenu() []menuItem {
	return []menuItem{
		c.act("1", "Listar", "style.list", c.listStyles),
		c.act("2", "Buscar por nome", "style.search", c.searchStyles),
		c.act("3", "Cadastrar", "style.create", c.createStyle),
		c.act("4", "Alterar", "style.update", c.updateStyle),
		c.act("5", "Excluir", "style.delete", c.deleteStyle),
		c.act("6", "Parâmetros do estilo", "style.parameters", c.parametersOfStyle),
	}
}

func (c *Console) listStyles(ctx context.Context) error {
	list, err := c.qry.Styles.List(ctx)
	if err != nil {
		return err
	}
	c.view.styles(list)
	return nil
}

func (c *Console) searchStyles(ctx context.Context) error {
	name, err := c.ask(ctx, "Nome (ou parte)")
	if err != nil {
		return err
	}
	list, err := c.qry.Styles.Search(ctx, name)
	if err != nil {
		return err
	}
	c.view.styles(list)
	return nil
}

func (c *Console) createStyle(ctx context.Context) error {
	name, err := c.ask(ctx, "Nome")
	if err != nil {
		return err
	}
	s, err := c.cmd.Styles.Create(ctx, command.CreateStyleCommand{Name: name})
	if err != nil {
		return err
	}
	c.view.success(fmt.Sprintf("Estilo cadastrado com ID %d.", s.ID))
	return nil
}

func (c *Console) updateStyle(ctx context.Context) error {
	styleID, err := c.askID(ctx, "ID do estilo")
	if err != nil {
		return err
	}
	current, err := c.qry.Styles.Get(ctx, styleID)
	if err != nil {
		return err
	}
	name, err := c.askKeep(ctx, "Nome", current.Name)
	if err != nil {
		return err
	}
	if _, err := c.cmd.Styles.Update(ctx, command.UpdateStyleCommand{ID: styleID, Name: name}); err != nil {
		return err
	}
	c.view.success("Estilo alterado.")
	return nil
}

func (c *Console) deleteStyle(ctx context.Context) error {
	styleID, err := c.askID(ctx, "ID do estilo")
	if err != nil {
		return err
	}
	if ok, err := c.confirmDelete(ctx, fmt.Sprintf("estilo %d", styleID)); err != nil || !ok {
		return err
	}
	if err := c.cmd.Styles.Delete(ctx, styleID); err != nil {
		return err
	}
	c.view.success("Estilo excluído.")
	return nil
}

func (c *Console) parametersOfStyle(ctx context.Context) error {
	styleID, err := c.askID(ctx, "ID do estilo")
	if err != nil {
		return err
	}
	if _, err := c.qry.Styles.Get(ctx, styleID); err != nil {
		return err
	}
	list, err := c.qry.Parameters.ParametersOf(ctx, styleID)
	if err != nil {
		return err
	}
	c.view.parameters(list)
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// EVENTS
// ══════════════════════════════════════════════════════════════════════════════

func (c *Console) eventMenu() []menuItem {
	return []menuItem{
		c.act("1", "Listar", "event.list", c.listEvents),
		c.act("2", "Buscar por nome", "event.search", c.searchEvents),
		c.act("3", "Cadastrar", "event.create", c.createEvent),
		c.act("4", "Alterar", "event.update", c.updateEvent),
		c.act("5", "Excluir", "event.delete", c.deleteEvent),
	}
}

func (c *Console) listEvents(ctx context.Context) error {
	list, err := c.qry.Events.List(ctx)
	if err != nil {
		return err
	}
	c.view.events(list)
	return nil
}

func (c *Console) searchEvents(ctx context.Context) error {
	name, err := c.ask(ctx, "Nome (ou parte)")
	if err != nil {
		return err
	}
	list, err := c.qry.Events.Search(ctx, name)
	if err != nil {
		return err
	}
	c.view.events(list)
	return nil
}

func (c *Console) createEvent(ctx context.Context) error {
	var cmd command.CreateEventCommand
	var err error
	if cmd.Name, err = c.ask(ctx, "Nome"); err != nil {
		return err
	}
	if cmd.Date, err = c.askDate(ctx, "Data"); err != nil {
		return err
	}
	if cmd.Honoree, err = c.ask(ctx, "Homenageado (opcional)"); err != nil {
		return err
	}
	e, err := c.cmd.Events.Create(ctx, cmd)
	if err != nil {
		return err
	}
	c.view.success(fmt.Sprintf("Evento cadastrado com ID %d para %s.", e.ID, timeutil.FormatLong(e.Date)))
	return nil
}

func (c *Console) updateEvent(ctx context.Context) error {
	eventID, err := c.askID(ctx, "ID do evento")
	if err != nil {
		return err
	}
	current, err := c.qry.Events.Get(ctx, eventID)
	if err != nil {
		return err
	}

	cmd := command.UpdateEventCommand{ID: eventID}
	if cmd.Name, err = c.askKeep(ctx, "Nome", current.Name); err != nil {
		return err
	}
	if cmd.Date, err = c.askOptionalDate(ctx, "Data ["+current.Date+"] (Enter mantém)"); err != nil {
		return err
	}
	if cmd.Honoree, err = c.askKeep(ctx, "Homenageado", current.Honoree); err != nil {
		return err
	}
	if _, err := c.cmd.Events.Update(ctx, cmd); err != nil {
		return err
	}
	c.view.success("Evento alterado.")
	return nil
}

func (c *Console) deleteEvent(ctx context.Context) error {
	eventID, err := c.askID(ctx, "ID do evento")
	if err != nil {
		return err
	}
	if ok, err := c.confirmDelete(ctx, fmt.Sprintf("evento %d", eventID)); err != nil || !ok {
		return err
	}
	if err := c.cmd.Events.Delete(ctx, eventID); err != nil {
		return err
	}
	c.view.success("Evento excluído.")
	return nil
}
