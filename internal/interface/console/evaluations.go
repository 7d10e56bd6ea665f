package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/baiana/danceclub/internal/application/command"
	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/pkg/timeutil"
)

func (c *Console) evaluationMenu() []menuItem {
	return []menuItem{
		c.act("1", "Listar", "evaluation.list", c.listEvaluations),
		c.act("2", "Buscar por data", "evaluation.by_date", c.evaluationsByDate),
		c.act("3", "Listar por aluno", "evaluation.by_student", c.evaluationsByStudent),
		c.act("4", "Ver", "evaluation.get", c.showEvaluation),
		c.act("5", "Cadastrar", "evaluation.create", c.createEvaluation),
		c.act("6", "Alterar", "evaluation.update", c.updateEvaluation),
		c.act("7", "Excluir", "evaluation.delete", c.deleteEvaluation),
		c.act("8", "Lançar nota", "evaluation.add_item", c.addItem),
		c.act("9", "Remover nota", "evaluation.remove_item", c.removeItem),
	}
}

func (c *Console) listEvaluations(ctx context.Context) error {
	list, err := c.qry.Evaluations.List(ctx)
	if err != nil {
		return err
	}
	c.view.evaluations(list)
	return nil
}

func (c *Console) evaluationsByDate(ctx context.Context) error {
	day, err := c.askDate(ctx, "Data")
	if err != nil {
		return err
	}
	list, err := c.qry.Evaluations.ByDate(ctx, day)
	if err != nil {
		return err
	}
	c.view.info("Avaliações de " + timeutil.FormatLong(day) + ":")
	c.view.evaluations(list)
	return nil
}

func (c *Console) evaluationsByStudent(ctx context.Context) error {
	studentID, err := c.askID(ctx, "ID do aluno")
	if err != nil {
		return err
	}
	if _, err := c.qry.Students.Get(ctx, studentID); err != nil {
		return err
	}
	list, err := c.qry.Evaluations.ByStudent(ctx, studentID)
	if err != nil {
		return err
	}
	c.view.evaluations(list)
	return nil
}

func (c *Console) showEvaluation(ctx context.Context) error {
	evalID, err := c.askID(ctx, "ID da avaliação")
	if err != nil {
		return err
	}
	e, err := c.qry.Evaluations.Get(ctx, evalID)
	if err != nil {
		return err
	}
	c.view.evaluation(e)
	return nil
}

func (c *Console) createEvaluation(ctx context.Context) error {
	var cmd command.CreateEvaluationCommand
	var err error
	if cmd.Date, err = c.askDate(ctx, "Data"); err != nil {
		return err
	}
	if cmd.StudentID, err = c.askID(ctx, "ID do aluno"); err != nil {
		return err
	}
	if cmd.ExaminerID, err = c.askID(ctx, "ID do examinador"); err != nil {
		return err
	}
	if cmd.LevelID, err = c.askID(ctx, "ID do nível avaliado"); err != nil {
		return err
	}
	if cmd.EventID, err = c.askOptionalID(ctx, "ID do evento (Enter para nenhum)"); err != nil {
		return err
	}
	if cmd.Notes, err = c.ask(ctx, "Observações (opcional)"); err != nil {
		return err
	}

	e, err := c.cmd.Evaluations.Create(ctx, cmd)
	if err != nil {
		return err
	}
	c.view.success(fmt.Sprintf("Avaliação cadastrada com ID %d.", e.ID))
	return nil
}

func (c *Console) updateEvaluation(ctx context.Context) error {
	evalID, err := c.askID(ctx, "ID da avaliação")
	if err != nil {
		return err
	}
	current, err := c.qry.Evaluations.Get(ctx, evalID)
	if err != nil {
		return err
	}

	cmd := command.UpdateEvaluationCommand{ID: evalID}
	if cmd.Date, err = c.askOptionalDate(ctx, "Data ["+current.Date+"] (Enter mantém)"); err != nil {
		return err
	}
	if cmd.StudentID, err = c.askOptionalID(ctx, fmt.Sprintf("ID do aluno [%d] (Enter mantém)", current.StudentID)); err != nil {
		return err
	}
	if cmd.ExaminerID, err = c.askOptionalID(ctx, fmt.Sprintf("ID do examinador [%d] (Enter mantém)", current.ExaminerID)); err != nil {
		return err
	}
	if cmd.LevelID, err = c.askOptionalID(ctx, fmt.Sprintf("ID do nível [%d] (Enter mantém)", current.LevelID)); err != nil {
		return err
	}

	ev, err := c.ask(ctx, fmt.Sprintf("ID do evento [%s] (Enter mantém, \"-\" remove)", idText(current.EventID)))
	if err != nil {
		return err
	}
	switch strings.TrimSpace(ev) {
	case "":
	case "-":
		cmd.ClearEvent = true
	default:
		if cmd.EventID, err = shared.ParseID(ev); err != nil {
			return err
		}
	}

	notes, err := c.ask(ctx, "Observações ["+orDash(current.Notes)+"] (Enter mantém, \"-\" apaga)")
	if err != nil {
		return err
	}
	if notes == "-" {
		cmd.ClearNotes = true
	} else {
		cmd.Notes = notes
	}

	if _, err := c.cmd.Evaluations.Update(ctx, cmd); err != nil {
		return err
	}
	c.view.success("Avaliação alterada.")
	return nil
}

func (c *Console) deleteEvaluation(ctx context.Context) error {
	evalID, err := c.askID(ctx, "ID da avaliação")
	if err != nil {
		return err
	}
	if ok, err := c.confirmDelete(ctx, fmt.Sprintf("avaliação %d e suas notas", evalID)); err != nil || !ok {
		return err
	}
	if err := c.cmd.Evaluations.Delete(ctx, evalID); err != nil {
		return err
	}
	c.view.success("Avaliação excluída.")
	return nil
}

func (c *Console) addItem(ctx context.Context) error {
	var cmd command.AddItemCommand
	var err error
	if cmd.EvaluationID, err = c.askID(ctx, "ID da avaliação"); err != nil {
		return err
	}
	if cmd.ParameterID, err = c.askID(ctx, "ID do parâmetro"); err != nil {
		return err
	}
	if cmd.Score, err = c.askScore(ctx); err != nil {
		return err
	}

	it, err := c.cmd.Evaluations.AddItem(ctx, cmd)
	if err != nil {
		return err
	}
	c.view.success(fmt.Sprintf("Nota %s lançada para %q (item %d).", score(it.Score), it.ParameterName, it.ID))
	return nil
}

func (c *Console) removeItem(ctx context.Context) error {
	evalID, err := c.askID(ctx, "ID da avaliação")
	if err != nil {
		return err
	}
	items, err := c.qry.Evaluations.Items(ctx, evalID)
	if err != nil {
		return err
	}
	c.view.items(items)
	if len(items) == 0 {
		return nil
	}

	itemID, err := c.askID(ctx, "ID do item")
	if err != nil {
		return err
	}
	if ok, err := c.confirmDelete(ctx, fmt.Sprintf("item %d", itemID)); err != nil || !ok {
		return err
	}
	if err := c.cmd.Evaluations.RemoveItem(ctx, itemID); err != nil {
		return err
	}
	c.view.success("Nota removida.")
	return nil
}
