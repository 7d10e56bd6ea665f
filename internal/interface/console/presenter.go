package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/baiana/danceclub/internal/application/query"
)

// ══════════════════════════════════════════════════════════════════════════════
// PRESENTER
// Formata menus, mensagens e tabelas no terminal.
// ══════════════════════════════════════════════════════════════════════════════

type presenter struct {
	out     io.Writer
	markers bool
}

func newPresenter(out io.Writer, markers bool) *presenter {
	return &presenter{out: out, markers: markers}
}

func (p *presenter) println(s string) {
	fmt.Fprintln(p.out, s)
}

// prompt escreve sem quebra de linha.
func (p *presenter) prompt(label string) {
	fmt.Fprint(p.out, label+" ")
}

func (p *presenter) banner() {
	p.println("══════════════════════════════════════")
	p.println("  Escola de Dança · Cadastro")
	p.println("══════════════════════════════════════")
}

func (p *presenter) menu(title string, items []menuItem, back string) {
	p.println("")
	p.println("── " + title + " ──")
	for _, it := range items {
		p.println(fmt.Sprintf("%s. %s", it.key, it.label))
	}
	p.println("0. " + back)
	p.prompt("Escolha uma opção:")
}

func (p *presenter) success(msg string) { p.status("[ok]", msg) }
func (p *presenter) failure(msg string) { p.status("[erro]", msg) }
func (p *presenter) info(msg string)    { p.status("[i]", msg) }

func (p *presenter) status(marker, msg string) {
	if p.markers {
		msg = marker + " " + msg
	}
	p.println(msg)
}

// ─────────────────────────────────────────────────────────────────────────────
// Tabelas
// ─────────────────────────────────────────────────────────────────────────────

// table imprime linhas alinhadas; lista vazia vira uma mensagem.
func (p *presenter) table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		p.info("Nenhum registro encontrado.")
		return
	}

	t := newTable(p.out)
	t.SetHeader(headers)
	t.AppendBulk(rows)
	t.Render()
}

// fields imprime pares rótulo/valor de um único registro.
func (p *presenter) fields(pairs ...string) {
	rows := make([][]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		rows = append(rows, []string{pairs[i] + ":", orDash(pairs[i+1])})
	}

	t := newTable(p.out)
	t.SetBorder(false)
	t.SetColumnSeparator("")
	t.AppendBulk(rows)
	t.Render()
}

// newTable devolve uma tabela sem quebra automática e alinhada à esquerda.
func newTable(out io.Writer) *tablewriter.Table {
	t := tablewriter.NewWriter(out)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(false)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}

func idText(v int64) string {
	if v == 0 {
		return "-"
	}
	return strconv.FormatInt(v, 10)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func score(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ─────────────────────────────────────────────────────────────────────────────
// Entidades
// ─────────────────────────────────────────────────────────────────────────────

func (p *presenter) levels(list []query.LevelDTO) {
	rows := make([][]string, 0, len(list))
	for _, l := range list {
		rows = append(rows, []string{idText(l.ID), l.Name})
	}
	p.table([]string{"ID", "NOME"}, rows)
}

func (p *presenter) students(list []query.StudentDTO) {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{idText(s.ID), s.Name, s.Contact, s.LevelName, s.Conduction, s.Status})
	}
	p.table([]string{"ID", "NOME", "CONTATO", "NÍVEL", "CONDUÇÃO", "SITUAÇÃO"}, rows)
}

func (p *presenter) student(s *query.StudentDTO) {
	p.fields(
		"ID", idText(s.ID),
		"Nome", s.Name,
		"Contato", s.Contact,
		"Nível", s.LevelName,
		"Condução", s.Conduction,
		"Situação", s.Status,
	)
}

func (p *presenter) examiners(list []query.ExaminerDTO) {
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		rows = append(rows, []string{idText(e.ID), e.Name, e.Contact})
	}
	p.table([]string{"ID", "NOME", "CONTATO"}, rows)
}

func (p *presenter) styles(list []query.StyleDTO) {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{idText(s.ID), s.Name})
	}
	p.table([]string{"ID", "NOME"}, rows)
}

func (p *presenter) events(list []query.EventDTO) {
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		rows = append(rows, []string{idText(e.ID), e.Date, e.Name, orDash(e.Honoree)})
	}
	p.table([]string{"ID", "DATA", "NOME", "HOMENAGEADO"}, rows)
}

func (p *presenter) parameters(list []query.ParameterDTO) {
	rows := make([][]string, 0, len(list))
	for _, prm := range list {
		rows = append(rows, []string{idText(prm.ID), prm.Name, prm.LevelName, prm.Conduction, orDash(prm.StyleName)})
	}
	p.table([]string{"ID", "NOME", "NÍVEL", "CONDUÇÃO", "ESTILO"}, rows)
}

func (p *presenter) parameter(prm *query.ParameterDTO) {
	names := make([]string, 0, len(prm.Styles))
	for _, s := range prm.Styles {
		names = append(names, s.Name)
	}
	p.fields(
		"ID", idText(prm.ID),
		"Nome", prm.Name,
		"Nível", prm.LevelName,
		"Condução", prm.Conduction,
		"Estilo principal", prm.StyleName,
		"Estilos vinculados", strings.Join(names, ", "),
	)
}

func (p *presenter) evaluations(list []query.EvaluationDTO) {
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		rows = append(rows, []string{idText(e.ID), e.Date, e.StudentName, e.ExaminerName, e.LevelName, orDash(e.EventName)})
	}
	p.table([]string{"ID", "DATA", "ALUNO", "EXAMINADOR", "NÍVEL", "EVENTO"}, rows)
}

func (p *presenter) evaluation(e *query.EvaluationDetailDTO) {
	p.fields(
		"ID", idText(e.ID),
		"Data", e.Date,
		"Aluno", e.StudentName,
		"Examinador", e.ExaminerName,
		"Nível", e.LevelName,
		"Evento", e.EventName,
		"Observações", e.Notes,
	)
	p.items(e.Items)
	if len(e.Items) > 0 {
		p.println("Média: " + score(e.Average))
	}
}

func (p *presenter) items(list []query.ItemDTO) {
	rows := make([][]string, 0, len(list))
	for _, it := range list {
		rows = append(rows, []string{idText(it.ID), it.ParameterName, score(it.Score)})
	}
	p.table([]string{"ITEM", "PARÂMETRO", "NOTA"}, rows)
}

func (p *presenter) users(list []query.UserDTO) {
	rows := make([][]string, 0, len(list))
	for _, u := range list {
		rows = append(rows, []string{idText(u.ID), u.Login, u.StudentName, u.RoleLabel})
	}
	p.table([]string{"ID", "LOGIN", "ALUNO", "PERFIL"}, rows)
}
