package view

import (
	"time"

	"github.com/somoscreators/taskboard/internal/domain/project"
	"github.com/somoscreators/taskboard/internal/domain/task"
)

// Export column sets.
var (
	ProjectColumns = []string{"Cliente", "Projeto", "Versão", "Data Início", "Data Fim", "Equipe", "Status"}
	TaskColumns    = []string{"Cliente", "Responsável", "Tarefa", "Tipo", "Versão", "Número", "Data Início", "Data Fim", "Equipe", "Status", "Tarefa Principal"}
)

// NoDataMessage is shown instead of writing an export with no rows.
const NoDataMessage = "Não há dados para exportar."

const (
	missingDate     = "-"
	defaultStatus   = "Em Andamento"
	projectFilename = "projetos_clientes"
	taskFilename    = "tarefas"
)

// Table is a fixed-column export with its suggested file name.
type Table struct {
	Header   []string   `json:"header"`
	Rows     [][]string `json:"rows"`
	Filename string     `json:"filename"`
}

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// TaskLookup resolves task numbers against the full collection.
type TaskLookup interface {
	ByNumber(number string) (task.Task, bool)
}

// ExportProjects renders one export row per project row.
func ExportProjects(rows []project.Row, prof Profile, now time.Time) Table {
	table := Table{
		Header:   append([]string(nil), ProjectColumns...),
		Rows:     make([][]string, 0, len(rows)),
		Filename: Filename(LevelProject, now),
	}
	for _, r := range rows {
		team := r.ExecutionGroup
		if team == "" {
			team = r.OwnerGroupName
		}
		table.Rows = append(table.Rows, []string{
			orDefault(r.ClientName, NotDefined),
			orDefault(r.Key, NoTitle),
			r.VersionDisplay,
			orDefault(task.FormatDate(r.FirstDate(prof.StartChain)), missingDate),
			orDefault(task.FormatDate(r.FirstDate(prof.EndChain)), missingDate),
			orDefault(team, NotDefined),
			orDefault(r.Status, defaultStatus),
		})
	}
	return table
}

// ExportTasks renders one export row per task. Parent titles are resolved
// through all, so a parent outside tasks is still named.
func ExportTasks(tasks []task.Task, all TaskLookup, now time.Time) Table {
	table := Table{
		Header:   append([]string(nil), TaskColumns...),
		Rows:     make([][]string, 0, len(tasks)),
		Filename: Filename(LevelTask, now),
	}
	for _, t := range tasks {
		typ := string(t.Type)
		if t.Type == task.TypeOther {
			typ = string(task.TypePrincipal)
		}
		parent := ""
		if t.ParentNumber != "" && all != nil {
			if p, ok := all.ByNumber(t.ParentNumber); ok {
				parent = orDefault(p.Title, p.Number)
			}
		}
		table.Rows = append(table.Rows, []string{
			orDefault(t.ClientName, NotDefined),
			orDefault(t.OwnerDisplayName, NotDefined),
			orDefault(t.Title, NoTitle),
			typ,
			t.VersionDisplay,
			t.Number,
			orDefault(task.FormatDate(t.Start), missingDate),
			orDefault(task.FormatDate(t.End), missingDate),
			orDefault(t.OwnerGroupName, NotDefined),
			t.Status,
			parent,
		})
	}
	return table
}

// Filename returns the export file name for a level on the given day.
func Filename(level Level, now time.Time) string {
	prefix := taskFilename
	if level == LevelProject {
		prefix = projectFilename
	}
	return prefix + "_" + now.Format("2006-01-02") + ".csv"
}
