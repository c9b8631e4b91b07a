// Package board implements the mission queue: a kanban board whose only
// mutable state is the column each task sits in.
package board

import (
	"strings"

	"github.com/fentz26/missionctl/internal/entities"
	"github.com/fentz26/missionctl/internal/models"
)

// ColumnView is one column of the board as the presentation layer renders it.
type ColumnView struct {
	Column models.Column `json:"column"`
	Tasks  []models.Task `json:"tasks"`
	Count  int           `json:"count"`
}

// Board holds the current column assignment of every seeded task.
type Board struct {
	store   *entities.Store
	tasks   []models.Task
	idx     map[string]int
	version uint64
}

// New creates a board from the snapshot's seeded tasks.
func New(store *entities.Store) *Board {
	tasks := store.Tasks()
	idx := make(map[string]int, len(tasks))
	for i, t := range tasks {
		if _, dup := idx[t.ID]; !dup {
			idx[t.ID] = i
		}
	}
	return &Board{store: store, tasks: tasks, idx: idx}
}

// MoveTask puts a task into a column. Unknown tasks and undeclared columns
// are ignored. It reports whether the board changed; moving a task into the
// column it already occupies succeeds without a change.
func (b *Board) MoveTask(taskID, columnID string) bool {
	i, ok := b.idx[taskID]
	if !ok || taskID == "" {
		return false
	}
	if !b.store.HasColumn(columnID) {
		return false
	}
	if b.tasks[i].Column == columnID {
		return false
	}
	b.tasks[i].Column = columnID
	b.version++
	return true
}

// Drop applies a drag payload carrying a task id to a column.
func (b *Board) Drop(payload, columnID string) bool {
	id := ParsePayload(payload)
	if id == "" {
		return false
	}
	return b.MoveTask(id, columnID)
}

// ParsePayload extracts the task id from a drag payload.
func ParsePayload(payload string) string {
	return strings.TrimSpace(payload)
}

// Version increases on every move that changed the board. Cached
// derivations keyed on it are stale once it changes.
func (b *Board) Version() uint64 {
	return b.version
}

// Task returns the current state of a task.
func (b *Board) Task(id string) (models.Task, bool) {
	i, ok := b.idx[id]
	if !ok {
		return models.Task{}, false
	}
	return cloneTask(b.tasks[i]), true
}

// Tasks returns every task in display order.
func (b *Board) Tasks() []models.Task {
	out := make([]models.Task, len(b.tasks))
	for i, t := range b.tasks {
		out[i] = cloneTask(t)
	}
	return out
}

// Column returns the tasks currently in a column, in display order.
func (b *Board) Column(columnID string) []models.Task {
	var out []models.Task
	for _, t := range b.tasks {
		if t.Column == columnID {
			out = append(out, cloneTask(t))
		}
	}
	return out
}

// TasksByColumn partitions the tasks by declared column. Every declared
// column has an entry, possibly empty.
func (b *Board) TasksByColumn() map[string][]models.Task {
	cols := b.store.Columns()
	out := make(map[string][]models.Task, len(cols))
	for _, c := range cols {
		out[c.ID] = []models.Task{}
	}
	for _, t := range b.tasks {
		if _, ok := out[t.Column]; ok {
			out[t.Column] = append(out[t.Column], cloneTask(t))
		}
	}
	return out
}

// Counts returns the number of tasks per declared column.
func (b *Board) Counts() map[string]int {
	cols := b.store.Columns()
	out := make(map[string]int, len(cols))
	for _, c := range cols {
		out[c.ID] = 0
	}
	for _, t := range b.tasks {
		if _, ok := out[t.Column]; ok {
			out[t.Column]++
		}
	}
	return out
}

// ActiveCount returns the number of tasks outside the terminal column.
func (b *Board) ActiveCount() int {
	terminal := b.store.TerminalColumn()
	n := 0
	for _, t := range b.tasks {
		if t.Column != terminal {
			n++
		}
	}
	return n
}

// ActiveByAssignee counts tasks outside the terminal column per assignee.
func (b *Board) ActiveByAssignee() map[string]int {
	terminal := b.store.TerminalColumn()
	out := make(map[string]int)
	for _, t := range b.tasks {
		if t.Column != terminal {
			out[t.AssigneeID]++
		}
	}
	return out
}

// Snapshot returns the columns in display order with their tasks and counts.
func (b *Board) Snapshot() []ColumnView {
	byCol := b.TasksByColumn()
	cols := b.store.Columns()
	out := make([]ColumnView, len(cols))
	for i, c := range cols {
		out[i] = ColumnView{Column: c, Tasks: byCol[c.ID], Count: len(byCol[c.ID])}
	}
	return out
}

func cloneTask(t models.Task) models.Task {
	t.Tags = append([]string(nil), t.Tags...)
	return t
}
