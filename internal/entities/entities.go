// Package entities holds the immutable snapshot of agents, tasks, columns and
// feed events the dashboard is built from, with lookup indices.
package entities

import (
	"github.com/fentz26/missionctl/internal/models"
	"github.com/fentz26/missionctl/internal/seed"
)

// Store is a read-only snapshot. Nothing mutates it after New returns.
type Store struct {
	agents  []models.Agent
	tasks   []models.Task
	columns []models.Column
	events  []models.FeedEvent
	tabs    []models.Tab

	agentIdx  map[string]int
	taskIdx   map[string]int
	columnIdx map[string]int
	tabIdx    map[string]int
	terminal  string
}

// New builds a snapshot from seed data. Input is assumed well formed; call
// seed.Validate beforehand for fail-fast loading.
func New(s *seed.Seed) *Store {
	st := &Store{
		agents:    s.AgentList(),
		tasks:     cloneTasks(s.Tasks),
		columns:   append([]models.Column(nil), s.Columns...),
		events:    append([]models.FeedEvent(nil), s.Feed...),
		tabs:      cloneTabs(s.Tabs),
		agentIdx:  make(map[string]int, len(s.Agents)),
		taskIdx:   make(map[string]int, len(s.Tasks)),
		columnIdx: make(map[string]int, len(s.Columns)),
		tabIdx:    make(map[string]int, len(s.Tabs)),
	}

	for i, a := range st.agents {
		if _, dup := st.agentIdx[a.ID]; !dup {
			st.agentIdx[a.ID] = i
		}
	}
	for i, t := range st.tasks {
		if _, dup := st.taskIdx[t.ID]; !dup {
			st.taskIdx[t.ID] = i
		}
	}
	for i, c := range st.columns {
		if _, dup := st.columnIdx[c.ID]; !dup {
			st.columnIdx[c.ID] = i
		}
		if c.Terminal && st.terminal == "" {
			st.terminal = c.ID
		}
	}
	if st.terminal == "" && len(st.columns) > 0 {
		st.terminal = st.columns[len(st.columns)-1].ID
	}
	for i, tab := range st.tabs {
		if _, dup := st.tabIdx[tab.Name]; !dup {
			st.tabIdx[tab.Name] = i
		}
	}
	return st
}

// Agents returns all agents in seed order.
func (s *Store) Agents() []models.Agent {
	return append([]models.Agent(nil), s.agents...)
}

// Agent looks up an agent by id.
func (s *Store) Agent(id string) (models.Agent, bool) {
	i, ok := s.agentIdx[id]
	if !ok {
		return models.Agent{}, false
	}
	return s.agents[i], true
}

// AgentName resolves an assignee id to a display name, or "" when unresolved.
func (s *Store) AgentName(id string) string {
	a, _ := s.Agent(id)
	return a.Name
}

// Tasks returns the seeded tasks with their initial columns.
func (s *Store) Tasks() []models.Task {
	return cloneTasks(s.tasks)
}

// Task looks up a seeded task by id.
func (s *Store) Task(id string) (models.Task, bool) {
	i, ok := s.taskIdx[id]
	if !ok {
		return models.Task{}, false
	}
	t := s.tasks[i]
	t.Tags = append([]string(nil), t.Tags...)
	return t, true
}

// Columns returns the declared columns in display order.
func (s *Store) Columns() []models.Column {
	return append([]models.Column(nil), s.columns...)
}

// HasColumn reports whether id is a declared column.
func (s *Store) HasColumn(id string) bool {
	_, ok := s.columnIdx[id]
	return ok
}

// ColumnIndex returns the display position of a column, or -1.
func (s *Store) ColumnIndex(id string) int {
	i, ok := s.columnIdx[id]
	if !ok {
		return -1
	}
	return i
}

// TerminalColumn returns the column whose tasks are no longer active.
func (s *Store) TerminalColumn() string {
	return s.terminal
}

// Events returns the feed, newest first, in seed order.
func (s *Store) Events() []models.FeedEvent {
	return append([]models.FeedEvent(nil), s.events...)
}

// Tabs returns the declared feed tabs in display order.
func (s *Store) Tabs() []models.Tab {
	return cloneTabs(s.tabs)
}

// Tab looks up a feed tab by name.
func (s *Store) Tab(name string) (models.Tab, bool) {
	i, ok := s.tabIdx[name]
	if !ok {
		return models.Tab{}, false
	}
	tab := s.tabs[i]
	tab.Types = append([]models.EventType(nil), tab.Types...)
	return tab, true
}

func cloneTasks(in []models.Task) []models.Task {
	out := make([]models.Task, len(in))
	for i, t := range in {
		t.Tags = append([]string(nil), t.Tags...)
		out[i] = t
	}
	return out
}

func cloneTabs(in []models.Tab) []models.Tab {
	out := make([]models.Tab, len(in))
	for i, tab := range in {
		tab.Types = append([]models.EventType(nil), tab.Types...)
		out[i] = tab
	}
	return out
}
