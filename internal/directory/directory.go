// Package directory is the agent listing and the selection hand-off to the
// agent detail editor.
package directory

import (
	"github.com/fentz26/missionctl/internal/entities"
	"github.com/fentz26/missionctl/internal/models"
)

// SelectFunc receives the id of a selected agent. It runs synchronously on
// the caller's goroutine and must not block.
type SelectFunc func(agentID string)

// Directory lists agents and dispatches selections.
type Directory struct {
	agents   []models.Agent
	idx      map[string]int
	onSelect SelectFunc
	selected string
}

// New creates a directory over the snapshot's agents. onSelect may be nil.
func New(store *entities.Store, onSelect SelectFunc) *Directory {
	agents := store.Agents()
	idx := make(map[string]int, len(agents))
	for i, a := range agents {
		if _, dup := idx[a.ID]; !dup {
			idx[a.ID] = i
		}
	}
	return &Directory{agents: agents, idx: idx, onSelect: onSelect}
}

// Agents returns the agents in display order.
func (d *Directory) Agents() []models.Agent {
	return append([]models.Agent(nil), d.agents...)
}

// Agent looks up an agent by id.
func (d *Directory) Agent(id string) (models.Agent, bool) {
	i, ok := d.idx[id]
	if !ok {
		return models.Agent{}, false
	}
	return d.agents[i], true
}

// Len returns the number of agents.
func (d *Directory) Len() int {
	return len(d.agents)
}

// ActiveCount returns the number of agents currently working.
func (d *Directory) ActiveCount() int {
	n := 0
	for _, a := range d.agents {
		if a.Status == models.AgentStatusWorking {
			n++
		}
	}
	return n
}

// Select marks an agent as selected and notifies the editor. Unknown ids
// are ignored.
func (d *Directory) Select(id string) bool {
	if _, ok := d.idx[id]; !ok {
		return false
	}
	d.selected = id
	if d.onSelect != nil {
		d.onSelect(id)
	}
	return true
}

// Selected returns the id of the selected agent, or "" when the editor is
// closed.
func (d *Directory) Selected() string {
	return d.selected
}

// Close clears the selection.
func (d *Directory) Close() {
	d.selected = ""
}

// Apply replaces an agent with the record returned by the editor.
func (d *Directory) Apply(updated models.Agent) bool {
	i, ok := d.idx[updated.ID]
	if !ok {
		return false
	}
	d.agents[i] = updated
	return true
}
