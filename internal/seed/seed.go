// Package seed loads the initial dashboard data: agents, columns, tasks,
// feed events and feed tabs.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/fentz26/missionctl/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultSeed []byte

// Seed is the read-only data the dashboard is built from.
type Seed struct {
	Mission string               `yaml:"mission"`
	Agents  []models.AgentDetail `yaml:"agents"`
	Columns []models.Column      `yaml:"columns"`
	Tasks   []models.Task        `yaml:"tasks"`
	Feed    []models.FeedEvent   `yaml:"feed"`
	Tabs    []models.Tab         `yaml:"tabs"`
	Standup models.Standup       `yaml:"standup"`
}

// ErrInvalidSeed is wrapped by every error returned from Validate.
var ErrInvalidSeed = errors.New("invalid seed")

// Default returns the embedded seed.
func Default() *Seed {
	s, err := Parse(defaultSeed)
	if err != nil {
		panic(fmt.Sprintf("embedded seed: %v", err))
	}
	return s
}

// Parse decodes a YAML seed document.
func Parse(data []byte) (*Seed, error) {
	s := &Seed{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	return s, nil
}

// Load reads a seed from path. An empty path or a missing file yields the
// embedded default.
func Load(path string) (*Seed, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return Parse(data)
}

// AgentList returns the dashboard projection of the seeded agents.
func (s *Seed) AgentList() []models.Agent {
	out := make([]models.Agent, len(s.Agents))
	for i, a := range s.Agents {
		out[i] = a.Agent
	}
	return out
}

// AgentDetail returns the seeded detail record for id.
func (s *Seed) AgentDetail(id string) (models.AgentDetail, bool) {
	for _, a := range s.Agents {
		if a.ID == id {
			return a, true
		}
	}
	return models.AgentDetail{}, false
}

// Validate checks referential integrity. The dashboard itself tolerates
// unresolved references (they render blank), so this is only called when
// strict loading is requested.
func (s *Seed) Validate() error {
	if len(s.Columns) == 0 {
		return fmt.Errorf("%w: no columns declared", ErrInvalidSeed)
	}
	if len(s.Tabs) == 0 {
		return fmt.Errorf("%w: no feed tabs declared", ErrInvalidSeed)
	}

	agents := make(map[string]bool, len(s.Agents))
	for _, a := range s.Agents {
		if a.ID == "" {
			return fmt.Errorf("%w: agent with empty id", ErrInvalidSeed)
		}
		if agents[a.ID] {
			return fmt.Errorf("%w: duplicate agent id %q", ErrInvalidSeed, a.ID)
		}
		agents[a.ID] = true
	}

	columns := make(map[string]bool, len(s.Columns))
	for _, c := range s.Columns {
		if columns[c.ID] {
			return fmt.Errorf("%w: duplicate column id %q", ErrInvalidSeed, c.ID)
		}
		columns[c.ID] = true
	}

	tasks := make(map[string]bool, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.ID == "" {
			return fmt.Errorf("%w: task with empty id", ErrInvalidSeed)
		}
		if tasks[t.ID] {
			return fmt.Errorf("%w: duplicate task id %q", ErrInvalidSeed, t.ID)
		}
		tasks[t.ID] = true
		if !columns[t.Column] {
			return fmt.Errorf("%w: task %q is in undeclared column %q", ErrInvalidSeed, t.ID, t.Column)
		}
		if !agents[t.AssigneeID] {
			return fmt.Errorf("%w: task %q has unresolved assignee %q", ErrInvalidSeed, t.ID, t.AssigneeID)
		}
	}

	events := make(map[string]bool, len(s.Feed))
	for _, e := range s.Feed {
		if events[e.ID] {
			return fmt.Errorf("%w: duplicate event id %q", ErrInvalidSeed, e.ID)
		}
		events[e.ID] = true
		if !e.Type.Valid() {
			return fmt.Errorf("%w: event %q has unknown type %q", ErrInvalidSeed, e.ID, e.Type)
		}
	}

	tabs := make(map[string]bool, len(s.Tabs))
	for _, tab := range s.Tabs {
		if tabs[tab.Name] {
			return fmt.Errorf("%w: duplicate tab %q", ErrInvalidSeed, tab.Name)
		}
		tabs[tab.Name] = true
		for _, et := range tab.Types {
			if !et.Valid() {
				return fmt.Errorf("%w: tab %q filters unknown type %q", ErrInvalidSeed, tab.Name, et)
			}
		}
	}
	return nil
}
