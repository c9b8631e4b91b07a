package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeedIsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	assert.Len(t, s.Agents, 10)
	assert.Equal(t, "backlog", s.Columns[0].ID)
	assert.True(t, s.Columns[len(s.Columns)-1].Terminal)
	assert.Equal(t, "All", s.Tabs[0].Name)
	assert.NotEmpty(t, s.Mission)
	assert.Equal(t, 7, s.Standup.Total())
}

func TestLoad_MissingFileFallsBackToDefault(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Len(t, s.Agents, len(Default().Agents))
}

func TestLoad_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("agents: [this is: not valid"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_CustomFile(t *testing.T) {
	doc := `
columns:
  - id: todo
    name: Todo
  - id: done
    name: Done
tabs:
  - name: All
agents:
  - id: a1
    name: Ada
    role: Dev
    status: WORKING
tasks:
  - id: x
    title: Something
    assignee_id: a1
    column: todo
`
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, s.Validate())
	assert.Equal(t, "Ada", s.AgentList()[0].Name)

	d, ok := s.AgentDetail("a1")
	require.True(t, ok)
	assert.Equal(t, "Dev", d.Role)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Seed)
	}{
		{"undeclared column", func(s *Seed) { s.Tasks[0].Column = "icebox" }},
		{"unresolved assignee", func(s *Seed) { s.Tasks[0].AssigneeID = "ghost" }},
		{"duplicate task", func(s *Seed) { s.Tasks[1].ID = s.Tasks[0].ID }},
		{"duplicate agent", func(s *Seed) { s.Agents[1].ID = s.Agents[0].ID }},
		{"unknown event type", func(s *Seed) { s.Feed[0].Type = "tweet" }},
		{"no columns", func(s *Seed) { s.Columns = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidSeed)
		})
	}
}
