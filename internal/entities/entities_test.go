package entities

import (
	"testing"

	"github.com/fentz26/missionctl/internal/models"
	"github.com/fentz26/missionctl/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLookups(t *testing.T) {
	st := New(seed.Default())

	a, ok := st.Agent("jarvis")
	require.True(t, ok)
	assert.Equal(t, "Squad Lead", a.Role)
	assert.Equal(t, "Jarvis", st.AgentName("jarvis"))
	assert.Equal(t, "", st.AgentName("ghost"))

	_, ok = st.Task("t1")
	assert.True(t, ok)
	_, ok = st.Task("missing")
	assert.False(t, ok)

	assert.True(t, st.HasColumn("review"))
	assert.False(t, st.HasColumn("icebox"))
	assert.Equal(t, 0, st.ColumnIndex("backlog"))
	assert.Equal(t, -1, st.ColumnIndex("icebox"))
	assert.Equal(t, "done", st.TerminalColumn())

	tab, ok := st.Tab("Decisions")
	require.True(t, ok)
	assert.Equal(t, []models.EventType{models.EventDecision}, tab.Types)
}

func TestStoreIsImmutable(t *testing.T) {
	st := New(seed.Default())

	tasks := st.Tasks()
	tasks[0].Column = "done"
	tasks[0].Tags[0] = "mutated"

	orig, _ := st.Task(tasks[0].ID)
	assert.NotEqual(t, "mutated", orig.Tags[0])
	assert.Equal(t, seed.Default().Tasks[0].Column, orig.Column)

	agents := st.Agents()
	agents[0].Name = "Changed"
	a, _ := st.Agent(agents[0].ID)
	assert.NotEqual(t, "Changed", a.Name)
}

func TestTerminalColumnDefaultsToLast(t *testing.T) {
	s := &seed.Seed{
		Columns: []models.Column{{ID: "todo"}, {ID: "shipped"}},
	}
	assert.Equal(t, "shipped", New(s).TerminalColumn())
}
