package tui

import (
	"strings"
	"testing"

	"github.com/fentz26/missionctl/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedEditor(t *testing.T, id string) (*editor, string) {
	t.Helper()
	detail, ok := seed.Default().AgentDetail(id)
	require.True(t, ok)
	require.Contains(t, detail.SystemInstructions, "\n")

	e := newEditor(id)
	e.load(detail)
	return e, detail.SystemInstructions
}

func TestEditor_MultiLineInstructionsCleanAfterLoad(t *testing.T) {
	e, instructions := loadedEditor(t, "jarvis")

	assert.False(t, e.dirty())
	assert.Equal(t, instructions, e.instructions.Value())
}

func TestEditor_RoleEditLeavesInstructionsOut(t *testing.T) {
	e, _ := loadedEditor(t, "jarvis")

	e.update(key("tab"))
	require.Equal(t, fieldRole, e.focus)
	e.update(key("!"))

	u := e.changes()
	require.NotNil(t, u.Role)
	assert.Equal(t, "Squad Lead!", *u.Role)
	assert.Nil(t, u.Name)
	assert.Nil(t, u.SystemInstructions)
	assert.Nil(t, u.Status)
}

func TestEditor_InstructionsKeepLineBreaks(t *testing.T) {
	e, instructions := loadedEditor(t, "jarvis")

	e.setFocus(fieldInstructions)
	e.update(key("enter"))
	e.update(key("z"))

	u := e.changes()
	require.NotNil(t, u.SystemInstructions)
	assert.Equal(t, strings.Count(instructions, "\n")+1, strings.Count(*u.SystemInstructions, "\n"))
	assert.True(t, strings.HasSuffix(*u.SystemInstructions, "z"))

	e.update(key("down"))
	assert.Equal(t, fieldInstructions, e.focus, "down moves the cursor, not the focus")
	e.update(key("tab"))
	assert.Equal(t, fieldStatus, e.focus)
}
