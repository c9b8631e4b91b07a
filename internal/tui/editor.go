package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fentz26/missionctl/internal/models"
)

const (
	fieldName = iota
	fieldRole
	fieldProvider
	fieldModel
	fieldInstructions
	fieldStatus
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Role", "Provider", "Model", "Instructions", "Status"}

// editor is the agent detail form. The loaded record is kept so unsaved
// edits can be detected.
type editor struct {
	agentID        string
	loading        bool
	saving         bool
	confirmDiscard bool
	err            string

	saved        models.AgentDetail
	inputs       [fieldInstructions]textinput.Model
	instructions textarea.Model
	status       models.AgentStatus
	focus        int

	// loadedInstructions is the textarea's rendering of the saved value,
	// which may differ from it byte for byte (tabs, CRLF).
	loadedInstructions string
}

func newEditor(agentID string) *editor {
	e := &editor{agentID: agentID, loading: true}
	for i := range e.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		ti.Width = 48
		e.inputs[i] = ti
	}

	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetWidth(64)
	ta.SetHeight(6)
	e.instructions = ta
	return e
}

// load replaces the form contents with a freshly fetched record.
func (e *editor) load(d models.AgentDetail) {
	e.loading = false
	e.saving = false
	e.confirmDiscard = false
	e.err = ""
	e.saved = d
	e.inputs[fieldName].SetValue(d.Name)
	e.inputs[fieldRole].SetValue(d.Role)
	e.inputs[fieldProvider].SetValue(d.LLMProvider)
	e.inputs[fieldModel].SetValue(d.LLMModel)
	e.instructions.SetValue(d.SystemInstructions)
	e.loadedInstructions = e.instructions.Value()
	e.status = d.Status
	e.setFocus(fieldName)
}

func (e *editor) setFocus(i int) {
	e.focus = (i + fieldCount) % fieldCount
	for j := range e.inputs {
		if j == e.focus {
			e.inputs[j].Focus()
		} else {
			e.inputs[j].Blur()
		}
	}
	if e.focus == fieldInstructions {
		e.instructions.Focus()
	} else {
		e.instructions.Blur()
	}
}

func (e *editor) toggleStatus() {
	if e.status == models.AgentStatusWorking {
		e.status = models.AgentStatusIdle
	} else {
		e.status = models.AgentStatusWorking
	}
}

// changes returns the edited fields only.
func (e *editor) changes() models.AgentUpdate {
	var u models.AgentUpdate
	changed := func(i int, orig string) *string {
		v := e.inputs[i].Value()
		if v == orig {
			return nil
		}
		return &v
	}
	u.Name = changed(fieldName, e.saved.Name)
	u.Role = changed(fieldRole, e.saved.Role)
	u.LLMProvider = changed(fieldProvider, e.saved.LLMProvider)
	u.LLMModel = changed(fieldModel, e.saved.LLMModel)
	if v := e.instructions.Value(); v != e.loadedInstructions {
		u.SystemInstructions = &v
	}
	if e.status != e.saved.Status {
		st := e.status
		u.Status = &st
	}
	return u
}

func (e *editor) dirty() bool {
	return !e.loading && !e.changes().IsEmpty()
}

// fieldView renders the value of field i.
func (e *editor) fieldView(i int) string {
	if i == fieldInstructions {
		return e.instructions.View()
	}
	return e.inputs[i].View()
}

func (e *editor) validate() string {
	if strings.TrimSpace(e.inputs[fieldName].Value()) == "" {
		return "name must not be blank"
	}
	return ""
}

// update routes a key to the form. Keys handled by the app (save, close)
// never reach here. Inside the instructions box up, down and enter edit
// the text, so only tab leaves it.
func (e *editor) update(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch {
	case key == "tab", key == "down" && e.focus != fieldInstructions:
		e.setFocus(e.focus + 1)
		return nil
	case key == "shift+tab", key == "up" && e.focus != fieldInstructions:
		e.setFocus(e.focus - 1)
		return nil
	}

	switch e.focus {
	case fieldStatus:
		switch key {
		case " ", "enter", "left", "right":
			e.toggleStatus()
		}
		return nil
	case fieldInstructions:
		var cmd tea.Cmd
		e.instructions, cmd = e.instructions.Update(msg)
		return cmd
	}

	var cmd tea.Cmd
	e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
	return cmd
}
