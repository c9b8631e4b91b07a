package audit

import (
	"testing"

	"github.com/fentz26/missionctl/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memWriter struct {
	entries []models.PDREntry
}

func (m *memWriter) WritePDR(action, inputsHash, outcome, targetID, details string) (*models.PDREntry, error) {
	e := models.PDREntry{Action: action, InputsHash: inputsHash, Outcome: outcome, TargetID: targetID, Details: details}
	m.entries = append(m.entries, e)
	return &e, nil
}

func TestRecord(t *testing.T) {
	w := &memWriter{}
	p := NewPDRWriter(w)

	_, err := p.Record("board.move", map[string]string{"task_id": "t1", "column": "done"}, OutcomeSuccess, "t1", "")
	require.NoError(t, err)

	require.Len(t, w.entries, 1)
	assert.Equal(t, "board.move", w.entries[0].Action)
	assert.Len(t, w.entries[0].InputsHash, 64)
}

func TestHashInputs(t *testing.T) {
	a := HashInputs(map[string]string{"a": "1", "b": "2"})
	b := HashInputs(map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, HashInputs(map[string]string{"a": "2"}))
	assert.Equal(t, "hash_error", HashInputs(func() {}))
}
