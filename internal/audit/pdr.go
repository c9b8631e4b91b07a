// Package audit provides PDR (Process Decision Record) writing for the
// dashboard's state-mutating actions.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/fentz26/missionctl/internal/models"
)

// Outcomes recorded with every PDR.
const (
	OutcomeSuccess = "success"
	OutcomeNoop    = "noop"
	OutcomeError   = "error"
)

// Writer persists audit records.
type Writer interface {
	WritePDR(action, inputsHash, outcome, targetID, details string) (*models.PDREntry, error)
}

// PDRWriter writes Process Decision Records for audit trails.
type PDRWriter struct {
	w Writer
}

// NewPDRWriter creates a new PDR writer.
func NewPDRWriter(w Writer) *PDRWriter {
	return &PDRWriter{w: w}
}

// Record writes a PDR entry for a state-mutating action.
func (p *PDRWriter) Record(action string, inputs any, outcome, targetID, details string) (*models.PDREntry, error) {
	return p.w.WritePDR(action, HashInputs(inputs), outcome, targetID, details)
}

// HashInputs creates a SHA256 hash of the inputs for reproducibility.
func HashInputs(inputs any) string {
	data, err := json.Marshal(inputs)
	if err != nil {
		return "hash_error"
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
