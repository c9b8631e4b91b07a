// Package store provides SQLite-backed persistence for agent details,
// status checks and the audit trail.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fentz26/missionctl/internal/models"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrAgentNotFound indicates the id is neither stored nor seeded.
var ErrAgentNotFound = errors.New("agent not found")

// maxStatusChecks bounds ListStatusChecks.
const maxStatusChecks = 1000

// Store provides access to the missionctl SQLite database.
type Store struct {
	db   *sql.DB
	seed []models.AgentDetail
}

// New creates a new Store and runs migrations. seedAgents populate the
// agents table on first read.
func New(dbPath string, seedAgents []models.AgentDetail) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, seed: seedAgents}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate runs idempotent schema migrations.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS agents (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		badge TEXT,
		badge_color TEXT,
		status TEXT NOT NULL,
		icon TEXT,
		llm_provider TEXT,
		llm_model TEXT,
		system_instructions TEXT,
		prompt_templates TEXT,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS status_checks (
		id TEXT PRIMARY KEY,
		client_name TEXT NOT NULL,
		timestamp DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS pdr (
		id TEXT PRIMARY KEY,
		action TEXT NOT NULL,
		inputs_hash TEXT NOT NULL,
		outcome TEXT NOT NULL,
		target_id TEXT,
		details TEXT,
		timestamp DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_agents_position ON agents(position);
	CREATE INDEX IF NOT EXISTS idx_pdr_target_id ON pdr(target_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// --- Agent Operations ---

const agentColumns = `id, name, role, badge, badge_color, status, icon, llm_provider, llm_model, system_instructions, prompt_templates`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAgent(row rowScanner) (*models.AgentDetail, error) {
	a := &models.AgentDetail{}
	var badge, badgeColor, icon, provider, model, instructions, templates sql.NullString
	if err := row.Scan(&a.ID, &a.Name, &a.Role, &badge, &badgeColor, &a.Status, &icon, &provider, &model, &instructions, &templates); err != nil {
		return nil, err
	}
	a.Badge = badge.String
	a.BadgeColor = models.BadgeColor(badgeColor.String)
	a.Icon = icon.String
	a.LLMProvider = provider.String
	a.LLMModel = model.String
	a.SystemInstructions = instructions.String
	a.PromptTemplates = []models.PromptTemplate{}
	if templates.Valid && templates.String != "" {
		if err := json.Unmarshal([]byte(templates.String), &a.PromptTemplates); err != nil {
			return nil, fmt.Errorf("decode prompt templates: %w", err)
		}
	}
	if a.PromptTemplates == nil {
		a.PromptTemplates = []models.PromptTemplate{}
	}
	return a, nil
}

func (s *Store) seedIndex(id string) int {
	for i, a := range s.seed {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func insertAgent(tx *sql.Tx, position int, a models.AgentDetail) error {
	templates, err := json.Marshal(a.PromptTemplates)
	if err != nil {
		return fmt.Errorf("encode prompt templates: %w", err)
	}
	_, err = tx.Exec(
		`INSERT OR IGNORE INTO agents (id, position, name, role, badge, badge_color, status, icon, llm_provider, llm_model, system_instructions, prompt_templates, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, position, a.Name, a.Role, a.Badge, a.BadgeColor, a.Status, a.Icon,
		a.LLMProvider, a.LLMModel, a.SystemInstructions, string(templates), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert agent: %w", err)
	}
	return nil
}

// ListAgents returns all stored agents in seed order. An empty table is
// populated from the seed first.
func (s *Store) ListAgents() ([]models.AgentDetail, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM agents`).Scan(&n); err != nil {
		return nil, fmt.Errorf("count agents: %w", err)
	}
	if n == 0 && len(s.seed) > 0 {
		if err := s.seedAgents(); err != nil {
			return nil, err
		}
	}

	rows, err := s.db.Query(`SELECT ` + agentColumns + ` FROM agents ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}
	defer rows.Close()

	agents := []models.AgentDetail{}
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		agents = append(agents, *a)
	}
	return agents, rows.Err()
}

func (s *Store) seedAgents() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, a := range s.seed {
		if err := insertAgent(tx, i, a); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetAgent retrieves an agent by ID. A seeded agent missing from the table
// is inserted on first access.
func (s *Store) GetAgent(id string) (*models.AgentDetail, error) {
	a, err := scanAgent(s.db.QueryRow(`SELECT `+agentColumns+` FROM agents WHERE id = ?`, id))
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("query agent: %w", err)
	}

	i := s.seedIndex(id)
	if i < 0 {
		return nil, ErrAgentNotFound
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()
	if err := insertAgent(tx, i, s.seed[i]); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	a, err = scanAgent(s.db.QueryRow(`SELECT `+agentColumns+` FROM agents WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("query agent: %w", err)
	}
	return a, nil
}

// UpdateAgent applies the non-nil fields of u and returns the stored record.
func (s *Store) UpdateAgent(id string, u models.AgentUpdate) (*models.AgentDetail, error) {
	a, err := s.GetAgent(id)
	if err != nil {
		return nil, err
	}
	if u.IsEmpty() {
		return a, nil
	}

	if u.Name != nil {
		a.Name = *u.Name
	}
	if u.Role != nil {
		a.Role = *u.Role
	}
	if u.LLMProvider != nil {
		a.LLMProvider = *u.LLMProvider
	}
	if u.LLMModel != nil {
		a.LLMModel = *u.LLMModel
	}
	if u.SystemInstructions != nil {
		a.SystemInstructions = *u.SystemInstructions
	}
	if u.PromptTemplates != nil {
		a.PromptTemplates = u.PromptTemplates
	}
	if u.Status != nil {
		a.Status = *u.Status
	}

	templates, err := json.Marshal(a.PromptTemplates)
	if err != nil {
		return nil, fmt.Errorf("encode prompt templates: %w", err)
	}
	_, err = s.db.Exec(
		`UPDATE agents SET name = ?, role = ?, status = ?, llm_provider = ?, llm_model = ?, system_instructions = ?, prompt_templates = ?, updated_at = ? WHERE id = ?`,
		a.Name, a.Role, a.Status, a.LLMProvider, a.LLMModel, a.SystemInstructions, string(templates), time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update agent: %w", err)
	}
	return a, nil
}

// --- Status Check Operations ---

// CreateStatusCheck records a client heartbeat.
func (s *Store) CreateStatusCheck(clientName string) (*models.StatusCheck, error) {
	check := &models.StatusCheck{
		ID:         uuid.New().String(),
		ClientName: clientName,
		Timestamp:  time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO status_checks (id, client_name, timestamp) VALUES (?, ?, ?)`,
		check.ID, check.ClientName, check.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert status check: %w", err)
	}
	return check, nil
}

// ListStatusChecks returns recorded heartbeats, oldest first.
func (s *Store) ListStatusChecks() ([]models.StatusCheck, error) {
	rows, err := s.db.Query(
		`SELECT id, client_name, timestamp FROM status_checks ORDER BY timestamp ASC, rowid ASC LIMIT ?`,
		maxStatusChecks,
	)
	if err != nil {
		return nil, fmt.Errorf("query status checks: %w", err)
	}
	defer rows.Close()

	checks := []models.StatusCheck{}
	for rows.Next() {
		var c models.StatusCheck
		if err := rows.Scan(&c.ID, &c.ClientName, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("scan status check: %w", err)
		}
		checks = append(checks, c)
	}
	return checks, rows.Err()
}

// --- PDR Operations ---

// WritePDR writes a Process Decision Record.
func (s *Store) WritePDR(action, inputsHash, outcome, targetID, details string) (*models.PDREntry, error) {
	now := time.Now().UTC()
	pdr := &models.PDREntry{
		ID:         uuid.New().String(),
		Action:     action,
		InputsHash: inputsHash,
		Outcome:    outcome,
		TargetID:   targetID,
		Details:    details,
		Timestamp:  now,
	}

	_, err := s.db.Exec(
		`INSERT INTO pdr (id, action, inputs_hash, outcome, target_id, details, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		pdr.ID, pdr.Action, pdr.InputsHash, pdr.Outcome, pdr.TargetID, pdr.Details, pdr.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert pdr: %w", err)
	}
	return pdr, nil
}

// ListPDR returns the most recent audit records, newest first.
func (s *Store) ListPDR(limit int) ([]models.PDREntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, action, inputs_hash, outcome, target_id, details, timestamp FROM pdr ORDER BY timestamp DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query pdr: %w", err)
	}
	defer rows.Close()

	entries := []models.PDREntry{}
	for rows.Next() {
		var e models.PDREntry
		var targetID, details sql.NullString
		if err := rows.Scan(&e.ID, &e.Action, &e.InputsHash, &e.Outcome, &targetID, &details, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan pdr: %w", err)
		}
		e.TargetID = targetID.String
		e.Details = details.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
