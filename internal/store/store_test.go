package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fentz26/missionctl/internal/models"
)

func seedAgents() []models.AgentDetail {
	return []models.AgentDetail{
		{
			Agent: models.Agent{ID: "jarvis", Name: "Jarvis", Role: "Squad Lead", Badge: "LEAD",
				BadgeColor: models.BadgeOrange, Status: models.AgentStatusWorking, Icon: "shield"},
			LLMProvider: "Anthropic",
			LLMModel:    "Claude Sonnet 4.5",
			PromptTemplates: []models.PromptTemplate{
				{Name: "Sprint Planning", Template: "{{backlog}}", Variables: []string{"backlog"}},
			},
		},
		{
			Agent:       models.Agent{ID: "wong", Name: "Wong", Role: "Documentation", Status: models.AgentStatusIdle},
			LLMProvider: "OpenAI",
		},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"), seedAgents())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	s, err := New(dbPath, nil)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	// Verify file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 2; i++ {
		s, err := New(dbPath, seedAgents())
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		if _, err := s.ListAgents(); err != nil {
			t.Fatalf("ListAgents %d: %v", i, err)
		}
		s.Close()
	}
}

func TestListAgents_SeedsEmptyTable(t *testing.T) {
	s := newTestStore(t)

	agents, err := s.ListAgents()
	if err != nil {
		t.Fatalf("ListAgents failed: %v", err)
	}
	if len(agents) != 2 {
		t.Fatalf("Expected 2 agents, got %d", len(agents))
	}
	if agents[0].ID != "jarvis" || agents[1].ID != "wong" {
		t.Errorf("Expected seed order, got %s, %s", agents[0].ID, agents[1].ID)
	}
	if len(agents[0].PromptTemplates) != 1 || agents[0].PromptTemplates[0].Variables[0] != "backlog" {
		t.Errorf("Prompt templates not round-tripped: %+v", agents[0].PromptTemplates)
	}
	if agents[1].PromptTemplates == nil {
		t.Error("PromptTemplates should be empty, not nil")
	}

	// Second call must not duplicate rows
	agents, err = s.ListAgents()
	if err != nil {
		t.Fatalf("ListAgents failed: %v", err)
	}
	if len(agents) != 2 {
		t.Errorf("Expected 2 agents after reseed check, got %d", len(agents))
	}
}

func TestGetAgent_LazySeed(t *testing.T) {
	s := newTestStore(t)

	a, err := s.GetAgent("wong")
	if err != nil {
		t.Fatalf("GetAgent failed: %v", err)
	}
	if a.Role != "Documentation" {
		t.Errorf("Expected role Documentation, got %s", a.Role)
	}

	// Table is no longer empty, so ListAgents does not reseed the rest.
	agents, err := s.ListAgents()
	if err != nil {
		t.Fatalf("ListAgents failed: %v", err)
	}
	if len(agents) != 1 {
		t.Errorf("Expected 1 stored agent, got %d", len(agents))
	}
}

func TestGetAgent_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetAgent("ghost")
	if !errors.Is(err, ErrAgentNotFound) {
		t.Errorf("Expected ErrAgentNotFound, got %v", err)
	}
}

func TestUpdateAgent(t *testing.T) {
	s := newTestStore(t)

	name := "Jarvis Prime"
	idle := models.AgentStatusIdle
	updated, err := s.UpdateAgent("jarvis", models.AgentUpdate{Name: &name, Status: &idle})
	if err != nil {
		t.Fatalf("UpdateAgent failed: %v", err)
	}
	if updated.Name != name || updated.Status != idle {
		t.Errorf("Update not applied: %+v", updated.Agent)
	}
	if updated.LLMProvider != "Anthropic" {
		t.Errorf("Unset fields must be unchanged, got provider %q", updated.LLMProvider)
	}

	got, err := s.GetAgent("jarvis")
	if err != nil {
		t.Fatalf("GetAgent failed: %v", err)
	}
	if got.Name != name {
		t.Errorf("Expected persisted name %q, got %q", name, got.Name)
	}
	if len(got.PromptTemplates) != 1 {
		t.Errorf("Prompt templates should survive a partial update, got %d", len(got.PromptTemplates))
	}
}

func TestUpdateAgent_EmptyUpdate(t *testing.T) {
	s := newTestStore(t)

	a, err := s.UpdateAgent("wong", models.AgentUpdate{})
	if err != nil {
		t.Fatalf("UpdateAgent failed: %v", err)
	}
	if a.Name != "Wong" {
		t.Errorf("Expected Wong, got %s", a.Name)
	}
}

func TestUpdateAgent_NotFound(t *testing.T) {
	s := newTestStore(t)

	name := "x"
	_, err := s.UpdateAgent("ghost", models.AgentUpdate{Name: &name})
	if !errors.Is(err, ErrAgentNotFound) {
		t.Errorf("Expected ErrAgentNotFound, got %v", err)
	}
}

func TestStatusChecks(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateStatusCheck("tui")
	if err != nil {
		t.Fatalf("CreateStatusCheck failed: %v", err)
	}
	if first.ID == "" {
		t.Error("Status check ID should not be empty")
	}
	if _, err := s.CreateStatusCheck("cli"); err != nil {
		t.Fatalf("CreateStatusCheck failed: %v", err)
	}

	checks, err := s.ListStatusChecks()
	if err != nil {
		t.Fatalf("ListStatusChecks failed: %v", err)
	}
	if len(checks) != 2 {
		t.Fatalf("Expected 2 checks, got %d", len(checks))
	}
	if checks[0].ClientName != "tui" {
		t.Errorf("Expected oldest first, got %s", checks[0].ClientName)
	}
}

func TestPDR(t *testing.T) {
	s := newTestStore(t)

	entry, err := s.WritePDR("board.move", "abc123", "success", "t1", "backlog -> done")
	if err != nil {
		t.Fatalf("WritePDR failed: %v", err)
	}
	if entry.ID == "" {
		t.Error("PDR ID should not be empty")
	}
	if _, err := s.WritePDR("agent.update", "def456", "success", "", ""); err != nil {
		t.Fatalf("WritePDR failed: %v", err)
	}

	entries, err := s.ListPDR(10)
	if err != nil {
		t.Fatalf("ListPDR failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	found := false
	for _, e := range entries {
		if e.TargetID == "t1" && e.Details == "backlog -> done" {
			found = true
		}
	}
	if !found {
		t.Error("board.move entry not found")
	}
}
