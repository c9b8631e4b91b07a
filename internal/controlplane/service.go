// Package controlplane provides the HTTP API and service layer for the
// missionctl daemon.
package controlplane

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fentz26/missionctl/internal/audit"
	"github.com/fentz26/missionctl/internal/board"
	"github.com/fentz26/missionctl/internal/directory"
	"github.com/fentz26/missionctl/internal/entities"
	"github.com/fentz26/missionctl/internal/feed"
	"github.com/fentz26/missionctl/internal/models"
	"github.com/fentz26/missionctl/internal/search"
	"github.com/fentz26/missionctl/internal/seed"
	"github.com/fentz26/missionctl/internal/store"
)

// Service owns one dashboard session plus agent persistence. The dashboard
// core is single-threaded, so every call holds mu.
type Service struct {
	mu sync.Mutex

	store *store.Store
	pdr   *audit.PDRWriter

	entities *entities.Store
	board    *board.Board
	feed     *feed.Feed
	index    *search.Index
	dir      *directory.Directory

	mission string
	standup models.Standup
}

// NewService creates a new control plane service over seed data.
func NewService(s *store.Store, pdr *audit.PDRWriter, sd *seed.Seed) *Service {
	ents := entities.New(sd)
	return &Service{
		store:    s,
		pdr:      pdr,
		entities: ents,
		board:    board.New(ents),
		feed:     feed.New(ents),
		index:    search.New(ents),
		dir:      directory.New(ents, nil),
		mission:  sd.Mission,
		standup:  sd.Standup,
	}
}

// SyncAgents applies persisted agent edits to the directory.
func (s *Service) SyncAgents() error {
	agents, err := s.store.ListAgents()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range agents {
		s.dir.Apply(a.Agent)
	}
	return nil
}

// --- Board Operations ---

// Board returns the current mission queue.
func (s *Service) Board() BoardView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boardView()
}

func (s *Service) boardView() BoardView {
	return BoardView{
		Columns:     s.board.Snapshot(),
		ActiveCount: s.board.ActiveCount(),
		Total:       len(s.board.Tasks()),
		Version:     s.board.Version(),
	}
}

// MoveTask moves a task between columns. Invalid moves are no-ops.
func (s *Service) MoveTask(taskID, column string) MoveResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := ""
	if t, ok := s.board.Task(taskID); ok {
		from = t.Column
	}
	moved := s.board.MoveTask(taskID, column)

	outcome := audit.OutcomeNoop
	details := ""
	if moved {
		outcome = audit.OutcomeSuccess
		details = fmt.Sprintf("%s -> %s", from, column)
	}
	s.pdr.Record("board.move", map[string]string{"task_id": taskID, "column": column}, outcome, taskID, details)

	return MoveResponse{Moved: moved, Board: s.boardView()}
}

// --- Feed Operations ---

// Feed returns the feed under the active tab, or under tab when it names a
// declared tab. The active tab is not changed.
func (s *Service) Feed(tab string) FeedView {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.feed
	if _, ok := s.entities.Tab(tab); ok && tab != f.ActiveTab() {
		f = feed.New(s.entities)
		f.SelectTab(tab)
	}
	return feedView(f)
}

// SelectTab changes the active tab. Unknown tabs are ignored.
func (s *Service) SelectTab(tab string) (bool, FeedView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.feed.SelectTab(tab)
	return ok, feedView(s.feed)
}

func feedView(f *feed.Feed) FeedView {
	events := f.FilteredEvents()
	if events == nil {
		events = []models.FeedEvent{}
	}
	return FeedView{
		ActiveTab: f.ActiveTab(),
		Tabs:      f.TabCountList(),
		Events:    events,
		Empty:     len(events) == 0,
	}
}

// ActivitySummary returns per-agent workload and latest activity.
func (s *Service) ActivitySummary() []feed.AgentActivity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feed.AgentActivitySummary(s.board)
}

// --- Search ---

// Search runs a quick search.
func (s *Service) Search(query string) SearchResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.index.Search(query)
	return SearchResponse{
		Query:   res.Query,
		Agents:  res.Agents,
		Tasks:   res.Tasks,
		Events:  res.Events,
		Total:   res.Total(),
		NoQuery: res.NoQuery(),
	}
}

// --- Agent Operations ---

// Directory returns the agent listing.
func (s *Service) Directory() DirectoryView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DirectoryView{
		Agents:      s.dir.Agents(),
		ActiveCount: s.dir.ActiveCount(),
		Total:       s.dir.Len(),
	}
}

// ListAgents returns all agent details.
func (s *Service) ListAgents() ([]models.AgentDetail, error) {
	return s.store.ListAgents()
}

// GetAgent returns one agent detail.
func (s *Service) GetAgent(id string) (*models.AgentDetail, error) {
	return s.store.GetAgent(id)
}

// UpdateAgent persists an edit and reflects it in the directory.
func (s *Service) UpdateAgent(id string, u models.AgentUpdate) (*models.AgentDetail, error) {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidRequest)
	}
	if u.Status != nil && *u.Status != models.AgentStatusWorking && *u.Status != models.AgentStatusIdle {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, *u.Status)
	}

	updated, err := s.store.UpdateAgent(id, u)
	if err != nil {
		s.pdr.Record("agent.update", u, audit.OutcomeError, id, err.Error())
		return nil, err
	}

	s.mu.Lock()
	s.dir.Apply(updated.Agent)
	s.mu.Unlock()

	s.pdr.Record("agent.update", u, audit.OutcomeSuccess, id, "")
	return updated, nil
}

// --- Standup ---

// Standup returns the mission statement and daily report.
func (s *Service) Standup() StandupView {
	return StandupView{Mission: s.mission, Standup: s.standup, Total: s.standup.Total()}
}

// --- Status Checks ---

// CreateStatusCheck records a client heartbeat.
func (s *Service) CreateStatusCheck(clientName string) (*models.StatusCheck, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return nil, fmt.Errorf("%w: client_name is required", ErrInvalidRequest)
	}
	return s.store.CreateStatusCheck(clientName)
}

// ListStatusChecks returns recorded heartbeats.
func (s *Service) ListStatusChecks() ([]models.StatusCheck, error) {
	return s.store.ListStatusChecks()
}

// Audit returns recent audit records.
func (s *Service) Audit(limit int) ([]models.PDREntry, error) {
	return s.store.ListPDR(limit)
}
