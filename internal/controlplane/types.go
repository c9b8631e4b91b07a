package controlplane

import (
	"github.com/fentz26/missionctl/internal/board"
	"github.com/fentz26/missionctl/internal/feed"
	"github.com/fentz26/missionctl/internal/models"
)

// Version is reported by /health. Overridden at build time.
var Version = "0.1.0"

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	DB      string `json:"db"`
	Version string `json:"version"`
	Time    string `json:"time"`
}

// BoardView is the mission queue as served by GET /api/board.
type BoardView struct {
	Columns     []board.ColumnView `json:"columns"`
	ActiveCount int                `json:"active_count"`
	Total       int                `json:"total"`
	Version     uint64             `json:"version"`
}

// MoveRequest is the body of POST /api/board/move.
type MoveRequest struct {
	TaskID string `json:"task_id"`
	Column string `json:"column"`
}

// MoveResponse reports whether a move changed the board.
type MoveResponse struct {
	Moved bool      `json:"moved"`
	Board BoardView `json:"board"`
}

// FeedView is the live feed under one tab.
type FeedView struct {
	ActiveTab string             `json:"active_tab"`
	Tabs      []feed.TabCount    `json:"tabs"`
	Events    []models.FeedEvent `json:"events"`
	Empty     bool               `json:"empty"`
}

// TabRequest is the body of POST /api/feed/tab.
type TabRequest struct {
	Tab string `json:"tab"`
}

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Query   string             `json:"query"`
	Agents  []models.Agent     `json:"agents"`
	Tasks   []models.Task      `json:"tasks"`
	Events  []models.FeedEvent `json:"events"`
	Total   int                `json:"total"`
	NoQuery bool               `json:"no_query"`
}

// DirectoryView is the agent listing with its active count.
type DirectoryView struct {
	Agents      []models.Agent `json:"agents"`
	ActiveCount int            `json:"active_count"`
	Total       int            `json:"total"`
}

// StandupView is the mission statement and daily report.
type StandupView struct {
	Mission string         `json:"mission"`
	Standup models.Standup `json:"standup"`
	Total   int            `json:"total"`
}

// StatusRequest is the body of POST /api/status.
type StatusRequest struct {
	ClientName string `json:"client_name"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
