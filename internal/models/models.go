// Package models defines the core domain types for Mission Control.
package models

import "time"

// AgentStatus represents whether an agent is currently busy.
type AgentStatus string

const (
	AgentStatusWorking AgentStatus = "WORKING"
	AgentStatusIdle    AgentStatus = "IDLE"
)

// BadgeColor is the accent used for an agent's badge.
type BadgeColor string

const (
	BadgeOrange BadgeColor = "orange"
	BadgeBlue   BadgeColor = "blue"
	BadgeGrey   BadgeColor = "grey"
)

// Agent is a member of the autonomous fleet as shown on the dashboard.
type Agent struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	Role       string      `json:"role" yaml:"role"`
	Badge      string      `json:"badge" yaml:"badge"`
	BadgeColor BadgeColor  `json:"badgeColor" yaml:"badge_color"`
	Status     AgentStatus `json:"status" yaml:"status"`
	Icon       string      `json:"icon" yaml:"icon"`
}

// PromptTemplate is a reusable prompt attached to an agent.
type PromptTemplate struct {
	Name      string   `json:"name" yaml:"name"`
	Template  string   `json:"template" yaml:"template"`
	Variables []string `json:"variables" yaml:"variables"`
}

// AgentDetail is the full agent record owned by the detail editor.
type AgentDetail struct {
	Agent              `yaml:",inline"`
	LLMProvider        string           `json:"llmProvider" yaml:"llm_provider"`
	LLMModel           string           `json:"llmModel" yaml:"llm_model"`
	SystemInstructions string           `json:"systemInstructions" yaml:"system_instructions"`
	PromptTemplates    []PromptTemplate `json:"promptTemplates" yaml:"prompt_templates"`
}

// AgentUpdate is a partial update of an agent detail. Nil fields are left unchanged.
type AgentUpdate struct {
	Name               *string          `json:"name,omitempty"`
	Role               *string          `json:"role,omitempty"`
	LLMProvider        *string          `json:"llmProvider,omitempty"`
	LLMModel           *string          `json:"llmModel,omitempty"`
	SystemInstructions *string          `json:"systemInstructions,omitempty"`
	PromptTemplates    []PromptTemplate `json:"promptTemplates,omitempty"`
	Status             *AgentStatus     `json:"status,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u AgentUpdate) IsEmpty() bool {
	return u.Name == nil && u.Role == nil && u.LLMProvider == nil && u.LLMModel == nil &&
		u.SystemInstructions == nil && u.PromptTemplates == nil && u.Status == nil
}

// Priority ranks a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Task is a card on the mission queue.
type Task struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	AssigneeID  string   `json:"assigneeId" yaml:"assignee_id"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Tags        []string `json:"tags" yaml:"tags"`
	Timestamp   string   `json:"timestamp" yaml:"timestamp"` // display string, not parsed
	Column      string   `json:"column" yaml:"column"`
}

// Column is a kanban lane. Declaration order is display order.
type Column struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	DotColor string `json:"dotColor" yaml:"dot_color"`
	Terminal bool   `json:"terminal,omitempty" yaml:"terminal,omitempty"`
}

// EventType classifies a feed event.
type EventType string

const (
	EventTaskCreated  EventType = "task_created"
	EventTaskMoved    EventType = "task_moved"
	EventComment      EventType = "comment"
	EventDecision     EventType = "decision"
	EventDoc          EventType = "doc"
	EventStatusUpdate EventType = "status_update"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventTaskCreated, EventTaskMoved, EventComment, EventDecision, EventDoc, EventStatusUpdate:
		return true
	}
	return false
}

// FeedEvent is one entry of the activity feed, newest first.
type FeedEvent struct {
	ID        string    `json:"id" yaml:"id"`
	AgentID   string    `json:"agentId" yaml:"agent_id"`
	Type      EventType `json:"type" yaml:"type"`
	Action    string    `json:"action" yaml:"action"`
	Target    string    `json:"target,omitempty" yaml:"target,omitempty"`
	Detail    string    `json:"detail,omitempty" yaml:"detail,omitempty"`
	Timestamp string    `json:"timestamp" yaml:"timestamp"`
}

// Tab is a named filter over feed event types. A tab without types shows everything.
type Tab struct {
	Name  string      `json:"name" yaml:"name"`
	Types []EventType `json:"types,omitempty" yaml:"types,omitempty"`
}

// Unfiltered reports whether the tab has no filter predicate.
func (t Tab) Unfiltered() bool {
	return len(t.Types) == 0
}

// Matches reports whether an event of type et is shown under the tab.
func (t Tab) Matches(et EventType) bool {
	if t.Unfiltered() {
		return true
	}
	for _, allowed := range t.Types {
		if allowed == et {
			return true
		}
	}
	return false
}

// StandupItem is one line of the daily standup report.
type StandupItem struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Detail string `json:"detail" yaml:"detail"`
	Agent  string `json:"agent" yaml:"agent"`
}

// Standup groups the daily report sections.
type Standup struct {
	Completed    []StandupItem `json:"completed" yaml:"completed"`
	InProgress   []StandupItem `json:"inProgress" yaml:"in_progress"`
	Blocked      []StandupItem `json:"blocked" yaml:"blocked"`
	NeedsReview  []StandupItem `json:"needsReview" yaml:"needs_review"`
	KeyDecisions []StandupItem `json:"keyDecisions" yaml:"key_decisions"`
}

// Total returns the number of items across all sections.
func (s Standup) Total() int {
	return len(s.Completed) + len(s.InProgress) + len(s.Blocked) + len(s.NeedsReview) + len(s.KeyDecisions)
}

// StatusCheck records a client heartbeat against the daemon.
type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

// PDREntry represents a Process Decision Record for audit.
type PDREntry struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	InputsHash string    `json:"inputs_hash"`
	Outcome    string    `json:"outcome"`
	TargetID   string    `json:"target_id,omitempty"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
