// Package feed implements the live activity feed: tab selection, event
// filtering and per-tab counts.
package feed

import (
	"github.com/fentz26/missionctl/internal/board"
	"github.com/fentz26/missionctl/internal/entities"
	"github.com/fentz26/missionctl/internal/models"
)

// NoActivity is reported as the last activity of an agent without events.
const NoActivity = "none"

// TabCount pairs a tab with the number of events it shows.
type TabCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AgentActivity summarizes one agent's workload and latest feed entry.
type AgentActivity struct {
	AgentID      string `json:"agent_id"`
	Name         string `json:"name"`
	ActiveTasks  int    `json:"active_tasks"`
	LastActivity string `json:"last_activity"`
	HasActivity  bool   `json:"has_activity"`
}

// Feed holds the active tab and scroll position over an immutable event list.
type Feed struct {
	store  *entities.Store
	active string
	scroll int
}

// New returns a feed with the first declared tab active.
func New(store *entities.Store) *Feed {
	f := &Feed{store: store}
	if tabs := store.Tabs(); len(tabs) > 0 {
		f.active = tabs[0].Name
	}
	return f
}

// ActiveTab returns the name of the selected tab.
func (f *Feed) ActiveTab() string {
	return f.active
}

// SelectTab activates a declared tab and scrolls back to the top. Unknown
// tabs are ignored.
func (f *Feed) SelectTab(name string) bool {
	if _, ok := f.store.Tab(name); !ok {
		return false
	}
	f.active = name
	f.scroll = 0
	return true
}

// Scroll moves the view by delta entries, clamped to the filtered list.
func (f *Feed) Scroll(delta int) {
	n := len(f.FilteredEvents())
	f.scroll += delta
	if f.scroll > n-1 {
		f.scroll = n - 1
	}
	if f.scroll < 0 {
		f.scroll = 0
	}
}

// ScrollOffset returns the index of the first visible entry.
func (f *Feed) ScrollOffset() int {
	return f.scroll
}

// FilteredEvents returns the events shown under the active tab, in feed order.
func (f *Feed) FilteredEvents() []models.FeedEvent {
	tab, ok := f.store.Tab(f.active)
	if !ok {
		return f.store.Events()
	}
	return filter(f.store.Events(), tab)
}

// IsEmpty reports whether the active tab shows no events.
func (f *Feed) IsEmpty() bool {
	return len(f.FilteredEvents()) == 0
}

// TabCounts returns, for every declared tab, the number of events it would
// show. Counts do not depend on the active tab.
func (f *Feed) TabCounts() map[string]int {
	list := f.TabCountList()
	out := make(map[string]int, len(list))
	for _, tc := range list {
		out[tc.Name] = tc.Count
	}
	return out
}

// TabCountList is TabCounts in tab display order.
func (f *Feed) TabCountList() []TabCount {
	events := f.store.Events()
	tabs := f.store.Tabs()
	out := make([]TabCount, len(tabs))
	for i, tab := range tabs {
		n := 0
		for _, e := range events {
			if tab.Matches(e.Type) {
				n++
			}
		}
		out[i] = TabCount{Name: tab.Name, Count: n}
	}
	return out
}

// AgentActivitySummary reports, per agent, the tasks outside the terminal
// column and the timestamp of the newest event.
func (f *Feed) AgentActivitySummary(b *board.Board) []AgentActivity {
	active := b.ActiveByAssignee()
	events := f.store.Events()
	agents := f.store.Agents()

	out := make([]AgentActivity, len(agents))
	for i, a := range agents {
		s := AgentActivity{
			AgentID:      a.ID,
			Name:         a.Name,
			ActiveTasks:  active[a.ID],
			LastActivity: NoActivity,
		}
		for _, e := range events {
			if e.AgentID == a.ID {
				s.LastActivity = e.Timestamp
				s.HasActivity = true
				break
			}
		}
		out[i] = s
	}
	return out
}

func filter(events []models.FeedEvent, tab models.Tab) []models.FeedEvent {
	if tab.Unfiltered() {
		return events
	}
	out := make([]models.FeedEvent, 0, len(events))
	for _, e := range events {
		if tab.Matches(e.Type) {
			out = append(out, e)
		}
	}
	return out
}
