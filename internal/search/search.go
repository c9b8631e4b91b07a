// Package search implements the cross-entity quick search over agents,
// tasks and feed events.
package search

import (
	"strings"

	"github.com/fentz26/missionctl/internal/entities"
	"github.com/fentz26/missionctl/internal/models"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Bucket caps. Matches beyond a cap are dropped in source order.
const (
	MaxAgents = 5
	MaxTasks  = 6
	MaxEvents = 5
)

const defaultCacheSize = 128

// Results holds the matches of one query, grouped by entity kind.
type Results struct {
	Query  string             `json:"query"`
	Agents []models.Agent     `json:"agents"`
	Tasks  []models.Task      `json:"tasks"`
	Events []models.FeedEvent `json:"events"`
}

// Total returns the number of matches across all buckets.
func (r Results) Total() int {
	return len(r.Agents) + len(r.Tasks) + len(r.Events)
}

// NoQuery reports whether the results came from an empty query, as opposed
// to a query that matched nothing.
func (r Results) NoQuery() bool {
	return r.Query == ""
}

// Index answers queries against an immutable entity snapshot.
type Index struct {
	store *entities.Store
	cache *lru.Cache[string, Results]
}

// New creates an index with the default result cache size.
func New(store *entities.Store) *Index {
	return NewWithCacheSize(store, defaultCacheSize)
}

// NewWithCacheSize creates an index whose result cache holds up to size
// queries. A non-positive size disables caching.
func NewWithCacheSize(store *entities.Store, size int) *Index {
	idx := &Index{store: store}
	if size > 0 {
		// lru.New only fails for non-positive sizes.
		idx.cache, _ = lru.New[string, Results](size)
	}
	return idx
}

// Normalize lower-cases and trims a query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Search returns the agents, tasks and events containing the query,
// case-insensitively. An empty or blank query returns empty buckets.
func (x *Index) Search(query string) Results {
	q := Normalize(query)
	if q == "" {
		return emptyResults("")
	}
	if x.cache != nil {
		if cached, ok := x.cache.Get(q); ok {
			return cloneResults(cached)
		}
	}

	res := emptyResults(q)
	for _, a := range x.store.Agents() {
		if len(res.Agents) == MaxAgents {
			break
		}
		if matchAgent(a, q) {
			res.Agents = append(res.Agents, a)
		}
	}
	for _, t := range x.store.Tasks() {
		if len(res.Tasks) == MaxTasks {
			break
		}
		if matchTask(t, q) {
			res.Tasks = append(res.Tasks, t)
		}
	}
	for _, e := range x.store.Events() {
		if len(res.Events) == MaxEvents {
			break
		}
		if matchEvent(e, q) {
			res.Events = append(res.Events, e)
		}
	}

	if x.cache != nil {
		x.cache.Add(q, cloneResults(res))
	}
	return res
}

// CacheLen returns the number of cached queries.
func (x *Index) CacheLen() int {
	if x.cache == nil {
		return 0
	}
	return x.cache.Len()
}

func contains(field, q string) bool {
	return field != "" && strings.Contains(strings.ToLower(field), q)
}

func matchAgent(a models.Agent, q string) bool {
	return contains(a.Name, q) || contains(a.Role, q)
}

func matchTask(t models.Task, q string) bool {
	if contains(t.Title, q) || contains(t.Description, q) {
		return true
	}
	for _, tag := range t.Tags {
		if contains(tag, q) {
			return true
		}
	}
	return false
}

func matchEvent(e models.FeedEvent, q string) bool {
	return contains(e.Target, q) || contains(e.Action, q) || contains(e.Detail, q)
}

func emptyResults(q string) Results {
	return Results{
		Query:  q,
		Agents: []models.Agent{},
		Tasks:  []models.Task{},
		Events: []models.FeedEvent{},
	}
}

func cloneResults(r Results) Results {
	out := Results{
		Query:  r.Query,
		Agents: append([]models.Agent{}, r.Agents...),
		Tasks:  make([]models.Task, len(r.Tasks)),
		Events: append([]models.FeedEvent{}, r.Events...),
	}
	for i, t := range r.Tasks {
		t.Tags = append([]string(nil), t.Tags...)
		out.Tasks[i] = t
	}
	return out
}
