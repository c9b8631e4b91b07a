package search

import (
	"fmt"
	"testing"

	"github.com/fentz26/missionctl/internal/entities"
	"github.com/fentz26/missionctl/internal/models"
	"github.com/fentz26/missionctl/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultIndex() *Index {
	return New(entities.New(seed.Default()))
}

func taskIDs(r Results) []string {
	ids := make([]string, len(r.Tasks))
	for i, t := range r.Tasks {
		ids[i] = t.ID
	}
	return ids
}

func TestSearch_EmptyQuery(t *testing.T) {
	idx := defaultIndex()

	for _, q := range []string{"", "   ", "\t\n"} {
		res := idx.Search(q)
		assert.True(t, res.NoQuery())
		assert.Zero(t, res.Total())
		assert.Empty(t, res.Agents)
		assert.Empty(t, res.Tasks)
		assert.Empty(t, res.Events)
	}
}

func TestSearch_NoResultsIsNotNoQuery(t *testing.T) {
	res := defaultIndex().Search("zed")

	assert.False(t, res.NoQuery())
	assert.Zero(t, res.Total())
	assert.Equal(t, "zed", res.Query)
}

func TestSearch_CaseInsensitive(t *testing.T) {
	idx := defaultIndex()

	upper := idx.Search("API")
	lower := idx.Search("api")

	assert.Contains(t, taskIDs(upper), "t1")
	assert.Contains(t, taskIDs(lower), "t1")
	assert.Equal(t, upper, lower)
}

func TestSearch_Idempotent(t *testing.T) {
	idx := defaultIndex()

	first := idx.Search("pricing")
	second := idx.Search("pricing")
	assert.Equal(t, first, second)

	uncached := NewWithCacheSize(entities.New(seed.Default()), 0).Search("pricing")
	assert.Equal(t, first, uncached)
}

func TestSearch_Predicates(t *testing.T) {
	idx := defaultIndex()

	// role match
	res := idx.Search("squad lead")
	require.Len(t, res.Agents, 1)
	assert.Equal(t, "jarvis", res.Agents[0].ID)

	// tag match
	assert.Contains(t, taskIDs(idx.Search("churn")), "t6")
	assert.Equal(t, []string{"t8"}, taskIDs(idx.Search("design")))

	// description match
	assert.Contains(t, taskIDs(idx.Search("idempotency")), "t11")

	// event detail match, events without detail do not match on it
	res = idx.Search("webhook retry fix")
	require.Len(t, res.Events, 1)
	assert.Equal(t, "e11", res.Events[0].ID)

	// event action match
	res = idx.Search("drafted")
	require.Len(t, res.Events, 1)
	assert.Equal(t, "e12", res.Events[0].ID)
}

func TestSearch_Caps(t *testing.T) {
	s := &seed.Seed{Columns: []models.Column{{ID: "todo"}}}
	for i := 0; i < 20; i++ {
		s.Agents = append(s.Agents, models.AgentDetail{Agent: models.Agent{ID: fmt.Sprintf("a%d", i), Name: "match agent"}})
		s.Tasks = append(s.Tasks, models.Task{ID: fmt.Sprintf("t%d", i), Title: "match task", Column: "todo"})
		s.Feed = append(s.Feed, models.FeedEvent{ID: fmt.Sprintf("e%d", i), Type: models.EventComment, Action: "match"})
	}
	idx := New(entities.New(s))

	res := idx.Search("MATCH")
	assert.Len(t, res.Agents, MaxAgents)
	assert.Len(t, res.Tasks, MaxTasks)
	assert.Len(t, res.Events, MaxEvents)
	assert.Equal(t, MaxAgents+MaxTasks+MaxEvents, res.Total())

	// truncation keeps source order
	assert.Equal(t, []string{"t0", "t1", "t2", "t3", "t4", "t5"}, taskIDs(res))
}

func TestSearch_CallerCannotMutateCache(t *testing.T) {
	idx := defaultIndex()

	res := idx.Search("api")
	require.NotEmpty(t, res.Tasks)
	res.Tasks[0].Title = "tampered"
	res.Tasks = res.Tasks[:0]

	again := idx.Search("api")
	require.NotEmpty(t, again.Tasks)
	assert.NotEqual(t, "tampered", again.Tasks[0].Title)
	assert.Equal(t, 1, idx.CacheLen())
}

func TestSearch_CacheKeyIsNormalized(t *testing.T) {
	idx := defaultIndex()

	idx.Search("  Pricing ")
	idx.Search("pricing")
	assert.Equal(t, 1, idx.CacheLen())
}
