package board

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDragTracker_NestedEnterLeave(t *testing.T) {
	d := NewDragTracker(testStore())

	d.Enter("doing")
	d.Enter("doing") // child card
	d.Leave("doing") // leaving the child, still over the column
	assert.True(t, d.IsOver("doing"))
	assert.Equal(t, 1, d.Depth("doing"))

	d.Leave("doing")
	assert.False(t, d.IsOver("doing"))
	assert.False(t, d.Active())
}

func TestDragTracker_NeverNegative(t *testing.T) {
	d := NewDragTracker(testStore())

	d.Leave("backlog")
	d.Leave("backlog")
	assert.Equal(t, 0, d.Depth("backlog"))

	d.Enter("backlog")
	assert.True(t, d.IsOver("backlog"))
}

func TestDragTracker_UndeclaredColumnIgnored(t *testing.T) {
	d := NewDragTracker(testStore())

	d.Enter("icebox")
	assert.False(t, d.IsOver("icebox"))
	assert.False(t, d.Active())
}

func TestDragTracker_DropResetsAllColumns(t *testing.T) {
	d := NewDragTracker(testStore())

	d.Enter("backlog")
	d.Enter("doing")
	d.Enter("doing")
	// leave events for backlog were never delivered
	d.Drop("doing")

	for _, col := range []string{"backlog", "doing", "review", "done"} {
		assert.Equal(t, 0, d.Depth(col), col)
	}
	assert.False(t, d.Active())
}

func TestDragTracker_RandomSequences(t *testing.T) {
	cols := []string{"backlog", "doing", "review", "done"}
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 100; run++ {
		d := NewDragTracker(testStore())
		for step := 0; step < 50; step++ {
			col := cols[rng.Intn(len(cols))]
			switch rng.Intn(5) {
			case 0, 1:
				d.Enter(col)
			case 2, 3:
				d.Leave(col)
			case 4:
				d.Drop(col)
				for _, c := range cols {
					require.Equal(t, 0, d.Depth(c))
				}
			}
			for _, c := range cols {
				require.GreaterOrEqual(t, d.Depth(c), 0)
			}
		}
	}
}

func TestDragSession_DropMovesTask(t *testing.T) {
	b := New(testStore())
	s := NewDragSession(b)

	s.Begin("T1")
	assert.True(t, s.Dragging())
	s.Enter("backlog")
	s.Leave("backlog")
	s.Enter("done")
	assert.True(t, s.IsOver("done"))

	assert.True(t, s.DropOn("done"))
	assert.False(t, s.Dragging())
	assert.False(t, s.IsOver("done"))

	task, _ := b.Task("T1")
	assert.Equal(t, "done", task.Column)
}

func TestDragSession_DropOutsideColumns(t *testing.T) {
	b := New(testStore())
	s := NewDragSession(b)

	s.Begin("T1")
	s.Enter("doing")
	assert.False(t, s.DropOn("nowhere"))

	assert.False(t, s.IsOver("doing"))
	task, _ := b.Task("T1")
	assert.Equal(t, "backlog", task.Column)
}

func TestDragSession_SameColumnIsNoChange(t *testing.T) {
	b := New(testStore())
	s := NewDragSession(b)

	for i := 0; i < 3; i++ {
		s.Begin("T3")
		s.Enter("doing")
		assert.False(t, s.DropOn("doing"))
	}
	assert.Zero(t, b.Version())
}

func TestDragSession_Cancel(t *testing.T) {
	b := New(testStore())
	s := NewDragSession(b)

	s.Begin("T2")
	s.Enter("review")
	s.Cancel()

	assert.False(t, s.Dragging())
	assert.Equal(t, 0, s.Depth("review"))
	assert.False(t, s.DropOn("review"))
}
