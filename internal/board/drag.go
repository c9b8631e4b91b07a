package board

import "github.com/fentz26/missionctl/internal/entities"

// DragTracker tracks the hover depth of each column during a drag. Nested
// drop targets fire enter and leave independently, so a column is "over"
// while its depth is positive rather than after the last enter.
type DragTracker struct {
	store *entities.Store
	depth map[string]int
}

// NewDragTracker returns a tracker with every column idle.
func NewDragTracker(store *entities.Store) *DragTracker {
	return &DragTracker{store: store, depth: make(map[string]int)}
}

// Enter records a drag entering a column or one of its children.
func (d *DragTracker) Enter(columnID string) {
	if !d.store.HasColumn(columnID) {
		return
	}
	d.depth[columnID]++
}

// Leave records a drag leaving a column or one of its children. Depth never
// drops below zero.
func (d *DragTracker) Leave(columnID string) {
	if d.depth[columnID] <= 0 {
		return
	}
	d.depth[columnID]--
	if d.depth[columnID] == 0 {
		delete(d.depth, columnID)
	}
}

// Drop ends the drag. Every column is reset, not only the one dropped on,
// since a leave event may have been missed elsewhere.
func (d *DragTracker) Drop(columnID string) {
	d.Cancel()
}

// Cancel ends the drag without a drop.
func (d *DragTracker) Cancel() {
	clear(d.depth)
}

// Depth returns the hover depth of a column.
func (d *DragTracker) Depth(columnID string) int {
	return d.depth[columnID]
}

// IsOver reports whether a column shows the drag-over state.
func (d *DragTracker) IsOver(columnID string) bool {
	return d.depth[columnID] > 0
}

// Active reports whether any column is hovered.
func (d *DragTracker) Active() bool {
	return len(d.depth) > 0
}

// DragSession drives one drag of a task across the board.
type DragSession struct {
	board   *Board
	tracker *DragTracker
	payload string
}

// NewDragSession creates an idle session over a board.
func NewDragSession(b *Board) *DragSession {
	return &DragSession{board: b, tracker: NewDragTracker(b.store)}
}

// Begin picks up a task. The payload is carried as-is until the drop.
func (s *DragSession) Begin(payload string) {
	s.tracker.Cancel()
	s.payload = payload
}

// Dragging reports whether a task is picked up.
func (s *DragSession) Dragging() bool {
	return s.payload != ""
}

// Payload returns the task id being dragged.
func (s *DragSession) Payload() string {
	return ParsePayload(s.payload)
}

func (s *DragSession) Enter(columnID string) { s.tracker.Enter(columnID) }

func (s *DragSession) Leave(columnID string) { s.tracker.Leave(columnID) }

// IsOver reports whether a column shows the drag-over state.
func (s *DragSession) IsOver(columnID string) bool { return s.tracker.IsOver(columnID) }

// Depth returns the hover depth of a column.
func (s *DragSession) Depth(columnID string) int { return s.tracker.Depth(columnID) }

// DropOn drops the dragged task on a column and ends the session. Dropping
// outside any declared column leaves the board unchanged.
func (s *DragSession) DropOn(columnID string) bool {
	s.tracker.Drop(columnID)
	payload := s.payload
	s.payload = ""
	return s.board.Drop(payload, columnID)
}

// Cancel ends the session without moving anything.
func (s *DragSession) Cancel() {
	s.tracker.Cancel()
	s.payload = ""
}
