package poster

// DefaultHistoryCapacity is the number of undo snapshots a MaskEditor keeps.
const DefaultHistoryCapacity = 10

// History is a bounded stack of surface snapshots used for undo.
// When full, pushing evicts the oldest snapshot.
type History struct {
	capacity  int
	snapshots []*Surface
}

// NewHistory creates an empty history holding at most capacity snapshots.
// A capacity below 1 is raised to 1.
func NewHistory(capacity int) *History {
	capacity = max(capacity, 1)
	return &History{
		capacity:  capacity,
		snapshots: make([]*Surface, 0, capacity),
	}
}

// Push stores a deep copy of s as the most recent snapshot.
func (h *History) Push(s *Surface) {
	if len(h.snapshots) == h.capacity {
		h.snapshots[0] = nil
		h.snapshots = append(h.snapshots[:0], h.snapshots[1:]...)
	}
	h.snapshots = append(h.snapshots, s.Clone())
}

// Pop removes and returns the most recent snapshot.
// It returns false if the history is empty.
func (h *History) Pop() (*Surface, bool) {
	n := len(h.snapshots)
	if n == 0 {
		return nil, false
	}
	s := h.snapshots[n-1]
	h.snapshots[n-1] = nil
	h.snapshots = h.snapshots[:n-1]
	return s, true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Cap returns the maximum number of stored snapshots.
func (h *History) Cap() int {
	return h.capacity
}

// Clear drops every snapshot.
func (h *History) Clear() {
	clear(h.snapshots)
	h.snapshots = h.snapshots[:0]
}
