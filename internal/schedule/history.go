package schedule

// historyDepth bounds the undo stack; older snapshots are dropped silently.
const historyDepth = 9

// History is a bounded stack of schedule snapshots.
type History struct {
	stack []Schedule
}

func (h *History) Push(s Schedule) {
	h.stack = append(h.stack, s.Clone())
	if len(h.stack) > historyDepth {
		h.stack = h.stack[len(h.stack)-historyDepth:]
	}
}

func (h *History) Pop() (Schedule, bool) {
	if len(h.stack) == 0 {
		return nil, false
	}
	top := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return top, true
}

func (h *History) CanUndo() bool { return len(h.stack) > 0 }

func (h *History) Len() int { return len(h.stack) }
