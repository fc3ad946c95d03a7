// Package history provides bounded snapshot undo/redo over the shape
// collection.
package history

import "github.com/example/dualannot/internal/shape"

// DefaultDepth bounds the undo stack when no depth is configured.
const DefaultDepth = 50

// Snapshot is one full copy of the shape collection. Callers hand over deep
// clones; the stack never aliases live shapes.
type Snapshot []shape.Shape

// Stack records pre-mutation snapshots. Commit pushes onto the undo side and
// clears redo, so redo only survives an unbroken undo chain.
type Stack struct {
	depth int
	undo  []Snapshot
	redo  []Snapshot
}

// New returns a stack keeping at most depth snapshots. Non-positive depths
// fall back to DefaultDepth.
func New(depth int) *Stack {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Stack{depth: depth}
}

// Commit records the state that existed before a mutation. The oldest entry
// falls off once the depth is exceeded.
func (s *Stack) Commit(before Snapshot) {
	s.undo = append(s.undo, before)
	if len(s.undo) > s.depth {
		s.undo = s.undo[1:]
	}
	s.redo = nil
}

// Undo exchanges the current state for the most recent snapshot. ok is false
// when nothing is left to undo.
func (s *Stack) Undo(current Snapshot) (Snapshot, bool) {
	if len(s.undo) == 0 {
		return nil, false
	}
	top := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, current)
	return top, true
}

// Redo exchanges the current state for the most recently undone snapshot.
func (s *Stack) Redo(current Snapshot) (Snapshot, bool) {
	if len(s.redo) == 0 {
		return nil, false
	}
	top := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, current)
	return top, true
}

func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// Reset drops all history, for example when a new image is loaded.
func (s *Stack) Reset() {
	s.undo = nil
	s.redo = nil
}
