package history

import (
	"testing"

	"github.com/example/dualannot/internal/shape"
)

func snap(n int) Snapshot {
	s := make(Snapshot, n)
	for i := range s {
		s[i] = shape.NewBox(800, 600)
	}
	return s
}

func TestUndoRedoExchange(t *testing.T) {
	st := New(10)
	empty := snap(0)
	one := snap(1)
	st.Commit(empty) // state went empty -> one

	back, ok := st.Undo(one)
	if !ok || len(back) != 0 {
		t.Fatalf("undo = (%d shapes, %v), want the empty snapshot", len(back), ok)
	}
	fwd, ok := st.Redo(back)
	if !ok || len(fwd) != 1 {
		t.Fatalf("redo = (%d shapes, %v), want the one-shape snapshot", len(fwd), ok)
	}
	if fwd[0].ID() != one[0].ID() {
		t.Error("redo lost shape identity")
	}
}

func TestCommitClearsRedo(t *testing.T) {
	st := New(10)
	st.Commit(snap(0))
	cur, _ := st.Undo(snap(1))
	if !st.CanRedo() {
		t.Fatal("redo unavailable after undo")
	}
	st.Commit(cur)
	if st.CanRedo() {
		t.Error("redo survived a commit")
	}
}

func TestUndoOnEmptyStack(t *testing.T) {
	st := New(10)
	if _, ok := st.Undo(snap(0)); ok {
		t.Error("undo succeeded on an empty stack")
	}
	if _, ok := st.Redo(snap(0)); ok {
		t.Error("redo succeeded on an empty stack")
	}
}

func TestDepthEvictsOldest(t *testing.T) {
	st := New(2)
	first := snap(1)
	st.Commit(first)
	st.Commit(snap(2))
	st.Commit(snap(3))
	if got := len(st.undo); got != 2 {
		t.Fatalf("stack holds %d snapshots, want 2", got)
	}
	if st.undo[0][0].ID() == first[0].ID() {
		t.Error("oldest snapshot not evicted")
	}
}

func TestReset(t *testing.T) {
	st := New(10)
	st.Commit(snap(1))
	st.Undo(snap(2))
	st.Reset()
	if st.CanUndo() || st.CanRedo() {
		t.Error("reset left history behind")
	}
}
