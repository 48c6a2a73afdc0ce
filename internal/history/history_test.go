package history

import (
	"testing"

	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

// sceneAt builds a one-shape scene whose x position identifies the state.
func sceneAt(x float64) *scene.Scene {
	s := scene.NewScene()
	sh := scene.NewShape()
	sh.Commands = []scene.Command{&scene.Rect{X: 0, Y: 0, W: 10, H: 10}}
	sh.X = x
	s.Add(sh)
	return s
}

func stateX(s *scene.Scene) float64 {
	return s.Entities[0].(*scene.Shape).X
}

func serialize(t *testing.T, s *scene.Scene) string {
	t.Helper()
	data, err := scene.MarshalScene(s)
	if err != nil {
		t.Fatalf("MarshalScene: %v", err)
	}
	return string(data)
}

func TestUndoRestoresPreCommitState(t *testing.T) {
	l := NewLog(nil)
	live := sceneAt(0)
	preCommit := serialize(t, live)

	// Record, then mutate.
	l.Commit(live)
	live.Entities[0].(*scene.Shape).X = 50

	restored, ok := l.Undo(live)
	if !ok {
		t.Fatal("Undo returned ok=false")
	}
	if got := serialize(t, restored); got != preCommit {
		t.Errorf("undo state = %s, want pre-commit state", got)
	}
}

func TestRedoRestoresPreUndoState(t *testing.T) {
	l := NewLog(nil)
	live := sceneAt(0)
	l.Commit(live)
	live.Entities[0].(*scene.Shape).X = 50
	preUndo := serialize(t, live)

	live, _ = l.Undo(live)
	restored, ok := l.Redo(live)
	if !ok {
		t.Fatal("Redo returned ok=false")
	}
	if got := serialize(t, restored); got != preUndo {
		t.Errorf("redo state = %s, want pre-undo state", got)
	}
}

func TestUndoEmptyIsNoOp(t *testing.T) {
	l := NewLog(nil)
	if _, ok := l.Undo(sceneAt(0)); ok {
		t.Error("Undo on empty stack returned ok=true")
	}
	if _, ok := l.Redo(sceneAt(0)); ok {
		t.Error("Redo on empty stack returned ok=true")
	}
}

func TestCommitClearsRedo(t *testing.T) {
	l := NewLog(nil)
	live := sceneAt(0)
	l.Commit(live)
	live.Entities[0].(*scene.Shape).X = 1
	live, _ = l.Undo(live)
	if !l.CanRedo() {
		t.Fatal("expected redo after undo")
	}

	l.Commit(live)
	if l.CanRedo() {
		t.Error("forward commit kept the redo stack")
	}
}

func TestSnapshotsNeverAliasLive(t *testing.T) {
	l := NewLog(nil)
	live := sceneAt(0)
	l.Commit(live)

	// Mutating live after commit must not affect the stored snapshot.
	live.Entities[0].(*scene.Shape).X = 99
	restored, _ := l.Undo(live)
	if stateX(restored) != 0 {
		t.Errorf("snapshot saw live mutation, x = %v", stateX(restored))
	}

	// Mutating the restored scene must not affect the redo snapshot.
	restored.Entities[0].(*scene.Shape).X = -5
	again, _ := l.Redo(restored)
	if stateX(again) != 99 {
		t.Errorf("redo snapshot saw restored mutation, x = %v", stateX(again))
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	l := NewLog(nil)
	l.Capacity = 3
	for i := 0; i < 5; i++ {
		l.Commit(sceneAt(float64(i)))
	}
	if l.UndoDepth() != 3 {
		t.Fatalf("depth = %d, want 3", l.UndoDepth())
	}
	// Oldest surviving snapshot is state 2.
	s, ok := l.JumpTo(0)
	if !ok {
		t.Fatal("JumpTo(0) failed")
	}
	if stateX(s) != 2 {
		t.Errorf("oldest snapshot x = %v, want 2", stateX(s))
	}
}

func TestCoalesceBurstYieldsOneEntry(t *testing.T) {
	live := sceneAt(0)
	sched := NewManualScheduler()
	l := NewLog(sched)

	// Ten rapid nudges inside one window cost one entry: the pre-burst
	// state. The post-burst state stays live, never stacked.
	for i := 1; i <= 10; i++ {
		l.StartCoalesce(live)
		live.Entities[0].(*scene.Shape).X = float64(i)
	}
	if l.UndoDepth() != 1 {
		t.Fatalf("mid-burst depth = %d, want 1", l.UndoDepth())
	}
	if !sched.Pending() {
		t.Fatal("window not armed")
	}
	sched.Fire()
	if l.UndoDepth() != 1 {
		t.Fatalf("post-expiry depth = %d, want 1", l.UndoDepth())
	}
	if l.Coalescing() {
		t.Fatal("window still open after expiry")
	}

	// A second burst after expiry starts its own entry.
	l.StartCoalesce(live)
	live.Entities[0].(*scene.Shape).X = 20
	if l.UndoDepth() != 2 {
		t.Fatalf("second burst depth = %d, want 2", l.UndoDepth())
	}

	// JumpTo truncates, so inspect from the top down.
	s, _ := l.JumpTo(1)
	if stateX(s) != 10 {
		t.Errorf("second entry x = %v, want 10", stateX(s))
	}
	s, _ = l.JumpTo(0)
	if stateX(s) != 0 {
		t.Errorf("first entry x = %v, want 0", stateX(s))
	}
}

func TestEndCoalesceClosesWindow(t *testing.T) {
	live := sceneAt(0)
	sched := NewManualScheduler()
	l := NewLog(sched)

	l.StartCoalesce(live)
	live.Entities[0].(*scene.Shape).X = 7
	l.EndCoalesce()

	if l.UndoDepth() != 1 {
		t.Fatalf("depth = %d, want 1", l.UndoDepth())
	}
	if sched.Pending() {
		t.Error("closed burst left the window armed")
	}
	if l.Coalescing() {
		t.Error("still coalescing after EndCoalesce")
	}

	// The next burst is a fresh history step.
	l.StartCoalesce(live)
	live.Entities[0].(*scene.Shape).X = 8
	if l.UndoDepth() != 2 {
		t.Errorf("depth after new burst = %d, want 2", l.UndoDepth())
	}

	l.EndCoalesce()
	l.EndCoalesce() // idle call is a no-op
	if l.UndoDepth() != 2 {
		t.Errorf("idle EndCoalesce changed depth to %d", l.UndoDepth())
	}
}

func TestCancelCoalesceRetractsOpeningSnapshot(t *testing.T) {
	live := sceneAt(0)
	sched := NewManualScheduler()
	l := NewLog(sched)
	l.Commit(sceneAt(-1))

	// A drag that ends back where it started should erase its own trace.
	l.StartCoalesce(live)
	live.Entities[0].(*scene.Shape).X = 3
	l.StartCoalesce(live)
	live.Entities[0].(*scene.Shape).X = 0
	l.CancelCoalesce()

	if l.UndoDepth() != 1 {
		t.Fatalf("depth = %d, want 1 (burst trace not retracted)", l.UndoDepth())
	}
	if l.Coalescing() {
		t.Error("still coalescing after cancel")
	}
	sched.Fire()
	if l.UndoDepth() != 1 {
		t.Error("stale fire changed the stack")
	}

	// Without an open burst the call is a no-op.
	l.CancelCoalesce()
	if l.UndoDepth() != 1 {
		t.Error("idle cancel popped a snapshot")
	}
}

func TestJumpTo(t *testing.T) {
	l := NewLog(nil)
	for i := 0; i < 4; i++ {
		l.Commit(sceneAt(float64(i)))
	}

	s, ok := l.JumpTo(1)
	if !ok {
		t.Fatal("JumpTo(1) failed")
	}
	if stateX(s) != 1 {
		t.Errorf("jump state x = %v, want 1", stateX(s))
	}
	if l.UndoDepth() != 2 {
		t.Errorf("depth after jump = %d, want 2", l.UndoDepth())
	}
	if l.CanRedo() {
		t.Error("jump kept the redo stack")
	}

	if _, ok := l.JumpTo(10); ok {
		t.Error("out-of-range jump succeeded")
	}
	if l.UndoDepth() != 2 {
		t.Error("failed jump changed the stack")
	}
}

func TestUndoClosesOpenBurst(t *testing.T) {
	live := sceneAt(0)
	sched := NewManualScheduler()
	l := NewLog(sched)

	l.StartCoalesce(live)
	live.Entities[0].(*scene.Shape).X = 4

	// Undo during a burst pops the burst's opening snapshot; the burst's
	// final state is redoable via the live-state push.
	restored, ok := l.Undo(live)
	if !ok {
		t.Fatal("Undo returned ok=false")
	}
	if stateX(restored) != 0 {
		t.Errorf("undo restored x = %v, want pre-burst state 0", stateX(restored))
	}
	if l.Coalescing() {
		t.Error("still coalescing after undo")
	}
	redone, ok := l.Redo(restored)
	if !ok {
		t.Fatal("Redo returned ok=false")
	}
	if stateX(redone) != 4 {
		t.Errorf("redo restored x = %v, want burst final state 4", stateX(redone))
	}
	sched.Fire()
	if l.UndoDepth() != 1 || l.RedoDepth() != 0 {
		t.Errorf("depths after stale fire = %d/%d, want 1/0",
			l.UndoDepth(), l.RedoDepth())
	}
}
