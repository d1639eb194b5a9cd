package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/orbitals/registry"
	"github.com/lixenwraith/orbitals/status"
	"github.com/lixenwraith/orbitals/vmath"
)

var testStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// fakeAdapter exposes its list directly so tests can diverge it from the pool
type fakeAdapter struct {
	viewports []registry.Viewport
	local     registry.Shape
	initErr   error
	onSet     func()
	onShape   func(registry.Shape)
	fireSet   bool
}

func (f *fakeAdapter) Init(map[string]string) error           { f.fireSet = true; return f.initErr }
func (f *fakeAdapter) Viewports() []registry.Viewport         { return f.viewports }
func (f *fakeAdapter) OnSetChanged(fn func())                 { f.onSet = fn }
func (f *fakeAdapter) OnShapeChanged(fn func(registry.Shape)) { f.onShape = fn }
func (f *fakeAdapter) Local() registry.Shape                  { return f.local }
func (f *fakeAdapter) SetShape(s registry.Shape)              { f.local = s }
func (f *fakeAdapter) Close() error                           { return nil }
func (f *fakeAdapter) Poll() {
	if f.fireSet && f.onSet != nil {
		f.fireSet = false
		f.onSet()
	}
}

func threeViewports() []registry.Viewport {
	return []registry.Viewport{
		{ID: "a", Shape: registry.Shape{X: 0, Y: 0, W: 100, H: 100}},
		{ID: "b", Shape: registry.Shape{X: 200, Y: 0, W: 100, H: 100}},
		{ID: "c", Shape: registry.Shape{X: 0, Y: 200, W: 100, H: 100}},
	}
}

func newTestEngine(t *testing.T, adapter registry.Adapter) (*Engine, *MockClock) {
	t.Helper()
	clock := NewMockClock(testStart)
	e := New(adapter, clock, status.NewRegistry(), DefaultConfig())
	e.Init(nil)
	t.Cleanup(func() { e.Close() })
	return e, clock
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestEndToEndThreeViewports(t *testing.T) {
	reg := registry.NewStatic(0, threeViewports()...)
	e, clock := newTestEngine(t, reg)

	e.Tick(0)
	if e.Pool.Len() != 3 {
		t.Fatalf("Expected 3 pooled objects, got %d", e.Pool.Len())
	}
	centers := []vmath.Vec3F{{X: 50, Y: 50}, {X: 250, Y: 50}, {X: 50, Y: 250}}
	for i, want := range centers {
		if got := e.Pool.At(i).Position; got != want {
			t.Errorf("Slot %d: expected center %+v, got %+v", i, want, got)
		}
	}

	// Enter idle mode, then tick at elapsed=0
	clock.Advance(5001 * time.Millisecond)
	e.Tick(0)
	if !e.Activity.Idle {
		t.Fatal("Expected idle mode after 5001ms without input")
	}

	off := OrbitOffset(0, 0)
	if !near(off.X, 60) || !near(off.Y, 0) || !near(off.Z, 0) {
		t.Fatalf("Expected slot 0 orbit offset (60,0,0), got %+v", off)
	}

	pos := e.Pool.At(0).Position
	if !(pos.X > 50 && pos.X < 110) || !near(pos.Y, 50) || !near(pos.Z, 0) {
		t.Errorf("Expected eased position strictly between (50,50,0) and (110,50,0), got %+v", pos)
	}
	if !near(pos.X, 53) {
		t.Errorf("Expected one easing step to x=53, got %v", pos.X)
	}

	rot := e.Pool.At(0).Rotation
	if !near(rot.X, 0) || !near(rot.Y, math.Pi/2) || !near(rot.Z, 0) {
		t.Errorf("Expected tumble rotation (0, π/2, 0), got %+v", rot)
	}
	if e.Pool.At(0).Node.Position != pos {
		t.Error("Expected scene node to carry the object position")
	}
}

func TestPoolCardinalityAndSlots(t *testing.T) {
	lists := [][]registry.Viewport{
		nil,
		threeViewports()[:1],
		threeViewports(),
		threeViewports()[1:],
	}

	e, _ := newTestEngine(t, registry.NewStatic(-1))
	for _, vs := range lists {
		e.Pool.Rebuild(vs)
		if e.Pool.Len() != len(vs) {
			t.Fatalf("Expected pool size %d, got %d", len(vs), e.Pool.Len())
		}
		if got := len(e.Scene.World.Children()); got != len(vs) {
			t.Errorf("Expected %d attached nodes, got %d", len(vs), got)
		}
		for i, obj := range e.Pool.Objects() {
			if obj.Slot != i || obj.ViewportID != vs[i].ID {
				t.Errorf("Slot %d bound to %q, expected %q", obj.Slot, obj.ViewportID, vs[i].ID)
			}
			if obj.Primitive.Index != i {
				t.Errorf("Slot %d primitive index %d", i, obj.Primitive.Index)
			}
			if obj.Marker == nil || obj.Marker.Parent() != obj.Node {
				t.Errorf("Slot %d marker not attached to its primitive", i)
			}
		}
	}
	if e.Pool.Rebuilds() != len(lists) {
		t.Errorf("Expected %d rebuilds, got %d", len(lists), e.Pool.Rebuilds())
	}
}

func TestRebuildDiscardsStaleTransforms(t *testing.T) {
	reg := registry.NewStatic(0, threeViewports()...)
	e, clock := newTestEngine(t, reg)
	e.Tick(0)

	// Accumulate orbit drift
	clock.Advance(6 * time.Second)
	for i := 0; i < 30; i++ {
		e.Tick(time.Duration(i) * 16 * time.Millisecond)
	}
	old := e.Pool.At(0)
	if old.Position == (vmath.Vec3F{X: 50, Y: 50}) {
		t.Fatal("Expected slot 0 to have drifted before rebuild")
	}

	reg.SetViewports(0, threeViewports()[1:]...)
	e.Tick(time.Second)

	if e.Pool.Len() != 2 {
		t.Fatalf("Expected 2 objects after rebuild, got %d", e.Pool.Len())
	}
	for _, obj := range e.Pool.Objects() {
		if obj == old {
			t.Fatal("Expected fresh objects after rebuild")
		}
	}
	if old.Node.Parent() != nil {
		t.Error("Expected discarded node to be detached from the scene")
	}

	// Rebuild then one idle easing step from the new center
	cx, cy := threeViewports()[1].Shape.Center()
	off := OrbitOffset(0, 1)
	wantX := cx + off.X*DefaultConfig().Falloff
	wantY := cy + off.Y*DefaultConfig().Falloff
	got := e.Pool.At(0).Position
	if !near(got.X, wantX) || !near(got.Y, wantY) {
		t.Errorf("Expected position eased from new center (%v,%v), got %+v", wantX, wantY, got)
	}
}

func TestRebuildRejectsInvalidShape(t *testing.T) {
	adapter := &fakeAdapter{viewports: threeViewports(), local: threeViewports()[0].Shape}
	e, _ := newTestEngine(t, adapter)
	e.Tick(0)
	if e.Pool.Len() != 3 {
		t.Fatalf("Expected 3 objects, got %d", e.Pool.Len())
	}

	adapter.viewports = []registry.Viewport{{ID: "bad", Shape: registry.Shape{W: 0, H: 100}}}
	adapter.fireSet = true
	e.Tick(0)

	if e.Pool.Len() != 3 {
		t.Errorf("Expected previous pool kept on malformed descriptor, got %d", e.Pool.Len())
	}
	if faults := e.Status.Ints.Get("engine.slot_faults").Load(); faults != 1 {
		t.Errorf("Expected 1 fault, got %d", faults)
	}
}

func TestOffsetConvergence(t *testing.T) {
	reg := registry.NewStatic(0, registry.Viewport{ID: "a", Shape: registry.Shape{X: 0, Y: 0, W: 100, H: 100}})
	e, _ := newTestEngine(t, reg)
	e.Tick(0)

	reg.SetShape(registry.Shape{X: 400, Y: -300, W: 100, H: 100})
	e.Tick(0) // shape event processed, first easing step
	target := vmath.Vec2F{X: -400, Y: 300}
	if e.Offset.Target != target {
		t.Fatalf("Expected target %+v, got %+v", target, e.Offset.Target)
	}

	initial := vmath.V2FMag(target) // Current started at origin
	prev := vmath.V2FMag(vmath.V2FSub(target, e.Offset.Current))
	for i := 1; i < 100; i++ {
		e.Tick(0)
		d := vmath.V2FMag(vmath.V2FSub(target, e.Offset.Current))
		if d > prev {
			t.Fatalf("Tick %d: distance grew from %v to %v", i, prev, d)
		}
		prev = d
	}
	if prev >= 0.01*initial {
		t.Errorf("Expected distance below 1%% of %v within 100 ticks, got %v", initial, prev)
	}

	world := e.Scene.World.Position
	if world.X != e.Offset.Current.X || world.Y != e.Offset.Current.Y || world.Z != 0 {
		t.Errorf("Expected world container at offset %+v, got %+v", e.Offset.Current, world)
	}
}

func TestInitialOffsetSnaps(t *testing.T) {
	reg := registry.NewStatic(0, registry.Viewport{ID: "a", Shape: registry.Shape{X: 120, Y: 80, W: 100, H: 100}})
	e, _ := newTestEngine(t, reg)
	if e.Offset.Current != (vmath.Vec2F{X: -120, Y: -80}) {
		t.Errorf("Expected initial offset without easing, got %+v", e.Offset.Current)
	}
}

func TestLocalMoveRetargetsOffset(t *testing.T) {
	reg := registry.NewStatic(0, threeViewports()...)
	e, _ := newTestEngine(t, reg)
	e.Tick(0)

	e.PushMove(40, -20)
	e.Tick(0) // move handled, registry marks shape dirty
	e.Tick(0) // registry reports shape change
	if e.Offset.Target != (vmath.Vec2F{X: -40, Y: 20}) {
		t.Errorf("Expected target (-40,20), got %+v", e.Offset.Target)
	}

	e.PushResize(640, 480)
	e.Tick(0)
	if got := reg.Local(); got.W != 640 || got.H != 480 || got.X != 40 {
		t.Errorf("Expected resized local shape, got %v", got)
	}
	if e.Camera.Width != 640 || e.Camera.Height != 480 {
		t.Errorf("Expected camera resized, got %+v", e.Camera)
	}
}

func TestIdleTransitionTiming(t *testing.T) {
	reg := registry.NewStatic(0, threeViewports()...)
	e, clock := newTestEngine(t, reg)

	e.PushPointer(10, 10)
	e.Tick(0)
	if e.Activity.Idle {
		t.Fatal("Expected active after pointer move")
	}

	clock.Advance(4999 * time.Millisecond)
	e.Tick(0)
	if e.Activity.Idle {
		t.Fatal("Expected active at 4999ms")
	}

	clock.Advance(2 * time.Millisecond)
	e.Tick(0)
	if !e.Activity.Idle {
		t.Fatal("Expected idle at 5001ms")
	}

	// Any move leaves idle immediately
	e.PushPointer(20, 20)
	e.Tick(0)
	if e.Activity.Idle {
		t.Fatal("Expected active right after pointer move")
	}
}

func TestIdleCountdownRestarts(t *testing.T) {
	reg := registry.NewStatic(0, threeViewports()...)
	e, clock := newTestEngine(t, reg)

	e.PushPointer(10, 10)
	e.Tick(0)

	clock.Advance(4999 * time.Millisecond)
	e.PushPointer(11, 10)
	e.Tick(0)

	clock.Advance(4999 * time.Millisecond)
	e.Tick(0)
	if e.Activity.Idle {
		t.Fatal("Expected countdown restarted by the move at 4999ms")
	}

	clock.Advance(2 * time.Millisecond)
	e.Tick(0)
	if !e.Activity.Idle {
		t.Error("Expected idle 5001ms after the last move")
	}
}

func TestStaleTimerIgnored(t *testing.T) {
	clock := NewMockClock(testStart)
	var fired []uint64
	a := NewInputActivity(clock, 5*time.Second, func(gen uint64) { fired = append(fired, gen) })

	a.Move(1, 1)
	first := a.gen
	a.Move(2, 2)

	if a.Expire(first) {
		t.Error("Expected a stale generation to be ignored")
	}
	clock.Advance(5 * time.Second)
	if len(fired) != 1 || fired[0] != a.gen {
		t.Fatalf("Expected only the latest timer to fire, got %v", fired)
	}
	if !a.Expire(fired[0]) || !a.Idle {
		t.Error("Expected current generation to enter idle")
	}
	if a.Expire(fired[0]) {
		t.Error("Expected no second idle edge")
	}
}

func TestModeExclusivity(t *testing.T) {
	adapter := &fakeAdapter{viewports: threeViewports(), local: threeViewports()[0].Shape}
	e, clock := newTestEngine(t, adapter)
	e.Tick(0)

	for _, obj := range e.Pool.Objects() {
		if obj.Mode != ModeInteractive || obj.Updated != e.Frame() {
			t.Errorf("Slot %d: expected interactive update on frame %d, got %v on %d", obj.Slot, e.Frame(), obj.Mode, obj.Updated)
		}
	}

	clock.Advance(6 * time.Second)
	e.Tick(time.Second)
	for _, obj := range e.Pool.Objects() {
		if obj.Mode != ModeIdle || obj.Updated != e.Frame() {
			t.Errorf("Slot %d: expected idle update on frame %d, got %v on %d", obj.Slot, e.Frame(), obj.Mode, obj.Updated)
		}
	}

	// Viewport list shrinks without a set change: slot 2 is left untouched
	adapter.viewports = adapter.viewports[:2]
	lastPos := e.Pool.At(2).Position
	lastFrame := e.Pool.At(2).Updated
	e.Tick(2 * time.Second)
	if e.Pool.Len() != 3 {
		t.Fatal("Expected no removal outside rebuild")
	}
	if obj := e.Pool.At(2); obj.Updated != lastFrame || obj.Position != lastPos {
		t.Error("Expected slot without live viewport to be left untouched")
	}
	if e.Pool.At(1).Updated != e.Frame() {
		t.Error("Expected live slots to keep updating")
	}
}

func TestInteractiveYawTowardPointer(t *testing.T) {
	reg := registry.NewStatic(0, threeViewports()...)
	e, _ := newTestEngine(t, reg)
	e.Tick(0)

	obj := e.Pool.At(0) // center (50,50), offset zero

	e.PushPointer(150, 50)
	e.Tick(0)
	if !near(obj.Rotation.Y, 0) || obj.Rotation.X != 0 || obj.Rotation.Z != 0 {
		t.Errorf("Expected yaw 0 toward +X, got %+v", obj.Rotation)
	}

	e.PushPointer(50, 150)
	e.Tick(0)
	if !near(obj.Rotation.Y, math.Pi/2) {
		t.Errorf("Expected yaw π/2 toward +Y, got %+v", obj.Rotation)
	}

	// Pointer exactly at the center: rotation is kept
	e.PushPointer(50, 50)
	e.Tick(0)
	if !near(obj.Rotation.Y, math.Pi/2) {
		t.Errorf("Expected rotation unchanged for zero direction, got %+v", obj.Rotation)
	}
	if obj.Position.Z != 0 {
		t.Errorf("Expected z eased to 0, got %v", obj.Position.Z)
	}
}

func TestSlotFaultConfined(t *testing.T) {
	reg := registry.NewStatic(0, threeViewports()...)
	e, clock := newTestEngine(t, reg)
	e.Tick(0)

	e.Pool.At(0).Marker = nil // idle path dereferences the marker
	clock.Advance(6 * time.Second)
	e.Tick(time.Second)

	if faults := e.Status.Ints.Get("engine.slot_faults").Load(); faults != 1 {
		t.Errorf("Expected 1 slot fault, got %d", faults)
	}
	for i := 1; i < 3; i++ {
		if obj := e.Pool.At(i); obj.Mode != ModeIdle || obj.Updated != e.Frame() {
			t.Errorf("Slot %d: expected idle update despite slot 0 fault", i)
		}
	}
}

func TestEmptyAndFailedAdapter(t *testing.T) {
	adapter := &fakeAdapter{initErr: errors.New("store unavailable")}
	e, _ := newTestEngine(t, adapter)

	adapter.local = registry.Shape{X: 100, Y: 0, W: 100, H: 100}
	adapter.onShape(adapter.local)
	for i := 0; i < 10; i++ {
		e.Tick(0)
	}

	if e.Pool.Len() != 0 {
		t.Errorf("Expected empty pool, got %d", e.Pool.Len())
	}
	if e.Status.Ints.Get("registry.init_failures").Load() != 1 {
		t.Error("Expected init failure to be counted")
	}
	if e.Offset.Current.X >= 0 {
		t.Errorf("Expected offset easing to run with an empty pool, got %+v", e.Offset.Current)
	}
	if e.Status.Ints.Get("engine.ticks").Load() != 10 {
		t.Errorf("Expected 10 ticks, got %d", e.Status.Ints.Get("engine.ticks").Load())
	}
}

func TestRebuildHook(t *testing.T) {
	reg := registry.NewStatic(0, threeViewports()...)
	e, _ := newTestEngine(t, reg)

	var calls [][2]int
	e.OnRebuild(func(before, after int) { calls = append(calls, [2]int{before, after}) })

	e.Tick(0)
	reg.SetViewports(0, threeViewports()[:2]...)
	e.Tick(0)

	if len(calls) != 2 || calls[0] != [2]int{0, 3} || calls[1] != [2]int{3, 2} {
		t.Errorf("Expected hook calls [0 3] [3 2], got %v", calls)
	}
}
