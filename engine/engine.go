package engine

import (
	"log"
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/orbitals/event"
	"github.com/lixenwraith/orbitals/parameter"
	"github.com/lixenwraith/orbitals/registry"
	"github.com/lixenwraith/orbitals/scene"
	"github.com/lixenwraith/orbitals/status"
	"github.com/lixenwraith/orbitals/vmath"
)

// Config holds animation tunables
type Config struct {
	Falloff     float64       // Per-tick easing factor
	IdleTimeout time.Duration // Quiet interval before idle-orbit mode
}

// DefaultConfig returns the parameter defaults
func DefaultConfig() Config {
	return Config{
		Falloff:     parameter.AnimationFalloff,
		IdleTimeout: parameter.IdleTimeout,
	}
}

// Engine is the explicit animation context: offset, input activity, pool and scene
// Engine state is owned by the goroutine calling Tick; other goroutines
// interact only through the Push* methods, which enqueue events
type Engine struct {
	// ===== Immutable After Init =====
	Scene  *scene.Scene
	Pool   *Pool
	Status *status.Registry

	adapter registry.Adapter
	queue   *event.Queue
	clock   Clock
	cfg     Config

	// ===== Tick-Goroutine Exclusive =====
	Offset   SharedOffset
	Activity *InputActivity
	Camera   scene.Camera

	frame     int64
	drain     []event.Event
	onRebuild func(before, after int)

	// ===== Cached Metric Pointers =====
	statTicks      *atomic.Int64
	statFaults     *atomic.Int64
	statPool       *atomic.Int64
	statViewports  *atomic.Int64
	statRebuilds   *atomic.Int64
	statInitFailed *atomic.Int64
	statIdle       *atomic.Bool
}

// New creates an engine bound to a registry adapter
// The initial offset is taken from the local shape without easing
func New(adapter registry.Adapter, clock Clock, reg *status.Registry, cfg Config) *Engine {
	sc := scene.New()
	e := &Engine{
		Scene:   sc,
		Pool:    NewPool(sc),
		Status:  reg,
		adapter: adapter,
		queue:   event.NewQueue(),
		clock:   clock,
		cfg:     cfg,
		drain:   make([]event.Event, 0, 64),

		statTicks:      reg.Ints.Get("engine.ticks"),
		statFaults:     reg.Ints.Get("engine.slot_faults"),
		statPool:       reg.Ints.Get("pool.size"),
		statViewports:  reg.Ints.Get("registry.viewports"),
		statRebuilds:   reg.Ints.Get("pool.rebuilds"),
		statInitFailed: reg.Ints.Get("registry.init_failures"),
		statIdle:       reg.Bools.Get("engine.idle"),
	}

	e.Activity = NewInputActivity(clock, cfg.IdleTimeout, func(gen uint64) {
		e.queue.Push(event.Event{Type: event.EventIdleTimeout, Payload: event.IdleTimeoutPayload{Generation: gen}})
	})

	local := adapter.Local()
	e.Offset.Retarget(local)
	e.Offset.Snap()
	e.Camera = scene.Camera{Width: float64(local.W), Height: float64(local.H)}

	adapter.OnSetChanged(func() {
		e.queue.Push(event.Event{Type: event.EventViewportSetChanged})
	})
	adapter.OnShapeChanged(func(s registry.Shape) {
		e.queue.Push(event.Event{Type: event.EventLocalShapeChanged, Payload: event.ShapePayload{X: s.X, Y: s.Y, W: s.W, H: s.H}})
	})

	return e
}

// Init registers with the adapter and arms the idle countdown
// Adapter failure is logged; the engine runs with an empty pool until the adapter recovers
func (e *Engine) Init(meta map[string]string) {
	if err := e.adapter.Init(meta); err != nil {
		e.statInitFailed.Add(1)
		log.Printf("engine: registry init failed, continuing with no viewports: %v", err)
	}
	e.Activity.Arm()
}

// Close cancels timers and leaves the shared set
func (e *Engine) Close() error {
	e.Activity.Stop()
	return e.adapter.Close()
}

// Frame returns the number of completed ticks
func (e *Engine) Frame() int64 {
	return e.frame
}

// PushPointer reports a pointer move in local viewport pixels; safe from any goroutine
func (e *Engine) PushPointer(x, y float64) {
	e.queue.Push(event.Event{Type: event.EventPointerMove, Payload: event.PointerPayload{X: x, Y: y}})
}

// PushResize reports a new surface extent in pixels; safe from any goroutine
func (e *Engine) PushResize(w, h float64) {
	e.queue.Push(event.Event{Type: event.EventResize, Payload: event.ResizePayload{Width: w, Height: h}})
}

// PushMove requests an origin shift of the local viewport; safe from any goroutine
func (e *Engine) PushMove(dx, dy int) {
	e.queue.Push(event.Event{Type: event.EventLocalMove, Payload: event.MovePayload{DX: dx, DY: dy}})
}

// ProcessEvents drains the queue in FIFO order
func (e *Engine) ProcessEvents() {
	e.drain = e.queue.ConsumeInto(e.drain)
	for i := range e.drain {
		e.handle(e.drain[i])
		e.drain[i] = event.Event{}
	}
}

func (e *Engine) handle(ev event.Event) {
	switch ev.Type {
	case event.EventPointerMove:
		p := ev.Payload.(event.PointerPayload)
		e.Activity.Move(p.X, p.Y)

	case event.EventIdleTimeout:
		p := ev.Payload.(event.IdleTimeoutPayload)
		if e.Activity.Expire(p.Generation) {
			log.Printf("engine: idle after %v without pointer input", e.cfg.IdleTimeout)
		}

	case event.EventViewportSetChanged:
		e.rebuild()

	case event.EventLocalShapeChanged:
		p := ev.Payload.(event.ShapePayload)
		e.Offset.Retarget(registry.Shape{X: p.X, Y: p.Y, W: p.W, H: p.H})

	case event.EventResize:
		p := ev.Payload.(event.ResizePayload)
		e.Camera = scene.Camera{Width: p.Width, Height: p.Height}
		local := e.adapter.Local()
		local.W, local.H = int(p.Width), int(p.Height)
		e.adapter.SetShape(local)

	case event.EventLocalMove:
		p := ev.Payload.(event.MovePayload)
		local := e.adapter.Local()
		local.X += p.DX
		local.Y += p.DY
		e.adapter.SetShape(local)
	}
}

// rebuild runs the pool rebuild; a malformed descriptor leaves the previous pool in place
func (e *Engine) rebuild() {
	defer func() {
		if r := recover(); r != nil {
			e.statFaults.Add(1)
			log.Printf("engine: pool rebuild rejected: %v", r)
		}
	}()

	before := e.Pool.Len()
	vs := e.adapter.Viewports()
	e.Pool.Rebuild(vs)
	e.statRebuilds.Add(1)
	log.Printf("engine: pool rebuilt with %d viewport(s)", len(vs))

	if e.onRebuild != nil {
		e.onRebuild(before, len(vs))
	}
}

// OnRebuild registers a hook run on the tick goroutine after each successful rebuild
func (e *Engine) OnRebuild(fn func(before, after int)) {
	e.onRebuild = fn
}

// Tick advances the animation by one frame
// elapsed is the time since the scheduler started and drives the idle orbits
func (e *Engine) Tick(elapsed time.Duration) {
	e.frame++

	// 1. Adapter liveness bookkeeping; callbacks enqueue events
	e.adapter.Poll()

	// 2. Pending events, including rebuilds, complete before the pool is read
	e.ProcessEvents()

	// 3. Shared offset
	e.Offset.Step(e.cfg.Falloff)
	e.Scene.World.SetPosition(vmath.Vec3F{X: e.Offset.Current.X, Y: e.Offset.Current.Y})

	// 4. Per-slot transforms
	vs := e.adapter.Viewports()
	secs := elapsed.Seconds()
	idle := e.Activity.Idle
	px, py := e.Offset.ToShared(e.Activity.MouseX, e.Activity.MouseY)

	for i, obj := range e.Pool.objects {
		if i >= len(vs) {
			continue
		}
		e.updateSlot(obj, vs[i].Shape, idle, secs, px, py)
	}

	e.statTicks.Add(1)
	e.statPool.Store(int64(e.Pool.Len()))
	e.statViewports.Store(int64(len(vs)))
	e.statIdle.Store(idle)
}

// updateSlot applies exactly one of the two update paths
// A fault is confined to this slot
func (e *Engine) updateSlot(obj *SceneObject, shape registry.Shape, idle bool, secs, px, py float64) {
	defer func() {
		if r := recover(); r != nil {
			e.statFaults.Add(1)
			log.Printf("engine: slot %d update failed: %v", obj.Slot, r)
		}
	}()

	cx, cy := shape.Center()
	if idle {
		e.updateIdle(obj, cx, cy, secs)
	} else {
		e.updateInteractive(obj, cx, cy, px, py)
	}

	obj.Updated = e.frame
	obj.Node.SetPosition(obj.Position)
	obj.Node.SetRotation(obj.Rotation)
}

// updateInteractive eases toward the slot center in the z=0 plane and yaws toward the pointer
func (e *Engine) updateInteractive(obj *SceneObject, cx, cy, px, py float64) {
	k := e.cfg.Falloff
	obj.Position = vmath.V3FEase(obj.Position, vmath.Vec3F{X: cx, Y: cy}, k)

	dir := vmath.V2FSub(vmath.Vec2F{X: px, Y: py}, vmath.Vec2F{X: cx, Y: cy})
	if mag := vmath.V2FMag(dir); mag > 0 {
		obj.Rotation = vmath.Vec3F{Y: math.Atan2(dir.Y/mag, dir.X/mag)}
	}
	obj.Mode = ModeInteractive
}

// updateIdle eases toward a staggered elliptical orbit around the slot center and tumbles along it
func (e *Engine) updateIdle(obj *SceneObject, cx, cy, secs float64) {
	off := OrbitOffset(obj.Slot, secs)

	target := vmath.Vec3F{X: cx + off.X, Y: cy + off.Y, Z: off.Z}
	obj.Position = vmath.V3FEase(obj.Position, target, e.cfg.Falloff)

	if dir, ok := vmath.V3FNormalize(off); ok {
		obj.Rotation = vmath.Vec3F{
			X: math.Atan2(dir.Y, dir.Z),
			Y: math.Atan2(dir.X, dir.Z),
			Z: math.Atan2(dir.Y, dir.X),
		}
	}

	obj.Marker.SetPosition(vmath.Vec3F{})
	obj.Mode = ModeIdle
}

// OrbitOffset returns the idle orbit displacement of a slot at time secs
func OrbitOffset(slot int, secs float64) vmath.Vec3F {
	i := float64(slot)
	t := secs + i*parameter.OrbitPhaseStep
	radius := parameter.OrbitRadiusBase + i*parameter.OrbitRadiusStep
	speed := parameter.OrbitSpeedBase + i*parameter.OrbitSpeedStep

	return vmath.Vec3F{
		X: radius * math.Cos(t*speed),
		Y: radius * math.Sin(t*speed) * parameter.OrbitFlattenY,
		Z: radius * math.Sin(t*speed*parameter.OrbitDepthRate),
	}
}
