package registry

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/orbitals/parameter"
)

// Options tunes the SQL registry liveness policy
type Options struct {
	HeartbeatInterval time.Duration
	StaleAfter        time.Duration
	PollInterval      time.Duration
	RetryMin          time.Duration
	RetryMax          time.Duration

	// Now overrides the wall clock in tests
	Now func() time.Time
}

// DefaultOptions returns the parameter defaults
func DefaultOptions() Options {
	return Options{
		HeartbeatInterval: parameter.RegistryHeartbeatInterval,
		StaleAfter:        parameter.RegistryStaleAfter,
		PollInterval:      parameter.RegistryPollInterval,
		RetryMin:          parameter.RegistryRetryMin,
		RetryMax:          parameter.RegistryRetryMax,
	}
}

// SQLRegistry shares viewport descriptors between processes through one SQLite file
type SQLRegistry struct {
	mu   sync.Mutex
	db   *sql.DB
	opts Options
	ctx  context.Context

	id    string
	meta  map[string]string
	shape Shape

	initialized bool
	shapeDirty  bool
	backoff     time.Duration
	nextRetry   time.Time
	lastBeat    time.Time
	lastRead    time.Time
	failures    int

	viewports []Viewport
	ids       []string

	onSet   func()
	onShape func(Shape)
}

// NewSQLRegistry creates a registry for the local viewport at shape
func NewSQLRegistry(ctx context.Context, db *sql.DB, shape Shape, opts Options) *SQLRegistry {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SQLRegistry{
		db:    db,
		opts:  opts,
		ctx:   ctx,
		id:    uuid.NewString(),
		shape: shape,
	}
}

// ID returns the local viewport id
func (r *SQLRegistry) ID() string {
	return r.id
}

// Failures returns the number of failed registration attempts
func (r *SQLRegistry) Failures() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failures
}

// Init registers the local viewport
// On failure the error is returned and Poll retries with backoff
func (r *SQLRegistry) Init(meta map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.meta = meta
	return r.registerLocked(r.opts.Now())
}

func (r *SQLRegistry) registerLocked(now time.Time) error {
	err := insertViewport(r.ctx, r.db, Viewport{ID: r.id, Shape: r.shape, Meta: r.meta}, now)
	if err != nil {
		r.failures++
		if r.backoff == 0 {
			r.backoff = r.opts.RetryMin
		} else {
			r.backoff = min(r.backoff*2, r.opts.RetryMax)
		}
		r.nextRetry = now.Add(r.backoff)
		return err
	}

	r.initialized = true
	r.backoff = 0
	r.lastBeat = now
	r.lastRead = time.Time{} // force read on next Poll
	log.Printf("registry: registered viewport %s at %s", r.id, r.shape)
	return nil
}

func (r *SQLRegistry) Viewports() []Viewport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewports
}

func (r *SQLRegistry) OnSetChanged(fn func()) {
	r.mu.Lock()
	r.onSet = fn
	r.mu.Unlock()
}

func (r *SQLRegistry) OnShapeChanged(fn func(Shape)) {
	r.mu.Lock()
	r.onShape = fn
	r.mu.Unlock()
}

func (r *SQLRegistry) Local() Shape {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shape
}

func (r *SQLRegistry) SetShape(s Shape) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s == r.shape {
		return
	}
	r.shape = s
	r.shapeDirty = true
}

// Poll persists local changes, refreshes the heartbeat, evicts stale peers
// and re-reads the shared table; callbacks run after the lock is released
func (r *SQLRegistry) Poll() {
	setChanged, shapeChanged, shape := r.pollLocked()

	r.mu.Lock()
	onSet, onShape := r.onSet, r.onShape
	r.mu.Unlock()

	if shapeChanged && onShape != nil {
		onShape(shape)
	}
	if setChanged && onSet != nil {
		onSet()
	}
}

func (r *SQLRegistry) pollLocked() (setChanged, shapeChanged bool, shape Shape) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.opts.Now()

	// Local shape changes are reported even before registration succeeds
	if r.shapeDirty {
		r.shapeDirty = false
		shapeChanged = true
		shape = r.shape
		if r.initialized {
			if _, err := updateShape(r.ctx, r.db, r.id, r.shape, now); err != nil {
				log.Printf("registry: %v", err)
			}
			r.lastRead = time.Time{}
		}
	}

	if !r.initialized {
		if now.Before(r.nextRetry) {
			return
		}
		if err := r.registerLocked(now); err != nil {
			log.Printf("registry: init retry failed (next in %v): %v", r.backoff, err)
			return
		}
	}

	if now.Sub(r.lastBeat) >= r.opts.HeartbeatInterval {
		r.lastBeat = now
		alive, err := touchViewport(r.ctx, r.db, r.id, now)
		if err != nil {
			log.Printf("registry: %v", err)
		} else if !alive {
			// Evicted by a peer while stalled; rejoin at the end of the slot order
			if err := r.registerLocked(now); err != nil {
				r.initialized = false
				log.Printf("registry: rejoin failed: %v", err)
				return
			}
		}

		if n, err := evictStale(r.ctx, r.db, now.Add(-r.opts.StaleAfter)); err != nil {
			log.Printf("registry: %v", err)
		} else if n > 0 {
			log.Printf("registry: evicted %d stale viewport(s)", n)
			r.lastRead = time.Time{}
		}
	}

	if r.lastRead.IsZero() || now.Sub(r.lastRead) >= r.opts.PollInterval {
		r.lastRead = now
		// Fresh slice per read: consumers may hold the previous one
		list, err := listViewports(r.ctx, r.db, nil)
		if err != nil {
			log.Printf("registry: %v", err)
			return
		}
		r.viewports = list
		if !sameIDs(r.ids, list) {
			r.ids = collectIDs(r.ids, list)
			setChanged = true
		}
	}
	return
}

// Close removes the local row
func (r *SQLRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.initialized {
		return nil
	}
	r.initialized = false
	return deleteViewport(context.Background(), r.db, r.id)
}
