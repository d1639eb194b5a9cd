package registry

// Static is an in-process registry for single-viewport runs and tests
// Mutators mark changes; callbacks fire on the next Poll like the SQL registry
type Static struct {
	viewports []Viewport
	local     int // index of the local viewport, -1 when absent

	setDirty   bool
	shapeDirty bool
	polls      int

	onSet   func()
	onShape func(Shape)
}

// NewStatic creates a registry holding viewports; local indexes the own viewport
func NewStatic(local int, viewports ...Viewport) *Static {
	return &Static{viewports: viewports, local: local}
}

// Init marks the set dirty so the first Poll reports the initial list
func (s *Static) Init(meta map[string]string) error {
	if s.local >= 0 && s.local < len(s.viewports) && s.viewports[s.local].Meta == nil {
		s.viewports[s.local].Meta = meta
	}
	s.setDirty = true
	return nil
}

func (s *Static) Viewports() []Viewport         { return s.viewports }
func (s *Static) OnSetChanged(fn func())        { s.onSet = fn }
func (s *Static) OnShapeChanged(fn func(Shape)) { s.onShape = fn }
func (s *Static) Polls() int                    { return s.polls }
func (s *Static) Close() error                  { return nil }

func (s *Static) Local() Shape {
	if s.local < 0 || s.local >= len(s.viewports) {
		return Shape{}
	}
	return s.viewports[s.local].Shape
}

func (s *Static) SetShape(shape Shape) {
	if s.local < 0 || s.local >= len(s.viewports) || s.viewports[s.local].Shape == shape {
		return
	}
	s.viewports[s.local].Shape = shape
	s.shapeDirty = true
}

// SetViewports replaces the live set
func (s *Static) SetViewports(local int, viewports ...Viewport) {
	s.viewports = viewports
	s.local = local
	s.setDirty = true
}

// Move changes one peer's shape without changing the set
func (s *Static) Move(i int, shape Shape) {
	s.viewports[i].Shape = shape
	if i == s.local {
		s.shapeDirty = true
	}
}

func (s *Static) Poll() {
	s.polls++
	if s.shapeDirty {
		s.shapeDirty = false
		if s.onShape != nil {
			s.onShape(s.Local())
		}
	}
	if s.setDirty {
		s.setDirty = false
		if s.onSet != nil {
			s.onSet()
		}
	}
}
