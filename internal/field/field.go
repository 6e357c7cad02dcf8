package field

// Field binds a State to a surface, a frame scheduler and a viewport.
type Field struct {
	params    Params
	src       Source
	sched     Scheduler
	surface   Surface
	viewport  Viewport
	state     State
	last      Frame
	observers []Observer

	cancelFrame  func()
	cancelResize func()
}

func New(p Params, src Source, sched Scheduler) *Field {
	return &Field{
		params:    p,
		src:       src,
		sched:     sched,
		observers: make([]Observer, 0),
	}
}

func (f *Field) AddObserver(o Observer) { f.observers = append(f.observers, o) }

// Attach sizes sf to the viewport and seeds the node population. A missing
// surface or viewport leaves the field detached and returns ErrNoSurface.
func (f *Field) Attach(sf Surface, vp Viewport) error {
	if sf == nil || vp == nil {
		return ErrNoSurface
	}
	if f.cancelResize != nil {
		f.cancelResize()
		f.cancelResize = nil
	}
	f.surface = sf
	f.viewport = vp
	w, h := vp.Size()
	f.resize(w, h, true)
	f.cancelResize = vp.Subscribe(f.OnResize)
	return nil
}

func (f *Field) Attached() bool { return f.surface != nil }

func (f *Field) Running() bool { return f.cancelFrame != nil }

// Start begins the per-frame cycle. Calling it while running, or before a
// successful Attach, does nothing.
func (f *Field) Start() {
	if f.surface == nil || f.sched == nil || f.cancelFrame != nil {
		return
	}
	if f.cancelResize == nil {
		f.cancelResize = f.viewport.Subscribe(f.OnResize)
	}
	f.cancelFrame = f.sched.EveryFrame(f.frame)
}

// Stop cancels the frame callback and the resize subscription.
func (f *Field) Stop() {
	if f.cancelFrame != nil {
		f.cancelFrame()
		f.cancelFrame = nil
	}
	if f.cancelResize != nil {
		f.cancelResize()
		f.cancelResize = nil
	}
}

// OnResize resizes the surface and regenerates the node population.
func (f *Field) OnResize(w, h float64) {
	if f.surface == nil {
		return
	}
	f.resize(w, h, !f.params.KeepParticlesOnResize)
}

// Reseed regenerates nodes at the current size.
func (f *Field) Reseed() {
	f.OnResize(f.state.Width, f.state.Height)
}

func (f *Field) resize(w, h float64, clearParticles bool) {
	f.surface.Resize(w, h)
	f.state.Width, f.state.Height = w, h
	f.state.Nodes = Seed(f.params, w, h, f.src)
	if clearParticles {
		f.state.Particles = nil
	}
}

func (f *Field) frame() {
	st, fr := Step(f.state, f.params, f.src)
	f.state, f.last = st, fr
	Render(f.surface, fr, f.params)
	for _, o := range f.observers {
		o.OnFrame(st, fr)
	}
}

// State returns a copy of the current state.
func (f *Field) State() State { return f.state.Clone() }

// LastFrame returns the draw list of the most recent frame.
func (f *Field) LastFrame() Frame { return f.last }

func (f *Field) Params() Params { return f.params }
