package field

const (
	DefaultNodeCount    = 50
	DefaultLinkDistance = 150.0
	DefaultEmitChance   = 0.01
	DefaultFadeStep     = 0.01
	DefaultGravity      = 0.02
	DefaultRadiusMin    = 3.0
	DefaultRadiusMax    = 6.0
	DefaultNodeAlpha    = 0.7
)

// Node is a point drifting at constant velocity inside the surface bounds.
type Node struct {
	X, Y   float64
	Radius float64
	VX, VY float64
	Value  float64
}

// Particle is an emitted label that drifts, falls and fades out.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Value  float64
	Alpha  float64
}

// State is everything the field needs to produce the next frame.
type State struct {
	Width, Height float64
	Frame         int
	Nodes         []Node
	Particles     []Particle
}

// Clone returns a deep copy so callers can hold on to a frame's state.
func (s State) Clone() State {
	c := s
	c.Nodes = append([]Node(nil), s.Nodes...)
	c.Particles = append([]Particle(nil), s.Particles...)
	return c
}

// Params are the field tunables.
type Params struct {
	NodeCount    int
	LinkDistance float64
	EmitChance   float64
	FadeStep     float64
	Gravity      float64
	RadiusMin    float64
	RadiusMax    float64
	NodeAlpha    float64
	// Labels draws each node's value on top of its circle.
	Labels bool
	// KeepParticlesOnResize leaves live particles in place when the node
	// population is regenerated. By default both populations are reset.
	KeepParticlesOnResize bool
}

func DefaultParams() Params {
	return Params{
		NodeCount:    DefaultNodeCount,
		LinkDistance: DefaultLinkDistance,
		EmitChance:   DefaultEmitChance,
		FadeStep:     DefaultFadeStep,
		Gravity:      DefaultGravity,
		RadiusMin:    DefaultRadiusMin,
		RadiusMax:    DefaultRadiusMax,
		NodeAlpha:    DefaultNodeAlpha,
	}
}

// Source supplies uniform values in [0, 1).
type Source interface {
	Float64() float64
}

// Link is a line between two nodes closer than the link distance.
type Link struct {
	X0, Y0, X1, Y1 float64
	Alpha          float64
}

// Frame is the draw list produced by one Step.
type Frame struct {
	Index     int
	Links     []Link
	Nodes     []Node
	Particles []Particle
	// Emitted counts particles created during this frame.
	Emitted int
	// Expired counts particles dropped during this frame.
	Expired int
}

// Surface is a 2D drawing target measured in field units.
type Surface interface {
	Size() (w, h float64)
	Resize(w, h float64)
	Clear()
	Line(x0, y0, x1, y1, alpha float64)
	Circle(x, y, r, alpha float64)
	Text(x, y float64, s string, alpha float64)
}

// Scheduler calls fn once per host frame until the returned cancel is called.
type Scheduler interface {
	EveryFrame(fn func()) (cancel func())
}

// Viewport reports the host's visible size and notifies size changes.
type Viewport interface {
	Size() (w, h float64)
	Subscribe(fn func(w, h float64)) (cancel func())
}

// Observer is notified after every rendered frame.
type Observer interface {
	OnFrame(s State, f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s State, f Frame)

func (fn ObserverFunc) OnFrame(s State, f Frame) { fn(s, f) }
