package field

import (
	"math"
	"math/rand"
	"testing"
)

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

// cycleSource replays vals forever.
type cycleSource struct {
	vals []float64
	i    int
}

func (c *cycleSource) Float64() float64 {
	v := c.vals[c.i%len(c.vals)]
	c.i++
	return v
}

// quietSource never drops below the default emit chance.
func quietSource() *cycleSource {
	return &cycleSource{vals: []float64{0.13, 0.37, 0.61, 0.89, 0.05, 0.72, 0.44, 0.98, 0.26}}
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name        string
		pos, vel    float64
		limit       float64
		wantPos     float64
		wantVel     float64
		wantFlipped bool
	}{
		{"inside", 10, 1, 100, 11, 1, false},
		{"exact upper bound", 99, 1, 100, 100, 1, false},
		{"cross upper", 99.5, 1, 100, 99.5, -1, true},
		{"cross lower", 0.25, -0.5, 100, 0.25, 0.5, true},
		{"exact lower bound", 1, -1, 100, 0, -1, false},
		{"overshoot clamps", 1, 5, 2, 0, -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, vel, flipped := Reflect(tt.pos, tt.vel, tt.limit)
			if math.Abs(pos-tt.wantPos) > 1e-12 {
				t.Errorf("pos: expected %f, got %f", tt.wantPos, pos)
			}
			if vel != tt.wantVel {
				t.Errorf("vel: expected %f, got %f", tt.wantVel, vel)
			}
			if flipped != tt.wantFlipped {
				t.Errorf("flipped: expected %v, got %v", tt.wantFlipped, flipped)
			}
		})
	}
}

func TestNodesStayInBounds(t *testing.T) {
	p := DefaultParams()
	src := rand.New(rand.NewSource(7))
	w, h := 320.0, 180.0
	s := State{Width: w, Height: h, Nodes: Seed(p, w, h, src)}

	for i := 0; i < 5000; i++ {
		s, _ = Step(s, p, src)
		for j, n := range s.Nodes {
			if n.X < 0 || n.X > w || n.Y < 0 || n.Y > h {
				t.Fatalf("step %d node %d out of bounds: (%f, %f)", i, j, n.X, n.Y)
			}
		}
	}
}

func TestVelocityFlipsOnlyWhenLeaving(t *testing.T) {
	p := DefaultParams()
	p.EmitChance = 0
	src := rand.New(rand.NewSource(11))
	w, h := 50.0, 40.0
	s := State{Width: w, Height: h, Nodes: Seed(p, w, h, src)}

	for i := 0; i < 2000; i++ {
		prev := s
		s, _ = Step(s, p, src)
		for j := range s.Nodes {
			before, after := prev.Nodes[j], s.Nodes[j]
			leavesX := before.X+before.VX < 0 || before.X+before.VX > w
			flippedX := math.Signbit(before.VX) != math.Signbit(after.VX)
			if leavesX != flippedX {
				t.Fatalf("step %d node %d: leaves=%v flipped=%v", i, j, leavesX, flippedX)
			}
			if math.Abs(before.VX) != math.Abs(after.VX) || math.Abs(before.VY) != math.Abs(after.VY) {
				t.Fatalf("step %d node %d: speed changed", i, j)
			}
		}
	}
}

func TestParticleFadesAndExpires(t *testing.T) {
	p := DefaultParams()
	s := State{
		Width: 100, Height: 100,
		Particles: []Particle{{X: 50, Y: 50, VX: 0.5, VY: -1, Value: 0.25, Alpha: 1}},
	}

	prevAlpha := 1.0
	for i := 0; i < 200; i++ {
		var fr Frame
		s, fr = Step(s, p, constSource(0.5))
		if len(s.Particles) == 0 {
			if fr.Expired != 1 {
				t.Fatalf("expected one expiry on removal frame, got %d", fr.Expired)
			}
			if len(fr.Particles) != 0 {
				t.Fatal("expired particle still in draw list")
			}
			if i < 90 {
				t.Fatalf("particle expired too early at frame %d", i)
			}
			return
		}
		a := s.Particles[0].Alpha
		if a >= prevAlpha {
			t.Fatalf("frame %d: alpha %f not below %f", i, a, prevAlpha)
		}
		if a < 0 {
			t.Fatalf("frame %d: live particle with negative alpha", i)
		}
		prevAlpha = a
	}
	t.Fatal("particle never expired")
}

func TestParticleGravity(t *testing.T) {
	p := DefaultParams()
	s := State{Width: 100, Height: 100, Particles: []Particle{{X: 10, Y: 10, VY: -1, Alpha: 1}}}

	s, _ = Step(s, p, constSource(0.5))
	got := s.Particles[0]
	if got.Y != 9 {
		t.Errorf("expected y 9, got %f", got.Y)
	}
	if math.Abs(got.VY-(-1+DefaultGravity)) > 1e-12 {
		t.Errorf("expected vy %f, got %f", -1+DefaultGravity, got.VY)
	}
}

func TestSeedCountAndBounds(t *testing.T) {
	p := DefaultParams()
	src := rand.New(rand.NewSource(42))
	nodes := Seed(p, 1024, 768, src)

	if len(nodes) != DefaultNodeCount {
		t.Fatalf("expected %d nodes, got %d", DefaultNodeCount, len(nodes))
	}
	for i, n := range nodes {
		if n.X < 0 || n.X > 1024 || n.Y < 0 || n.Y > 768 {
			t.Errorf("node %d outside bounds", i)
		}
		if n.Radius < 3 || n.Radius > 6 {
			t.Errorf("node %d radius %f outside [3,6]", i, n.Radius)
		}
		if math.Abs(n.VX) > 1 || math.Abs(n.VY) > 1 {
			t.Errorf("node %d velocity outside [-1,1]", i)
		}
		if n.Value < -1 || n.Value > 1 {
			t.Errorf("node %d value outside [-1,1]", i)
		}
	}
}

func TestSeedNegativeCount(t *testing.T) {
	p := DefaultParams()
	p.NodeCount = -1
	if nodes := Seed(p, 100, 100, rand.New(rand.NewSource(1))); len(nodes) != 0 {
		t.Errorf("expected no nodes, got %d", len(nodes))
	}
}

func TestLinkOpacity(t *testing.T) {
	tests := []struct {
		d, threshold, want float64
	}{
		{0, 150, 1},
		{75, 150, 0.5},
		{149.999, 150, 1 - 149.999/150},
		{150, 150, 0},
		{400, 150, 0},
		{10, 0, 0},
	}

	for _, tt := range tests {
		got := LinkOpacity(tt.d, tt.threshold)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("LinkOpacity(%f, %f): expected %f, got %f", tt.d, tt.threshold, tt.want, got)
		}
	}
}

func TestLinks(t *testing.T) {
	nodes := []Node{{X: 0}, {X: 100}, {X: 300}}
	links := Links(nodes, 150)

	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	want := 1 - 100.0/150
	if math.Abs(links[0].Alpha-want) > 1e-12 {
		t.Errorf("expected alpha %f, got %f", want, links[0].Alpha)
	}
}

func TestStepEmission(t *testing.T) {
	p := DefaultParams()
	nodes := Seed(p, 200, 200, quietSource())
	s := State{Width: 200, Height: 200, Nodes: nodes}

	_, fr := Step(s, p, quietSource())
	if fr.Emitted != 0 || len(fr.Particles) != 0 {
		t.Errorf("expected no emission, got %d", fr.Emitted)
	}

	next, fr := Step(s, p, constSource(0))
	if fr.Emitted != len(nodes) {
		t.Errorf("expected %d emissions, got %d", len(nodes), fr.Emitted)
	}
	if len(next.Particles) != len(nodes) {
		t.Errorf("expected %d live particles, got %d", len(nodes), len(next.Particles))
	}
	for _, pt := range next.Particles {
		if pt.Alpha != 1-DefaultFadeStep {
			t.Errorf("fresh particle should fade once, alpha %f", pt.Alpha)
		}
	}
}

func TestStepLeavesInputUntouched(t *testing.T) {
	p := DefaultParams()
	s := State{Width: 100, Height: 100, Nodes: Seed(p, 100, 100, quietSource())}
	before := s.Clone()

	Step(s, p, constSource(0))

	for i := range s.Nodes {
		if s.Nodes[i] != before.Nodes[i] {
			t.Fatalf("node %d mutated", i)
		}
	}
	if len(s.Particles) != 0 {
		t.Fatal("particles appended to input state")
	}
}

func BenchmarkStep(b *testing.B) {
	p := DefaultParams()
	src := rand.New(rand.NewSource(1))
	s := State{Width: 1280, Height: 720, Nodes: Seed(p, 1280, 720, src)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, _ = Step(s, p, src)
	}
}

func TestMultiSurface(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	m := MultiSurface(a, b)
	m.Resize(100, 50)
	Render(m, Frame{Nodes: []Node{{X: 1, Y: 1, Radius: 3}}}, DefaultParams())

	for _, r := range []*recorder{a, b} {
		if r.w != 100 || r.h != 50 {
			t.Errorf("expected 100x50, got %fx%f", r.w, r.h)
		}
		if r.count("circle") != 1 || r.count("clear") != 1 {
			t.Errorf("expected clear and one circle, got %+v", r.ops)
		}
	}
	if w, _ := m.Size(); w != 100 {
		t.Errorf("expected size from first surface, got %f", w)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0.00"},
		{0.5, "0.50"},
		{-0.256, "-0.26"},
		{1, "1.00"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.v); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
