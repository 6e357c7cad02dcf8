package field

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/synapse/internal/frame"
)

type op struct {
	kind  string
	alpha float64
	text  string
}

// recorder is a Surface that keeps the operations of the current frame.
type recorder struct {
	w, h    float64
	ops     []op
	clears  int
	resizes int
}

func (r *recorder) Size() (float64, float64) { return r.w, r.h }
func (r *recorder) Resize(w, h float64)      { r.w, r.h = w, h; r.resizes++ }
func (r *recorder) Clear()                   { r.ops = r.ops[:0]; r.ops = append(r.ops, op{kind: "clear"}); r.clears++ }
func (r *recorder) Line(x0, y0, x1, y1, a float64) {
	r.ops = append(r.ops, op{kind: "line", alpha: a})
}
func (r *recorder) Circle(x, y, rad, a float64) { r.ops = append(r.ops, op{kind: "circle", alpha: a}) }
func (r *recorder) Text(x, y float64, s string, a float64) {
	r.ops = append(r.ops, op{kind: "text", alpha: a, text: s})
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

var _ = Describe("Field", func() {
	var (
		driver *frame.Driver
		vp     *frame.Viewport
		surf   *recorder
		f      *Field
	)

	BeforeEach(func() {
		driver = frame.NewDriver()
		vp = frame.NewViewport(800, 600)
		surf = &recorder{}
		f = New(DefaultParams(), quietSource(), driver)
	})

	Context("when attached to an 800x600 surface", func() {
		BeforeEach(func() {
			Expect(f.Attach(surf, vp)).To(Succeed())
		})

		It("sizes the surface to the viewport", func() {
			w, h := surf.Size()
			Expect(w).To(Equal(800.0))
			Expect(h).To(Equal(600.0))
		})

		It("draws fifty nodes and no particles after one frame", func() {
			f.Start()
			driver.Tick()

			Expect(surf.ops[0].kind).To(Equal("clear"))
			Expect(surf.count("circle")).To(Equal(DefaultNodeCount))
			Expect(surf.count("text")).To(BeZero())
			Expect(f.State().Particles).To(BeEmpty())
			Expect(f.State().Frame).To(Equal(1))
		})

		It("draws links before nodes", func() {
			f.Start()
			driver.Tick()

			lastLine, firstCircle := -1, -1
			for i, o := range surf.ops {
				if o.kind == "line" {
					lastLine = i
				}
				if o.kind == "circle" && firstCircle < 0 {
					firstCircle = i
				}
			}
			Expect(lastLine).To(BeNumerically("<", firstCircle))
		})

		It("treats Start as idempotent", func() {
			f.Start()
			f.Start()
			Expect(driver.Pending()).To(Equal(1))

			driver.Tick()
			Expect(f.State().Frame).To(Equal(1))
		})

		It("schedules nothing after Stop", func() {
			f.Start()
			driver.Tick()
			f.Stop()

			Expect(driver.Active()).To(BeFalse())
			Expect(vp.Subscribers()).To(BeZero())

			driver.Tick()
			Expect(f.State().Frame).To(Equal(1))
			Expect(f.Running()).To(BeFalse())
		})

		It("resubscribes to resizes when restarted", func() {
			f.Start()
			f.Stop()
			f.Start()
			Expect(vp.Subscribers()).To(Equal(1))
			Expect(driver.Pending()).To(Equal(1))
		})

		It("regenerates nodes inside the new bounds on resize", func() {
			f.Start()
			vp.Set(1024, 300)

			st := f.State()
			Expect(st.Nodes).To(HaveLen(DefaultNodeCount))
			Expect(st.Width).To(Equal(1024.0))
			for _, n := range st.Nodes {
				Expect(n.X).To(BeNumerically(">=", 0))
				Expect(n.X).To(BeNumerically("<=", 1024))
				Expect(n.Y).To(BeNumerically(">=", 0))
				Expect(n.Y).To(BeNumerically("<=", 300))
			}
			w, h := surf.Size()
			Expect([]float64{w, h}).To(Equal([]float64{1024, 300}))
		})

		It("notifies observers every frame", func() {
			var seen []int
			f.AddObserver(ObserverFunc(func(s State, fr Frame) {
				seen = append(seen, fr.Index)
			}))
			f.Start()
			driver.Tick()
			driver.Tick()
			Expect(seen).To(Equal([]int{1, 2}))
		})
	})

	Describe("resize particle policy", func() {
		emitAll := func(p Params) *Field {
			return New(p, constSource(0), driver)
		}

		It("clears particles by default", func() {
			f = emitAll(DefaultParams())
			Expect(f.Attach(surf, vp)).To(Succeed())
			f.Start()
			driver.Tick()
			Expect(f.State().Particles).NotTo(BeEmpty())

			vp.Set(640, 480)
			Expect(f.State().Particles).To(BeEmpty())
		})

		It("keeps particles when asked to", func() {
			p := DefaultParams()
			p.KeepParticlesOnResize = true
			f = emitAll(p)
			Expect(f.Attach(surf, vp)).To(Succeed())
			f.Start()
			driver.Tick()
			live := len(f.State().Particles)

			vp.Set(640, 480)
			Expect(f.State().Particles).To(HaveLen(live))
		})
	})

	Describe("seeded resize", func() {
		It("places exactly NodeCount nodes within W×H", func() {
			f = New(DefaultParams(), rand.New(rand.NewSource(99)), driver)
			Expect(f.Attach(surf, vp)).To(Succeed())
			f.OnResize(333, 222)

			st := f.State()
			Expect(st.Nodes).To(HaveLen(DefaultNodeCount))
			for _, n := range st.Nodes {
				Expect(n.X).To(And(BeNumerically(">=", 0), BeNumerically("<=", 333)))
				Expect(n.Y).To(And(BeNumerically(">=", 0), BeNumerically("<=", 222)))
			}
		})
	})

	Describe("without a surface", func() {
		It("fails silently and never schedules frames", func() {
			Expect(f.Attach(nil, vp)).To(MatchError(ErrNoSurface))
			f.Start()

			Expect(driver.Pending()).To(BeZero())
			Expect(f.Attached()).To(BeFalse())
			f.Stop()
		})
	})

	Describe("labels", func() {
		It("draws node values when enabled", func() {
			p := DefaultParams()
			p.Labels = true
			f = New(p, quietSource(), driver)
			Expect(f.Attach(surf, vp)).To(Succeed())
			f.Start()
			driver.Tick()

			Expect(surf.count("text")).To(Equal(DefaultNodeCount))

			var texts []string
			for _, o := range surf.ops {
				if o.kind == "text" {
					texts = append(texts, o.text)
				}
			}
			for i, n := range f.State().Nodes {
				Expect(texts[i]).To(Equal(FormatValue(n.Value)))
			}
		})
	})
})
