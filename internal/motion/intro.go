package motion

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	IntroDelay    = 500 * time.Millisecond
	IntroFade     = time.Second
	IntroPulse    = 2 * time.Second
	IntroOffset   = 50.0
	IntroMaxScale = 1.05
)

type introStage int

const (
	introWaiting introStage = iota
	introFading
	introPulseUp
	introPulseDown
	introDone
)

// Intro fades the hero block in while sliding it up, then pulses its scale
// once. Page content stays hidden until Done.
type Intro struct {
	Opacity float64
	Offset  float64
	Scale   float64

	stage   introStage
	wait    time.Duration
	opacity *gween.Tween
	offset  *gween.Tween
	scale   *gween.Tween
}

func NewIntro() *Intro {
	return &Intro{Offset: IntroOffset, Scale: 1}
}

func seconds(d time.Duration) float32 { return float32(d.Seconds()) }

func (in *Intro) Update(dt time.Duration) {
	switch in.stage {
	case introWaiting:
		in.wait += dt
		if in.wait < IntroDelay {
			return
		}
		over := in.wait - IntroDelay
		in.opacity = gween.New(0, 1, seconds(IntroFade), ease.OutCubic)
		in.offset = gween.New(IntroOffset, 0, seconds(IntroFade), ease.OutCubic)
		in.stage = introFading
		if over > 0 {
			in.Update(over)
		}
	case introFading:
		o, _ := in.opacity.Update(seconds(dt))
		y, done := in.offset.Update(seconds(dt))
		in.Opacity, in.Offset = float64(o), float64(y)
		if done {
			in.Opacity, in.Offset = 1, 0
			in.scale = gween.New(1, IntroMaxScale, seconds(IntroPulse/2), ease.InOutSine)
			in.stage = introPulseUp
		}
	case introPulseUp, introPulseDown:
		s, done := in.scale.Update(seconds(dt))
		in.Scale = float64(s)
		if !done {
			return
		}
		if in.stage == introPulseUp {
			in.Scale = IntroMaxScale
			in.scale = gween.New(IntroMaxScale, 1, seconds(IntroPulse/2), ease.InOutSine)
			in.stage = introPulseDown
			return
		}
		in.Scale = 1
		in.stage = introDone
	}
}

// Skip jumps to the end state.
func (in *Intro) Skip() {
	in.Opacity, in.Offset, in.Scale = 1, 0, 1
	in.stage = introDone
}

func (in *Intro) Done() bool { return in.stage == introDone }
