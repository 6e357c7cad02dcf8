package motion

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	RevealThreshold = 0.5
	revealFrequency = 6.0
	revealDamping   = 0.8
	revealEpsilon   = 0.01
)

// Reveal slides a section into place once enough of it is on screen.
type Reveal struct {
	Offset float64

	spring    harmonica.Spring
	vel       float64
	triggered bool
}

func NewReveal(fps int, from float64) *Reveal {
	return &Reveal{
		Offset: from,
		spring: harmonica.NewSpring(harmonica.FPS(fps), revealFrequency, revealDamping),
	}
}

// Observe reports the visible fraction of the section. The reveal starts
// the first time the fraction reaches the threshold and never resets.
func (r *Reveal) Observe(visible float64) bool {
	if !r.triggered && visible >= RevealThreshold {
		r.triggered = true
		return true
	}
	return false
}

func (r *Reveal) Triggered() bool { return r.triggered }

// Update advances the spring by one frame.
func (r *Reveal) Update() {
	if !r.triggered || r.Settled() {
		return
	}
	r.Offset, r.vel = r.spring.Update(r.Offset, r.vel, 0)
	if r.Settled() {
		r.Offset, r.vel = 0, 0
	}
}

func (r *Reveal) Settled() bool {
	return r.triggered && math.Abs(r.Offset) < revealEpsilon && math.Abs(r.vel) < revealEpsilon
}
