package field

import "math"

// Seed creates a fresh node population placed uniformly inside w×h. A
// negative node count yields no nodes.
func Seed(p Params, w, h float64, src Source) []Node {
	nodes := make([]Node, max(p.NodeCount, 0))
	for i := range nodes {
		nodes[i] = Node{
			X:      src.Float64() * w,
			Y:      src.Float64() * h,
			Radius: p.RadiusMin + src.Float64()*(p.RadiusMax-p.RadiusMin),
			VX:     (src.Float64() - 0.5) * 2,
			VY:     (src.Float64() - 0.5) * 2,
			Value:  src.Float64()*2 - 1,
		}
	}
	return nodes
}

// Reflect moves pos by vel inside [0, limit]. A move that would leave the
// interval is mirrored back across the crossed bound and vel changes sign.
func Reflect(pos, vel, limit float64) (float64, float64, bool) {
	next := pos + vel
	flipped := false
	switch {
	case next < 0:
		next, vel, flipped = -next, -vel, true
	case next > limit:
		next, vel, flipped = 2*limit-next, -vel, true
	}
	// a velocity larger than the whole interval can overshoot the mirror
	if next < 0 {
		next = 0
	} else if next > limit {
		next = limit
	}
	return next, vel, flipped
}

// LinkOpacity fades linearly from 1 at distance 0 to 0 at threshold.
func LinkOpacity(d, threshold float64) float64 {
	if threshold <= 0 || d >= threshold {
		return 0
	}
	a := 1 - d/threshold
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}

// Links returns one link per unordered node pair closer than threshold.
func Links(nodes []Node, threshold float64) []Link {
	var links []Link
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			dx := nodes[i].X - nodes[j].X
			dy := nodes[i].Y - nodes[j].Y
			d := math.Sqrt(dx*dx + dy*dy)
			if d >= threshold {
				continue
			}
			links = append(links, Link{
				X0: nodes[i].X, Y0: nodes[i].Y,
				X1: nodes[j].X, Y1: nodes[j].Y,
				Alpha: LinkOpacity(d, threshold),
			})
		}
	}
	return links
}

func emit(n Node, src Source) Particle {
	value := src.Float64()*2 - 1
	return Particle{
		X:     n.X,
		Y:     n.Y,
		VX:    (src.Float64() - 0.5) * 2,
		VY:    src.Float64()*2 - 1.5,
		Value: value,
		Alpha: 1,
	}
}

// Step advances s by one frame. It does not modify s.
func Step(s State, p Params, src Source) (State, Frame) {
	next := State{
		Width:  s.Width,
		Height: s.Height,
		Frame:  s.Frame + 1,
		Nodes:  make([]Node, 0, len(s.Nodes)),
	}
	fr := Frame{
		Index: next.Frame,
		Links: Links(s.Nodes, p.LinkDistance),
	}

	live := append([]Particle(nil), s.Particles...)
	for _, n := range s.Nodes {
		n.X, n.VX, _ = Reflect(n.X, n.VX, s.Width)
		n.Y, n.VY, _ = Reflect(n.Y, n.VY, s.Height)
		next.Nodes = append(next.Nodes, n)
		if src.Float64() < p.EmitChance {
			live = append(live, emit(n, src))
			fr.Emitted++
		}
	}

	next.Particles = make([]Particle, 0, len(live))
	for _, pt := range live {
		pt.X += pt.VX
		pt.Y += pt.VY
		pt.VY += p.Gravity
		pt.Alpha -= p.FadeStep
		if pt.Alpha < 0 {
			fr.Expired++
			continue
		}
		next.Particles = append(next.Particles, pt)
	}

	fr.Nodes = next.Nodes
	fr.Particles = next.Particles
	return next, fr
}
