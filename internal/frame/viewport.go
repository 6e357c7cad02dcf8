package frame

// Viewport tracks the visible size of a host and notifies subscribers when it
// changes.
type Viewport struct {
	w, h float64
	next int
	subs map[int]func(w, h float64)
}

func NewViewport(w, h float64) *Viewport {
	return &Viewport{w: w, h: h, subs: make(map[int]func(w, h float64))}
}

func (v *Viewport) Size() (w, h float64) { return v.w, v.h }

// Set updates the size. Subscribers are only notified on an actual change.
func (v *Viewport) Set(w, h float64) {
	if w == v.w && h == v.h {
		return
	}
	v.w, v.h = w, h
	for i := 0; i < v.next; i++ {
		if fn, ok := v.subs[i]; ok {
			fn(w, h)
		}
	}
}

func (v *Viewport) Subscribe(fn func(w, h float64)) (cancel func()) {
	id := v.next
	v.next++
	v.subs[id] = fn
	return func() { delete(v.subs, id) }
}

func (v *Viewport) Subscribers() int { return len(v.subs) }
