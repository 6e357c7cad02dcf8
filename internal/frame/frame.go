// Package frame provides host-agnostic frame scheduling and viewport
// notification. Hosts call Driver.Tick once per display frame and
// Viewport.Set whenever their visible area changes.
package frame

// Driver is a scheduler whose frames are pumped explicitly by the host.
type Driver struct {
	next      int
	callbacks map[int]func()
	order     []int
	ticks     int
}

func NewDriver() *Driver {
	return &Driver{callbacks: make(map[int]func())}
}

// EveryFrame registers fn to run on every Tick until cancel is called.
func (d *Driver) EveryFrame(fn func()) (cancel func()) {
	id := d.next
	d.next++
	d.callbacks[id] = fn
	d.order = append(d.order, id)
	return func() { d.remove(id) }
}

func (d *Driver) remove(id int) {
	if _, ok := d.callbacks[id]; !ok {
		return
	}
	delete(d.callbacks, id)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Tick runs every registered callback once, in registration order.
// Callbacks cancelled during the tick are skipped.
func (d *Driver) Tick() {
	d.ticks++
	ids := append([]int(nil), d.order...)
	for _, id := range ids {
		if fn, ok := d.callbacks[id]; ok {
			fn()
		}
	}
}

// Active reports whether another frame has been requested.
func (d *Driver) Active() bool { return len(d.callbacks) > 0 }

// Pending is the number of registered frame callbacks.
func (d *Driver) Pending() int { return len(d.callbacks) }

// Ticks is the number of frames pumped so far.
func (d *Driver) Ticks() int { return d.ticks }
