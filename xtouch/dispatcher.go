package xtouch

import (
	"sync"

	"github.com/google/uuid"
)

// Listener receives decoded surface events. Listeners run synchronously
// on the transport's receive thread and must not block indefinitely.
type Listener func(Event)

// ListenerID is the handle returned by Register and RegisterOnce, used
// to remove a listener again. Go functions are not comparable, so
// removal is by handle rather than by the function value itself.
type ListenerID string

type registration struct {
	id ListenerID
	fn Listener
}

// Dispatcher fans decoded events out to registered listeners,
// synchronously and in registration order. It is safe to register and
// unregister listeners while a trigger is in progress.
type Dispatcher struct {
	mu         sync.Mutex
	persistent []registration
	oneShot    []registration
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Register adds a persistent listener. The same function may be
// registered more than once and is then invoked once per registration.
func (d *Dispatcher) Register(fn Listener) ListenerID {
	id := ListenerID(uuid.NewString())
	d.mu.Lock()
	d.persistent = append(d.persistent, registration{id: id, fn: fn})
	d.mu.Unlock()
	return id
}

// RegisterOnce adds a listener that receives exactly one event and is
// then removed. A one-shot listener added while a trigger is running is
// not invoked for that trigger.
func (d *Dispatcher) RegisterOnce(fn Listener) ListenerID {
	id := ListenerID(uuid.NewString())
	d.mu.Lock()
	d.oneShot = append(d.oneShot, registration{id: id, fn: fn})
	d.mu.Unlock()
	return id
}

// Unregister removes the listener with the given handle, persistent or
// one-shot, reporting whether it was present.
func (d *Dispatcher) Unregister(id ListenerID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, r := range d.persistent {
		if r.id == id {
			d.persistent = append(d.persistent[:i], d.persistent[i+1:]...)
			return true
		}
	}
	for i, r := range d.oneShot {
		if r.id == id {
			d.oneShot = append(d.oneShot[:i], d.oneShot[i+1:]...)
			return true
		}
	}
	return false
}

// UnregisterAll drops every listener, persistent and one-shot.
func (d *Dispatcher) UnregisterAll() {
	d.mu.Lock()
	d.persistent = nil
	d.oneShot = nil
	d.mu.Unlock()
}

// Trigger delivers the event to all persistent listeners in
// registration order, then to the one-shot listeners registered before
// this call. The one-shot set is snapshotted and cleared atomically, so
// each one-shot listener fires for exactly one event.
func (d *Dispatcher) Trigger(ev Event) {
	d.mu.Lock()
	persistent := make([]registration, len(d.persistent))
	copy(persistent, d.persistent)
	once := d.oneShot
	d.oneShot = nil
	d.mu.Unlock()

	for _, r := range persistent {
		r.fn(ev)
	}
	for _, r := range once {
		r.fn(ev)
	}
}
