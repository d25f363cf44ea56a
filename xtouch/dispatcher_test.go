package xtouch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherInvokesInRegistrationOrder(t *testing.T) {
	d := NewDispatcher()
	var order []int
	d.Register(func(Event) { order = append(order, 1) })
	d.Register(func(Event) { order = append(order, 2) })
	d.Register(func(Event) { order = append(order, 3) })

	d.Trigger(SliderMoved{Track: 1})
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestDispatcherAllowsDuplicateRegistration(t *testing.T) {
	d := NewDispatcher()
	count := 0
	fn := func(Event) { count++ }
	first := d.Register(fn)
	d.Register(fn)

	d.Trigger(SliderMoved{Track: 1})
	assert.Equal(t, 2, count, "one invocation per registration")

	// Removing one handle leaves the other registration active.
	require.True(t, d.Unregister(first))
	d.Trigger(SliderMoved{Track: 1})
	assert.Equal(t, 3, count)
}

func TestOneShotFiresExactlyOnce(t *testing.T) {
	d := NewDispatcher()
	var seen []Event
	d.RegisterOnce(func(ev Event) { seen = append(seen, ev) })

	first := ButtonPressed{Track: 2, Button: ButtonMute}
	second := ButtonReleased{Track: 2, Button: ButtonMute}
	d.Trigger(first)
	d.Trigger(second)
	d.Trigger(SliderMoved{Track: 3})

	require.Len(t, seen, 1)
	assert.Equal(t, Event(first), seen[0])
}

func TestOneShotAddedDuringTriggerWaitsForNext(t *testing.T) {
	d := NewDispatcher()
	onceCalls := 0
	d.Register(func(Event) {
		if onceCalls == 0 {
			d.RegisterOnce(func(Event) { onceCalls++ })
		}
	})

	d.Trigger(SliderMoved{Track: 1})
	assert.Equal(t, 0, onceCalls, "listener added mid-trigger must not see that trigger")

	d.Trigger(SliderMoved{Track: 1})
	assert.Equal(t, 1, onceCalls)
}

func TestPersistentListenersRunBeforeOneShots(t *testing.T) {
	d := NewDispatcher()
	var order []string
	d.RegisterOnce(func(Event) { order = append(order, "once") })
	d.Register(func(Event) { order = append(order, "persistent") })

	d.Trigger(SliderMoved{Track: 1})
	assert.Equal(t, []string{"persistent", "once"}, order)
}

func TestUnregister(t *testing.T) {
	d := NewDispatcher()
	count := 0
	id := d.Register(func(Event) { count++ })

	require.True(t, d.Unregister(id))
	assert.False(t, d.Unregister(id), "second removal reports absence")
	assert.False(t, d.Unregister(ListenerID("nope")))

	d.Trigger(SliderMoved{Track: 1})
	assert.Zero(t, count)
}

func TestUnregisterRemovesPendingOneShot(t *testing.T) {
	d := NewDispatcher()
	count := 0
	id := d.RegisterOnce(func(Event) { count++ })

	require.True(t, d.Unregister(id))
	d.Trigger(SliderMoved{Track: 1})
	assert.Zero(t, count)
}

func TestUnregisterAll(t *testing.T) {
	d := NewDispatcher()
	count := 0
	d.Register(func(Event) { count++ })
	d.RegisterOnce(func(Event) { count++ })

	d.UnregisterAll()
	d.Trigger(SliderMoved{Track: 1})
	assert.Zero(t, count)
}

func TestConcurrentRegistrationDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			id := d.Register(func(Event) {})
			d.RegisterOnce(func(Event) {})
			d.Unregister(id)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			d.Trigger(SliderMoved{Track: 1, Position: 0.5})
		}
	}()
	wg.Wait()
}
