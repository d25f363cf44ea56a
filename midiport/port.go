// Package midiport implements the driver's transport over the system's
// MIDI ports using gomidi with the rtmidi backend.
package midiport

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver

	"github.com/PixPMusic/gopher-xtouch/xtouch"
)

// DefaultPortName is the fragment the X-Touch Extender's ports carry in
// their names on all three desktop platforms.
const DefaultPortName = "X-Touch-Ext"

// Port is an xtouch.Transport backed by a pair of system MIDI ports.
// Sends are serialized with a mutex since the underlying rtmidi handle
// is not safe for concurrent writes.
type Port struct {
	name string
	log  log.FieldLogger

	mu       sync.Mutex
	send     func(msg midi.Message) error
	stop     func()
	out      drivers.Out
	receiver func([]byte)
	open     bool
}

// New creates a transport that attaches to the first input and output
// ports whose names contain the given fragment. An empty fragment
// selects DefaultPortName.
func New(name string) *Port {
	if name == "" {
		name = DefaultPortName
	}
	return &Port{name: name, log: log.StandardLogger()}
}

// SetReceiver installs the raw message callback. It must be installed
// before Open; messages arriving without a receiver are dropped.
func (p *Port) SetReceiver(fn func([]byte)) {
	p.mu.Lock()
	p.receiver = fn
	p.mu.Unlock()
}

// Open locates the surface's ports, opens them and starts listening.
func (p *Port) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open {
		return nil
	}

	in, err := midi.FindInPort(p.name)
	if err != nil {
		return fmt.Errorf("no midi input matching %q: %w", p.name, xtouch.ErrDeviceNotFound)
	}
	out, err := midi.FindOutPort(p.name)
	if err != nil {
		return fmt.Errorf("no midi output matching %q: %w", p.name, xtouch.ErrDeviceNotFound)
	}

	send, err := midi.SendTo(out)
	if err != nil {
		return fmt.Errorf("failed to open output %q (%v): %w", out.String(), err, xtouch.ErrDeviceUnavailable)
	}

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		p.mu.Lock()
		fn := p.receiver
		p.mu.Unlock()
		if fn != nil {
			fn([]byte(msg))
		}
	})
	if err != nil {
		out.Close()
		return fmt.Errorf("failed to listen on %q (%v): %w", in.String(), err, xtouch.ErrDeviceUnavailable)
	}

	p.send = send
	p.stop = stop
	p.out = out
	p.open = true
	p.log.WithFields(log.Fields{"in": in.String(), "out": out.String()}).Info("midi ports open")
	return nil
}

// Send writes one raw message to the output port.
func (p *Port) Send(raw []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return fmt.Errorf("midi port is closed: %w", xtouch.ErrIO)
	}
	if err := p.send(midi.Message(raw)); err != nil {
		return fmt.Errorf("midi send failed (%v): %w", err, xtouch.ErrIO)
	}
	return nil
}

// Close stops the listener and releases both ports. Safe to call
// repeatedly.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return nil
	}
	p.open = false
	p.stop()
	if err := p.out.Close(); err != nil {
		return fmt.Errorf("failed to close output port: %w", err)
	}
	return nil
}

// Shutdown releases the process-wide MIDI driver. Call it once, after
// every Port has been closed.
func Shutdown() {
	midi.CloseDriver()
}
