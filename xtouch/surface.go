// Package xtouch drives a Behringer X-Touch Extender control surface:
// eight channel strips with illuminated buttons, touch-sensitive
// motorized faders, rotary encoders with LED rings and per-track
// scribble strip LCDs. The package owns the wire codec and the event
// dispatch; moving bytes to and from the hardware is delegated to a
// Transport.
package xtouch

import (
	"fmt"
	"math"
	"sync"

	log "github.com/sirupsen/logrus"
)

type surfaceState int

const (
	stateClosed surfaceState = iota
	stateOpen
	stateDisposed
)

// Surface is the driver facade for one control surface. Commands are
// encoded and written to the transport; raw messages received from the
// transport are decoded and dispatched to registered listeners on the
// transport's receive thread.
//
// A Surface goes through at most one open/close cycle: once closed it
// is disposed and cannot be reopened.
type Surface struct {
	transport  Transport
	mode       ControlMode
	dispatcher *Dispatcher
	log        log.FieldLogger

	mu    sync.Mutex
	state surfaceState
}

// Option configures a Surface.
type Option func(*Surface)

// WithLogger routes the driver's logging to the given logger instead of
// the logrus standard logger.
func WithLogger(l log.FieldLogger) Option {
	return func(s *Surface) { s.log = l }
}

// NewSurface creates a driver for a surface reachable through the given
// transport. The control mode must match the mode the hardware is set
// to and is fixed for the lifetime of the Surface.
func NewSurface(transport Transport, mode ControlMode, opts ...Option) *Surface {
	s := &Surface{
		transport:  transport,
		mode:       mode,
		dispatcher: NewDispatcher(),
		log:        log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open acquires the transport and starts event delivery. Opening an
// already open or closed Surface fails with ErrIllegalState; transport
// failures surface as ErrDeviceNotFound or ErrDeviceUnavailable.
func (s *Surface) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case stateOpen:
		return fmt.Errorf("surface is already open: %w", ErrIllegalState)
	case stateDisposed:
		return fmt.Errorf("surface has been closed: %w", ErrIllegalState)
	}
	s.transport.SetReceiver(s.handleRaw)
	if err := s.transport.Open(); err != nil {
		return fmt.Errorf("failed to open transport: %w", err)
	}
	s.state = stateOpen
	s.log.WithField("mode", s.mode.String()).Info("control surface open")
	return nil
}

// IsOpen reports whether the surface is currently open.
func (s *Surface) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateOpen
}

// Close removes all listeners and releases the transport. It never
// fails and may be called repeatedly; once closed the Surface is
// disposed and every subsequent command fails with ErrIllegalState.
func (s *Surface) Close() {
	s.mu.Lock()
	wasOpen := s.state == stateOpen
	s.state = stateDisposed
	s.mu.Unlock()

	s.dispatcher.UnregisterAll()
	if !wasOpen {
		return
	}
	if err := s.transport.Close(); err != nil {
		s.log.WithError(err).Warn("failed to close transport")
	}
	s.log.Info("control surface closed")
}

// RegisterListener adds a persistent event listener. Listeners run on
// the transport's receive thread, in registration order.
func (s *Surface) RegisterListener(fn Listener) ListenerID {
	return s.dispatcher.Register(fn)
}

// RegisterOneShotListener adds a listener that is invoked for exactly
// one event and then removed.
func (s *Surface) RegisterOneShotListener(fn Listener) ListenerID {
	return s.dispatcher.RegisterOnce(fn)
}

// UnregisterListener removes a previously registered listener,
// reporting whether it was present.
func (s *Surface) UnregisterListener(id ListenerID) bool {
	return s.dispatcher.Unregister(id)
}

// UnregisterAllListeners removes every registered listener.
func (s *Surface) UnregisterAllListeners() {
	s.dispatcher.UnregisterAll()
}

// SetButtonLight drives the LED of one of the illuminable buttons
// (record, solo, mute, select).
func (s *Surface) SetButtonLight(track int, button Button, state LightState) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	if err := validateTrack(track); err != nil {
		return err
	}
	offset, ok := lightNoteOffset(button)
	if !ok {
		return fmt.Errorf("%s button has no light: %w", button, ErrValidation)
	}
	return s.send(encodeButtonLight(track, offset, state))
}

// RotateKnob positions the LED ring around a track's rotary encoder,
// with distance 0.0 at the minimum and 1.0 at the maximum position.
func (s *Surface) RotateKnob(track int, distance float64) error {
	if err := s.checkCommand(track, distance); err != nil {
		return err
	}
	return s.send(encodeControlChange(ccBandKnob+uint8(track-1), wireValue(distance)))
}

// MoveSlider drives a track's motorized fader to the given position.
func (s *Surface) MoveSlider(track int, distance float64) error {
	if err := s.checkCommand(track, distance); err != nil {
		return err
	}
	return s.send(encodeControlChange(ccBandSlider+uint8(track-1), wireValue(distance)))
}

// SetMeterLevel drives a track's level meter. Meters decay on their own
// and need periodic refreshing to hold a level.
func (s *Surface) SetMeterLevel(track int, distance float64) error {
	if err := s.checkCommand(track, distance); err != nil {
		return err
	}
	return s.send(encodeControlChange(ccBandMeter+uint8(track-1), wireValue(distance)))
}

// SetText renders the given content on a track's scribble strip.
func (s *Surface) SetText(track int, strip ScribbleStrip) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	if err := validateTrack(track); err != nil {
		return err
	}
	return s.send(encodeScribbleStrip(track, strip))
}

// Reset blanks the surface: every button light off, LED rings and
// meters at zero, scribble strips cleared. Faders are left where they
// are since moving the motors is audible.
func (s *Surface) Reset() error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	for track := 1; track <= TrackCount; track++ {
		for _, button := range []Button{ButtonRecord, ButtonSolo, ButtonMute, ButtonSelect} {
			offset, _ := lightNoteOffset(button)
			if err := s.send(encodeButtonLight(track, offset, LightOff)); err != nil {
				return err
			}
		}
		if err := s.send(encodeControlChange(ccBandKnob+uint8(track-1), 0)); err != nil {
			return err
		}
		if err := s.send(encodeControlChange(ccBandMeter+uint8(track-1), 0)); err != nil {
			return err
		}
		if err := s.send(encodeScribbleStrip(track, ScribbleStrip{})); err != nil {
			return err
		}
	}
	return nil
}

// checkCommand is the shared precondition of the distance-based
// commands: open state, valid track, valid distance, in that order.
func (s *Surface) checkCommand(track int, distance float64) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	if err := validateTrack(track); err != nil {
		return err
	}
	return validateDistance(distance)
}

func (s *Surface) requireOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateOpen {
		return fmt.Errorf("surface is not open: %w", ErrIllegalState)
	}
	return nil
}

func (s *Surface) send(raw []byte) error {
	s.log.Debugf("send raw='%# x'", raw)
	if err := s.transport.Send(raw); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// handleRaw is the transport's receive callback; decoding and listener
// execution stay on the transport's thread.
func (s *Surface) handleRaw(raw []byte) {
	ev, ok := Decode(raw, s.mode)
	if !ok {
		s.log.Debugf("ignoring raw='%# x'", raw)
		return
	}
	s.dispatcher.Trigger(ev)
}

func validateTrack(track int) error {
	if track < 1 || track > TrackCount {
		return fmt.Errorf("track %d outside [1, %d]: %w", track, TrackCount, ErrValidation)
	}
	return nil
}

func validateDistance(distance float64) error {
	if math.IsNaN(distance) || distance < 0 || distance > 1 {
		return fmt.Errorf("distance %v outside [0.0, 1.0]: %w", distance, ErrValidation)
	}
	return nil
}
