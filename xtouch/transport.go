package xtouch

// Transport moves raw MIDI bytes between the driver and the physical
// surface. The midiport package provides the implementation used
// against real hardware; tests substitute in-memory fakes.
//
// Implementations report failures through the driver's error
// categories: Open wraps ErrDeviceNotFound when the endpoints cannot be
// located and ErrDeviceUnavailable when they cannot be acquired, Send
// wraps ErrIO.
type Transport interface {
	// Open acquires the device endpoints and starts delivering received
	// messages to the receiver installed with SetReceiver.
	Open() error

	// Close releases the device. It must be safe to call repeatedly.
	Close() error

	// Send writes one raw message to the device. The transport is
	// responsible for serializing concurrent sends if its backend
	// requires that.
	Send(raw []byte) error

	// SetReceiver installs the callback invoked for every raw message
	// received from the device. The callback runs on the transport's
	// receive thread.
	SetReceiver(fn func(raw []byte))
}
