package xtouch

import "errors"

// Error categories surfaced by the driver. Returned errors wrap one of
// these values; callers match them with errors.Is.
var (
	// ErrValidation reports a track id, distance or button outside its
	// allowed range. It is raised before any byte is produced or sent.
	ErrValidation = errors.New("validation failed")

	// ErrIllegalState reports an operation attempted in the wrong
	// lifecycle state, such as a command before Open or a double Open.
	ErrIllegalState = errors.New("illegal state")

	// ErrDeviceNotFound reports that the transport could not locate the
	// surface's endpoints.
	ErrDeviceNotFound = errors.New("device not found")

	// ErrDeviceUnavailable reports that the surface exists but could
	// not be acquired, typically because another process holds it.
	ErrDeviceUnavailable = errors.New("device unavailable")

	// ErrIO reports a transport send or receive failure.
	ErrIO = errors.New("io failure")
)
