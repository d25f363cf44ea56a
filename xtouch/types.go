package xtouch

// TrackCount is the number of channel strips on the surface. Tracks are
// addressed 1 through TrackCount; the wire protocol uses 0-based
// offsets internally.
const TrackCount = 8

// ControlMode selects how the hardware reports rotary encoder turns.
// It is a device-wide setting and must match the mode the surface is
// configured to; it is fixed for the lifetime of a Surface.
type ControlMode int

const (
	// ControlModeRelative reports encoder turns as signed single-step deltas.
	ControlModeRelative ControlMode = iota
	// ControlModeAbsolute reports the encoder's absolute position.
	ControlModeAbsolute
)

func (m ControlMode) String() string {
	switch m {
	case ControlModeRelative:
		return "relative"
	case ControlModeAbsolute:
		return "absolute"
	}
	return "unknown"
}

// Button identifies which physical control on a channel strip generated
// a press or release. Record, solo, mute and select also carry an LED
// and can be driven with SetButtonLight; the rotary encoder push and
// the fader touch sensor are press-only.
type Button int

const (
	ButtonRotaryEncoder Button = iota
	ButtonRecord
	ButtonSolo
	ButtonMute
	ButtonSelect
	ButtonFader
)

func (b Button) String() string {
	switch b {
	case ButtonRotaryEncoder:
		return "rotary encoder"
	case ButtonRecord:
		return "record"
	case ButtonSolo:
		return "solo"
	case ButtonMute:
		return "mute"
	case ButtonSelect:
		return "select"
	case ButtonFader:
		return "fader"
	}
	return "unknown"
}

// LightState is the commanded state of a button LED.
type LightState int

const (
	LightOff LightState = iota
	LightOn
	LightBlinking
)

func (s LightState) String() string {
	switch s {
	case LightOff:
		return "off"
	case LightOn:
		return "on"
	case LightBlinking:
		return "blinking"
	}
	return "unknown"
}

// velocity returns the intensity code the device expects for a state.
func (s LightState) velocity() uint8 {
	switch s {
	case LightOn:
		return 127
	case LightBlinking:
		return 64
	}
	return 0
}

// BackgroundColor is the scribble strip backlight palette. The constant
// values are the palette ordinals packed into the style byte of the
// scribble strip message.
type BackgroundColor int

const (
	ColorBlack BackgroundColor = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

func (c BackgroundColor) String() string {
	names := [...]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}
	if c < ColorBlack || c > ColorWhite {
		return "unknown"
	}
	return names[c]
}

// TextColor selects how a scribble strip row is rendered against its
// background. Light text packs as bit value 0, dark text as 1.
type TextColor int

const (
	TextLight TextColor = iota
	TextDark
)

func (c TextColor) String() string {
	if c == TextDark {
		return "dark"
	}
	return "light"
}

// ScribbleStrip describes the content of one per-track LCD. The zero
// value is two empty rows of light text on a black background. Rows
// longer than 7 characters are truncated; shorter rows are padded with
// spaces. Characters are sent as their low 8 bits, the strips only
// render ASCII.
type ScribbleStrip struct {
	Top         string
	Bottom      string
	TopColor    TextColor
	BottomColor TextColor
	Background  BackgroundColor
}
