package xtouch

import "math"

// MIDI status bytes understood by the surface. Incoming status bytes
// carry the channel in the low nibble, which the decoder masks off.
const (
	statusNoteOn        = 0x90
	statusControlChange = 0xB0
	statusCodeMask      = 0xF0
)

// Note number bands. Each pressable control category occupies one
// contiguous block of eight note numbers, one per track.
const (
	noteBandEncoder = 0x00
	noteBandRecord  = 0x08
	noteBandSolo    = 0x10
	noteBandMute    = 0x18
	noteBandSelect  = 0x20
	noteBandFader   = 0x68
)

// Controller number bands, again one controller per track.
const (
	ccBandSlider = 70
	ccBandKnob   = 80
	ccBandMeter  = 90
)

// Scribble strip SysEx framing. The device identifies itself as 0x15 on
// the wire even though the vendor documentation says 0x42.
var scribbleHeader = []byte{0xF0, 0x00, 0x20, 0x32, 0x15, 0x4C}

const (
	sysExEnd        = 0xF7
	scribbleColumns = 7
)

// lightNoteOffset returns the base note number of a button's LED band.
// Only record, solo, mute and select carry an LED.
func lightNoteOffset(b Button) (uint8, bool) {
	switch b {
	case ButtonRecord:
		return noteBandRecord, true
	case ButtonSolo:
		return noteBandSolo, true
	case ButtonMute:
		return noteBandMute, true
	case ButtonSelect:
		return noteBandSelect, true
	}
	return 0, false
}

// encodeButtonLight builds the note-on message driving one button LED.
func encodeButtonLight(track int, offset uint8, state LightState) []byte {
	return []byte{statusNoteOn, uint8(track-1) + offset, state.velocity()}
}

// encodeControlChange builds a plain three-byte control change message.
func encodeControlChange(controller, value uint8) []byte {
	return []byte{statusControlChange, controller, value}
}

// wireValue scales a distance in [0.0, 1.0] to the 7-bit wire range.
func wireValue(distance float64) uint8 {
	return uint8(math.Round(distance * 127))
}

// encodeScribbleStrip builds the 23-byte SysEx message that sets one
// track's LCD content and color scheme.
func encodeScribbleStrip(track int, strip ScribbleStrip) []byte {
	msg := make([]byte, 0, len(scribbleHeader)+2+2*scribbleColumns+1)
	msg = append(msg, scribbleHeader...)
	msg = append(msg, uint8(track-1), styleByte(strip))
	msg = appendRow(msg, strip.Top)
	msg = appendRow(msg, strip.Bottom)
	return append(msg, sysExEnd)
}

// styleByte packs the background palette ordinal into the low nibble
// and the two per-row text color bits into bits 4 and 5.
func styleByte(strip ScribbleStrip) uint8 {
	return uint8(strip.Background) | uint8(strip.TopColor)<<4 | uint8(strip.BottomColor)<<5
}

// appendRow appends exactly scribbleColumns cells: the row's characters
// left-aligned, space-padded, truncated past the last column.
func appendRow(msg []byte, row string) []byte {
	for i := 0; i < scribbleColumns; i++ {
		if i < len(row) {
			msg = append(msg, row[i])
		} else {
			msg = append(msg, ' ')
		}
	}
	return msg
}

// Decode interprets one raw message received from the surface. Unknown
// or irrelevant messages yield (nil, false) rather than an error: the
// protocol is only partially documented and the device emits traffic
// the driver does not model.
func Decode(raw []byte, mode ControlMode) (Event, bool) {
	if len(raw) < 3 {
		return nil, false
	}
	switch raw[0] & statusCodeMask {
	case statusNoteOn:
		return decodeNote(raw[1], raw[2])
	case statusControlChange:
		return decodeControlChange(raw[1], raw[2], mode)
	}
	return nil, false
}

func decodeNote(note, velocity uint8) (Event, bool) {
	button, track, ok := classifyNote(note)
	if !ok {
		return nil, false
	}
	// The device sends velocity 127 for press and 0 for release; any
	// other value counts as a release too.
	if velocity == 127 {
		return ButtonPressed{Track: track, Button: button}, true
	}
	return ButtonReleased{Track: track, Button: button}, true
}

// classifyNote resolves a note number to the control category band it
// falls in and the 1-based track within that band.
func classifyNote(note uint8) (Button, int, bool) {
	switch {
	case note <= noteBandEncoder+TrackCount-1:
		return ButtonRotaryEncoder, int(note-noteBandEncoder) + 1, true
	case note >= noteBandRecord && note <= noteBandRecord+TrackCount-1:
		return ButtonRecord, int(note-noteBandRecord) + 1, true
	case note >= noteBandSolo && note <= noteBandSolo+TrackCount-1:
		return ButtonSolo, int(note-noteBandSolo) + 1, true
	case note >= noteBandMute && note <= noteBandMute+TrackCount-1:
		return ButtonMute, int(note-noteBandMute) + 1, true
	case note >= noteBandSelect && note <= noteBandSelect+TrackCount-1:
		return ButtonSelect, int(note-noteBandSelect) + 1, true
	case note >= noteBandFader && note <= noteBandFader+TrackCount-1:
		return ButtonFader, int(note-noteBandFader) + 1, true
	}
	return 0, 0, false
}

func decodeControlChange(controller, value uint8, mode ControlMode) (Event, bool) {
	switch {
	case controller >= ccBandKnob && controller <= ccBandKnob+TrackCount-1:
		track := int(controller-ccBandKnob) + 1
		if mode == ControlModeRelative {
			return KnobRotatedRelative{Track: track, Delta: relativeDelta(value)}, true
		}
		return KnobRotatedAbsolute{Track: track, Position: float64(value) / 127}, true
	case controller >= ccBandSlider && controller <= ccBandSlider+TrackCount-1:
		return SliderMoved{Track: int(controller-ccBandSlider) + 1, Position: float64(value) / 127}, true
	}
	return nil, false
}

// relativeDelta maps the encoder's relative tick encoding. Values other
// than the two documented ticks are reported as a zero delta, matching
// the neutral ticks the device occasionally sends.
func relativeDelta(value uint8) int {
	switch value {
	case 65:
		return 1
	case 1:
		return -1
	}
	return 0
}
