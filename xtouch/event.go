package xtouch

// Event is one decoded occurrence on the control surface. The concrete
// type is one of ButtonPressed, ButtonReleased, KnobRotatedRelative,
// KnobRotatedAbsolute or SliderMoved, so dispatch sites can switch over
// the closed set of variants.
type Event interface {
	// TrackID is the 1-based channel strip the event originated from.
	TrackID() int

	isEvent()
}

// ButtonPressed is emitted when a pressable control on a channel strip
// goes down. Fader touch is reported through this event too.
type ButtonPressed struct {
	Track  int
	Button Button
}

// ButtonReleased is emitted when a pressable control comes back up.
type ButtonReleased struct {
	Track  int
	Button Button
}

// KnobRotatedRelative is emitted for one encoder tick in relative
// control mode. Delta is +1 for clockwise, -1 for counterclockwise and
// 0 for the neutral ticks the device occasionally sends.
type KnobRotatedRelative struct {
	Track int
	Delta int
}

// KnobRotatedAbsolute is emitted in absolute control mode and carries
// the encoder position scaled to [0.0, 1.0].
type KnobRotatedAbsolute struct {
	Track    int
	Position float64
}

// SliderMoved carries a fader position scaled to [0.0, 1.0]. It is
// emitted for every slider message, including the motor echo while the
// fader is touched; suppressing that echo is the application's call.
type SliderMoved struct {
	Track    int
	Position float64
}

func (e ButtonPressed) TrackID() int       { return e.Track }
func (e ButtonReleased) TrackID() int      { return e.Track }
func (e KnobRotatedRelative) TrackID() int { return e.Track }
func (e KnobRotatedAbsolute) TrackID() int { return e.Track }
func (e SliderMoved) TrackID() int         { return e.Track }

func (ButtonPressed) isEvent()       {}
func (ButtonReleased) isEvent()      {}
func (KnobRotatedRelative) isEvent() {}
func (KnobRotatedAbsolute) isEvent() {}
func (SliderMoved) isEvent()         {}
