// Command xtouchdemo attaches to an X-Touch Extender and mirrors its
// controls back at it: button presses toggle their LEDs, encoder turns
// move the LED rings, fader moves drive the meters. It also shows the
// per-track state an application keeps on top of the driver, such as
// suppressing the fader echo while a fader is touched.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	log "github.com/sirupsen/logrus"

	"github.com/PixPMusic/gopher-xtouch/midiport"
	"github.com/PixPMusic/gopher-xtouch/xtouch"
)

var cli struct {
	Port     string `help:"MIDI port name fragment to attach to." default:"X-Touch-Ext"`
	Mode     string `help:"Encoder control mode the surface is configured to." enum:"relative,absolute" default:"relative"`
	LogLevel string `help:"Log level." enum:"debug,info,warn,error" default:"info"`
}

// knobStep is how far one relative encoder tick moves the LED ring.
const knobStep = 1.0 / 24

func main() {
	kong.Parse(&cli,
		kong.Name("xtouchdemo"),
		kong.Description("Echo demo for the X-Touch Extender driver."),
		kong.UsageOnError(),
	)

	level, err := log.ParseLevel(cli.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	mode := xtouch.ControlModeRelative
	if cli.Mode == "absolute" {
		mode = xtouch.ControlModeAbsolute
	}

	surface := xtouch.NewSurface(midiport.New(cli.Port), mode)
	if err := surface.Open(); err != nil {
		log.WithError(err).Fatal("failed to open control surface")
	}
	defer midiport.Shutdown()
	defer surface.Close()

	// Application-owned per-track state: the driver reports every
	// slider message including the motor echo, so the demo tracks
	// fader touch itself. Only the listener goroutine touches these.
	var touched [xtouch.TrackCount + 1]bool
	var knobPos [xtouch.TrackCount + 1]float64

	surface.RegisterListener(func(ev xtouch.Event) {
		switch e := ev.(type) {
		case xtouch.ButtonPressed:
			log.WithFields(log.Fields{"track": e.Track, "button": e.Button.String()}).Info("pressed")
			switch e.Button {
			case xtouch.ButtonFader:
				touched[e.Track] = true
			case xtouch.ButtonRecord, xtouch.ButtonSolo, xtouch.ButtonMute, xtouch.ButtonSelect:
				if err := surface.SetButtonLight(e.Track, e.Button, xtouch.LightOn); err != nil {
					log.WithError(err).Warn("light on failed")
				}
			}
		case xtouch.ButtonReleased:
			log.WithFields(log.Fields{"track": e.Track, "button": e.Button.String()}).Info("released")
			switch e.Button {
			case xtouch.ButtonFader:
				touched[e.Track] = false
			case xtouch.ButtonRecord, xtouch.ButtonSolo, xtouch.ButtonMute, xtouch.ButtonSelect:
				if err := surface.SetButtonLight(e.Track, e.Button, xtouch.LightOff); err != nil {
					log.WithError(err).Warn("light off failed")
				}
			}
		case xtouch.KnobRotatedRelative:
			knobPos[e.Track] = clamp(knobPos[e.Track] + float64(e.Delta)*knobStep)
			if err := surface.RotateKnob(e.Track, knobPos[e.Track]); err != nil {
				log.WithError(err).Warn("knob update failed")
			}
		case xtouch.KnobRotatedAbsolute:
			if err := surface.RotateKnob(e.Track, e.Position); err != nil {
				log.WithError(err).Warn("knob update failed")
			}
		case xtouch.SliderMoved:
			if touched[e.Track] {
				return
			}
			if err := surface.SetMeterLevel(e.Track, e.Position); err != nil {
				log.WithError(err).Warn("meter update failed")
			}
		}
	})

	for track := 1; track <= xtouch.TrackCount; track++ {
		err := surface.SetText(track, xtouch.ScribbleStrip{
			Top:         fmt.Sprintf("Trk %d", track),
			Bottom:      "ready",
			BottomColor: xtouch.TextDark,
			Background:  xtouch.ColorBlue,
		})
		if err != nil {
			log.WithError(err).Warn("scribble strip update failed")
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	if err := surface.Reset(); err != nil {
		log.WithError(err).Warn("failed to blank surface")
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
