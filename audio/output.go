package audio

import (
	"context"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	log "github.com/sirupsen/logrus"

	"drumdrill/config"
	"drumdrill/pattern"
)

const dispatchQueue = 64

// Output is an opened sound backend.
type Output struct {
	Voice Voice
	Ports <-chan PortEvent // nil unless the backend uses MIDI
	Err   error            // open problem; Voice is still usable, possibly silent
}

type silent struct{}

func (silent) Trigger(pattern.Symbol) error { return nil }

// loadSamples is swapped in tests to avoid opening the speaker.
var loadSamples = LoadSamples

// Open builds the voice for cfg. Failures never stop the app: the returned
// Output always has a Voice, and Err says why it may be silent. Every device
// voice is behind an Async queue so the caller never waits on hardware.
// Workers stop when ctx is done.
func Open(ctx context.Context, cfg *config.Config) Output {
	switch cfg.Output.Backend {
	case config.BackendNone:
		return Output{Voice: silent{}}

	case config.BackendSamples:
		return openSamples(ctx, cfg.Output.SamplesDir)

	case config.BackendMIDI:
		return openMIDI(ctx, cfg)

	case config.BackendBoth:
		m := openMIDI(ctx, cfg)
		s := openSamples(ctx, cfg.Output.SamplesDir)
		out := Output{Voice: Multi{m.Voice, s.Voice}, Ports: m.Ports, Err: m.Err}
		if out.Err == nil {
			out.Err = s.Err
		}
		return out
	}

	backend := string(cfg.Output.Backend)
	err := fault.New("unknown backend "+backend,
		fmsg.WithDesc("unknown backend", "Unknown sound backend "+backend))
	return Output{Voice: silent{}, Err: err}
}

func openSamples(ctx context.Context, dir string) Output {
	v, err := loadSamples(dir)
	if err != nil {
		log.WithFields(log.Fields{
			"function": "audio.Open",
			"dir":      dir,
		}).Warn(err.Error())
		return Output{Voice: silent{}, Err: err}
	}

	// speaker.Play shares a lock with the audio callback
	async := NewAsync(v, dispatchQueue)
	go async.Run(ctx)
	return Output{Voice: async}
}

func openMIDI(ctx context.Context, cfg *config.Config) Output {
	v := NewMIDIVoice(cfg.Output.PortName, cfg.MIDIChannel(), GetKit(cfg.Output.Kit))
	err := v.Connect()
	if err != nil {
		// keep polling; the port may be plugged in later
		log.WithFields(log.Fields{
			"function": "audio.Open",
			"port":     cfg.Output.PortName,
		}).Warn(err.Error())
	}
	go v.Run(ctx)

	async := NewAsync(v, dispatchQueue)
	go async.Run(ctx)
	return Output{Voice: async, Ports: v.Events(), Err: err}
}
