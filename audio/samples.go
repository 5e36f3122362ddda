package audio

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	log "github.com/sirupsen/logrus"

	"drumdrill/pattern"
)

// SampleFiles are the wav files looked up in the samples directory.
var SampleFiles = map[pattern.Symbol]string{
	pattern.Bass:  "bombo.wav",
	pattern.Snare: "redoblante.wav",
	pattern.HiHat: "platillo.wav",
}

// SampleRate is the rate every sample is resampled to.
const SampleRate beep.SampleRate = 44100

var speakerOnce sync.Once

// SampleVoice plays decoded wav samples through the speaker. Each sample is
// decoded once into memory.
type SampleVoice struct {
	buffers map[pattern.Symbol]*beep.Buffer
	play    func(...beep.Streamer)
}

// LoadSamples decodes every file in SampleFiles found in dir and initializes
// the speaker. Missing files leave their symbol silent; it is an error only
// when none load.
func LoadSamples(dir string) (*SampleVoice, error) {
	v, err := decodeSamples(dir)
	if err != nil {
		return nil, err
	}

	var initErr error
	speakerOnce.Do(func() {
		initErr = speaker.Init(SampleRate, SampleRate.N(time.Second/30))
	})
	if initErr != nil {
		return nil, fault.Wrap(initErr, fmsg.WithDesc("speaker init", "Audio device unavailable"))
	}
	v.play = speaker.Play
	return v, nil
}

func decodeSamples(dir string) (*SampleVoice, error) {
	v := &SampleVoice{buffers: make(map[pattern.Symbol]*beep.Buffer)}

	for sym, name := range SampleFiles {
		path := filepath.Join(dir, name)
		buf, err := loadBuffer(path)
		if err != nil {
			log.WithFields(log.Fields{
				"function": "LoadSamples",
				"path":     path,
			}).Warn(err.Error())
			continue
		}
		v.buffers[sym] = buf
	}

	if len(v.buffers) == 0 {
		return nil, fault.Wrap(ErrNoSound,
			fmsg.WithDesc("no samples in "+dir, "No drum samples found in "+dir))
	}
	return v, nil
}

func loadBuffer(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	defer streamer.Close()

	target := format
	target.SampleRate = SampleRate

	buf := beep.NewBuffer(target)
	if format.SampleRate == SampleRate {
		buf.Append(streamer)
	} else {
		buf.Append(beep.Resample(4, format.SampleRate, SampleRate, streamer))
	}
	return buf, nil
}

// Has reports whether sym has a loaded sample.
func (v *SampleVoice) Has(sym pattern.Symbol) bool {
	_, ok := v.buffers[sym]
	return ok
}

// Trigger starts the sample for sym from the beginning.
func (v *SampleVoice) Trigger(sym pattern.Symbol) error {
	buf, ok := v.buffers[sym]
	if !ok {
		return fault.Wrap(ErrNoSound, fmsg.With("no sample for "+string(sym)))
	}
	v.play(buf.Streamer(0, buf.Len()))
	return nil
}
