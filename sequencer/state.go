package sequencer

import (
	"time"

	"drumdrill/pattern"
)

const (
	MinTempo     = 20
	MaxTempo     = 300
	DefaultTempo = 120
)

// Interval is the time between steps at bpm.
func Interval(bpm int) time.Duration {
	return time.Minute / time.Duration(bpm)
}

// State is a snapshot of the playback session.
type State struct {
	Running  bool
	Sequence pattern.Sequence
	Source   Source
	Index    int // next step to fire
	Step     int // last step fired, -1 before the first tick
	Ticks    int // ticks fired this session
	Tempo    int
	Interval time.Duration
}

func idleState(tempo int) State {
	return State{
		Step:     -1,
		Tempo:    tempo,
		Interval: Interval(tempo),
	}
}
