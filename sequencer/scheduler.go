package sequencer

import (
	"fmt"
	"sync"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	log "github.com/sirupsen/logrus"

	"drumdrill/debug"
	"drumdrill/notation"
	"drumdrill/pattern"
)

// ErrInvalidTempo is returned for tempos outside MinTempo..MaxTempo.
var ErrInvalidTempo = fault.New("invalid tempo", ftag.With(ftag.InvalidArgument))

// Voice sounds a symbol. Implementations should return quickly; errors and
// panics are logged and otherwise ignored.
type Voice interface {
	Trigger(sym pattern.Symbol) error
}

// Highlighter marks one step glyph. Highlight replaces whatever was
// highlighted before, anywhere.
type Highlighter interface {
	Highlight(addr notation.Address)
	ClearHighlights()
}

type nopVoice struct{}

func (nopVoice) Trigger(pattern.Symbol) error { return nil }

type nopHighlighter struct{}

func (nopHighlighter) Highlight(notation.Address) {}
func (nopHighlighter) ClearHighlights()           {}

type pulse struct {
	id    uint64
	timer Timer
}

// Scheduler owns the single playback session. It is Idle or Running; while
// Running it fires one tick per interval, looping over the sequence until
// stopped. All state changes go through Start, Stop, SetTempo and the tick.
//
// Voice and Highlighter are called with the scheduler lock held so that no
// side effect can happen after Stop returns; they must not call back into
// the scheduler.
type Scheduler struct {
	mu    sync.Mutex
	clock Clock
	voice Voice
	hl    Highlighter

	tempo  int
	state  State
	timer  Timer
	tickID uint64 // id of the only tick timer allowed to fire

	pulses  map[pattern.Symbol]pulse
	pulseID uint64

	// Notify TUI of updates
	UpdateChan chan struct{}
}

// NewScheduler creates an idle scheduler. Nil arguments get defaults: the
// system clock, a silent voice and no highlighting.
func NewScheduler(clock Clock, voice Voice, hl Highlighter) *Scheduler {
	if clock == nil {
		clock = SystemClock
	}
	if voice == nil {
		voice = nopVoice{}
	}
	if hl == nil {
		hl = nopHighlighter{}
	}
	return &Scheduler{
		clock:      clock,
		voice:      voice,
		hl:         hl,
		tempo:      DefaultTempo,
		state:      idleState(DefaultTempo),
		pulses:     make(map[pattern.Symbol]pulse),
		UpdateChan: make(chan struct{}, 1),
	}
}

// Start stops any running session and starts playing seq for src. Step 0
// fires before Start returns. An empty seq leaves the scheduler Idle.
func (s *Scheduler) Start(seq pattern.Sequence, src Source) error {
	s.mu.Lock()
	if s.state.Running {
		s.stopLocked(true)
	}
	if len(seq) == 0 {
		s.mu.Unlock()
		return fault.Wrap(pattern.ErrEmptyPattern,
			fmsg.WithDesc("start with empty sequence", "Add some hits first"))
	}

	s.state = idleState(s.tempo)
	s.state.Running = true
	s.state.Sequence = seq.Clone()
	s.state.Source = src

	log.WithFields(log.Fields{
		"function": "Scheduler.Start",
		"sequence": seq.Key(),
		"source":   src.AddressID(),
		"interval": s.state.Interval,
	}).Debug("playback started")

	s.tickLocked()
	s.mu.Unlock()

	s.notifyUpdate()
	return nil
}

// Stop ends the session and clears every highlight. Stopping an idle
// scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.stop(true)
}

// StopKeepHighlight ends the session but leaves the last highlighted glyph.
func (s *Scheduler) StopKeepHighlight() {
	s.stop(false)
}

func (s *Scheduler) stop(resetHighlights bool) {
	s.mu.Lock()
	running := s.state.Running
	s.stopLocked(resetHighlights)
	s.mu.Unlock()

	if running {
		debug.Log("playback", "stopped")
		s.notifyUpdate()
	}
}

func (s *Scheduler) stopLocked(resetHighlights bool) {
	s.state.Running = false
	s.tickID++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	for sym, p := range s.pulses {
		p.timer.Stop()
		delete(s.pulses, sym)
	}
	if resetHighlights {
		s.hl.ClearHighlights()
	}
	s.state = idleState(s.tempo)
}

// SetTempo changes the tempo. While running, the pending tick is canceled
// and rescheduled one new interval from now.
func (s *Scheduler) SetTempo(bpm int) error {
	if bpm < MinTempo || bpm > MaxTempo {
		return fault.Wrap(ErrInvalidTempo,
			fmsg.WithDesc(fmt.Sprintf("tempo %d out of range", bpm),
				fmt.Sprintf("Tempo must be between %d and %d BPM", MinTempo, MaxTempo)))
	}

	s.mu.Lock()
	s.tempo = bpm
	s.state.Tempo = bpm
	s.state.Interval = Interval(bpm)
	if s.state.Running {
		if s.timer != nil {
			s.timer.Stop()
		}
		s.scheduleLocked()
	}
	s.mu.Unlock()

	s.notifyUpdate()
	return nil
}

// Tempo returns the current BPM.
func (s *Scheduler) Tempo() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tempo
}

// Running reports whether a session is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Running
}

// State returns a snapshot of the session.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Sequence = s.state.Sequence.Clone()
	return st
}

// Pulsing reports whether the indicator for sym is lit.
func (s *Scheduler) Pulsing(sym pattern.Symbol) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pulses[sym]
	return ok
}

func (s *Scheduler) scheduleLocked() {
	s.tickID++
	id := s.tickID
	s.timer = s.clock.AfterFunc(s.state.Interval, func() { s.fire(id) })
}

func (s *Scheduler) fire(id uint64) {
	s.mu.Lock()
	if id != s.tickID {
		// canceled while waiting for the lock
		s.mu.Unlock()
		return
	}
	s.tickLocked()
	s.mu.Unlock()

	s.notifyUpdate()
}

// tickLocked fires the current step and schedules the next one.
func (s *Scheduler) tickLocked() {
	seq := s.state.Sequence
	if !s.state.Running || len(seq) == 0 {
		return
	}

	step := s.state.Index
	sym := seq[step]

	s.trigger(sym)
	s.pulseLocked(sym)
	s.hl.Highlight(notation.Address{ID: s.state.Source.AddressID(), Step: step})

	s.state.Step = step
	s.state.Index = (step + 1) % len(seq)
	s.state.Ticks++
	debug.LogEvery(16, "tick", "step=%d sym=%s src=%s", step, sym, s.state.Source.AddressID())

	s.scheduleLocked()
}

func (s *Scheduler) trigger(sym pattern.Symbol) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("symbol", sym).Warnf("voice panicked: %v", r)
		}
	}()
	if err := s.voice.Trigger(sym); err != nil {
		log.WithFields(log.Fields{
			"function": "Scheduler.trigger",
			"symbol":   sym,
		}).Warn(err.Error())
	}
}

// pulseLocked lights the indicator for sym for half an interval.
func (s *Scheduler) pulseLocked(sym pattern.Symbol) {
	if p, ok := s.pulses[sym]; ok {
		p.timer.Stop()
	}
	s.pulseID++
	id := s.pulseID
	s.pulses[sym] = pulse{
		id:    id,
		timer: s.clock.AfterFunc(s.state.Interval/2, func() { s.endPulse(sym, id) }),
	}
}

func (s *Scheduler) endPulse(sym pattern.Symbol, id uint64) {
	s.mu.Lock()
	p, ok := s.pulses[sym]
	if !ok || p.id != id {
		s.mu.Unlock()
		return
	}
	delete(s.pulses, sym)
	s.mu.Unlock()

	s.notifyUpdate()
}

// notifyUpdate wakes the TUI without blocking.
func (s *Scheduler) notifyUpdate() {
	select {
	case s.UpdateChan <- struct{}{}:
	default:
	}
}
