package sequencer

import (
	"errors"
	"testing"
	"time"

	"drumdrill/notation"
	"drumdrill/pattern"
)

type hit struct {
	sym pattern.Symbol
	at  time.Duration
}

type spyVoice struct {
	clock *ManualClock
	hits  []hit
	err   error
	panic bool
}

func (v *spyVoice) Trigger(sym pattern.Symbol) error {
	v.hits = append(v.hits, hit{sym: sym, at: v.clock.Now()})
	if v.panic {
		panic("device gone")
	}
	return v.err
}

type spyHighlighter struct {
	current *notation.Address
	history []notation.Address
	clears  int
}

func (h *spyHighlighter) Highlight(addr notation.Address) {
	h.current = &addr
	h.history = append(h.history, addr)
}

func (h *spyHighlighter) ClearHighlights() {
	h.current = nil
	h.clears++
}

func setup(t *testing.T) (*Scheduler, *ManualClock, *spyVoice, *spyHighlighter) {
	t.Helper()
	clock := NewManualClock()
	voice := &spyVoice{clock: clock}
	hl := &spyHighlighter{}
	return NewScheduler(clock, voice, hl), clock, voice, hl
}

func mustSeq(t *testing.T, raw string) pattern.Sequence {
	t.Helper()
	seq, err := pattern.Normalize(raw)
	if err != nil {
		t.Fatal(err)
	}
	return seq
}

func TestIntervalAt120(t *testing.T) {
	if got := Interval(120); got != 500*time.Millisecond {
		t.Errorf("Interval(120) = %v", got)
	}
}

func TestStartTickTiming(t *testing.T) {
	s, clock, voice, hl := setup(t)

	if err := s.Start(mustSeq(t, "B R"), CustomSource); err != nil {
		t.Fatal(err)
	}
	if st := s.State(); st.Interval != 500*time.Millisecond || !st.Running {
		t.Fatalf("state = %+v", st)
	}
	if len(voice.hits) != 1 {
		t.Fatalf("step 0 should fire on start, got %d hits", len(voice.hits))
	}

	clock.Advance(500 * time.Millisecond)
	clock.Advance(500 * time.Millisecond)

	want := []hit{
		{pattern.Bass, 0},
		{pattern.Snare, 500 * time.Millisecond},
		{pattern.Bass, 1000 * time.Millisecond},
	}
	if len(voice.hits) != len(want) {
		t.Fatalf("hits = %v", voice.hits)
	}
	for i, w := range want {
		if voice.hits[i] != w {
			t.Errorf("hit %d = %+v, want %+v", i, voice.hits[i], w)
		}
	}

	wantSteps := []int{0, 1, 0}
	for i, addr := range hl.history {
		if addr.ID != "custom" || addr.Step != wantSteps[i] {
			t.Errorf("highlight %d = %v", i, addr)
		}
	}
	if st := s.State(); st.Step != 0 || st.Index != 1 || st.Ticks != 3 {
		t.Errorf("state after wrap = %+v", st)
	}
}

func TestStopCancelsTicks(t *testing.T) {
	s, clock, voice, hl := setup(t)

	s.Start(mustSeq(t, "B R P"), CatalogSource("B R P"))
	clock.Advance(500 * time.Millisecond)
	s.Stop()

	fired := len(voice.hits)
	clock.Advance(10 * time.Second)

	if len(voice.hits) != fired {
		t.Errorf("ticks after stop: %d -> %d", fired, len(voice.hits))
	}
	if hl.current != nil {
		t.Error("highlight left after stop")
	}
	if s.Running() {
		t.Error("still running")
	}
	if clock.Pending() != 0 {
		t.Errorf("pending timers = %d", clock.Pending())
	}
	for _, sym := range pattern.DefaultAlphabet {
		if s.Pulsing(sym) {
			t.Errorf("%s still pulsing", sym)
		}
	}
	if st := s.State(); st.Sequence != nil || st.Index != 0 || st.Step != -1 {
		t.Errorf("state not cleared: %+v", st)
	}

	// idempotent
	s.Stop()
}

func TestStopKeepHighlight(t *testing.T) {
	s, _, _, hl := setup(t)
	s.Start(mustSeq(t, "P"), CustomSource)
	s.StopKeepHighlight()
	if hl.current == nil {
		t.Error("highlight should be kept")
	}
}

func TestRestartLeavesOneChain(t *testing.T) {
	s, clock, voice, hl := setup(t)

	s.Start(mustSeq(t, "B B"), CatalogSource("B B"))
	s.Start(mustSeq(t, "P P P"), CatalogSource("P P P"))

	if hl.clears == 0 {
		t.Error("restart should clear the previous highlight")
	}

	clock.Advance(2 * time.Second)

	// 1 from the first start, then 1 + 4 from the second chain
	if len(voice.hits) != 6 {
		t.Fatalf("hits = %d, want 6: %v", len(voice.hits), voice.hits)
	}
	for _, h := range voice.hits[1:] {
		if h.sym != pattern.HiHat {
			t.Errorf("stale chain fired %v", h)
		}
	}
	// one tick timer plus at most one pulse timer
	if clock.Pending() > 2 {
		t.Errorf("pending timers = %d", clock.Pending())
	}
}

func TestStartEmptyStaysIdle(t *testing.T) {
	s, clock, voice, _ := setup(t)

	s.Start(mustSeq(t, "B"), CustomSource)
	err := s.Start(nil, CustomSource)
	if !errors.Is(err, pattern.ErrEmptyPattern) {
		t.Errorf("err = %v", err)
	}
	if s.Running() {
		t.Error("should be idle")
	}
	clock.Advance(5 * time.Second)
	if len(voice.hits) != 1 {
		t.Errorf("hits = %d", len(voice.hits))
	}
}

func TestSetTempo(t *testing.T) {
	s, clock, voice, _ := setup(t)

	for _, bpm := range []int{0, -5, MinTempo - 1, MaxTempo + 1} {
		if err := s.SetTempo(bpm); !errors.Is(err, ErrInvalidTempo) {
			t.Errorf("SetTempo(%d) err = %v", bpm, err)
		}
	}
	if s.Tempo() != DefaultTempo {
		t.Errorf("tempo changed by invalid input: %d", s.Tempo())
	}

	s.Start(mustSeq(t, "B R"), CustomSource)
	clock.Advance(200 * time.Millisecond)

	// 240 BPM: pending tick rescheduled 250ms from now
	if err := s.SetTempo(240); err != nil {
		t.Fatal(err)
	}
	clock.Advance(249 * time.Millisecond)
	if len(voice.hits) != 1 {
		t.Fatalf("tick fired early: %v", voice.hits)
	}
	clock.Advance(1 * time.Millisecond)
	if len(voice.hits) != 2 || voice.hits[1].at != 450*time.Millisecond {
		t.Fatalf("hits = %v", voice.hits)
	}
	clock.Advance(250 * time.Millisecond)
	if len(voice.hits) != 3 || voice.hits[2].at != 700*time.Millisecond {
		t.Errorf("hits = %v", voice.hits)
	}
}

func TestSetTempoIdle(t *testing.T) {
	s, clock, voice, _ := setup(t)
	if err := s.SetTempo(60); err != nil {
		t.Fatal(err)
	}
	clock.Advance(5 * time.Second)
	if len(voice.hits) != 0 || clock.Pending() != 0 {
		t.Error("idle tempo change should not schedule")
	}

	s.Start(mustSeq(t, "R"), CustomSource)
	if st := s.State(); st.Interval != time.Second {
		t.Errorf("interval = %v", st.Interval)
	}
}

func TestVoiceFailuresDoNotStopPlayback(t *testing.T) {
	s, clock, voice, _ := setup(t)
	voice.err = errors.New("no device")
	s.Start(mustSeq(t, "B R"), CustomSource)
	clock.Advance(time.Second)
	if len(voice.hits) != 3 {
		t.Errorf("hits = %d", len(voice.hits))
	}

	voice.err = nil
	voice.panic = true
	clock.Advance(time.Second)
	if len(voice.hits) != 5 || !s.Running() {
		t.Errorf("hits = %d running = %v", len(voice.hits), s.Running())
	}
}

func TestPulseClearsAfterHalfInterval(t *testing.T) {
	s, clock, _, _ := setup(t)
	s.Start(mustSeq(t, "B R"), CustomSource)

	if !s.Pulsing(pattern.Bass) {
		t.Fatal("bass should pulse on step 0")
	}
	clock.Advance(249 * time.Millisecond)
	if !s.Pulsing(pattern.Bass) {
		t.Error("pulse cleared early")
	}
	clock.Advance(1 * time.Millisecond)
	if s.Pulsing(pattern.Bass) {
		t.Error("pulse not cleared at half interval")
	}
	clock.Advance(250 * time.Millisecond)
	if !s.Pulsing(pattern.Snare) || s.Pulsing(pattern.Bass) {
		t.Error("snare should pulse on step 1")
	}
}

func TestUpdateChanNotified(t *testing.T) {
	s, _, _, _ := setup(t)
	s.Start(mustSeq(t, "B"), CustomSource)
	select {
	case <-s.UpdateChan:
	default:
		t.Error("expected update notification")
	}
}

func TestSourceAddressID(t *testing.T) {
	tests := []struct {
		src  Source
		want string
	}{
		{CustomSource, "custom"},
		{CatalogSource("B R"), "catalog-B R"},
		{Source{Kind: SourceCatalog}, "catalog"},
	}
	for _, tt := range tests {
		if got := tt.src.AddressID(); got != tt.want {
			t.Errorf("%+v.AddressID() = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestManualClockOrdering(t *testing.T) {
	c := NewManualClock()
	var order []int
	c.AfterFunc(20*time.Millisecond, func() { order = append(order, 2) })
	c.AfterFunc(10*time.Millisecond, func() {
		order = append(order, 1)
		c.AfterFunc(5*time.Millisecond, func() { order = append(order, 15) })
	})
	stopped := c.AfterFunc(12*time.Millisecond, func() { order = append(order, 99) })
	if !stopped.Stop() {
		t.Error("Stop on pending timer should report true")
	}

	c.Advance(30 * time.Millisecond)
	want := []int{1, 15, 2}
	if len(order) != len(want) {
		t.Fatalf("order = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
		}
	}
	if c.Now() != 30*time.Millisecond {
		t.Errorf("now = %v", c.Now())
	}
	if stopped.Stop() {
		t.Error("second Stop should report false")
	}
}
