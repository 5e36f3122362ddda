package audio

import (
	"context"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/ftag"
	log "github.com/sirupsen/logrus"

	"drumdrill/debug"
	"drumdrill/pattern"
)

var (
	// ErrNoSound means the symbol has no sound handle or no device is open.
	ErrNoSound = fault.New("no sound for symbol", ftag.With(ftag.NotFound))

	// ErrDropped means the dispatch queue was full and the hit was skipped.
	ErrDropped = fault.New("sound dropped", ftag.With("SOUND_DROPPED"))
)

// Voice sounds a single symbol.
type Voice interface {
	Trigger(sym pattern.Symbol) error
}

// Async moves Trigger calls onto a worker goroutine so a slow device can
// never delay the caller. Hits are dropped when the queue is full.
type Async struct {
	voice Voice
	hits  chan pattern.Symbol
}

func NewAsync(v Voice, queue int) *Async {
	return &Async{
		voice: v,
		hits:  make(chan pattern.Symbol, queue),
	}
}

// Trigger queues sym without blocking.
func (a *Async) Trigger(sym pattern.Symbol) error {
	select {
	case a.hits <- sym:
		return nil
	default:
		return ErrDropped
	}
}

// Run plays queued hits until ctx is done (blocking - run in goroutine)
func (a *Async) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case sym := <-a.hits:
			if err := a.voice.Trigger(sym); err != nil {
				log.WithFields(log.Fields{
					"function": "Async.Run",
					"symbol":   sym,
				}).Warn(err.Error())
				continue
			}
			debug.LogEvery(32, "voice", "played %s", sym)
		}
	}
}

// Multi triggers every voice, returning the first error.
type Multi []Voice

func (m Multi) Trigger(sym pattern.Symbol) error {
	var first error
	for _, v := range m {
		if err := v.Trigger(sym); err != nil && first == nil {
			first = err
		}
	}
	return first
}
