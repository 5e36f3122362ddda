package ledger

import (
	"sort"
	"sync"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	log "github.com/sirupsen/logrus"

	"drumdrill/pattern"
)

// ErrPersistenceRead marks a stored ledger that could not be read. Load
// reports it but still hands back an empty, usable ledger.
var ErrPersistenceRead = fault.New("practiced set unreadable", ftag.With(ftag.Internal))

// Ledger is the set of practiced sequence keys. Every toggle is written
// through to the store before Toggle returns.
type Ledger struct {
	mu        sync.RWMutex
	store     Store
	practiced map[pattern.Key]struct{}
}

// Load reads the practiced set from store. A missing or malformed store
// yields an empty ledger together with an ErrPersistenceRead error the caller
// may show or ignore.
func Load(store Store) (*Ledger, error) {
	l := &Ledger{
		store:     store,
		practiced: make(map[pattern.Key]struct{}),
	}

	logger := log.WithFields(log.Fields{
		"function": "ledger.Load",
	})

	keys, err := store.Load()
	if err != nil {
		logger.WithField("err", err).Warn("could not read practiced set, starting empty")
		return l, fault.Wrap(ErrPersistenceRead,
			fmsg.WithDesc(err.Error(), "Practice history could not be read, starting fresh"))
	}

	for _, k := range keys {
		// stored keys are re-normalized so older or hand-edited data still
		// matches generated keys
		nk, err := pattern.KeyOf(string(k))
		if err != nil {
			logger.WithField("key", k).Debug("skipping invalid stored key")
			continue
		}
		l.practiced[nk] = struct{}{}
	}
	logger.Debugf("loaded %d practiced patterns", len(l.practiced))
	return l, nil
}

// Toggle flips the practiced state of seq and persists the full set. It
// returns the new state. If saving fails the in-memory state is kept and the
// error is returned.
func (l *Ledger) Toggle(seq pattern.Sequence) (bool, error) {
	key := seq.Key()

	l.mu.Lock()
	defer l.mu.Unlock()

	_, had := l.practiced[key]
	if had {
		delete(l.practiced, key)
	} else {
		l.practiced[key] = struct{}{}
	}

	if err := l.store.Save(l.keysLocked()); err != nil {
		log.WithFields(log.Fields{
			"function": "ledger.Toggle",
			"key":      key,
		}).Warn(err.Error())
		return !had, fault.Wrap(err, fmsg.WithDesc("save practiced set", "Could not save practice history"))
	}
	return !had, nil
}

// IsPracticed reports whether seq is marked practiced.
func (l *Ledger) IsPracticed(seq pattern.Sequence) bool {
	return l.Has(seq.Key())
}

// Has reports membership by key.
func (l *Ledger) Has(key pattern.Key) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.practiced[key]
	return ok
}

// Len returns the number of practiced patterns.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.practiced)
}

// Keys returns the practiced keys sorted.
func (l *Ledger) Keys() []pattern.Key {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.keysLocked()
}

func (l *Ledger) keysLocked() []pattern.Key {
	keys := make([]pattern.Key, 0, len(l.practiced))
	for k := range l.practiced {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
