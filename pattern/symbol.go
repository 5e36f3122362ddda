package pattern

import "strings"

// Symbol is a single instrument strike.
type Symbol string

const (
	Bass  Symbol = "B" // bombo
	Snare Symbol = "R" // redoblante
	HiHat Symbol = "P" // platillo
)

// Name returns a human readable instrument name.
func (s Symbol) Name() string {
	switch s {
	case Bass:
		return "Bass"
	case Snare:
		return "Snare"
	case HiHat:
		return "Hi-hat"
	}
	return string(s)
}

// Alphabet is an ordered set of symbols. Its order drives generation order.
type Alphabet []Symbol

// DefaultAlphabet is the three-piece kit: bass, snare, hi-hat.
var DefaultAlphabet = Alphabet{Bass, Snare, HiHat}

// Contains reports whether sym belongs to the alphabet.
func (a Alphabet) Contains(sym Symbol) bool {
	for _, s := range a {
		if s == sym {
			return true
		}
	}
	return false
}

func (a Alphabet) String() string {
	parts := make([]string, len(a))
	for i, s := range a {
		parts[i] = string(s)
	}
	return strings.Join(parts, "/")
}
