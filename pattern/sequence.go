package pattern

import (
	"fmt"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
)

// Key is the canonical string form of a sequence. It is the identity used for
// dedup and persistence, so it must never change for equal sequences.
type Key string

// Sequence is an ordered list of symbols.
type Sequence []Symbol

// Key returns the canonical form: symbols joined by a single space.
func (s Sequence) Key() Key {
	return Key(s.join(" "))
}

func (s Sequence) String() string {
	return string(s.Key())
}

// Display joins the symbols the way the custom builder shows them.
func (s Sequence) Display() string {
	return s.join(" - ")
}

// Equal compares canonical forms.
func (s Sequence) Equal(o Sequence) bool {
	return s.Key() == o.Key()
}

// Clone returns a copy that does not share backing storage.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

func (s Sequence) join(sep string) string {
	parts := make([]string, len(s))
	for i, sym := range s {
		parts[i] = string(sym)
	}
	return strings.Join(parts, sep)
}

// Normalize parses raw input against the default alphabet.
func Normalize(raw string) (Sequence, error) {
	return DefaultAlphabet.Normalize(raw)
}

// Normalize uppercases, trims and splits raw on whitespace runs, then checks
// every token against the alphabet.
func (a Alphabet) Normalize(raw string) (Sequence, error) {
	tokens := strings.Fields(strings.ToUpper(raw))
	if len(tokens) == 0 {
		return nil, fault.Wrap(ErrEmptyPattern,
			fmsg.WithDesc("no tokens in input", "Add some hits first"))
	}

	seq := make(Sequence, 0, len(tokens))
	for i, tok := range tokens {
		sym := Symbol(tok)
		if !a.Contains(sym) {
			return nil, fault.Wrap(ErrInvalidSymbol,
				fmsg.WithDesc(
					fmt.Sprintf("token %d %q not in alphabet %s", i, tok, a),
					fmt.Sprintf("Unknown hit %q, use one of %s", tok, a)))
		}
		seq = append(seq, sym)
	}
	return seq, nil
}

// KeyOf normalizes raw and returns its key.
func KeyOf(raw string) (Key, error) {
	seq, err := Normalize(raw)
	if err != nil {
		return "", err
	}
	return seq.Key(), nil
}

// Sequence parses a key back into symbols. Keys produced by this package
// always parse.
func (k Key) Sequence() (Sequence, error) {
	return Normalize(string(k))
}
