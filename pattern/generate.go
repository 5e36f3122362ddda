package pattern

import "fmt"

// Entry is one generated catalog pattern. Immutable once built.
type Entry struct {
	ID       Key
	Name     string
	Sequence Sequence
	Length   int
}

// DefaultLengths are the pattern lengths drilled by default.
var DefaultLengths = []int{2, 3, 4}

// GenerateCombinations returns every ordered tuple of length symbols drawn
// with repetition from alphabet: len(alphabet)^length results. Output is
// ordered by prefix first, then by alphabet order for the last position.
func GenerateCombinations(alphabet Alphabet, length int) []Sequence {
	if length < 1 || len(alphabet) == 0 {
		return nil
	}

	combos := make([]Sequence, 0, len(alphabet))
	for _, sym := range alphabet {
		combos = append(combos, Sequence{sym})
	}

	for l := 2; l <= length; l++ {
		next := make([]Sequence, 0, len(combos)*len(alphabet))
		for _, prev := range combos {
			for _, sym := range alphabet {
				seq := make(Sequence, l)
				copy(seq, prev)
				seq[l-1] = sym
				next = append(next, seq)
			}
		}
		combos = next
	}
	return combos
}

// Generator accumulates catalog entries. The seen set is shared across every
// Add call so dedup holds across lengths.
type Generator struct {
	alphabet Alphabet
	seen     map[Key]bool
	entries  []Entry
}

func NewGenerator(alphabet Alphabet) *Generator {
	return &Generator{
		alphabet: alphabet,
		seen:     make(map[Key]bool),
	}
}

// Add generates all combinations of each length and appends the ones whose
// key has not been seen yet. Returns how many entries were added.
func (g *Generator) Add(lengths ...int) int {
	added := 0
	for _, l := range lengths {
		for _, seq := range GenerateCombinations(g.alphabet, l) {
			if g.insert(seq) {
				added++
			}
		}
	}
	return added
}

func (g *Generator) insert(seq Sequence) bool {
	key := seq.Key()
	if g.seen[key] {
		return false
	}
	g.seen[key] = true
	g.entries = append(g.entries, Entry{
		ID:       key,
		Name:     DisplayName(len(seq)),
		Sequence: seq,
		Length:   len(seq),
	})
	return true
}

// Entries returns the entries in insertion order.
func (g *Generator) Entries() []Entry {
	out := make([]Entry, len(g.entries))
	copy(out, g.entries)
	return out
}

// BuildCatalog generates the deduplicated catalog for the given lengths.
func BuildCatalog(alphabet Alphabet, lengths []int) []Entry {
	g := NewGenerator(alphabet)
	g.Add(lengths...)
	return g.Entries()
}

// DisplayName is the row title for a pattern of n hits.
func DisplayName(n int) string {
	return fmt.Sprintf("Pattern (%d hits)", n)
}
