package catalog

import (
	"sync"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"

	"drumdrill/notation"
	"drumdrill/pattern"
	"drumdrill/sequencer"
)

// EmptyCustomText is shown while the custom pattern has no hits.
const EmptyCustomText = "No hits selected"

// Custom is the user-built pattern. It has no identity until played, when
// it plays under sequencer.CustomSource.
type Custom struct {
	mu       sync.Mutex
	alphabet pattern.Alphabet
	seq      pattern.Sequence

	player Player
	board  *notation.Board
}

func NewCustom(alphabet pattern.Alphabet, player Player, board *notation.Board) *Custom {
	return &Custom{
		alphabet: alphabet,
		player:   player,
		board:    board,
	}
}

// Append adds one hit.
func (c *Custom) Append(sym pattern.Symbol) error {
	if !c.alphabet.Contains(sym) {
		return fault.Wrap(pattern.ErrInvalidSymbol,
			fmsg.WithDesc("custom append "+string(sym), "Unknown hit "+string(sym)))
	}

	c.mu.Lock()
	c.seq = append(c.seq, sym)
	seq := c.seq.Clone()
	c.mu.Unlock()

	c.render(seq)
	return nil
}

// AppendText parses raw (e.g. "b r p") and appends every hit, or none if
// any token is invalid.
func (c *Custom) AppendText(raw string) error {
	seq, err := c.alphabet.Normalize(raw)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.seq = append(c.seq, seq...)
	all := c.seq.Clone()
	c.mu.Unlock()

	c.render(all)
	return nil
}

// Clear empties the pattern.
func (c *Custom) Clear() {
	c.mu.Lock()
	c.seq = nil
	c.mu.Unlock()

	c.render(nil)
}

// Pattern returns a copy of the current pattern.
func (c *Custom) Pattern() pattern.Sequence {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq.Clone()
}

// Text is the pattern joined with " - ", or EmptyCustomText.
func (c *Custom) Text() string {
	seq := c.Pattern()
	if len(seq) == 0 {
		return EmptyCustomText
	}
	return seq.Display()
}

// Play starts the custom pattern. An empty pattern is reported, not played.
func (c *Custom) Play() error {
	seq := c.Pattern()
	if len(seq) == 0 {
		return fault.Wrap(pattern.ErrEmptyPattern,
			fmsg.WithDesc("play empty custom pattern", "Add some hits first"))
	}
	return c.player.Start(seq, sequencer.CustomSource)
}

func (c *Custom) render(seq pattern.Sequence) {
	if c.board == nil {
		return
	}
	id := sequencer.CustomSource.AddressID()
	if len(seq) == 0 {
		c.board.Drop(id)
		return
	}
	c.board.Put(notation.Render(seq, id))
}
