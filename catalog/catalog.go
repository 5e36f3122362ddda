package catalog

import (
	"sync"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"

	"drumdrill/ledger"
	"drumdrill/notation"
	"drumdrill/pattern"
	"drumdrill/sequencer"
)

// ErrUnknownPattern is returned for ids not in the catalog.
var ErrUnknownPattern = fault.New("unknown pattern", ftag.With(ftag.NotFound))

// Player starts playback of a sequence for a source.
type Player interface {
	Start(seq pattern.Sequence, src sequencer.Source) error
}

// Row is what a view shows for one catalog entry.
type Row struct {
	Entry     pattern.Entry
	RowID     string
	Practiced bool
}

// ToggleLabel is the caption for the practiced toggle action.
func (r Row) ToggleLabel() string {
	if r.Practiced {
		return "Unmark"
	}
	return "Mark practiced"
}

// Catalog holds every generated pattern grouped by length.
type Catalog struct {
	entries []pattern.Entry
	index   map[pattern.Key]int
	lengths []int

	ledger *ledger.Ledger
	player Player
	board  *notation.Board

	mu       sync.Mutex
	onChange func()
}

// New generates the catalog for lengths over alphabet and renders every entry
// onto board.
func New(alphabet pattern.Alphabet, lengths []int, l *ledger.Ledger, player Player, board *notation.Board) *Catalog {
	entries := pattern.BuildCatalog(alphabet, lengths)
	c := &Catalog{
		entries: entries,
		index:   make(map[pattern.Key]int, len(entries)),
		lengths: append([]int(nil), lengths...),
		ledger:  l,
		player:  player,
		board:   board,
	}
	for i, e := range entries {
		c.index[e.ID] = i
	}
	c.Render()
	return c
}

// OnChange registers a callback run after every re-render.
func (c *Catalog) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Lengths returns the lengths the catalog was built for, in order.
func (c *Catalog) Lengths() []int {
	return append([]int(nil), c.lengths...)
}

// Len returns the total number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entry looks an entry up by id.
func (c *Catalog) Entry(id pattern.Key) (pattern.Entry, bool) {
	i, ok := c.index[id]
	if !ok {
		return pattern.Entry{}, false
	}
	return c.entries[i], true
}

// ByLength returns the entries of length n in generation order, optionally
// only those not yet practiced.
func (c *Catalog) ByLength(n int, onlyUnpracticed bool) []pattern.Entry {
	var out []pattern.Entry
	for _, e := range c.entries {
		if e.Length != n {
			continue
		}
		if onlyUnpracticed && c.ledger.IsPracticed(e.Sequence) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Rows returns the view rows for length n.
func (c *Catalog) Rows(n int, onlyUnpracticed bool) []Row {
	entries := c.ByLength(n, onlyUnpracticed)
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{
			Entry:     e,
			RowID:     RowID(e),
			Practiced: c.ledger.IsPracticed(e.Sequence),
		}
	}
	return rows
}

// Progress returns practiced and total counts for length n.
func (c *Catalog) Progress(n int) (practiced, total int) {
	for _, e := range c.entries {
		if e.Length != n {
			continue
		}
		total++
		if c.ledger.IsPracticed(e.Sequence) {
			practiced++
		}
	}
	return practiced, total
}

// Play starts playback of the entry, highlighting its own row.
func (c *Catalog) Play(id pattern.Key) error {
	e, ok := c.Entry(id)
	if !ok {
		return fault.Wrap(ErrUnknownPattern, fmsg.WithDesc(string(id), "Pattern not found"))
	}
	return c.player.Start(e.Sequence, sequencer.CatalogSource(e.ID))
}

// Toggle flips the practiced state of the entry and re-renders every length
// group. The returned state can be relied on immediately.
func (c *Catalog) Toggle(id pattern.Key) (bool, error) {
	e, ok := c.Entry(id)
	if !ok {
		return false, fault.Wrap(ErrUnknownPattern, fmsg.WithDesc(string(id), "Pattern not found"))
	}
	practiced, err := c.ledger.Toggle(e.Sequence)
	c.Render()
	return practiced, err
}

// Render redraws the notation of every entry, replacing the previous glyphs.
func (c *Catalog) Render() {
	if c.board != nil {
		for _, e := range c.entries {
			c.board.Put(notation.Render(e.Sequence, RowID(e)))
		}
	}

	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// RowID is the notation address id of an entry's row.
func RowID(e pattern.Entry) string {
	return sequencer.CatalogSource(e.ID).AddressID()
}
