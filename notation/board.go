package notation

import "sync"

// Board holds the rendered layouts by address id and the single active
// highlight. At most one step glyph is highlighted across the whole board.
type Board struct {
	mu        sync.RWMutex
	layouts   map[string]Layout
	active    Address
	hasActive bool
	onChange  func()
}

func NewBoard() *Board {
	return &Board{layouts: make(map[string]Layout)}
}

// OnChange registers a callback fired after highlight changes. It runs
// without the board lock held and must not block.
func (b *Board) OnChange(fn func()) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// Put stores l, replacing every glyph previously rendered under l.ID.
func (b *Board) Put(l Layout) {
	b.mu.Lock()
	b.layouts[l.ID] = l
	b.mu.Unlock()
}

// Drop removes the layout for id.
func (b *Board) Drop(id string) {
	b.mu.Lock()
	delete(b.layouts, id)
	b.mu.Unlock()
}

// Layout returns the layout rendered under id.
func (b *Board) Layout(id string) (Layout, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	l, ok := b.layouts[id]
	return l, ok
}

// Highlight clears any previous highlight and marks addr.
func (b *Board) Highlight(addr Address) {
	b.mu.Lock()
	b.active = addr
	b.hasActive = true
	fn := b.onChange
	b.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// ClearHighlights removes the active highlight, if any.
func (b *Board) ClearHighlights() {
	b.mu.Lock()
	changed := b.hasActive
	b.hasActive = false
	b.active = Address{}
	fn := b.onChange
	b.mu.Unlock()
	if changed && fn != nil {
		fn()
	}
}

// Active returns the highlighted address.
func (b *Board) Active() (Address, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.active, b.hasActive
}

// ActiveStep returns the highlighted step within layout id, or -1.
func (b *Board) ActiveStep(id string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.hasActive || b.active.ID != id {
		return -1
	}
	return b.active.Step
}

// IsActive reports whether addr is the highlighted glyph.
func (b *Board) IsActive(addr Address) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.hasActive && b.active == addr
}
