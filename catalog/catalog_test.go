package catalog

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"drumdrill/ledger"
	"drumdrill/notation"
	"drumdrill/pattern"
	"drumdrill/sequencer"
)

type fixture struct {
	catalog *Catalog
	custom  *Custom
	sched   *sequencer.Scheduler
	clock   *sequencer.ManualClock
	board   *notation.Board
	ledger  *ledger.Ledger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	l, _ := ledger.Load(ledger.NewFileStore(filepath.Join(t.TempDir(), "practiced.json")))
	board := notation.NewBoard()
	clock := sequencer.NewManualClock()
	sched := sequencer.NewScheduler(clock, nil, board)
	return &fixture{
		catalog: New(pattern.DefaultAlphabet, pattern.DefaultLengths, l, sched, board),
		custom:  NewCustom(pattern.DefaultAlphabet, sched, board),
		sched:   sched,
		clock:   clock,
		board:   board,
		ledger:  l,
	}
}

func TestCatalogGroups(t *testing.T) {
	f := newFixture(t)
	if f.catalog.Len() != 117 {
		t.Fatalf("len = %d", f.catalog.Len())
	}
	for n, want := range map[int]int{2: 9, 3: 27, 4: 81} {
		rows := f.catalog.Rows(n, false)
		if len(rows) != want {
			t.Errorf("length %d rows = %d, want %d", n, len(rows), want)
		}
		for _, r := range rows {
			if _, ok := f.board.Layout(r.RowID); !ok {
				t.Errorf("row %s not rendered", r.RowID)
			}
		}
	}
	if got := f.catalog.Rows(2, false)[0].Entry.ID; got != "B B" {
		t.Errorf("first row = %q", got)
	}
}

func TestToggleAndFilter(t *testing.T) {
	f := newFixture(t)

	renders := 0
	f.catalog.OnChange(func() { renders++ })

	on, err := f.catalog.Toggle("B R")
	if err != nil {
		t.Fatal(err)
	}
	if !on {
		t.Fatal("expected practiced")
	}
	if renders != 1 {
		t.Errorf("renders = %d", renders)
	}

	rows := f.catalog.Rows(2, false)
	if !rows[1].Practiced || rows[1].ToggleLabel() != "Unmark" {
		t.Errorf("row = %+v", rows[1])
	}
	if rows[0].ToggleLabel() != "Mark practiced" {
		t.Errorf("label = %q", rows[0].ToggleLabel())
	}

	filtered := f.catalog.ByLength(2, true)
	if len(filtered) != 8 {
		t.Errorf("filtered = %d, want 8", len(filtered))
	}
	for _, e := range filtered {
		if e.ID == "B R" {
			t.Error("practiced entry not filtered")
		}
	}

	if p, total := f.catalog.Progress(2); p != 1 || total != 9 {
		t.Errorf("progress = %d/%d", p, total)
	}

	if _, err := f.catalog.Toggle("X"); !errors.Is(err, ErrUnknownPattern) {
		t.Errorf("err = %v", err)
	}
}

func TestPlayHighlightsOwnRow(t *testing.T) {
	f := newFixture(t)
	if err := f.catalog.Play("B R P"); err != nil {
		t.Fatal(err)
	}
	addr, ok := f.board.Active()
	if !ok || addr.ID != "catalog-B R P" || addr.Step != 0 {
		t.Fatalf("active = %v %v", addr, ok)
	}

	f.clock.Advance(500 * time.Millisecond)
	if step := f.board.ActiveStep("catalog-B R P"); step != 1 {
		t.Errorf("step = %d", step)
	}

	if err := f.catalog.Play("nope"); !errors.Is(err, ErrUnknownPattern) {
		t.Errorf("err = %v", err)
	}
	f.sched.Stop()
	if _, ok := f.board.Active(); ok {
		t.Error("highlight left after stop")
	}
}

func TestCustomBuilder(t *testing.T) {
	f := newFixture(t)

	if f.custom.Text() != EmptyCustomText {
		t.Errorf("text = %q", f.custom.Text())
	}
	if err := f.custom.Play(); !errors.Is(err, pattern.ErrEmptyPattern) {
		t.Errorf("empty play err = %v", err)
	}
	if f.sched.Running() {
		t.Error("empty play should not start")
	}

	if err := f.custom.Append(pattern.Bass); err != nil {
		t.Fatal(err)
	}
	if err := f.custom.AppendText("r p"); err != nil {
		t.Fatal(err)
	}
	if err := f.custom.Append("Q"); !errors.Is(err, pattern.ErrInvalidSymbol) {
		t.Errorf("err = %v", err)
	}
	if err := f.custom.AppendText("r q"); !errors.Is(err, pattern.ErrInvalidSymbol) {
		t.Errorf("err = %v", err)
	}

	if got := f.custom.Text(); got != "B - R - P" {
		t.Errorf("text = %q", got)
	}
	l, ok := f.board.Layout("custom")
	if !ok || len(l.Glyphs) != 3 {
		t.Fatalf("custom layout = %+v", l)
	}

	if err := f.custom.Play(); err != nil {
		t.Fatal(err)
	}
	if st := f.sched.State(); st.Source != sequencer.CustomSource || st.Sequence.Key() != "B R P" {
		t.Errorf("state = %+v", st)
	}
	if f.board.ActiveStep("custom") != 0 {
		t.Error("custom step 0 not highlighted")
	}

	f.custom.Clear()
	if len(f.custom.Pattern()) != 0 {
		t.Error("clear failed")
	}
	if _, ok := f.board.Layout("custom"); ok {
		t.Error("custom layout should be dropped when empty")
	}
}
