package tui

import (
	"fmt"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"drumdrill/audio"
	"drumdrill/catalog"
	"drumdrill/config"
	"drumdrill/notation"
	"drumdrill/pattern"
	"drumdrill/sequencer"
	"drumdrill/theme"
	"drumdrill/widgets"
)

// NoRowsText is shown for a length group with nothing left to show.
const NoRowsText = "No patterns to show with the current filters."

// Deps are the collaborators the TUI drives.
type Deps struct {
	Scheduler *sequencer.Scheduler
	Catalog   *catalog.Catalog
	Custom    *catalog.Custom
	Board     *notation.Board
	Theme     *theme.Theme
	Config    *config.Config
	Ports     <-chan audio.PortEvent // may be nil
}

type Model struct {
	Scheduler *sequencer.Scheduler
	Catalog   *catalog.Catalog
	Custom    *catalog.Custom
	Board     *notation.Board
	Theme     *theme.Theme
	Config    *config.Config
	ports     <-chan audio.PortEvent

	lengths []int
	tab     int   // index into lengths; len(lengths) is the custom tab
	cursor  []int // per tab
	offset  []int // per tab, first visible row

	onlyUnpracticed bool
	height          int
	port            string

	err      error
	keys     keyMap
	help     help.Model
	quitting bool
}

type UpdateMsg struct{}

type PortEventMsg audio.PortEvent

func NewModel(d Deps) Model {
	lengths := d.Catalog.Lengths()
	th := d.Theme
	if th == nil {
		th = theme.Default()
	}
	cfg := d.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return Model{
		Scheduler:       d.Scheduler,
		Catalog:         d.Catalog,
		Custom:          d.Custom,
		Board:           d.Board,
		Theme:           th,
		Config:          cfg,
		ports:           d.Ports,
		lengths:         lengths,
		cursor:          make([]int, len(lengths)),
		offset:          make([]int, len(lengths)),
		onlyUnpracticed: cfg.OnlyUnpracticed,
		height:          30,
		keys:            defaultKeyMap(),
		help:            help.New(),
	}
}

func ListenForUpdates(s *sequencer.Scheduler) tea.Cmd {
	return func() tea.Msg {
		<-s.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForPorts(ports <-chan audio.PortEvent) tea.Cmd {
	if ports == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-ports
		if !ok {
			return nil
		}
		return PortEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForUpdates(m.Scheduler),
		ListenForPorts(m.ports),
	)
}

// Err returns the error currently shown, if any.
func (m Model) Err() error {
	return m.err
}

// OnlyUnpracticed reports whether the practiced filter is on.
func (m Model) OnlyUnpracticed() bool {
	return m.onlyUnpracticed
}

// Tab returns the active tab index; the last tab is the custom builder.
func (m Model) Tab() int {
	return m.tab
}

func (m Model) onCustomTab() bool {
	return m.tab == len(m.lengths)
}

func (m Model) rows() []catalog.Row {
	if m.onCustomTab() {
		return nil
	}
	return m.Catalog.Rows(m.lengths[m.tab], m.onlyUnpracticed)
}

// Selected returns the row under the cursor on a length tab.
func (m Model) Selected() (catalog.Row, bool) {
	rows := m.rows()
	if len(rows) == 0 {
		return catalog.Row{}, false
	}
	return rows[m.clampedCursor(len(rows))], true
}

func (m Model) clampedCursor(n int) int {
	c := m.cursor[m.tab]
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

func (m Model) visibleRows() int {
	return max(5, m.height-20)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m.handleKey(msg)

	case UpdateMsg:
		return m, ListenForUpdates(m.Scheduler)

	case PortEventMsg:
		if msg.Connected {
			m.port = msg.Port
		} else if m.port == msg.Port {
			m.port = ""
		}
		return m, ListenForPorts(m.ports)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// any key dismisses the last error
	m.err = nil
	tabs := len(m.lengths) + 1

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.Scheduler.Stop()
		m.Config.Tempo = m.Scheduler.Tempo()
		m.Config.OnlyUnpracticed = m.onlyUnpracticed
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tabs

	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + tabs - 1) % tabs

	case key.Matches(msg, m.keys.Stop):
		m.Scheduler.Stop()

	case key.Matches(msg, m.keys.Faster):
		m.err = m.Scheduler.SetTempo(min(m.Scheduler.Tempo()+5, sequencer.MaxTempo))

	case key.Matches(msg, m.keys.Slower):
		m.err = m.Scheduler.SetTempo(max(m.Scheduler.Tempo()-5, sequencer.MinTempo))

	case key.Matches(msg, m.keys.Filter):
		m.onlyUnpracticed = !m.onlyUnpracticed
		m.Catalog.Render()

	case m.onCustomTab():
		m.handleCustomKey(msg)

	default:
		m.handleCatalogKey(msg)
	}
	return m, nil
}

func (m *Model) handleCatalogKey(msg tea.KeyMsg) {
	rows := m.rows()
	n := len(rows)

	switch {
	case key.Matches(msg, m.keys.Up):
		if c := m.clampedCursor(n); c > 0 {
			m.cursor[m.tab] = c - 1
		}
	case key.Matches(msg, m.keys.Down):
		if c := m.clampedCursor(n); c < n-1 {
			m.cursor[m.tab] = c + 1
		}
	case key.Matches(msg, m.keys.Play):
		if n == 0 {
			return
		}
		m.err = m.Catalog.Play(rows[m.clampedCursor(n)].Entry.ID)
	case key.Matches(msg, m.keys.Toggle):
		if n == 0 {
			return
		}
		_, m.err = m.Catalog.Toggle(rows[m.clampedCursor(n)].Entry.ID)
	}
	m.scroll()
}

// scroll keeps the cursor inside the visible window.
func (m *Model) scroll() {
	n := len(m.rows())
	c := m.clampedCursor(n)
	vis := m.visibleRows()
	off := m.offset[m.tab]
	if c < off {
		off = c
	}
	if c >= off+vis {
		off = c - vis + 1
	}
	m.offset[m.tab] = max(0, min(off, max(0, n-vis)))
}

func (m *Model) handleCustomKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.AddBass):
		m.err = m.Custom.Append(pattern.Bass)
	case key.Matches(msg, m.keys.AddSnare):
		m.err = m.Custom.Append(pattern.Snare)
	case key.Matches(msg, m.keys.AddHiHat):
		m.err = m.Custom.Append(pattern.HiHat)
	case key.Matches(msg, m.keys.Clear):
		m.Custom.Clear()
	case key.Matches(msg, m.keys.Play):
		m.err = m.Custom.Play()
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.Scheduler.State()
	th := m.Theme

	// Styles
	headerStyle := lipgloss.NewStyle().Foreground(th.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(th.Muted())
	errStyle := lipgloss.NewStyle().Foreground(th.Warning())
	tabActive := lipgloss.NewStyle().Foreground(th.BG()).Background(th.Accent()).Bold(true)
	tabIdle := lipgloss.NewStyle().Foreground(th.FG())

	playState := "STOP"
	if st.Running {
		playState = "PLAY " + st.Sequence.String()
	}
	filter := ""
	if m.onlyUnpracticed {
		filter = "  [only unpracticed]"
	}
	port := ""
	if m.port != "" {
		port = "  out:" + m.port
	}
	header := headerStyle.Render(fmt.Sprintf("drumdrill  %3dbpm  %s%s%s", st.Tempo, playState, filter, port))

	var indicators []widgets.Indicator
	for _, sym := range pattern.DefaultAlphabet {
		indicators = append(indicators, widgets.Indicator{
			Label: sym.Name(),
			Color: th.Instrument(sym),
			Lit:   m.Scheduler.Pulsing(sym),
		})
	}
	kit := widgets.RenderIndicators(indicators, th.Symbols.PadOn, th.Symbols.PadOff)

	titles := make([]string, 0, len(m.lengths)+1)
	for _, l := range m.lengths {
		p, total := m.Catalog.Progress(l)
		titles = append(titles, fmt.Sprintf("%d hits %d/%d", l, p, total))
	}
	titles = append(titles, "custom")
	tabs := widgets.RenderTabs(titles, m.tab, tabActive, tabIdle)

	var body string
	if m.onCustomTab() {
		body = m.customView(dimStyle)
	} else {
		body = m.catalogView(dimStyle)
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(kit)
	out.WriteString("\n\n")
	out.WriteString(tabs)
	out.WriteString("\n\n")
	out.WriteString(body)
	out.WriteString("\n\n")
	if m.err != nil {
		out.WriteString(errStyle.Render("ERROR: " + errorText(m.err)))
		out.WriteString("\n")
	}
	out.WriteString(m.help.View(m.keys))

	return out.String()
}

func (m Model) catalogView(dim lipgloss.Style) string {
	th := m.Theme
	rows := m.rows()
	if len(rows) == 0 {
		return dim.Render(NoRowsText)
	}

	cursorStyle := lipgloss.NewStyle().Foreground(th.Cursor()).Bold(true)
	badgeStyle := lipgloss.NewStyle().Foreground(th.Success())

	c := m.clampedCursor(len(rows))
	off := m.offset[m.tab]
	end := min(len(rows), off+m.visibleRows())

	var lines []string
	for i := off; i < end; i++ {
		r := rows[i]
		mark := " "
		if i == c {
			mark = string(th.Symbols.Cursor)
		}
		badge := ""
		if r.Practiced {
			badge = badgeStyle.Render(string(th.Symbols.Practiced) + " practiced")
		}
		line := fmt.Sprintf("%s %-18s %-9s %-16s %s", mark, r.Entry.Name, r.Entry.Sequence, "["+r.ToggleLabel()+"]", badge)
		if i == c {
			line = cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if off > 0 || end < len(rows) {
		lines = append(lines, dim.Render(fmt.Sprintf("  %d-%d of %d", off+1, end, len(rows))))
	}

	sel := rows[c]
	lines = append(lines, "", m.score(sel.RowID))

	// also show what is playing when it is not the selected row
	if addr, ok := m.Board.Active(); ok && addr.ID != sel.RowID {
		lines = append(lines, "", dim.Render("now playing"), m.score(addr.ID))
	}
	return strings.Join(lines, "\n")
}

func (m Model) customView(dim lipgloss.Style) string {
	lines := []string{
		"Custom pattern: " + m.Custom.Text(),
		"",
	}
	id := sequencer.CustomSource.AddressID()
	if _, ok := m.Board.Layout(id); ok {
		lines = append(lines, m.score(id))
	} else {
		lines = append(lines, dim.Render("b: bass  r: snare  p: hi-hat  c: clear  enter: play"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) score(id string) string {
	l, ok := m.Board.Layout(id)
	if !ok {
		return ""
	}
	return notation.Draw(l, m.Board.ActiveStep(id), m.Theme.Notation())
}

func errorText(err error) string {
	if issue := fmsg.GetIssue(err); issue != "" {
		return issue
	}
	chain := fault.Flatten(err)
	if len(chain) > 0 {
		return chain[0].Message
	}
	return err.Error()
}
