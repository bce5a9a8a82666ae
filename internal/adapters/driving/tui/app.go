// Package tui implements the interactive clipboard browser following the
// Elm architecture. The App is a tea.Model; every state change flows
// through Update.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/clipr-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/clipr-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/clipr-cli/internal/core/domain"
	"github.com/custodia-labs/clipr-cli/internal/core/ports/driven"
	"github.com/custodia-labs/clipr-cli/internal/core/ports/driving"
	"github.com/custodia-labs/clipr-cli/internal/logger"
)

// Mode is the modal state of the browser.
type Mode int

const (
	// ModeBrowse is the initial mode: list navigation and actions.
	ModeBrowse Mode = iota

	// ModeSearch is live query editing.
	ModeSearch

	// ModeMark waits for a single register letter.
	ModeMark

	// ModeConfirm gates clearing all unpinned clips.
	ModeConfirm

	// ModeHelp shows the keybinding overlay.
	ModeHelp
)

// CaptureMsg reports a background clipboard capture to the event loop.
type CaptureMsg uint64

// row is one visible list entry: either a clip or a register, never both.
type row struct {
	clip *domain.Clip
	reg  *domain.Register
}

// Ports bundles the services the TUI drives.
type Ports struct {
	History   driving.HistoryService
	Registers driving.RegisterService
	Search    driving.SearchService
	Clipboard driven.Clipboard
}

// Validate checks that all required ports are present.
func (p *Ports) Validate() error {
	if p.History == nil || p.Registers == nil || p.Search == nil || p.Clipboard == nil {
		return errors.New("all ports are required")
	}
	return nil
}

// App is the main TUI application. It implements tea.Model.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keys   *keymap.KeyMap

	mode     Mode
	prevMode Mode
	filter   domain.Filter
	input    textinput.Model

	rows     []row
	selected int

	status    string
	statusErr bool

	exitOnSelect bool

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// Option adjusts app construction.
type Option func(*App)

// WithExitOnSelect closes the TUI after a clip is copied.
func WithExitOnSelect(v bool) Option {
	return func(a *App) { a.exitOnSelect = v }
}

// NewApp creates the TUI application.
func NewApp(ports *Ports, opts ...Option) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	input := textinput.New()
	input.Placeholder = "type to filter"
	input.Prompt = "/"
	input.CharLimit = 200

	a := &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: styles.DefaultStyles(),
		keys:   keymap.DefaultKeyMap(),
		input:  input,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.ports.Search.Rebuild(a.ports.History.List(a.ctx))
	a.refresh()
	return a, nil
}

// Init starts listening for background captures.
func (a *App) Init() tea.Cmd {
	return a.listenForCaptures()
}

// listenForCaptures bridges the capture channel into the event loop. The
// command is re-armed after every received message.
func (a *App) listenForCaptures() tea.Cmd {
	return func() tea.Msg {
		id, ok := <-a.ports.History.Captures()
		if !ok {
			return nil
		}
		return CaptureMsg(id)
	}
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case CaptureMsg:
		a.ports.Search.Rebuild(a.ports.History.List(a.ctx))
		a.refresh()
		return a, a.listenForCaptures()

	case tea.KeyMsg:
		switch a.mode {
		case ModeSearch:
			return a.updateSearch(msg)
		case ModeMark:
			return a.updateMark(msg)
		case ModeConfirm:
			return a.updateConfirm(msg)
		case ModeHelp:
			a.mode = a.prevMode
			return a, nil
		default:
			return a.updateBrowse(msg)
		}
	}
	return a, nil
}

func (a *App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.clearStatus()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Cancel):
		// Escape unwinds one layer at a time: query filter, then
		// register or pinned filter, then the application itself.
		if a.filter.Active() {
			a.setFilter(domain.Filter{})
			return a, nil
		}
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.prevMode = a.mode
		a.mode = ModeHelp
		return a, nil

	case key.Matches(msg, a.keys.Up):
		a.moveSelection(-1)
		return a, nil

	case key.Matches(msg, a.keys.Down):
		a.moveSelection(1)
		return a, nil

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.input.SetValue(a.filter.Query)
		a.input.CursorEnd()
		a.input.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Select):
		return a.copySelection()

	case key.Matches(msg, a.keys.Pin):
		a.togglePin()
		return a, nil

	case key.Matches(msg, a.keys.Delete):
		a.deleteSelection()
		return a, nil

	case key.Matches(msg, a.keys.Clear):
		a.mode = ModeConfirm
		return a, nil

	case key.Matches(msg, a.keys.Mark):
		if r := a.selectedRow(); r != nil && r.clip != nil {
			a.mode = ModeMark
		}
		return a, nil

	case key.Matches(msg, a.keys.TemporaryRegisters):
		a.toggleFilter(domain.Filter{Kind: domain.FilterTemporary})
		return a, nil

	case key.Matches(msg, a.keys.PermanentRegisters):
		a.toggleFilter(domain.Filter{Kind: domain.FilterPermanent})
		return a, nil

	case key.Matches(msg, a.keys.PinnedFilter):
		a.toggleFilter(domain.Filter{Kind: domain.FilterPinned})
		return a, nil
	}
	return a, nil
}

func (a *App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	// Typed characters belong to the query here, so only the non-rune
	// help key opens the overlay.
	case msg.Type == tea.KeyF1:
		a.prevMode = a.mode
		a.mode = ModeHelp
		return a, nil

	case key.Matches(msg, a.keys.Cancel):
		// First escape: stop editing, keep the filtered set visible.
		a.input.Blur()
		a.mode = ModeBrowse
		if a.input.Value() == "" {
			a.setFilter(domain.Filter{})
		}
		return a, nil

	case key.Matches(msg, a.keys.Up):
		a.moveSelection(-1)
		return a, nil

	case key.Matches(msg, a.keys.Down):
		a.moveSelection(1)
		return a, nil

	case key.Matches(msg, a.keys.Select):
		model, cmd := a.copySelection()
		a.input.Blur()
		a.mode = ModeBrowse
		return model, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.setFilter(domain.Filter{Kind: domain.FilterQuery, Query: a.input.Value()})
	return a, cmd
}

func (a *App) updateMark(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyF1 {
		a.prevMode = a.mode
		a.mode = ModeHelp
		return a, nil
	}
	a.mode = ModeBrowse

	runes := msg.Runes
	if msg.Type != tea.KeyRunes || len(runes) != 1 || !domain.ValidRegisterName(byte(runes[0])) {
		// Any non-letter key cancels silently.
		return a, nil
	}
	name := byte(runes[0])

	r := a.selectedRow()
	if r == nil || r.clip == nil {
		return a, nil
	}

	if err := a.ports.Registers.MarkClip(a.ctx, name, r.clip.ID); err != nil {
		a.setError(fmt.Sprintf("mark failed: %v", err))
		return a, nil
	}
	a.setStatus(fmt.Sprintf("marked '%c'", name))
	a.refresh()
	return a, nil
}

func (a *App) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "f1":
		a.prevMode = a.mode
		a.mode = ModeHelp
	case "y", "Y":
		removed := a.ports.History.ClearUnpinned(a.ctx)
		a.ports.Search.Rebuild(a.ports.History.List(a.ctx))
		a.mode = ModeBrowse
		a.setStatus(fmt.Sprintf("cleared %d clips", removed))
		a.refresh()
	case "n", "N", "esc":
		a.mode = ModeBrowse
	}
	return a, nil
}

// copySelection writes the selected entry's content to the clipboard.
// Failure surfaces in the status line; selection and filter are kept.
func (a *App) copySelection() (tea.Model, tea.Cmd) {
	r := a.selectedRow()
	if r == nil {
		return a, nil
	}

	content := r.content()
	if err := a.ports.Clipboard.Write(content); err != nil {
		if errors.Is(err, domain.ErrUnsupportedContent) {
			a.setError("cannot copy this content to the clipboard")
		} else {
			a.setError(fmt.Sprintf("clipboard write failed: %v", err))
		}
		return a, nil
	}

	a.setStatus("copied")
	if a.exitOnSelect {
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) togglePin() {
	r := a.selectedRow()
	if r == nil || r.clip == nil {
		return
	}
	pinned, err := a.ports.History.TogglePin(a.ctx, r.clip.ID)
	if err != nil {
		a.setError(fmt.Sprintf("pin failed: %v", err))
		return
	}
	if pinned {
		a.setStatus("pinned")
	} else {
		a.setStatus("unpinned")
	}
	a.refresh()
}

func (a *App) deleteSelection() {
	r := a.selectedRow()
	if r == nil {
		return
	}

	var err error
	switch {
	case r.clip != nil:
		err = a.ports.History.Remove(a.ctx, r.clip.ID)
		if err == nil {
			a.ports.Search.Rebuild(a.ports.History.List(a.ctx))
		}
	case r.reg != nil:
		err = a.ports.Registers.DeleteTemporary(a.ctx, r.reg.Name)
	}

	if err != nil {
		if errors.Is(err, domain.ErrPermanentRegisterImmutable) {
			a.setError("permanent registers are defined in the config file")
		} else {
			a.setError(fmt.Sprintf("delete failed: %v", err))
		}
		return
	}
	a.setStatus("deleted")
	a.refresh()
}

// toggleFilter activates the filter, or clears it when already active.
func (a *App) toggleFilter(f domain.Filter) {
	if a.filter.Kind == f.Kind {
		a.setFilter(domain.Filter{})
		return
	}
	a.setFilter(f)
}

func (a *App) setFilter(f domain.Filter) {
	a.filter = f
	if f.Kind != domain.FilterQuery {
		a.input.SetValue("")
	}
	a.selected = 0
	a.refresh()
}

// refresh recomputes the visible rows from the current filter and clamps
// the selection.
func (a *App) refresh() {
	a.rows = a.rows[:0]

	switch a.filter.Kind {
	case domain.FilterTemporary, domain.FilterPermanent:
		kind := domain.RegisterTemporary
		if a.filter.Kind == domain.FilterPermanent {
			kind = domain.RegisterPermanent
		}
		regs := a.ports.Registers.List(a.ctx, kind)
		for i := range regs {
			a.rows = append(a.rows, row{reg: &regs[i]})
		}

	case domain.FilterQuery:
		clips := a.ports.History.List(a.ctx)
		byID := make(map[uint64]*domain.Clip, len(clips))
		for i := range clips {
			byID[clips[i].ID] = &clips[i]
		}
		for _, id := range a.ports.Search.Query(a.filter.Query) {
			if clip, ok := byID[id]; ok {
				a.rows = append(a.rows, row{clip: clip})
			}
		}

	case domain.FilterPinned:
		clips := a.ports.History.List(a.ctx)
		for i := range clips {
			if clips[i].Pinned {
				a.rows = append(a.rows, row{clip: &clips[i]})
			}
		}

	default:
		clips := a.ports.History.List(a.ctx)
		for i := range clips {
			a.rows = append(a.rows, row{clip: &clips[i]})
		}
	}

	if a.selected >= len(a.rows) {
		a.selected = len(a.rows) - 1
	}
	if a.selected < 0 {
		a.selected = 0
	}
}

func (a *App) moveSelection(delta int) {
	if len(a.rows) == 0 {
		return
	}
	a.selected += delta
	if a.selected < 0 {
		a.selected = 0
	}
	if a.selected >= len(a.rows) {
		a.selected = len(a.rows) - 1
	}
}

func (a *App) selectedRow() *row {
	if a.selected < 0 || a.selected >= len(a.rows) {
		return nil
	}
	return &a.rows[a.selected]
}

func (r *row) content() domain.Content {
	if r.clip != nil {
		return r.clip.Content
	}
	return r.reg.Content
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(s string) {
	logger.Debug("tui error: %s", s)
	a.status = s
	a.statusErr = true
}

func (a *App) clearStatus() {
	a.status = ""
	a.statusErr = false
}

// Mode returns the current modal state. Exposed for tests.
func (a *App) Mode() Mode {
	return a.mode
}

// Filter returns the active filter. Exposed for tests.
func (a *App) Filter() domain.Filter {
	return a.filter
}

// Rows returns the visible row count. Exposed for tests.
func (a *App) Rows() int {
	return len(a.rows)
}

// Selected returns the selected row index. Exposed for tests.
func (a *App) Selected() int {
	return a.selected
}

// SelectedClip returns the selected clip, if the selection is a clip row.
func (a *App) SelectedClip() *domain.Clip {
	if r := a.selectedRow(); r != nil {
		return r.clip
	}
	return nil
}

// Status returns the current status-line text. Exposed for tests.
func (a *App) Status() string {
	return a.status
}
