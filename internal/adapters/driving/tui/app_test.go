package tui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/clipr-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/clipr-cli/internal/core/domain"
	"github.com/custodia-labs/clipr-cli/internal/core/services"
)

// fakeClipboard records writes for assertions.
type fakeClipboard struct {
	mu      sync.Mutex
	content domain.Content
	err     error
}

func (f *fakeClipboard) Read() (domain.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.content, nil
}

func (f *fakeClipboard) Write(content domain.Content) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.content = content
	return nil
}

type fixture struct {
	app     *App
	history *services.HistoryService
	regs    *services.RegisterService
	clip    *fakeClipboard
}

func newFixture(t *testing.T, texts []string, opts ...Option) *fixture {
	t.Helper()
	ctx := context.Background()

	history := services.NewHistoryService(ctx, memory.NewHistoryStore(), 100)
	regs := services.NewRegisterService(ctx, memory.NewRegisterStore(), history, []domain.PermanentRegisterDef{
		{Name: 'e', Content: "user@example.com"},
	})
	clip := &fakeClipboard{}

	// Oldest first so the last text ends up newest.
	for _, text := range texts {
		_, err := history.Capture(ctx, domain.TextContent(text))
		require.NoError(t, err)
	}
	// Drain notifications so tests start clean.
	for len(history.Captures()) > 0 {
		<-history.Captures()
	}

	app, err := NewApp(&Ports{
		History:   history,
		Registers: regs,
		Search:    services.NewSearchService(),
		Clipboard: clip,
	}, opts...)
	require.NoError(t, err)

	return &fixture{app: app, history: history, regs: regs, clip: clip}
}

func press(app *App, msg tea.KeyMsg) tea.Cmd {
	_, cmd := app.Update(msg)
	return cmd
}

func typeRunes(app *App, s string) {
	for _, r := range s {
		press(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func keyEsc() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyEsc} }
func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyDown() tea.KeyMsg  { return tea.KeyMsg{Type: tea.KeyDown} }
func keyUp() tea.KeyMsg    { return tea.KeyMsg{Type: tea.KeyUp} }

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestTwoStageCancel(t *testing.T) {
	f := newFixture(t, []string{"apricot", "banana", "apple"})
	app := f.app

	require.Equal(t, 3, app.Rows())

	typeRunes(app, "/")
	require.Equal(t, ModeSearch, app.Mode())

	typeRunes(app, "ap")
	assert.Equal(t, 2, app.Rows())
	assert.Equal(t, "apple", app.SelectedClip().Content.Text)

	press(app, keyDown())
	assert.Equal(t, "apricot", app.SelectedClip().Content.Text)

	// First escape: query editing closes, filter and selection survive.
	press(app, keyEsc())
	assert.Equal(t, ModeBrowse, app.Mode())
	assert.Equal(t, domain.FilterQuery, app.Filter().Kind)
	assert.Equal(t, 2, app.Rows())
	assert.Equal(t, "apricot", app.SelectedClip().Content.Text)

	// Second escape: filter cleared, full list restored.
	press(app, keyEsc())
	assert.Equal(t, domain.FilterNone, app.Filter().Kind)
	assert.Equal(t, 3, app.Rows())

	// Third escape: quit.
	cmd := press(app, keyEsc())
	assert.True(t, isQuit(t, cmd))
}

func TestSearchNavigationKeepsQuery(t *testing.T) {
	f := newFixture(t, []string{"alpha one", "alpha two", "beta"})
	app := f.app

	typeRunes(app, "/")
	typeRunes(app, "alpha")
	require.Equal(t, 2, app.Rows())

	press(app, keyDown())
	press(app, keyUp())
	assert.Equal(t, ModeSearch, app.Mode())
	assert.Equal(t, "alpha", app.Filter().Query)
}

func TestEscapeInEmptySearchClearsFilter(t *testing.T) {
	f := newFixture(t, []string{"one", "two"})
	app := f.app

	typeRunes(app, "/")
	press(app, keyEsc())

	assert.Equal(t, ModeBrowse, app.Mode())
	assert.Equal(t, domain.FilterNone, app.Filter().Kind)
}

func TestEnterCopiesSelection(t *testing.T) {
	f := newFixture(t, []string{"older", "newest"})
	app := f.app

	cmd := press(app, keyEnter())
	assert.False(t, isQuit(t, cmd))
	assert.Equal(t, "newest", f.clip.content.Text)
	assert.Equal(t, "copied", app.Status())
}

func TestExitOnSelect(t *testing.T) {
	f := newFixture(t, []string{"only"}, WithExitOnSelect(true))

	cmd := press(f.app, keyEnter())
	assert.True(t, isQuit(t, cmd))
}

func TestClipboardFailureKeepsState(t *testing.T) {
	f := newFixture(t, []string{"content"})
	f.clip.err = assert.AnError

	cmd := press(f.app, keyEnter())
	assert.False(t, isQuit(t, cmd))
	assert.NotEmpty(t, f.app.Status())
	assert.Equal(t, 1, f.app.Rows())
	assert.Equal(t, ModeBrowse, f.app.Mode())
}

func TestMarkAssignsRegister(t *testing.T) {
	f := newFixture(t, []string{"to mark"})
	app := f.app
	ctx := context.Background()

	typeRunes(app, "m")
	require.Equal(t, ModeMark, app.Mode())

	typeRunes(app, "q")
	assert.Equal(t, ModeBrowse, app.Mode())

	reg, err := f.regs.Lookup(ctx, 'q')
	require.NoError(t, err)
	assert.Equal(t, "to mark", reg.Content.Text)
	assert.Equal(t, byte('q'), app.SelectedClip().Register)
}

func TestMarkNonLetterCancels(t *testing.T) {
	f := newFixture(t, []string{"unmarked"})
	app := f.app

	typeRunes(app, "m")
	typeRunes(app, "5")

	assert.Equal(t, ModeBrowse, app.Mode())
	assert.Equal(t, byte(0), app.SelectedClip().Register)
	assert.Empty(t, app.Status())
}

func TestConfirmGateClearUnpinned(t *testing.T) {
	f := newFixture(t, []string{"a", "b", "c"})
	app := f.app
	ctx := context.Background()

	pinnedID := app.SelectedClip().ID
	typeRunes(app, "p")
	require.True(t, app.SelectedClip().Pinned)

	typeRunes(app, "D")
	require.Equal(t, ModeConfirm, app.Mode())

	// n cancels without touching history.
	typeRunes(app, "n")
	assert.Equal(t, ModeBrowse, app.Mode())
	assert.Equal(t, 3, app.Rows())

	typeRunes(app, "D")
	typeRunes(app, "y")
	assert.Equal(t, ModeBrowse, app.Mode())
	assert.Equal(t, 1, app.Rows())

	_, err := f.history.Get(ctx, pinnedID)
	assert.NoError(t, err)
}

func TestRegisterFilterListsRegisters(t *testing.T) {
	f := newFixture(t, []string{"clip"})
	app := f.app
	ctx := context.Background()

	require.NoError(t, f.regs.SetTemporary(ctx, 'a', domain.TextContent("temp value")))

	typeRunes(app, "'")
	assert.Equal(t, domain.FilterTemporary, app.Filter().Kind)
	assert.Equal(t, 1, app.Rows())
	assert.Nil(t, app.SelectedClip())

	// Toggling again restores the clip list.
	typeRunes(app, "'")
	assert.Equal(t, domain.FilterNone, app.Filter().Kind)
	assert.Equal(t, 1, app.Rows())

	typeRunes(app, "\"")
	assert.Equal(t, domain.FilterPermanent, app.Filter().Kind)
	assert.Equal(t, 1, app.Rows())
}

func TestEscapeClearsRegisterFilterBeforeQuit(t *testing.T) {
	f := newFixture(t, []string{"clip"})
	app := f.app

	typeRunes(app, "\"")
	require.Equal(t, domain.FilterPermanent, app.Filter().Kind)

	cmd := press(app, keyEsc())
	assert.False(t, isQuit(t, cmd))
	assert.Equal(t, domain.FilterNone, app.Filter().Kind)

	cmd = press(app, keyEsc())
	assert.True(t, isQuit(t, cmd))
}

func TestDeleteTemporaryRegisterRow(t *testing.T) {
	f := newFixture(t, []string{"clip"})
	app := f.app
	ctx := context.Background()

	require.NoError(t, f.regs.SetTemporary(ctx, 'x', domain.TextContent("gone soon")))
	typeRunes(app, "'")
	require.Equal(t, 1, app.Rows())

	typeRunes(app, "d")
	assert.Equal(t, 0, app.Rows())

	_, err := f.regs.Lookup(ctx, 'x')
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeletePermanentRegisterRejected(t *testing.T) {
	f := newFixture(t, []string{"clip"})
	app := f.app

	typeRunes(app, "\"")
	require.Equal(t, 1, app.Rows())

	typeRunes(app, "d")
	assert.Equal(t, 1, app.Rows())
	assert.NotEmpty(t, app.Status())
}

func TestCaptureMsgRefreshesList(t *testing.T) {
	f := newFixture(t, []string{"existing"})
	app := f.app
	ctx := context.Background()

	id, err := f.history.Capture(ctx, domain.TextContent("from monitor"))
	require.NoError(t, err)

	_, cmd := app.Update(CaptureMsg(id))
	assert.NotNil(t, cmd)
	assert.Equal(t, 2, app.Rows())
	assert.Equal(t, "from monitor", app.rows[0].clip.Content.Text)
}

func TestHelpOverlayDismissedByAnyKey(t *testing.T) {
	f := newFixture(t, []string{"clip"})
	app := f.app

	typeRunes(app, "?")
	require.Equal(t, ModeHelp, app.Mode())

	typeRunes(app, "x")
	assert.Equal(t, ModeBrowse, app.Mode())
}

func TestHelpOpensFromEveryMode(t *testing.T) {
	f := newFixture(t, []string{"one clip"})
	app := f.app
	f1 := tea.KeyMsg{Type: tea.KeyF1}

	// Search: ? is query input, F1 opens help; dismissal resumes the
	// query untouched.
	typeRunes(app, "/")
	typeRunes(app, "one")
	press(app, f1)
	require.Equal(t, ModeHelp, app.Mode())
	typeRunes(app, "x")
	assert.Equal(t, ModeSearch, app.Mode())
	assert.Equal(t, "one", app.Filter().Query)
	press(app, keyEsc())
	press(app, keyEsc())

	// Mark: F1 opens help, dismissal returns to Mark still awaiting a
	// letter.
	typeRunes(app, "m")
	press(app, f1)
	require.Equal(t, ModeHelp, app.Mode())
	typeRunes(app, "x")
	assert.Equal(t, ModeMark, app.Mode())
	press(app, keyEsc())

	// Confirm: both ? and F1 open help.
	typeRunes(app, "D")
	typeRunes(app, "?")
	require.Equal(t, ModeHelp, app.Mode())
	typeRunes(app, "x")
	assert.Equal(t, ModeConfirm, app.Mode())
	typeRunes(app, "n")
	assert.Equal(t, ModeBrowse, app.Mode())
}

func TestQuestionMarkIsQueryInputInSearch(t *testing.T) {
	f := newFixture(t, []string{"what?", "plain"})
	app := f.app

	typeRunes(app, "/")
	typeRunes(app, "what?")

	assert.Equal(t, ModeSearch, app.Mode())
	require.Equal(t, 1, app.Rows())
	assert.Equal(t, "what?", app.SelectedClip().Content.Text)
}

func TestPinnedFilter(t *testing.T) {
	f := newFixture(t, []string{"plain", "pin me"})
	app := f.app

	typeRunes(app, "p")
	typeRunes(app, "P")

	assert.Equal(t, domain.FilterPinned, app.Filter().Kind)
	require.Equal(t, 1, app.Rows())
	assert.Equal(t, "pin me", app.SelectedClip().Content.Text)
}

func TestViewRendersWithoutPanic(t *testing.T) {
	f := newFixture(t, []string{"first\nsecond line", "plain"})
	app := f.app

	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.NotEmpty(t, app.View())

	typeRunes(app, "/")
	typeRunes(app, "pl")
	assert.NotEmpty(t, app.View())

	press(app, keyEsc())
	typeRunes(app, "D")
	assert.Contains(t, app.View(), "unpinned")

	typeRunes(app, "n")
	typeRunes(app, "?")
	assert.NotEmpty(t, app.View())
}
