package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/clipr-cli/internal/core/domain"
)

// previewWidth is the rune budget for a list row preview.
const previewWidth = 60

// View renders the full screen.
func (a *App) View() string {
	if a.mode == ModeHelp {
		return a.viewHelp()
	}

	var b strings.Builder

	b.WriteString(a.styles.Title.Render("clipr"))
	if label := a.filter.Label(); label != "" {
		b.WriteString("  " + a.styles.Muted.Render(label))
	}
	b.WriteString("\n\n")

	if a.mode == ModeSearch {
		b.WriteString(a.input.View())
		b.WriteString("\n\n")
	}

	b.WriteString(a.viewList())
	b.WriteString("\n")
	b.WriteString(a.viewPreview())
	b.WriteString("\n")

	if a.mode == ModeConfirm {
		b.WriteString(a.styles.Error.Render("delete all unpinned clips? (y/n)"))
	} else if a.status != "" {
		if a.statusErr {
			b.WriteString(a.styles.Error.Render(a.status))
		} else {
			b.WriteString(a.styles.Success.Render(a.status))
		}
	} else {
		b.WriteString(a.styles.StatusBar.Render(a.statusLine()))
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render(a.hintLine()))

	return b.String()
}

func (a *App) viewList() string {
	if len(a.rows) == 0 {
		return a.styles.Muted.Render("  (nothing here)")
	}

	top, bottom := a.window()
	var b strings.Builder
	for i := top; i < bottom; i++ {
		line := a.renderRow(&a.rows[i])
		if i == a.selected {
			b.WriteString(a.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(a.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// window returns the visible slice bounds, keeping the selection on
// screen.
func (a *App) window() (int, int) {
	size := a.listHeight()
	if len(a.rows) <= size {
		return 0, len(a.rows)
	}
	top := a.selected - size/2
	if top < 0 {
		top = 0
	}
	if top+size > len(a.rows) {
		top = len(a.rows) - size
	}
	return top, top + size
}

func (a *App) listHeight() int {
	// Header, optional input, preview pane, status and hint lines.
	reserved := 10
	if a.height > reserved+3 {
		return a.height - reserved
	}
	return 10
}

func (a *App) renderRow(r *row) string {
	if r.reg != nil {
		return fmt.Sprintf("%s  %s",
			a.styles.Register.Render(fmt.Sprintf("[%c]", r.reg.Name)),
			r.reg.Content.Preview(previewWidth))
	}

	var markers strings.Builder
	if r.clip.Pinned {
		markers.WriteString(a.styles.Pinned.Render("*"))
	} else {
		markers.WriteString(" ")
	}
	// A clip may name a register that was since deleted; render such
	// clips as unregistered.
	if r.clip.Register != 0 && a.registerExists(r.clip.Register) {
		markers.WriteString(a.styles.Register.Render(fmt.Sprintf("'%c", r.clip.Register)))
	} else {
		markers.WriteString("  ")
	}

	return fmt.Sprintf("%s %s", markers.String(), r.clip.Content.Preview(previewWidth))
}

func (a *App) registerExists(name byte) bool {
	_, err := a.ports.Registers.Lookup(a.ctx, name)
	return err == nil
}

// viewPreview renders the selected entry in full, first lines only.
func (a *App) viewPreview() string {
	r := a.selectedRow()
	if r == nil {
		return ""
	}

	content := r.content()
	text := content.Preview(0)
	if content.Kind == domain.ContentText {
		lines := strings.SplitN(content.Text, "\n", 6)
		if len(lines) > 5 {
			lines = lines[:5]
			lines = append(lines, a.styles.Muted.Render("..."))
		}
		text = strings.Join(lines, "\n")
	}

	width := a.width - 4
	if width < 20 {
		width = 76
	}
	return a.styles.Preview.Width(width).Render(text)
}

func (a *App) statusLine() string {
	r := a.selectedRow()
	if r == nil {
		return fmt.Sprintf("%d items", len(a.rows))
	}
	if r.clip != nil {
		return fmt.Sprintf("%d/%d  clip %d  %s",
			a.selected+1, len(a.rows), r.clip.ID,
			r.clip.CapturedAt.Format("2006-01-02 15:04:05"))
	}
	kind := "temporary"
	if r.reg.Kind == domain.RegisterPermanent {
		kind = "permanent"
	}
	return fmt.Sprintf("%d/%d  register '%c' (%s)", a.selected+1, len(a.rows), r.reg.Name, kind)
}

func (a *App) hintLine() string {
	switch a.mode {
	case ModeSearch:
		return "type to filter · ↑/↓ select · enter copy · esc keep filter"
	case ModeMark:
		return "press a letter (A-Z, a-z) to mark · any other key cancels"
	case ModeConfirm:
		return "y confirm · n cancel"
	default:
		var parts []string
		for _, binding := range a.keys.ShortHelp() {
			parts = append(parts, binding.Help().Key+" "+binding.Help().Desc)
		}
		return strings.Join(parts, " · ")
	}
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("clipr help"))
	b.WriteString("\n\n")

	for _, group := range a.keys.FullHelp() {
		for _, binding := range group {
			b.WriteString(fmt.Sprintf("  %-12s %s\n",
				binding.Help().Key, binding.Help().Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Help.Render("press any key to close"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
