package tui

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/menu"
)

const screenWidth = 50

func (a *App) clear() {
	fmt.Fprint(a.out, "\x1b[2J\x1b[H")
}

func (a *App) header(title string, extra ...string) {
	fmt.Fprintln(a.out, titleStyle.Render(title))
	for _, line := range extra {
		fmt.Fprintln(a.out, subtitleStyle.Render(line))
	}
	fmt.Fprintln(a.out, separatorStyle.Render(strings.Repeat("─", screenWidth)))
}

func (a *App) rows(labels []string, selected int) {
	for i, label := range labels {
		if i == selected {
			fmt.Fprintf(a.out, " %s\n", selectedStyle.Render("> "+label))
		} else {
			fmt.Fprintf(a.out, "   %s\n", label)
		}
	}
}

func (a *App) help(text string) {
	fmt.Fprintln(a.out, helpStyle.Render(text))
}

// optionRenderer draws a single-page option menu.
func (a *App) optionRenderer(title string, extra ...string) func(*menu.Pager[string]) {
	return func(p *menu.Pager[string]) {
		a.clear()
		a.header(title, extra...)
		a.rows(p.Page(), p.Index())
		a.help("↑/↓ move | ENTER select | ESC back")
	}
}

// pagedRenderer draws a paginated list screen with a page indicator.
func pagedRenderer[T any](a *App, title string, label func(T) string) func(*menu.Pager[T]) {
	return func(p *menu.Pager[T]) {
		a.clear()
		a.header(title, fmt.Sprintf("Page %d of %d", p.PageIndex()+1, p.PageCount()))
		page := p.Page()
		labels := make([]string, len(page))
		for i, item := range page {
			labels[i] = label(item)
		}
		a.rows(labels, p.Index())
		a.help("↑/↓ move | ENTER select | ESC back")
	}
}

// filterRenderer draws the live-search screen: query line plus the
// displayed matches.
func filterRenderer[T any](a *App, title, prompt string, label func(T) string) func(*menu.Filter[T]) {
	return func(f *menu.Filter[T]) {
		a.clear()
		a.header(title)
		fmt.Fprintf(a.out, "%s%s\n", prompt, f.Query())
		matches := f.Matches()
		labels := make([]string, len(matches))
		for i, item := range matches {
			labels[i] = label(item)
		}
		a.rows(labels, f.Index())
		a.help("type to filter | ↑/↓ move | ENTER select | ESC back")
	}
}
