package menu

import "github.com/julianstephens/habitual/internal/input"

// Outcome reports what one key event did to a selector.
type Outcome int

const (
	Continue Outcome = iota
	Selected
	Cancelled
)

// DefaultPageSize is the number of rows offered per page.
const DefaultPageSize = 5

// Pager is the paginated wrap-around selection state machine shared by the
// list-browsing screens. The item list is fixed for the lifetime of one
// invocation.
type Pager[T any] struct {
	items    []T
	pageSize int
	page     int
	index    int
}

func NewPager[T any](items []T, pageSize int) *Pager[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager[T]{items: items, pageSize: pageSize}
}

func (p *Pager[T]) PageCount() int {
	return (len(p.items) + p.pageSize - 1) / p.pageSize
}

// Page returns the items on the current page. The last page may be shorter
// than the page size.
func (p *Pager[T]) Page() []T {
	start := p.page * p.pageSize
	end := start + p.pageSize
	if end > len(p.items) {
		end = len(p.items)
	}
	return p.items[start:end]
}

func (p *Pager[T]) PageIndex() int { return p.page }

func (p *Pager[T]) Index() int { return p.index }

// Selected returns the item under the cursor.
func (p *Pager[T]) Selected() T {
	return p.Page()[p.index]
}

// Handle applies one key event to the state machine. Unknown events leave
// the state unchanged.
func (p *Pager[T]) Handle(ev input.Event) Outcome {
	switch ev.Kind {
	case input.Down:
		p.index++
		if p.index >= len(p.Page()) {
			p.page = (p.page + 1) % p.PageCount()
			p.index = 0
		}
	case input.Up:
		p.index--
		if p.index < 0 {
			p.page = (p.page - 1 + p.PageCount()) % p.PageCount()
			p.index = len(p.Page()) - 1
		}
	case input.Enter:
		return Selected
	case input.Escape:
		return Cancelled
	}
	return Continue
}

// Run drives the pager against a decoder until the user picks an item or
// cancels. ok is false on cancel and when there was nothing to select; an
// empty item list returns immediately without reading.
func (p *Pager[T]) Run(dec input.Decoder, render func(*Pager[T])) (selected T, ok bool, err error) {
	var zero T
	if len(p.items) == 0 {
		return zero, false, nil
	}
	for {
		render(p)
		ev, err := dec.ReadEvent()
		if err != nil {
			return zero, false, err
		}
		switch p.Handle(ev) {
		case Selected:
			return p.Selected(), true, nil
		case Cancelled:
			return zero, false, nil
		}
	}
}
