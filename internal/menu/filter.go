package menu

import (
	"strings"
	"unicode/utf8"

	"github.com/julianstephens/habitual/internal/input"
)

// Filter is the incremental substring selector: type to narrow the
// candidate list, arrows to move within the displayed matches, Enter to
// pick. Candidates keep their original order.
type Filter[T any] struct {
	items []T
	label func(T) string
	limit int
	query string
	index int
}

func NewFilter[T any](items []T, label func(T) string, limit int) *Filter[T] {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return &Filter[T]{items: items, label: label, limit: limit}
}

func (f *Filter[T]) Query() string { return f.query }

func (f *Filter[T]) Index() int { return f.index }

// Matches returns the first limit candidates whose label contains the
// query, case-insensitively. The cursor is clamped here so a subset that
// shrank since the last event can never leave it out of range.
func (f *Filter[T]) Matches() []T {
	q := strings.ToLower(f.query)
	matches := make([]T, 0, f.limit)
	for _, item := range f.items {
		if strings.Contains(strings.ToLower(f.label(item)), q) {
			matches = append(matches, item)
			if len(matches) == f.limit {
				break
			}
		}
	}
	if f.index >= len(matches) {
		f.index = 0
	}
	return matches
}

// Handle applies one key event. Editing the query resets the cursor;
// Enter with no visible matches is a no-op.
func (f *Filter[T]) Handle(ev input.Event) Outcome {
	switch ev.Kind {
	case input.Character:
		f.query += string(ev.Rune)
		f.index = 0
	case input.Backspace:
		if f.query != "" {
			_, size := utf8.DecodeLastRuneInString(f.query)
			f.query = f.query[:len(f.query)-size]
		}
		f.index = 0
	case input.Down:
		if n := len(f.Matches()); n > 0 {
			f.index = (f.index + 1) % n
		}
	case input.Up:
		if n := len(f.Matches()); n > 0 {
			f.index = (f.index - 1 + n) % n
		}
	case input.Enter:
		if len(f.Matches()) > 0 {
			return Selected
		}
	case input.Escape:
		return Cancelled
	}
	return Continue
}

// Run drives the filter against a decoder until the user picks a match or
// cancels.
func (f *Filter[T]) Run(dec input.Decoder, render func(*Filter[T])) (selected T, ok bool, err error) {
	var zero T
	for {
		render(f)
		ev, err := dec.ReadEvent()
		if err != nil {
			return zero, false, err
		}
		switch f.Handle(ev) {
		case Selected:
			return f.Matches()[f.index], true, nil
		case Cancelled:
			return zero, false, nil
		}
	}
}
