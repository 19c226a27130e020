package menu

import (
	"testing"

	"github.com/julianstephens/habitual/internal/input"
)

func char(r rune) input.Event { return input.Event{Kind: input.Character, Rune: r} }

func typeQuery(f *Filter[string], q string) {
	for _, r := range q {
		f.Handle(char(r))
	}
}

func TestFilter_CaseInsensitiveSubstringKeepsOrder(t *testing.T) {
	f := NewFilter([]string{"Running", "Reading", "Run at Night"}, func(s string) string { return s }, 5)
	typeQuery(f, "run")

	got := f.Matches()
	want := []string{"Running", "Run at Night"}
	if len(got) != len(want) {
		t.Fatalf("expected %d matches, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFilter_EmptyQueryMatchesEverything(t *testing.T) {
	items := []string{"a", "b", "c"}
	f := NewFilter(items, func(s string) string { return s }, 5)
	if got := f.Matches(); len(got) != 3 {
		t.Errorf("expected all items for empty query, got %v", got)
	}
}

func TestFilter_LimitCapsDisplayedMatches(t *testing.T) {
	items := []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7"}
	f := NewFilter(items, func(s string) string { return s }, 5)
	typeQuery(f, "m")

	got := f.Matches()
	if len(got) != 5 {
		t.Fatalf("expected 5 displayed matches, got %d", len(got))
	}
	if got[0] != "m1" || got[4] != "m5" {
		t.Errorf("expected first five candidates, got %v", got)
	}

	// Arrow movement wraps within the displayed subset only.
	f.Handle(input.Event{Kind: input.Up})
	if f.Index() != 4 {
		t.Errorf("expected Up to wrap to index 4, got %d", f.Index())
	}
	f.Handle(input.Event{Kind: input.Down})
	if f.Index() != 0 {
		t.Errorf("expected Down to wrap back to index 0, got %d", f.Index())
	}
}

func TestFilter_TypingResetsCursor(t *testing.T) {
	f := NewFilter([]string{"aa", "ab", "ac"}, func(s string) string { return s }, 5)
	f.Handle(input.Event{Kind: input.Down})
	if f.Index() != 1 {
		t.Fatalf("expected index 1 after Down, got %d", f.Index())
	}

	f.Handle(char('a'))
	if f.Index() != 0 {
		t.Errorf("expected typing to reset index, got %d", f.Index())
	}
}

func TestFilter_BackspaceEditsQuery(t *testing.T) {
	f := NewFilter([]string{"Running"}, func(s string) string { return s }, 5)
	typeQuery(f, "ru")

	f.Handle(input.Event{Kind: input.Backspace})
	if f.Query() != "r" {
		t.Errorf("expected query \"r\", got %q", f.Query())
	}

	f.Handle(input.Event{Kind: input.Backspace})
	f.Handle(input.Event{Kind: input.Backspace}) // no-op on empty
	if f.Query() != "" {
		t.Errorf("expected empty query, got %q", f.Query())
	}
}

func TestFilter_StaleCursorClampedWhenSubsetShrinks(t *testing.T) {
	f := NewFilter([]string{"aa", "ab"}, func(s string) string { return s }, 5)
	f.Handle(input.Event{Kind: input.Down})
	typeQuery(f, "aa") // one match left, cursor was on index 1

	got := f.Matches()
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %v", got)
	}
	if f.Index() != 0 {
		t.Errorf("expected clamped index 0, got %d", f.Index())
	}
}

func TestFilter_EnterWithNoMatchesIsNoOp(t *testing.T) {
	f := NewFilter([]string{"Running"}, func(s string) string { return s }, 5)
	typeQuery(f, "zzz")

	if out := f.Handle(input.Event{Kind: input.Enter}); out != Continue {
		t.Errorf("expected Continue on Enter with no matches, got %v", out)
	}
}

func TestFilter_RunSelectsFilteredItem(t *testing.T) {
	events := []input.Event{char('r'), char('u'), char('n'), {Kind: input.Down}, {Kind: input.Enter}}
	dec := &scriptDecoder{events: events}

	f := NewFilter([]string{"Running", "Reading", "Run at Night"}, func(s string) string { return s }, 5)
	got, ok, err := f.Run(dec, func(*Filter[string]) {})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !ok || got != "Run at Night" {
		t.Errorf("expected Run at Night, got %q (ok=%v)", got, ok)
	}
}

func TestFilter_RunCancel(t *testing.T) {
	dec := &scriptDecoder{events: []input.Event{char('x'), {Kind: input.Escape}}}
	f := NewFilter([]string{"Running"}, func(s string) string { return s }, 5)

	_, ok, err := f.Run(dec, func(*Filter[string]) {})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if ok {
		t.Error("expected cancel, got a selection")
	}
}
