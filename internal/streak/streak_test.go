package streak

import (
	"errors"
	"testing"

	"github.com/julianstephens/habitual/internal/models"
)

func TestLongest_Empty(t *testing.T) {
	got, err := Longest(nil)
	if err != nil {
		t.Fatalf("Longest failed: %v", err)
	}
	if got != 0 {
		t.Errorf("expected 0 for empty input, got %d", got)
	}
}

func TestLongest_SingleDate(t *testing.T) {
	got, err := Longest([]string{"2025-01-01"})
	if err != nil {
		t.Fatalf("Longest failed: %v", err)
	}
	if got != 1 {
		t.Errorf("expected 1 for a single date, got %d", got)
	}
}

func TestLongest_RunWithGap(t *testing.T) {
	got, err := Longest([]string{"2025-01-01", "2025-01-02", "2025-01-03", "2025-02-01"})
	if err != nil {
		t.Fatalf("Longest failed: %v", err)
	}
	if got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

func TestLongest_FullyConsecutive(t *testing.T) {
	got, err := Longest([]string{"2025-03-01", "2025-03-02", "2025-03-03", "2025-03-04", "2025-03-05"})
	if err != nil {
		t.Fatalf("Longest failed: %v", err)
	}
	if got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
}

func TestLongest_OrderAndDuplicatesDoNotMatter(t *testing.T) {
	days := []string{"2025-01-03", "2025-02-01", "2025-01-01", "2025-01-02"}

	want, err := Longest(days)
	if err != nil {
		t.Fatalf("Longest failed: %v", err)
	}

	shuffled := []string{"2025-02-01", "2025-01-02", "2025-01-03", "2025-01-01"}
	got, err := Longest(shuffled)
	if err != nil {
		t.Fatalf("Longest failed on shuffled input: %v", err)
	}
	if got != want {
		t.Errorf("shuffled input changed result: got %d, want %d", got, want)
	}

	doubled := append(append([]string{}, days...), days...)
	got, err = Longest(doubled)
	if err != nil {
		t.Fatalf("Longest failed on doubled input: %v", err)
	}
	if got != want {
		t.Errorf("duplicated input changed result: got %d, want %d", got, want)
	}
}

func TestLongest_CrossesMonthBoundary(t *testing.T) {
	got, err := Longest([]string{"2025-01-31", "2025-02-01", "2025-02-02"})
	if err != nil {
		t.Fatalf("Longest failed: %v", err)
	}
	if got != 3 {
		t.Errorf("expected 3 across month boundary, got %d", got)
	}
}

func TestLongest_InvalidDate(t *testing.T) {
	cases := []string{"not-a-date", "2025-13-01", "2025-02-30", "01-01-2025", ""}
	for _, c := range cases {
		_, err := Longest([]string{c})
		if !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for %q, got %v", c, err)
		}
	}
}
