package streak

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

const dayFormat = "2006-01-02"

// Longest returns the length of the longest run of consecutive calendar
// days in dates. Input order and duplicate dates do not affect the result;
// an empty input yields 0 and a single date yields 1.
func Longest(dates []string) (int, error) {
	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day, err := time.Parse(dayFormat, d)
		if err != nil {
			return 0, fmt.Errorf("date %q is not a valid YYYY-MM-DD date: %w", d, models.ErrInvalidInput)
		}
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}

	if len(days) == 0 {
		return 0, nil
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest := 1
	current := 1
	for i := 1; i < len(days); i++ {
		// Parsed days are UTC midnights, so exactly one calendar day
		// apart means exactly 24h apart.
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}

	return longest, nil
}
