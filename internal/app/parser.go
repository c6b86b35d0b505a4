package app

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// datePattern matches the dd/mm/yyyy dates embedded in the title
// attribute of a timeline anchor.
var datePattern = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)

const (
	// nameMarker terminates the display name inside the aria-label text.
	nameMarker = ". Inicio:"
	// completedMarker appears in the class attribute of finished activities.
	completedMarker = "completed"
)

// madrid is the fixed reference timezone for all date math.
var madrid = mustLoadLocation(Timezone)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("cannot load timezone %s: %v", name, err))
	}
	return loc
}

// Fields holds the typed values extracted from one raw activity blob.
type Fields struct {
	Start     time.Time
	Due       time.Time
	Name      string
	Completed bool
}

// ParseActivity extracts the typed fields out of one raw activity.
// The title attribute must contain exactly two dd/mm/yyyy dates; the
// first is the start and the second the due date, in extraction order
// regardless of chronology. Anything else is a malformed activity.
func ParseActivity(raw RawActivity) (Fields, error) {
	dates := datePattern.FindAllString(raw.Title, -1)
	if len(dates) != 2 {
		return Fields{}, fmt.Errorf("%w: got %d dates in %q", ErrMalformedActivity, len(dates), raw.Title)
	}

	start, err := time.ParseInLocation(DateLayout, dates[0], time.UTC)
	if err != nil {
		return Fields{}, fmt.Errorf("%w: %v", ErrMalformedActivity, err)
	}
	due, err := time.ParseInLocation(DateLayout, dates[1], time.UTC)
	if err != nil {
		return Fields{}, fmt.Errorf("%w: %v", ErrMalformedActivity, err)
	}

	name := raw.Label
	if idx := strings.Index(name, nameMarker); idx >= 0 {
		name = name[:idx]
	}

	return Fields{
		Start:     start,
		Due:       due,
		Name:      name,
		Completed: strings.Contains(raw.Class, completedMarker),
	}, nil
}

// Today resolves the reference instant to a calendar date in the fixed
// Europe/Madrid timezone. The result is midnight UTC of that date, so it
// subtracts cleanly against parsed activity dates.
func Today(ref time.Time) time.Time {
	y, m, d := ref.In(madrid).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns to minus from in whole days. Both arguments are
// expected to be date-normalized (midnight UTC).
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
