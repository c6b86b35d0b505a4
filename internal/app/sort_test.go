package app

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func sortTestTimeline() *Timeline {
	tl := NewTimeline()
	tl.Put(Activity{ID: "a1", Name: "PEC 2", Start: date("10/01/2024"), Due: date("20/02/2024"), Days: 30})
	tl.Put(Activity{ID: "a2", Name: "PEC 1", Start: date("01/01/2024"), Due: date("15/01/2024"), Days: -4})
	tl.Put(Activity{ID: "a3", Name: "Práctica", Start: date("05/01/2024"), Due: date("10/03/2024"), Days: 49})
	return tl
}

func TestSortedEntriesKeepsAllRecords(t *testing.T) {
	tl := sortTestTimeline()
	for _, field := range []string{"start_date", "due_date", "days", "name", "unknown"} {
		entries := SortedEntries(tl, field)
		if len(entries) != tl.Len() {
			t.Errorf("sort by %s: got %d entries, want %d", field, len(entries), tl.Len())
		}
	}
}

func TestSortedEntriesByDueDate(t *testing.T) {
	entries := SortedEntries(sortTestTimeline(), "due_date")

	for i := 1; i < len(entries); i++ {
		if entries[i].Activity.Due.Before(entries[i-1].Activity.Due) {
			t.Errorf("due dates not non-decreasing at index %d", i)
		}
	}
	if entries[0].ID != "a2" || entries[1].ID != "a1" || entries[2].ID != "a3" {
		t.Errorf("unexpected order: %s %s %s", entries[0].ID, entries[1].ID, entries[2].ID)
	}
}

func TestSortedEntriesByStartDateIsChronological(t *testing.T) {
	// lexical comparison of dd/mm/yyyy would put 01/01/2024 before
	// 02/12/2023, so pin an order that only holds chronologically
	tl := NewTimeline()
	tl.Put(Activity{ID: "jan", Start: date("01/01/2024")})
	tl.Put(Activity{ID: "dec", Start: date("02/12/2023")})
	entries := SortedEntries(tl, "start_date")
	if entries[0].ID != "dec" {
		t.Errorf("expected chronological order, got %s first", entries[0].ID)
	}
}

func TestSortedEntriesByDays(t *testing.T) {
	entries := SortedEntries(sortTestTimeline(), "days")
	if entries[0].Activity.Days != -4 {
		t.Errorf("expected overdue activity first, got days=%d", entries[0].Activity.Days)
	}
}

func TestSortedEntriesStableOnTies(t *testing.T) {
	tl := NewTimeline()
	tl.Put(Activity{ID: "first", Due: date("15/01/2024")})
	tl.Put(Activity{ID: "second", Due: date("15/01/2024")})
	tl.Put(Activity{ID: "third", Due: date("15/01/2024")})

	entries := SortedEntries(tl, "due_date")
	if entries[0].ID != "first" || entries[1].ID != "second" || entries[2].ID != "third" {
		t.Errorf("ties must keep insertion order, got %s %s %s",
			entries[0].ID, entries[1].ID, entries[2].ID)
	}
}

func TestSortedEntriesLexicalFields(t *testing.T) {
	entries := SortedEntries(sortTestTimeline(), "name")
	if entries[0].Activity.Name != "PEC 1" {
		t.Errorf("expected PEC 1 first, got %q", entries[0].Activity.Name)
	}
}
