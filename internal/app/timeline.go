package app

import (
	"log"
	"strings"
	"time"
)

// Timeline is the canonical activity set for one run: a map keyed by
// activity id that remembers insertion order. Re-adding an existing id
// overwrites the activity but keeps its original position, so runs over
// identical input produce identical orderings.
type Timeline struct {
	byID  map[string]Activity
	order []string
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{byID: make(map[string]Activity)}
}

// Put inserts or replaces an activity (last write wins).
func (t *Timeline) Put(a Activity) {
	if _, ok := t.byID[a.ID]; !ok {
		t.order = append(t.order, a.ID)
	}
	t.byID[a.ID] = a
}

// Get returns the activity for an id.
func (t *Timeline) Get(id string) (Activity, bool) {
	a, ok := t.byID[id]
	return a, ok
}

// Len returns the number of activities.
func (t *Timeline) Len() int {
	return len(t.order)
}

// Entries returns all activities in insertion order.
func (t *Timeline) Entries() []Entry {
	entries := make([]Entry, 0, len(t.order))
	for _, id := range t.order {
		entries = append(entries, Entry{ID: id, Activity: t.byID[id]})
	}
	return entries
}

// AddSections normalizes one classroom's raw sections into the timeline.
// today must already be date-normalized (see Today). Failures never stop
// the loop: sections with an empty label and activities without exactly
// two dates are dropped and reported in the returned skip list.
func (t *Timeline) AddSections(c Classroom, sections []Section, today time.Time) []Skip {
	var skips []Skip
	for _, sec := range sections {
		if strings.TrimSpace(sec.Label) == "" {
			skips = append(skips, Skip{ClassroomID: c.ID, Err: ErrUnknownActivityType})
			continue
		}
		for _, raw := range sec.Activities {
			fields, err := ParseActivity(raw)
			if err != nil {
				skips = append(skips, Skip{ClassroomID: c.ID, ActivityID: raw.ID, Err: err})
				continue
			}
			t.Put(Activity{
				ID:            raw.ID,
				Name:          fields.Name,
				URL:           raw.Href,
				Start:         fields.Start,
				Due:           fields.Due,
				ClassroomID:   c.ID,
				ClassroomName: c.Name,
				ClassroomURL:  c.URL,
				SubjectID:     c.SubjectID,
				Type:          sec.Label,
				Completed:     fields.Completed,
				Days:          DaysBetween(today, fields.Due),
			})
		}
	}
	return skips
}

// BuildTimeline runs the full extraction: one classroom at a time, the
// retriever delivers the raw sections and AddSections normalizes them.
// A classroom that fails to load is skipped as a whole; partial results
// are expected and fine.
func BuildTimeline(r Retriever, classrooms []Classroom, today time.Time) (*Timeline, []Skip) {
	timeline := NewTimeline()
	var skips []Skip
	for _, c := range classrooms {
		c.URL = r.ClassroomURL(c)
		sections, err := r.Sections(c)
		if err != nil {
			retrieval := &RetrievalError{ClassroomID: c.ID, Err: err}
			log.Printf("Error timeline: %v", retrieval)
			skips = append(skips, Skip{ClassroomID: c.ID, Err: retrieval})
			continue
		}
		for _, skip := range timeline.AddSections(c, sections, today) {
			log.Printf("Error timeline: classroom %s: %v", skip.ClassroomID, skip.Err)
			skips = append(skips, skip)
		}
	}
	return timeline, skips
}
