package app

import (
	"errors"
	"testing"
	"time"
)

// fakeRetriever serves canned sections and markers per classroom id and
// can be told to fail a classroom, standing in for the browser session.
type fakeRetriever struct {
	sections map[string][]Section
	markers  map[string][]MessageMarker
	fail     map[string]error
}

func (f *fakeRetriever) ClassroomURL(c Classroom) string {
	return "https://campus.example/classroom/" + c.ID
}

func (f *fakeRetriever) Sections(c Classroom) ([]Section, error) {
	if err := f.fail[c.ID]; err != nil {
		return nil, err
	}
	return f.sections[c.ID], nil
}

func (f *fakeRetriever) MessageMarkers(c Classroom) ([]MessageMarker, error) {
	if err := f.fail[c.ID]; err != nil {
		return nil, err
	}
	return f.markers[c.ID], nil
}

func testToday() time.Time {
	return time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
}

func rawActivity(id, start, due string) RawActivity {
	return RawActivity{
		Title: "Inicio: " + start + " Entrega: " + due,
		Label: "Activity " + id + ". Inicio: " + start,
		Href:  "https://campus.example/activity/" + id,
		ID:    id,
	}
}

func TestTimelinePutLastWriteWinsKeepsOrder(t *testing.T) {
	tl := NewTimeline()
	tl.Put(Activity{ID: "a1", Name: "first"})
	tl.Put(Activity{ID: "a2", Name: "second"})
	tl.Put(Activity{ID: "a1", Name: "replaced"})

	if tl.Len() != 2 {
		t.Fatalf("expected 2 activities, got %d", tl.Len())
	}

	entries := tl.Entries()
	if entries[0].ID != "a1" || entries[1].ID != "a2" {
		t.Errorf("expected order [a1 a2], got [%s %s]", entries[0].ID, entries[1].ID)
	}
	if entries[0].Activity.Name != "replaced" {
		t.Errorf("expected last write to win, got name %q", entries[0].Activity.Name)
	}
}

func TestAddSectionsNormalizes(t *testing.T) {
	tl := NewTimeline()
	classroom := Classroom{ID: "c1", Name: "Algebra", SubjectID: "s1", URL: "https://campus.example/c1"}
	sections := []Section{
		{Label: "PEC", Activities: []RawActivity{rawActivity("a1", "01/01/2024", "15/01/2024")}},
	}

	skips := tl.AddSections(classroom, sections, testToday())
	if len(skips) != 0 {
		t.Fatalf("unexpected skips: %v", skips)
	}

	a, ok := tl.Get("a1")
	if !ok {
		t.Fatal("activity a1 not found")
	}
	if a.Type != "PEC" {
		t.Errorf("type = %q, want PEC", a.Type)
	}
	if a.ClassroomName != "Algebra" || a.ClassroomID != "c1" || a.SubjectID != "s1" {
		t.Errorf("classroom context not denormalized: %+v", a)
	}
	if a.ClassroomURL != "https://campus.example/c1" {
		t.Errorf("classroom url = %q", a.ClassroomURL)
	}
	// Jan 5th to Jan 15th
	if a.Days != 10 {
		t.Errorf("days = %d, want 10", a.Days)
	}
}

func TestAddSectionsSkipsEmptyLabel(t *testing.T) {
	tl := NewTimeline()
	sections := []Section{
		{Label: "  ", Activities: []RawActivity{rawActivity("a1", "01/01/2024", "15/01/2024")}},
		{Label: "PEC", Activities: []RawActivity{rawActivity("a2", "01/01/2024", "15/01/2024")}},
	}

	skips := tl.AddSections(Classroom{ID: "c1"}, sections, testToday())

	if tl.Len() != 1 {
		t.Fatalf("expected 1 activity, got %d", tl.Len())
	}
	if len(skips) != 1 || !errors.Is(skips[0].Err, ErrUnknownActivityType) {
		t.Errorf("expected one UnknownActivityType skip, got %v", skips)
	}
}

func TestAddSectionsSkipsMalformedActivity(t *testing.T) {
	tl := NewTimeline()
	sections := []Section{
		{Label: "PEC", Activities: []RawActivity{
			{Title: "Entrega: 15/01/2024", ID: "bad"}, // only one date
			rawActivity("good", "01/01/2024", "15/01/2024"),
		}},
	}

	skips := tl.AddSections(Classroom{ID: "c1"}, sections, testToday())

	if tl.Len() != 1 {
		t.Fatalf("expected 1 activity, got %d", tl.Len())
	}
	if _, ok := tl.Get("bad"); ok {
		t.Error("malformed activity must not be constructed")
	}
	if len(skips) != 1 || !errors.Is(skips[0].Err, ErrMalformedActivity) {
		t.Errorf("expected one MalformedActivity skip, got %v", skips)
	}
	if skips[0].ActivityID != "bad" {
		t.Errorf("skip activity id = %q, want bad", skips[0].ActivityID)
	}
}

func TestBuildTimelineIsolatesClassroomFailures(t *testing.T) {
	retriever := &fakeRetriever{
		sections: map[string][]Section{
			"c1": {{Label: "PEC", Activities: []RawActivity{rawActivity("a1", "01/01/2024", "15/01/2024")}}},
			"c3": {{Label: "Práctica", Activities: []RawActivity{rawActivity("a3", "01/02/2024", "10/02/2024")}}},
		},
		fail: map[string]error{"c2": errors.New("page did not load")},
	}
	classrooms := []Classroom{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}}

	tl, skips := BuildTimeline(retriever, classrooms, testToday())

	if tl.Len() != 2 {
		t.Fatalf("expected 2 activities, got %d", tl.Len())
	}
	if _, ok := tl.Get("a1"); !ok {
		t.Error("missing activity from classroom before the failure")
	}
	if _, ok := tl.Get("a3"); !ok {
		t.Error("missing activity from classroom after the failure")
	}

	var retrieval *RetrievalError
	if len(skips) != 1 || !errors.As(skips[0].Err, &retrieval) {
		t.Fatalf("expected one RetrievalError skip, got %v", skips)
	}
	if retrieval.ClassroomID != "c2" {
		t.Errorf("retrieval error classroom = %s, want c2", retrieval.ClassroomID)
	}
}

func TestBuildTimelineFillsClassroomURL(t *testing.T) {
	retriever := &fakeRetriever{
		sections: map[string][]Section{
			"c1": {{Label: "PEC", Activities: []RawActivity{rawActivity("a1", "01/01/2024", "15/01/2024")}}},
		},
	}

	tl, _ := BuildTimeline(retriever, []Classroom{{ID: "c1"}}, testToday())

	a, _ := tl.Get("a1")
	if a.ClassroomURL != "https://campus.example/classroom/c1" {
		t.Errorf("classroom url = %q", a.ClassroomURL)
	}
}
