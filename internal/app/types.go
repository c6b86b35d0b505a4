package app

import "time"

// Classroom is one configured course enrollment: the id the campus uses,
// the display name/color from the config file and the subject id needed
// to build the classroom URL.
type Classroom struct {
	ID        string
	Name      string
	Color     string
	SubjectID string
	URL       string
}

// RawActivity carries the attributes of one timeline anchor element as
// delivered by the page retriever, before any parsing.
type RawActivity struct {
	Title string // title attribute (holds both dates)
	Class string // class attribute (holds the completion marker)
	Href  string // activity link
	Label string // aria-label (holds the display name)
	ID    string // data-id attribute
}

// Section is one h2-labelled group of raw activities inside a classroom
// timeline.
type Section struct {
	Label      string
	Activities []RawActivity
}

// Activity is a fully parsed timeline entry.
type Activity struct {
	ID            string
	Name          string
	URL           string
	Start         time.Time
	Due           time.Time
	ClassroomID   string
	ClassroomName string
	ClassroomURL  string
	SubjectID     string
	Type          string
	Completed     bool
	Days          int // due date minus the reference date, can be negative
}

// Entry pairs an activity with its id, the unit the sorter and the
// exporters work on.
type Entry struct {
	ID       string
	Activity Activity
}

// MessageMarker carries the attributes of one message-counter anchor as
// delivered by the page retriever.
type MessageMarker struct {
	Name      string
	Link      string
	NewText   string
	TotalText string
}

// MessageCount is the parsed per-contact message tally for a classroom.
type MessageCount struct {
	Name  string
	Link  string
	New   int
	Total int
}

// Retriever is the page-retrieval collaborator. The production
// implementation drives a browser (internal/portal); tests provide fakes.
type Retriever interface {
	ClassroomURL(c Classroom) string
	Sections(c Classroom) ([]Section, error)
	MessageMarkers(c Classroom) ([]MessageMarker, error)
}

// Notifier is the desktop notification sink. Failures are logged by
// callers and never abort the run.
type Notifier interface {
	Notify(title, body string) error
}
