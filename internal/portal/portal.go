// Package portal drives a headless browser against the UOC campus. It
// is the production implementation of app.Retriever: login, classroom
// page loads and raw DOM extraction live here, nothing else does any
// parsing.
package portal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"

	"github.com/uoc-tools/timeline/internal/app"
)

const (
	LoginURL         = "https://cv.uoc.edu/auth?campus-nplincampus"
	ClassroomBaseURL = "https://campus.uoc.edu/webapps/aulaca/classroom/Classroom.action?"

	sessionCookie = "campusSessionId"

	// Classroom pages render their timeline with javascript after the
	// container appears, hence the extra settle delay.
	pageTimeout = 10 * time.Second
	settleDelay = 3 * time.Second
)

// Session is one logged-in browser session. Classrooms are processed
// sequentially because the single browser tab has to navigate to each
// classroom page in turn.
type Session struct {
	ctx       context.Context
	cancels   []context.CancelFunc
	sessionID string
}

// NewSession starts a headless browser. chromePath overrides the
// browser executable; empty means whatever chromedp finds on the host.
func NewSession(chromePath string) (*Session, error) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx)

	s := &Session{ctx: ctx, cancels: []context.CancelFunc{cancelCtx, cancelAlloc}}

	// Start the browser up front so a missing executable fails here and
	// not halfway through the run.
	if err := chromedp.Run(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("cannot start browser: %w", err)
	}
	return s, nil
}

// Close shuts the browser down.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
}

// Login submits the campus login form and captures the session cookie.
// A missing cookie after submit means the credentials were rejected.
func (s *Session) Login(username, password string) error {
	ctx, cancel := context.WithTimeout(s.ctx, 2*pageTimeout)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.Navigate(LoginURL),
		chromedp.WaitVisible(`input[name="j_username"]`, chromedp.ByQuery),
		chromedp.SendKeys(`input[name="j_username"]`, username, chromedp.ByQuery),
		chromedp.SendKeys(`input[name="j_password"]`, password+"\r", chromedp.ByQuery),
		chromedp.Sleep(settleDelay),
	)
	if err != nil {
		return &app.AuthError{Err: err}
	}

	id, err := s.cookie(sessionCookie)
	if err != nil {
		return &app.AuthError{Err: err}
	}
	if id == "" {
		return &app.AuthError{Err: errors.New("campusSessionId cookie not set after login")}
	}
	s.sessionID = id
	return nil
}

func (s *Session) cookie(name string) (string, error) {
	var value string
	err := chromedp.Run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		cookies, err := storage.GetCookies().Do(ctx)
		if err != nil {
			return err
		}
		for _, c := range cookies {
			if c.Name == name {
				value = c.Value
			}
		}
		return nil
	}))
	return value, err
}

// ClassroomURL builds the classroom data URL for the current session.
func (s *Session) ClassroomURL(c app.Classroom) string {
	return fmt.Sprintf("%ss=%s&subjectId=%s&classroomId=%s&eventId=&javascriptDisabled=true",
		ClassroomBaseURL, s.sessionID, c.SubjectID, c.ID)
}

// load navigates to a classroom page and waits for its dynamic content.
func (s *Session) load(url string) error {
	ctx, cancel := context.WithTimeout(s.ctx, pageTimeout+settleDelay)
	defer cancel()

	return chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`#container`, chromedp.ByQuery),
		chromedp.Sleep(settleDelay),
	)
}

// sectionsJS pulls the timeline groups out of the second tl-placeholder
// block: one entry per tl-line with its h2 label and the raw attributes
// of every anchor inside it.
const sectionsJS = `(() => {
	const placeholders = document.querySelectorAll('.tl-placeholder');
	if (placeholders.length !== 2) {
		return [];
	}
	const sections = [];
	placeholders[1].querySelectorAll('.tl-line').forEach((line) => {
		const h2 = line.querySelector('h2');
		const activities = [];
		line.querySelectorAll('a').forEach((a) => {
			activities.push({
				title: a.getAttribute('title') || '',
				class: a.getAttribute('class') || '',
				href: a.href || '',
				label: a.getAttribute('aria-label') || '',
				id: a.getAttribute('data-id') || '',
			});
		});
		sections.push({label: h2 ? h2.textContent.trim() : '', activities: activities});
	});
	return sections;
})()`

type rawSection struct {
	Label      string        `json:"label"`
	Activities []rawActivity `json:"activities"`
}

type rawActivity struct {
	Title string `json:"title"`
	Class string `json:"class"`
	Href  string `json:"href"`
	Label string `json:"label"`
	ID    string `json:"id"`
}

// Sections loads a classroom page and returns its raw timeline groups.
func (s *Session) Sections(c app.Classroom) ([]app.Section, error) {
	if err := s.load(s.ClassroomURL(c)); err != nil {
		return nil, err
	}

	var raw []rawSection
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(sectionsJS, &raw)); err != nil {
		return nil, err
	}

	sections := make([]app.Section, 0, len(raw))
	for _, sec := range raw {
		section := app.Section{Label: sec.Label}
		for _, a := range sec.Activities {
			section.Activities = append(section.Activities, app.RawActivity{
				Title: a.Title,
				Class: a.Class,
				Href:  a.Href,
				Label: a.Label,
				ID:    a.ID,
			})
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// markersJS pulls the per-contact message counters out of the messaging
// area anchors.
const markersJS = `(() => {
	const markers = [];
	document.querySelectorAll('.marcadors.LaunchesOWin').forEach((a) => {
		const pick = (sel) => {
			const el = a.querySelector(sel);
			return el ? el.textContent.trim() : '';
		};
		markers.push({
			name: a.getAttribute('data-bocamoll-object-description') || '',
			link: a.href || '',
			new: pick('.new'),
			all: pick('.all'),
		});
	});
	return markers;
})()`

type rawMarker struct {
	Name string `json:"name"`
	Link string `json:"link"`
	New  string `json:"new"`
	All  string `json:"all"`
}

// MessageMarkers loads a classroom page and returns its raw message
// counters.
func (s *Session) MessageMarkers(c app.Classroom) ([]app.MessageMarker, error) {
	if err := s.load(s.ClassroomURL(c)); err != nil {
		return nil, err
	}

	var raw []rawMarker
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(markersJS, &raw)); err != nil {
		return nil, err
	}

	markers := make([]app.MessageMarker, 0, len(raw))
	for _, m := range raw {
		markers = append(markers, app.MessageMarker{
			Name:      m.Name,
			Link:      m.Link,
			NewText:   m.New,
			TotalText: m.All,
		})
	}
	return markers, nil
}
