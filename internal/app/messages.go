package app

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
)

// CountMessages parses raw message markers into per-contact tallies.
// Counter text that is missing or not a number counts as zero.
func CountMessages(markers []MessageMarker) []MessageCount {
	counts := make([]MessageCount, 0, len(markers))
	for _, m := range markers {
		counts = append(counts, MessageCount{
			Name:  m.Name,
			Link:  m.Link,
			New:   parseCount(m.NewText),
			Total: parseCount(m.TotalText),
		})
	}
	return counts
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// ReportMessages prints the per-classroom summary and raises one
// notification per contact with new messages. A classroom without any
// new message still gets its "No new messages!" line.
func ReportMessages(w io.Writer, classroomName string, counts []MessageCount, n Notifier) {
	title := fmt.Sprintf("Messages in %s:", classroomName)
	fmt.Fprintln(w, title)

	anyNew := false
	for _, c := range counts {
		if c.New <= 0 {
			continue
		}
		anyNew = true
		body := fmt.Sprintf("%s: %d of %d", c.Name, c.New, c.Total)
		fmt.Fprintln(w, body)
		if err := n.Notify(title, body); err != nil {
			log.Printf("Error sending notification: %v", err)
		}
	}
	if !anyNew {
		fmt.Fprintln(w, "No new messages!")
	}
}

// CollectMessages runs the message pipeline: one classroom at a time,
// counts parsed and reported. A classroom that fails to load is logged
// and skipped, never aborting the remaining classrooms.
func CollectMessages(r Retriever, classrooms []Classroom, n Notifier, w io.Writer) map[string][]MessageCount {
	messages := make(map[string][]MessageCount)
	for _, c := range classrooms {
		markers, err := r.MessageMarkers(c)
		if err != nil {
			log.Printf("Error messages: %v", &RetrievalError{ClassroomID: c.ID, Err: err})
			continue
		}
		counts := CountMessages(markers)
		messages[c.ID] = counts
		ReportMessages(w, c.Name, counts, n)
	}
	return messages
}
