package app

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	ical "github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// Type colors, first match wins on a case-insensitive substring check.
const (
	ColorNotGraded = "#297630" // green
	ColorPEC       = "#3d76da" // blue
	ColorPractical = "#d20000" // red
	ColorDefault   = "#c8cdcd" // gray
)

// Row is one exported activity in the canonical column order shared by
// the CSV, the HTML table and the ICS events.
type Row struct {
	Name      string
	Classroom string
	Type      string
	Days      int
	Start     string
	End       string
	Completed bool
}

// BuildRows renders the sorted entries into canonical rows.
func BuildRows(entries []Entry) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		a := e.Activity
		rows = append(rows, Row{
			Name:      a.Name,
			Classroom: a.ClassroomName,
			Type:      a.Type,
			Days:      a.Days,
			Start:     a.Start.Format(DateLayout),
			End:       a.Due.Format(DateLayout),
			Completed: a.Completed,
		})
	}
	return rows
}

// TypeColor resolves the badge color for an activity type.
func TypeColor(activityType string) string {
	activityType = strings.ToLower(activityType)
	color := ColorDefault
	if strings.Contains(activityType, "no evaluable") {
		color = ColorNotGraded
	}
	if strings.Contains(activityType, "pec") {
		color = ColorPEC
	}
	if strings.Contains(activityType, "práctica") {
		color = ColorPractical
	}
	return color
}

// badge renders a colored span, optionally wrapped in a link.
func badge(text, background, color, link string) string {
	var b strings.Builder
	if link != "" {
		fmt.Fprintf(&b, `<a href="%s" target="_blank">`, html.EscapeString(link))
	}
	fmt.Fprintf(&b, `<span class="badge" style="background-color: %s; color: %s">%s</span>`,
		background, color, html.EscapeString(text))
	if link != "" {
		b.WriteString("</a>")
	}
	return b.String()
}

const htmlStyle = `table#timeline { border-collapse: collapse; font-family: sans-serif; }
table#timeline th, table#timeline td { border: 1px solid #ccc; padding: 6px 10px; text-align: center; }
.badge { padding: 3px 8px; border-radius: 8px; }
.done { color: #297630; font-size: 1.2em; }
.pending { color: #d20000; font-size: 1.2em; }`

// WriteHTML renders the timeline as a self-contained HTML document. The
// progress indicator passes the raw days value through: overdue and
// not-yet-started activities deliberately fall outside the bar's range.
func WriteHTML(w io.Writer, entries []Entry, colors map[string]string, today time.Time) error {
	var table strings.Builder
	table.WriteString(`<table id="timeline">` +
		"<tr>" +
		"<th>Nombre actividad</th>" +
		"<th>Asignatura</th>" +
		"<th>Tipo</th>" +
		"<th>Days reminder</th>" +
		"<th>Inicio</th>" +
		"<th>Final</th>" +
		"<th>Completada</th>" +
		"</tr>")

	for _, e := range entries {
		a := e.Activity
		total := DaysBetween(a.Start, a.Due)
		progress := fmt.Sprintf(`<label for="%[1]s_time">%[2]d&nbsp;</label><progress id="%[1]s_time" value="%[2]d" max="%[3]d"></progress>`,
			html.EscapeString(a.ID), a.Days, total)
		completed := `<span class="pending">✘</span>`
		if a.Completed {
			completed = `<span class="done">✔</span>`
		}
		fmt.Fprintf(&table,
			`<tr><td align="left">%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
			badge(a.Name, colors[a.ClassroomID], "#000", a.URL),
			badge(a.ClassroomName, colors[a.ClassroomID], "#000", a.ClassroomURL),
			badge(a.Type, TypeColor(a.Type), "#FFF", ""),
			progress,
			a.Start.Format(DateLayout),
			a.Due.Format(DateLayout),
			completed)
	}
	table.WriteString("</table>")

	_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>My timeline UOC</title>
    <style>%s</style>
  </head>
  <body>
  <h2>Timeline %s</h2>%s
  </body>
</html>
`, htmlStyle, today.Format(DateLayout), table.String())
	return err
}

// WriteCSV writes the canonical rows with the fixed header.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Name,
			row.Classroom,
			row.Type,
			strconv.Itoa(row.Days),
			row.Start,
			row.End,
			strconv.FormatBool(row.Completed),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteICS renders one event per canonical row: the event spans the
// start date at 00:00:00 to the end date at 23:59:59. Rows are consumed
// instead of the live model so the ICS always matches the CSV contract.
func WriteICS(w io.Writer, rows []Row, today time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ICSProductID)

	for _, row := range rows {
		start, err := time.ParseInLocation(DateLayout, row.Start, time.UTC)
		if err != nil {
			continue
		}
		end, err := time.ParseInLocation(DateLayout, row.End, time.UTC)
		if err != nil {
			continue
		}
		end = end.Add(24*time.Hour - time.Second)

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, eventUID(row))
		event.Props.SetDateTime(ical.PropDateTimeStamp, today.UTC())
		event.Props.SetText(ical.PropSummary, row.Classroom+" -> "+row.Type)
		event.Props.SetText(ical.PropDescription, fmt.Sprintf("%s -> %d days", row.Name, row.Days))
		event.Props.SetDateTime(ical.PropDateTimeStart, start)
		event.Props.SetDateTime(ical.PropDateTimeEnd, end)
		cal.Children = append(cal.Children, event.Component)
	}

	return ical.NewEncoder(w).Encode(cal)
}

// eventUID derives a stable UID from the row content, so re-exporting an
// unchanged timeline updates events instead of duplicating them.
func eventUID(row Row) string {
	seed := strings.Join([]string{row.Name, row.Classroom, row.Start, row.End}, "|")
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)).String()
}

// ExportAll writes timeline.html, timeline.csv and timeline.ics into the
// working directory from the same sorted entries. All three renderings
// share one set of canonical rows; the CSV rows are built first and the
// ICS is derived from them.
func ExportAll(entries []Entry, colors map[string]string, today time.Time) error {
	rows := BuildRows(entries)

	var buf bytes.Buffer
	if err := WriteHTML(&buf, entries, colors, today); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	if err := writeFileAtomic(HTMLFile, buf.Bytes()); err != nil {
		return err
	}
	log.Println("Timeline html created!")

	buf.Reset()
	if err := WriteCSV(&buf, rows); err != nil {
		return fmt.Errorf("render csv: %w", err)
	}
	if err := writeFileAtomic(CSVFile, buf.Bytes()); err != nil {
		return err
	}
	log.Println("Timeline csv created!")

	buf.Reset()
	if err := WriteICS(&buf, rows, today); err != nil {
		return fmt.Errorf("render ics: %w", err)
	}
	if err := writeFileAtomic(ICSFile, buf.Bytes()); err != nil {
		return err
	}
	log.Println("Timeline ics created!")

	return nil
}

// writeFileAtomic writes to a temp file first and renames it into place,
// so a crashed run never leaves a truncated output file behind.
func writeFileAtomic(name string, data []byte) error {
	tmp := name + TmpSuffix
	if err := os.WriteFile(tmp, data, FilePermissions); err != nil {
		return err
	}
	return os.Rename(tmp, name)
}
