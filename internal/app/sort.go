package app

import (
	"sort"
	"strconv"
)

// SortedEntries returns the timeline ordered by the named field. The
// date fields compare chronologically, days numerically, everything else
// lexically on the rendered value. The sort is stable, so ties keep the
// timeline's insertion order.
func SortedEntries(t *Timeline, field string) []Entry {
	entries := t.Entries()
	switch field {
	case "start_date":
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Activity.Start.Before(entries[j].Activity.Start)
		})
	case "due_date":
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Activity.Due.Before(entries[j].Activity.Due)
		})
	case "days":
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Activity.Days < entries[j].Activity.Days
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return fieldText(entries[i], field) < fieldText(entries[j], field)
		})
	}
	return entries
}

// fieldText renders a sortable field as text for the lexical comparator.
func fieldText(e Entry, field string) string {
	a := e.Activity
	switch field {
	case "name":
		return a.Name
	case "type":
		return a.Type
	case "classroom":
		return a.ClassroomName
	case "completed":
		return strconv.FormatBool(a.Completed)
	default:
		return e.ID
	}
}
