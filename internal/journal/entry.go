// Package journal implements daily entry synthesis: template rendering,
// carryover of unfinished work from the previous entry, and the merge of
// external reminder items.
package journal

import (
	"fmt"
	"time"
)

// ParseEntryPath reports whether path names a dated entry and returns its
// date. Overview READMEs and the index file do not match.
func ParseEntryPath(path string) (time.Time, bool) {
	date, err := time.Parse("2006/01/02.md", path)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// Section headings tracked by the carryover logic.
const (
	SectionGoals = "Goals for Today"
	SectionFocus = "Tomorrow's Focus"
)

// SummaryFile is the navigation index document at the journal root.
const SummaryFile = "SUMMARY.md"

// DefaultLookbackDays bounds the search for a previous entry.
const DefaultLookbackDays = 30

// Entry is one dated journal document.
type Entry struct {
	Date    time.Time
	Path    string
	Content []byte
	// Created is false when the document already existed and body
	// generation was skipped.
	Created bool
}

// EntryPath derives the storage path for a date: YYYY/MM/DD.md.
func EntryPath(date time.Time) string {
	return fmt.Sprintf("%04d/%02d/%02d.md", date.Year(), int(date.Month()), date.Day())
}

// YearDir and MonthDir are the directories enclosing an entry.
func YearDir(date time.Time) string {
	return fmt.Sprintf("%04d", date.Year())
}

func MonthDir(date time.Time) string {
	return fmt.Sprintf("%04d/%02d", date.Year(), int(date.Month()))
}
