// Package summary models the journal navigation index (SUMMARY.md).
//
// The document is split at a fixed separator line: everything before it is
// user-authored preamble and is preserved byte for byte; everything after it
// is a generated tree of year → month → day links kept in strictly
// descending chronological order.
package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/starford/daybook/internal/storage"
)

// Separator marks the boundary between the preamble and the generated tree.
const Separator = "---"

// Document is the parsed navigation index.
type Document struct {
	// Preamble holds the raw bytes before the separator line. It is never
	// inspected or rewritten by insert operations.
	Preamble string
	// Years is the generated tree, ordered by year descending.
	Years []*YearNode
}

// YearNode groups the months of one year.
type YearNode struct {
	Year   int
	Months []*MonthNode
}

// MonthNode groups the days of one month.
type MonthNode struct {
	Month time.Month
	Days  []*DayNode
}

// DayNode links to a single entry document.
type DayNode struct {
	Day     int
	Weekday string
}

// Load reads and parses the index at path. A missing file yields an empty
// document, not an error.
func Load(store storage.Provider, path string) (*Document, error) {
	if !store.Exists(path) {
		return &Document{}, nil
	}
	data, err := store.Read(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Save serializes the document and writes it to path.
func (d *Document) Save(store storage.Provider, path string) error {
	return store.Write(path, d.Bytes())
}

// Insert adds the day entry for date to the generated tree, creating year
// and month nodes as needed. Each node is placed at the position that keeps
// the descending order invariant; inserting an already-present date is a
// no-op.
func (d *Document) Insert(date time.Time) {
	year := d.findOrInsertYear(date.Year())
	month := year.findOrInsertMonth(date.Month())
	month.insertDay(date.Day(), date.Weekday().String())
}

func (d *Document) findOrInsertYear(y int) *YearNode {
	for i, n := range d.Years {
		if n.Year == y {
			return n
		}
		if n.Year < y {
			node := &YearNode{Year: y}
			d.Years = append(d.Years[:i], append([]*YearNode{node}, d.Years[i:]...)...)
			return node
		}
	}
	node := &YearNode{Year: y}
	d.Years = append(d.Years, node)
	return node
}

func (y *YearNode) findOrInsertMonth(m time.Month) *MonthNode {
	for i, n := range y.Months {
		if n.Month == m {
			return n
		}
		if n.Month < m {
			node := &MonthNode{Month: m}
			y.Months = append(y.Months[:i], append([]*MonthNode{node}, y.Months[i:]...)...)
			return node
		}
	}
	node := &MonthNode{Month: m}
	y.Months = append(y.Months, node)
	return node
}

func (m *MonthNode) insertDay(day int, weekday string) {
	for i, n := range m.Days {
		if n.Day == day {
			return
		}
		if n.Day < day {
			node := &DayNode{Day: day, Weekday: weekday}
			m.Days = append(m.Days[:i], append([]*DayNode{node}, m.Days[i:]...)...)
			return
		}
	}
	m.Days = append(m.Days, &DayNode{Day: day, Weekday: weekday})
}

// Bytes serializes the document: preamble, separator, then the generated
// tree in its fixed textual form. The output is a deterministic function of
// the document fields and round-trips through Parse.
func (d *Document) Bytes() []byte {
	var b strings.Builder
	b.WriteString(d.Preamble)
	if d.Preamble != "" && !strings.HasSuffix(d.Preamble, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(Separator)
	b.WriteByte('\n')

	for _, y := range d.Years {
		fmt.Fprintf(&b, "\n# [%d](%d/README.md)\n", y.Year, y.Year)
		for _, m := range y.Months {
			fmt.Fprintf(&b, "- [%s](%d/%02d/README.md)\n", m.Month.String(), y.Year, int(m.Month))
			for _, day := range m.Days {
				fmt.Fprintf(&b, "  - [%02d - %s](%d/%02d/%02d.md)\n",
					day.Day, day.Weekday, y.Year, int(m.Month), day.Day)
			}
		}
	}
	return []byte(b.String())
}
