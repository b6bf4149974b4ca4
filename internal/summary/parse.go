package summary

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseError reports a structural problem in the generated tree. The
// preamble can never produce one; only malformed content after the
// separator does.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("summary: line %d: %s", e.Line, e.Reason)
}

// Parse splits raw on the first separator line and parses everything after
// it into the year → month → day tree. Bytes before the separator become
// the preamble, untouched. A document without a separator is treated as
// all preamble with an empty tree.
func Parse(data []byte) (*Document, error) {
	raw := string(data)
	doc := &Document{}

	offset := 0
	lineNo := 0
	sepFound := false
	for offset < len(raw) {
		lineNo++
		end := strings.IndexByte(raw[offset:], '\n')
		var line string
		var next int
		if end < 0 {
			line = raw[offset:]
			next = len(raw)
		} else {
			line = raw[offset : offset+end]
			next = offset + end + 1
		}
		if strings.TrimSpace(line) == Separator {
			doc.Preamble = raw[:offset]
			sepFound = true
			offset = next
			break
		}
		offset = next
	}
	if !sepFound {
		doc.Preamble = raw
		return doc, nil
	}

	var curYear *YearNode
	var curMonth *MonthNode

	for offset < len(raw) {
		lineNo++
		end := strings.IndexByte(raw[offset:], '\n')
		var line string
		if end < 0 {
			line = raw[offset:]
			offset = len(raw)
		} else {
			line = raw[offset : offset+end]
			offset += end + 1
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "# "):
			year, err := parseYearHeading(strings.TrimPrefix(trimmed, "# "))
			if err != nil {
				return nil, &ParseError{Line: lineNo, Reason: err.Error()}
			}
			curYear = &YearNode{Year: year}
			curMonth = nil
			doc.Years = append(doc.Years, curYear)

		case strings.HasPrefix(line, "  - ["):
			if curMonth == nil {
				return nil, &ParseError{Line: lineNo, Reason: "day entry without an enclosing month"}
			}
			day, weekday, err := parseDayLine(trimmed, curYear.Year, curMonth.Month)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Reason: err.Error()}
			}
			curMonth.Days = append(curMonth.Days, &DayNode{Day: day, Weekday: weekday})

		case strings.HasPrefix(trimmed, "- ["):
			if curYear == nil {
				return nil, &ParseError{Line: lineNo, Reason: "month entry without an enclosing year"}
			}
			month, err := parseMonthLine(trimmed, curYear.Year)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Reason: err.Error()}
			}
			curMonth = &MonthNode{Month: month}
			curYear.Months = append(curYear.Months, curMonth)

		default:
			return nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("unrecognized line in generated tree: %q", trimmed)}
		}
	}

	return doc, nil
}

// parseYearHeading accepts both the linked form "[2025](2025/README.md)"
// and the plain legacy form "2025".
func parseYearHeading(s string) (int, error) {
	if label, _, ok := parseLink(s); ok {
		s = label
	}
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid year heading %q", s)
	}
	return year, nil
}

// parseMonthLine parses "- [December](2025/12/README.md)".
func parseMonthLine(s string, year int) (time.Month, error) {
	_, target, ok := parseLink(strings.TrimPrefix(s, "- "))
	if !ok {
		return 0, fmt.Errorf("invalid month entry %q", s)
	}
	parts := strings.Split(target, "/")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid month link target %q", target)
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil || y != year {
		return 0, fmt.Errorf("month link %q does not belong to year %d", target, year)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return 0, fmt.Errorf("invalid month in link target %q", target)
	}
	return time.Month(m), nil
}

// parseDayLine parses "- [29 - Monday](2025/12/29.md)" (already trimmed).
func parseDayLine(s string, year int, month time.Month) (int, string, error) {
	label, target, ok := parseLink(strings.TrimPrefix(s, "- "))
	if !ok {
		return 0, "", fmt.Errorf("invalid day entry %q", s)
	}
	parts := strings.Split(target, "/")
	if len(parts) < 3 {
		return 0, "", fmt.Errorf("invalid day link target %q", target)
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil || y != year {
		return 0, "", fmt.Errorf("day link %q does not belong to year %d", target, year)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || time.Month(m) != month {
		return 0, "", fmt.Errorf("day link %q does not belong to month %d", target, int(month))
	}
	day, err := strconv.Atoi(strings.TrimSuffix(parts[2], ".md"))
	if err != nil || day < 1 || day > 31 {
		return 0, "", fmt.Errorf("invalid day in link target %q", target)
	}

	weekday := "Unknown"
	if _, wd, found := strings.Cut(label, " - "); found {
		weekday = wd
	}
	return day, weekday, nil
}

// parseLink splits "[label](target)" into its parts.
func parseLink(s string) (label, target string, ok bool) {
	body, found := strings.CutPrefix(s, "[")
	if !found {
		return "", "", false
	}
	label, rest, found := strings.Cut(body, "](")
	if !found || !strings.HasSuffix(rest, ")") {
		return "", "", false
	}
	return label, strings.TrimSuffix(rest, ")"), true
}
