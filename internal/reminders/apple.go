package reminders

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// appleScript lists the names of every incomplete reminder across all lists.
const appleScript = `
tell application "Reminders"
    set output to ""
    set allLists to lists
    repeat with aList in allLists
        set listReminders to (reminders of aList whose completed is false)
        repeat with aReminder in listReminders
            set output to output & (name of aReminder) & linefeed
        end repeat
    end repeat
    return output
end tell
`

// AppleFetcher reads incomplete reminders from the macOS Reminders app via
// osascript. The Reminders automation bridge is slow on large databases, so
// the default timeout is deliberately long.
type AppleFetcher struct {
	Bound time.Duration
}

func (f *AppleFetcher) Source() Source { return SourceApple }

func (f *AppleFetcher) Timeout() time.Duration {
	if f.Bound > 0 {
		return f.Bound
	}
	return 2 * time.Minute
}

func (f *AppleFetcher) Fetch(ctx context.Context) ([]Item, error) {
	if runtime.GOOS != "darwin" {
		return nil, nil
	}

	out, err := exec.CommandContext(ctx, "osascript", "-e", appleScript).Output()
	if err != nil {
		return nil, fmt.Errorf("reminders: osascript: %w", err)
	}
	return parseAppleOutput(string(out)), nil
}

func parseAppleOutput(out string) []Item {
	var items []Item
	for _, line := range strings.Split(out, "\n") {
		title := strings.TrimSpace(line)
		if title == "" {
			continue
		}
		items = append(items, Item{Source: SourceApple, Title: title})
	}
	return items
}
