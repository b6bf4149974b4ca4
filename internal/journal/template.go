package journal

import (
	"fmt"
	"strings"
	"time"
)

// Vars holds the values substituted into a template.
type Vars struct {
	Date      time.Time
	Reminders string
}

// Render substitutes the recognized {{name}} tokens into tmpl. Tokens
// outside the recognized set pass through unchanged so user templates can
// contain literal double-brace text. Render is pure: equal inputs always
// produce equal output.
func Render(tmpl string, vars Vars) string {
	r := strings.NewReplacer(
		"{{date}}", vars.Date.Format("2006-01-02"),
		"{{day_of_week}}", vars.Date.Weekday().String(),
		"{{year}}", fmt.Sprintf("%04d", vars.Date.Year()),
		"{{month}}", vars.Date.Month().String(),
		"{{month_num}}", fmt.Sprintf("%02d", int(vars.Date.Month())),
		"{{day}}", fmt.Sprintf("%02d", vars.Date.Day()),
		"{{reminders}}", vars.Reminders,
	)
	return r.Replace(tmpl)
}

// RenderMonth substitutes the month-overview tokens.
func RenderMonth(tmpl string, year int, month time.Month) string {
	r := strings.NewReplacer(
		"{{year}}", fmt.Sprintf("%04d", year),
		"{{month}}", month.String(),
		"{{month_num}}", fmt.Sprintf("%02d", int(month)),
		"{{date}}", fmt.Sprintf("%04d-%02d", year, int(month)),
	)
	return r.Replace(tmpl)
}

// RenderYear substitutes the year-overview tokens.
func RenderYear(tmpl string, year int) string {
	y := fmt.Sprintf("%04d", year)
	return strings.NewReplacer("{{year}}", y, "{{date}}", y).Replace(tmpl)
}
