package journal

// DefaultTemplate is the built-in daily entry template, written by the
// init command and used directly when no template path is configured.
const DefaultTemplate = `# {{date}} - {{day_of_week}}

## Reminders
{{reminders}}

## Goals for Today
- [ ]
- [ ]
- [ ]

## Work Accomplished

### Morning
-

### Afternoon
-

### Evening
-

## Learning & Insights
-

## Challenges & Blockers
-

## Gratitude & Wins
-

## Tomorrow's Focus
-

---

**Mood**:
**Energy Level**:
**Hours Worked**:
`

// DefaultMonthTemplate seeds the per-month overview README.
const DefaultMonthTemplate = `# {{month}} {{year}}

## Goals for this month
- [ ]
- [ ]
- [ ]

## Key Projects & Focus Areas

### Project 1


### Project 2


## Reflections & Learnings


## Highlights & Accomplishments


---

**Month Started**:
**Month Rating (1-10)**:
`

// DefaultYearTemplate seeds the per-year overview README.
const DefaultYearTemplate = `# Year in Review: {{year}}

## Goals for the Year

### Professional Goals
- [ ]
- [ ]
- [ ]

### Personal Goals
- [ ]
- [ ]
- [ ]

## Themes or Focus Areas

### Theme 1:


### Theme 2:


## Highlights & Accomplishments

### Q1 (Jan-Mar)


### Q2 (Apr-Jun)


### Q3 (Jul-Sep)


### Q4 (Oct-Dec)


## Challenges & Growth


## Lessons Learned


---

**Year Started**:
**Overall Year Rating (1-10)**:
`

// DefaultReadme is written to the journal root by the init command.
const DefaultReadme = `# Welcome to Your Journal

This is your personal daily journal.

## Getting Started

Use the daybook command to create daily entries:

` + "```bash" + `
# Create/open today's entry
daybook new

# Create entry for a specific date
daybook new --date 2025-12-29
` + "```" + `

## Navigation

Browse your entries by year and month in SUMMARY.md.

## Customization

Edit template.md in the journal directory to customize your daily entry
template.
`

// DefaultSummaryPreamble is the user-editable head of a fresh SUMMARY.md.
const DefaultSummaryPreamble = "# Summary\n\n[Introduction](README.md)\n\n"
