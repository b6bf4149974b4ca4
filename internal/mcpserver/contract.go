package mcpserver

// EntryFormatContract describes the canonical Markdown entry format that
// LLM consumers should follow when reading or writing journal entries.
const EntryFormatContract = `# Daybook Entry Format Contract

Every daily entry stored in Daybook follows this structure.

## Location

Entries live at ` + "`" + `YYYY/MM/DD.md` + "`" + ` relative to the journal root
(e.g. ` + "`" + `2025/12/29.md` + "`" + `). Each year and month directory carries a
` + "`" + `README.md` + "`" + ` overview, and ` + "`" + `SUMMARY.md` + "`" + ` at the root is the
generated navigation index. Never edit ` + "`" + `SUMMARY.md` + "`" + ` below its
` + "`" + `---` + "`" + ` separator; the tree there is regenerated on every entry
creation.

## Structure

` + "```" + `markdown
# 2025-12-29 - Monday

## Reminders
- [ ] [owner/repo] Issue title (#42) [label]
      https://github.com/owner/repo/issues/42

## Goals for Today
- [ ] Carried-over task from the previous entry
- [ ] New goal

## Work Accomplished
...

## Tomorrow's Focus
- Next step
` + "```" + `

## Rules

1. **The title line is ` + "`" + `# YYYY-MM-DD - Weekday` + "`" + `.** It is the display
   name in search and listings.
2. **Tasks are GitHub-style checkboxes**: ` + "`" + `- [ ]` + "`" + ` open,
   ` + "`" + `- [x]` + "`" + ` done. Items under "Goals for Today" and
   "Tomorrow's Focus" that are left unchecked are carried into the next
   entry automatically; checking a box is how a task leaves the journal.
3. **Do not duplicate carried tasks.** The synthesizer pulls them forward;
   just add new items.
4. **Encoding** is UTF-8 with a trailing newline.
5. **Dates are ISO-8601** (` + "`" + `YYYY-MM-DD` + "`" + `) everywhere.

## Example

` + "```" + `markdown
# 2025-12-29 - Monday

## Goals for Today
- [ ] Finish quarterly report
- [x] Review the deploy checklist

## Work Accomplished

### Morning
- Cleared the review queue

## Tomorrow's Focus
- Draft the January plan
` + "```" + `
`
