package journal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/starford/daybook/internal/apperr"
	"github.com/starford/daybook/internal/reminders"
	"github.com/starford/daybook/internal/storage"
	"github.com/starford/daybook/internal/summary"
)

// ReminderAggregator fans out to the configured reminder sources. The
// concrete implementation lives in the reminders package; the interface
// keeps the synthesizer testable without network access.
type ReminderAggregator interface {
	FetchAll(ctx context.Context, sources []reminders.Source) (map[reminders.Source][]reminders.Item, map[reminders.Source]error)
}

// SynthConfig controls entry synthesis. Template paths are relative to the
// journal root; empty paths select the built-in defaults.
type SynthConfig struct {
	TemplatePath      string
	MonthTemplatePath string
	YearTemplatePath  string
	LookbackDays      int
}

// Synthesizer creates dated entries and keeps the navigation index in step.
type Synthesizer struct {
	store  storage.Provider
	agg    ReminderAggregator
	cfg    SynthConfig
	carry  *Carryover
	logger *slog.Logger
}

// NewSynthesizer wires a synthesizer over store. agg may be nil when no
// reminder sources are configured.
func NewSynthesizer(store storage.Provider, agg ReminderAggregator, cfg SynthConfig, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{
		store:  store,
		agg:    agg,
		cfg:    cfg,
		carry:  NewCarryover(store, cfg.LookbackDays),
		logger: logger,
	}
}

// CreateEntry synthesizes the entry for date. When the document already
// exists its body is left untouched and only the navigation index is
// reconciled; Created reports which case occurred.
func (s *Synthesizer) CreateEntry(ctx context.Context, date time.Time, sources []reminders.Source) (*Entry, error) {
	path := EntryPath(date)

	if s.store.Exists(path) {
		content, err := s.store.Read(path)
		if err != nil {
			return nil, fmt.Errorf("journal: read existing entry: %w", err)
		}
		if err := s.updateSummary(date); err != nil {
			return nil, err
		}
		s.logger.Info("entry exists, index reconciled", "path", path)
		return &Entry{Date: date, Path: path, Content: content, Created: false}, nil
	}

	if err := s.scaffoldPeriods(date); err != nil {
		return nil, err
	}

	tmpl, err := s.loadTemplate(s.cfg.TemplatePath, DefaultTemplate)
	if err != nil {
		return nil, err
	}

	block := s.remindersBlock(ctx, sources)
	content := Render(tmpl, Vars{Date: date, Reminders: block})
	content = s.injectCarried(date, content)

	if err := s.store.Write(path, []byte(content)); err != nil {
		return nil, fmt.Errorf("journal: write entry: %w", err)
	}
	if err := s.updateSummary(date); err != nil {
		return nil, err
	}
	s.logger.Info("entry created", "path", path)
	return &Entry{Date: date, Path: path, Content: []byte(content), Created: true}, nil
}

// loadTemplate reads the configured template. The scaffolded template.md
// is used when present and falls back to the built-in text otherwise; any
// other configured path that does not exist is an error. An empty path
// selects the built-in directly.
func (s *Synthesizer) loadTemplate(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	if !s.store.Exists(path) {
		if path == TemplateFile {
			return fallback, nil
		}
		return "", fmt.Errorf("journal: %w: %s", apperr.ErrMissingTemplate, path)
	}
	data, err := s.store.Read(path)
	if err != nil {
		return "", fmt.Errorf("journal: read template: %w", err)
	}
	return string(data), nil
}

// scaffoldPeriods ensures the year and month directories exist and seeds
// their overview READMEs on first use.
func (s *Synthesizer) scaffoldPeriods(date time.Time) error {
	yearDir := YearDir(date)
	monthDir := MonthDir(date)
	for _, dir := range []string{yearDir, monthDir} {
		if err := s.store.EnsureDir(dir); err != nil {
			return fmt.Errorf("journal: ensure %s: %w", dir, err)
		}
	}

	yearReadme := yearDir + "/README.md"
	if !s.store.Exists(yearReadme) {
		tmpl, err := s.loadTemplate(s.cfg.YearTemplatePath, DefaultYearTemplate)
		if err != nil {
			return err
		}
		if err := s.store.Write(yearReadme, []byte(RenderYear(tmpl, date.Year()))); err != nil {
			return fmt.Errorf("journal: write year readme: %w", err)
		}
	}

	monthReadme := monthDir + "/README.md"
	if !s.store.Exists(monthReadme) {
		tmpl, err := s.loadTemplate(s.cfg.MonthTemplatePath, DefaultMonthTemplate)
		if err != nil {
			return err
		}
		if err := s.store.Write(monthReadme, []byte(RenderMonth(tmpl, date.Year(), date.Month()))); err != nil {
			return fmt.Errorf("journal: write month readme: %w", err)
		}
	}
	return nil
}

// remindersBlock runs the fan-out and renders the grouped block. Source
// failures were already logged by the aggregator; the failed source is
// simply absent from the block.
func (s *Synthesizer) remindersBlock(ctx context.Context, sources []reminders.Source) string {
	if s.agg == nil || len(sources) == 0 {
		return ""
	}
	results, _ := s.agg.FetchAll(ctx, sources)
	return reminders.RenderBlock(sources, results)
}

// injectCarried pulls unfinished tasks from the previous entry and inserts
// them at the top of the goals section, ahead of the template's blank
// placeholders. No previous entry in the window means nothing to inject.
func (s *Synthesizer) injectCarried(date time.Time, content string) string {
	prev, ok, err := s.carry.FindPreviousEntry(date)
	if err != nil {
		s.logger.Warn("carryover lookup failed", "error", err)
		return content
	}
	if !ok {
		return content
	}
	carried := s.carry.CarriedTasks(prev)
	if len(carried) == 0 {
		return content
	}
	s.logger.Info("carrying over tasks", "from", prev.Path, "count", len(carried))

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "##") && strings.Contains(trimmed, SectionGoals) {
			injected := make([]string, 0, len(lines)+len(carried))
			injected = append(injected, lines[:i+1]...)
			injected = append(injected, carried...)
			injected = append(injected, lines[i+1:]...)
			return strings.Join(injected, "\n")
		}
	}
	return content
}

// updateSummary loads the index, records date, and writes it back. The
// write is skipped when the date was already present and nothing changed.
func (s *Synthesizer) updateSummary(date time.Time) error {
	doc, err := summary.Load(s.store, SummaryFile)
	if err != nil {
		return fmt.Errorf("journal: load summary: %w", err)
	}
	before := doc.Bytes()
	doc.Insert(date)
	after := doc.Bytes()
	if string(before) == string(after) {
		return nil
	}
	if err := doc.Save(s.store, SummaryFile); err != nil {
		return fmt.Errorf("journal: save summary: %w", err)
	}
	return nil
}
