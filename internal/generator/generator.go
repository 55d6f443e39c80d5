// Package generator drives a full run: compute the upcoming Monday, ensure the
// output directory, announce overwrites, then render each configured page.
package generator

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kingrea/weeklog/internal/config"
	"github.com/kingrea/weeklog/internal/page"
	"github.com/kingrea/weeklog/internal/week"
)

// Confirmer decides whether existing outputs may be overwritten.
type Confirmer func(paths []string) (bool, error)

// PageReport is the outcome for one configured page.
type PageReport struct {
	Name string
	page.Result
}

// Report summarizes a run.
type Report struct {
	Week    string
	Pages   []PageReport
	Aborted bool
}

// Summary renders "name=outcome" pairs in render order.
func (r Report) Summary() string {
	parts := make([]string, 0, len(r.Pages))
	for _, p := range r.Pages {
		parts = append(parts, fmt.Sprintf("%s=%s", p.Name, p.Outcome))
	}
	return strings.Join(parts, " ")
}

// Generator renders the configured pages for the upcoming week.
type Generator struct {
	cfg     *config.Config
	log     page.Logger
	now     func() time.Time
	dryRun  bool
	confirm Confirmer
}

// Option customizes a Generator during construction.
type Option func(*Generator)

// WithClock overrides the clock the reference date is read from.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) {
		g.now = clock
	}
}

// WithDryRun renders pages without writing them.
func WithDryRun(dryRun bool) Option {
	return func(g *Generator) {
		g.dryRun = dryRun
	}
}

// WithConfirm asks before overwriting pages that already exist.
func WithConfirm(confirm Confirmer) Option {
	return func(g *Generator) {
		g.confirm = confirm
	}
}

// New builds a generator for cfg that reports through log.
func New(cfg *config.Config, log page.Logger, opts ...Option) *Generator {
	g := &Generator{
		cfg: cfg,
		log: log,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run generates every page for the Monday after the clock's current date.
// Missing templates and missing markers are reported in the Report; only
// filesystem failures are returned as errors. A dry run touches nothing on
// disk.
func (g *Generator) Run() (Report, error) {
	weekStr := week.Format(week.NextMonday(g.now()))
	report := Report{Week: weekStr}

	if !g.dryRun {
		if err := config.InitWeeklogDir(g.cfg.OutDir()); err != nil {
			return report, err
		}
	}

	pages := g.cfg.Pages()
	var existing []string
	for _, p := range pages {
		out := g.cfg.OutputPath(p, weekStr)
		if _, err := os.Stat(out); err == nil {
			g.log.Info("Target file already exists and will be overwritten: %s", out)
			existing = append(existing, out)
		}
	}

	if len(existing) > 0 && g.confirm != nil && !g.dryRun {
		ok, err := g.confirm(existing)
		if err != nil {
			return report, err
		}
		if !ok {
			g.log.Warn("Overwrite declined, no pages generated for week %s", weekStr)
			report.Aborted = true
			for _, p := range pages {
				report.Pages = append(report.Pages, PageReport{
					Name: p.Name,
					Result: page.Result{
						Template: g.cfg.TemplatePath(p),
						Output:   g.cfg.OutputPath(p, weekStr),
						Outcome:  page.OutcomeSkipped,
					},
				})
			}
			return report, nil
		}
	}

	renderer := &page.Renderer{
		Marker: g.cfg.Marker(),
		Log:    g.log,
		DryRun: g.dryRun,
	}
	for _, p := range pages {
		result, err := renderer.Render(g.cfg.TemplatePath(p), g.cfg.OutputPath(p, weekStr), weekStr)
		if err != nil {
			return report, err
		}
		report.Pages = append(report.Pages, PageReport{Name: p.Name, Result: result})
	}
	g.log.Info("Week %s: %s", weekStr, report.Summary())
	return report, nil
}
