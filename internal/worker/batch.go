package worker

import (
	"context"
	"encoding/json"
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/glyph"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/scheme"
)

// Options tunes a batch run.
type Options struct {
	// Workers bounds the goroutines analyzing at once; 0 means one per CPU.
	Workers int
	Logger  *log.Logger
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// Report is the outcome of a batch run.
type Report struct {
	Analyses map[string]scheme.Analysis
	Failed   map[string]error
	// Deduplicated counts characters whose glyph matched one already
	// analyzed.
	Deduplicated int
}

// cell holds the analysis of one distinct glyph.
type cell struct {
	once     sync.Once
	analysis scheme.Analysis
	err      error
}

// Batch analyzes names in parallel. Each goroutine works on its own fork of
// a. Characters with identical glyphs are analyzed once, unless they are
// roots themselves. A failing character is recorded in the report and
// never stops the run; only ctx ending does.
func Batch(ctx context.Context, a *scheme.Analyzer, names []string, opts Options) (*Report, error) {
	logger := opts.logger()
	report := &Report{
		Analyses: make(map[string]scheme.Analysis, len(names)),
		Failed:   make(map[string]error),
	}

	var (
		mu    sync.Mutex
		cells = make(map[uint64]*cell)
	)
	cellFor := func(fp uint64) *cell {
		mu.Lock()
		defer mu.Unlock()
		c, ok := cells[fp]
		if !ok {
			c = &cell{}
			cells[fp] = c
		}
		return c
	}

	jobs := make(chan string)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for _, name := range names {
			select {
			case jobs <- name:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for range opts.workers() {
		an := a.Fork()
		g.Go(func() error {
			for name := range jobs {
				res, shared, err := analyzeOne(an, name, cellFor)

				mu.Lock()
				if err != nil {
					report.Failed[name] = err
				} else {
					report.Analyses[name] = res
				}
				if shared {
					report.Deduplicated++
				}
				mu.Unlock()

				if err != nil {
					logger.Warn("analysis failed", "char", name, "kind", chai.KindOf(err), "err", err)
				}
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	logger.Debug("batch finished",
		"analyzed", len(report.Analyses),
		"failed", len(report.Failed),
		"deduplicated", report.Deduplicated)
	return report, err
}

// analyzeOne returns the analysis of name and whether it was taken from
// another character with the same glyph.
func analyzeOne(an *scheme.Analyzer, name string, cellFor func(uint64) *cell) (scheme.Analysis, bool, error) {
	g, err := an.Glyph(name)
	if err != nil {
		return scheme.Analysis{}, false, err
	}
	fp, err := GlyphFingerprint(g)
	if err != nil || an.RootSet().Has(name) {
		res, err := an.AnalyzeGlyph(name, g)
		return res, false, err
	}

	c := cellFor(fp)
	ran := false
	c.once.Do(func() {
		ran = true
		c.analysis, c.err = an.AnalyzeGlyph(name, g)
	})
	if ran {
		return c.analysis, false, c.err
	}
	if c.err != nil {
		// errors carry the character they were raised for
		res, err := an.AnalyzeGlyph(name, g)
		return res, false, err
	}
	res := c.analysis
	res.Char = name
	return res, true, nil
}

// GlyphFingerprint hashes the strokes of g.
func GlyphFingerprint(g glyph.Glyph) (uint64, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return 0, err
	}
	return chai.Fingerprint(data), nil
}
