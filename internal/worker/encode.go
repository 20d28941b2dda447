package worker

import (
	"context"
	"sort"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/assemble"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
)

// Encode analyzes names in a batch, then assembles the codes of every
// analyzed character and of the words of dict. Failures of both stages are
// merged, keyed by character or word.
func (e *Engine) Encode(ctx context.Context, names []string, dict []chai.DictEntry, opts Options) ([]chai.CodeEntry, map[string]error, error) {
	report, err := Batch(ctx, e.Analyzer, names, opts)
	if err != nil {
		return nil, report.Failed, err
	}

	analyzed := make([]string, 0, len(report.Analyses))
	for name := range report.Analyses {
		analyzed = append(analyzed, name)
	}
	sort.Strings(analyzed)

	chars := make([]assemble.Character, len(analyzed))
	for i, name := range analyzed {
		chars[i] = e.Character(report.Analyses[name])
	}

	entries, failed := e.Assembler.Assemble(chars, dict)
	for k, v := range report.Failed {
		failed[k] = v
	}
	logger := opts.logger()
	for k, v := range failed {
		if _, ok := report.Failed[k]; !ok {
			logger.Warn("encoding failed", "word", k, "kind", chai.KindOf(v), "err", v)
		}
	}
	return entries, failed, nil
}
