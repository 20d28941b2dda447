// Package report renders analyses, codebooks and failures for the terminal.
package report

import (
	"bytes"
	"fmt"
	"math/bits"
	"sort"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/assemble"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/repertoire"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/scheme"
)

// Renderer formats results as text. A plain renderer never emits styling.
type Renderer struct {
	template *template.Template
	plain    bool
}

// AnalysisData is what the analysis template sees.
type AnalysisData struct {
	scheme.Analysis
	Strokes int
	Codes   []assemble.CharCode
}

// NewRenderer creates a renderer with the default analysis template.
func NewRenderer(plain bool) *Renderer {
	r := &Renderer{plain: plain}
	r.template = template.Must(template.New("analysis").Funcs(r.funcs()).Parse(defaultTemplate))
	return r
}

// SetTemplate replaces the analysis template.
func (r *Renderer) SetTemplate(tmpl string) error {
	t, err := template.New("analysis").Funcs(r.funcs()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}
	r.template = t
	return nil
}

func (r *Renderer) style(s lipgloss.Style) func(any) string {
	return func(v any) string {
		text := fmt.Sprint(v)
		if r.plain {
			return text
		}
		return s.Render(text)
	}
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"title": r.style(TitleStyle),
		"root":  r.style(RootStyle),
		"code":  r.style(CodeStyle),
		"label": r.style(LabelStyle),
		"join":  strings.Join,
		"mask": func(b scheme.Bitmask, n int) string {
			return fmt.Sprintf("%0*b", n, uint64(b))
		},
	}
}

// Analysis renders one analysis with the codes of its character.
func (r *Renderer) Analysis(a scheme.Analysis, codes []assemble.CharCode) (string, error) {
	var full scheme.Bitmask
	for _, root := range a.Scheme {
		full |= root.Bitmask
	}
	data := AnalysisData{Analysis: a, Strokes: bits.Len64(uint64(full)), Codes: codes}

	var buf bytes.Buffer
	if err := r.template.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Codebook renders entries as aligned columns of word, code and frequency.
func (r *Renderer) Codebook(entries []chai.CodeEntry) string {
	wordWidth, codeWidth := 0, 0
	for _, e := range entries {
		wordWidth = max(wordWidth, runewidth.StringWidth(e.Word))
		codeWidth = max(codeWidth, runewidth.StringWidth(e.Code))
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(runewidth.FillRight(e.Word, wordWidth))
		b.WriteString("  ")
		b.WriteString(r.style(CodeStyle)(runewidth.FillRight(e.Code, codeWidth)))
		b.WriteString("  ")
		b.WriteString(r.style(LabelStyle)(e.Frequency))
		b.WriteString("\n")
	}
	return b.String()
}

// Failures renders one line per failed character or word, in code point
// order.
func (r *Renderer) Failures(failed map[string]error) string {
	keys := make([]string, 0, len(failed))
	for k := range failed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		kind := chai.KindOf(failed[k])
		if kind == "" {
			kind = "error"
		}
		fmt.Fprintf(&b, "%s  %s  %s\n", k, r.style(ErrorStyle)(kind), failed[k])
	}
	return b.String()
}

// Counts renders the size of each character set tier.
func (r *Renderer) Counts(counts map[repertoire.Set]int) string {
	width := 0
	for _, s := range repertoire.Sets {
		width = max(width, runewidth.StringWidth(string(s)))
	}
	var b strings.Builder
	for _, s := range repertoire.Sets {
		b.WriteString(r.style(LabelStyle)(runewidth.FillRight(string(s), width)))
		fmt.Fprintf(&b, "  %d\n", counts[s])
	}
	return b.String()
}

const defaultTemplate = `{{ title .Char }}  {{ root (join .Roots " ") }}
{{ label "scheme" }}     {{ range $i, $r := .Scheme }}{{ if $i }} {{ end }}{{ $r.Name }}:{{ mask $r.Bitmask $.Strokes }}{{ end }}
{{ label "vector" }}     {{ .Vector }}
{{ label "candidates" }} {{ .Candidates }}{{ if .Ties }} ({{ .Ties }} tied){{ end }}
{{- range .Codes }}
{{ label "code" }}       {{ code .Code }}{{ if .Pinyin }} {{ .Pinyin }}{{ end }}
{{- end }}`
