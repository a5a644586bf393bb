// Package report assembles estimation results into a run summary: one
// line per bill-of-materials entry plus per-source and total rollups
// accumulated with exact decimal addition. Summaries render as indented
// JSON or as an aligned text table.
package report

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/boardcarbon/internal/carbon"
	"github.com/rshade/boardcarbon/internal/units"
)

// Line is one reported bill-of-materials entry. CarbonKg carries the
// exact emission in kilograms; a non-empty Note marks a line that failed
// estimation and contributed nothing to the rollups.
type Line struct {
	Ref      string `json:"ref"`
	Kind     string `json:"kind"`
	Quantity int    `json:"quantity"`
	Source   string `json:"source,omitempty"`
	CarbonKg string `json:"carbon_kg"`
	Note     string `json:"note,omitempty"`
}

// Summary is a finished estimation run.
type Summary struct {
	RunID    string            `json:"run_id"`
	Name     string            `json:"name,omitempty"`
	Lines    []Line            `json:"lines"`
	BySource map[string]string `json:"by_source"`
	TotalKg  string            `json:"total_kg"`
}

// Builder accumulates lines and rollups during an estimation run.
type Builder struct {
	name     string
	lines    []Line
	total    units.Quantity
	bySource map[carbon.SourceType]units.Quantity
}

// NewBuilder returns an empty builder for the named bill of materials.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:     name,
		lines:    make([]Line, 0),
		total:    units.Zero(units.Mass),
		bySource: make(map[carbon.SourceType]units.Quantity),
	}
}

// AddCarbon appends an estimated line and accumulates it into the total
// and its source rollup.
func (b *Builder) AddCarbon(ref, kind string, quantity int, c carbon.Carbon) error {
	total, err := b.total.Add(c.Quantity)
	if err != nil {
		return fmt.Errorf("accumulating %s: %w", ref, err)
	}
	b.total = total

	src, ok := b.bySource[c.Source]
	if !ok {
		src = units.Zero(units.Mass)
	}
	src, err = src.Add(c.Quantity)
	if err != nil {
		return fmt.Errorf("accumulating %s: %w", ref, err)
	}
	b.bySource[c.Source] = src

	b.lines = append(b.lines, Line{
		Ref:      ref,
		Kind:     kind,
		Quantity: quantity,
		Source:   c.Source.String(),
		CarbonKg: c.Quantity.Value().String(),
	})
	return nil
}

// AddSkipped appends a line that failed estimation. The note records the
// failure; skipped lines are excluded from every rollup.
func (b *Builder) AddSkipped(ref, kind string, quantity int, note string) {
	b.lines = append(b.lines, Line{
		Ref:      ref,
		Kind:     kind,
		Quantity: quantity,
		CarbonKg: "0",
		Note:     note,
	})
}

// Summary stamps a fresh run ID and renders the accumulated state.
func (b *Builder) Summary() *Summary {
	s := &Summary{
		RunID:    uuid.New().String(),
		Name:     b.name,
		Lines:    b.lines,
		BySource: make(map[string]string, len(b.bySource)),
		TotalKg:  b.total.Value().String(),
	}
	for src, q := range b.bySource {
		s.BySource[src.String()] = q.Value().String()
	}
	return s
}

// WriteJSON renders the summary as indented JSON.
func WriteJSON(w io.Writer, s *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteText renders the summary as an aligned table. Emission values are
// shown in grams with locale grouping for readability; the exact total in
// kilograms follows in parentheses.
func WriteText(w io.Writer, s *Summary) error {
	p := message.NewPrinter(language.English)

	if _, err := fmt.Fprint(w, "EMBODIED CARBON\n===============\n"); err != nil {
		return err
	}
	if s.Name != "" {
		if _, err := fmt.Fprintf(w, "Board: %s\n", s.Name); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Run:   %s\n\n", s.RunID); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REF\tKIND\tQTY\tSOURCE\tCO2E\tNOTE")
	for _, l := range s.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			l.Ref, l.Kind, l.Quantity, orDash(l.Source), formatGrams(p, l.CarbonKg), l.Note)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, src := range sortedSources(s.BySource) {
		if _, err := fmt.Fprintf(w, "%-12s %s\n", src, formatGrams(p, s.BySource[src])); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%-12s %s (%s kg)\n", "TOTAL", formatGrams(p, s.TotalKg), s.TotalKg)
	return err
}

// formatGrams renders a kilogram literal in grouped grams, e.g.
// "1,234.568 g". A literal that fails to parse passes through unchanged.
func formatGrams(p *message.Printer, kg string) string {
	d, err := decimal.NewFromString(kg)
	if err != nil {
		return kg
	}
	grams := d.Mul(decimal.NewFromInt(1000))
	return p.Sprintf("%.3f g", grams.InexactFloat64())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func sortedSources(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
