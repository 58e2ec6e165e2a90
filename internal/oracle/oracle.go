// Package oracle draws weighted random answers from a band table.
package oracle

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"hunch/internal/answer"
)

// Band maps the half-open draw range [prev.UpTo, UpTo) to an answer.
type Band struct {
	UpTo   float64
	Answer answer.Answer
}

// Table is an ordered partition of [0, 100) into bands. The first band
// covers [0, bands[0].UpTo); each later band starts where the previous
// one ends. The final band must end at exactly 100.
type Table []Band

// DefaultTable returns the stock partition. SOON carries no band here;
// that is intentional and must stay that way.
func DefaultTable() Table {
	return Table{
		{UpTo: 15, Answer: answer.Maybe},
		{UpTo: 30, Answer: answer.No},
		{UpTo: 60, Answer: answer.Yes},
		{UpTo: 75, Answer: answer.Later},
		{UpTo: 98, Answer: answer.Yes},
		{UpTo: 100, Answer: answer.Never},
	}
}

// Validate checks that the table is a total partition of [0, 100).
// It does not require every declared answer to be reachable.
func (t Table) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("table has no bands")
	}
	prev := 0.0
	for i, b := range t {
		if !answer.Valid(b.Answer) {
			return fmt.Errorf("band %d: unknown answer %q", i, string(b.Answer))
		}
		if b.UpTo <= prev {
			return fmt.Errorf("band %d: bound %v must be greater than %v", i, b.UpTo, prev)
		}
		if b.UpTo > 100 {
			return fmt.Errorf("band %d: bound %v exceeds 100", i, b.UpTo)
		}
		prev = b.UpTo
	}
	if prev != 100 {
		return fmt.Errorf("last band ends at %v, want 100", prev)
	}
	return nil
}

// Lookup maps a draw in [0, 100) to its answer. The first band whose
// upper bound exceeds the draw wins.
func (t Table) Lookup(draw float64) answer.Answer {
	for _, b := range t {
		if draw < b.UpTo {
			return b.Answer
		}
	}
	// Total partition; only reachable if the draw is out of domain.
	return t[len(t)-1].Answer
}

// Mass returns the effective percentage mass per answer. Answers split
// across disjoint bands accumulate the union of their ranges.
func (t Table) Mass() map[answer.Answer]float64 {
	mass := make(map[answer.Answer]float64, len(t))
	prev := 0.0
	for _, b := range t {
		mass[b.Answer] += b.UpTo - prev
		prev = b.UpTo
	}
	return mass
}

// Unreachable returns declared answers with no mass under the table,
// in declaration order.
func (t Table) Unreachable() []answer.Answer {
	mass := t.Mass()
	var out []answer.Answer
	for _, a := range answer.Values() {
		if mass[a] == 0 {
			out = append(out, a)
		}
	}
	return out
}

// Source yields uniform values in [0, 1). The Oracle serializes its own
// draws; a Source shared outside the Oracle needs external
// synchronization.
type Source interface {
	Float64() float64
}

// Result captures a single ask.
type Result struct {
	Answer answer.Answer
	Draw   float64
}

// Oracle draws answers from a table. The zero value is not usable;
// construct with New. An Oracle is safe for concurrent use.
type Oracle struct {
	table Table

	mu     sync.Mutex
	source Source
}

// Option configures an Oracle.
type Option func(*Oracle)

// WithSource replaces the default randomness source.
func WithSource(src Source) Option {
	return func(o *Oracle) {
		o.source = src
	}
}

// WithSeed pins the default source to a deterministic sequence.
func WithSeed(seed int64) Option {
	return func(o *Oracle) {
		o.source = rand.New(rand.NewSource(seed))
	}
}

// New builds an Oracle over the given table.
func New(table Table, opts ...Option) (*Oracle, error) {
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table: %w", err)
	}
	o := &Oracle{
		table:  table,
		source: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Table returns a copy of the oracle's band table.
func (o *Oracle) Table() Table {
	out := make(Table, len(o.table))
	copy(out, o.table)
	return out
}

// Ask consumes one draw and returns the matching answer.
func (o *Oracle) Ask() Result {
	o.mu.Lock()
	draw := 100 * o.source.Float64()
	o.mu.Unlock()
	return Result{Answer: o.table.Lookup(draw), Draw: draw}
}
