// Package simulate samples the oracle and summarizes the distribution.
package simulate

import (
	"fmt"

	"hunch/internal/answer"
	"hunch/internal/oracle"
)

// Row pairs an answer with its expected mass and observed frequency,
// both in percent.
type Row struct {
	Answer   answer.Answer
	Expected float64
	Observed float64
	Count    int
}

// Result holds the outcome of a simulation run.
type Result struct {
	Draws int
	Rows  []Row
}

// Run performs n draws against the oracle and tallies per-answer counts.
func Run(o *oracle.Oracle, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("draws must be positive, got %d", n)
	}
	counts := make(map[answer.Answer]int)
	for i := 0; i < n; i++ {
		counts[o.Ask().Answer]++
	}

	mass := o.Table().Mass()
	rows := make([]Row, 0, len(answer.Values()))
	for _, a := range answer.Values() {
		rows = append(rows, Row{
			Answer:   a,
			Expected: mass[a],
			Observed: 100 * float64(counts[a]) / float64(n),
			Count:    counts[a],
		})
	}
	return Result{Draws: n, Rows: rows}, nil
}
