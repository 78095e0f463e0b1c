// Package statistics aggregates trial outcomes into per-competitor win
// counts and a turn-count distribution.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// TrialOutcome is the recorded result of a single race trial.
type TrialOutcome struct {
	Winner string // competitor who first reached the finish line
	Turns  int    // turns elapsed in the trial
	Seed   int64  // RNG seed for this trial (for replay)
}

// Result accumulates win counts across trials plus the distribution of
// turns-to-finish. It is safe for single-writer use only: parallel workers
// each fill their own Result and the partials are merged afterwards.
type Result struct {
	Trials    int
	WinCounts map[string]int

	TurnsSum  float64
	TurnsSum2 float64   // sum of squares for variance calculation
	Turns     []float64 // every trial's turn count, for median/percentiles
	MinTurns  int
	MaxTurns  int
}

// New returns an empty result. Any names given are seeded with zero wins
// so the aggregate always carries one entry per roster member, winners or
// not.
func New(names ...string) *Result {
	counts := make(map[string]int, len(names))
	for _, name := range names {
		counts[name] = 0
	}
	return &Result{WinCounts: counts}
}

// Add folds one trial outcome into the aggregate.
func (r *Result) Add(outcome TrialOutcome) {
	r.Trials++
	r.WinCounts[outcome.Winner]++

	turns := float64(outcome.Turns)
	r.TurnsSum += turns
	r.TurnsSum2 += turns * turns
	r.Turns = append(r.Turns, turns)
	if r.MinTurns == 0 || outcome.Turns < r.MinTurns {
		r.MinTurns = outcome.Turns
	}
	if outcome.Turns > r.MaxTurns {
		r.MaxTurns = outcome.Turns
	}
}

// Merge folds another result into this one. Used for the fork-join
// reduction after parallel workers finish.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Trials += other.Trials
	for name, wins := range other.WinCounts {
		r.WinCounts[name] += wins
	}
	r.TurnsSum += other.TurnsSum
	r.TurnsSum2 += other.TurnsSum2
	r.Turns = append(r.Turns, other.Turns...)
	if other.MinTurns > 0 && (r.MinTurns == 0 || other.MinTurns < r.MinTurns) {
		r.MinTurns = other.MinTurns
	}
	if other.MaxTurns > r.MaxTurns {
		r.MaxTurns = other.MaxTurns
	}
}

// WinRate returns wins/trials for the named competitor.
func (r *Result) WinRate(name string) float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.WinCounts[name]) / float64(r.Trials)
}

// MeanTurns returns the arithmetic mean of turns-to-finish.
func (r *Result) MeanTurns() float64 {
	if r.Trials == 0 {
		return 0
	}
	return r.TurnsSum / float64(r.Trials)
}

// VarianceTurns returns the sample variance of turns-to-finish.
func (r *Result) VarianceTurns() float64 {
	if r.Trials < 2 {
		return 0
	}
	mean := r.MeanTurns()
	return (r.TurnsSum2 - float64(r.Trials)*mean*mean) / float64(r.Trials-1)
}

// StdDevTurns returns the sample standard deviation of turns-to-finish.
func (r *Result) StdDevTurns() float64 {
	return math.Sqrt(r.VarianceTurns())
}

// StdErrorTurns returns the standard error of the mean turn count.
func (r *Result) StdErrorTurns() float64 {
	if r.Trials == 0 {
		return 0
	}
	return r.StdDevTurns() / math.Sqrt(float64(r.Trials))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
// turn count.
func (r *Result) ConfidenceInterval95() (float64, float64) {
	mean := r.MeanTurns()
	margin := 1.96 * r.StdErrorTurns()
	return mean - margin, mean + margin
}

// MedianTurns returns the median turns-to-finish.
func (r *Result) MedianTurns() float64 {
	if len(r.Turns) == 0 {
		return 0
	}
	sorted := make([]float64, len(r.Turns))
	copy(sorted, r.Turns)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// PercentileTurns returns the p-th percentile (p in [0,1]) of
// turns-to-finish, linearly interpolated.
func (r *Result) PercentileTurns(p float64) float64 {
	if len(r.Turns) == 0 {
		return 0
	}
	sorted := make([]float64, len(r.Turns))
	copy(sorted, r.Turns)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the aggregate invariant: every trial recorded exactly
// one winner, so win counts sum to the trial count.
func (r *Result) Validate() error {
	total := 0
	for _, wins := range r.WinCounts {
		total += wins
	}
	if total != r.Trials {
		return fmt.Errorf("win counts sum to %d but %d trials were recorded", total, r.Trials)
	}
	if len(r.Turns) != r.Trials {
		return fmt.Errorf("recorded %d turn counts for %d trials", len(r.Turns), r.Trials)
	}
	return nil
}
