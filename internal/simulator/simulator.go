// Package simulator drives batches of independent race trials and folds
// their outcomes into an aggregate result.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/oddsline/dicederby/internal/race"
	"github.com/oddsline/dicederby/internal/randutil"
	"github.com/oddsline/dicederby/internal/statistics"
)

const (
	defaultMaxTurns   = 10000
	defaultMaxRetries = 3
	progressEvery     = 1000
)

// BuildRoster produces a fresh, fully constructed roster from the
// immutable roster definition. The simulator calls it once per worker so
// parallel trials never share mutable competitor state; all configuration
// and validation errors surface here, before any trial runs.
type BuildRoster func() ([]*race.Competitor, error)

// Config holds configuration for running a batch of trials.
type Config struct {
	Trials      int
	Seed        int64
	BoardLength int

	// Workers > 1 runs trials on a fork-join worker pool; the aggregate is
	// identical to the sequential result for a fixed seed because each
	// trial's RNG derives from the trial index, not the worker.
	Workers int

	// MaxTurns is the per-trial safety bound; a trial that exceeds it is
	// retried with a freshly derived seed up to MaxRetries times before
	// the batch fails.
	MaxTurns   int
	MaxRetries int

	Logger *log.Logger
	Clock  quartz.Clock
}

// Simulator runs race trial batches.
type Simulator struct {
	config Config
	build  BuildRoster
}

// New creates a simulator. The roster builder is invoked lazily inside
// Run.
func New(config Config, build BuildRoster) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.MaxTurns <= 0 {
		config.MaxTurns = defaultMaxTurns
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = defaultMaxRetries
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	return &Simulator{config: config, build: build}
}

// Run executes the configured number of independent trials and returns the
// aggregate result. Trials share no mutable state; each gets a fresh board
// occupancy and competitor runtime state, and an independently seeded
// random source.
func (s *Simulator) Run(ctx context.Context) (*statistics.Result, error) {
	if s.config.Trials < 1 {
		return nil, fmt.Errorf("%w: trials must be at least 1, got %d", race.ErrValidation, s.config.Trials)
	}
	if s.build == nil {
		return nil, fmt.Errorf("%w: no roster builder supplied", race.ErrConfiguration)
	}

	start := s.config.Clock.Now()

	var result *statistics.Result
	var err error
	if s.config.Workers > 1 {
		result, err = s.runParallel(ctx)
	} else {
		result, err = s.runSequential(ctx)
	}
	if err != nil {
		return nil, err
	}

	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("aggregate validation failed: %w", err)
	}

	elapsed := s.config.Clock.Since(start)
	if elapsed > 0 {
		s.config.Logger.Info("simulation complete",
			"trials", result.Trials,
			"elapsed", elapsed,
			"trials_per_sec", float64(result.Trials)/elapsed.Seconds())
	}
	return result, nil
}

func (s *Simulator) runSequential(ctx context.Context) (*statistics.Result, error) {
	roster, board, err := s.setup()
	if err != nil {
		return nil, err
	}

	start := s.config.Clock.Now()
	result := statistics.New(rosterNames(roster)...)
	for trial := 0; trial < s.config.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outcome, err := s.runTrial(trial, board, roster)
		if err != nil {
			return nil, err
		}
		result.Add(outcome)

		if (trial+1)%progressEvery == 0 {
			elapsed := s.config.Clock.Since(start)
			s.config.Logger.Info("progress",
				"completed", trial+1,
				"total", s.config.Trials,
				"trials_per_sec", float64(trial+1)/elapsed.Seconds())
		}
	}
	return result, nil
}

// runParallel splits the trial range across workers. Each worker builds
// its own roster and board and fills its own partial result; partials are
// merged in worker order once every worker is done, so no accumulator is
// ever written concurrently.
func (s *Simulator) runParallel(ctx context.Context) (*statistics.Result, error) {
	workers := s.config.Workers
	if workers > s.config.Trials {
		workers = s.config.Trials
	}

	partials := make([]*statistics.Result, workers)
	g, ctx := errgroup.WithContext(ctx)

	per := s.config.Trials / workers
	extra := s.config.Trials % workers
	next := 0
	for w := 0; w < workers; w++ {
		count := per
		if w < extra {
			count++
		}
		first, last := next, next+count
		next = last

		g.Go(func() error {
			roster, board, err := s.setup()
			if err != nil {
				return err
			}
			partial := statistics.New(rosterNames(roster)...)
			for trial := first; trial < last; trial++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				outcome, err := s.runTrial(trial, board, roster)
				if err != nil {
					return err
				}
				partial.Add(outcome)
			}
			partials[w] = partial
			s.config.Logger.Debug("worker done", "worker", w, "trials", last-first)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := statistics.New()
	for _, partial := range partials {
		result.Merge(partial)
	}
	return result, nil
}

func rosterNames(roster []*race.Competitor) []string {
	names := make([]string, len(roster))
	for i, c := range roster {
		names[i] = c.Name
	}
	return names
}

// setup builds a fresh roster and board for one worker.
func (s *Simulator) setup() ([]*race.Competitor, *race.Board, error) {
	roster, err := s.build()
	if err != nil {
		return nil, nil, err
	}
	if err := race.ValidateRoster(roster); err != nil {
		return nil, nil, err
	}
	board, err := race.NewBoard(s.config.BoardLength)
	if err != nil {
		return nil, nil, err
	}
	return roster, board, nil
}

// runTrial runs one trial, retrying non-terminating configurations with a
// freshly derived seed. Any other failure aborts the batch: a skill
// attempting an invalid engine operation is a programming error and
// continuing would corrupt the aggregates.
func (s *Simulator) runTrial(trial int, board *race.Board, roster []*race.Competitor) (statistics.TrialOutcome, error) {
	for attempt := 0; ; attempt++ {
		seed := randutil.TrialSeed(s.config.Seed, trial, attempt)
		outcome, err := race.Run(board, roster, randutil.New(seed), s.config.MaxTurns, s.config.Logger)
		if err == nil {
			return statistics.TrialOutcome{Winner: outcome.Winner, Turns: outcome.Turns, Seed: seed}, nil
		}
		if !errors.Is(err, race.ErrNonTermination) || attempt >= s.config.MaxRetries {
			return statistics.TrialOutcome{}, fmt.Errorf("trial %d (seed %d): %w", trial, seed, err)
		}
		s.config.Logger.Warn("trial hit turn safety bound, retrying with fresh seed",
			"trial", trial, "seed", seed, "attempt", attempt+1)
	}
}
