package race

import (
	"errors"
	"fmt"
	"io"
	"math"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
)

// RollFunc draws one unscaled die value for a competitor. The default die
// is uniform over {1,2,3}; tests and experiments may substitute their own.
type RollFunc func(rng *rand.Rand) int

// DefaultRoll is the reference die, uniform over {1,2,3}.
func DefaultRoll(rng *rand.Rand) int {
	return 1 + rng.IntN(3)
}

// ResolverOption customises a Resolver at construction.
type ResolverOption func(*Resolver)

// WithRollFunc replaces the movement die.
func WithRollFunc(f RollFunc) ResolverOption {
	return func(r *Resolver) { r.roll = f }
}

// Resolver runs single turns of the race as the fixed ten-phase sequence.
//
// Engine work is attached to three phases: at PhaseRoll each competitor
// receives a die value (drawn before roll-phase skills dispatch, so those
// skills may override it) which is then scaled by the underdog factor; at
// PhaseMove every competitor moves its pending steps in roster order; at
// PhaseAdjudicate, after adjudicate-phase skills dispatch, the resolver
// checks for a finisher. A terminal turn ends at phase nine; the post-turn
// phase of a decided race never runs.
//
// At every phase, matching skills dispatch in roster order, each gated by
// an independent uniform draw against its probability. A probability of 0
// is never invoked, a probability of 1 always is (neither consumes a
// random draw). If several competitors cross the line on the same turn the
// winner is the one with the strictly greatest position, ties broken by
// the lowest roster index.
type Resolver struct {
	board  *Board
	roster []*Competitor
	rng    *rand.Rand
	logger *log.Logger
	roll   RollFunc

	turn      int
	baseRolls []int
	steps     []int
	taken     []int
	indexes   map[*Competitor]int
}

// NewResolver wires a resolver to a board and roster. The rng drives every
// random draw of the trial: movement dice, probability gates and
// skill-internal draws.
func NewResolver(board *Board, roster []*Competitor, rng *rand.Rand, logger *log.Logger, opts ...ResolverOption) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := &Resolver{
		board:     board,
		roster:    roster,
		rng:       rng,
		logger:    logger,
		roll:      DefaultRoll,
		baseRolls: make([]int, len(roster)),
		steps:     make([]int, len(roster)),
		taken:     make([]int, len(roster)),
		indexes:   make(map[*Competitor]int, len(roster)),
	}
	for i, c := range roster {
		r.indexes[c] = i
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Turn returns the number of completed or in-progress turns.
func (r *Resolver) Turn() int { return r.turn }

// RunTurn advances the race by exactly one turn. It returns the winner
// once a terminal turn occurs, or nil while the race continues.
func (r *Resolver) RunTurn() (*Competitor, error) {
	r.turn++
	for i := range r.taken {
		r.taken[i] = 0
	}

	for _, phase := range Phases() {
		switch phase {
		case PhaseRoll:
			for i := range r.roster {
				r.baseRolls[i] = r.roll(r.rng)
			}
			if err := r.dispatch(phase); err != nil {
				return nil, err
			}
			for i, c := range r.roster {
				r.steps[i] = scaleSteps(r.baseRolls[i], c.UnderdogFactor)
			}

		case PhaseMove:
			for i, c := range r.roster {
				pos, err := r.board.Move(c, r.steps[i])
				if err != nil {
					return nil, err
				}
				r.taken[i] = r.steps[i]
				r.logger.Debug("moved", "turn", r.turn, "competitor", c.Name, "steps", r.steps[i], "position", pos)
			}
			if err := r.dispatch(phase); err != nil {
				return nil, err
			}

		case PhaseAdjudicate:
			if err := r.dispatch(phase); err != nil {
				return nil, err
			}
			if winner := r.adjudicate(); winner != nil {
				r.logger.Debug("race decided", "turn", r.turn, "winner", winner.Name, "position", winner.Position)
				return winner, nil
			}

		default:
			if err := r.dispatch(phase); err != nil {
				return nil, err
			}
		}
	}
	return nil, nil
}

// dispatch invokes every skill bound to phase, in roster order, gated by
// its probability.
func (r *Resolver) dispatch(phase Phase) error {
	for _, c := range r.roster {
		sk := c.Skill
		if sk.Phase() != phase {
			continue
		}
		p := sk.Probability()
		if p <= 0 {
			continue
		}
		if p < 1 && r.rng.Float64() >= p {
			continue
		}
		ctx := &Context{
			Turn:     r.turn,
			Phase:    phase,
			Actor:    c,
			Board:    r.board,
			Roster:   r.roster,
			resolver: r,
		}
		if err := sk.Apply(ctx); err != nil {
			if !errors.Is(err, ErrSkillExecution) {
				err = fmt.Errorf("%w: %w", ErrSkillExecution, err)
			}
			return fmt.Errorf("skill %q (%s) on turn %d: %w", sk.Name(), c.Name, r.turn, err)
		}
		r.logger.Debug("skill fired", "turn", r.turn, "phase", phase.String(), "competitor", c.Name, "skill", sk.Name())
	}
	return nil
}

// adjudicate returns the winner of a terminal turn, or nil. The strictly
// greatest position wins; on equal positions the earliest roster index
// prevails because the scan never replaces on a tie.
func (r *Resolver) adjudicate() *Competitor {
	var winner *Competitor
	for _, c := range r.roster {
		if !r.board.HasFinished(c) {
			continue
		}
		if winner == nil || c.Position > winner.Position {
			winner = c
		}
	}
	return winner
}

// index maps a roster competitor to its fixed roster position.
func (r *Resolver) index(c *Competitor) int {
	return r.indexes[c]
}

// scaleSteps converts an unscaled die value into movement: the roll times
// the underdog factor, rounded half away from zero, never below one
// square.
func scaleSteps(base int, factor float64) int {
	steps := int(math.Round(float64(base) * factor))
	if steps < 1 {
		steps = 1
	}
	return steps
}
