package race

import (
	"fmt"
	rand "math/rand/v2"
)

// Skill is a competitor capability bound to a single trigger phase. The
// resolver invokes Apply only when the current phase matches Phase() and
// an independent uniform draw falls within Probability(); a skill with
// probability 0 is never invoked at all. Skills observe and mutate race
// state exclusively through the Context and must not assume which other
// skills are present.
type Skill interface {
	Name() string
	Phase() Phase
	Probability() float64
	Apply(ctx *Context) error
}

// baseSkill carries the identity shared by every concrete skill. The
// trigger phase is fixed at construction and immutable thereafter.
type baseSkill struct {
	name        string
	phase       Phase
	probability float64
}

func newBaseSkill(name string, phase Phase, probability float64) (baseSkill, error) {
	if probability < 0 || probability > 1 {
		return baseSkill{}, fmt.Errorf("%w: probability for skill %q must be in [0,1], got %v", ErrValidation, name, probability)
	}
	if !phase.Valid() {
		return baseSkill{}, fmt.Errorf("%w: skill %q bound to unknown phase %d", ErrConfiguration, name, phase)
	}
	return baseSkill{name: name, phase: phase, probability: probability}, nil
}

func (s *baseSkill) Name() string         { return s.name }
func (s *baseSkill) Phase() Phase         { return s.phase }
func (s *baseSkill) Probability() float64 { return s.probability }

// Context is handed to Skill.Apply. It exposes the acting competitor, the
// board, the full roster in roster order and the current turn number, plus
// the pending roll state while it is mutable. All board mutations go
// through the context so an invalid operation surfaces ErrSkillExecution
// instead of corrupting occupancy.
type Context struct {
	Turn   int
	Phase  Phase
	Actor  *Competitor
	Board  *Board
	Roster []*Competitor

	resolver *Resolver
}

// FirstTurn reports whether the current turn is the opening turn of the
// trial. Several roster skills sit out the opening turn.
func (c *Context) FirstTurn() bool { return c.Turn == 1 }

// Rand returns the trial's random source for skill-internal draws.
func (c *Context) Rand() *rand.Rand { return c.resolver.rng }

// BaseRoll returns the actor's unscaled die value. Valid only during
// PhaseRoll, before the underdog scaling is applied.
func (c *Context) BaseRoll() (int, error) {
	if c.Phase != PhaseRoll {
		return 0, fmt.Errorf("%w: base roll read outside the roll phase (%s)", ErrSkillExecution, c.Phase)
	}
	return c.resolver.baseRolls[c.resolver.index(c.Actor)], nil
}

// SetBaseRoll overrides the actor's unscaled die value. Valid only during
// PhaseRoll.
func (c *Context) SetBaseRoll(v int) error {
	if c.Phase != PhaseRoll {
		return fmt.Errorf("%w: base roll override outside the roll phase (%s)", ErrSkillExecution, c.Phase)
	}
	if v < 1 {
		return fmt.Errorf("%w: base roll must be at least 1, got %d", ErrSkillExecution, v)
	}
	c.resolver.baseRolls[c.resolver.index(c.Actor)] = v
	return nil
}

// Steps returns the actor's pending movement for this turn. Valid from
// PhasePostRoll until movement is applied.
func (c *Context) Steps() (int, error) {
	if c.Phase != PhasePostRoll {
		return 0, fmt.Errorf("%w: pending steps read outside the post-roll phase (%s)", ErrSkillExecution, c.Phase)
	}
	return c.resolver.steps[c.resolver.index(c.Actor)], nil
}

// SetSteps replaces the actor's pending movement for this turn. Valid only
// during PhasePostRoll.
func (c *Context) SetSteps(v int) error {
	if c.Phase != PhasePostRoll {
		return fmt.Errorf("%w: pending steps write outside the post-roll phase (%s)", ErrSkillExecution, c.Phase)
	}
	c.resolver.steps[c.resolver.index(c.Actor)] = v
	return nil
}

// StepsTaken returns the movement the actor actually received during this
// turn's move phase. Valid from PhaseStacking onward.
func (c *Context) StepsTaken() (int, error) {
	if c.Phase < PhaseStacking {
		return 0, fmt.Errorf("%w: steps taken read before movement (%s)", ErrSkillExecution, c.Phase)
	}
	return c.resolver.taken[c.resolver.index(c.Actor)], nil
}

// Move moves any competitor on the board by delta squares, clamped at
// square 0, and returns the new position.
func (c *Context) Move(target *Competitor, delta int) (int, error) {
	return c.Board.Move(target, delta)
}

// StackAbove returns the competitors currently stacked on top of target.
func (c *Context) StackAbove(target *Competitor) ([]*Competitor, error) {
	return c.Board.StackAbove(target)
}

// RaiseToTop lifts target to the top of its stack.
func (c *Context) RaiseToTop(target *Competitor) error {
	return c.Board.RaiseToTop(target)
}
