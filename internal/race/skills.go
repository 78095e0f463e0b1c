package race

// Concrete skills for the reference roster, plus two generic ones used for
// skill-less competitors and for tuning experiments. Effect formulas are
// recorded in DESIGN.md; each one reads or writes race state only through
// the Context.

// RestrictedDie replaces the actor's die with one restricted to the faces
// {2,3}, trading the top face for a guaranteed floor.
type RestrictedDie struct {
	baseSkill
}

// NewRestrictedDie binds the skill to the roll phase.
func NewRestrictedDie(probability float64) (*RestrictedDie, error) {
	base, err := newBaseSkill("restricted_die", PhaseRoll, probability)
	if err != nil {
		return nil, err
	}
	return &RestrictedDie{baseSkill: base}, nil
}

func (s *RestrictedDie) Apply(ctx *Context) error {
	faces := [...]int{2, 3}
	return ctx.SetBaseRoll(faces[ctx.Rand().IntN(len(faces))])
}

// StragglerSurge grants +3 pending steps while the actor shares last
// place. Inactive on the opening turn.
type StragglerSurge struct {
	baseSkill
}

// NewStragglerSurge binds the skill to the post-roll phase.
func NewStragglerSurge(probability float64) (*StragglerSurge, error) {
	base, err := newBaseSkill("straggler_surge", PhasePostRoll, probability)
	if err != nil {
		return nil, err
	}
	return &StragglerSurge{baseSkill: base}, nil
}

func (s *StragglerSurge) Apply(ctx *Context) error {
	if ctx.FirstTurn() {
		return nil
	}
	if ctx.Actor.Position != ctx.Board.LastPlace() {
		return nil
	}
	steps, err := ctx.Steps()
	if err != nil {
		return err
	}
	return ctx.SetSteps(steps + 3)
}

// RiderBonus grants +1 pending step per competitor stacked on top of the
// actor; the riders stay behind. Inactive on the opening turn.
type RiderBonus struct {
	baseSkill
}

// NewRiderBonus binds the skill to the post-roll phase.
func NewRiderBonus(probability float64) (*RiderBonus, error) {
	base, err := newBaseSkill("rider_bonus", PhasePostRoll, probability)
	if err != nil {
		return nil, err
	}
	return &RiderBonus{baseSkill: base}, nil
}

func (s *RiderBonus) Apply(ctx *Context) error {
	if ctx.FirstTurn() {
		return nil
	}
	above, err := ctx.StackAbove(ctx.Actor)
	if err != nil {
		return err
	}
	if len(above) == 0 {
		return nil
	}
	steps, err := ctx.Steps()
	if err != nil {
		return err
	}
	return ctx.SetSteps(steps + len(above))
}

// DoubleCarry repeats the actor's movement a second time, carrying along
// everyone stacked on top of it so the pile arrives together. Inactive on
// the opening turn.
type DoubleCarry struct {
	baseSkill
}

// NewDoubleCarry binds the skill to the stacking phase, after base
// movement has been applied.
func NewDoubleCarry(probability float64) (*DoubleCarry, error) {
	base, err := newBaseSkill("double_carry", PhaseStacking, probability)
	if err != nil {
		return nil, err
	}
	return &DoubleCarry{baseSkill: base}, nil
}

func (s *DoubleCarry) Apply(ctx *Context) error {
	if ctx.FirstTurn() {
		return nil
	}
	taken, err := ctx.StepsTaken()
	if err != nil {
		return err
	}
	if taken <= 0 {
		return nil
	}
	riders, err := ctx.StackAbove(ctx.Actor)
	if err != nil {
		return err
	}
	if _, err := ctx.Move(ctx.Actor, taken); err != nil {
		return err
	}
	// Move riders in stack order so they land above the actor in the same
	// relative arrangement.
	for _, rider := range riders {
		if _, err := ctx.Move(rider, taken); err != nil {
			return err
		}
	}
	return nil
}

// SlipAhead lets the actor wriggle one square forward when buried beneath
// at least one competitor. Inactive on the opening turn.
type SlipAhead struct {
	baseSkill
}

// NewSlipAhead binds the skill to the collision phase.
func NewSlipAhead(probability float64) (*SlipAhead, error) {
	base, err := newBaseSkill("slip_ahead", PhaseCollision, probability)
	if err != nil {
		return nil, err
	}
	return &SlipAhead{baseSkill: base}, nil
}

func (s *SlipAhead) Apply(ctx *Context) error {
	if ctx.FirstTurn() {
		return nil
	}
	above, err := ctx.StackAbove(ctx.Actor)
	if err != nil {
		return err
	}
	if len(above) == 0 {
		return nil
	}
	_, err = ctx.Move(ctx.Actor, 1)
	return err
}

// TopOfStack lifts the actor to the top of its stack at the end of the
// turn when anyone is standing on it. Inactive on the opening turn.
type TopOfStack struct {
	baseSkill
}

// NewTopOfStack binds the skill to the post-turn phase.
func NewTopOfStack(probability float64) (*TopOfStack, error) {
	base, err := newBaseSkill("top_of_stack", PhasePostTurn, probability)
	if err != nil {
		return nil, err
	}
	return &TopOfStack{baseSkill: base}, nil
}

func (s *TopOfStack) Apply(ctx *Context) error {
	if ctx.FirstTurn() {
		return nil
	}
	return ctx.RaiseToTop(ctx.Actor)
}

// Surge adds a flat bonus to the actor's pending steps every turn. The
// bonus is a roster parameter, default 2.
type Surge struct {
	baseSkill
	bonus int
}

// NewSurge binds the skill to the post-roll phase.
func NewSurge(probability float64, bonus int) (*Surge, error) {
	base, err := newBaseSkill("surge", PhasePostRoll, probability)
	if err != nil {
		return nil, err
	}
	if bonus == 0 {
		bonus = 2
	}
	return &Surge{baseSkill: base, bonus: bonus}, nil
}

func (s *Surge) Apply(ctx *Context) error {
	steps, err := ctx.Steps()
	if err != nil {
		return err
	}
	return ctx.SetSteps(steps + s.bonus)
}

// Inert does nothing; it exists so every competitor can carry exactly one
// skill even when the roster gives it none.
type Inert struct {
	baseSkill
}

// NewInert returns a no-op skill parked on the pre-turn phase.
func NewInert() *Inert {
	return &Inert{baseSkill: baseSkill{name: "inert", phase: PhasePreTurn, probability: 0}}
}

func (s *Inert) Apply(ctx *Context) error { return nil }
