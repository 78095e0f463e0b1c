package race

import "fmt"

// Competitor is one runner in the race: a unique name, an underdog factor
// biasing its movement rolls, and exactly one bound skill. Competitors are
// constructed once per roster definition and reused across trials; Reset
// clears the transient race state at the start of each trial.
type Competitor struct {
	Name           string
	UnderdogFactor float64
	Skill          Skill

	// Position is the current square. Mutated only by the Resolver and by
	// skill hooks going through the Board.
	Position int
}

// NewCompetitor validates the underdog factor and binds the skill. A nil
// skill is rejected; use an Inert skill for competitors without one.
func NewCompetitor(name string, underdogFactor float64, skill Skill) (*Competitor, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: competitor name must not be empty", ErrValidation)
	}
	if underdogFactor <= 0 {
		return nil, fmt.Errorf("%w: underdog factor for %q must be positive, got %v", ErrValidation, name, underdogFactor)
	}
	if skill == nil {
		return nil, fmt.Errorf("%w: competitor %q has no skill bound", ErrConfiguration, name)
	}
	return &Competitor{
		Name:           name,
		UnderdogFactor: underdogFactor,
		Skill:          skill,
	}, nil
}

// Reset returns the competitor to its pre-race state: square 0 and any
// skill-internal counters cleared.
func (c *Competitor) Reset() {
	c.Position = 0
	if r, ok := c.Skill.(interface{ Reset() }); ok {
		r.Reset()
	}
}

func (c *Competitor) String() string {
	return c.Name
}
