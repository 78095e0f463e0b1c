package race

import (
	"fmt"
	"sort"
)

// Params carries optional skill-specific parameters from roster
// configuration to a skill factory. Factories ignore fields they do not
// use.
type Params struct {
	// Bonus is the flat step bonus for the surge skill; 0 means the
	// skill's default.
	Bonus int
}

// Factory constructs a skill from configuration values. Factories validate
// the probability range and return ErrValidation on violations.
type Factory func(probability float64, params Params) (Skill, error)

// Registry maps skill names to factories so roster configuration can name
// skills declaratively. It is consulted only at roster-construction time;
// the trial loop holds concrete Skill instances and never looks here. The
// registry is an explicit object handed to roster-building code, not a
// process-wide singleton.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a registry pre-loaded with the built-in skills.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	builtins := map[string]Factory{
		"restricted_die":  func(p float64, _ Params) (Skill, error) { return NewRestrictedDie(p) },
		"straggler_surge": func(p float64, _ Params) (Skill, error) { return NewStragglerSurge(p) },
		"rider_bonus":     func(p float64, _ Params) (Skill, error) { return NewRiderBonus(p) },
		"double_carry":    func(p float64, _ Params) (Skill, error) { return NewDoubleCarry(p) },
		"slip_ahead":      func(p float64, _ Params) (Skill, error) { return NewSlipAhead(p) },
		"top_of_stack":    func(p float64, _ Params) (Skill, error) { return NewTopOfStack(p) },
		"surge":           func(p float64, params Params) (Skill, error) { return NewSurge(p, params.Bonus) },
		"inert":           func(_ float64, _ Params) (Skill, error) { return NewInert(), nil },
	}
	for name, f := range builtins {
		if err := r.Register(name, f); err != nil {
			// Built-in names are unique by construction.
			panic(err)
		}
	}
	return r
}

// Register adds a factory under name. Registering a name twice is a
// configuration error.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" {
		return fmt.Errorf("%w: skill name must not be empty", ErrConfiguration)
	}
	if f == nil {
		return fmt.Errorf("%w: nil factory for skill %q", ErrConfiguration, name)
	}
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("%w: skill %q already registered", ErrConfiguration, name)
	}
	r.factories[name] = f
	return nil
}

// New constructs a skill by registry name. Unknown names are a
// configuration error; out-of-range probabilities surface the factory's
// validation error. Both fire before any trial begins.
func (r *Registry) New(name string, probability float64, params Params) (Skill, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown skill %q", ErrConfiguration, name)
	}
	return f(probability, params)
}

// Names returns the registered skill names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
