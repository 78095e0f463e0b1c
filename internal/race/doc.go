// Package race implements the core turn engine for a dice race.
//
// The main types are Resolver, which runs one turn of the race as a fixed
// sequence of ten phases, and Board, which tracks track geometry and the
// per-square stacking of competitors. Skills are polymorphic hooks bound to
// a single phase; the resolver dispatches them without knowing their
// concrete types.
//
// # Basic Usage
//
// Build a roster, a board, and run a single trial:
//
//	reg := race.NewRegistry()
//	skill, _ := reg.New("straggler_surge", 1.0, race.Params{})
//	c, _ := race.NewCompetitor("Calcharo", 1.28, skill)
//	board, _ := race.NewBoard(24)
//	outcome, err := race.Run(board, []*race.Competitor{c}, randutil.New(42), 10000, logger)
//
// # Determinism
//
// All randomness flows through the injected *rand.Rand: the movement roll,
// every skill probability draw, and any skill-internal draws. Two trials
// with the same seed and roster produce identical outcomes. Within a phase
// skills fire in roster order; simultaneous finishes resolve to the
// strictly greatest position, then the lowest roster index. There is no
// skill-defined ordering anywhere.
package race
