package race

import "errors"

// Sentinel errors for the four failure classes of the engine. Callers
// match them with errors.Is; constructors and the resolver wrap them with
// fmt.Errorf("%w: ...") to attach context.
var (
	// ErrConfiguration covers roster construction problems: an unknown
	// skill name, a duplicate competitor name, a duplicate registry entry.
	// Always raised before any trial begins.
	ErrConfiguration = errors.New("race: configuration error")

	// ErrValidation covers out-of-range values at construction time: a
	// probability outside [0,1], a non-positive underdog factor or board
	// length. Always raised before any trial begins.
	ErrValidation = errors.New("race: validation error")

	// ErrSkillExecution marks a skill hook attempting an invalid engine
	// operation mid-trial (nil competitor, competitor not on the board).
	// The trial aborts rather than continuing with corrupted state.
	ErrSkillExecution = errors.New("race: skill execution error")

	// ErrNonTermination marks a trial that exceeded the maximum-turn
	// safety bound without producing a winner.
	ErrNonTermination = errors.New("race: trial exceeded turn safety bound")
)
