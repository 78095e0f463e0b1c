package race

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
)

// Outcome is the result of one completed trial. It is ephemeral: the
// simulator folds it into the aggregate result and discards it.
type Outcome struct {
	Winner string
	Turns  int
}

// ValidateRoster rejects empty rosters and duplicate competitor names
// before any trial begins.
func ValidateRoster(roster []*Competitor) error {
	if len(roster) == 0 {
		return fmt.Errorf("%w: roster is empty", ErrConfiguration)
	}
	seen := make(map[string]struct{}, len(roster))
	for _, c := range roster {
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: duplicate competitor name %q", ErrConfiguration, c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

// Run plays one complete trial: competitors and board are reset, then
// turns run until a terminal turn or the maxTurns safety bound. Exceeding
// the bound returns ErrNonTermination; the caller decides whether to retry
// with a fresh seed.
func Run(board *Board, roster []*Competitor, rng *rand.Rand, maxTurns int, logger *log.Logger, opts ...ResolverOption) (Outcome, error) {
	if err := ValidateRoster(roster); err != nil {
		return Outcome{}, err
	}
	if maxTurns <= 0 {
		return Outcome{}, fmt.Errorf("%w: max turns must be positive, got %d", ErrValidation, maxTurns)
	}

	for _, c := range roster {
		c.Reset()
	}
	board.Reset(roster)

	resolver := NewResolver(board, roster, rng, logger, opts...)
	for turn := 1; turn <= maxTurns; turn++ {
		winner, err := resolver.RunTurn()
		if err != nil {
			return Outcome{}, err
		}
		if winner != nil {
			return Outcome{Winner: winner.Name, Turns: turn}, nil
		}
	}
	return Outcome{}, fmt.Errorf("%w: no winner after %d turns", ErrNonTermination, maxTurns)
}
