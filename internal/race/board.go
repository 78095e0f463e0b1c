package race

import (
	"fmt"
	"slices"
)

// Board owns track geometry and per-square occupancy. Squares are indexed
// from 0; a competitor finishes when its position reaches or exceeds
// Length. Positions past Length are representable because overshoot breaks
// ties at the finish line.
//
// Multiple competitors may share a square ("stacking"); the order within a
// square matters for stack-dependent skills, with index 0 the bottom of
// the stack. The board only does occupancy bookkeeping: win conditions and
// skill eligibility belong to the Resolver.
type Board struct {
	Length int

	stacks map[int][]*Competitor
	roster []*Competitor
}

// NewBoard creates a board with the given finish threshold.
func NewBoard(length int) (*Board, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: board length must be positive, got %d", ErrValidation, length)
	}
	return &Board{
		Length: length,
		stacks: make(map[int][]*Competitor),
	}, nil
}

// Reset clears all occupancy and places the roster on square 0, stacked in
// roster order (first competitor at the bottom). Competitor positions are
// rewritten to match.
func (b *Board) Reset(roster []*Competitor) {
	clear(b.stacks)
	b.roster = slices.Clone(roster)
	start := make([]*Competitor, len(roster))
	copy(start, roster)
	b.stacks[0] = start
	for _, c := range roster {
		c.Position = 0
	}
}

// Move advances c by delta squares (negative delta regresses, clamped at
// square 0), removing it from its old stack and placing it on top of the
// stack at the new square. Competitors that stay behind keep their
// relative order. Returns the new position.
func (b *Board) Move(c *Competitor, delta int) (int, error) {
	if c == nil {
		return 0, fmt.Errorf("%w: move of nil competitor", ErrSkillExecution)
	}
	stack := b.stacks[c.Position]
	idx := slices.Index(stack, c)
	if idx < 0 {
		return 0, fmt.Errorf("%w: competitor %q not on board at position %d", ErrSkillExecution, c.Name, c.Position)
	}

	newPos := c.Position + delta
	if newPos < 0 {
		newPos = 0
	}
	if newPos == c.Position {
		return newPos, nil
	}

	b.stacks[c.Position] = slices.Delete(stack, idx, idx+1)
	c.Position = newPos
	b.stacks[newPos] = append(b.stacks[newPos], c)
	return newPos, nil
}

// OccupantsAt returns the competitors stacked on the given square, bottom
// first. The returned slice is a copy.
func (b *Board) OccupantsAt(pos int) []*Competitor {
	return slices.Clone(b.stacks[pos])
}

// HasFinished reports whether c has reached or passed the finish line.
func (b *Board) HasFinished(c *Competitor) bool {
	return c.Position >= b.Length
}

// StackIndex returns c's index within its stack, 0 being the bottom.
func (b *Board) StackIndex(c *Competitor) (int, error) {
	idx := slices.Index(b.stacks[c.Position], c)
	if idx < 0 {
		return 0, fmt.Errorf("%w: competitor %q not on board at position %d", ErrSkillExecution, c.Name, c.Position)
	}
	return idx, nil
}

// StackAbove returns the competitors stacked on top of c, bottom first.
func (b *Board) StackAbove(c *Competitor) ([]*Competitor, error) {
	idx, err := b.StackIndex(c)
	if err != nil {
		return nil, err
	}
	return slices.Clone(b.stacks[c.Position][idx+1:]), nil
}

// RaiseToTop moves c to the top of its own stack without changing its
// position. A no-op if c is already on top.
func (b *Board) RaiseToTop(c *Competitor) error {
	idx, err := b.StackIndex(c)
	if err != nil {
		return err
	}
	stack := b.stacks[c.Position]
	if idx == len(stack)-1 {
		return nil
	}
	stack = slices.Delete(stack, idx, idx+1)
	b.stacks[c.Position] = append(stack, c)
	return nil
}

// LastPlace returns the lowest occupied position.
func (b *Board) LastPlace() int {
	last := 0
	for i, c := range b.roster {
		if i == 0 || c.Position < last {
			last = c.Position
		}
	}
	return last
}
