package race

import (
	"errors"
	"testing"
)

func testCompetitor(t *testing.T, name string) *Competitor {
	t.Helper()
	c, err := NewCompetitor(name, 1.0, NewInert())
	if err != nil {
		t.Fatalf("NewCompetitor(%q): %v", name, err)
	}
	return c
}

func testBoard(t *testing.T, length int, roster ...*Competitor) *Board {
	t.Helper()
	b, err := NewBoard(length)
	if err != nil {
		t.Fatalf("NewBoard(%d): %v", length, err)
	}
	b.Reset(roster)
	return b
}

func TestBoardResetStacksRosterInOrder(t *testing.T) {
	t.Parallel()
	a, b, c := testCompetitor(t, "A"), testCompetitor(t, "B"), testCompetitor(t, "C")
	board := testBoard(t, 10, a, b, c)

	stack := board.OccupantsAt(0)
	if len(stack) != 3 {
		t.Fatalf("expected 3 competitors on square 0, got %d", len(stack))
	}
	for i, want := range []*Competitor{a, b, c} {
		if stack[i] != want {
			t.Errorf("square 0 index %d: expected %s, got %s", i, want.Name, stack[i].Name)
		}
	}
	for _, comp := range []*Competitor{a, b, c} {
		if comp.Position != 0 {
			t.Errorf("%s position = %d, expected 0", comp.Name, comp.Position)
		}
	}
}

func TestBoardMoveUpdatesOccupancy(t *testing.T) {
	t.Parallel()
	a, b, c := testCompetitor(t, "A"), testCompetitor(t, "B"), testCompetitor(t, "C")
	board := testBoard(t, 10, a, b, c)

	pos, err := board.Move(b, 3)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if pos != 3 || b.Position != 3 {
		t.Errorf("expected B at 3, got pos=%d position=%d", pos, b.Position)
	}

	// The competitors left behind keep their relative order.
	left := board.OccupantsAt(0)
	if len(left) != 2 || left[0] != a || left[1] != c {
		t.Errorf("square 0 should hold [A C] in order, got %v", left)
	}
	if got := board.OccupantsAt(3); len(got) != 1 || got[0] != b {
		t.Errorf("square 3 should hold [B], got %v", got)
	}
}

func TestBoardMoveLandsOnTopOfStack(t *testing.T) {
	t.Parallel()
	a, b := testCompetitor(t, "A"), testCompetitor(t, "B")
	board := testBoard(t, 10, a, b)

	if _, err := board.Move(a, 4); err != nil {
		t.Fatal(err)
	}
	if _, err := board.Move(b, 4); err != nil {
		t.Fatal(err)
	}

	stack := board.OccupantsAt(4)
	if len(stack) != 2 || stack[0] != a || stack[1] != b {
		t.Errorf("expected [A B] at square 4 with B on top, got %v", stack)
	}
	idx, err := board.StackIndex(b)
	if err != nil || idx != 1 {
		t.Errorf("StackIndex(B) = %d, %v; expected 1", idx, err)
	}
	above, err := board.StackAbove(a)
	if err != nil || len(above) != 1 || above[0] != b {
		t.Errorf("StackAbove(A) = %v, %v; expected [B]", above, err)
	}
}

func TestBoardMoveClampsAtZero(t *testing.T) {
	t.Parallel()
	a := testCompetitor(t, "A")
	board := testBoard(t, 10, a)

	if _, err := board.Move(a, 2); err != nil {
		t.Fatal(err)
	}
	pos, err := board.Move(a, -5)
	if err != nil {
		t.Fatal(err)
	}
	if pos != 0 || a.Position != 0 {
		t.Errorf("regression past square 0 should clamp, got %d", pos)
	}
}

func TestBoardHasFinished(t *testing.T) {
	t.Parallel()
	a := testCompetitor(t, "A")
	board := testBoard(t, 5, a)

	if board.HasFinished(a) {
		t.Error("fresh competitor should not be finished")
	}
	if _, err := board.Move(a, 5); err != nil {
		t.Fatal(err)
	}
	if !board.HasFinished(a) {
		t.Error("competitor at the finish threshold should be finished")
	}
	if _, err := board.Move(a, 3); err != nil {
		t.Fatal(err)
	}
	if !board.HasFinished(a) {
		t.Error("overshoot past the line should stay finished")
	}
}

func TestBoardRaiseToTop(t *testing.T) {
	t.Parallel()
	a, b, c := testCompetitor(t, "A"), testCompetitor(t, "B"), testCompetitor(t, "C")
	board := testBoard(t, 10, a, b, c)

	if err := board.RaiseToTop(a); err != nil {
		t.Fatal(err)
	}
	stack := board.OccupantsAt(0)
	if stack[0] != b || stack[1] != c || stack[2] != a {
		t.Errorf("expected [B C A] after raising A, got %v", stack)
	}

	// Raising the top competitor is a no-op.
	if err := board.RaiseToTop(a); err != nil {
		t.Fatal(err)
	}
	if got := board.OccupantsAt(0); got[2] != a {
		t.Errorf("A should remain on top, got %v", got)
	}
}

func TestBoardLastPlace(t *testing.T) {
	t.Parallel()
	a, b := testCompetitor(t, "A"), testCompetitor(t, "B")
	board := testBoard(t, 10, a, b)

	if lp := board.LastPlace(); lp != 0 {
		t.Errorf("LastPlace = %d, expected 0", lp)
	}
	if _, err := board.Move(a, 6); err != nil {
		t.Fatal(err)
	}
	if lp := board.LastPlace(); lp != 0 {
		t.Errorf("LastPlace = %d, expected 0 while B remains at the start", lp)
	}
	if _, err := board.Move(b, 2); err != nil {
		t.Fatal(err)
	}
	if lp := board.LastPlace(); lp != 2 {
		t.Errorf("LastPlace = %d, expected 2", lp)
	}
}

func TestBoardMoveUnknownCompetitor(t *testing.T) {
	t.Parallel()
	a := testCompetitor(t, "A")
	board := testBoard(t, 10, a)

	ghost := testCompetitor(t, "Ghost")
	if _, err := board.Move(ghost, 1); !errors.Is(err, ErrSkillExecution) {
		t.Errorf("moving an untracked competitor should be a skill execution error, got %v", err)
	}
	if _, err := board.Move(nil, 1); !errors.Is(err, ErrSkillExecution) {
		t.Errorf("moving nil should be a skill execution error, got %v", err)
	}
}

func TestNewBoardValidation(t *testing.T) {
	t.Parallel()
	if _, err := NewBoard(0); !errors.Is(err, ErrValidation) {
		t.Errorf("zero-length board should fail validation, got %v", err)
	}
	if _, err := NewBoard(-3); !errors.Is(err, ErrValidation) {
		t.Errorf("negative-length board should fail validation, got %v", err)
	}
}
