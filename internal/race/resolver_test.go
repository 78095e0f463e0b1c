package race

import (
	rand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddsline/dicederby/internal/randutil"
)

// fixedRoll pins the die to a constant value so scenarios are exact.
func fixedRoll(v int) RollFunc {
	return func(*rand.Rand) int { return v }
}

func mustCompetitor(t *testing.T, name string, factor float64, skill Skill) *Competitor {
	t.Helper()
	c, err := NewCompetitor(name, factor, skill)
	require.NoError(t, err)
	return c
}

// referenceRoster builds the six-competitor reference configuration.
func referenceRoster(t *testing.T) []*Competitor {
	t.Helper()
	reg := NewRegistry()
	specs := []struct {
		name   string
		factor float64
		skill  string
		prob   float64
	}{
		{"Calcharo", 1.28, "straggler_surge", 1.0},
		{"Carlotta", 1.74, "double_carry", 0.28},
		{"Changli", 1.6, "slip_ahead", 0.65},
		{"Jinhsi", 1.1, "top_of_stack", 0.4},
		{"Camellya", 1.3, "rider_bonus", 0.5},
		{"Shorekeeper", 1.17, "restricted_die", 1.0},
	}
	roster := make([]*Competitor, 0, len(specs))
	for _, s := range specs {
		skill, err := reg.New(s.skill, s.prob, Params{})
		require.NoError(t, err)
		roster = append(roster, mustCompetitor(t, s.name, s.factor, skill))
	}
	return roster
}

func TestDeterministicTwoRunnerScenario(t *testing.T) {
	t.Parallel()
	// Board length 10, two skill-less competitors, a die pinned to 1:
	// both reach square 10 on turn 10 and the roster order breaks the tie.
	roster := []*Competitor{
		mustCompetitor(t, "First", 1.0, NewInert()),
		mustCompetitor(t, "Second", 1.0, NewInert()),
	}
	board, err := NewBoard(10)
	require.NoError(t, err)

	outcome, err := Run(board, roster, randutil.New(1), 100, nil, WithRollFunc(fixedRoll(1)))
	require.NoError(t, err)

	assert.Equal(t, "First", outcome.Winner)
	assert.Equal(t, 10, outcome.Turns)
	assert.Equal(t, 10, roster[0].Position)
	assert.Equal(t, 10, roster[1].Position)
}

func TestTieBreakPrefersGreatestPosition(t *testing.T) {
	t.Parallel()
	// Both cross on turn 1; the later roster entry overshoots further and
	// takes the win despite its roster position.
	roster := []*Competitor{
		mustCompetitor(t, "Exact", 10.0, NewInert()),
		mustCompetitor(t, "Overshoot", 11.0, NewInert()),
	}
	board, err := NewBoard(10)
	require.NoError(t, err)

	outcome, err := Run(board, roster, randutil.New(1), 10, nil, WithRollFunc(fixedRoll(1)))
	require.NoError(t, err)

	assert.Equal(t, "Overshoot", outcome.Winner)
	assert.Equal(t, 1, outcome.Turns)
	assert.Equal(t, 11, roster[1].Position)
}

func TestPositionsMonotoneWithoutRegressionSkills(t *testing.T) {
	t.Parallel()
	// None of the reference skills regresses a competitor, so positions
	// never decrease across turns.
	roster := referenceRoster(t)
	board, err := NewBoard(24)
	require.NoError(t, err)

	for _, c := range roster {
		c.Reset()
	}
	board.Reset(roster)
	resolver := NewResolver(board, roster, randutil.New(7), nil)

	prev := make([]int, len(roster))
	for turn := 0; turn < 200; turn++ {
		winner, err := resolver.RunTurn()
		require.NoError(t, err)
		for i, c := range roster {
			require.GreaterOrEqual(t, c.Position, prev[i],
				"%s regressed on turn %d", c.Name, resolver.Turn())
			prev[i] = c.Position
		}
		if winner != nil {
			return
		}
	}
	t.Fatal("race did not finish within 200 turns")
}

func TestWinnerCrossedTheLine(t *testing.T) {
	t.Parallel()
	roster := referenceRoster(t)
	board, err := NewBoard(24)
	require.NoError(t, err)

	for seed := int64(0); seed < 20; seed++ {
		outcome, err := Run(board, roster, randutil.New(seed), 1000, nil)
		require.NoError(t, err)

		var winner *Competitor
		for _, c := range roster {
			if c.Name == outcome.Winner {
				winner = c
			}
		}
		require.NotNil(t, winner)
		assert.GreaterOrEqual(t, winner.Position, board.Length, "seed %d", seed)
		for _, c := range roster {
			if c.Position > winner.Position {
				t.Errorf("seed %d: %s finished at %d, past winner %s at %d",
					seed, c.Name, c.Position, winner.Name, winner.Position)
			}
		}
	}
}

func TestSameSeedSameOutcome(t *testing.T) {
	t.Parallel()
	roster := referenceRoster(t)
	board, err := NewBoard(24)
	require.NoError(t, err)

	first, err := Run(board, roster, randutil.New(42), 1000, nil)
	require.NoError(t, err)
	second, err := Run(board, roster, randutil.New(42), 1000, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Winner, second.Winner)
	assert.Equal(t, first.Turns, second.Turns)
}

// probeSkill counts its Apply invocations.
type probeSkill struct {
	phase       Phase
	probability float64
	fired       int
}

func (s *probeSkill) Name() string            { return "probe" }
func (s *probeSkill) Phase() Phase            { return s.phase }
func (s *probeSkill) Probability() float64    { return s.probability }
func (s *probeSkill) Apply(ctx *Context) error { s.fired++; return nil }

func TestProbabilityBoundaries(t *testing.T) {
	t.Parallel()
	never := &probeSkill{phase: PhasePostRoll, probability: 0}
	always := &probeSkill{phase: PhasePostRoll, probability: 1}
	roster := []*Competitor{
		mustCompetitor(t, "Never", 1.0, never),
		mustCompetitor(t, "Always", 1.0, always),
	}
	board, err := NewBoard(5)
	require.NoError(t, err)

	totalTurns := 0
	for trial := 0; trial < 10000; trial++ {
		outcome, err := Run(board, roster, randutil.New(int64(trial)), 100, nil)
		require.NoError(t, err)
		totalTurns += outcome.Turns
	}

	assert.Zero(t, never.fired, "a probability-0 skill must never be invoked")
	// The post-roll phase is reached on every turn of every trial.
	assert.Equal(t, totalTurns, always.fired, "a probability-1 skill fires whenever its phase is reached")
}

// brokenSkill reaches for a competitor that is not on the board.
type brokenSkill struct{}

func (s *brokenSkill) Name() string         { return "broken" }
func (s *brokenSkill) Phase() Phase         { return PhaseStacking }
func (s *brokenSkill) Probability() float64 { return 1 }
func (s *brokenSkill) Apply(ctx *Context) error {
	ghost := &Competitor{Name: "Ghost", Position: 3}
	_, err := ctx.Move(ghost, 1)
	return err
}

func TestSkillErrorAbortsTrial(t *testing.T) {
	t.Parallel()
	roster := []*Competitor{
		mustCompetitor(t, "Broken", 1.0, &brokenSkill{}),
	}
	board, err := NewBoard(50)
	require.NoError(t, err)

	_, err = Run(board, roster, randutil.New(1), 100, nil)
	require.ErrorIs(t, err, ErrSkillExecution)
}

func TestRunHitsTurnSafetyBound(t *testing.T) {
	t.Parallel()
	roster := []*Competitor{
		mustCompetitor(t, "Slow", 1.0, NewInert()),
	}
	board, err := NewBoard(1000)
	require.NoError(t, err)

	_, err = Run(board, roster, randutil.New(1), 3, nil)
	require.ErrorIs(t, err, ErrNonTermination)
}

func TestValidateRoster(t *testing.T) {
	t.Parallel()
	require.ErrorIs(t, ValidateRoster(nil), ErrConfiguration)

	dup := []*Competitor{
		mustCompetitor(t, "Twin", 1.0, NewInert()),
		mustCompetitor(t, "Twin", 1.0, NewInert()),
	}
	require.ErrorIs(t, ValidateRoster(dup), ErrConfiguration)

	ok := []*Competitor{
		mustCompetitor(t, "Solo", 1.0, NewInert()),
	}
	require.NoError(t, ValidateRoster(ok))
}

func TestScaleSteps(t *testing.T) {
	t.Parallel()
	cases := []struct {
		base   int
		factor float64
		want   int
	}{
		{1, 1.0, 1},
		{3, 1.0, 3},
		{1, 1.28, 1},
		{2, 1.28, 3},
		{1, 1.74, 2},
		{3, 1.74, 5},
		{1, 0.1, 1}, // never below one square
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, scaleSteps(tc.base, tc.factor),
			"scaleSteps(%d, %v)", tc.base, tc.factor)
	}
}
