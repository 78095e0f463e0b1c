package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBuiltins(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	for _, name := range []string{
		"restricted_die", "straggler_surge", "rider_bonus",
		"double_carry", "slip_ahead", "top_of_stack", "surge", "inert",
	} {
		skill, err := reg.New(name, 0.5, Params{})
		require.NoError(t, err, "building %q", name)
		assert.Equal(t, name, skill.Name())
		assert.True(t, skill.Phase().Valid())
	}
}

func TestRegistryUnknownSkill(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	_, err := reg.New("teleport", 0.5, Params{})
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestRegistryProbabilityValidation(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	_, err := reg.New("surge", -0.1, Params{})
	require.ErrorIs(t, err, ErrValidation)

	_, err = reg.New("surge", 1.01, Params{})
	require.ErrorIs(t, err, ErrValidation)

	// Boundary values are legal.
	_, err = reg.New("surge", 0, Params{})
	require.NoError(t, err)
	_, err = reg.New("surge", 1, Params{})
	require.NoError(t, err)
}

func TestRegistryDuplicateRegistration(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	err := reg.Register("surge", func(p float64, _ Params) (Skill, error) { return NewSurge(p, 1) })
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestRegistryNamesSorted(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	names := reg.Names()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "inert")
}
