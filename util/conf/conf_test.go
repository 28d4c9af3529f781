package conf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	c, err := Read(strings.NewReader("# labels\nSBJ\n\nOBJ \nNMOD"))
	require.NoError(t, err)
	assert.Equal(t, []string{"SBJ", "OBJ", "NMOD"}, c.Values)
}

func TestReadTraining(t *testing.T) {
	training, err := ReadTraining(strings.NewReader(`
iterations: 15
rule: pa
extended features: true
`))
	require.NoError(t, err)
	assert.Equal(t, 15, training.Iterations)
	assert.Equal(t, "pa", training.Rule)
	assert.True(t, training.Extended)
	// untouched settings keep their defaults
	assert.Equal(t, 0.1, training.Aggressiveness)
	assert.False(t, training.Intermediate)
}

func TestReadTrainingEmpty(t *testing.T) {
	training, err := ReadTraining(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultTraining(), training)
}

func TestReadTrainingErrors(t *testing.T) {
	_, err := ReadTraining(strings.NewReader("iterations: many\n"))
	assert.Error(t, err)

	_, err = ReadTraining(strings.NewReader("beam size: 4\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = ReadTraining(strings.NewReader("iterations: -1\n"))
	assert.Error(t, err)

	_, err = ReadTrainingFile("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestTrainingString(t *testing.T) {
	assert.Contains(t, DefaultTraining().String(), "iterations: 10")
}
