package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_SubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["evaluate"])
	assert.True(t, names["serve"])
}

func TestEvaluateCommand_FlagDefaults(t *testing.T) {
	flags := evaluateCmd.Flags()

	unit, err := flags.GetString("age-unit")
	require.NoError(t, err)
	assert.Equal(t, "years", unit)

	// Numeric inputs default to zero so a forgotten flag fails validation
	// instead of silently computing on a made-up patient.
	w, err := flags.GetFloat64("weight")
	require.NoError(t, err)
	assert.Equal(t, 0.0, w)

	d, err := flags.GetFloat64("dose")
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("log-level"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("ranges"))
}
