package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

// TestEnvBindingForDashedFlags verifies SCANTOP_* environment variables
// reach every flag, including flags whose names contain dashes.
func TestEnvBindingForDashedFlags(t *testing.T) {
	t.Setenv("SCANTOP_WORKERS", "9")
	t.Setenv("SCANTOP_LOG_LEVEL", "debug")
	t.Setenv("SCANTOP_LOG_CAPACITY", "64")
	t.Setenv("SCANTOP_NO_BANNER", "true")

	newRootCmd()

	assert.Equal(t, 9, viper.GetInt("workers"))
	assert.Equal(t, "debug", viper.GetString("log-level"))
	assert.Equal(t, 64, viper.GetInt("log-capacity"))
	assert.True(t, viper.GetBool("no-banner"))
}
