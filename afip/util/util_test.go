package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugEnabled(t *testing.T) {

	assert.False(t, DebugEnabled())

	t.Setenv("AFIP_DEBUG", "true")
	assert.True(t, DebugEnabled())

	t.Setenv("AFIP_DEBUG", "0")
	assert.False(t, DebugEnabled())

	t.Setenv("AFIP_DEBUG", "not-a-bool")
	assert.False(t, DebugEnabled())
}

func TestGetEnvOrDefault(t *testing.T) {

	assert.Equal(t, "8080", GetEnvOrDefault("AFIP_TEST_PORT", "8080"))

	t.Setenv("AFIP_TEST_PORT", "3000")
	assert.Equal(t, "3000", GetEnvOrDefault("AFIP_TEST_PORT", "8080"))
}
