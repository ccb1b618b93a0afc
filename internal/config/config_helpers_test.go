package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestGetEnvAsInt tests the getEnvAsInt helper function
func TestGetEnvAsInt(t *testing.T) {
	t.Run("returns default value when env var not set", func(t *testing.T) {
		os.Unsetenv("TEST_INT_VAR")
		result := getEnvAsInt("TEST_INT_VAR", 42)
		assert.Equal(t, 42, result)
	})

	t.Run("parses valid integer from env var", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "100")
		result := getEnvAsInt("TEST_INT_VAR", 42)
		assert.Equal(t, 100, result)
	})

	t.Run("returns default for invalid integer", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "not-a-number")
		result := getEnvAsInt("TEST_INT_VAR", 42)
		assert.Equal(t, 42, result, "Should return default for invalid integer")
	})

	t.Run("parses negative integers", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "-10")
		result := getEnvAsInt("TEST_INT_VAR", 42)
		assert.Equal(t, -10, result)
	})

	t.Run("parses zero", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "0")
		result := getEnvAsInt("TEST_INT_VAR", 42)
		assert.Equal(t, 0, result)
	})

	t.Run("returns default for float values", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "42.5")
		result := getEnvAsInt("TEST_INT_VAR", 10)
		assert.Equal(t, 10, result, "Should return default for float values")
	})

	t.Run("returns default for empty string", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "")
		result := getEnvAsInt("TEST_INT_VAR", 42)
		assert.Equal(t, 42, result)
	})
}

// TestGetEnvAsBool tests the getEnvAsBool helper function
func TestGetEnvAsBool(t *testing.T) {
	t.Run("returns default value when env var not set", func(t *testing.T) {
		os.Unsetenv("TEST_BOOL_VAR")
		assert.True(t, getEnvAsBool("TEST_BOOL_VAR", true))
		assert.False(t, getEnvAsBool("TEST_BOOL_VAR", false))
	})

	t.Run("parses true values", func(t *testing.T) {
		for _, v := range []string{"true", "1", "TRUE", "t"} {
			t.Setenv("TEST_BOOL_VAR", v)
			assert.True(t, getEnvAsBool("TEST_BOOL_VAR", false), "value %q", v)
		}
	})

	t.Run("parses false values", func(t *testing.T) {
		for _, v := range []string{"false", "0", "FALSE", "f"} {
			t.Setenv("TEST_BOOL_VAR", v)
			assert.False(t, getEnvAsBool("TEST_BOOL_VAR", true), "value %q", v)
		}
	})

	t.Run("returns default for invalid values", func(t *testing.T) {
		t.Setenv("TEST_BOOL_VAR", "yes-please")
		assert.True(t, getEnvAsBool("TEST_BOOL_VAR", true))
	})
}

// TestGetEnvAsDuration tests the getEnvAsDuration helper function
func TestGetEnvAsDuration(t *testing.T) {
	t.Run("returns default value when env var not set", func(t *testing.T) {
		os.Unsetenv("TEST_DURATION_VAR")
		result := getEnvAsDuration("TEST_DURATION_VAR", 5*time.Minute)
		assert.Equal(t, 5*time.Minute, result)
	})

	t.Run("parses valid duration from env var", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "10m")
		result := getEnvAsDuration("TEST_DURATION_VAR", 5*time.Minute)
		assert.Equal(t, 10*time.Minute, result)
	})

	t.Run("parses seconds", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "30s")
		result := getEnvAsDuration("TEST_DURATION_VAR", 5*time.Minute)
		assert.Equal(t, 30*time.Second, result)
	})

	t.Run("parses complex duration", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "1h30m45s")
		result := getEnvAsDuration("TEST_DURATION_VAR", 5*time.Minute)
		expected := 1*time.Hour + 30*time.Minute + 45*time.Second
		assert.Equal(t, expected, result)
	})

	t.Run("returns default for invalid duration", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "not-a-duration")
		result := getEnvAsDuration("TEST_DURATION_VAR", 5*time.Minute)
		assert.Equal(t, 5*time.Minute, result, "Should return default for invalid duration")
	})

	t.Run("returns default for plain numbers without unit", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "100")
		result := getEnvAsDuration("TEST_DURATION_VAR", 5*time.Minute)
		assert.Equal(t, 5*time.Minute, result, "Should return default for numbers without unit")
	})

	t.Run("returns default for empty string", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "")
		result := getEnvAsDuration("TEST_DURATION_VAR", 5*time.Minute)
		assert.Equal(t, 5*time.Minute, result)
	})
}
