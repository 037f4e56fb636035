package config

import (
	"fmt"
	"os"
	"testing"
)

// TestMain runs before all tests in the config package
// It ensures GO_ENV is set to "test" to prevent accidental data loss
func TestMain(m *testing.M) {
	env := os.Getenv("GO_ENV")
	if env != "test" {
		if err := os.Setenv("GO_ENV", "test"); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to set GO_ENV=test: %v\n", err)
			os.Exit(1)
		}
	}

	os.Exit(m.Run())
}
