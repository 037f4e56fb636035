package testutil

import (
	"testing"

	"github.com/coolbreeze/coolbreeze-api/utils"
)

// TestJWTSecret is the session-signing secret used across test suites.
const TestJWTSecret = "test-secret"

// SessionTokenFor mints a real session token for the given id and role,
// signed with TestJWTSecret, so suites can exercise the actual guard
// middleware instead of faking the context.
func SessionTokenFor(t *testing.T, userID uint, role string) string {
	t.Helper()

	token, err := utils.NewSessionToken(userID, role, TestJWTSecret)
	if err != nil {
		t.Fatalf("Failed to mint session token: %v", err)
	}
	return token
}
