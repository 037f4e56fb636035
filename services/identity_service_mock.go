package services

import (
	"context"
	"fmt"
	"sync"
)

// MockIdentityVerifier is a mock implementation of IdentityVerifier for testing
type MockIdentityVerifier struct {
	identities map[string]*Identity // map of token string to identity
	mu         sync.RWMutex
}

// NewMockIdentityVerifier creates a new mock identity verifier
func NewMockIdentityVerifier() *MockIdentityVerifier {
	return &MockIdentityVerifier{
		identities: make(map[string]*Identity),
	}
}

// SetAsMockForTesting sets this mock as the global identity verifier instance for testing
func (m *MockIdentityVerifier) SetAsMockForTesting() {
	SetIdentityVerifier(m)
}

// AddIdentity registers a token string that will verify to the given identity
func (m *MockIdentityVerifier) AddIdentity(token string, identity *Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identities[token] = identity
}

// Verify returns the identity registered for the token, or an error to
// simulate a token the provider rejects.
func (m *MockIdentityVerifier) Verify(ctx context.Context, identityToken string) (*Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	identity, ok := m.identities[identityToken]
	if !ok {
		return nil, fmt.Errorf("identity token validation failed: unknown token")
	}
	return identity, nil
}
