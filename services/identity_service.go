package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/coolbreeze/coolbreeze-api/config"
)

// Identity is the verified result of an identity token: proof that the
// caller controls an email address, plus their display name.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// IdentityVerifier validates identity tokens from the external identity
// provider. Verification failure means the token is missing, malformed,
// expired, or not signed by the provider.
type IdentityVerifier interface {
	Verify(ctx context.Context, identityToken string) (*Identity, error)
}

var identityVerifierInstance IdentityVerifier

// identityClaims contains the profile data we need from the token.
type identityClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Validate does nothing for this example, but we need
// it to satisfy validator.CustomClaims interface.
func (c identityClaims) Validate(ctx context.Context) error {
	return nil
}

// JWKSIdentityVerifier verifies identity tokens against the provider's
// published signing keys.
type JWKSIdentityVerifier struct {
	validator *validator.Validator
}

// InitIdentityVerifier builds the production verifier from the
// configured identity issuer and audience.
func InitIdentityVerifier(cfg *config.Config) (IdentityVerifier, error) {
	issuerURL, err := url.Parse(cfg.IdentityIssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse the identity issuer url: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{cfg.IdentityAudience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &identityClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the identity token validator: %w", err)
	}

	identityVerifierInstance = &JWKSIdentityVerifier{validator: jwtValidator}
	return identityVerifierInstance, nil
}

// GetIdentityVerifier returns the initialized identity verifier instance
func GetIdentityVerifier() IdentityVerifier {
	return identityVerifierInstance
}

// SetIdentityVerifier sets the identity verifier instance (primarily for testing)
func SetIdentityVerifier(v IdentityVerifier) {
	identityVerifierInstance = v
}

// Verify validates the raw identity token and extracts the caller's
// email and display name from its claims.
func (v *JWKSIdentityVerifier) Verify(ctx context.Context, identityToken string) (*Identity, error) {
	claims, err := v.validator.ValidateToken(ctx, identityToken)
	if err != nil {
		return nil, fmt.Errorf("identity token validation failed: %w", err)
	}

	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type from identity token")
	}

	custom, ok := validated.CustomClaims.(*identityClaims)
	if !ok || custom.Email == "" {
		return nil, fmt.Errorf("identity token carries no email claim")
	}

	return &Identity{
		Subject: validated.RegisteredClaims.Subject,
		Email:   custom.Email,
		Name:    custom.Name,
	}, nil
}
