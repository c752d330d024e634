package auth

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tedytech/backoffice-service/internal/config"
	apperrors "github.com/tedytech/backoffice-service/pkg/util"
)

// AccessGate exchanges the shared admin access code for a bearer token.
// There is no user directory; whoever holds the code is the trusted caller.
type AccessGate struct {
	codeHash string
	tokens   *TokenManager
}

// NewAccessGate constructs the gate.
func NewAccessGate(cfg config.AuthConfig) *AccessGate {
	return &AccessGate{
		codeHash: cfg.AccessCodeHash,
		tokens:   NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// TokenManager exposes the underlying token manager for middleware wiring.
func (g *AccessGate) TokenManager() *TokenManager {
	return g.tokens
}

// Exchange verifies the access code and issues a token.
func (g *AccessGate) Exchange(code string) (string, time.Time, error) {
	if g.codeHash == "" {
		return "", time.Time{}, apperrors.NewUnauthorized("access gate not configured")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(g.codeHash), []byte(code)); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid access code")
	}
	return g.tokens.GenerateToken()
}

// HashAccessCode hashes a plaintext access code with the configured cost.
// Used by operators to produce AUTH_ACCESS_CODE_HASH.
func HashAccessCode(code string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(code), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
