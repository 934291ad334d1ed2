package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMalformed is returned when the token is not a parseable JWT.
	ErrTokenMalformed = errors.New("malformed token")

	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid is returned for signature mismatches and any other
	// verification failure.
	ErrTokenInvalid = errors.New("invalid token")
)

// Identity is the decoded subject of a verified token.
type Identity struct {
	UserID   string
	Username string
}

// Claims is the JWT payload: the user identity plus the registered time claims.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed bearer tokens. Tokens are
// stateless: validity is cryptographic and temporal only, with no server-side
// revocation list.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokenService creates a TokenService. An empty secret is a hard error;
// the caller must fail startup rather than sign with a guessable key.
func NewTokenService(secret string, lifetime time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("token service: signing secret must not be empty")
	}
	return &TokenService{secret: []byte(secret), lifetime: lifetime}, nil
}

// Issue signs a token for the given identity with the configured lifetime.
func (s *TokenService) Issue(userID, username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature and expiry of a raw token and returns the
// decoded identity. The distinct error values let callers log the failure
// mode; the HTTP boundary collapses them all into one generic 401.
func (s *TokenService) Verify(raw string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Identity{}, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, ErrTokenExpired
		default:
			return Identity{}, ErrTokenInvalid
		}
	}
	if !token.Valid {
		return Identity{}, ErrTokenInvalid
	}
	return Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
