package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "mapadmin/internal/errors"
)

// DefaultTokenTTL is how long an issued token stays valid when no TTL is configured.
const DefaultTokenTTL = time.Hour

// Identity is the account data carried by a token.
type Identity struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Avatar    string
	Role      string
}

// Claims represents JWT claims.
type Claims struct {
	AccountID string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Identity returns the account data of the claims.
func (c *Claims) Identity() Identity {
	return Identity{
		ID:        c.AccountID,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Avatar:    c.Avatar,
		Role:      c.Role,
	}
}

// TokenIssuer signs tokens for an identity.
type TokenIssuer interface {
	Issue(id Identity) (string, error)
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given secret and token lifetime.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs an HS256 token for the identity expiring after the configured TTL.
func (s *JWTService) Issue(id Identity) (string, error) {
	now := s.now()
	claims := &Claims{
		AccountID: id.ID,
		Email:     id.Email,
		FirstName: id.FirstName,
		LastName:  id.LastName,
		Avatar:    id.Avatar,
		Role:      id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates a token and returns its claims.
// Every failure, expiry included, is reported as ErrInvalidToken.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
