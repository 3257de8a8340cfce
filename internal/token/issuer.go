package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload carried by an access token.
type Claims struct {
	UserID uint `json:"userId"`
	jwt.RegisteredClaims
}

// Issuer mints and decodes signed access tokens. The signing secret and
// token lifetime are injected at construction so there is no ambient state.
type Issuer struct {
	secret   []byte
	lifetime time.Duration
}

func NewIssuer(secret string, lifetime time.Duration) *Issuer {
	return &Issuer{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

// Issue creates a signed token for the given user with a fresh token ID.
func (i *Issuer) Issue(userID uint) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, err
	}

	return signed, claims, nil
}

// Decode verifies the signature and structure of a raw token and returns its
// claims. Expiry and revocation are deliberately not checked here; the auth
// middleware composes those checks on top.
func (i *Issuer) Decode(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, ErrInvalidToken
	}

	if !tok.Valid || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
