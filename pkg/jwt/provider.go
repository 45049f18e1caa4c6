package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const operatorTokenType = "operator"

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrMissingSubject   = errors.New("invalid subject")
)

// Provider issues and checks the HS256 tokens that guard operator routes,
// such as triggering a reply by hand.
type Provider struct {
	Secret string
	TTL    time.Duration
}

func NewProvider(secret string, ttl time.Duration) *Provider {
	return &Provider{
		Secret: secret,
		TTL:    ttl,
	}
}

func (p *Provider) GenerateOperatorToken(subject string) (string, error) {
	if subject == "" {
		return "", ErrMissingSubject
	}

	claims := jwt.MapClaims{
		"sub":  subject,
		"type": operatorTokenType,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(p.TTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(p.Secret))
}

// ParseOperatorToken validates signature, expiry and token type and returns
// the parsed token.
func (p *Provider) ParseOperatorToken(raw string) (*jwt.Token, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(p.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if claimType, ok := claims["type"].(string); !ok || claimType != operatorTokenType {
		return nil, ErrInvalidTokenType
	}
	if sub, err := claims.GetSubject(); err != nil || sub == "" {
		return nil, ErrMissingSubject
	}

	return token, nil
}
