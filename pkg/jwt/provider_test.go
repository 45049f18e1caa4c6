package jwt_test

import (
	"testing"
	"time"

	"moviebot/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorToken(t *testing.T) {
	p := jwt.NewProvider("secret", time.Hour)

	t.Run("round trip", func(t *testing.T) {
		raw, err := p.GenerateOperatorToken("ops")
		require.NoError(t, err)

		token, err := p.ParseOperatorToken(raw)

		require.NoError(t, err)
		sub, err := token.Claims.GetSubject()
		require.NoError(t, err)
		assert.Equal(t, "ops", sub)
	})

	t.Run("requires a subject", func(t *testing.T) {
		_, err := p.GenerateOperatorToken("")
		assert.ErrorIs(t, err, jwt.ErrMissingSubject)
	})

	t.Run("rejects another secret", func(t *testing.T) {
		raw, err := jwt.NewProvider("other", time.Hour).GenerateOperatorToken("ops")
		require.NoError(t, err)

		_, err = p.ParseOperatorToken(raw)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		raw, err := jwt.NewProvider("secret", -time.Minute).GenerateOperatorToken("ops")
		require.NoError(t, err)

		_, err = p.ParseOperatorToken(raw)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("rejects tokens of another type", func(t *testing.T) {
		raw, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
			"sub":  "ops",
			"type": "refresh",
			"exp":  time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = p.ParseOperatorToken(raw)
		assert.ErrorIs(t, err, jwt.ErrInvalidTokenType)
	})

	t.Run("rejects tokens without expiry", func(t *testing.T) {
		raw, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
			"sub":  "ops",
			"type": "operator",
		}).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = p.ParseOperatorToken(raw)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
