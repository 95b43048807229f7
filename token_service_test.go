package identity_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplemanager/identity"
)

func hour() *time.Duration {
	d := time.Hour
	return &d
}

func TestJWTSettingsValid(t *testing.T) {
	tests := []struct {
		name     string
		settings identity.JWTSettings
		want     bool
	}{
		{
			name:     "secret and expiry present",
			settings: identity.JWTSettings{Secret: "s3cret", Expiry: hour()},
			want:     true,
		},
		{
			name:     "blank secret",
			settings: identity.JWTSettings{Secret: "   ", Expiry: hour()},
			want:     false,
		},
		{
			name:     "missing expiry",
			settings: identity.JWTSettings{Secret: "s3cret"},
			want:     false,
		},
		{
			name:     "nothing configured",
			settings: identity.JWTSettings{},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.Valid())
		})
	}
}

func TestTokenServiceSign(t *testing.T) {
	secret := "test-signing-secret"
	service := identity.NewTokenService(identity.JWTSettings{
		Secret: secret,
		Expiry: hour(),
	})

	t.Run("signs an HS512 compact token", func(t *testing.T) {
		user := testIdentity{id: "user-123", username: "alice", email: "alice@example.com"}

		before := time.Now().UTC()
		tokenString, err := service.Sign(user)
		require.NoError(t, err)
		require.NotEmpty(t, tokenString)

		token, err := jwt.ParseWithClaims(tokenString, &identity.JWTClaims{}, func(t *jwt.Token) (any, error) {
			return []byte(secret), nil
		})
		require.NoError(t, err)
		require.True(t, token.Valid)
		assert.Equal(t, "HS512", token.Header["alg"])

		claims, ok := token.Claims.(*identity.JWTClaims)
		require.True(t, ok)
		assert.Equal(t, "user-123", claims.UserID())
		assert.Equal(t, "alice@example.com", claims.Subject)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.NotEmpty(t, claims.TokenID())

		wantExp := before.Add(time.Hour)
		assert.WithinDuration(t, wantExp, claims.Expires(), 5*time.Second)
	})

	t.Run("omits sub and email for identities without email", func(t *testing.T) {
		user := testIdentity{id: "user-456", username: "bob"}

		tokenString, err := service.Sign(user)
		require.NoError(t, err)

		claims, err := service.Validate(tokenString)
		require.NoError(t, err)
		assert.Equal(t, "user-456", claims.UserID())
		assert.Empty(t, claims.Subject)
		assert.Empty(t, claims.Email)
	})

	t.Run("fresh jti per issuance", func(t *testing.T) {
		user := testIdentity{id: "user-123", email: "alice@example.com"}

		first, err := service.Sign(user)
		require.NoError(t, err)
		second, err := service.Sign(user)
		require.NoError(t, err)

		firstClaims, err := service.Validate(first)
		require.NoError(t, err)
		secondClaims, err := service.Validate(second)
		require.NoError(t, err)

		assert.NotEqual(t, firstClaims.TokenID(), secondClaims.TokenID())
	})

	t.Run("nil identity", func(t *testing.T) {
		_, err := service.Sign(nil)
		assert.Error(t, err)
	})
}

func TestTokenServiceSignConfigurationErrors(t *testing.T) {
	user := testIdentity{id: "user-123", email: "alice@example.com"}

	tests := []struct {
		name     string
		settings identity.JWTSettings
	}{
		{name: "empty secret", settings: identity.JWTSettings{Secret: "", Expiry: hour()}},
		{name: "missing expiry", settings: identity.JWTSettings{Secret: "s3cret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := identity.NewTokenService(tt.settings)

			token, err := service.Sign(user)
			assert.Empty(t, token)
			assert.ErrorIs(t, err, identity.ErrJWTConfiguration)
		})
	}
}

func TestTokenServiceValidate(t *testing.T) {
	user := testIdentity{id: "user-123", email: "alice@example.com"}

	t.Run("rejects tokens signed with another secret", func(t *testing.T) {
		issuer := identity.NewTokenService(identity.JWTSettings{Secret: "first", Expiry: hour()})
		verifier := identity.NewTokenService(identity.JWTSettings{Secret: "second", Expiry: hour()})

		tokenString, err := issuer.Sign(user)
		require.NoError(t, err)

		_, err = verifier.Validate(tokenString)
		assert.Error(t, err)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		expiry := -time.Minute
		issuer := identity.NewTokenService(identity.JWTSettings{Secret: "s3cret", Expiry: &expiry})

		tokenString, err := issuer.Sign(user)
		require.NoError(t, err)

		verifier := identity.NewTokenService(identity.JWTSettings{Secret: "s3cret", Expiry: hour()})
		_, err = verifier.Validate(tokenString)
		assert.ErrorIs(t, err, identity.ErrTokenExpired)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		service := identity.NewTokenService(identity.JWTSettings{Secret: "s3cret", Expiry: hour()})

		_, err := service.Validate("not.a.token")
		assert.Error(t, err)
	})
}
