package identity

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// JWTSettings is the signing configuration, loaded once at startup and
// treated as read only afterwards. A nil Expiry or blank Secret is a valid,
// handled runtime state: issuance reports a configuration error instead of
// crashing the process.
type JWTSettings struct {
	Secret string
	Expiry *time.Duration
}

// Valid reports whether both secret and expiry are present.
func (s JWTSettings) Valid() bool {
	return strings.TrimSpace(s.Secret) != "" && s.Expiry != nil
}

// TokenService signs and validates HS512 bearer tokens.
type TokenService struct {
	settings JWTSettings
	logger   Logger
}

// NewTokenService creates a TokenService with the given settings.
func NewTokenService(settings JWTSettings) *TokenService {
	return &TokenService{
		settings: settings,
		logger:   defLogger{},
	}
}

func (ts *TokenService) WithLogger(logger Logger) *TokenService {
	if logger != nil {
		ts.logger = logger
	}
	return ts
}

// Sign issues a compact HS512 token for the identity. The claim set holds
// uid, a fresh jti, exp = now + configured expiry, and, when the identity
// has an email, sub and email both set to it.
func (ts *TokenService) Sign(identity Identity) (string, error) {
	if identity == nil {
		return "", errors.New("identity must not be nil", errors.CategoryInternal)
	}

	if !ts.settings.Valid() {
		return "", ErrJWTConfiguration
	}

	now := time.Now().UTC()

	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(*ts.settings.Expiry)),
		},
		UID: identity.ID(),
	}

	if email := strings.TrimSpace(identity.Email()); email != "" {
		claims.Subject = email
		claims.Email = email
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	signed, err := token.SignedString([]byte(ts.settings.Secret))
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signed, nil
}

// Validate parses a token string against the signing secret and returns its
// claims. Tokens signed with anything but an HMAC method are rejected.
func (ts *TokenService) Validate(tokenString string) (*JWTClaims, error) {
	if !ts.settings.Valid() {
		return nil, ErrJWTConfiguration
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("token validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, ErrTokenMalformed
		}
		return []byte(ts.settings.Secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		ts.logger.Error("token validate could not decode claims")
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

var _ TokenIssuer = (*TokenService)(nil)
