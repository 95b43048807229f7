package identity

import "github.com/goliatone/go-errors"

const (
	// TextCodeLoginFailed tags credential failures on internal errors
	TextCodeLoginFailed = "login_failed"
	// TextCodeJWTConfiguration tags missing signing settings
	TextCodeJWTConfiguration = "jwt_configuration_error"
	// TextCodeDuplicateUsername tags registration conflicts
	TextCodeDuplicateUsername = "duplicate_username"
)

// ErrIdentityNotFound is returned when no user matches the supplied
// username. The verifier folds it into the generic credential failure
// before anything reaches a caller.
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryAuth).
	WithTextCode(TextCodeLoginFailed).
	WithCode(errors.CodeUnauthorized)

// ErrMismatchedUserAndPassword is the generic credential failure. It is
// deliberately shared by the unknown-user and wrong-password paths.
var ErrMismatchedUserAndPassword = errors.New("user/password combination is incorrect", errors.CategoryAuth).
	WithTextCode(TextCodeLoginFailed).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyPassword is returned when hashing an empty password.
var ErrNoEmptyPassword = errors.New("password must not be empty", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest)

// ErrJWTConfiguration is returned when the signing secret or expiry is
// missing at issuance time.
var ErrJWTConfiguration = errors.New("JWT settings are not configured correctly", errors.CategoryOperation).
	WithTextCode(TextCodeJWTConfiguration)

// ErrDuplicateUsername is returned when registering an already taken
// username.
var ErrDuplicateUsername = errors.New("username already registered", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateUsername).
	WithCode(errors.CodeConflict)

// ErrTokenExpired is returned when validating a token past its exp claim.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token fails to parse or its
// signature does not verify.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)
