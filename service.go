package identity

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-errors"
)

// SignInRequest carries the credentials posted to the sign-in endpoint.
// Empty fields are not a validation error here: they simply fail
// verification, keeping the response identical to any other bad credential.
type SignInRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// RegisterRequest carries a new account request. The username is the
// account's email address.
type RegisterRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// MinPasswordLength is enforced on registration only. Existing accounts
// keep whatever the store accepted when they were created.
const MinPasswordLength = 8

func (r RegisterRequest) validateUserName() error {
	return validation.Validate(r.UserName,
		validation.Required,
		is.EmailFormat,
	)
}

func (r RegisterRequest) validatePassword() error {
	return validation.Validate(r.Password,
		validation.Required,
		validation.Length(MinPasswordLength, 0),
	)
}

// IdentityService composes credential verification and token issuance.
// Each call is stateless; the only shared state is the injected store and
// the token service's read-only settings.
type IdentityService struct {
	store  IdentityStore
	tokens TokenIssuer
	logger Logger
}

// NewIdentityService creates the sign-in/registration orchestrator.
func NewIdentityService(store IdentityStore, tokens TokenIssuer) *IdentityService {
	return &IdentityService{
		store:  store,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (s *IdentityService) WithLogger(logger Logger) *IdentityService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// SignIn verifies the credentials and, on success, issues a bearer token.
// Expected failures come back as a failed result with a nil error; an error
// is returned only for faults the caller cannot handle (store unreachable,
// signing failure).
func (s *IdentityService) SignIn(ctx context.Context, req SignInRequest) (*AuthenticationResult, error) {
	identity, err := s.store.VerifyIdentity(ctx, req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, ErrMismatchedUserAndPassword) {
			return LoginFailedResult(), nil
		}
		s.logger.Error("sign-in verification fault", "error", err)
		return nil, err
	}

	return s.issueToken(identity)
}

// Register validates the request, creates the account, and signs the new
// user in. Validation failures report per-field codes; a taken username
// reports RegistrationFailed.
func (s *IdentityService) Register(ctx context.Context, req RegisterRequest) (*AuthenticationResult, error) {
	result := &AuthenticationResult{}

	if err := req.validateUserName(); err != nil {
		result.AddError(CodeInvalidUserName, "User name must be a valid email address.")
	}

	if err := req.validatePassword(); err != nil {
		result.AddError(CodeInvalidPassword, "Password is required and must be at least 8 characters long.")
	}

	if !result.IsSuccessful() {
		return result, nil
	}

	identity, err := s.store.CreateIdentity(ctx, req.UserName, req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) || isConflict(err) {
			return RegistrationFailedResult(), nil
		}
		s.logger.Error("registration fault", "error", err)
		return nil, err
	}

	return s.issueToken(identity)
}

func (s *IdentityService) issueToken(identity Identity) (*AuthenticationResult, error) {
	token, err := s.tokens.Sign(identity)
	if err != nil {
		if errors.Is(err, ErrJWTConfiguration) {
			return JWTConfigurationErrorResult(), nil
		}
		s.logger.Error("token issuance fault", "error", err)
		return nil, err
	}

	return &AuthenticationResult{Token: token}, nil
}

func isConflict(err error) bool {
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.Category == errors.CategoryConflict
	}
	return false
}
