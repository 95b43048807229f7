package identity

import "encoding/json"

// Severity qualifies a ServiceMessage. Only Error messages flip a result
// into the failed state.
type Severity = string

const (
	// SeverityInfo is informational output attached to a result
	SeverityInfo Severity = "info"
	// SeverityWarning flags something the caller may want to act on
	SeverityWarning Severity = "warning"
	// SeverityError marks the result as failed
	SeverityError Severity = "error"
)

// Message codes surfaced to API callers. Clients branch on these, not on
// transport status codes.
const (
	// CodeLoginFailed is returned for both unknown users and wrong
	// passwords so responses cannot be used to enumerate accounts
	CodeLoginFailed = "LoginFailed"
	// CodeJWTConfigurationError signals missing signing settings, a
	// deployment fault rather than a user input fault
	CodeJWTConfigurationError = "JwtConfigurationError"
	// CodeInvalidUserName is returned when a registration username is
	// missing or not an email address
	CodeInvalidUserName = "InvalidUserName"
	// CodeInvalidPassword is returned when a registration password is
	// missing or too weak
	CodeInvalidPassword = "InvalidPassword"
	// CodeRegistrationFailed is returned when the account could not be
	// created, e.g. the username is already taken
	CodeRegistrationFailed = "RegistrationFailed"
)

// ServiceMessage carries one structured diagnostic attached to a result.
type ServiceMessage struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ServiceResult is the uniform outcome envelope. Success is never stored;
// it is always computed from the message list.
type ServiceResult struct {
	Messages []ServiceMessage `json:"messages"`
}

// IsSuccessful reports whether no message carries SeverityError.
func (r ServiceResult) IsSuccessful() bool {
	for _, m := range r.Messages {
		if m.Severity == SeverityError {
			return false
		}
	}
	return true
}

// AddMessage appends a message to the result.
func (r *ServiceResult) AddMessage(code, message string, severity Severity) {
	r.Messages = append(r.Messages, ServiceMessage{
		Code:     code,
		Message:  message,
		Severity: severity,
	})
}

// AddError appends an Error severity message, marking the result failed.
func (r *ServiceResult) AddError(code, message string) {
	r.AddMessage(code, message, SeverityError)
}

// AuthenticationResult extends ServiceResult with the signed bearer token.
// Token is set only on successful sign-in or registration.
type AuthenticationResult struct {
	ServiceResult
	Token string `json:"token,omitempty"`
}

type authenticationResultJSON struct {
	Messages     []ServiceMessage `json:"messages"`
	IsSuccessful bool             `json:"isSuccessful"`
	Token        string           `json:"token,omitempty"`
}

// MarshalJSON includes the computed isSuccessful flag so API clients do not
// have to rescan the message list.
func (r AuthenticationResult) MarshalJSON() ([]byte, error) {
	messages := r.Messages
	if messages == nil {
		messages = []ServiceMessage{}
	}
	return json.Marshal(authenticationResultJSON{
		Messages:     messages,
		IsSuccessful: r.IsSuccessful(),
		Token:        r.Token,
	})
}

// UnmarshalJSON restores the envelope; isSuccessful is discarded since it is
// derivable from the messages.
func (r *AuthenticationResult) UnmarshalJSON(data []byte) error {
	var raw authenticationResultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Messages = raw.Messages
	r.Token = raw.Token
	return nil
}

// LoginFailedResult is the generic credential failure. The message is
// identical for unknown users and wrong passwords.
func LoginFailedResult() *AuthenticationResult {
	result := &AuthenticationResult{}
	result.AddError(CodeLoginFailed, "User/Password combination is incorrect.")
	return result
}

// JWTConfigurationErrorResult reports missing signing settings at issuance
// time. Operators see it through the same response channel as any failure.
func JWTConfigurationErrorResult() *AuthenticationResult {
	result := &AuthenticationResult{}
	result.AddError(CodeJWTConfigurationError, "JWT Settings are not configured correctly")
	return result
}

// RegistrationFailedResult reports that the account could not be created.
func RegistrationFailedResult() *AuthenticationResult {
	result := &AuthenticationResult{}
	result.AddError(CodeRegistrationFailed, "Account could not be created.")
	return result
}
