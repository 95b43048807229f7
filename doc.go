// Package identity implements the authentication slice of the people
// manager API: credential verification against a stored user record and
// issuance of signed HS512 bearer tokens.
//
// Outcomes:
//   - Expected business failures (bad credentials, missing JWT settings,
//     invalid registration input) never surface as Go errors. They are
//     reported as ServiceMessage entries on an AuthenticationResult, whose
//     IsSuccessful flag is always derived from the message list.
//   - Unexpected faults (store unreachable, signing failure) propagate as
//     errors to the hosting layer and map to a 5xx response.
//
// Wiring:
//   - UserProvider adapts the Bun-backed Users repository into the
//     IdentityStore capability set (find by username, verify password,
//     create user). Password hashing is bcrypt, never reimplemented.
//   - TokenService holds the immutable JWTSettings injected at construction
//     time. Missing settings are a handled runtime state, not a crash.
package identity
