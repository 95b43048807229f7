package identity

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
)

// UserStore is the slice of the Users repository the provider needs.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	Register(ctx context.Context, user *User) (*User, error)
}

// UserProvider adapts the Users repository into the IdentityStore
// capability set used by the identity service.
type UserProvider struct {
	store     UserStore
	logger    Logger
	useHashid bool
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(logger Logger) *UserProvider {
	if logger != nil {
		u.logger = logger
	}
	return u
}

// WithHashid derives new user ids deterministically from the email address
// instead of generating random UUIDs.
func (u *UserProvider) WithHashid() *UserProvider {
	u.useHashid = true
	return u
}

// VerifyIdentity will find the user, compare the password, and return the
// identity. Unknown users and wrong passwords fail with the same error so
// the response cannot be used to probe for accounts.
func (u *UserProvider) VerifyIdentity(ctx context.Context, username, password string) (Identity, error) {
	user, err := u.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrMismatchedUserAndPassword
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrMismatchedUserAndPassword
	}

	return userIdentity{
		id:       user.ID.String(),
		username: user.Username,
		email:    user.Email,
	}, nil
}

// FindIdentityByUsername looks a user up without checking credentials.
func (u *UserProvider) FindIdentityByUsername(ctx context.Context, username string) (Identity, error) {
	user, err := u.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	return userIdentity{
		id:       user.ID.String(),
		username: user.Username,
		email:    user.Email,
	}, nil
}

// CreateIdentity hashes the password and stores a new user record. The
// username doubles as the email address, matching the registration request
// shape.
func (u *UserProvider) CreateIdentity(ctx context.Context, username, email, password string) (Identity, error) {
	if _, err := u.store.GetByUsername(ctx, username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check username availability")
	}

	hash, err := HashPassword(password)
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			return nil, errors.Wrap(richErr, errors.CategoryValidation, "invalid password provided")
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if u.useHashid {
		if id, err := hashid.NewUUID(email); err == nil {
			user.ID = id
		}
	}

	user, err = u.store.Register(ctx, user)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConflict, "could not create user")
	}

	return userIdentity{
		id:       user.ID.String(),
		username: user.Username,
		email:    user.Email,
	}, nil
}

type userIdentity struct {
	id       string
	username string
	email    string
}

func (a userIdentity) ID() string {
	return a.id
}

func (a userIdentity) Username() string {
	return a.username
}

func (a userIdentity) Email() string {
	return a.email
}

var (
	_ Identity      = userIdentity{}
	_ IdentityStore = (*UserProvider)(nil)
)
