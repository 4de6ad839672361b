package auth

import "errors"

// Classification returned by every issuance path. Underlying causes
// (directory errors, bcrypt errors, provider errors) never cross this
// package's boundary unwrapped; callers branch with errors.Is.
var (
	// ErrUnauthenticated covers bad credentials, bad or expired tokens,
	// mismatched token kinds, unverifiable federation tokens and missing
	// users. Deliberately indistinguishable cases: callers must not be able
	// to tell a wrong password from an unknown email.
	ErrUnauthenticated = errors.New("auth: unauthenticated")

	// ErrTransient marks a retryable infrastructure failure (hashing
	// subsystem, directory outage) as opposed to a credential problem.
	ErrTransient = errors.New("auth: temporarily unavailable")

	// ErrConflict is returned when federation would bind an email that
	// already belongs to a different account. Never silently merged.
	ErrConflict = errors.New("auth: conflicting identity")
)

// Directory sentinels, returned by UserDirectory implementations.
var (
	ErrNoSuchUser    = errors.New("auth: user not found")
	ErrDuplicateUser = errors.New("auth: user already exists")
)
