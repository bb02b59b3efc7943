package i

import (
	dmn "github.com/3NJDGZ/brain-training-api/domain"
)

// Authenticator handles player registration and sign-in.
type Authenticator interface {
	// Register creates a new player from a username and plain password.
	Register(username, password string) error

	// SignIn verifies credentials and returns the player with a signed
	// access token.
	SignIn(username, password string) (*dmn.User, string, error)
}
