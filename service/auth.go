package service

import (
	"context"
	"errors"
	"time"

	dmn "github.com/3NJDGZ/brain-training-api/domain"
	"github.com/3NJDGZ/brain-training-api/service/i"
	"github.com/google/uuid"
)

const accessTokenLifetime = 24 * time.Hour

// Auth implements registration and sign-in on top of the user repo and
// token service.
type Auth struct {
	userRepo    i.UserRepo
	performance i.PerformanceRepo
	tokenizer   i.Tokenizer
}

// NewAuthService wires an Auth service.
func NewAuthService(userRepo i.UserRepo, performance i.PerformanceRepo, tokenizer i.Tokenizer) (i.Authenticator, error) {
	if userRepo == nil || performance == nil || tokenizer == nil {
		return nil, errors.New("auth service requires a user repo, performance repo and tokenizer")
	}
	return &Auth{
		userRepo:    userRepo,
		performance: performance,
		tokenizer:   tokenizer,
	}, nil
}

// Register creates the player and seeds their per-area performance
// record with uniform weights.
func (a *Auth) Register(username, password string) error {
	user, err := dmn.NewUser(dmn.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	})
	if err != nil {
		return err
	}

	if err := a.userRepo.Save(user); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return a.performance.EnsureDefaults(ctx, user.ID)
}

// SignIn verifies the credentials and returns the user with a fresh
// access token.
func (a *Auth) SignIn(username, password string) (*dmn.User, string, error) {
	user, err := a.userRepo.ByUsername(username)
	if err != nil {
		return nil, "", errors.New("invalid username or password")
	}

	if !user.VerifyPassword(password) {
		return nil, "", errors.New("invalid username or password")
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"userID":   user.ID.String(),
		"username": user.Username,
	}, accessTokenLifetime)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
