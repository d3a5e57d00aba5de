// Package services holds the application logic between the HTTP controllers
// and the stores.
package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/app/repositories"
	"github.com/shashiranjanraj/stockpile/pkg/apperror"
	"github.com/shashiranjanraj/stockpile/pkg/auth"
	"github.com/shashiranjanraj/stockpile/pkg/logger"
)

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type AuthService struct {
	users  repositories.UserStore
	tokens *auth.Tokens
}

func NewAuthService(users repositories.UserStore, tokens *auth.Tokens) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a user and signs them in. The role defaults to Clerk.
func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) (AuthResult, error) {
	user, err := createUser(ctx, s.users, in)
	if err != nil {
		return AuthResult{}, err
	}
	return s.issue(user)
}

// Login checks the password and issues a token. Unknown users and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (AuthResult, error) {
	user, err := s.users.FindByUsername(ctx, in.Username)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return AuthResult{}, apperror.Authentication("Invalid credentials")
	case err != nil:
		return AuthResult{}, apperror.Store(err)
	}

	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		logger.WithCtx(ctx).Warn("login rejected", "username", in.Username)
		return AuthResult{}, apperror.Authentication("Invalid credentials")
	}
	return s.issue(user)
}

// Resolve loads the current identity of user id for the auth middleware.
func (s *AuthService) Resolve(ctx context.Context, id uint) (auth.Principal, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return auth.Principal{}, storeErr(err, "User not found")
	}
	return principalOf(user), nil
}

func (s *AuthService) issue(user models.User) (AuthResult, error) {
	token, err := s.tokens.Generate(principalOf(user))
	if err != nil {
		return AuthResult{}, apperror.Store(err)
	}
	return AuthResult{Token: token, User: user}, nil
}

func principalOf(u models.User) auth.Principal {
	return auth.Principal{ID: u.ID, Username: u.Username, Role: string(u.Role)}
}

// createUser is shared by self-registration and admin user creation.
func createUser(ctx context.Context, users repositories.UserStore, in models.RegisterInput) (models.User, error) {
	role := in.Role
	if role == "" {
		role = models.RoleClerk
	}
	if !role.Valid() {
		return models.User{}, apperror.Validation("Invalid role")
	}

	if _, err := users.FindByUsername(ctx, in.Username); err == nil {
		return models.User{}, apperror.Validation("Username already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return models.User{}, apperror.Store(err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, apperror.Store(err)
	}

	user := models.User{Username: in.Username, PasswordHash: hash, Role: role}
	if err := users.Create(ctx, &user); err != nil {
		return models.User{}, apperror.Store(err)
	}
	logger.WithCtx(ctx).Info("user created", "user_id", user.ID, "role", user.Role)
	return user, nil
}
