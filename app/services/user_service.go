package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/app/repositories"
	"github.com/shashiranjanraj/stockpile/pkg/apperror"
)

type UserService struct {
	users repositories.UserStore
}

func NewUserService(users repositories.UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.All(ctx)
	if err != nil {
		return nil, apperror.Store(err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	return u, storeErr(err, "User not found")
}

func (s *UserService) Create(ctx context.Context, in models.RegisterInput) (models.User, error) {
	return createUser(ctx, s.users, in)
}

func (s *UserService) Update(ctx context.Context, id uint, patch models.UserPatch) (models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return models.User{}, storeErr(err, "User not found")
	}

	if patch.Username != nil && *patch.Username != u.Username {
		other, err := s.users.FindByUsername(ctx, *patch.Username)
		switch {
		case err == nil && other.ID != u.ID:
			return models.User{}, apperror.Validation("Username already exists")
		case err != nil && !errors.Is(err, repositories.ErrNotFound):
			return models.User{}, apperror.Store(err)
		}
	}

	patch.Apply(&u)
	if err := s.users.Update(ctx, &u); err != nil {
		return models.User{}, apperror.Store(err)
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	return storeErr(s.users.Delete(ctx, id), "User not found")
}
