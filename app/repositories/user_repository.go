package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/pkg/orm"
)

// UserRepository implements UserStore on gorm.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := orm.New(ctx, r.db).Model(&models.User{}).Order("id").Get(&users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := orm.New(ctx, r.db).Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, notFound(err, "find user")
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := orm.New(ctx, r.db).Model(&models.User{}).Where("username = ?", username).First(&user)
	return user, notFound(err, "find user by username")
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if err := orm.New(ctx, r.db).Create(u); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	if err := orm.New(ctx, r.db).Save(u); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	n, err := orm.New(ctx, r.db).Delete(&models.User{ID: id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// notFound maps gorm's missing-row error onto ErrNotFound and wraps the rest.
func notFound(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
