package services

import (
	"errors"

	"github.com/shashiranjanraj/stockpile/app/repositories"
	"github.com/shashiranjanraj/stockpile/pkg/apperror"
)

// storeErr translates a repository error. ErrNotFound becomes a NotFound
// carrying missing; anything else is a store failure.
func storeErr(err error, missing string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return apperror.NotFound(missing)
	}
	return apperror.Store(err)
}
