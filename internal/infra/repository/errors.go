package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

// notFound swaps gorm's miss for the given typed error.
func notFound(err error, target *httperr.Error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

func likePattern(q string) string {
	return "%" + q + "%"
}
