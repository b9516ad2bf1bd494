package repository

import (
	"errors"

	"gorm.io/gorm"
)

// translateError maps GORM errors onto repository sentinels. Unique
// violations arrive as gorm.ErrDuplicatedKey because every dialector runs
// with TranslateError enabled.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	default:
		return err
	}
}
