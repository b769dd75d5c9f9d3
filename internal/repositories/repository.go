package repositories

import (
	stderrors "errors"

	"github.com/petween/backend/pkg/errors"
	"gorm.io/gorm"
)

// requireExists returns a NOT_FOUND AppError when no row of model has the id.
func requireExists(tx *gorm.DB, model interface{}, id uint, what string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to look up "+what)
	}
	if count == 0 {
		return errors.New(errors.ErrCodeNotFound, what+" not found")
	}
	return nil
}

// wrapWriteError maps hook and constraint failures to AppError codes.
func wrapWriteError(err error, message string) error {
	var appErr *errors.AppError
	switch {
	case stderrors.As(err, &appErr):
		return appErr
	case stderrors.Is(err, gorm.ErrInvalidData):
		return errors.Wrap(err, errors.ErrCodeValidation, message)
	case stderrors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Wrap(err, errors.ErrCodeAlreadyExists, message)
	default:
		return errors.Wrap(err, errors.ErrCodeInternalError, message)
	}
}
