package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrAlreadyCancelled   = errors.New("order already cancelled")
	ErrCartChanged        = errors.New("cart changed during checkout")
)

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// notFoundOr maps gorm's missing-row error onto ErrNotFound and wraps everything else.
func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("load %s: %w", what, err)
}
