package repositories

import "errors"

var (
	ErrDishNotFound = errors.New("dish not found")
	ErrUserNotFound = errors.New("user not found")
)
