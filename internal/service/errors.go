package service

import "errors"

var (
	ErrValidation = errors.New("validation error")
	// ErrForbidden — доступ запрещен. Наружу уходит как 403, никогда
	// не превращается в тихое разрешение и не ретраится
	ErrForbidden = errors.New("forbidden")
)
