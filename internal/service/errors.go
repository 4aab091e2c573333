package service

import "errors"

var (
	ErrAuthenticationFailed = errors.New("incorrect email or password")
	ErrDuplicateIdentity    = errors.New("email already registered")
	ErrInvalidToken         = errors.New("could not validate credentials")
	ErrTokenExpired         = errors.New("token expired")
	ErrUnknownIdentity      = errors.New("could not find user")
	ErrValidation           = errors.New("validation failed")
	ErrUserNotFound         = errors.New("user not found")
	ErrTrackerNotFound      = errors.New("tracker not found")
	ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")
)
