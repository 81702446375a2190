package auth

import "errors"

var (
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrExpiredToken     = errors.New("authentication token has expired")
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")
	ErrMissingToken     = errors.New("authentication token is missing")
	// ErrWrongTokenType is returned for refresh or other non-access tokens.
	ErrWrongTokenType = errors.New("wrong authentication token type")
)
