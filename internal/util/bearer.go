package util

import (
	"errors"
	"strings"
)

var (
	ErrNoAuthHeader = errors.New("authorization header missing")
	ErrNotBearer    = errors.New("authorization scheme is not Bearer")
	ErrEmptyToken   = errors.New("bearer token is empty")
)

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrNoAuthHeader
	}

	scheme, token, found := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", ErrNotBearer
	}
	if !found {
		return "", ErrEmptyToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}
