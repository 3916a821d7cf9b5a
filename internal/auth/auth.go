// Package auth resolves the identity of the uploading principal from
// credentials issued by the upstream identity provider.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthenticated is returned when no owner identity can be resolved.
var ErrUnauthenticated = errors.New("missing or invalid credentials")

// ResolveOwner returns the owner identity for a request: an explicitly
// supplied ID wins, otherwise the subject claim of an HS256 bearer token
// validated against the shared secret.
func ResolveOwner(explicitID, bearerToken, secret string) (string, error) {
	if explicitID != "" {
		return explicitID, nil
	}

	token := strings.TrimSpace(strings.TrimPrefix(bearerToken, "Bearer "))
	if token == "" {
		return "", ErrUnauthenticated
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	}

	return subject, nil
}
