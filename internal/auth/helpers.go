package auth

import (
	"errors"
	"net/http"
	"strings"
)

// ExtractBearerToken extracts the bearer credential from the Authorization
// header. Returns an error if the header is missing or not in
// "Bearer <token>" form.
func ExtractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid Authorization header format, expected 'Bearer <token>'")
	}

	return parts[1], nil
}
