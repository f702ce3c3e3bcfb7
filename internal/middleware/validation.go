package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Hrhcoolshegs/verdict/internal/model"
)

// Field length limits matching database schema constraints.
const (
	MaxIdentityKeyLen = 64  // verdicts.identity_key CHAR(64)
	MaxUserAgentLen   = 128 // verdicts.user_agent VARCHAR(128)
	MaxSearchQueryLen = 100
)

var (
	// identityKeyRe matches derived identity keys: lowercase hex SHA256.
	identityKeyRe = regexp.MustCompile(`^[0-9a-f]+$`)
	// sessionTokenRe matches nanoid session tokens.
	sessionTokenRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateMovieID parses and checks a movie id path or body value.
func ValidateMovieID(raw string) (int64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "movieId is required"
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, "movieId must be a positive integer"
	}
	return id, ""
}

// ValidateIdentityKey checks that an identity key is a valid hex hash.
func ValidateIdentityKey(key string) (string, string) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", "identityKey is required"
	}
	if len(key) != MaxIdentityKeyLen {
		return "", "identityKey must be 64 characters"
	}
	if !identityKeyRe.MatchString(key) {
		return "", "identityKey must be a hexadecimal hash"
	}
	return key, ""
}

// ValidateChoice checks the verdict choice value.
func ValidateChoice(raw string) (model.Choice, string) {
	choice := model.Choice(strings.TrimSpace(raw))
	if choice == "" {
		return "", "choice is required"
	}
	if !choice.Valid() {
		return "", "choice must be one of: cinema, not-cinema"
	}
	return choice, ""
}

// ValidateSearchQuery trims and bounds a free-text search query.
func ValidateSearchQuery(q string) (string, string) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", "search query is required"
	}
	if len(q) > MaxSearchQueryLen {
		return "", "search query must be at most 100 characters"
	}
	return q, ""
}

// ValidateSessionToken checks the shape of a session token header value.
func ValidateSessionToken(token string) (string, string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", "session token is required"
	}
	if len(token) > 64 || !sessionTokenRe.MatchString(token) {
		return "", "session token is malformed"
	}
	return token, ""
}

// ValidateUserAgent trims and truncates user agent to DB limits.
func ValidateUserAgent(ua string) string {
	ua = strings.TrimSpace(ua)
	if len(ua) > MaxUserAgentLen {
		ua = ua[:MaxUserAgentLen]
	}
	return ua
}
