package domain

import (
	"regexp"
	"time"
	"unicode"
)

// User is the ownership key for every transaction, budget and goal.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

var emailRe = regexp.MustCompile(`^[\w.+-]+@([\w-]+\.)+[\w-]{2,}$`)

// ValidateRegistration checks the registration constraints: username
// length, email format, and the password policy (at least 8 characters
// with a letter, a digit and a special character).
func ValidateRegistration(username, email, password string) error {
	if len(username) < 3 {
		return &ErrValidation{Field: "username", Message: "must be at least 3 characters"}
	}
	if !emailRe.MatchString(email) {
		return &ErrValidation{Field: "email", Message: "invalid email address"}
	}
	return validatePassword(password)
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return &ErrValidation{Field: "password", Message: "must be at least 8 characters"}
	}
	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasLetter || !hasDigit || !hasSpecial {
		return &ErrValidation{Field: "password", Message: "must contain a letter, a digit and a special character"}
	}
	return nil
}

// RegisterRequest is the body for POST /v1/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body for POST /v1/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse carries the issued token pair. Registration logs the
// user in immediately, so both register and login return this shape.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

// RefreshToken is a hashed refresh token row.
type RefreshToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"token_hash"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
}

// SuccessResponse is a generic message envelope.
type SuccessResponse struct {
	Message string `json:"message"`
}
