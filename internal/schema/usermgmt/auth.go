package usermgmt

import (
	"github.com/donorops/backend/internal/validation"
)

// LoginRequest is the payload for password login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// LoginResponse carries the issued session token and the account it
// belongs to.
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresIn int64         `json:"expires_in"`
	User      *UserResponse `json:"user"`
}

// LogoutRequest has no payload; the token to revoke comes from the
// Authorization header.
type LogoutRequest struct{}

func (r *LogoutRequest) Validate() error {
	return nil
}

// MeRequest has no payload; the subject comes from the session token.
type MeRequest struct{}

func (r *MeRequest) Validate() error {
	return nil
}
