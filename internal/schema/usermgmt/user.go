package usermgmt

import (
	"time"

	"github.com/donorops/backend/internal/domain"
	"github.com/donorops/backend/internal/validation"
)

// CreateUserRequest is the payload for provisioning a staff account.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Password string `json:"password" validate:"required,min=10,max=128"`
	Role     string `json:"role" validate:"required,oneof=admin gift_officer viewer"`
}

func (r *CreateUserRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// UpdateUserRequest is the payload for a partial user update. Nil
// fields are left unchanged.
type UpdateUserRequest struct {
	ID       string  `param:"id" validate:"required,uuid"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Password *string `json:"password" validate:"omitempty,min=10,max=128"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin gift_officer viewer"`
	IsActive *bool   `json:"is_active"`
}

func (r *UpdateUserRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// GetUserRequest identifies a user by path parameter.
type GetUserRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetUserRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// DeactivateUserRequest identifies the user to deactivate. Accounts
// are never hard-deleted; they are marked inactive and can no longer
// sign in.
type DeactivateUserRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *DeactivateUserRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// ListUsersRequest carries the query filters for user listings.
type ListUsersRequest struct {
	Role   string `query:"role" validate:"omitempty,oneof=admin gift_officer viewer"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}

func (r *ListUsersRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// UserResponse is the wire representation of a staff account. The
// password hash never leaves the service.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewUserResponse maps a domain user onto the wire shape.
func NewUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		Name:        u.Name,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// UserListResponse wraps a page of users.
type UserListResponse struct {
	Items  []*UserResponse `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}
