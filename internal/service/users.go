package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/donorops/backend/internal/domain"
	"github.com/donorops/backend/internal/errs"
	"github.com/donorops/backend/internal/lib/job"
	"github.com/donorops/backend/internal/repository"
	"github.com/donorops/backend/internal/schema/usermgmt"
	"github.com/donorops/backend/internal/server"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UsersService manages staff accounts.
type UsersService struct {
	server *server.Server
	users  *repository.UsersRepository
}

// NewUsersService constructs a UsersService.
func NewUsersService(s *server.Server, repos *repository.Repositories) *UsersService {
	return &UsersService{
		server: s,
		users:  repos.Users,
	}
}

// Create provisions a new staff account and enqueues a welcome email.
// Emails are stored lowercased; a duplicate surfaces as a unique
// violation mapped to a conflict response.
func (s *UsersService) Create(ctx context.Context, req *usermgmt.CreateUserRequest) (*usermgmt.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         domain.UserRole(req.Role),
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}

	s.enqueueWelcomeEmail(user)

	return usermgmt.NewUserResponse(user), nil
}

// Get fetches a single user.
func (s *UsersService) Get(ctx context.Context, req *usermgmt.GetUserRequest) (*usermgmt.UserResponse, error) {
	user, err := s.users.GetByID(ctx, uuid.MustParse(req.ID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("User not found", false, nil)
		}
		return nil, err
	}
	return usermgmt.NewUserResponse(user), nil
}

// Update applies a partial update to a user. Nil fields are left
// unchanged; password is rehashed and is_active toggles activation.
// Self-deactivation is rejected here the same way Deactivate rejects
// it, so the guard cannot be sidestepped via PATCH.
func (s *UsersService) Update(ctx context.Context, req *usermgmt.UpdateUserRequest, actorID string) (*usermgmt.UserResponse, error) {
	if req.IsActive != nil && !*req.IsActive && req.ID == actorID {
		return nil, errs.NewConflictError("You cannot deactivate your own account", false, nil)
	}

	id := uuid.MustParse(req.ID)

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("User not found", false, nil)
		}
		return nil, err
	}

	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = domain.UserRole(*req.Role)
	}

	user, err = s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		if err := s.users.SetPassword(ctx, id, string(hash)); err != nil {
			return nil, err
		}
	}

	if req.IsActive != nil {
		user, err = s.users.SetActive(ctx, id, *req.IsActive)
		if err != nil {
			return nil, err
		}
	}

	return usermgmt.NewUserResponse(user), nil
}

// Deactivate marks an account inactive. The account keeps its history
// and can be reactivated through Update. A user cannot deactivate
// their own account, so an org always keeps at least one working
// admin session.
func (s *UsersService) Deactivate(ctx context.Context, req *usermgmt.DeactivateUserRequest, actorID string) (*usermgmt.UserResponse, error) {
	if req.ID == actorID {
		return nil, errs.NewConflictError("You cannot deactivate your own account", false, nil)
	}

	user, err := s.users.SetActive(ctx, uuid.MustParse(req.ID), false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("User not found", false, nil)
		}
		return nil, err
	}
	return usermgmt.NewUserResponse(user), nil
}

// List returns a page of users, optionally filtered by role.
func (s *UsersService) List(ctx context.Context, req *usermgmt.ListUsersRequest) (*usermgmt.UserListResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 50
	}

	var role *domain.UserRole
	if req.Role != "" {
		r := domain.UserRole(req.Role)
		role = &r
	}

	users, total, err := s.users.List(ctx, role, limit, req.Offset)
	if err != nil {
		return nil, err
	}

	items := make([]*usermgmt.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, usermgmt.NewUserResponse(&users[i]))
	}

	return &usermgmt.UserListResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: req.Offset,
	}, nil
}

func (s *UsersService) enqueueWelcomeEmail(user *domain.User) {
	firstName, _, _ := strings.Cut(user.Name, " ")

	task, err := job.NewWelcomeEmailTask(user.Email, firstName)
	if err != nil {
		s.server.Logger.Error().Err(err).Msg("failed to build welcome email task")
		return
	}

	if _, err := s.server.Job.Client.Enqueue(task); err != nil {
		// Account creation already succeeded; a lost welcome email is
		// not worth failing the request over.
		s.server.Logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to enqueue welcome email")
	}
}
