package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorops/backend/internal/config"
	"github.com/donorops/backend/internal/errs"
	"github.com/donorops/backend/internal/repository"
	"github.com/donorops/backend/internal/schema/usermgmt"
	"github.com/donorops/backend/internal/server"
	"github.com/donorops/backend/internal/service"
)

func newUsersService() *service.UsersService {
	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
	return service.NewUsersService(s, &repository.Repositories{})
}

func requireConflict(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusConflict, httpErr.Status)
}

func TestDeactivate_RejectsSelf(t *testing.T) {
	users := newUsersService()
	actorID := uuid.NewString()

	resp, err := users.Deactivate(context.Background(), &usermgmt.DeactivateUserRequest{ID: actorID}, actorID)
	assert.Nil(t, resp)
	requireConflict(t, err)
}

func TestUpdate_RejectsSelfDeactivation(t *testing.T) {
	users := newUsersService()
	actorID := uuid.NewString()
	inactive := false

	resp, err := users.Update(context.Background(), &usermgmt.UpdateUserRequest{
		ID:       actorID,
		IsActive: &inactive,
	}, actorID)
	assert.Nil(t, resp)
	requireConflict(t, err)
}
