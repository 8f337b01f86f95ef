package usermgmt_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorops/backend/internal/domain"
	"github.com/donorops/backend/internal/schema/usermgmt"
	"github.com/donorops/backend/internal/validation"
)

func TestCreateUserRequest(t *testing.T) {
	req := usermgmt.CreateUserRequest{
		Email:    "officer@donorops.io",
		Name:     "Priya Raman",
		Password: "correct horse battery",
		Role:     "gift_officer",
	}
	assert.NoError(t, req.Validate())

	t.Run("short password", func(t *testing.T) {
		bad := req
		bad.Password = "short"
		assert.Error(t, bad.Validate())
	})

	t.Run("unknown role", func(t *testing.T) {
		bad := req
		bad.Role = "superuser"
		assert.Error(t, bad.Validate())
	})

	t.Run("bad email", func(t *testing.T) {
		bad := req
		bad.Email = "not-an-email"
		assert.Error(t, bad.Validate())
	})
}

func TestUpdateUserRequest_PartialFieldsOptional(t *testing.T) {
	req := usermgmt.UpdateUserRequest{ID: uuid.NewString()}
	assert.NoError(t, req.Validate())

	role := "viewer"
	req.Role = &role
	assert.NoError(t, req.Validate())

	badRole := "root"
	req.Role = &badRole
	assert.Error(t, req.Validate())
}

func TestLoginRequest(t *testing.T) {
	req := usermgmt.LoginRequest{Email: "officer@donorops.io", Password: "pw"}
	assert.NoError(t, req.Validate())

	req.Email = ""
	assert.Error(t, req.Validate())
}

func TestCreateEventRequest_TimeOrdering(t *testing.T) {
	starts := time.Date(2026, 6, 10, 18, 0, 0, 0, time.UTC)
	req := usermgmt.CreateEventRequest{
		Name:     "Spring Donor Gala",
		StartsAt: starts,
		EndsAt:   starts.Add(3 * time.Hour),
	}
	assert.NoError(t, req.Validate())

	req.EndsAt = starts
	err := req.Validate()
	require.Error(t, err)
	custom, ok := err.(validation.CustomValidationErrors)
	require.True(t, ok)
	assert.Equal(t, "ends_at", custom[0].Field)

	req.EndsAt = starts.Add(-time.Hour)
	assert.Error(t, req.Validate())
}

func TestUpdateEventRequest_TimeOrdering(t *testing.T) {
	starts := time.Date(2026, 6, 10, 18, 0, 0, 0, time.UTC)
	ends := starts.Add(-time.Hour)

	req := usermgmt.UpdateEventRequest{ID: uuid.NewString(), StartsAt: &starts, EndsAt: &ends}
	assert.Error(t, req.Validate())

	// A single timestamp change cannot be checked here; the service
	// compares against the stored value.
	req.EndsAt = nil
	assert.NoError(t, req.Validate())
}

func TestCreateEventRequest_Capacity(t *testing.T) {
	starts := time.Now()
	req := usermgmt.CreateEventRequest{
		Name:     "Board Briefing",
		StartsAt: starts,
		EndsAt:   starts.Add(time.Hour),
	}

	zero := 0
	req.Capacity = &zero
	assert.Error(t, req.Validate())

	forty := 40
	req.Capacity = &forty
	assert.NoError(t, req.Validate())
}

func TestNewUserResponseOmitsCredentials(t *testing.T) {
	u := &domain.User{
		ID:           uuid.New(),
		Email:        "officer@donorops.io",
		Name:         "Priya Raman",
		PasswordHash: "$2a$10$secret",
		Role:         domain.UserRoleGiftOfficer,
		IsActive:     true,
	}

	resp := usermgmt.NewUserResponse(u)
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.Equal(t, "gift_officer", resp.Role)
}

func TestNewEventResponse(t *testing.T) {
	capacity := 120
	e := &domain.Event{
		ID:        uuid.New(),
		Name:      "Spring Donor Gala",
		StartsAt:  time.Date(2026, 6, 10, 18, 0, 0, 0, time.UTC),
		EndsAt:    time.Date(2026, 6, 10, 22, 0, 0, 0, time.UTC),
		Capacity:  &capacity,
		Status:    domain.EventStatusPublished,
		CreatedBy: uuid.New(),
	}

	resp := usermgmt.NewEventResponse(e, 87)
	assert.Equal(t, 87, resp.Registered)
	require.NotNil(t, resp.Capacity)
	assert.Equal(t, 120, *resp.Capacity)
	assert.Equal(t, "published", resp.Status)
}
