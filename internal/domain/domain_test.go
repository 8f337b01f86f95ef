package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donorops/backend/internal/domain"
)

func TestUserRolePermissions(t *testing.T) {
	assert.True(t, domain.UserRoleAdmin.CanManageUsers())
	assert.False(t, domain.UserRoleGiftOfficer.CanManageUsers())
	assert.False(t, domain.UserRoleViewer.CanManageUsers())

	assert.True(t, domain.UserRoleAdmin.CanManageGiving())
	assert.True(t, domain.UserRoleGiftOfficer.CanManageGiving())
	assert.False(t, domain.UserRoleViewer.CanManageGiving())
}

func TestUserRoleValid(t *testing.T) {
	assert.True(t, domain.UserRoleAdmin.Valid())
	assert.True(t, domain.UserRoleGiftOfficer.Valid())
	assert.True(t, domain.UserRoleViewer.Valid())
	assert.False(t, domain.UserRole("superuser").Valid())
}

func TestDonorStageValid(t *testing.T) {
	for _, stage := range []domain.DonorStage{
		domain.DonorStageProspect,
		domain.DonorStageCultivation,
		domain.DonorStageSolicitation,
		domain.DonorStageStewardship,
	} {
		assert.True(t, stage.Valid(), string(stage))
	}
	assert.False(t, domain.DonorStage("lapsed").Valid())
}

func TestDonorFullName(t *testing.T) {
	d := domain.Donor{FirstName: "Eleanor", LastName: "Whitfield"}
	assert.Equal(t, "Eleanor Whitfield", d.FullName())

	orgOnly := domain.Donor{LastName: "Whitfield Family Trust"}
	assert.Equal(t, "Whitfield Family Trust", orgOnly.FullName())
}

func TestGiftKindValid(t *testing.T) {
	for _, kind := range []domain.GiftKind{
		domain.GiftKindCash,
		domain.GiftKindStock,
		domain.GiftKindInKind,
		domain.GiftKindBequest,
		domain.GiftKindPledgePayment,
	} {
		assert.True(t, kind.Valid(), string(kind))
	}
	assert.False(t, domain.GiftKind("crypto").Valid())
}

func TestEventStatusAcceptsRegistrations(t *testing.T) {
	assert.True(t, domain.EventStatusDraft.AcceptsRegistrations())
	assert.True(t, domain.EventStatusPublished.AcceptsRegistrations())
	assert.False(t, domain.EventStatusCancelled.AcceptsRegistrations())
	assert.False(t, domain.EventStatusCompleted.AcceptsRegistrations())
}
