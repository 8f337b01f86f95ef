package majorgifts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorops/backend/internal/schema/majorgifts"
)

func TestCreateDonorRequest(t *testing.T) {
	capacity := "50000.00"
	phone := "+14155552671"
	req := majorgifts.CreateDonorRequest{
		FirstName:      "Eleanor",
		LastName:       "Whitfield",
		Phone:          &phone,
		GivingCapacity: &capacity,
		Stage:          "prospect",
	}
	assert.NoError(t, req.Validate())

	t.Run("unknown stage", func(t *testing.T) {
		bad := req
		bad.Stage = "lapsed"
		assert.Error(t, bad.Validate())
	})

	t.Run("negative capacity", func(t *testing.T) {
		bad := req
		negative := "-100"
		bad.GivingCapacity = &negative
		assert.Error(t, bad.Validate())
	})

	t.Run("phone without country code", func(t *testing.T) {
		bad := req
		local := "4155552671"
		bad.Phone = &local
		assert.Error(t, bad.Validate())
	})
}

func TestGivingCapacityDecimal(t *testing.T) {
	capacity := "50000.00"
	req := majorgifts.CreateDonorRequest{
		FirstName:      "Eleanor",
		LastName:       "Whitfield",
		GivingCapacity: &capacity,
		Stage:          "prospect",
	}

	d := req.GivingCapacityDecimal()
	require.NotNil(t, d)
	assert.Equal(t, "50000.00", d.StringFixed(2))

	req.GivingCapacity = nil
	assert.Nil(t, req.GivingCapacityDecimal())
}
