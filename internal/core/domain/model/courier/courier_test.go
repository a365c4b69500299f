package courier_test

import (
	"testing"

	"hyperlocal/internal/core/domain/model/courier"
	"hyperlocal/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourier(t *testing.T) {
	t.Run("should create valid courier with all valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()

		c, err := courier.NewCourier(id, "Ravi", "+91-9000000001")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.ID().IsEqual(id))
		assert.Equal(t, "Ravi", c.Name())
		assert.Equal(t, "+91-9000000001", c.Contact())
		assert.False(t, c.IsAvailable())
		assert.Zero(t, c.TotalCommission())
	})

	t.Run("should generate a 6 digit login code", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Ravi", "+91-9000000001")

		require.NoError(t, err)
		require.Len(t, c.LoginCode(), 6)
		for _, r := range c.LoginCode() {
			assert.True(t, r >= '0' && r <= '9')
		}
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		c, err := courier.NewCourier(invalidID, "Ravi", "+91-9000000001")

		require.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "", "+91-9000000001")

		require.Error(t, err)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, courier.ErrNameIsRequired)
	})

	t.Run("should fail with empty contact", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Ravi", "")

		require.Error(t, err)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, courier.ErrContactIsRequired)
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID

		c, err := courier.NewCourier(invalidID, "", "")

		require.Error(t, err)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, courier.ErrNameIsRequired)
		assert.ErrorIs(t, err, courier.ErrContactIsRequired)
	})

	t.Run("zero value courier should fail validation", func(t *testing.T) {
		var c courier.Courier
		assert.ErrorIs(t, c.Validate(), courier.ErrCourierIsNotConstructed)
	})
}

func TestRestoreCourier(t *testing.T) {
	t.Run("should restore a persisted courier verbatim", func(t *testing.T) {
		id := kernel.NewUUID()

		c, err := courier.RestoreCourier(id, "Ravi", "+91-9000000001", "123456", true, 250.5)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.ID().IsEqual(id))
		assert.Equal(t, "123456", c.LoginCode())
		assert.True(t, c.IsAvailable())
		assert.InDelta(t, 250.5, c.TotalCommission(), 0.001)
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		c, err := courier.RestoreCourier(kernel.NewUUID(), "", "+91-9000000001", "123456", false, 0)

		require.Error(t, err)
		assert.Nil(t, c)
	})
}

func TestCourierSetAvailability(t *testing.T) {
	t.Run("should toggle availability", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Ravi", "+91-9000000001")
		require.NoError(t, err)

		require.NoError(t, c.SetAvailability(true))
		assert.True(t, c.IsAvailable())

		require.NoError(t, c.SetAvailability(false))
		assert.False(t, c.IsAvailable())
	})

	t.Run("should fail on an unconstructed courier", func(t *testing.T) {
		var c courier.Courier
		assert.ErrorIs(t, c.SetAvailability(true), courier.ErrCourierIsNotConstructed)
	})
}
