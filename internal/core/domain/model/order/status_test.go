package order_test

import (
	"testing"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValidate(t *testing.T) {
	t.Run("should accept all defined statuses", func(t *testing.T) {
		statuses := []order.Status{
			order.StatusPending,
			order.StatusAccepted,
			order.StatusAssigned,
			order.StatusReady,
			order.StatusPickedUp,
			order.StatusDelivered,
			order.StatusRejected,
		}

		for _, s := range statuses {
			assert.NoError(t, s.Validate(), string(s))
		}
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		err := order.Status("shipped").Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "shipped")
	})

	t.Run("should reject empty status", func(t *testing.T) {
		var s order.Status
		assert.Error(t, s.Validate())
	})
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, order.StatusDelivered.IsTerminal())
	assert.True(t, order.StatusRejected.IsTerminal())

	for _, s := range []order.Status{
		order.StatusPending,
		order.StatusAccepted,
		order.StatusAssigned,
		order.StatusReady,
		order.StatusPickedUp,
	} {
		assert.False(t, s.IsTerminal(), string(s))
	}
}

func TestStatusCanTransition(t *testing.T) {
	type edge struct {
		from order.Status
		to   order.Status
		role kernel.Role
	}

	allowed := []edge{
		{order.StatusPending, order.StatusAccepted, kernel.RoleVendor},
		{order.StatusPending, order.StatusAccepted, kernel.RoleAdmin},
		{order.StatusPending, order.StatusRejected, kernel.RoleVendor},
		{order.StatusPending, order.StatusRejected, kernel.RoleAdmin},
		{order.StatusAccepted, order.StatusReady, kernel.RoleVendor},
		{order.StatusAccepted, order.StatusReady, kernel.RoleAdmin},
		{order.StatusAccepted, order.StatusAssigned, kernel.RoleAdmin},
		{order.StatusAssigned, order.StatusPickedUp, kernel.RoleCourier},
		{order.StatusReady, order.StatusPickedUp, kernel.RoleCourier},
		{order.StatusPickedUp, order.StatusDelivered, kernel.RoleCourier},
	}

	t.Run("should allow every valid edge for its role", func(t *testing.T) {
		for _, e := range allowed {
			assert.NoError(t, e.from.CanTransition(e.to, e.role),
				"%s -> %s as %s", e.from, e.to, e.role)
		}
	})

	t.Run("should reject edges missing from the table", func(t *testing.T) {
		invalid := []edge{
			{order.StatusPending, order.StatusReady, kernel.RoleVendor},
			{order.StatusPending, order.StatusDelivered, kernel.RoleCourier},
			{order.StatusAccepted, order.StatusRejected, kernel.RoleVendor},
			{order.StatusReady, order.StatusDelivered, kernel.RoleCourier},
			{order.StatusDelivered, order.StatusPending, kernel.RoleAdmin},
			{order.StatusDelivered, order.StatusDelivered, kernel.RoleCourier},
			{order.StatusRejected, order.StatusAccepted, kernel.RoleVendor},
		}

		for _, e := range invalid {
			err := e.from.CanTransition(e.to, e.role)

			require.Error(t, err, "%s -> %s as %s", e.from, e.to, e.role)
			assert.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})

	t.Run("should reject valid edges attempted by the wrong role", func(t *testing.T) {
		forbidden := []edge{
			{order.StatusPending, order.StatusAccepted, kernel.RoleBuyer},
			{order.StatusPending, order.StatusAccepted, kernel.RoleCourier},
			{order.StatusAccepted, order.StatusAssigned, kernel.RoleVendor},
			{order.StatusReady, order.StatusPickedUp, kernel.RoleVendor},
			{order.StatusPickedUp, order.StatusDelivered, kernel.RoleAdmin},
		}

		for _, e := range forbidden {
			err := e.from.CanTransition(e.to, e.role)

			require.Error(t, err, "%s -> %s as %s", e.from, e.to, e.role)
			assert.ErrorIs(t, err, kernel.ErrForbidden)
		}
	})

	t.Run("invalid transition error should carry the allowed set", func(t *testing.T) {
		err := order.StatusPending.CanTransition(order.StatusDelivered, kernel.RoleAdmin)

		var transitionErr order.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, order.StatusPending, transitionErr.From)
		assert.Equal(t, order.StatusDelivered, transitionErr.To)
		assert.ElementsMatch(t,
			[]order.Status{order.StatusAccepted, order.StatusRejected},
			transitionErr.Allowed)
	})
}

func TestStatusAllowedNext(t *testing.T) {
	assert.ElementsMatch(t,
		[]order.Status{order.StatusAccepted, order.StatusRejected},
		order.StatusPending.AllowedNext())
	assert.ElementsMatch(t,
		[]order.Status{order.StatusReady, order.StatusAssigned},
		order.StatusAccepted.AllowedNext())
	assert.ElementsMatch(t,
		[]order.Status{order.StatusPickedUp},
		order.StatusReady.AllowedNext())
	assert.Empty(t, order.StatusDelivered.AllowedNext())
	assert.Empty(t, order.StatusRejected.AllowedNext())
}
