package queries_test

import (
	"testing"

	"hyperlocal/internal/core/application/usecases/queries"
	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery_NoFilter(t *testing.T) {
	query, err := queries.NewListOrdersQuery(queryBuyer(t), nil)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Nil(t, query.Status())
}

func TestNewListOrdersQuery_WithStatusFilter(t *testing.T) {
	status := order.StatusPending
	query, err := queries.NewListOrdersQuery(queryAdmin(t), &status)
	require.NoError(t, err)

	require.NotNil(t, query.Status())
	assert.Equal(t, order.StatusPending, *query.Status())
}

func TestNewListOrdersQuery_InvalidStatusFilter(t *testing.T) {
	status := order.Status("teleported")
	_, err := queries.NewListOrdersQuery(queryAdmin(t), &status)
	require.Error(t, err)
}

func TestNewListOrdersQuery_InvalidCaller(t *testing.T) {
	_, err := queries.NewListOrdersQuery(kernel.Actor{}, nil)
	require.Error(t, err)
}

func TestListOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ListOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrListOrdersQueryIsNotConstructed)
}
