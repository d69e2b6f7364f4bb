package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohanwest/pancake/app/models"
)

func TestCreateOrderStartsPending(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()

	items := models.RawJSON(`[{"name":"pancakes","qty":2}]`)
	order, err := svc.Create("user-1", "alice@example.com", items, 12.50)
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, "alice@example.com", order.UserEmail)
	assert.Equal(t, 12.50, order.Total)
	assert.JSONEq(t, `[{"name":"pancakes","qty":2}]`, string(order.Items))
}

func TestSetOrderStatusOverwrites(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()

	order, err := svc.Create("user-1", "alice@example.com", nil, 5)
	require.NoError(t, err)

	// No transition graph: any status may follow any other, including
	// walking backwards.
	for _, status := range []string{
		models.OrderStatusConfirmed,
		models.OrderStatusCompleted,
		models.OrderStatusCancelled,
		models.OrderStatusPending,
	} {
		updated, err := svc.SetStatus(order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestSetOrderStatusUnknownID(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()

	_, err := svc.SetStatus("missing", models.OrderStatusConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrders(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()

	_, err := svc.Create("user-1", "a@example.com", nil, 1)
	require.NoError(t, err)
	_, err = svc.Create("user-2", "b@example.com", nil, 2)
	require.NoError(t, err)

	orders, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
