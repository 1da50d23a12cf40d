package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jauntkid/TailorPro/models"
)

func TestComputeTotalAmount(t *testing.T) {
	t.Run("sums price times quantity", func(t *testing.T) {
		items := []models.OrderItem{
			{Price: 100, Quantity: 2},
			{Price: 50, Quantity: 1},
		}

		assert.Equal(t, 250.0, models.ComputeTotalAmount(items))
	})

	t.Run("quantity defaults to 1 when unset", func(t *testing.T) {
		items := []models.OrderItem{
			{Price: 75},
			{Price: 25, Quantity: 0},
		}

		assert.Equal(t, 100.0, models.ComputeTotalAmount(items))
	})

	t.Run("empty list totals zero", func(t *testing.T) {
		assert.Equal(t, 0.0, models.ComputeTotalAmount(nil))
	})

	t.Run("rounds to two decimal places", func(t *testing.T) {
		items := []models.OrderItem{
			{Price: 0.1, Quantity: 3},
		}

		assert.Equal(t, 0.3, models.ComputeTotalAmount(items))
	})
}

func TestDeriveOrderStatus(t *testing.T) {
	statuses := func(ss ...models.OrderStatus) []models.OrderItem {
		items := make([]models.OrderItem, len(ss))
		for i, s := range ss {
			items[i] = models.OrderItem{Status: s}
		}
		return items
	}

	cases := []struct {
		name  string
		items []models.OrderItem
		want  models.OrderStatus
	}{
		{"no items", nil, models.OrderStatusNew},
		{"all new", statuses(models.OrderStatusNew, models.OrderStatusNew), models.OrderStatusNew},
		{"all completed", statuses(models.OrderStatusCompleted, models.OrderStatusCompleted), models.OrderStatusCompleted},
		{"all ready", statuses(models.OrderStatusReady, models.OrderStatusReady), models.OrderStatusReady},
		{"ready and completed mix", statuses(models.OrderStatusReady, models.OrderStatusCompleted), models.OrderStatusReady},
		{"some ready", statuses(models.OrderStatusReady, models.OrderStatusCompleted, models.OrderStatusNew), models.OrderStatusPartiallyReady},
		{"some in progress", statuses(models.OrderStatusInProgress, models.OrderStatusNew), models.OrderStatusInProgress},
		// Urgent and Cancelled items are invisible to the precedence chain.
		{"urgent alone", statuses(models.OrderStatusUrgent), models.OrderStatusNew},
		{"cancelled with in progress", statuses(models.OrderStatusCancelled, models.OrderStatusInProgress), models.OrderStatusInProgress},
		{"completed with urgent", statuses(models.OrderStatusCompleted, models.OrderStatusUrgent), models.OrderStatusPartiallyReady},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, models.DeriveOrderStatus(tc.items))
		})
	}
}

func TestSetItemStatus(t *testing.T) {
	now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

	newOrder := func() models.Order {
		return models.Order{
			Items: []models.OrderItem{
				{ID: 1, Status: models.OrderStatusNew},
				{ID: 2, Status: models.OrderStatusNew},
			},
		}
	}

	t.Run("unknown item returns not found", func(t *testing.T) {
		order := newOrder()

		err := order.SetItemStatus(99, models.OrderStatusReady, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("applies status and re-derives aggregate", func(t *testing.T) {
		order := newOrder()

		require.NoError(t, order.SetItemStatus(1, models.OrderStatusReady, now))

		assert.Equal(t, models.OrderStatusReady, order.Items[0].Status)
		assert.Equal(t, models.OrderStatusPartiallyReady, order.Status)
	})

	t.Run("missing deadline defaults to order due date", func(t *testing.T) {
		order := newOrder()
		due := now.Add(48 * time.Hour)
		order.DueDate = &due

		require.NoError(t, order.SetItemStatus(1, models.OrderStatusInProgress, now))

		require.NotNil(t, order.Items[0].Deadline)
		assert.Equal(t, due, *order.Items[0].Deadline)
	})

	t.Run("missing deadline falls back to now plus seven days", func(t *testing.T) {
		order := newOrder()

		require.NoError(t, order.SetItemStatus(1, models.OrderStatusInProgress, now))

		require.NotNil(t, order.Items[0].Deadline)
		assert.Equal(t, now.Add(7*24*time.Hour), *order.Items[0].Deadline)
	})

	t.Run("existing deadline is left alone", func(t *testing.T) {
		order := newOrder()
		deadline := now.Add(time.Hour)
		order.Items[0].Deadline = &deadline

		require.NoError(t, order.SetItemStatus(1, models.OrderStatusReady, now))

		assert.Equal(t, deadline, *order.Items[0].Deadline)
	})

	t.Run("completing stamps completedAt once", func(t *testing.T) {
		order := newOrder()

		require.NoError(t, order.SetItemStatus(1, models.OrderStatusCompleted, now))
		require.NotNil(t, order.Items[0].CompletedAt)
		first := *order.Items[0].CompletedAt

		later := now.Add(time.Hour)
		require.NoError(t, order.SetItemStatus(1, models.OrderStatusCompleted, later))

		assert.Equal(t, first, *order.Items[0].CompletedAt)
	})

	t.Run("repeated call yields the same state", func(t *testing.T) {
		first := newOrder()
		require.NoError(t, first.SetItemStatus(2, models.OrderStatusReady, now))

		second := newOrder()
		require.NoError(t, second.SetItemStatus(2, models.OrderStatusReady, now))
		require.NoError(t, second.SetItemStatus(2, models.OrderStatusReady, now))

		assert.Equal(t, first, second)
	})

	t.Run("completing every item completes the order", func(t *testing.T) {
		order := newOrder()

		require.NoError(t, order.SetItemStatus(1, models.OrderStatusCompleted, now))
		require.NoError(t, order.SetItemStatus(2, models.OrderStatusCompleted, now))

		assert.Equal(t, models.OrderStatusCompleted, order.Status)
	})
}
