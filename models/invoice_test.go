package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jauntkid/TailorPro/models"
)

func TestInvoiceTotal(t *testing.T) {
	assert.Equal(t, 1050.0, models.InvoiceTotal(1000, 50, 100))
	assert.Equal(t, 1000.0, models.InvoiceTotal(1000, 0, 0))
	assert.Equal(t, -25.0, models.InvoiceTotal(0, 25, 0))
}

func TestAddPayment(t *testing.T) {
	now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

	t.Run("partial then full payment", func(t *testing.T) {
		inv := models.Invoice{TotalAmount: 1000, Balance: 1000, Status: models.InvoiceStatusUnpaid}

		require.NoError(t, inv.AddPayment(models.Payment{Amount: 400, Method: models.PaymentMethodCash}, now))
		assert.Equal(t, 400.0, inv.AmountPaid)
		assert.Equal(t, 600.0, inv.Balance)
		assert.Equal(t, models.InvoiceStatusPartiallyPaid, inv.Status)

		require.NoError(t, inv.AddPayment(models.Payment{Amount: 600, Method: models.PaymentMethodCard}, now))
		assert.Equal(t, 1000.0, inv.AmountPaid)
		assert.Equal(t, 0.0, inv.Balance)
		assert.Equal(t, models.InvoiceStatusPaid, inv.Status)
	})

	t.Run("overpayment is still paid", func(t *testing.T) {
		inv := models.Invoice{TotalAmount: 100, Balance: 100}

		require.NoError(t, inv.AddPayment(models.Payment{Amount: 150, Method: models.PaymentMethodMobileMoney}, now))

		assert.Equal(t, -50.0, inv.Balance)
		assert.Equal(t, models.InvoiceStatusPaid, inv.Status)
	})

	t.Run("missing amount or method is rejected", func(t *testing.T) {
		inv := models.Invoice{TotalAmount: 100, Balance: 100}

		assert.Error(t, inv.AddPayment(models.Payment{Method: models.PaymentMethodCash}, now))
		assert.Error(t, inv.AddPayment(models.Payment{Amount: 50}, now))
		assert.Empty(t, inv.Payments)
	})

	t.Run("unknown method is rejected", func(t *testing.T) {
		inv := models.Invoice{TotalAmount: 100, Balance: 100}

		assert.Error(t, inv.AddPayment(models.Payment{Amount: 50, Method: "Cheque"}, now))
	})

	t.Run("payment date defaults to now", func(t *testing.T) {
		inv := models.Invoice{TotalAmount: 100, Balance: 100}

		require.NoError(t, inv.AddPayment(models.Payment{Amount: 50, Method: models.PaymentMethodOther}, now))

		assert.Equal(t, now, inv.Payments[0].Date)
	})

	t.Run("explicit payment date is kept", func(t *testing.T) {
		inv := models.Invoice{TotalAmount: 100, Balance: 100}
		paid := now.Add(-24 * time.Hour)

		require.NoError(t, inv.AddPayment(models.Payment{Amount: 50, Method: models.PaymentMethodCash, Date: paid}, now))

		assert.Equal(t, paid, inv.Payments[0].Date)
	})
}

func TestRemovePayment(t *testing.T) {
	now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

	paidInvoice := func() models.Invoice {
		inv := models.Invoice{TotalAmount: 1000, Balance: 1000}
		require.NoError(t, inv.AddPayment(models.Payment{ID: 1, Amount: 400, Method: models.PaymentMethodCash}, now))
		require.NoError(t, inv.AddPayment(models.Payment{ID: 2, Amount: 600, Method: models.PaymentMethodCard}, now))
		return inv
	}

	t.Run("removing moves the status backward", func(t *testing.T) {
		inv := paidInvoice()
		require.Equal(t, models.InvoiceStatusPaid, inv.Status)

		removed, err := inv.RemovePayment(1)

		require.NoError(t, err)
		assert.Equal(t, 400.0, removed.Amount)
		assert.Equal(t, 600.0, inv.AmountPaid)
		assert.Equal(t, 400.0, inv.Balance)
		assert.Equal(t, models.InvoiceStatusPartiallyPaid, inv.Status)
		assert.Len(t, inv.Payments, 1)
	})

	t.Run("removing the last payment returns to unpaid", func(t *testing.T) {
		inv := paidInvoice()

		_, err := inv.RemovePayment(1)
		require.NoError(t, err)
		_, err = inv.RemovePayment(2)
		require.NoError(t, err)

		assert.Equal(t, 0.0, inv.AmountPaid)
		assert.Equal(t, 1000.0, inv.Balance)
		assert.Equal(t, models.InvoiceStatusUnpaid, inv.Status)
	})

	t.Run("unknown payment returns not found", func(t *testing.T) {
		inv := paidInvoice()

		_, err := inv.RemovePayment(99)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
		assert.Len(t, inv.Payments, 2)
	})
}

func TestRecalculate(t *testing.T) {
	t.Run("balance always reconciles with the ledger", func(t *testing.T) {
		inv := models.Invoice{TotalAmount: 500}
		inv.Payments = []models.Payment{
			{Amount: 120.5},
			{Amount: 79.5},
		}

		inv.Recalculate()

		assert.Equal(t, 200.0, inv.AmountPaid)
		assert.Equal(t, inv.TotalAmount-inv.AmountPaid, inv.Balance)
		assert.Equal(t, models.InvoiceStatusPartiallyPaid, inv.Status)
	})

	t.Run("cancelled is never re-derived", func(t *testing.T) {
		inv := models.Invoice{TotalAmount: 500, Status: models.InvoiceStatusCancelled}
		inv.Payments = []models.Payment{{Amount: 500}}

		inv.Recalculate()

		assert.Equal(t, 500.0, inv.AmountPaid)
		assert.Equal(t, 0.0, inv.Balance)
		assert.Equal(t, models.InvoiceStatusCancelled, inv.Status)
	})

	t.Run("empty ledger on an unpaid invoice stays unpaid", func(t *testing.T) {
		inv := models.Invoice{TotalAmount: 500, Balance: 500}

		inv.Recalculate()

		assert.Equal(t, 0.0, inv.AmountPaid)
		assert.Equal(t, 500.0, inv.Balance)
		assert.Equal(t, models.InvoiceStatusUnpaid, inv.Status)
	})
}
