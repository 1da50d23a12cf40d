package models_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jauntkid/TailorPro/models"
)

func TestNextDocumentNumber(t *testing.T) {
	may2024 := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)

	t.Run("starts at 1 with no previous number", func(t *testing.T) {
		got := models.NextDocumentNumber(models.OrderNumberPrefix, may2024, "")

		assert.Equal(t, "ORD-2405-0001", got)
	})

	t.Run("increments the trailing four digits", func(t *testing.T) {
		got := models.NextDocumentNumber(models.OrderNumberPrefix, may2024, "ORD-2405-0041")

		assert.Equal(t, "ORD-2405-0042", got)
	})

	t.Run("sequence carries over a month boundary", func(t *testing.T) {
		got := models.NextDocumentNumber(models.OrderNumberPrefix, may2024, "ORD-2404-0099")

		assert.Equal(t, "ORD-2405-0100", got)
	})

	t.Run("invoice prefix", func(t *testing.T) {
		got := models.NextDocumentNumber(models.InvoiceNumberPrefix, may2024, "INV-2405-0007")

		assert.Equal(t, "INV-2405-0008", got)
	})

	t.Run("unparseable previous number falls back to 1", func(t *testing.T) {
		got := models.NextDocumentNumber(models.OrderNumberPrefix, may2024, "ORD-2405-XXXX")

		assert.Equal(t, "ORD-2405-0001", got)
	})

	t.Run("grows past four digits after 9999", func(t *testing.T) {
		got := models.NextDocumentNumber(models.OrderNumberPrefix, may2024, "ORD-2405-9999")

		assert.Equal(t, "ORD-2405-10000", got)
	})

	t.Run("single digit year and month are zero padded", func(t *testing.T) {
		jan2031 := time.Date(2031, time.January, 2, 0, 0, 0, 0, time.UTC)

		got := models.NextDocumentNumber(models.InvoiceNumberPrefix, jan2031, "")

		assert.Equal(t, "INV-3101-0001", got)
	})

	t.Run("tails are strictly increasing within a month", func(t *testing.T) {
		latest := ""
		var previous string
		for i := 0; i < 50; i++ {
			got := models.NextDocumentNumber(models.OrderNumberPrefix, may2024, latest)
			if previous != "" {
				assert.Greater(t, got, previous)
			}
			previous = got
			latest = got
		}
		assert.Equal(t, "ORD-2405-0050", previous)
	})
}

func ExampleNextDocumentNumber() {
	now := time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)
	fmt.Println(models.NextDocumentNumber("ORD", now, "ORD-2404-0099"))
	// Output: ORD-2405-0100
}
