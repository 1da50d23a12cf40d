package models

import (
	"fmt"
	"strconv"
	"time"
)

const (
	OrderNumberPrefix   = "ORD"
	InvoiceNumberPrefix = "INV"
)

// NextDocumentNumber produces the next human-readable document number for a
// prefix, formatted {PREFIX}-{YY}{MM}-{SEQ}. The sequence is derived from the
// trailing four digits of latest (the most recent number of that prefix,
// fetched by creation time descending) and starts at 1 when latest is empty or
// unparseable. The counter carries across month boundaries; only the visible
// YYMM segment changes. Uniqueness is enforced by the database index on the
// number column, not here.
func NextDocumentNumber(prefix string, now time.Time, latest string) string {
	sequence := 1
	tail := latest
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	if last, err := strconv.Atoi(tail); err == nil && last >= 0 {
		sequence = last + 1
	}

	// %04d grows past four digits after 9999 instead of rolling over.
	return fmt.Sprintf("%s-%02d%02d-%04d", prefix, now.Year()%100, int(now.Month()), sequence)
}
