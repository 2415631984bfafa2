package storage

import (
	"context"
	"time"
)

// Ledger records donations the poller confirmed and answers the
// running totals shown on the page.
type Ledger interface {
	RecordConfirmed(ctx context.Context, amount int64, confirmedAt time.Time) error
	Summary(ctx context.Context) (Summary, error)
}

type Summary struct {
	TotalDonations int64 `json:"totalDonations"`
	TotalAmount    int64 `json:"totalAmount"`
}
