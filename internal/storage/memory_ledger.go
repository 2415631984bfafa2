package storage

import (
	"context"
	"sync"
	"time"
)

type donation struct {
	amount      int64
	confirmedAt time.Time
}

// MemoryLedger backs the summary when redis is not available.
type MemoryLedger struct {
	mu        sync.Mutex
	donations []donation
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

func (l *MemoryLedger) RecordConfirmed(_ context.Context, amount int64, confirmedAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.donations = append(l.donations, donation{amount: amount, confirmedAt: confirmedAt})
	return nil
}

func (l *MemoryLedger) Summary(_ context.Context) (Summary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	summary := Summary{}
	for _, d := range l.donations {
		summary.TotalDonations++
		summary.TotalAmount += d.amount
	}
	return summary, nil
}
