package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"donateqr/internal/model"
)

// Feed is the read-only transaction source the poller scans for a match.
type Feed interface {
	FetchTransactions(ctx context.Context) ([]model.TransactionRecord, error)
}

// Poller runs one confirmation session at a time: up to maxAttempts feed
// reads, retryDelay apart, looking for a transaction equal to the target.
type Poller struct {
	feed        Feed
	maxAttempts int
	retryDelay  time.Duration
}

// Result is the terminal state of one confirmation session.
type Result struct {
	Outcome  model.PollOutcome
	Amount   int64
	Attempts int
}

type session struct {
	id           string
	target       model.DonationTarget
	attemptsMade int
}

func New(feed Feed, maxAttempts int, retryDelay time.Duration) *Poller {
	return &Poller{
		feed:        feed,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
	}
}

// Confirm polls the feed until the target amount shows up, the retry budget
// runs out, or the feed fails. A transport failure ends the session on the
// spot; the donor resubmits instead of the poller retrying it.
func (p *Poller) Confirm(ctx context.Context, target model.DonationTarget) (Result, error) {
	if !target.IsSet() {
		return Result{}, model.ErrNoAmountSelected
	}

	sess := session{id: uuid.NewString(), target: target}
	slog.Info("confirmation session started", "session", sess.id, "amount", target.Amount)

	for {
		records, err := p.feed.FetchTransactions(ctx)
		if err != nil {
			slog.Warn("feed request failed", "session", sess.id, "attempt", sess.attemptsMade+1, "err", err)
			return Result{
				Outcome:  model.OutcomeTransportFailed,
				Amount:   target.Amount,
				Attempts: sess.attemptsMade + 1,
			}, err
		}

		if match(records, sess.target.Amount) {
			slog.Info("donation confirmed", "session", sess.id, "amount", target.Amount)
			return Result{
				Outcome:  model.OutcomeConfirmed,
				Amount:   target.Amount,
				Attempts: sess.attemptsMade + 1,
			}, nil
		}

		sess.attemptsMade++
		if sess.attemptsMade >= p.maxAttempts {
			slog.Info("retry budget exhausted", "session", sess.id, "attempts", sess.attemptsMade)
			return Result{
				Outcome:  model.OutcomeExhausted,
				Amount:   target.Amount,
				Attempts: sess.attemptsMade,
			}, model.ErrNotYetConfirmed
		}

		select {
		case <-time.After(p.retryDelay):
		case <-ctx.Done():
			return Result{
				Outcome:  model.OutcomeTransportFailed,
				Amount:   target.Amount,
				Attempts: sess.attemptsMade,
			}, ctx.Err()
		}
	}
}

// Exact integer equality, first match wins.
func match(records []model.TransactionRecord, amount int64) bool {
	for _, record := range records {
		if record.Amount == amount {
			return true
		}
	}
	return false
}
