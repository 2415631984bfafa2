package model

import (
	"errors"
)

// DonationTarget is the amount the donor intends to pay, in whole VND.
// A zero Amount means no target has been chosen yet.
type DonationTarget struct {
	Amount int64 `json:"amount"`
}

func (t DonationTarget) IsSet() bool {
	return t.Amount > 0
}

// TransactionRecord is one row of the external transaction feed.
type TransactionRecord struct {
	Amount int64 `json:"amount"`
}

type PollOutcome string

const (
	OutcomePending         PollOutcome = "pending"
	OutcomeConfirmed       PollOutcome = "confirmed"
	OutcomeExhausted       PollOutcome = "exhausted"
	OutcomeTransportFailed PollOutcome = "transport_failed"
)

// Terminal reports whether no further automatic action follows the outcome.
func (o PollOutcome) Terminal() bool {
	switch o {
	case OutcomeConfirmed, OutcomeExhausted, OutcomeTransportFailed:
		return true
	}
	return false
}

var (
	ErrNoAmountSelected     = errors.New("no donation amount selected")
	ErrNotYetConfirmed      = errors.New("matching transaction not yet in feed")
	ErrFeedUnavailable      = errors.New("transaction feed unavailable")
	ErrConfirmationInFlight = errors.New("a confirmation is already in flight")
)
