package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"donateqr/internal/model"
	"donateqr/internal/poller"
	"donateqr/internal/selector"
	"donateqr/internal/storage"
	"donateqr/internal/view"
)

const (
	submitLabelIdle    = "I have transferred"
	submitLabelWorking = "Checking..."

	msgLoading        = "Looking for your transfer, hold on..."
	msgNotYetReceived = "Transfer not seen yet. Give it a moment and press the button again."
	msgFeedDown       = "Could not reach the payment records. Please try again."
	msgNoAmount       = "Pick or enter a donation amount first."
)

// Controller owns the session-scoped state: the current target, the single
// in-flight confirmation, the presenter, and the confirmed-donation ledger.
type Controller struct {
	selector  *selector.AmountSelector
	poller    *poller.Poller
	presenter view.Presenter
	ledger    storage.Ledger
	inFlight  atomic.Bool
}

func New(sel *selector.AmountSelector, p *poller.Poller, presenter view.Presenter, ledger storage.Ledger) *Controller {
	return &Controller{
		selector:  sel,
		poller:    p,
		presenter: presenter,
		ledger:    ledger,
	}
}

func (c *Controller) SelectPreset(amount int64) error {
	return c.selector.SelectPreset(amount)
}

func (c *Controller) SetCustomAmount(rawInput string) {
	c.selector.SetCustomAmount(rawInput)
}

func (c *Controller) CurrentTarget() model.DonationTarget {
	return c.selector.CurrentTarget()
}

func (c *Controller) QRImageURL() string {
	return c.selector.QRImageURL()
}

// ConfirmDonation runs one confirmation session against the current target.
// A second call while one is in flight is rejected, not queued.
func (c *Controller) ConfirmDonation(ctx context.Context) (poller.Result, error) {
	target := c.selector.CurrentTarget()
	if !target.IsSet() {
		c.presenter.SetStatus(view.StatusError, msgNoAmount)
		return poller.Result{}, model.ErrNoAmountSelected
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		return poller.Result{}, model.ErrConfirmationInFlight
	}
	defer c.inFlight.Store(false)

	c.presenter.SetSubmit(false, submitLabelWorking)
	c.presenter.SetStatus(view.StatusLoading, msgLoading)
	defer c.presenter.SetSubmit(true, submitLabelIdle)

	result, err := c.poller.Confirm(ctx, target)

	switch result.Outcome {
	case model.OutcomeConfirmed:
		c.presenter.SetStatus(view.StatusSuccess,
			fmt.Sprintf("Received %d. Thank you for your kindness!", result.Amount))
		c.recordConfirmed(result.Amount)
	case model.OutcomeExhausted:
		c.presenter.SetStatus(view.StatusError, msgNotYetReceived)
	case model.OutcomeTransportFailed:
		c.presenter.SetStatus(view.StatusError, msgFeedDown)
	}

	return result, err
}

func (c *Controller) recordConfirmed(amount int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := c.ledger.RecordConfirmed(ctx, amount, time.Now()); err != nil {
		slog.Error("failed to record confirmed donation", "amount", amount, "err", err)
	}
}
