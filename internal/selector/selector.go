package selector

import (
	"strconv"
	"strings"
	"sync"

	"donateqr/internal/model"
	"donateqr/internal/qrlink"
	"donateqr/internal/view"
)

// AmountSelector owns the single current DonationTarget. Every change is
// pushed into the presenter: amount display plus a QR refresh.
type AmountSelector struct {
	mu        sync.Mutex
	target    model.DonationTarget
	qr        qrlink.Builder
	presenter view.Presenter
}

func New(qr qrlink.Builder, presenter view.Presenter) *AmountSelector {
	return &AmountSelector{qr: qr, presenter: presenter}
}

// SelectPreset sets the target to one of the fixed preset amounts.
func (s *AmountSelector) SelectPreset(amount int64) error {
	if amount <= 0 {
		return model.ErrNoAmountSelected
	}

	s.mu.Lock()
	s.target = model.DonationTarget{Amount: amount}
	s.mu.Unlock()

	s.presenter.SetActivePreset(amount)
	s.refresh()
	return nil
}

// SetCustomAmount parses free-form input. Anything that is not a positive
// base-10 integer resets the target to unset; this is never an error.
func (s *AmountSelector) SetCustomAmount(rawInput string) {
	amount, err := strconv.ParseInt(strings.TrimSpace(rawInput), 10, 64)
	if err != nil || amount <= 0 {
		amount = 0
	}

	s.mu.Lock()
	s.target = model.DonationTarget{Amount: amount}
	s.mu.Unlock()

	// Free-form input always clears the preset highlight.
	s.presenter.SetActivePreset(0)
	s.refresh()
}

func (s *AmountSelector) CurrentTarget() model.DonationTarget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// QRImageURL returns the image reference for the current target, "" when unset.
func (s *AmountSelector) QRImageURL() string {
	return s.qr.ImageURL(s.CurrentTarget().Amount)
}

func (s *AmountSelector) refresh() {
	target := s.CurrentTarget()
	s.presenter.ShowAmount(target.Amount)

	if !target.IsSet() {
		s.presenter.ShowPlaceholder()
		return
	}
	s.presenter.ShowQR(s.qr.ImageURL(target.Amount))
}
