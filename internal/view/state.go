package view

import (
	"sync"
)

// Presenter is the output sink the behavior layer pushes UI changes into.
// The page never gets called back directly; it reads the resulting state
// through the status endpoint.
type Presenter interface {
	ShowAmount(amount int64)
	SetActivePreset(amount int64)
	ShowQR(imageURL string)
	ShowPlaceholder()
	SetStatus(level, message string)
	SetSubmit(enabled bool, label string)
}

const (
	StatusLoading = "loading"
	StatusSuccess = "success"
	StatusError   = "error"
)

// Snapshot is what GET /donation/status returns.
type Snapshot struct {
	Amount        int64  `json:"amount"`
	ActivePreset  int64  `json:"activePreset,omitempty"`
	QRImageURL    string `json:"qrImageUrl,omitempty"`
	Placeholder   bool   `json:"placeholder"`
	StatusLevel   string `json:"statusLevel,omitempty"`
	StatusMessage string `json:"statusMessage,omitempty"`
	SubmitEnabled bool   `json:"submitEnabled"`
	SubmitLabel   string `json:"submitLabel"`
}

// State is a Presenter that keeps the latest snapshot.
type State struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewState(submitLabel string) *State {
	return &State{snap: Snapshot{
		Placeholder:   true,
		SubmitEnabled: true,
		SubmitLabel:   submitLabel,
	}}
}

func (s *State) ShowAmount(amount int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Amount = amount
}

// SetActivePreset marks which preset is highlighted; 0 clears the highlight.
func (s *State) SetActivePreset(amount int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.ActivePreset = amount
}

func (s *State) ShowQR(imageURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.QRImageURL = imageURL
	s.snap.Placeholder = false
}

func (s *State) ShowPlaceholder() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.QRImageURL = ""
	s.snap.Placeholder = true
}

func (s *State) SetStatus(level, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.StatusLevel = level
	s.snap.StatusMessage = message
}

func (s *State) SetSubmit(enabled bool, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.SubmitEnabled = enabled
	s.snap.SubmitLabel = label
}

func (s *State) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
