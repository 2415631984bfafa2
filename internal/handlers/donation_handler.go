package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"donateqr/internal/controller"
	"donateqr/internal/model"
	"donateqr/internal/storage"
	"donateqr/internal/view"
)

// FeedProbe answers whether the transaction feed looks reachable right now.
type FeedProbe interface {
	Reachable(ctx context.Context) bool
}

type DonationHandler struct {
	controller *controller.Controller
	state      *view.State
	ledger     storage.Ledger
	probe      FeedProbe
}

func NewDonationHandler(c *controller.Controller, state *view.State, ledger storage.Ledger, probe FeedProbe) *DonationHandler {
	return &DonationHandler{
		controller: c,
		state:      state,
		ledger:     ledger,
		probe:      probe,
	}
}

func (h *DonationHandler) Register(app *fiber.App) {
	app.Post("/donation/preset", h.SelectPreset)
	app.Post("/donation/custom", h.SetCustomAmount)
	app.Get("/donation/target", h.Target)
	app.Post("/donation/confirm", h.Confirm)
	app.Get("/donation/status", h.Status)
	app.Get("/donations-summary", h.Summary)
	app.Get("/health", h.Health)
}

type presetRequest struct {
	Amount int64 `json:"amount"`
}

type customRequest struct {
	Input string `json:"input"`
}

type targetResponse struct {
	Amount     int64  `json:"amount"`
	QRImageURL string `json:"qrImageUrl,omitempty"`
}

type confirmResponse struct {
	Outcome  model.PollOutcome `json:"outcome"`
	Amount   int64             `json:"amount"`
	Attempts int               `json:"attempts"`
}

func (h *DonationHandler) SelectPreset(c *fiber.Ctx) error {
	var req presetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if err := h.controller.SelectPreset(req.Amount); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(h.targetResponse())
}

func (h *DonationHandler) SetCustomAmount(c *fiber.Ctx) error {
	var req customRequest
	if err := c.BodyParser(&req); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	h.controller.SetCustomAmount(req.Input)
	return c.JSON(h.targetResponse())
}

func (h *DonationHandler) Target(c *fiber.Ctx) error {
	return c.JSON(h.targetResponse())
}

func (h *DonationHandler) Confirm(c *fiber.Ctx) error {
	result, err := h.controller.ConfirmDonation(c.Context())
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoAmountSelected):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, model.ErrConfirmationInFlight):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		case errors.Is(err, model.ErrNotYetConfirmed):
			// Terminal but ordinary: the donor just retries.
		default:
			return c.Status(fiber.StatusBadGateway).JSON(confirmResponse{
				Outcome:  result.Outcome,
				Amount:   result.Amount,
				Attempts: result.Attempts,
			})
		}
	}

	return c.JSON(confirmResponse{
		Outcome:  result.Outcome,
		Amount:   result.Amount,
		Attempts: result.Attempts,
	})
}

func (h *DonationHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.state.Current())
}

func (h *DonationHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.ledger.Summary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusOK).JSON(storage.Summary{})
	}
	return c.JSON(summary)
}

func (h *DonationHandler) Health(c *fiber.Ctx) error {
	if !h.probe.Reachable(c.Context()) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"feed": "unreachable"})
	}
	return c.JSON(fiber.Map{"feed": "ok"})
}

func (h *DonationHandler) targetResponse() targetResponse {
	return targetResponse{
		Amount:     h.controller.CurrentTarget().Amount,
		QRImageURL: h.controller.QRImageURL(),
	}
}
