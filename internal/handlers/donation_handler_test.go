package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"donateqr/internal/controller"
	"donateqr/internal/feed"
	"donateqr/internal/handlers"
	"donateqr/internal/poller"
	"donateqr/internal/qrlink"
	"donateqr/internal/selector"
	"donateqr/internal/storage"
	"donateqr/internal/view"
)

func newApp(t *testing.T, feedBody string, feedStatus int) *fiber.App {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if feedStatus != http.StatusOK {
			w.WriteHeader(feedStatus)
			return
		}
		w.Write([]byte(feedBody))
	}))
	t.Cleanup(srv.Close)

	state := view.NewState("I have transferred")
	sel := selector.New(qrlink.Builder{
		BaseURL:   "https://img.example.test",
		BankID:    "970436",
		AccountNo: "0123456789",
		Template:  "compact2",
	}, state)
	feedClient := feed.NewClient(srv.Client(), srv.URL)
	p := poller.New(feedClient, 2, time.Millisecond)
	ledger := storage.NewMemoryLedger()
	c := controller.New(sel, p, state, ledger)

	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})
	handlers.NewDonationHandler(c, state, ledger, feedClient).Register(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(raw)
}

func TestSelectPresetEndpoint(t *testing.T) {
	app := newApp(t, `{"data":[]}`, http.StatusOK)

	res, body := doJSON(t, app, http.MethodPost, "/donation/preset", `{"amount":50000}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, `"amount":50000`)
	require.Contains(t, body, "970436-0123456789-compact2.png")
}

func TestSelectPresetEndpointRejectsZero(t *testing.T) {
	app := newApp(t, `{"data":[]}`, http.StatusOK)

	res, _ := doJSON(t, app, http.MethodPost, "/donation/preset", `{"amount":0}`)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestCustomAmountEndpointResetsOnGarbage(t *testing.T) {
	app := newApp(t, `{"data":[]}`, http.StatusOK)

	res, body := doJSON(t, app, http.MethodPost, "/donation/custom", `{"input":"not a number"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, `"amount":0`)
	require.NotContains(t, body, "qrImageUrl")
}

func TestConfirmEndpointWithoutAmount(t *testing.T) {
	app := newApp(t, `{"data":[]}`, http.StatusOK)

	res, _ := doJSON(t, app, http.MethodPost, "/donation/confirm", "")
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestConfirmEndpointConfirmed(t *testing.T) {
	app := newApp(t, `{"data":[{"amount":50000}]}`, http.StatusOK)

	res, _ := doJSON(t, app, http.MethodPost, "/donation/preset", `{"amount":50000}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body := doJSON(t, app, http.MethodPost, "/donation/confirm", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, `"outcome":"confirmed"`)

	res, body = doJSON(t, app, http.MethodGet, "/donations-summary", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, `"totalDonations":1`)
	require.Contains(t, body, `"totalAmount":50000`)
}

func TestConfirmEndpointExhausted(t *testing.T) {
	app := newApp(t, `{"data":[{"amount":1}]}`, http.StatusOK)

	res, _ := doJSON(t, app, http.MethodPost, "/donation/preset", `{"amount":50000}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body := doJSON(t, app, http.MethodPost, "/donation/confirm", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, `"outcome":"exhausted"`)
}

func TestConfirmEndpointTransportFailure(t *testing.T) {
	app := newApp(t, "", http.StatusInternalServerError)

	res, _ := doJSON(t, app, http.MethodPost, "/donation/preset", `{"amount":50000}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body := doJSON(t, app, http.MethodPost, "/donation/confirm", "")
	require.Equal(t, http.StatusBadGateway, res.StatusCode)
	require.Contains(t, body, `"outcome":"transport_failed"`)
}

func TestStatusEndpointTracksFlow(t *testing.T) {
	app := newApp(t, `{"data":[{"amount":20000}]}`, http.StatusOK)

	doJSON(t, app, http.MethodPost, "/donation/preset", `{"amount":20000}`)
	doJSON(t, app, http.MethodPost, "/donation/confirm", "")

	res, body := doJSON(t, app, http.MethodGet, "/donation/status", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, `"statusLevel":"success"`)
	require.Contains(t, body, `"submitEnabled":true`)
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("feed reachable", func(t *testing.T) {
		app := newApp(t, `{"data":[]}`, http.StatusOK)
		res, _ := doJSON(t, app, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("feed down", func(t *testing.T) {
		app := newApp(t, "", http.StatusBadGateway)
		res, _ := doJSON(t, app, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	})
}
