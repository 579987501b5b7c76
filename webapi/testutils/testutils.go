// Package testutils provides helpers for exercising the HTTP API in tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	infra_eventbus "github.com/amirasaad/ledger/infra/eventbus"
	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain/money"
	"github.com/amirasaad/ledger/webapi"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite provides a test suite with a fresh in-memory application per test.
type E2ETestSuite struct {
	suite.Suite
	App      *app.App
	FiberApp *fiber.App
	Bus      *infra_eventbus.MemoryEventBus
	Cfg      *config.App
}

// SetupTest builds a new application so tests never share ledger state.
func (s *E2ETestSuite) SetupTest() {
	s.Cfg = TestConfig()
	a, bus, err := NewTestApp(s.Cfg)
	s.Require().NoError(err)
	s.App = a
	s.Bus = bus
	s.FiberApp = webapi.SetupApp(a)
}

// NewTestApp builds an application from cfg with a silent logger and a
// synchronous bus whose published events can be inspected.
func NewTestApp(cfg *config.App) (*app.App, *infra_eventbus.MemoryEventBus, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := infra_eventbus.NewWithMemory(logger)
	a, err := app.New(&app.Deps{EventBus: bus, Logger: logger}, cfg)
	if err != nil {
		return nil, nil, err
	}
	return a, bus, nil
}

// TestConfig returns the default configuration without reading the environment.
func TestConfig() *config.App {
	return &config.App{
		Env:       "test",
		Branch:    "0001",
		Server:    &config.Server{Scheme: "http", Host: "localhost", Port: 3000},
		Log:       &config.Log{Format: "text"},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
		Limits: &config.Limits{
			WithdrawalAmount:  money.FromCents(50000),
			DailyWithdrawals:  3,
			DailyTransactions: 10,
		},
		EventBus: &config.EventBus{Driver: "memory"},
	}
}

// MakeRequest is a helper for making HTTP requests in tests
func MakeRequest(app *fiber.App, method, path, body string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		panic(err) // For standalone tests, panic on error
	}
	return resp
}

// DecodeJSON decodes the response body into a value of type T and closes it.
func DecodeJSON[T any](resp *http.Response) T {
	defer resp.Body.Close() //nolint:errcheck
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		panic(err)
	}
	return out
}

// FakeCustomerBody returns a JSON body for POST /customers with the given id
// and random personal data.
func FakeCustomerBody(id string) string {
	body, _ := json.Marshal(map[string]string{
		"id":         id,
		"name":       gofakeit.Name(),
		"birth_date": gofakeit.DateRange(time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC)).Format("02-01-2006"),
		"address":    gofakeit.Address().Address,
	})
	return string(body)
}
