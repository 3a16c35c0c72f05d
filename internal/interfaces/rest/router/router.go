// Package router assembles the gateway's chi routes and middleware chain.
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/api"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/interfaces/rest/middleware"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	// RequestTimeout bounds lookups, relays and the webhook test. Orchestration
	// routes are exempt.
	RequestTimeout time.Duration
	// Doc enables request validation against the OpenAPI document when set.
	Doc    *openapi3.T
	Logger *slog.Logger
}

func New(h *handlers.Handlers, opts Options) (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(opts.Logger))
	r.Use(middleware.Recovery(opts.Logger))
	r.Use(middleware.Metrics)

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/openapi.yaml", api.DocHandler)

	r.Get("/api/webhook", h.WebhookStatus)
	r.Post("/api/webhook", h.ReceiveWebhook)
	r.Put("/api/webhook", h.ReceiveWebhook)
	r.Patch("/api/webhook", h.ReceiveWebhook)

	v1 := chi.NewRouter()
	if opts.Doc != nil {
		validate, err := middleware.RequestValidator(opts.Doc, opts.Logger)
		if err != nil {
			return nil, err
		}
		v1.Use(validate)
	}

	// Runs skip the request timeout; each step is bounded by the upstream
	// client timeout and a failed run always answers with its reference.
	v1.Group(func(r chi.Router) {
		r.Post("/payouts", h.CreateBankPayout)
		r.Post("/payouts/mobile-money", h.CreateMobileMoneyPayout)

		r.Post("/trades", h.ExecuteTrade)
		r.Post("/trades/quote", h.QuoteTrade)
		r.Post("/trades/finalize", h.FinalizeTrade)

		r.Post("/swaps/bitcoin", h.SwapBitcoin)
	})

	v1.Group(func(r chi.Router) {
		if opts.RequestTimeout > 0 {
			r.Use(middleware.Timeout(opts.RequestTimeout))
		}

		r.Get("/transactions", h.ListTransactions)
		r.Get("/transactions/{identifier}", h.GetTransaction)

		r.Route("/virtual-cards", func(r chi.Router) {
			r.Post("/actions/{action}", h.CardAction)
			r.Get("/cards", h.ListCards)
			r.Get("/cards/transactions", h.AllCardTransactions)
			r.Get("/cards/{id}", h.GetCard)
			r.Get("/cards/{id}/transactions", h.CardTransactions)
			r.Get("/users", h.ListCardUsers)
			r.Get("/users/{id}", h.GetCardUser)
			r.Put("/users/{id}", h.UpdateCardUser)
			r.Put("/enable-airlines", h.EnableAirlines)
		})

		r.Post("/webhooks/test", h.SendTestWebhook)
		if h.InboxEnabled() {
			r.Get("/webhooks/inbound/{reference}", h.ListInboundWebhooks)
		}
	})

	r.Mount("/api/v1", v1)

	return r, nil
}
