// Package handlers adapts HTTP requests to the gateway's application services.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/application"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/application/services"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/interfaces/rest"
	"github.com/go-playground/validator"
)

// WebhookTester delivers one event synchronously and reports the outcome.
type WebhookTester interface {
	Send(ctx context.Context, event string, payload any, reference string) error
}

// Pinger reports whether an optional dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the collaborators of Handlers. Inbox and Database are nil
// when the inbound webhook journal is disabled.
type Dependencies struct {
	Orchestrator *services.Orchestrator
	Transactions *services.TransactionService
	Cards        *services.CardService
	Tester       WebhookTester
	Inbox        application.InboxRepository
	Database     Pinger
	Logger       *slog.Logger
}

type Handlers struct {
	orchestrator *services.Orchestrator
	transactions *services.TransactionService
	cards        *services.CardService
	tester       WebhookTester
	inbox        application.InboxRepository
	database     Pinger
	validate     *validator.Validate
	logger       *slog.Logger
}

func NewHandlers(deps Dependencies) *Handlers {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handlers{
		orchestrator: deps.Orchestrator,
		transactions: deps.Transactions,
		cards:        deps.Cards,
		tester:       deps.Tester,
		inbox:        deps.Inbox,
		database:     deps.Database,
		validate:     validate,
		logger:       deps.Logger.With("component", "http"),
	}
}

// InboxEnabled reports whether inbound webhooks are journalled.
func (h *Handlers) InboxEnabled() bool {
	return h.inbox != nil
}

// decodeRequest reads the JSON body into dst and checks its struct tags.
func (h *Handlers) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := rest.DecodeJSON(r, w, dst); err != nil {
		return err
	}

	if err := h.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return application.NewInvalidInputError(fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
		return application.NewInvalidInputError(err.Error())
	}

	return nil
}
