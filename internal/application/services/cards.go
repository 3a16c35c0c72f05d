package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/application"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/domain"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/infrastructure/upstream"
)

const cardsPrefix = "virtual-cards/"

// cardActions maps the public action name to the provider path.
var cardActions = map[string]string{
	"register":         "registercarduser",
	"create":           "create",
	"topup":            "topup",
	"withdraw":         "withdraw",
	"freeze":           "freeze",
	"unfreeze":         "unfreeze",
	"terminate":        "terminate",
	"mock-transaction": "mock-transaction",
}

// CardService proxies the provider's virtual card API.
type CardService struct {
	client application.ProviderClient
	logger *slog.Logger
}

func NewCardService(client application.ProviderClient, logger *slog.Logger) *CardService {
	return &CardService{
		client: client,
		logger: logger.With("component", "virtual_cards"),
	}
}

// Action performs one of the POST card actions with the caller's body.
func (s *CardService) Action(ctx context.Context, action string, body json.RawMessage) (json.RawMessage, error) {
	path, ok := cardActions[action]
	if !ok {
		return nil, application.NewInvalidInputError("Invalid action")
	}
	return s.relay(s.client.Post(ctx, cardsPrefix+path, body))
}

func (s *CardService) ListCards(ctx context.Context) (json.RawMessage, error) {
	return s.relay(s.client.Get(ctx, cardsPrefix+"cards", nil))
}

func (s *CardService) GetCard(ctx context.Context, cardID string) (json.RawMessage, error) {
	path, err := idPath("cards", cardID, "card id")
	if err != nil {
		return nil, err
	}
	return s.relay(s.client.Get(ctx, path, nil))
}

func (s *CardService) CardTransactions(ctx context.Context, cardID string) (json.RawMessage, error) {
	path, err := idPath("cards", cardID, "card id")
	if err != nil {
		return nil, err
	}
	return s.relay(s.client.Get(ctx, path+"/transactions", nil))
}

func (s *CardService) AllTransactions(ctx context.Context) (json.RawMessage, error) {
	return s.relay(s.client.Get(ctx, cardsPrefix+"cards/transactions", nil))
}

func (s *CardService) ListUsers(ctx context.Context) (json.RawMessage, error) {
	return s.relay(s.client.Get(ctx, cardsPrefix+"users", nil))
}

func (s *CardService) GetUser(ctx context.Context, userID string) (json.RawMessage, error) {
	path, err := idPath("users", userID, "user id")
	if err != nil {
		return nil, err
	}
	return s.relay(s.client.Get(ctx, path, nil))
}

func (s *CardService) UpdateUser(ctx context.Context, userID string, body json.RawMessage) (json.RawMessage, error) {
	path, err := idPath("users", userID, "user id")
	if err != nil {
		return nil, err
	}
	return s.relay(s.client.Put(ctx, path, body))
}

func (s *CardService) EnableAirlines(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	return s.relay(s.client.Put(ctx, cardsPrefix+"enable-airlines", body))
}

func (s *CardService) relay(resp *upstream.Response, err error) (json.RawMessage, error) {
	if err != nil {
		if providerErr, ok := upstream.IsProviderError(err); ok && providerErr.StatusCode == http.StatusNotFound {
			return nil, application.NewNotFoundError(providerErr.Message, err)
		}
		s.logger.Error("virtual card call failed", "error", err)
		return nil, err
	}
	return resp.Body, nil
}

func idPath(collection, id, field string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", domain.NewMissingRequiredFieldError(field)
	}
	return cardsPrefix + collection + "/" + url.PathEscape(id), nil
}
