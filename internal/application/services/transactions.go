package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/application"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/domain"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/infrastructure/upstream"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type TransactionQuery struct {
	Page   int
	Limit  int
	Status string
	Type   string
}

// Normalize applies paging defaults and bounds.
func (q TransactionQuery) Normalize() (TransactionQuery, error) {
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
	if q.Page < 1 {
		return q, application.NewInvalidInputError("page must be at least 1")
	}
	if q.Limit < 1 || q.Limit > MaxLimit {
		return q, application.NewInvalidInputError("limit must be between 1 and 100")
	}
	return q, nil
}

func (q TransactionQuery) values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	return v
}

// TransactionService relays transaction lookups to the provider unchanged.
type TransactionService struct {
	client application.ProviderClient
	logger *slog.Logger
}

func NewTransactionService(client application.ProviderClient, logger *slog.Logger) *TransactionService {
	return &TransactionService{
		client: client,
		logger: logger.With("component", "transactions"),
	}
}

func (s *TransactionService) List(ctx context.Context, q TransactionQuery) (json.RawMessage, TransactionQuery, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, q, err
	}

	resp, err := s.client.Get(ctx, "transactions", q.values())
	if err != nil {
		s.logger.Error("failed to list transactions", "page", q.Page, "limit", q.Limit, "error", err)
		return nil, q, err
	}
	return resp.Body, q, nil
}

// Get looks a transaction up by id or reference. A provider 404 is reported
// as not found rather than as an upstream failure.
func (s *TransactionService) Get(ctx context.Context, identifier string) (json.RawMessage, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, domain.NewMissingRequiredFieldError("identifier")
	}

	resp, err := s.client.Get(ctx, "transactions/"+url.PathEscape(identifier), nil)
	if err != nil {
		if providerErr, ok := upstream.IsProviderError(err); ok && providerErr.StatusCode == http.StatusNotFound {
			return nil, application.NewNotFoundError("Transaction not found", err)
		}
		s.logger.Error("failed to fetch transaction", "identifier", identifier, "error", err)
		return nil, err
	}
	return resp.Body, nil
}
