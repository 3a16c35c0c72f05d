package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/application"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/application/services"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/interfaces/rest"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

type TransactionFilters struct {
	Status string `json:"status,omitempty"`
	Type   string `json:"type,omitempty"`
}

type TransactionListResponse struct {
	Data    json.RawMessage    `json:"data"`
	Page    int                `json:"page"`
	Limit   int                `json:"limit"`
	Filters TransactionFilters `json:"filters"`
}

type TransactionResponse struct {
	Data       json.RawMessage `json:"data"`
	Identifier string          `json:"identifier"`
	Timestamp  time.Time       `json:"timestamp"`
}

func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	var q services.TransactionQuery
	query := r.URL.Query()

	for name, dest := range map[string]any{
		"page":   &q.Page,
		"limit":  &q.Limit,
		"status": &q.Status,
		"type":   &q.Type,
	} {
		if err := runtime.BindQueryParameter("form", true, false, name, query, dest); err != nil {
			rest.WriteError(w, h.logger, application.NewInvalidInputError("invalid query parameter "+name))
			return
		}
	}

	data, applied, err := h.transactions.List(r.Context(), q)
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, TransactionListResponse{
		Data:  data,
		Page:  applied.Page,
		Limit: applied.Limit,
		Filters: TransactionFilters{
			Status: applied.Status,
			Type:   applied.Type,
		},
	})
}

func (h *Handlers) GetTransaction(w http.ResponseWriter, r *http.Request) {
	identifier, err := bindPathParam(r, "identifier")
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}

	data, err := h.transactions.Get(r.Context(), identifier)
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, TransactionResponse{
		Data:       data,
		Identifier: identifier,
		Timestamp:  time.Now().UTC(),
	})
}

func bindPathParam(r *http.Request, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &value, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return "", application.NewInvalidInputError("invalid path parameter " + name)
	}
	return value, nil
}
