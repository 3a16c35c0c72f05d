package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/interfaces/rest"
)

// CardAction relays one of the provider's virtual card POST actions.
func (h *Handlers) CardAction(w http.ResponseWriter, r *http.Request) {
	action, err := bindPathParam(r, "action")
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}

	body, err := rest.ReadRawJSON(r, w)
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}

	h.relay(w)(h.cards.Action(r.Context(), action, body))
}

func (h *Handlers) ListCards(w http.ResponseWriter, r *http.Request) {
	h.relay(w)(h.cards.ListCards(r.Context()))
}

func (h *Handlers) GetCard(w http.ResponseWriter, r *http.Request) {
	id, err := bindPathParam(r, "id")
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}
	h.relay(w)(h.cards.GetCard(r.Context(), id))
}

func (h *Handlers) CardTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := bindPathParam(r, "id")
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}
	h.relay(w)(h.cards.CardTransactions(r.Context(), id))
}

func (h *Handlers) AllCardTransactions(w http.ResponseWriter, r *http.Request) {
	h.relay(w)(h.cards.AllTransactions(r.Context()))
}

func (h *Handlers) ListCardUsers(w http.ResponseWriter, r *http.Request) {
	h.relay(w)(h.cards.ListUsers(r.Context()))
}

func (h *Handlers) GetCardUser(w http.ResponseWriter, r *http.Request) {
	id, err := bindPathParam(r, "id")
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}
	h.relay(w)(h.cards.GetUser(r.Context(), id))
}

func (h *Handlers) UpdateCardUser(w http.ResponseWriter, r *http.Request) {
	id, err := bindPathParam(r, "id")
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}

	body, err := rest.ReadRawJSON(r, w)
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}

	h.relay(w)(h.cards.UpdateUser(r.Context(), id, body))
}

func (h *Handlers) EnableAirlines(w http.ResponseWriter, r *http.Request) {
	body, err := rest.ReadRawJSON(r, w)
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}

	h.relay(w)(h.cards.EnableAirlines(r.Context(), body))
}

// relay writes the provider body unchanged on success.
func (h *Handlers) relay(w http.ResponseWriter) func(json.RawMessage, error) {
	return func(body json.RawMessage, err error) {
		if err != nil {
			rest.WriteError(w, h.logger, err)
			return
		}
		rest.WriteJSON(w, http.StatusOK, body)
	}
}
