package handlers

import (
	"net/http"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/application/services"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/domain"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/interfaces/rest"
)

func (h *Handlers) CreateBankPayout(w http.ResponseWriter, r *http.Request) {
	var req BankPayoutRequest
	if err := h.decodeRequest(w, r, &req); err != nil {
		h.writeRunFailure(w, domain.KindBankPayout, nil, err)
		return
	}

	h.run(w, r, domain.KindBankPayout, req.toDomain())
}

func (h *Handlers) CreateMobileMoneyPayout(w http.ResponseWriter, r *http.Request) {
	var req MobileMoneyPayoutRequest
	if err := h.decodeRequest(w, r, &req); err != nil {
		h.writeRunFailure(w, domain.KindMobileMoneyPayout, nil, err)
		return
	}

	h.run(w, r, domain.KindMobileMoneyPayout, req.toDomain())
}

func (h *Handlers) ExecuteTrade(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	if err := h.decodeRequest(w, r, &req); err != nil {
		h.writeRunFailure(w, domain.KindSpotTrade, nil, err)
		return
	}

	h.run(w, r, domain.KindSpotTrade, req.toDomain())
}

// QuoteTrade runs only the quote step so the caller can review pricing.
func (h *Handlers) QuoteTrade(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	if err := h.decodeRequest(w, r, &req); err != nil {
		h.writeRunFailure(w, domain.KindSpotTrade, nil, err)
		return
	}

	run, err := h.orchestrator.Quote(r.Context(), domain.KindSpotTrade, req.toDomain())
	if err != nil {
		h.writeRunFailure(w, domain.KindSpotTrade, run, err)
		return
	}

	h.writeRun(w, domain.KindSpotTrade, run)
}

func (h *Handlers) FinalizeTrade(w http.ResponseWriter, r *http.Request) {
	var req TradeFinalizeRequest
	if err := h.decodeRequest(w, r, &req); err != nil {
		h.writeRunFailure(w, domain.KindSpotTrade, nil, err)
		return
	}

	run, err := h.orchestrator.Finalize(r.Context(), domain.KindSpotTrade, req.QuoteID, req.CustomerID, req.Reference)
	if err != nil {
		h.writeRunFailure(w, domain.KindSpotTrade, run, err)
		return
	}

	h.writeRun(w, domain.KindSpotTrade, run)
}

func (h *Handlers) SwapBitcoin(w http.ResponseWriter, r *http.Request) {
	var req SwapRequest
	if err := h.decodeRequest(w, r, &req); err != nil {
		h.writeRunFailure(w, domain.KindBitcoinSwap, nil, err)
		return
	}

	h.run(w, r, domain.KindBitcoinSwap, req.toDomain())
}

func (h *Handlers) run(w http.ResponseWriter, r *http.Request, kind domain.Kind, req domain.OrchestrationRequest) {
	run, err := h.orchestrator.Run(r.Context(), kind, req)
	if err != nil {
		h.writeRunFailure(w, kind, run, err)
		return
	}

	h.writeRun(w, kind, run)
}

func (h *Handlers) writeRun(w http.ResponseWriter, kind domain.Kind, run *domain.Run) {
	flow, err := services.LookupFlow(kind)
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, flow.Envelope(run))
}

func (h *Handlers) writeRunFailure(w http.ResponseWriter, kind domain.Kind, run *domain.Run, err error) {
	label := "Request"
	if flow, lookupErr := services.LookupFlow(kind); lookupErr == nil {
		label = flow.Label
	}

	reference := ""
	if run != nil {
		reference = run.Reference
	}

	rest.WriteFailure(w, h.logger, label, reference, err)
}
