package services

import (
	"encoding/json"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/domain"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/infrastructure/upstream"
	"github.com/shopspring/decimal"
)

// stepInput is everything a body builder may draw from.
type stepInput struct {
	Request    domain.OrchestrationRequest
	Reference  string
	CustomerID string
	Quote      *domain.Quote
}

// Flow describes one orchestration kind: its provider endpoints, how each
// request body is shaped and how outcomes are worded. An empty
// InitializeEndpoint means the flow goes from quote straight to finalize.
type Flow struct {
	Kind  domain.Kind
	Label string

	QuoteEndpoint      string
	InitializeEndpoint string
	FinalizeEndpoint   string

	QuoteBody      func(in stepInput) any
	InitializeBody func(in stepInput) any
	FinalizeBody   func(in stepInput) any

	SuccessMessage string
}

func (f Flow) hasInitialize() bool {
	return f.InitializeEndpoint != ""
}

var (
	bankPayoutSettlement        = decimal.NewFromInt(100000)
	mobileMoneyPayoutSettlement = decimal.NewFromInt(1000000)
)

const (
	payoutMessage = "Payout pending. Check the webhook sink for final confirmation."
	tradeMessage  = "Trade executed successfully"
	swapMessage   = "Swap submitted successfully"
)

var flows = map[domain.Kind]Flow{
	domain.KindBankPayout: {
		Kind:               domain.KindBankPayout,
		Label:              "Payout",
		QuoteEndpoint:      "payouts/quotes",
		InitializeEndpoint: "payouts/initialize",
		FinalizeEndpoint:   "payouts/finalize",
		QuoteBody: func(in stepInput) any {
			return upstream.PayoutQuoteRequest{
				Source:           "offchain",
				FromAsset:        "usdt",
				ToCurrency:       "ngn",
				SettlementAmount: amountOr(in.Request.Amount, bankPayoutSettlement),
			}
		},
		InitializeBody: func(in stepInput) any {
			return upstream.PayoutInitializeRequest{
				QuoteID:       in.Quote.QuoteID,
				CustomerID:    in.CustomerID,
				Country:       "NG",
				Reference:     in.Reference,
				PaymentReason: "Bitnob Nigeria Faucet",
				Beneficiary: upstream.Beneficiary{
					Type:          "BANK",
					AccountName:   in.Request.Name,
					BankName:      valueOr(in.Request.BankName, "OPAY"),
					AccountNumber: in.Request.AccountNumber,
				},
			}
		},
		FinalizeBody:   payoutFinalizeBody,
		SuccessMessage: payoutMessage,
	},
	domain.KindMobileMoneyPayout: {
		Kind:               domain.KindMobileMoneyPayout,
		Label:              "Payout",
		QuoteEndpoint:      "payouts/quotes",
		InitializeEndpoint: "payouts/initialize",
		FinalizeEndpoint:   "payouts/finalize",
		QuoteBody: func(in stepInput) any {
			return upstream.PayoutQuoteRequest{
				Source:           "offchain",
				FromAsset:        "usdt",
				ToCurrency:       "ugx",
				SettlementAmount: amountOr(in.Request.Amount, mobileMoneyPayoutSettlement),
			}
		},
		InitializeBody: func(in stepInput) any {
			return upstream.PayoutInitializeRequest{
				QuoteID:       in.Quote.QuoteID,
				CustomerID:    in.CustomerID,
				Country:       "UG",
				Reference:     in.Reference,
				PaymentReason: "Bitnob Uganda Faucet",
				Beneficiary: upstream.Beneficiary{
					Type:          "MOMO",
					AccountName:   in.Request.Name,
					Network:       valueOr(in.Request.Network, "MTN"),
					AccountNumber: in.Request.PhoneNumber,
				},
			}
		},
		FinalizeBody:   payoutFinalizeBody,
		SuccessMessage: payoutMessage,
	},
	domain.KindSpotTrade: {
		Kind:             domain.KindSpotTrade,
		Label:            "Trade",
		QuoteEndpoint:    "trade",
		FinalizeEndpoint: "trade/finalize",
		QuoteBody: func(in stepInput) any {
			return upstream.TradeQuoteRequest{
				FromAsset:  in.Request.FromAsset,
				ToAsset:    in.Request.ToAsset,
				Amount:     amountOr(in.Request.Amount, decimal.Zero),
				AmountType: valueOr(in.Request.AmountType, "fromAmount"),
				CustomerID: in.CustomerID,
				Reference:  in.Reference,
			}
		},
		FinalizeBody: func(in stepInput) any {
			return upstream.TradeFinalizeRequest{
				QuoteID:    in.Quote.QuoteID,
				CustomerID: in.CustomerID,
				Reference:  in.Reference,
			}
		},
		SuccessMessage: tradeMessage,
	},
	domain.KindBitcoinSwap: {
		Kind:             domain.KindBitcoinSwap,
		Label:            "Swap",
		QuoteEndpoint:    "wallets/initialize-swap-for-bitcoin",
		FinalizeEndpoint: "wallets/finalize-swap-for-bitcoin",
		QuoteBody: func(in stepInput) any {
			return upstream.SwapQuoteRequest{
				Amount: amountOr(in.Request.Amount, decimal.Zero),
			}
		},
		FinalizeBody: func(in stepInput) any {
			return upstream.SwapFinalizeRequest{
				QuoteID:   in.Quote.QuoteID,
				Reference: in.Reference,
			}
		},
		SuccessMessage: swapMessage,
	},
}

// LookupFlow returns the flow registered for kind.
func LookupFlow(kind domain.Kind) (Flow, error) {
	flow, ok := flows[kind]
	if !ok {
		return Flow{}, domain.NewUnsupportedKindError(kind)
	}
	return flow, nil
}

func payoutFinalizeBody(in stepInput) any {
	return upstream.PayoutFinalizeRequest{QuoteID: in.Quote.QuoteID}
}

func amountOr(amount *decimal.Decimal, fallback decimal.Decimal) json.Number {
	if amount == nil {
		return json.Number(fallback.String())
	}
	return json.Number(amount.String())
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
