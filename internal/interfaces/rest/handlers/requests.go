package handlers

import (
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/domain"
	"github.com/shopspring/decimal"
)

type BankPayoutRequest struct {
	Name          string           `json:"name" validate:"max=255"`
	AccountNumber string           `json:"accountNumber" validate:"max=64"`
	BankName      string           `json:"bankName" validate:"max=255"`
	Amount        *decimal.Decimal `json:"amount"`
	Reference     string           `json:"reference"`
}

func (r BankPayoutRequest) toDomain() domain.OrchestrationRequest {
	return domain.OrchestrationRequest{
		Name:          r.Name,
		AccountNumber: r.AccountNumber,
		BankName:      r.BankName,
		Amount:        r.Amount,
		Reference:     r.Reference,
	}
}

type MobileMoneyPayoutRequest struct {
	Name        string           `json:"name" validate:"max=255"`
	PhoneNumber string           `json:"phoneNumber" validate:"max=32"`
	Network     string           `json:"network" validate:"max=32"`
	Amount      *decimal.Decimal `json:"amount"`
	Reference   string           `json:"reference"`
}

func (r MobileMoneyPayoutRequest) toDomain() domain.OrchestrationRequest {
	return domain.OrchestrationRequest{
		Name:        r.Name,
		PhoneNumber: r.PhoneNumber,
		Network:     r.Network,
		Amount:      r.Amount,
		Reference:   r.Reference,
	}
}

type TradeRequest struct {
	FromAsset  string           `json:"fromAsset" validate:"max=16"`
	ToAsset    string           `json:"toAsset" validate:"max=16"`
	Amount     *decimal.Decimal `json:"amount"`
	AmountType string           `json:"amountType" validate:"max=16"`
	CustomerID string           `json:"customerId" validate:"max=64"`
	Reference  string           `json:"reference"`
}

func (r TradeRequest) toDomain() domain.OrchestrationRequest {
	return domain.OrchestrationRequest{
		FromAsset:  r.FromAsset,
		ToAsset:    r.ToAsset,
		Amount:     r.Amount,
		AmountType: r.AmountType,
		CustomerID: r.CustomerID,
		Reference:  r.Reference,
	}
}

type TradeFinalizeRequest struct {
	QuoteID    string `json:"quoteId" validate:"max=128"`
	CustomerID string `json:"customerId" validate:"max=64"`
	Reference  string `json:"reference"`
}

type SwapRequest struct {
	Amount    *decimal.Decimal `json:"amount"`
	Reference string           `json:"reference"`
}

func (r SwapRequest) toDomain() domain.OrchestrationRequest {
	return domain.OrchestrationRequest{
		Amount:    r.Amount,
		Reference: r.Reference,
	}
}

type TestWebhookRequest struct {
	Message string         `json:"message" validate:"max=1024"`
	Data    map[string]any `json:"data"`
}
