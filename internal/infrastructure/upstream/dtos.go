package upstream

import "encoding/json"

type PayoutQuoteRequest struct {
	Source           string      `json:"source"`
	FromAsset        string      `json:"fromAsset"`
	ToCurrency       string      `json:"toCurrency"`
	SettlementAmount json.Number `json:"settlementAmount"`
}

type Beneficiary struct {
	Type          string `json:"type"`
	AccountName   string `json:"accountName"`
	BankName      string `json:"bankName,omitempty"`
	Network       string `json:"network,omitempty"`
	AccountNumber string `json:"accountNumber"`
}

type PayoutInitializeRequest struct {
	QuoteID       string      `json:"quoteId"`
	CustomerID    string      `json:"customerId"`
	Country       string      `json:"country"`
	Reference     string      `json:"reference"`
	PaymentReason string      `json:"paymentReason"`
	Beneficiary   Beneficiary `json:"beneficiary"`
}

type PayoutFinalizeRequest struct {
	QuoteID string `json:"quoteId"`
}

type TradeQuoteRequest struct {
	FromAsset  string      `json:"fromAsset"`
	ToAsset    string      `json:"toAsset"`
	Amount     json.Number `json:"amount"`
	AmountType string      `json:"amountType,omitempty"`
	CustomerID string      `json:"customerId"`
	Reference  string      `json:"reference"`
}

type TradeFinalizeRequest struct {
	QuoteID    string `json:"quoteId"`
	CustomerID string `json:"customerId"`
	Reference  string `json:"reference"`
}

type SwapQuoteRequest struct {
	Amount json.Number `json:"amount"`
}

type SwapFinalizeRequest struct {
	QuoteID   string `json:"quoteId"`
	Reference string `json:"reference"`
}
