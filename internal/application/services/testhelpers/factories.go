package testhelpers

import (
	"encoding/json"
	"net/http"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/domain"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/infrastructure/upstream"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

// BankPayoutRequest returns a valid NGN bank payout request with a random beneficiary.
func BankPayoutRequest() domain.OrchestrationRequest {
	return domain.OrchestrationRequest{
		Name:          gofakeit.Name(),
		AccountNumber: gofakeit.Numerify("##########"),
	}
}

// MobileMoneyPayoutRequest returns a valid UGX mobile money payout request.
func MobileMoneyPayoutRequest() domain.OrchestrationRequest {
	return domain.OrchestrationRequest{
		Name:        gofakeit.Name(),
		PhoneNumber: gofakeit.Numerify("07########"),
		Network:     "MTN",
	}
}

func TradeRequest() domain.OrchestrationRequest {
	amount := decimal.NewFromFloat(gofakeit.Float64Range(1, 500)).Round(2)
	return domain.OrchestrationRequest{
		FromAsset:  "usdt",
		ToAsset:    "btc",
		Amount:     &amount,
		AmountType: "fromAmount",
		CustomerID: gofakeit.UUID(),
	}
}

func SwapRequest() domain.OrchestrationRequest {
	amount := decimal.NewFromInt(int64(gofakeit.IntRange(10, 1000)))
	return domain.OrchestrationRequest{Amount: &amount}
}

// ProviderResponse wraps a JSON literal as a successful provider answer.
func ProviderResponse(body string) *upstream.Response {
	return &upstream.Response{
		StatusCode: http.StatusOK,
		Body:       json.RawMessage(body),
	}
}

// QuoteResponse is the provider's quote answer carrying quoteID.
func QuoteResponse(quoteID string) *upstream.Response {
	return ProviderResponse(`{"status":true,"data":{"quoteId":"` + quoteID + `","rate":"1530.25"}}`)
}

// ProviderFailure builds a provider business error with a JSON body.
func ProviderFailure(status int, message string) *upstream.ProviderError {
	body, _ := json.Marshal(map[string]any{"status": false, "message": message})
	return &upstream.ProviderError{
		Message:    message,
		StatusCode: status,
		Body:       body,
	}
}
