// Package domain holds the orchestration run, its inputs and the shapes it
// produces. Nothing here talks to the network.
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kind enumerates the orchestration flows the gateway knows how to run.
type Kind string

const (
	KindBankPayout        Kind = "payout.bank"
	KindMobileMoneyPayout Kind = "payout.mobile_money"
	KindSpotTrade         Kind = "trade.spot"
	KindBitcoinSwap       Kind = "swap.bitcoin"
)

// Family is the event prefix shared by every kind of the same use case,
// e.g. "payout" for both payout kinds.
func (k Kind) Family() string {
	family, _, _ := strings.Cut(string(k), ".")
	return family
}

// OrchestrationRequest is the caller-supplied input of one run. Which fields are
// required depends on the Kind being run.
type OrchestrationRequest struct {
	Name          string
	AccountNumber string
	BankName      string
	PhoneNumber   string
	Network       string

	FromAsset  string
	ToAsset    string
	Amount     *decimal.Decimal
	AmountType string
	CustomerID string

	Reference string
}

// Validate checks the invariants of the request for the given kind. It never
// touches the upstream provider.
func (r OrchestrationRequest) Validate(kind Kind) error {
	switch kind {
	case KindBankPayout:
		if err := requireFields(
			field{"name", r.Name},
			field{"accountNumber", r.AccountNumber},
		); err != nil {
			return err
		}
		return r.optionalPositiveAmount()

	case KindMobileMoneyPayout:
		if err := requireFields(
			field{"name", r.Name},
			field{"phoneNumber", r.PhoneNumber},
		); err != nil {
			return err
		}
		return r.optionalPositiveAmount()

	case KindSpotTrade:
		if err := requireFields(
			field{"fromAsset", r.FromAsset},
			field{"toAsset", r.ToAsset},
		); err != nil {
			return err
		}
		return r.requirePositiveAmount()

	case KindBitcoinSwap:
		return r.requirePositiveAmount()

	default:
		return NewUnsupportedKindError(kind)
	}
}

type field struct {
	name  string
	value string
}

func requireFields(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return NewMissingRequiredFieldError(f.name)
		}
	}
	return nil
}

func (r OrchestrationRequest) requirePositiveAmount() error {
	if r.Amount == nil {
		return NewMissingRequiredFieldError("amount")
	}
	return r.optionalPositiveAmount()
}

func (r OrchestrationRequest) optionalPositiveAmount() error {
	if r.Amount != nil && !r.Amount.IsPositive() {
		return NewInvalidAmountError("amount", r.Amount.String())
	}
	return nil
}
