package domain

import (
	"bytes"
	"encoding/json"
)

// Quote is the provider-issued pricing terms for one run. The provider is not
// consistent about the identifier key, so both quoteId and id are accepted.
type Quote struct {
	QuoteID    string          `json:"quoteId"`
	Rate       string          `json:"rate,omitempty"`
	Fees       string          `json:"fees,omitempty"`
	FromAmount string          `json:"fromAmount,omitempty"`
	ToAmount   string          `json:"toAmount,omitempty"`
	ExpiresAt  string          `json:"expiresAt,omitempty"`
	Raw        json.RawMessage `json:"-"`
}

// MarshalJSON returns the provider's own quote object when it is known so that
// callers see every pricing field, not only the ones modelled here.
func (q Quote) MarshalJSON() ([]byte, error) {
	if len(q.Raw) > 0 {
		return q.Raw, nil
	}
	type plain Quote
	return json.Marshal(plain(q))
}

// ParseQuote reads the quote object out of a provider response's data field.
// Numeric fields are kept in their textual form so no precision is lost.
func ParseQuote(data json.RawMessage) (*Quote, error) {
	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, NewMalformedQuoteError(err)
	}

	q := &Quote{
		QuoteID:    firstString(fields, "quoteId", "id"),
		Rate:       firstString(fields, "rate", "exchangeRate"),
		Fees:       firstString(fields, "fees", "fee"),
		FromAmount: firstString(fields, "fromAmount", "amount"),
		ToAmount:   firstString(fields, "toAmount", "settlementAmount"),
		ExpiresAt:  firstString(fields, "expiresAt", "expiry"),
		Raw:        data,
	}
	if q.QuoteID == "" {
		return nil, NewMalformedQuoteError(nil)
	}
	return q, nil
}

func firstString(fields map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := fields[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case json.Number:
			return v.String()
		}
	}
	return ""
}
