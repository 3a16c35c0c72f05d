package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrTransport marks failures where no usable response came back from the
// provider: DNS, connection resets, timeouts, undecodable bodies.
var ErrTransport = errors.New("upstream transport failure")

// ProviderError is a non-2xx answer from the provider. Body holds the raw
// response so callers can surface it verbatim.
type ProviderError struct {
	Code       string
	Message    string
	StatusCode int
	Body       json.RawMessage
}

type providerErrorResponse struct {
	Message any `json:"message"`
	Err     any `json:"error"`
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
}

// IsProviderError reports whether err carries a provider business error.
func IsProviderError(err error) (*ProviderError, bool) {
	var providerErr *ProviderError
	ok := errors.As(err, &providerErr)
	return providerErr, ok
}

func newProviderError(status int, body []byte) *ProviderError {
	perr := &ProviderError{StatusCode: status}

	if json.Valid(body) {
		perr.Body = json.RawMessage(body)

		var resp providerErrorResponse
		if err := json.Unmarshal(body, &resp); err == nil {
			perr.Message = textOf(resp.Message)
			perr.Code = textOf(resp.Err)
		}
	} else if len(body) > 0 {
		perr.Body, _ = json.Marshal(string(body))
	}

	if perr.Message == "" {
		perr.Message = perr.Code
	}
	if perr.Message == "" {
		perr.Message = fmt.Sprintf("upstream returned status %d", status)
	}

	return perr
}

// textOf flattens the message shapes the provider uses: a plain string or a
// list of validation messages.
func textOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
