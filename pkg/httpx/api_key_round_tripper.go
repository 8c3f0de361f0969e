package httpx

import (
	"fmt"
	"net/http"
)

// APIKeyRoundTripper attaches X-Goog-Api-Key and X-Goog-FieldMask headers to
// every outgoing request. The field mask can be overridden per request by
// setting the header before the client executes it.
type APIKeyRoundTripper struct {
	next      http.RoundTripper
	apiKey    string
	fieldMask string
}

func NewAPIKeyRoundTripper(
	next http.RoundTripper,
	apiKey string,
	fieldMask string,
) APIKeyRoundTripper {
	return APIKeyRoundTripper{
		next:      next,
		apiKey:    apiKey,
		fieldMask: fieldMask,
	}
}

func (rt APIKeyRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-Goog-Api-Key", rt.apiKey)

	if req.Header.Get("X-Goog-FieldMask") == "" && rt.fieldMask != "" {
		req.Header.Set("X-Goog-FieldMask", rt.fieldMask)
	}

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
