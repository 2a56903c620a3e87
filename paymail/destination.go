package paymail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PostClient extends HTTPClient with POST capability. Payment destination
// resolution requires a POST after capability discovery (GET).
type PostClient interface {
	HTTPClient
	Post(url, contentType string, body io.Reader) (*http.Response, error)
}

// defaultPostClient wraps an http.Client to implement PostClient.
type defaultPostClient struct {
	client *http.Client
}

func (d *defaultPostClient) Get(rawURL string) (*http.Response, error) {
	return d.client.Get(rawURL)
}

func (d *defaultPostClient) Post(rawURL, contentType string, body io.Reader) (*http.Response, error) {
	return d.client.Post(rawURL, contentType, body)
}

// DefaultPostClient is the production PostClient with a 30-second timeout.
var DefaultPostClient PostClient = &defaultPostClient{
	client: &http.Client{Timeout: 30 * time.Second},
}

// PaymentOutput is one output a payee asks to be paid with.
type PaymentOutput struct {
	Script   string `json:"script"` // locking script hex
	Satoshis uint64 `json:"satoshis"`
}

// destinationRequest is the sender metadata POSTed to the destination endpoint.
type destinationRequest struct {
	SenderName string `json:"senderName"`
	Dt         string `json:"dt"`
}

// destinationResponse is the JSON envelope returned by the destination endpoint.
type destinationResponse struct {
	Outputs []PaymentOutput `json:"outputs"`
}

// ResolvePaymentDestination asks the handle's host where a payment from
// senderName should go, returning the outputs it requests.
func ResolvePaymentDestination(h Handle, senderName string) ([]PaymentOutput, error) {
	return ResolvePaymentDestinationWithClient(h, senderName, DefaultPostClient)
}

// ResolvePaymentDestinationWithClient resolves the payment destination using
// the provided PostClient.
//
// It performs capability discovery (GET), then POSTs sender metadata to the
// payment destination endpoint to obtain output scripts for payment.
func ResolvePaymentDestinationWithClient(h Handle, senderName string, client PostClient) ([]PaymentOutput, error) {
	if h.Alias == "" || h.Domain == "" {
		return nil, fmt.Errorf("%w: alias and domain are required", ErrDestinationResolution)
	}

	caps, err := DiscoverCapabilitiesWithClient(h.Domain, client)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDestinationResolution, err)
	}
	if caps.PaymentDestination == "" {
		return nil, fmt.Errorf("%w: no payment destination capability found for %s", ErrDestinationResolution, h.Domain)
	}

	destURL := expandTemplate(caps.PaymentDestination, h)

	reqBody, err := json.Marshal(destinationRequest{
		SenderName: senderName,
		Dt:         time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %w", ErrDestinationResolution, err)
	}

	resp, err := client.Post(destURL, "application/json", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("%w: POST %s: %w", ErrDestinationResolution, destURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: POST %s returned status %d", ErrDestinationResolution, destURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrDestinationResolution, err)
	}

	var destResp destinationResponse
	if err := json.Unmarshal(body, &destResp); err != nil {
		return nil, fmt.Errorf("%w: parsing response: %w", ErrDestinationResolution, err)
	}
	if len(destResp.Outputs) == 0 {
		return nil, fmt.Errorf("%w: no outputs in response", ErrDestinationResolution)
	}

	return destResp.Outputs, nil
}
