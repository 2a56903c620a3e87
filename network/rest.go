package network

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"
)

var _ ExplorerService = (*RESTClient)(nil)

// Breaker thresholds: trip once more than maxFailingRequests calls have
// been made and at least failingRatio of them failed.
const (
	maxFailingRequests = 10
	failingRatio       = 0.6
)

// RESTClient implements ExplorerService over a block-explorer HTTP API
// (WhatsOnChain-style paths). The client rate-limits itself and stops
// hammering a failing backend through a circuit breaker. It never retries;
// retry policy belongs to the caller.
type RESTClient struct {
	baseURL string
	client  *http.Client
	limiter ratelimit.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewRESTClient creates an explorer client from cfg. Zero-value fields fall
// back to defaults: 30 second timeout, DefaultRequestsPerSecond.
func NewRESTClient(cfg ClientConfig) *RESTClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	return &RESTClient{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		limiter: ratelimit.New(rps),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "explorer",
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				ratio := float64(counts.TotalFailures) / float64(counts.Requests)
				return int(counts.Requests) > maxFailingRequests && ratio >= failingRatio
			},
		}),
	}
}

type historyItem struct {
	TxHash string `json:"tx_hash"`
	Height int64  `json:"height"`
}

type balanceResult struct {
	Confirmed   int64 `json:"confirmed"`
	Unconfirmed int64 `json:"unconfirmed"`
}

type unspentResult struct {
	TxHash string `json:"tx_hash"`
	TxPos  uint32 `json:"tx_pos"`
	Value  uint64 `json:"value"`
	Height int64  `json:"height"`
	Script string `json:"script_pubkey"`
}

type broadcastRequest struct {
	TxHex string `json:"txhex"`
}

// AddressHistoryCount returns the length of the address's transaction history.
func (c *RESTClient) AddressHistoryCount(ctx context.Context, address string) (int, error) {
	var history []historyItem
	if err := c.get(ctx, "/address/"+address+"/history", &history); err != nil {
		return 0, err
	}
	return len(history), nil
}

// AddressBalance returns confirmed plus unconfirmed satoshis. Pending spends
// can drive the unconfirmed figure negative; the floor of the sum is zero.
func (c *RESTClient) AddressBalance(ctx context.Context, address string) (uint64, error) {
	var bal balanceResult
	if err := c.get(ctx, "/address/"+address+"/balance", &bal); err != nil {
		return 0, err
	}
	sum := bal.Confirmed + bal.Unconfirmed
	if sum < 0 {
		sum = 0
	}
	return uint64(sum), nil
}

// ListUnspent returns the address's unspent outputs.
func (c *RESTClient) ListUnspent(ctx context.Context, address string) ([]*UTXO, error) {
	var rows []unspentResult
	if err := c.get(ctx, "/address/"+address+"/unspent", &rows); err != nil {
		return nil, err
	}
	utxos := make([]*UTXO, 0, len(rows))
	for _, r := range rows {
		utxos = append(utxos, &UTXO{
			TxID:         r.TxHash,
			Vout:         r.TxPos,
			Amount:       r.Value,
			ScriptPubKey: r.Script,
			Address:      address,
			Height:       r.Height,
		})
	}
	return utxos, nil
}

// BroadcastTx submits rawTxHex and returns the txid reported by the backend.
func (c *RESTClient) BroadcastTx(ctx context.Context, rawTxHex string) (string, error) {
	var txid string
	if err := c.post(ctx, "/tx/raw", broadcastRequest{TxHex: rawTxHex}, &txid); err != nil {
		return "", err
	}
	if txid == "" {
		return "", fmt.Errorf("%w: empty txid from broadcast", ErrInvalidResponse)
	}
	return txid, nil
}

func (c *RESTClient) get(ctx context.Context, path string, result interface{}) error {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%w: GET %s: %w", ErrInvalidResponse, path, err)
	}
	return nil
}

func (c *RESTClient) post(ctx context.Context, path string, reqBody, result interface{}) error {
	body, err := c.do(ctx, http.MethodPost, path, reqBody)
	if err != nil {
		return err
	}
	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("%w: POST %s: %w", ErrInvalidResponse, path, err)
		}
	}
	return nil
}

// do performs one rate-limited HTTP exchange through the circuit breaker
// and returns the response body. Every failure wraps ErrCommunication.
func (c *RESTClient) do(ctx context.Context, method, path string, reqBody interface{}) ([]byte, error) {
	var payload io.Reader
	if reqBody != nil {
		body, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal request: %w", ErrCommunication, err)
		}
		payload = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrCommunication, err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.limiter.Take()

	res, err := c.breaker.Execute(func() (interface{}, error) {
		resp, doErr := c.client.Do(req)
		if doErr != nil {
			return nil, fmt.Errorf("%w: %s %s: %w", ErrCommunication, method, path, doErr)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return nil, fmt.Errorf("%w: %s %s: HTTP %d: %s",
				ErrCommunication, method, path, resp.StatusCode, string(detail))
		}

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("%w: read response: %w", ErrCommunication, readErr)
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, ErrCommunication) {
			return nil, err
		}
		// Breaker-originated error (open state, half-open overflow).
		return nil, fmt.Errorf("%w: %w", ErrCommunication, err)
	}
	return res.([]byte), nil
}
