package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// KVClient fetches ledger documents from a remote instance of this service.
// Base address and shared secret are supplied at construction; one request per
// fetch, no retries. Boundary faults surface whole to the caller.
type KVClient struct {
	baseURL    string
	syncKey    string
	httpClient *http.Client
}

func NewKVClient(baseURL, syncKey string) *KVClient {
	return &KVClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		syncKey:    syncKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type kvGetResponse struct {
	Success bool           `json:"success"`
	Error   string         `json:"error"`
	Found   bool           `json:"found"`
	Key     string         `json:"key"`
	Value   map[string]any `json:"value"`
}

// FetchLedger reads the full ledger document for an identity. A found=false
// response yields (nil, false, nil); a non-success envelope is an error.
func (c *KVClient) FetchLedger(ctx context.Context, wa string) (map[string]any, bool, error) {
	reqURL := c.baseURL + "/kv/get?wa=" + url.QueryEscape(wa)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set(syncKeyHeader, c.syncKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("kv fetch %s: %w", wa, err)
	}
	defer resp.Body.Close()

	var body kvGetResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, false, fmt.Errorf("kv fetch %s: response not JSON (status %d)", wa, resp.StatusCode)
	}

	if !body.Success {
		code := body.Error
		if code == "" {
			code = fmt.Sprintf("HTTP_%d", resp.StatusCode)
		}
		return nil, false, fmt.Errorf("kv fetch %s: %s", wa, code)
	}
	if !body.Found {
		return nil, false, nil
	}
	return body.Value, true, nil
}

// FetchRecords returns the raw transaction batch for an identity. A missing
// document is an empty batch, per the zero-records policy.
func (c *KVClient) FetchRecords(ctx context.Context, wa string) ([]RawRecord, error) {
	doc, found, err := c.FetchLedger(ctx, wa)
	if err != nil {
		return nil, err
	}
	if !found {
		return []RawRecord{}, nil
	}
	return transactionsOf(doc), nil
}
