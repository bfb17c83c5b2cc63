package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoData is returned when the store answers without a data list.
var ErrNoData = errors.New("response has no data")

type (
	Response struct {
		Success bool   `json:"success"`
		Code    string `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
		Data    any    `json:"data,omitempty"`
	}

	recordsResponse struct {
		Success bool             `json:"success"`
		Message string           `json:"message,omitempty"`
		Data    *json.RawMessage `json:"data"`
	}
)

// APIClient talks to the spreadsheet script endpoint, or to `timepunch
// serve`, which speaks the same protocol.
type APIClient struct {
	scriptURL  string
	httpClient *http.Client
}

func NewAPIClient(scriptURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		scriptURL: scriptURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// posts the fields as a plain form, the way a hidden HTML form would
func (c *APIClient) Save(ctx context.Context, fields map[string]string) error {
	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.scriptURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("store answered %s", res.Status)
	}

	return nil
}

// fetches every record the store holds
func (c *APIClient) Fetch(ctx context.Context) ([]RemoteRecord, error) {
	u, err := url.Parse(c.scriptURL)
	if err != nil {
		return nil, fmt.Errorf("invalid script URL: %w", err)
	}
	q := u.Query()
	q.Set("action", "get")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var errRes Response
		if err := json.NewDecoder(res.Body).Decode(&errRes); err != nil || errRes.Message == "" {
			return nil, fmt.Errorf("store answered %s", res.Status)
		}
		return nil, fmt.Errorf("%s", errRes.Message)
	}

	var apiRes recordsResponse
	if err := json.NewDecoder(res.Body).Decode(&apiRes); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	if !apiRes.Success {
		if apiRes.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrNoData, apiRes.Message)
		}
		return nil, ErrNoData
	}
	if apiRes.Data == nil || string(*apiRes.Data) == "null" {
		return nil, ErrNoData
	}

	var records []RemoteRecord
	if err := json.Unmarshal(*apiRes.Data, &records); err != nil {
		return nil, fmt.Errorf("error decoding records data: %w", err)
	}

	return records, nil
}
