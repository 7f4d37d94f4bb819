package gsp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gstims/internal/config"
	"gstims/internal/domain"
	"gstims/internal/port"
)

// Client talks to the government tax portal through a GSP (GST Suvidha
// Provider) gateway. Requests are rate limited client-side because the
// gateway throttles per-GSTIN aggressively.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	limiter      <-chan time.Time
}

// NewClient creates a GSP portal client from configuration.
func NewClient(cfg *config.PortalConfig) *Client {
	interval := time.Minute
	if cfg.RateLimitPerMin > 0 {
		interval = time.Minute / time.Duration(cfg.RateLimitPerMin)
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
		},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		limiter:      time.Tick(interval),
	}
}

var _ port.PortalClient = (*Client)(nil)

type errorResponse struct {
	ErrorCode string `json:"error_cd"`
	Message   string `json:"message"`
}

type uploadRequest struct {
	GSTIN    string             `json:"gstin"`
	Invoices domain.UploadBatch `json:"invdata"`
}

type uploadResponse struct {
	ReferenceID string `json:"reference_id"`
	RequestID   string `json:"txn"`
}

type statusResponse struct {
	StatusCode  string             `json:"status_cd"`
	ErrorReport domain.ErrorReport `json:"error_report"`
}

type downloadResponse struct {
	QueuedCount int                               `json:"queued_inv_count"`
	Invoices    map[string][]domain.PortalInvoice `json:"invdata"`
}

func (c *Client) ValidateAuthToken(ctx context.Context, gstin string) error {
	var out struct {
		Status string `json:"status"`
	}
	err := c.do(ctx, http.MethodGet, "/ims/authenticate?gstin="+gstin, nil, &out)
	if err != nil {
		return err
	}
	if out.Status != "active" {
		return domain.ErrOTPRequired
	}
	return nil
}

func (c *Client) Save(ctx context.Context, gstin string, batch domain.UploadBatch) (*port.UploadResponse, error) {
	return c.upload(ctx, "/ims/save", gstin, batch)
}

func (c *Client) Reset(ctx context.Context, gstin string, batch domain.UploadBatch) (*port.UploadResponse, error) {
	return c.upload(ctx, "/ims/reset", gstin, batch)
}

func (c *Client) upload(ctx context.Context, path, gstin string, batch domain.UploadBatch) (*port.UploadResponse, error) {
	var out uploadResponse
	err := c.do(ctx, http.MethodPut, path, uploadRequest{GSTIN: gstin, Invoices: batch}, &out)
	if err != nil {
		return nil, err
	}
	return &port.UploadResponse{
		ReferenceID: out.ReferenceID,
		RequestID:   out.RequestID,
	}, nil
}

func (c *Client) GetRequestStatus(ctx context.Context, gstin, token string) (*port.RequestStatusResponse, error) {
	var out statusResponse
	err := c.do(ctx, http.MethodGet,
		fmt.Sprintf("/ims/requeststatus?gstin=%s&token=%s", gstin, token), nil, &out)
	if err != nil {
		return nil, err
	}
	return &port.RequestStatusResponse{
		StatusCode:  domain.StatusCode(out.StatusCode),
		ErrorReport: out.ErrorReport,
	}, nil
}

func (c *Client) Download(ctx context.Context, gstin string) (*port.DownloadResponse, error) {
	var out downloadResponse
	err := c.do(ctx, http.MethodGet, "/ims/download?gstin="+gstin, nil, &out)
	if err != nil {
		return nil, err
	}

	invoices := make(map[domain.Category][]domain.PortalInvoice)
	for _, category := range domain.AllCategories {
		if list, ok := out.Invoices[strings.ToLower(string(category))]; ok {
			invoices[category] = list
		}
	}

	return &port.DownloadResponse{
		HasQueuedInvoices: out.QueuedCount > 0,
		Invoices:          invoices,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	select {
	case <-c.limiter:
	case <-ctx.Done():
		return ctx.Err()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gsp: marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("gsp: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("client-id", c.clientID)
	req.Header.Set("client-secret", c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gsp: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gsp: reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrOTPRequired
	case resp.StatusCode >= 400:
		var apiErr errorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%w: %s (%s)", domain.ErrPortalRequest, apiErr.Message, apiErr.ErrorCode)
		}
		return fmt.Errorf("%w: %s %s returned %d", domain.ErrPortalRequest, method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("gsp: decoding response: %w", err)
		}
	}
	return nil
}
