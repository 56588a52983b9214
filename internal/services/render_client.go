package services

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

	"github.com/tidwall/gjson"

	"creativeops/internal/apperr"
	"creativeops/internal/catalog"
	"creativeops/internal/preview"
)

const maxRenderResponseBytes = 1 << 20

// RenderClient calls the remote creative generation service. Every call is a
// single attempt; retry policy belongs to the caller.
type RenderClient struct {
	endpoint   string
	httpClient *http.Client
}

var _ preview.Renderer = (*RenderClient)(nil)

func NewRenderClient(endpoint string, timeout time.Duration) *RenderClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RenderClient{
		endpoint:   strings.TrimSpace(endpoint),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *RenderClient) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

// RequestRender posts {"adTag": "platform/size"} and extracts the image URL
// from the response. Cancelling ctx aborts only this request.
func (c *RenderClient) RequestRender(ctx context.Context, platform catalog.PlatformID, size string) (preview.RenderResult, error) {
	platform = catalog.PlatformID(strings.TrimSpace(string(platform)))
	size = strings.TrimSpace(size)
	if platform == "" || size == "" {
		return failed(apperr.New(apperr.CodeInvalidInput, "platform and size are required"))
	}
	if c.endpoint == "" {
		return failed(apperr.New(apperr.CodeRenderUnavailable, "render service endpoint is not configured"))
	}

	adTag := string(platform) + "/" + size
	b, _ := json.Marshal(map[string]string{"adTag": adTag})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(b))
	if err != nil {
		return failed(apperr.Wrap(apperr.CodeRenderUnavailable, err, "build render request for %s", adTag))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return failed(apperr.Wrap(apperr.CodeCancelled, ctx.Err(), "render %s cancelled", adTag))
		}
		return failed(apperr.Wrap(apperr.CodeRenderUnavailable, err, "render %s", adTag))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRenderResponseBytes))
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return failed(apperr.Wrap(apperr.CodeCancelled, ctx.Err(), "render %s cancelled", adTag))
		}
		return failed(apperr.Wrap(apperr.CodeRenderUnavailable, err, "read render response for %s", adTag))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failed(apperr.New(apperr.CodeRenderUnavailable, "render %s failed: status=%d body=%s", adTag, resp.StatusCode, strings.TrimSpace(string(body))))
	}
	if !gjson.ValidBytes(body) {
		return failed(apperr.New(apperr.CodeRenderUnavailable, "render %s: invalid json", adTag))
	}

	url, ok := preview.ExtractURL(gjson.ParseBytes(body))
	if !ok {
		return failed(apperr.New(apperr.CodeRenderUnavailable, "render %s: response did not include an image url", adTag))
	}
	return preview.RenderResult{ImageURL: url}, nil
}

func failed(err error) (preview.RenderResult, error) {
	return preview.RenderResult{Failed: true, Reason: apperr.MessageOf(err)}, err
}

func (c *RenderClient) String() string {
	return fmt.Sprintf("RenderClient(%s)", c.endpoint)
}
