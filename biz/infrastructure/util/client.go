package util

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/util/log"

	"github.com/spf13/cast"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTimeout = 15 * time.Second

var (
	client     *HttpClient
	clientOnce sync.Once
)

// HttpClient posts JSON to upstream services with trace propagation.
type HttpClient struct {
	Client *http.Client
}

func NewHttpClient() *HttpClient {
	return &HttpClient{
		Client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   defaultTimeout,
		},
	}
}

func GetHttpClient() *HttpClient {
	clientOnce.Do(func() {
		client = NewHttpClient()
	})
	return client
}

func (c *HttpClient) SendRequest(ctx context.Context, method, url string, headers map[string]string, body any) (map[string]any, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.CtxError(ctx, "close response body: %v", closeErr)
		}
	}()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d, response body: %s", resp.StatusCode, responseBody)
	}

	var responseMap map[string]any
	if err := json.Unmarshal(responseBody, &responseMap); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return responseMap, nil
}

// Chat forwards a tutoring question to the configured model endpoint and
// returns its answer text.
func (c *HttpClient) Chat(ctx context.Context, url, message, subject string) (string, error) {
	body := map[string]any{
		"message": message,
		"context": subject,
	}
	header := map[string]string{
		"Content-Type": consts.ContentTypeJson,
		"Charset":      consts.CharSetUTF8,
	}
	if cfg := config.GetConfig(); cfg != nil && cfg.State == "test" {
		header["X-Env"] = "test"
	}

	resp, err := c.SendRequest(ctx, consts.Post, url, header, body)
	if err != nil {
		return "", err
	}
	answer := cast.ToString(resp["response"])
	if answer == "" {
		return "", fmt.Errorf("upstream returned no response field")
	}
	return answer, nil
}
