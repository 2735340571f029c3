package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/flowkernel/workflow/workflow"
)

const defaultHTTPTimeout = 30 * time.Second

// HTTPTask issues a single HTTP request. URL and Method are static;
// BodyKey, when set, names a Context key whose value is marshalled as
// the JSON request body. The response is returned as
// {"status_code", "headers", "body"}; a response status >= 400 is
// reported as a task failure (ErrHTTPRequest) but the parsed outputs
// are still attached so a RetryPolicy can inspect status_code if it
// wants to.
type HTTPTask struct {
	TaskName string
	Method   string
	URL      string
	Headers  map[string]string
	BodyKey  string
	Timeout  time.Duration
}

func (t *HTTPTask) Name() string {
	if t.TaskName != "" {
		return t.TaskName
	}
	return "http:" + t.Method + " " + t.URL
}

func (t *HTTPTask) Run(ctx context.Context, ctxData *workflow.Context) (any, error) {
	if t.URL == "" {
		return nil, fmt.Errorf("%w: url is required", ErrHTTPRequest)
	}
	method := t.Method
	if method == "" {
		method = http.MethodGet
	}

	timeout := t.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var bodyReader io.Reader
	if t.BodyKey != "" {
		if raw, ok := ctxData.Get(t.BodyKey); ok && raw != nil {
			encoded, err := json.Marshal(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: marshal body: %v", ErrHTTPRequest, err)
			}
			bodyReader = bytes.NewReader(encoded)
		}
	}

	req, err := http.NewRequestWithContext(reqCtx, method, t.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrHTTPRequest, err)
	}
	for k, v := range t.Headers {
		req.Header.Set(k, v)
	}
	if bodyReader != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTTPRequest, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrHTTPRequest, err)
	}

	outputs := buildOutputs(resp, respBody)
	if resp.StatusCode >= 400 {
		return outputs, fmt.Errorf("%w: HTTP %d: %s", ErrHTTPRequest, resp.StatusCode, truncate(string(respBody), 200))
	}
	return outputs, nil
}

func buildOutputs(resp *http.Response, body []byte) map[string]any {
	headers := make(map[string]string, len(resp.Header))
	for key := range resp.Header {
		headers[key] = resp.Header.Get(key)
	}

	var parsedBody any
	if err := json.Unmarshal(body, &parsedBody); err != nil {
		parsedBody = string(body)
	}

	return map[string]any{
		"status_code": resp.StatusCode,
		"headers":     headers,
		"body":        parsedBody,
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
