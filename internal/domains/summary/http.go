package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

const maxErrorBody = 4096

// postJSON sends body to url and returns the decoded response document.
// Non-2xx responses become errors carrying at most maxErrorBody bytes of the body.
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, body any) (gjson.Result, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := client.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		if err != nil {
			return gjson.Result{}, fmt.Errorf("read error body: %w", err)
		}
		return gjson.Result{}, fmt.Errorf("request status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("read response: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("response is not valid JSON")
	}
	return gjson.ParseBytes(raw), nil
}

// textAt extracts a non-empty trimmed string at path.
func textAt(doc gjson.Result, path string) (string, error) {
	text := strings.TrimSpace(doc.Get(path).String())
	if text == "" {
		return "", ErrEmptySummary
	}
	return text, nil
}

func httpClient(c *http.Client) *http.Client {
	if c == nil {
		return http.DefaultClient
	}
	return c
}
