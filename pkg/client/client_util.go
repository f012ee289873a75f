package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

func (c *RequestConfig) do(ctx context.Context, path string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)

	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(c.URL, "/") + path

	req, _ := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()

		data, _ := io.ReadAll(resp.Body)

		if len(data) > 0 {
			return nil, errors.New(string(data))
		}

		return nil, errors.New(resp.Status)
	}

	return resp, nil
}

func (c *RequestConfig) doJson(ctx context.Context, path string, body, result any) error {
	resp, err := c.do(ctx, path, body)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(result)
}
