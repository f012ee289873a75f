package openai

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jlindh/studiocast/pkg/provider"

	"github.com/openai/openai-go/v3"
)

func convertError(err error) error {
	var apierr *openai.Error

	if !errors.As(err, &apierr) {
		return provider.NewTransientError(err.Error())
	}

	if apierr.StatusCode == http.StatusTooManyRequests {
		return provider.NewRateLimitError(apierr.Error(), retryAfter(apierr.Response))
	}

	return provider.NewFatalError(apierr.Error())
}

func retryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}

	val := resp.Header.Get("Retry-After")

	if val == "" {
		return 0
	}

	seconds, err := strconv.ParseFloat(val, 64)

	if err != nil {
		return 0
	}

	return time.Duration(seconds * float64(time.Second))
}
