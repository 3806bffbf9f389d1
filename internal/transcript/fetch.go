package transcript

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"hvac-call-insights/internal/logger"
	"hvac-call-insights/internal/types"
)

var httpClient = &http.Client{Timeout: 12 * time.Second}

// Fetch downloads a transcript JSON document. Transient failures (network
// errors, 5xx) are retried with exponential backoff; client errors are not.
func Fetch(url string) ([]types.Sentence, error) {
	log := logger.Component("transcript.fetch").WithField("url", url)
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 20 * time.Second

	var t types.Transcript
	var lastErr error
	op := func() error {
		resp, err := httpClient.Get(url)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %s", string(body))
			return lastErr
		}
		if resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("fetch failed: status %d", resp.StatusCode)
			return backoff.Permanent(lastErr)
		}
		if err := json.Unmarshal(body, &t); err != nil {
			lastErr = fmt.Errorf("json decode error: %v", err)
			return lastErr
		}
		return nil
	}
	if err := backoff.Retry(op, bo); err != nil {
		log.WithField("error", lastErr.Error()).Error("transcript fetch failed")
		return nil, lastErr
	}
	if err := Validate(t.Sentences); err != nil {
		return nil, err
	}
	log.WithField("sentences", len(t.Sentences)).Info("transcript fetched")
	return Normalize(t.Sentences), nil
}
