package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// getJSON performs a single GET request and decodes a JSON body into out.
// Transport failures, non-200 statuses and undecodable bodies are reported
// as ErrGeocodingUnavailable.
func getJSON(
	ctx context.Context,
	client HTTPClient,
	log *slog.Logger,
	provider string,
	reqURL string,
	header http.Header,
	out any,
) error {
	log.DebugContext(ctx, "Geocoding request URL", "provider", provider, "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrGeocodingUnavailable, err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute geocoding request: %w", ErrGeocodingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.ErrorContext(ctx, "Geocoding API error", "provider", provider, "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("%w: %s API returned status %d", ErrGeocodingUnavailable, provider, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrGeocodingUnavailable, err)
	}

	log.DebugContext(ctx, "Geocoding raw response", "provider", provider, "body", string(body))

	if err = json.Unmarshal(body, out); err != nil {
		log.ErrorContext(ctx, "Failed to parse geocoding response", "provider", provider, "error", err)
		return fmt.Errorf("%w: failed to decode %s response: %w", ErrGeocodingUnavailable, provider, err)
	}

	return nil
}
