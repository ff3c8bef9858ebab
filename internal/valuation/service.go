package valuation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"homesale_backend/platform/config"
	"homesale_backend/platform/logger"
)

// Service resolves home value estimates from an external lookup API. When no
// API URL is configured the service is disabled and every lookup returns a
// nil estimate, which callers treat as "no estimate available".
type Service struct {
	cfg        config.ValuationConfig
	httpClient *http.Client
	log        *logger.Logger
}

func NewService(cfg config.ValuationConfig, log *logger.Logger) *Service {
	return &Service{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Lookup fetches the estimate for a free-form address. A nil estimate with a
// nil error means the upstream has no valuation for this address, or the
// service is not configured. Errors are reserved for transport and decode
// failures.
func (s *Service) Lookup(ctx context.Context, address string) (*Estimate, error) {
	if !s.cfg.IsValuationEnabled() {
		return nil, nil
	}

	reqURL := fmt.Sprintf("%s?address=%s", s.cfg.GetValuationAPIURL(), url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("valuation: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if key := s.cfg.GetValuationAPIKey(); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("valuation: lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		s.log.UpstreamError("valuation", resp.StatusCode, nil)
		return nil, fmt.Errorf("valuation: unexpected status %d", resp.StatusCode)
	}

	var payload apiEstimate
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("valuation: decode response: %w", err)
	}
	if payload.Value == nil {
		return nil, nil
	}

	return &Estimate{Value: *payload.Value, RentValue: payload.RentValue}, nil
}
