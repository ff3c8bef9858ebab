package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"homesale_backend/platform/logger"
)

const nominatimURL = "https://nominatim.openstreetmap.org/search"

// Service resolves partial address input to full US addresses via the
// OpenStreetMap Nominatim search API. Concurrent lookups for the same
// query string are collapsed into a single upstream request.
type Service struct {
	client *http.Client
	group  singleflight.Group
	log    *logger.Logger
}

func NewService(log *logger.Logger) *Service {
	return &Service{
		client: &http.Client{Timeout: 5 * time.Second},
		log:    log,
	}
}

func (s *Service) SearchAddress(ctx context.Context, query string) ([]Candidate, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.search(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	return v.([]Candidate), nil
}

func (s *Service) search(ctx context.Context, query string) ([]Candidate, error) {
	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("addressdetails", "1")
	params.Add("limit", "5")
	params.Add("countrycodes", "us")

	reqURL := fmt.Sprintf("%s?%s", nominatimURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "HomeSaleCalculator/1.0")
	req.Header.Set("Accept-Language", "en-US")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("nominatim request failed", "error", err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		s.log.Error("nominatim upstream error", "status", resp.StatusCode)
		return nil, fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var rawResults []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&rawResults); err != nil {
		s.log.Error("failed to decode nominatim payload", "error", err)
		return nil, err
	}

	candidates := make([]Candidate, 0, len(rawResults))
	for _, raw := range rawResults {
		text, ok := formatAddress(raw.Address)
		if !ok {
			continue
		}
		candidates = append(candidates, Candidate{Text: text})
	}

	return candidates, nil
}

// formatAddress renders "Street, City, State Zip". Results without a
// street or city are dropped rather than shown half-formed.
func formatAddress(addr nominatimAddress) (string, bool) {
	street := streetLine(addr)
	if street == "" {
		return "", false
	}

	city := pickCity(addr)
	if city == "" {
		return "", false
	}

	parts := []string{street, city}

	region := addr.State
	if addr.Postcode != "" {
		region = strings.TrimSpace(region + " " + addr.Postcode)
	}
	if region != "" {
		parts = append(parts, region)
	}

	return strings.Join(parts, ", "), true
}

func streetLine(addr nominatimAddress) string {
	if addr.Road == "" {
		return ""
	}
	if addr.HouseNumber != "" {
		return addr.HouseNumber + " " + addr.Road
	}
	return addr.Road
}

func pickCity(addr nominatimAddress) string {
	if addr.City != "" {
		return addr.City
	}
	if addr.Town != "" {
		return addr.Town
	}
	return addr.Village
}
