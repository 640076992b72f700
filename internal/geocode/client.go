package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"food-dispatch/internal/config"
	"food-dispatch/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// httpClient implements Client against the provider's HTTP API.
type httpClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  zerolog.Logger
}

// NewClient creates a geocoding client from the injected configuration.
func NewClient(cfg config.GeocoderConfig, logger zerolog.Logger) Client {
	return &httpClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger.With().Str("component", "geocode-client").Logger(),
	}
}

// geocodeResponse mirrors the provider's nested JSON. Placemarks arrive in
// the provider's own relevance order; each carries a "lon lat" pos string.
type geocodeResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// Geocode asks the provider for the given address.
func (c *httpClient) Geocode(ctx context.Context, address string) (*model.Coordinates, error) {
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, url.Values{
		"apikey":  []string{c.apiKey},
		"geocode": []string{address},
		"format":  []string{"json"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Warn().Err(err).Str("address", address).Msg("failed to build geocoder request")
		return nil, fmt.Errorf("failed to build geocoder request: %w: %s", model.ErrGeocoderUnavailable, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("address", address).Msg("geocoder request failed")
		return nil, fmt.Errorf("geocoder request failed: %w: %s", model.ErrGeocoderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("address", address).
			Msg("geocoder returned non-2xx status")
		return nil, fmt.Errorf("geocoder returned status %d: %w", resp.StatusCode, model.ErrGeocoderUnavailable)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Warn().Err(err).Str("address", address).Msg("geocoder returned malformed body")
		return nil, fmt.Errorf("malformed geocoder response: %w", model.ErrGeocoderUnavailable)
	}

	members := body.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		c.logger.Debug().Str("address", address).Msg("geocoder found no placemarks")
		return nil, nil
	}

	coords, err := parsePos(members[0].GeoObject.Point.Pos)
	if err != nil {
		c.logger.Warn().Err(err).Str("address", address).Msg("geocoder placemark has malformed coordinates")
		return nil, fmt.Errorf("malformed geocoder response: %w", model.ErrGeocoderUnavailable)
	}

	c.logger.Debug().
		Str("address", address).
		Int("placemarks", len(members)).
		Msg("address geocoded")

	return coords, nil
}

// parsePos parses the provider's space-separated "lon lat" coordinate string.
func parsePos(pos string) (*model.Coordinates, error) {
	fields := strings.Fields(pos)
	if len(fields) != 2 {
		return nil, fmt.Errorf("expected \"lon lat\", got %q", pos)
	}

	lon, err := decimal.NewFromString(fields[0])
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", fields[0], err)
	}

	lat, err := decimal.NewFromString(fields[1])
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", fields[1], err)
	}

	return &model.Coordinates{Longitude: lon, Latitude: lat}, nil
}
