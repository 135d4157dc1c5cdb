package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"star-burger/internal/domain"
)

const DefaultBaseURL = "https://geocode-maps.yandex.ru/1.x"

// Client fetches coordinates for free-text addresses from the geocoding
// service. A nil result with a nil error means the address was not found.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

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

func (c *Client) FetchCoordinates(ctx context.Context, address string) (*domain.Coordinates, error) {
	params := url.Values{}
	params.Set("geocode", address)
	params.Set("apikey", c.APIKey)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode request: unexpected status %d", resp.StatusCode)
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	found := payload.Response.GeoObjectCollection.FeatureMember
	if len(found) == 0 {
		return nil, nil
	}

	// The most relevant match comes first. The service encodes positions as
	// "lon lat", so the swap into lat/lon happens here and nowhere else.
	parts := strings.Fields(found[0].GeoObject.Point.Pos)
	if len(parts) != 2 {
		return nil, fmt.Errorf("malformed position %q", found[0].GeoObject.Point.Pos)
	}
	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude: %w", err)
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude: %w", err)
	}

	return &domain.Coordinates{Lat: lat, Lon: lon}, nil
}
