package external

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"mapadmin/internal/errors"
)

// DefaultWeatherField is the tile layer served when none is requested.
const DefaultWeatherField = "precipitationIntensity"

// Tile is a rendered map tile.
type Tile struct {
	ContentType string
	Data        []byte
}

// TileQuery addresses one tile of a weather layer.
type TileQuery struct {
	Z, X, Y int
	Field   string
	// Time is an ISO timestamp or "now".
	Time string
}

// Weather fetches tomorrow.io map tiles.
type Weather struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewWeather builds a client; a nil httpClient gets a 10s timeout default.
func NewWeather(baseURL, apiKey string, httpClient *http.Client) *Weather {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Weather{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, client: httpClient}
}

// Tile downloads the PNG tile addressed by q.
func (w *Weather) Tile(ctx context.Context, q TileQuery) (*Tile, error) {
	field := q.Field
	if field == "" {
		field = DefaultWeatherField
	}
	at := q.Time
	if at == "" {
		at = "now"
	}
	endpoint := fmt.Sprintf("%s/map/tile/%d/%d/%d/%s/%s.png?apikey=%s",
		w.baseURL, q.Z, q.X, q.Y, url.PathEscape(field), url.PathEscape(at), url.QueryEscape(w.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}
	req.Header.Set("Accept", "image/png")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, &errors.UpstreamError{Message: "failed to fetch live weather data"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &errors.UpstreamError{StatusCode: resp.StatusCode, Message: "failed to fetch live weather data"}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.UpstreamError{Message: "failed to fetch live weather data"}
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return &Tile{ContentType: contentType, Data: data}, nil
}
