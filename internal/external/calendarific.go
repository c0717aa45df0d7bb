// Package external holds the HTTP clients for third-party data providers.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mapadmin/internal/errors"
)

const defaultTimeout = 10 * time.Second

// Holiday is one entry of the Calendarific holidays response.
type Holiday struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Country     HolidayCountry  `json:"country"`
	Date        HolidayDate     `json:"date"`
	Type        []string        `json:"type"`
	PrimaryType string          `json:"primary_type,omitempty"`
	Locations   string          `json:"locations"`
	States      json.RawMessage `json:"states,omitempty"`
}

// HolidayCountry identifies the country a holiday belongs to.
type HolidayCountry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HolidayDate is the date block of a holiday.
type HolidayDate struct {
	ISO      string `json:"iso"`
	Datetime struct {
		Year  int `json:"year"`
		Month int `json:"month"`
		Day   int `json:"day"`
	} `json:"datetime"`
}

// HolidayQuery selects the holidays of one day in one country.
type HolidayQuery struct {
	Country string
	Year    string
	Month   string
	Day     string
}

type calendarificResponse struct {
	Meta struct {
		Code        int    `json:"code"`
		ErrorType   string `json:"error_type"`
		ErrorDetail string `json:"error_detail"`
	} `json:"meta"`
	Response json.RawMessage `json:"response"`
}

// Calendarific fetches public holidays.
type Calendarific struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewCalendarific builds a client; a nil httpClient gets a 10s timeout default.
func NewCalendarific(baseURL, apiKey string, httpClient *http.Client) *Calendarific {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Calendarific{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, client: httpClient}
}

// Holidays returns the holidays matching q.
// Non-2xx upstream responses are returned as *errors.UpstreamError carrying the upstream status.
func (c *Calendarific) Holidays(ctx context.Context, q HolidayQuery) ([]Holiday, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("country", q.Country)
	params.Set("year", q.Year)
	params.Set("month", q.Month)
	params.Set("day", q.Day)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/holidays?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build calendarific request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &errors.UpstreamError{Message: fmt.Sprintf("calendarific request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.UpstreamError{StatusCode: resp.StatusCode, Message: "read calendarific response"}
	}

	var payload calendarificResponse
	decodeErr := json.Unmarshal(body, &payload)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := "error fetching data from Calendarific API"
		if decodeErr == nil && payload.Meta.ErrorDetail != "" {
			msg = payload.Meta.ErrorDetail
		}
		return nil, &errors.UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, &errors.UpstreamError{Message: "decode calendarific response"}
	}

	// An empty result comes back as "response": [] rather than an object.
	var inner struct {
		Holidays []Holiday `json:"holidays"`
	}
	if len(payload.Response) == 0 || payload.Response[0] != '{' {
		return []Holiday{}, nil
	}
	if err := json.Unmarshal(payload.Response, &inner); err != nil {
		return nil, &errors.UpstreamError{Message: "decode calendarific holidays"}
	}
	if inner.Holidays == nil {
		inner.Holidays = []Holiday{}
	}
	return inner.Holidays, nil
}
