package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "mapadmin/internal/errors"
	"mapadmin/internal/external"
)

func TestEventService_Daily(t *testing.T) {
	query := external.HolidayQuery{Country: "EG", Year: "2024", Month: "10", Day: "6"}

	tests := []struct {
		name      string
		query     external.HolidayQuery
		setupMock func(*MockHolidaySource)
		wantErr   bool
	}{
		{
			name:  "proxies holidays",
			query: query,
			setupMock: func(m *MockHolidaySource) {
				m.On("Holidays", mock.Anything, query).Return([]external.Holiday{{Name: "Armed Forces Day"}}, nil)
			},
		},
		{
			name:      "missing day",
			query:     external.HolidayQuery{Country: "EG", Year: "2024", Month: "10"},
			setupMock: func(*MockHolidaySource) {},
			wantErr:   true,
		},
		{
			name:      "non numeric month",
			query:     external.HolidayQuery{Country: "EG", Year: "2024", Month: "Oct", Day: "6"},
			setupMock: func(*MockHolidaySource) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := new(MockHolidaySource)
			tt.setupMock(source)

			service := NewEventService(source, zerolog.Nop())
			holidays, err := service.Daily(context.Background(), tt.query)

			if tt.wantErr {
				var validationErr *apperrors.ValidationError
				assert.ErrorAs(t, err, &validationErr)
				source.AssertNotCalled(t, "Holidays", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			require.Len(t, holidays, 1)
			assert.Equal(t, "Armed Forces Day", holidays[0].Name)
		})
	}
}

func TestEventService_Daily_UpstreamStatusPropagates(t *testing.T) {
	query := external.HolidayQuery{Country: "EG", Year: "2024", Month: "10", Day: "6"}
	source := new(MockHolidaySource)
	source.On("Holidays", mock.Anything, query).
		Return(nil, &apperrors.UpstreamError{StatusCode: http.StatusUnauthorized, Message: "Invalid API key"})

	service := NewEventService(source, zerolog.Nop())
	_, err := service.Daily(context.Background(), query)

	httpErr := apperrors.MapErrorToHTTP(err)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, "Invalid API key", httpErr.Message)
}

func TestWeatherService_Tile_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		query   external.TileQuery
		wantErr bool
	}{
		{"root tile", external.TileQuery{Z: 0, X: 0, Y: 0}, false},
		{"zoom 3 corner", external.TileQuery{Z: 3, X: 7, Y: 7}, false},
		{"x beyond zoom", external.TileQuery{Z: 3, X: 8, Y: 0}, true},
		{"negative y", external.TileQuery{Z: 1, X: 0, Y: -1}, true},
		{"zoom too deep", external.TileQuery{Z: 23}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := new(MockTileSource)
			if !tt.wantErr {
				source.On("Tile", mock.Anything, tt.query).Return(&external.Tile{ContentType: "image/png", Data: []byte{0x89}}, nil)
			}

			service := NewWeatherService(source, zerolog.Nop())
			tile, err := service.Tile(context.Background(), tt.query)

			if tt.wantErr {
				var validationErr *apperrors.ValidationError
				assert.ErrorAs(t, err, &validationErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "image/png", tile.ContentType)
		})
	}
}
