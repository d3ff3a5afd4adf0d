package travel

import (
	"testing"

	"miles/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMockFlightDataShape(t *testing.T) {
	dash := GenerateMockFlightData("Paris", "Tokyo", "2026-10-01")
	require.NotNil(t, dash)

	assert.False(t, dash.HasRealData)
	assert.Equal(t, "Paris", dash.Route.Departure)
	assert.Equal(t, "PAR", dash.Route.DepartureCode)
	assert.Equal(t, "TYO", dash.Route.DestinationCode)
	assert.Equal(t, "2026-10-01", dash.Route.Date)

	require.Len(t, dash.Flights, mockFlightCount)
	for i, f := range dash.Flights {
		assert.Equal(t, i == 0, f.IsOptimal, "only the first flight is optimal")
		assert.GreaterOrEqual(t, f.Price, mockPriceFloor)
		assert.NotEmpty(t, f.Airline)
		assert.NotEmpty(t, f.FlightNumber)
	}
	for _, f := range dash.Flights[1:] {
		assert.Greater(t, f.Price, dash.Flights[0].Price, "the optimal flight is the cheapest")
	}
}

func TestGenerateMockFlightDataPriceSeries(t *testing.T) {
	dash := GenerateMockFlightData("boston", "miami", "2026-10-01")

	require.Len(t, dash.PriceData, priceSeriesDays)
	base := dash.Flights[0].Price
	for _, p := range dash.PriceData {
		assert.GreaterOrEqual(t, p.Price, mockPriceFloor)
		assert.LessOrEqual(t, p.Price, base+mockPriceBand)
		assert.GreaterOrEqual(t, p.Price, base-mockPriceBand)
		assert.Equal(t, base, p.Optimal, "series reference price matches the optimal flight")
		assert.NotEmpty(t, p.Date)
	}
}

func TestGenerateMockFlightDataUnknownRouteCodes(t *testing.T) {
	dash := GenerateMockFlightData("Middle Earth", "Narnia", "2026-10-01")
	assert.Equal(t, "JFK", dash.Route.DepartureCode)
	assert.Equal(t, "LAX", dash.Route.DestinationCode)
}

func TestDashboardFromResults(t *testing.T) {
	res := &models.FlightResults{
		Flights: []models.FlightOffer{
			{
				ID:    "1",
				Price: "412.50",
				Itineraries: []models.FlightItinerary{{
					Duration: "PT7H30M",
					Segments: []models.FlightSegment{
						{
							Departure: models.FlightEndpoint{Airport: "JFK", Time: "2026-10-01T08:00:00"},
							Arrival:   models.FlightEndpoint{Airport: "ORD", Time: "2026-10-01T10:00:00"},
							Airline:   "DL",
						},
						{
							Departure: models.FlightEndpoint{Airport: "ORD", Time: "2026-10-01T11:00:00"},
							Arrival:   models.FlightEndpoint{Airport: "LAX", Time: "2026-10-01T15:30:00"},
							Airline:   "DL",
						},
					},
				}},
			},
			{
				ID:    "2",
				Price: "498.00",
				Itineraries: []models.FlightItinerary{{
					Duration: "PT6H05M",
					Segments: []models.FlightSegment{{
						Departure: models.FlightEndpoint{Airport: "JFK", Time: "2026-10-01T09:00:00"},
						Arrival:   models.FlightEndpoint{Airport: "LAX", Time: "2026-10-01T15:05:00"},
						Airline:   "UA",
					}},
				}},
			},
		},
		Count: 2,
	}

	dash := DashboardFromResults(res, "New York", "Los Angeles", "2026-10-01")
	require.NotNil(t, dash)

	assert.True(t, dash.HasRealData)
	require.Len(t, dash.Flights, 2)

	first := dash.Flights[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, 413, first.Price)
	assert.True(t, first.IsOptimal)
	assert.Equal(t, 1, first.Stops)
	assert.Equal(t, "DL", first.Airline)
	assert.Equal(t, "2026-10-01T08:00:00", first.Departure)
	assert.Equal(t, "2026-10-01T15:30:00", first.Arrival)

	second := dash.Flights[1]
	assert.Equal(t, 0, second.Stops)
	assert.False(t, second.IsOptimal)

	require.Len(t, dash.PriceData, priceSeriesDays)
	for _, p := range dash.PriceData {
		assert.Equal(t, 413, p.Optimal)
	}
}

func TestDashboardFromResultsEmpty(t *testing.T) {
	assert.Nil(t, DashboardFromResults(nil, "a", "b", "2026-10-01"))
	assert.Nil(t, DashboardFromResults(&models.FlightResults{}, "a", "b", "2026-10-01"))
}
