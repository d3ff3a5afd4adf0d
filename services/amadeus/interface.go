package amadeus

import (
	"context"

	"miles/models"
)

// FlightQuery holds the typed inputs for a flight-offers search.
// Dates are ISO (YYYY-MM-DD); MaxPrice of zero means no ceiling.
type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	MaxPrice      int
}

// HotelQuery holds the typed inputs for a hotel-offers search.
type HotelQuery struct {
	CityCode   string
	CheckIn    string
	CheckOut   string
	Adults     int
	Radius     int
	PriceRange string
}

// ActivityQuery holds the typed inputs for an activities search.
type ActivityQuery struct {
	Latitude  float64
	Longitude float64
	Radius    int
}

// InspirationQuery holds the typed inputs for a flight-destinations search.
type InspirationQuery struct {
	Origin        string
	MaxPrice      int
	DepartureDate string
}

// AmadeusService exposes the six authenticated query operations. Every
// operation maps the provider response into the matching normalized shape;
// failures surface inside the payload's Error field, never as a returned
// Go error, so callers need no error handling around these calls.
type AmadeusService interface {
	SearchFlights(ctx context.Context, q FlightQuery) *models.FlightResults
	FlightInspiration(ctx context.Context, q InspirationQuery) *models.DestinationResults
	SearchHotels(ctx context.Context, q HotelQuery) *models.HotelResults
	SearchActivities(ctx context.Context, q ActivityQuery) *models.ActivityResults
	SearchLocations(ctx context.Context, keyword string) *models.LocationResults
	CheapestDates(ctx context.Context, origin, destination, departureRange string) *models.DateResults
}
