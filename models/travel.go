package models

// Normalized result schemas for the six Amadeus query operations. Every
// operation returns exactly one of these shapes; on failure the Error field
// is set and the collection stays empty. Prices and ratings are carried as
// the provider sends them (decimal strings) to avoid lossy conversion.

// FlightEndpoint is one end of a flight segment.
type FlightEndpoint struct {
	Airport string `json:"airport"`
	Time    string `json:"time"`
}

// FlightSegment is a single leg operated by one carrier.
type FlightSegment struct {
	Departure FlightEndpoint `json:"departure"`
	Arrival   FlightEndpoint `json:"arrival"`
	Airline   string         `json:"airline"`
	Duration  string         `json:"duration"`
}

// FlightItinerary groups the segments of one direction of travel.
type FlightItinerary struct {
	Duration string          `json:"duration"`
	Segments []FlightSegment `json:"segments"`
}

// FlightOffer is a priced flight option.
type FlightOffer struct {
	ID          string            `json:"id"`
	Price       string            `json:"price"`
	Currency    string            `json:"currency"`
	Itineraries []FlightItinerary `json:"itineraries"`
}

// FlightResults is the normalized flight-offers payload.
type FlightResults struct {
	Flights []FlightOffer `json:"flights"`
	Count   int           `json:"count"`
	Error   string        `json:"error,omitempty"`
}

// HotelOffer is a priced hotel option.
type HotelOffer struct {
	HotelID  string `json:"hotel_id"`
	Name     string `json:"name"`
	Rating   string `json:"rating"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

// HotelResults is the normalized hotel-offers payload.
type HotelResults struct {
	Hotels []HotelOffer `json:"hotels"`
	Count  int          `json:"count"`
	Error  string       `json:"error,omitempty"`
}

// Activity is a bookable tour or attraction near a coordinate.
type Activity struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Currency    string   `json:"currency"`
	Rating      string   `json:"rating"`
	Pictures    []string `json:"pictures"`
}

// ActivityResults is the normalized activities payload.
type ActivityResults struct {
	Activities []Activity `json:"activities"`
	Count      int        `json:"count"`
	Error      string     `json:"error,omitempty"`
}

// Destination is a flight-inspiration suggestion from a fixed origin.
type Destination struct {
	Destination   string `json:"destination"`
	Price         string `json:"price"`
	Currency      string `json:"currency"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
}

// DestinationResults is the normalized flight-inspiration payload.
type DestinationResults struct {
	Destinations []Destination `json:"destinations"`
	Count        int           `json:"count"`
	Error        string        `json:"error,omitempty"`
}

// Location is an airport or city reference-data record.
type Location struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// LocationResults is the normalized location-search payload.
type LocationResults struct {
	Locations []Location `json:"locations"`
	Count     int        `json:"count"`
	Error     string     `json:"error,omitempty"`
}

// DatePrice is one cheapest-date option for a route.
type DatePrice struct {
	Date     string `json:"date"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
}

// DateResults is the normalized cheapest-dates payload.
type DateResults struct {
	Dates []DatePrice `json:"dates"`
	Count int         `json:"count"`
	Error string      `json:"error,omitempty"`
}

// TravelData wraps a resolved query result for the response composer.
// Data holds one of the six normalized payloads above; Error is set when
// the intent looked travel-related but could not be served.
type TravelData struct {
	QueryType string `json:"query_type"`
	Data      any    `json:"data,omitempty"`
	FromCache bool   `json:"from_cache,omitempty"`
	Error     string `json:"error,omitempty"`
}
