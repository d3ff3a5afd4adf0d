package models

// ChatMessage is one turn of the conversation.
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ClientContext carries optional locale hints supplied by the frontend.
type ClientContext struct {
	NowISO     string `json:"now_iso,omitempty"`
	UserTZ     string `json:"user_tz,omitempty"`
	UserLocale string `json:"user_locale,omitempty"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	SessionID string         `json:"session_id,omitempty"`
	Messages  []ChatMessage  `json:"messages"`
	Context   *ClientContext `json:"context,omitempty"`
}

// ChatResponse is the assistant's reply plus any structured travel data
// resolved for this turn. Dashboard is populated for flight queries so the
// frontend can render the map, table and price chart.
type ChatResponse struct {
	Reply      string           `json:"reply"`
	SessionID  string           `json:"session_id"`
	TravelData *TravelData      `json:"travel_data,omitempty"`
	Dashboard  *FlightDashboard `json:"dashboard,omitempty"`
}

// RouteInfo describes the searched route for dashboard rendering.
type RouteInfo struct {
	Departure       string `json:"departure"`
	Destination     string `json:"destination"`
	DepartureCode   string `json:"departureCode"`
	DestinationCode string `json:"destinationCode"`
	Date            string `json:"date"`
}

// DashboardFlight is one row of the flight results table.
type DashboardFlight struct {
	ID           string `json:"id"`
	Airline      string `json:"airline"`
	FlightNumber string `json:"flightNumber"`
	Departure    string `json:"departure"`
	Arrival      string `json:"arrival"`
	Duration     string `json:"duration"`
	Price        int    `json:"price"`
	IsOptimal    bool   `json:"isOptimal"`
	Stops        int    `json:"stops"`
}

// PricePoint is one day of the price trend chart. Optimal repeats the best
// available price so the chart can draw a reference line.
type PricePoint struct {
	Date    string `json:"date"`
	Price   int    `json:"price"`
	Optimal int    `json:"optimal"`
}

// FlightDashboard is the render-ready flight view. HasRealData is false
// when the rows were synthesized because the provider path was unavailable;
// consumers must treat such data as non-authoritative.
type FlightDashboard struct {
	Route       RouteInfo         `json:"route"`
	Flights     []DashboardFlight `json:"flights"`
	PriceData   []PricePoint      `json:"priceData"`
	HasRealData bool              `json:"hasRealData"`
}
