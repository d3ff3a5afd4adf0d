package travel

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"miles/models"
)

// Synthetic flight data for when the provider path is unavailable. The
// shape is deterministic, the values are randomized within guardrails:
// exactly six flights, the first one flagged optimal, every price at or
// above the floor, and a seven-day price series derived from the same base
// price as the flights so the chart and the table never contradict each
// other. HasRealData is always false on this path.

const (
	mockFlightCount = 6
	mockPriceFloor  = 120
	mockPriceBand   = 150
	priceSeriesDays = 7
)

type mockCarrier struct {
	Name string
	Code string
}

var mockCarriers = [mockFlightCount]mockCarrier{
	{"Delta Airlines", "DL"},
	{"United Airlines", "UA"},
	{"American Airlines", "AA"},
	{"Southwest Airlines", "WN"},
	{"JetBlue Airways", "B6"},
	{"Spirit Airlines", "NK"},
}

var mockSchedules = [mockFlightCount]struct {
	Departure string
	Arrival   string
	Duration  string
	Stops     int
}{
	{"08:00 AM", "11:30 AM", "3h 30m", 0},
	{"10:15 AM", "02:00 PM", "3h 45m", 0},
	{"01:30 PM", "05:15 PM", "3h 45m", 0},
	{"06:00 AM", "11:45 AM", "5h 45m", 1},
	{"03:00 PM", "06:45 PM", "3h 45m", 0},
	{"07:30 AM", "01:30 PM", "6h 00m", 1},
}

// GenerateMockFlightData synthesizes a dashboard for the given route and
// ISO departure date.
func GenerateMockFlightData(origin, destination, date string) *models.FlightDashboard {
	basePrice := mockPriceFloor + rand.Intn(330)

	flights := make([]models.DashboardFlight, 0, mockFlightCount)
	for i := 0; i < mockFlightCount; i++ {
		price := basePrice
		if i > 0 {
			price = basePrice + 10 + rand.Intn(mockPriceBand-10)
		}
		flights = append(flights, models.DashboardFlight{
			ID:           strconv.Itoa(i + 1),
			Airline:      mockCarriers[i].Name,
			FlightNumber: fmt.Sprintf("%s %d", mockCarriers[i].Code, 1000+rand.Intn(9000)),
			Departure:    mockSchedules[i].Departure,
			Arrival:      mockSchedules[i].Arrival,
			Duration:     mockSchedules[i].Duration,
			Price:        price,
			IsOptimal:    i == 0,
			Stops:        mockSchedules[i].Stops,
		})
	}

	return &models.FlightDashboard{
		Route:       buildRouteInfo(origin, destination, date),
		Flights:     flights,
		PriceData:   priceSeries(basePrice, date),
		HasRealData: false,
	}
}

// DashboardFromResults renders real provider results into the dashboard
// shape. The price series is derived from the first offer's price so both
// views stay numerically consistent.
func DashboardFromResults(res *models.FlightResults, origin, destination, date string) *models.FlightDashboard {
	if res == nil || len(res.Flights) == 0 {
		return nil
	}

	limit := len(res.Flights)
	if limit > mockFlightCount {
		limit = mockFlightCount
	}

	flights := make([]models.DashboardFlight, 0, limit)
	for i := 0; i < limit; i++ {
		offer := res.Flights[i]
		row := models.DashboardFlight{
			ID:        offer.ID,
			Price:     roundPrice(offer.Price),
			IsOptimal: i == 0,
		}
		if len(offer.Itineraries) > 0 {
			itin := offer.Itineraries[0]
			row.Duration = itin.Duration
			row.Stops = len(itin.Segments) - 1
			if len(itin.Segments) > 0 {
				row.Airline = itin.Segments[0].Airline
				row.Departure = itin.Segments[0].Departure.Time
				row.Arrival = itin.Segments[len(itin.Segments)-1].Arrival.Time
			}
		}
		flights = append(flights, row)
	}

	return &models.FlightDashboard{
		Route:       buildRouteInfo(origin, destination, date),
		Flights:     flights,
		PriceData:   priceSeries(flights[0].Price, date),
		HasRealData: true,
	}
}

// priceSeries builds the seven-day trend around the departure date. Every
// point stays within the fixed band of the base price and above the floor.
func priceSeries(basePrice int, date string) []models.PricePoint {
	anchor, err := time.Parse("2006-01-02", date)
	if err != nil {
		anchor = time.Now()
	}

	points := make([]models.PricePoint, 0, priceSeriesDays)
	for i := 0; i < priceSeriesDays; i++ {
		day := anchor.AddDate(0, 0, i-3)
		price := basePrice - mockPriceBand/3 + rand.Intn(mockPriceBand)
		if price < mockPriceFloor {
			price = mockPriceFloor
		}
		points = append(points, models.PricePoint{
			Date:    day.Format("Jan 2"),
			Price:   price,
			Optimal: basePrice,
		})
	}
	return points
}

func buildRouteInfo(origin, destination, date string) models.RouteInfo {
	return models.RouteInfo{
		Departure:       origin,
		Destination:     destination,
		DepartureCode:   placeCode(origin, "JFK"),
		DestinationCode: placeCode(destination, "LAX"),
		Date:            date,
	}
}

func placeCode(place, fallback string) string {
	if IsLocationCode(place) {
		return place
	}
	if code, ok := NormalizeLocation(place); ok {
		return code
	}
	return fallback
}

func roundPrice(s string) int {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f + 0.5)
}
