package amadeus

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"miles/models"
	"miles/utils"

	"go.uber.org/zap"
)

// The six query operations. Each builds the provider parameter set, runs
// the authenticated GET, and maps the provider envelope into the normalized
// shape. Failures are converted into an error-shaped payload at this
// boundary so callers only ever see a uniform ok/error result.

type flightOffersEnvelope struct {
	Data []struct {
		ID    string `json:"id"`
		Price struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
		Itineraries []struct {
			Duration string `json:"duration"`
			Segments []struct {
				Departure struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"departure"`
				Arrival struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"arrival"`
				CarrierCode string `json:"carrierCode"`
				Duration    string `json:"duration"`
			} `json:"segments"`
		} `json:"itineraries"`
	} `json:"data"`
}

// SearchFlights queries flight offers for a route and date.
func (s *DefaultAmadeusService) SearchFlights(ctx context.Context, q FlightQuery) *models.FlightResults {
	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.DepartureDate)
	params.Set("adults", strconv.Itoa(orOne(q.Adults)))
	if q.ReturnDate != "" {
		params.Set("returnDate", q.ReturnDate)
	}
	if q.MaxPrice > 0 {
		params.Set("maxPrice", strconv.Itoa(q.MaxPrice))
	}

	body, err := s.execute(ctx, "/v2/shopping/flight-offers", params)
	if err != nil {
		utils.GetLogger().Warn("Flight search failed", zap.Error(err))
		return &models.FlightResults{Error: err.Error(), Flights: []models.FlightOffer{}}
	}

	var env flightOffersEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &models.FlightResults{Error: err.Error(), Flights: []models.FlightOffer{}}
	}

	flights := make([]models.FlightOffer, 0, len(env.Data))
	for _, offer := range env.Data {
		f := models.FlightOffer{
			ID:          offer.ID,
			Price:       offer.Price.Total,
			Currency:    offer.Price.Currency,
			Itineraries: []models.FlightItinerary{},
		}
		for _, itin := range offer.Itineraries {
			segments := make([]models.FlightSegment, 0, len(itin.Segments))
			for _, seg := range itin.Segments {
				segments = append(segments, models.FlightSegment{
					Departure: models.FlightEndpoint{Airport: seg.Departure.IataCode, Time: seg.Departure.At},
					Arrival:   models.FlightEndpoint{Airport: seg.Arrival.IataCode, Time: seg.Arrival.At},
					Airline:   seg.CarrierCode,
					Duration:  seg.Duration,
				})
			}
			f.Itineraries = append(f.Itineraries, models.FlightItinerary{
				Duration: itin.Duration,
				Segments: segments,
			})
		}
		flights = append(flights, f)
	}
	return &models.FlightResults{Flights: flights, Count: len(flights)}
}

type inspirationEnvelope struct {
	Data []struct {
		Destination string `json:"destination"`
		Price       struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
		DepartureDate string `json:"departureDate"`
		ReturnDate    string `json:"returnDate"`
	} `json:"data"`
}

// FlightInspiration suggests destinations reachable from an origin.
func (s *DefaultAmadeusService) FlightInspiration(ctx context.Context, q InspirationQuery) *models.DestinationResults {
	params := url.Values{}
	params.Set("origin", q.Origin)
	if q.MaxPrice > 0 {
		params.Set("maxPrice", strconv.Itoa(q.MaxPrice))
	}
	if q.DepartureDate != "" {
		params.Set("departureDate", q.DepartureDate)
	}

	body, err := s.execute(ctx, "/v1/shopping/flight-destinations", params)
	if err != nil {
		utils.GetLogger().Warn("Flight inspiration failed", zap.Error(err))
		return &models.DestinationResults{Error: err.Error(), Destinations: []models.Destination{}}
	}

	var env inspirationEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &models.DestinationResults{Error: err.Error(), Destinations: []models.Destination{}}
	}

	destinations := make([]models.Destination, 0, len(env.Data))
	for _, d := range env.Data {
		destinations = append(destinations, models.Destination{
			Destination:   d.Destination,
			Price:         d.Price.Total,
			Currency:      d.Price.Currency,
			DepartureDate: d.DepartureDate,
			ReturnDate:    d.ReturnDate,
		})
	}
	return &models.DestinationResults{Destinations: destinations, Count: len(destinations)}
}

type hotelOffersEnvelope struct {
	Data []struct {
		Hotel struct {
			HotelID string `json:"hotelId"`
			Name    string `json:"name"`
			Rating  string `json:"rating"`
		} `json:"hotel"`
		Offers []struct {
			Price struct {
				Total    string `json:"total"`
				Currency string `json:"currency"`
			} `json:"price"`
			CheckInDate  string `json:"checkInDate"`
			CheckOutDate string `json:"checkOutDate"`
		} `json:"offers"`
	} `json:"data"`
}

// SearchHotels queries hotel offers in a city for a stay window.
func (s *DefaultAmadeusService) SearchHotels(ctx context.Context, q HotelQuery) *models.HotelResults {
	params := url.Values{}
	params.Set("cityCode", q.CityCode)
	params.Set("checkInDate", q.CheckIn)
	params.Set("checkOutDate", q.CheckOut)
	params.Set("adults", strconv.Itoa(orOne(q.Adults)))
	radius := q.Radius
	if radius <= 0 {
		radius = 50
	}
	params.Set("radius", strconv.Itoa(radius))
	if q.PriceRange != "" {
		params.Set("priceRange", q.PriceRange)
	}

	body, err := s.execute(ctx, "/v2/shopping/hotel-offers", params)
	if err != nil {
		utils.GetLogger().Warn("Hotel search failed", zap.Error(err))
		return &models.HotelResults{Error: err.Error(), Hotels: []models.HotelOffer{}}
	}

	var env hotelOffersEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &models.HotelResults{Error: err.Error(), Hotels: []models.HotelOffer{}}
	}

	hotels := make([]models.HotelOffer, 0, len(env.Data))
	for _, item := range env.Data {
		h := models.HotelOffer{
			HotelID: item.Hotel.HotelID,
			Name:    item.Hotel.Name,
			Rating:  item.Hotel.Rating,
		}
		if len(item.Offers) > 0 {
			h.Price = item.Offers[0].Price.Total
			h.Currency = item.Offers[0].Price.Currency
			h.CheckIn = item.Offers[0].CheckInDate
			h.CheckOut = item.Offers[0].CheckOutDate
		}
		hotels = append(hotels, h)
	}
	return &models.HotelResults{Hotels: hotels, Count: len(hotels)}
}

type activitiesEnvelope struct {
	Data []struct {
		ID               string `json:"id"`
		Name             string `json:"name"`
		ShortDescription string `json:"shortDescription"`
		Price            struct {
			Amount       string `json:"amount"`
			CurrencyCode string `json:"currencyCode"`
		} `json:"price"`
		Rating   string `json:"rating"`
		Pictures []struct {
			URL string `json:"url"`
		} `json:"pictures"`
	} `json:"data"`
}

// SearchActivities queries tours and attractions around a coordinate.
func (s *DefaultAmadeusService) SearchActivities(ctx context.Context, q ActivityQuery) *models.ActivityResults {
	radius := q.Radius
	if radius <= 0 {
		radius = 20
	}
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(q.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(q.Longitude, 'f', -1, 64))
	params.Set("radius", strconv.Itoa(radius))

	body, err := s.execute(ctx, "/v1/shopping/activities", params)
	if err != nil {
		utils.GetLogger().Warn("Activity search failed", zap.Error(err))
		return &models.ActivityResults{Error: err.Error(), Activities: []models.Activity{}}
	}

	var env activitiesEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &models.ActivityResults{Error: err.Error(), Activities: []models.Activity{}}
	}

	activities := make([]models.Activity, 0, len(env.Data))
	for _, a := range env.Data {
		pictures := make([]string, 0, len(a.Pictures))
		for _, pic := range a.Pictures {
			pictures = append(pictures, pic.URL)
		}
		activities = append(activities, models.Activity{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.ShortDescription,
			Price:       a.Price.Amount,
			Currency:    a.Price.CurrencyCode,
			Rating:      a.Rating,
			Pictures:    pictures,
		})
	}
	return &models.ActivityResults{Activities: activities, Count: len(activities)}
}

type locationsEnvelope struct {
	Data []struct {
		IataCode string `json:"iataCode"`
		Name     string `json:"name"`
		SubType  string `json:"subType"`
		Address  struct {
			CityName    string `json:"cityName"`
			CountryName string `json:"countryName"`
		} `json:"address"`
	} `json:"data"`
}

// SearchLocations looks up airports and cities matching a keyword.
func (s *DefaultAmadeusService) SearchLocations(ctx context.Context, keyword string) *models.LocationResults {
	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("subType", "AIRPORT,CITY")

	body, err := s.execute(ctx, "/v1/reference-data/locations", params)
	if err != nil {
		utils.GetLogger().Warn("Location search failed", zap.Error(err))
		return &models.LocationResults{Error: err.Error(), Locations: []models.Location{}}
	}

	var env locationsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &models.LocationResults{Error: err.Error(), Locations: []models.Location{}}
	}

	locations := make([]models.Location, 0, len(env.Data))
	for _, loc := range env.Data {
		locations = append(locations, models.Location{
			Code:    loc.IataCode,
			Name:    loc.Name,
			Type:    loc.SubType,
			City:    loc.Address.CityName,
			Country: loc.Address.CountryName,
		})
	}
	return &models.LocationResults{Locations: locations, Count: len(locations)}
}

type datesEnvelope struct {
	Data []struct {
		Date  string `json:"date"`
		Price struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
	} `json:"data"`
}

// CheapestDates finds the cheapest travel dates for a route within a
// departure date range (single date or "YYYY-MM-DD,YYYY-MM-DD").
func (s *DefaultAmadeusService) CheapestDates(ctx context.Context, origin, destination, departureRange string) *models.DateResults {
	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destination)
	params.Set("departureDate", departureRange)

	body, err := s.execute(ctx, "/v1/shopping/flight-dates", params)
	if err != nil {
		utils.GetLogger().Warn("Cheapest dates search failed", zap.Error(err))
		return &models.DateResults{Error: err.Error(), Dates: []models.DatePrice{}}
	}

	var env datesEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &models.DateResults{Error: err.Error(), Dates: []models.DatePrice{}}
	}

	dates := make([]models.DatePrice, 0, len(env.Data))
	for _, d := range env.Data {
		dates = append(dates, models.DatePrice{
			Date:     d.Date,
			Price:    d.Price.Total,
			Currency: d.Price.Currency,
		})
	}
	return &models.DateResults{Dates: dates, Count: len(dates)}
}

func orOne(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}
