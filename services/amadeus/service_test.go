package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testProvider is a scriptable stand-in for the Amadeus API. It issues a
// fresh token on every exchange and lets tests choose the data response per
// call.
type testProvider struct {
	srv         *httptest.Server
	mu          sync.Mutex
	tokenCalls  int
	dataCalls   int
	dataHandler func(w http.ResponseWriter, r *http.Request, call int)
}

func newTestProvider(t *testing.T) *testProvider {
	t.Helper()
	p := &testProvider{}
	p.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/security/oauth2/token" {
			require.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, r.ParseForm())
			require.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
			p.mu.Lock()
			p.tokenCalls++
			n := p.tokenCalls
			p.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"access_token":"token-%d","expires_in":1799}`, n)
			return
		}
		p.mu.Lock()
		p.dataCalls++
		call := p.dataCalls
		p.mu.Unlock()
		p.dataHandler(w, r, call)
	}))
	t.Cleanup(p.srv.Close)
	return p
}

func (p *testProvider) tokens() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tokenCalls
}

func (p *testProvider) data() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dataCalls
}

func (p *testProvider) service() *DefaultAmadeusService {
	return NewAmadeusService(p.srv.URL, "key", "secret", 5*time.Second)
}

func jsonData(w http.ResponseWriter, payload string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, payload)
}

func TestTokenReusedAcrossCalls(t *testing.T) {
	p := newTestProvider(t)
	p.dataHandler = func(w http.ResponseWriter, r *http.Request, call int) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		jsonData(w, `{"data":[]}`)
	}
	svc := p.service()

	res := svc.SearchLocations(context.Background(), "paris")
	require.Empty(t, res.Error)
	res = svc.SearchLocations(context.Background(), "tokyo")
	require.Empty(t, res.Error)

	assert.Equal(t, 1, p.tokens(), "valid token must be reused")
	assert.Equal(t, 2, p.data())
}

func TestTokenRenewedAfterExpiry(t *testing.T) {
	p := newTestProvider(t)
	p.dataHandler = func(w http.ResponseWriter, r *http.Request, call int) {
		jsonData(w, `{"data":[]}`)
	}
	svc := p.service()

	svc.SearchLocations(context.Background(), "paris")
	require.Equal(t, 1, p.tokens())

	// Push the cached token past its deadline.
	svc.mu.Lock()
	svc.tokenExpiry = time.Now().Add(-time.Second)
	svc.mu.Unlock()

	svc.SearchLocations(context.Background(), "paris")
	assert.Equal(t, 2, p.tokens())
}

func TestExpiryHonorsSafetyMargin(t *testing.T) {
	p := newTestProvider(t)
	p.dataHandler = func(w http.ResponseWriter, r *http.Request, call int) {
		jsonData(w, `{"data":[]}`)
	}
	svc := p.service()

	before := time.Now()
	svc.SearchLocations(context.Background(), "paris")

	svc.mu.Lock()
	expiry := svc.tokenExpiry
	svc.mu.Unlock()

	// expires_in is 1799s; the margin must already be subtracted.
	upper := before.Add(1799*time.Second - tokenSafetyMargin + time.Second)
	assert.True(t, expiry.Before(upper), "expiry %v should fall before %v", expiry, upper)
	assert.True(t, expiry.After(before.Add(1000*time.Second)))
}

func TestUnauthorizedRetriesOnceWithFreshToken(t *testing.T) {
	p := newTestProvider(t)
	p.dataHandler = func(w http.ResponseWriter, r *http.Request, call int) {
		if call == 1 {
			assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "Bearer token-2", r.Header.Get("Authorization"))
		jsonData(w, `{"data":[{"iataCode":"PAR","name":"Paris","subType":"CITY"}]}`)
	}
	svc := p.service()

	res := svc.SearchLocations(context.Background(), "paris")
	require.Empty(t, res.Error)
	require.Len(t, res.Locations, 1)
	assert.Equal(t, "PAR", res.Locations[0].Code)
	assert.Equal(t, 2, p.tokens())
	assert.Equal(t, 2, p.data())
}

func TestSecondUnauthorizedBecomesErrorPayload(t *testing.T) {
	p := newTestProvider(t)
	p.dataHandler = func(w http.ResponseWriter, r *http.Request, call int) {
		w.WriteHeader(http.StatusUnauthorized)
	}
	svc := p.service()

	res := svc.SearchLocations(context.Background(), "paris")
	assert.NotEmpty(t, res.Error)
	assert.Empty(t, res.Locations)
	assert.Equal(t, 2, p.data(), "exactly one retry after a 401")
}

func TestServerErrorBecomesErrorPayload(t *testing.T) {
	p := newTestProvider(t)
	p.dataHandler = func(w http.ResponseWriter, r *http.Request, call int) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "boom")
	}
	svc := p.service()

	res := svc.SearchFlights(context.Background(), FlightQuery{
		Origin: "JFK", Destination: "LAX", DepartureDate: "2026-10-01",
	})
	require.NotEmpty(t, res.Error)
	assert.Contains(t, res.Error, "500")
	assert.Empty(t, res.Flights)
	assert.Equal(t, 1, p.data(), "non-401 failures are not retried")
}

func TestSearchFlightsMapsEnvelope(t *testing.T) {
	p := newTestProvider(t)
	p.dataHandler = func(w http.ResponseWriter, r *http.Request, call int) {
		assert.Equal(t, "/v2/shopping/flight-offers", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "JFK", q.Get("originLocationCode"))
		assert.Equal(t, "LAX", q.Get("destinationLocationCode"))
		assert.Equal(t, "2026-10-01", q.Get("departureDate"))
		assert.Equal(t, "2", q.Get("adults"))
		assert.Equal(t, "500", q.Get("maxPrice"))
		jsonData(w, `{"data":[{
			"id":"1",
			"price":{"total":"412.50","currency":"USD"},
			"itineraries":[{
				"duration":"PT6H05M",
				"segments":[{
					"departure":{"iataCode":"JFK","at":"2026-10-01T09:00:00"},
					"arrival":{"iataCode":"LAX","at":"2026-10-01T15:05:00"},
					"carrierCode":"UA",
					"duration":"PT6H05M"
				}]
			}]
		}]}`)
	}
	svc := p.service()

	res := svc.SearchFlights(context.Background(), FlightQuery{
		Origin: "JFK", Destination: "LAX", DepartureDate: "2026-10-01",
		Adults: 2, MaxPrice: 500,
	})
	require.Empty(t, res.Error)
	require.Len(t, res.Flights, 1)
	assert.Equal(t, 1, res.Count)

	offer := res.Flights[0]
	assert.Equal(t, "412.50", offer.Price)
	assert.Equal(t, "USD", offer.Currency)
	require.Len(t, offer.Itineraries, 1)
	require.Len(t, offer.Itineraries[0].Segments, 1)
	seg := offer.Itineraries[0].Segments[0]
	assert.Equal(t, "JFK", seg.Departure.Airport)
	assert.Equal(t, "UA", seg.Airline)
}

func TestSearchHotelsMapsFirstOffer(t *testing.T) {
	p := newTestProvider(t)
	p.dataHandler = func(w http.ResponseWriter, r *http.Request, call int) {
		assert.Equal(t, "/v2/shopping/hotel-offers", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "PAR", q.Get("cityCode"))
		assert.Equal(t, "50", q.Get("radius"))
		jsonData(w, `{"data":[{
			"hotel":{"hotelId":"H1","name":"Grand Hotel","rating":"4"},
			"offers":[
				{"price":{"total":"210.00","currency":"EUR"},"checkInDate":"2026-10-01","checkOutDate":"2026-10-04"},
				{"price":{"total":"310.00","currency":"EUR"},"checkInDate":"2026-10-01","checkOutDate":"2026-10-04"}
			]
		}]}`)
	}
	svc := p.service()

	res := svc.SearchHotels(context.Background(), HotelQuery{
		CityCode: "PAR", CheckIn: "2026-10-01", CheckOut: "2026-10-04",
	})
	require.Empty(t, res.Error)
	require.Len(t, res.Hotels, 1)
	h := res.Hotels[0]
	assert.Equal(t, "H1", h.HotelID)
	assert.Equal(t, "210.00", h.Price, "first offer wins")
	assert.Equal(t, "2026-10-04", h.CheckOut)
}

func TestSearchActivitiesMapsEnvelope(t *testing.T) {
	p := newTestProvider(t)
	p.dataHandler = func(w http.ResponseWriter, r *http.Request, call int) {
		assert.Equal(t, "/v1/shopping/activities", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "48.8566", q.Get("latitude"))
		assert.Equal(t, "20", q.Get("radius"))
		jsonData(w, `{"data":[{
			"id":"A1","name":"Louvre Tour","shortDescription":"Skip the line",
			"price":{"amount":"65.00","currencyCode":"EUR"},
			"rating":"4.6",
			"pictures":[{"url":"https://img.example/1.jpg"}]
		}]}`)
	}
	svc := p.service()

	res := svc.SearchActivities(context.Background(), ActivityQuery{
		Latitude: 48.8566, Longitude: 2.3522,
	})
	require.Empty(t, res.Error)
	require.Len(t, res.Activities, 1)
	a := res.Activities[0]
	assert.Equal(t, "Louvre Tour", a.Name)
	assert.Equal(t, "Skip the line", a.Description)
	assert.Equal(t, []string{"https://img.example/1.jpg"}, a.Pictures)
}

func TestFlightInspirationMapsEnvelope(t *testing.T) {
	p := newTestProvider(t)
	p.dataHandler = func(w http.ResponseWriter, r *http.Request, call int) {
		assert.Equal(t, "/v1/shopping/flight-destinations", r.URL.Path)
		assert.Equal(t, "NYC", r.URL.Query().Get("origin"))
		jsonData(w, `{"data":[{
			"destination":"MIA",
			"price":{"total":"120.00","currency":"USD"},
			"departureDate":"2026-10-01","returnDate":"2026-10-08"
		}]}`)
	}
	svc := p.service()

	res := svc.FlightInspiration(context.Background(), InspirationQuery{Origin: "NYC"})
	require.Empty(t, res.Error)
	require.Len(t, res.Destinations, 1)
	assert.Equal(t, "MIA", res.Destinations[0].Destination)
	assert.Equal(t, "2026-10-08", res.Destinations[0].ReturnDate)
}

func TestCheapestDatesMapsEnvelope(t *testing.T) {
	p := newTestProvider(t)
	p.dataHandler = func(w http.ResponseWriter, r *http.Request, call int) {
		assert.Equal(t, "/v1/shopping/flight-dates", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "JFK", q.Get("origin"))
		assert.Equal(t, "2026-10-01,2026-10-15", q.Get("departureDate"))
		jsonData(w, `{"data":[{"date":"2026-10-03","price":{"total":"199.00","currency":"USD"}}]}`)
	}
	svc := p.service()

	res := svc.CheapestDates(context.Background(), "JFK", "LAX", "2026-10-01,2026-10-15")
	require.Empty(t, res.Error)
	require.Len(t, res.Dates, 1)
	assert.Equal(t, "2026-10-03", res.Dates[0].Date)
}

func TestMalformedEnvelopeBecomesErrorPayload(t *testing.T) {
	p := newTestProvider(t)
	p.dataHandler = func(w http.ResponseWriter, r *http.Request, call int) {
		jsonData(w, `{"data": not-json`)
	}
	svc := p.service()

	res := svc.SearchLocations(context.Background(), "paris")
	assert.NotEmpty(t, res.Error)
	assert.Empty(t, res.Locations)
}

func TestConcurrentCallsTolerateTokenRaces(t *testing.T) {
	p := newTestProvider(t)
	p.dataHandler = func(w http.ResponseWriter, r *http.Request, call int) {
		jsonData(w, `{"data":[]}`)
	}
	svc := p.service()

	const callers = 10
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := svc.SearchLocations(context.Background(), "paris")
			assert.Empty(t, res.Error)
		}()
	}
	wg.Wait()

	assert.Equal(t, callers, p.data())
	// Concurrent cold starts may each exchange credentials; the last one
	// wins. What must hold is that no call failed and no extra exchange
	// happens once a token is cached.
	renewals := p.tokens()
	assert.GreaterOrEqual(t, renewals, 1)
	assert.LessOrEqual(t, renewals, callers)

	svc.SearchLocations(context.Background(), "tokyo")
	assert.Equal(t, renewals, p.tokens(), "warm token must be reused")
}

func TestTokenEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid_client"})
	}))
	defer srv.Close()

	svc := NewAmadeusService(srv.URL, "key", "secret", 5*time.Second)
	res := svc.SearchLocations(context.Background(), "paris")
	assert.NotEmpty(t, res.Error)
	assert.Contains(t, res.Error, "authentication")
}
