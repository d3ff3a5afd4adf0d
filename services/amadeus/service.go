package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"miles/utils"

	"go.uber.org/zap"
)

// tokenSafetyMargin is subtracted from the server-reported TTL so a token
// is renewed before it can expire mid-request.
const tokenSafetyMargin = 300 * time.Second

// DefaultAmadeusService is the production implementation. One instance is
// shared by all callers; the access token it owns is guarded by a mutex.
// Two goroutines may both observe an expired token and both renew it; the
// last successful exchange wins, which is harmless.
type DefaultAmadeusService struct {
	BaseURL   string
	apiKey    string
	apiSecret string
	client    *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewAmadeusService builds a service against the given base URL using
// client-credentials authentication.
func NewAmadeusService(baseURL, apiKey, apiSecret string, timeout time.Duration) *DefaultAmadeusService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &DefaultAmadeusService{
		BaseURL:   strings.TrimSuffix(baseURL, "/"),
		apiKey:    apiKey,
		apiSecret: apiSecret,
		client:    &http.Client{Timeout: timeout},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// getToken returns the cached token while it is still inside its safety
// margin, otherwise performs a fresh client-credentials exchange.
func (s *DefaultAmadeusService) getToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.token != "" && time.Now().Before(s.tokenExpiry) {
		token := s.token
		s.mu.Unlock()
		return token, nil
	}
	s.mu.Unlock()

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {s.apiKey},
		"client_secret": {s.apiSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.BaseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", NewAuthError(err.Error())
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", NewAuthError(err.Error())
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", NewAuthError(fmt.Sprintf("token endpoint returned %d: %s", resp.StatusCode, string(body)))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", NewAuthError("invalid token response: " + err.Error())
	}
	if tr.AccessToken == "" {
		return "", NewAuthError("token endpoint returned no access_token")
	}
	if tr.ExpiresIn <= 0 {
		tr.ExpiresIn = 1799
	}

	expiry := time.Now().Add(time.Duration(tr.ExpiresIn)*time.Second - tokenSafetyMargin)

	s.mu.Lock()
	s.token = tr.AccessToken
	s.tokenExpiry = expiry
	s.mu.Unlock()

	utils.GetLogger().Info("Amadeus access token refreshed")
	return tr.AccessToken, nil
}

// invalidateToken discards the cached token, but only if it is still the
// one the failing request used. A concurrent renewal is left untouched.
func (s *DefaultAmadeusService) invalidateToken(used string) {
	s.mu.Lock()
	if s.token == used {
		s.token = ""
	}
	s.mu.Unlock()
}

// execute issues an authenticated GET against a data endpoint. A single 401
// invalidates the token and retries once with a fresh one; a second 401 or
// any other failure surfaces as an APIError.
func (s *DefaultAmadeusService) execute(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	token, err := s.getToken(ctx)
	if err != nil {
		return nil, err
	}

	body, status, err := s.doGet(ctx, endpoint, params, token)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		s.invalidateToken(token)
		token, err = s.getToken(ctx)
		if err != nil {
			return nil, err
		}
		body, status, err = s.doGet(ctx, endpoint, params, token)
		if err != nil {
			return nil, err
		}
	}
	if status < 200 || status >= 300 {
		utils.GetLogger().Warn("Amadeus API error",
			zap.String("endpoint", endpoint),
			zap.Int("status", status))
		return nil, &APIError{Status: status, Body: string(body)}
	}
	return body, nil
}

func (s *DefaultAmadeusService) doGet(ctx context.Context, endpoint string, params url.Values, token string) ([]byte, int, error) {
	u := s.BaseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, &APIError{Body: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, &APIError{Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &APIError{Body: err.Error()}
	}
	return body, resp.StatusCode, nil
}
