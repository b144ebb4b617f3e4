package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"quadro-backend/config"
	"quadro-backend/internal/board"
	"quadro-backend/internal/store"
)

// priceResponse models the upstream fuel price API's response.
type priceResponse struct {
	PricePerLiter float64 `json:"pricePerLiter"`
	Currency      string  `json:"currency"`
}

// Service polls an upstream API for the diesel price and records one quote
// per day. A failed poll leaves the previously recorded quote untouched.
type Service struct {
	cfg    *config.Config
	store  store.Store
	client *http.Client
}

// NewService creates and initializes a new quote poller.
func NewService(cfg *config.Config, store store.Store) *Service {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.Quotes.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.Quotes.HTTPProxy)
		if err != nil {
			log.Printf("Warning: Invalid proxy URL %q: %v. Quote poller will not use a proxy.", cfg.Quotes.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Service{
		cfg:   cfg,
		store: store,
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
	}
}

// Run starts the polling loop.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Quotes.Enabled {
		log.Println("Quote poller is disabled. Not starting.")
		return
	}
	log.Println("Starting quote poller...")

	s.PollOnce(ctx)

	timer := time.NewTimer(s.cfg.Quotes.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Quote poller shutting down.")
			return
		case <-timer.C:
			s.PollOnce(ctx)
			timer.Reset(s.cfg.Quotes.Interval)
		}
	}
}

// PollOnce fetches the current price and upserts today's quote.
func (s *Service) PollOnce(ctx context.Context) {
	price, err := s.fetchPrice(ctx)
	if err != nil {
		log.Printf("Quote poll failed, keeping previous quote: %v", err)
		return
	}

	dateKey := board.DateKey(time.Now())
	if err := s.store.SetFuelQuote(ctx, dateKey, price); err != nil {
		log.Printf("Error saving fuel quote for %s: %v", dateKey, err)
		return
	}
	log.Printf("Recorded fuel quote for %s: %.3f", dateKey, price)
}

func (s *Service) fetchPrice(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.Quotes.URL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range s.cfg.Quotes.Headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response body: %w", err)
	}

	var priceResp priceResponse
	if err := json.Unmarshal(body, &priceResp); err != nil {
		return 0, fmt.Errorf("failed to unmarshal price response: %w", err)
	}

	if priceResp.PricePerLiter <= 0 {
		return 0, fmt.Errorf("upstream returned non-positive price: %f", priceResp.PricePerLiter)
	}

	return priceResp.PricePerLiter, nil
}
