package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"quadro-backend/config"
	"quadro-backend/internal/board"
	"quadro-backend/internal/store"
)

// mockStore only implements the methods the poller touches.
type mockStore struct {
	store.Store
	SetFuelQuoteFunc func(ctx context.Context, dateKey string, pricePerLiter float64) error
}

func (m *mockStore) SetFuelQuote(ctx context.Context, dateKey string, pricePerLiter float64) error {
	return m.SetFuelQuoteFunc(ctx, dateKey, pricePerLiter)
}

func TestPollOnce_RecordsTodaysQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pricePerLiter": 6.12, "currency": "BRL"}`))
	}))
	defer server.Close()

	var gotDate string
	var gotPrice float64
	ms := &mockStore{
		SetFuelQuoteFunc: func(ctx context.Context, dateKey string, pricePerLiter float64) error {
			gotDate = dateKey
			gotPrice = pricePerLiter
			return nil
		},
	}

	cfg := &config.Config{
		Quotes: config.QuotesConfig{URL: server.URL},
	}
	svc := NewService(cfg, ms)
	svc.PollOnce(context.Background())

	assert.Equal(t, board.DateKey(time.Now()), gotDate)
	assert.Equal(t, 6.12, gotPrice)
}

func TestPollOnce_FetchFailureKeepsPreviousQuote(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "upstream error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
		},
		{
			name: "non-positive price",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"pricePerLiter": 0}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			called := false
			ms := &mockStore{
				SetFuelQuoteFunc: func(ctx context.Context, dateKey string, pricePerLiter float64) error {
					called = true
					return nil
				},
			}

			cfg := &config.Config{
				Quotes: config.QuotesConfig{URL: server.URL},
			}
			svc := NewService(cfg, ms)
			svc.PollOnce(context.Background())

			assert.False(t, called, "a failed poll must not overwrite the stored quote")
		})
	}
}

func TestPollOnce_SendsConfiguredHeaders(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"pricePerLiter": 5.9}`))
	}))
	defer server.Close()

	ms := &mockStore{
		SetFuelQuoteFunc: func(ctx context.Context, dateKey string, pricePerLiter float64) error {
			return nil
		},
	}

	cfg := &config.Config{
		Quotes: config.QuotesConfig{
			URL:     server.URL,
			Headers: map[string]string{"Authorization": "Bearer token"},
		},
	}
	svc := NewService(cfg, ms)
	svc.PollOnce(context.Background())

	assert.Equal(t, "Bearer token", gotAuth)
}
