package adsb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func strPtr(s string) *string    { return &s }
func floatPtr(f float64) *float64 { return &f }

// TestGetAircraft tests fetching aircraft within a radius.
func TestGetAircraft(t *testing.T) {
	t.Run("Successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			expectedPath := "/point/52.0000/4.0000/100"
			if r.URL.Path != expectedPath {
				t.Errorf("Expected path %s, got %s", expectedPath, r.URL.Path)
			}

			response := feedResponse{
				Aircraft: []feedAircraft{
					{
						Hex:     "484aa3",
						Flight:  strPtr("KL123"),
						Lat:     floatPtr(52.1),
						Lon:     floatPtr(4.1),
						AltBaro: 3000.0,
						Gs:      floatPtr(240.0),
						Track:   floatPtr(90.0),
					},
				},
				Total: 1,
			}
			json.NewEncoder(w).Encode(response)
		}))
		defer server.Close()

		client := NewClient(server.URL, 100)
		aircraft, err := client.GetAircraft(context.Background(), 52.0, 4.0, 100)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(aircraft) != 1 {
			t.Fatalf("Expected 1 aircraft, got %d", len(aircraft))
		}

		ac := aircraft[0]
		if ac.Hex != "484aa3" {
			t.Errorf("Expected hex 484aa3, got %s", ac.Hex)
		}
		if ac.Flight == nil || *ac.Flight != "KL123" {
			t.Errorf("Expected callsign KL123, got %v", ac.Flight)
		}
		if ac.Altitude == nil || *ac.Altitude != 3000.0 {
			t.Errorf("Expected altitude 3000, got %v", ac.Altitude)
		}
	})

	t.Run("Caps radius at 250 NM", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/point/52.0000/4.0000/250" {
				t.Errorf("Expected radius capped at 250, got path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(feedResponse{})
		}))
		defer server.Close()

		client := NewClient(server.URL, 100)
		if _, err := client.GetAircraft(context.Background(), 52.0, 4.0, 500); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
	})

	t.Run("Rate limit response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "5")
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewClient(server.URL, 100)
		_, err := client.GetAircraft(context.Background(), 52.0, 4.0, 100)

		var rle *RateLimitError
		if !errors.As(err, &rle) {
			t.Fatalf("Expected RateLimitError, got %v", err)
		}
		if rle.RetryAfter != 5*time.Second {
			t.Errorf("Expected retry after 5s, got %v", rle.RetryAfter)
		}
	})

	t.Run("Ground altitude string", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"ac": []map[string]any{
					{"hex": "abc123", "alt_baro": "ground"},
				},
			})
		}))
		defer server.Close()

		client := NewClient(server.URL, 100)
		aircraft, err := client.GetAircraft(context.Background(), 52.0, 4.0, 100)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(aircraft) != 1 {
			t.Fatalf("Expected 1 aircraft, got %d", len(aircraft))
		}
		if aircraft[0].Altitude == nil || *aircraft[0].Altitude != 0 {
			t.Errorf("Expected ground to map to 0 ft, got %v", aircraft[0].Altitude)
		}
	})
}

// TestEntityState tests packaging a fetched list as host entity state.
func TestEntityState(t *testing.T) {
	aircraft := []Aircraft{
		{
			Hex:      "484AA3",
			Flight:   strPtr(" KL123 "),
			Latitude: floatPtr(52.1),
			Altitude: floatPtr(3000),
		},
		{Hex: "a12345"},
	}

	state := EntityState("sensor.planes", "aircraft", aircraft)

	if state.EntityID != "sensor.planes" {
		t.Errorf("Expected entity sensor.planes, got %s", state.EntityID)
	}
	if state.State != "2" {
		t.Errorf("Expected state 2, got %s", state.State)
	}

	list, ok := state.Attributes["aircraft"].([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("Expected 2 aircraft bags, got %v", state.Attributes["aircraft"])
	}

	first := list[0].(map[string]any)
	if first["hex"] != "484aa3" {
		t.Errorf("Expected lower-cased hex, got %v", first["hex"])
	}
	if first["flight"] != "KL123" {
		t.Errorf("Expected trimmed callsign, got %v", first["flight"])
	}
	if _, present := first["speed"]; present {
		t.Error("Expected absent speed to be omitted from the bag")
	}

	second := list[1].(map[string]any)
	if _, present := second["flight"]; present {
		t.Error("Expected absent flight to be omitted from the bag")
	}
}

// TestRetryWithBackoff tests the backoff sequence and context cancellation.
func TestRetryWithBackoff(t *testing.T) {
	t.Run("Succeeds after transient failures", func(t *testing.T) {
		cfg := RetryConfig{MaxRetries: 3, InitialDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond, Multiplier: 2}

		calls := 0
		err := RetryWithBackoff(context.Background(), cfg, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Expected success, got %v", err)
		}
		if calls != 3 {
			t.Errorf("Expected 3 calls, got %d", calls)
		}
	})

	t.Run("Gives up after max retries", func(t *testing.T) {
		cfg := RetryConfig{MaxRetries: 2, InitialDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond, Multiplier: 2}

		calls := 0
		err := RetryWithBackoff(context.Background(), cfg, func() error {
			calls++
			return errors.New("permanent")
		})
		if err == nil {
			t.Fatal("Expected error after exhausting retries")
		}
		if calls != 3 {
			t.Errorf("Expected 3 calls (1 + 2 retries), got %d", calls)
		}
	})

	t.Run("Context cancellation stops retries", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		cfg := RetryConfig{MaxRetries: 5, InitialDelay: time.Hour, MaxDelay: time.Hour, Multiplier: 2}
		err := RetryWithBackoff(ctx, cfg, func() error {
			return errors.New("fail")
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	})
}
