package gamma

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shlomota/PolymarketAnalyzer/internal/models"
)

func TestSearchMarkets(t *testing.T) {
	// Real Gamma responses wrap markets in events; outcomePrices is a
	// JSON string containing a JSON array, and volume may be a string.
	body := `{
		"events": [
			{
				"title": "Maduro out by January 31, 2026?",
				"volume": 5000000,
				"markets": [
					{
						"id": "m1",
						"conditionId": "0xcond1",
						"question": "Maduro out by January 31, 2026?",
						"slug": "maduro-out",
						"outcomePrices": "[\"1\", \"0\"]",
						"volume": "n/a"
					},
					{
						"id": "m2",
						"question": "missing condition id, dropped"
					}
				]
			},
			{
				"title": "US forces in Venezuela",
				"volume": "9000000",
				"markets": [
					{
						"id": "m3",
						"conditionId": "0xcond3",
						"question": "US forces in Venezuela by January 31?",
						"slug": "us-forces",
						"outcomePrices": "[\"0.75\", \"0.25\"]"
					}
				]
			}
		]
	}`

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/public-search" {
			t.Errorf("Expected path /public-search, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "venezuela" {
			t.Errorf("Expected q=venezuela, got %s", r.URL.Query().Get("q"))
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(body)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer mockServer.Close()

	client, err := NewClient(mockServer.URL, 10*time.Second)
	if err != nil {
		t.Fatal(err)
	}

	markets, err := client.SearchMarkets(context.Background(), "venezuela", 20)
	if err != nil {
		t.Fatalf("SearchMarkets failed: %v", err)
	}

	if len(markets) != 2 {
		t.Fatalf("Expected 2 valid markets, got %d", len(markets))
	}

	// Sorted by volume descending: the second event's market inherits
	// the 9M event volume; the first market's own unparseable volume
	// string falls back to the 5M event volume.
	if markets[0].ConditionID != "0xcond3" {
		t.Errorf("Expected 0xcond3 first by volume, got %s", markets[0].ConditionID)
	}
	if float64(markets[0].Volume) != 9000000 {
		t.Errorf("Expected inherited event volume 9000000, got %f", float64(markets[0].Volume))
	}
	if float64(markets[1].Volume) != 5000000 {
		t.Errorf("Expected fallback event volume 5000000, got %f", float64(markets[1].Volume))
	}

	if len(markets[1].OutcomePrices) != 2 || markets[1].OutcomePrices[0] != "1" {
		t.Errorf("Unexpected outcome prices: %v", markets[1].OutcomePrices)
	}
}

func TestSearchMarketsHTTPError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer mockServer.Close()

	client, err := NewClient(mockServer.URL, 10*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.SearchMarkets(context.Background(), "anything", 10); err == nil {
		t.Fatal("Expected error on non-200 status, got nil")
	}
}

func TestDetectResolution(t *testing.T) {
	tests := []struct {
		name     string
		prices   stringList
		want     models.Outcome
		resolved bool
	}{
		{"yes won", stringList{"1", "0"}, models.OutcomeYes, true},
		{"no won", stringList{"0", "1"}, models.OutcomeNo, true},
		{"unresolved", stringList{"0.75", "0.25"}, "", false},
		{"missing prices", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, resolved := DetectResolution(Market{OutcomePrices: tt.prices})
			if resolved != tt.resolved {
				t.Errorf("resolved = %v, expected %v", resolved, tt.resolved)
			}
			if outcome != tt.want {
				t.Errorf("outcome = %q, expected %q", outcome, tt.want)
			}
		})
	}
}

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"string-encoded array", `"[\"Yes\", \"No\"]"`, 2},
		{"plain array", `["Yes", "No"]`, 2},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s stringList
			if err := s.UnmarshalJSON([]byte(tt.input)); err != nil {
				t.Fatalf("UnmarshalJSON failed: %v", err)
			}
			if len(s) != tt.want {
				t.Errorf("len = %d, expected %d", len(s), tt.want)
			}
		})
	}
}
