package handlers

import (
	"net/http"
	"testing"
)

func TestReportHandler_GetBreakdown(t *testing.T) {
	t.Run("defaults to debits in the current calendar month", func(t *testing.T) {
		r := setupRouter(newTestManager(newMockRemote()))

		rec := doRequest(r, "GET", "/reports/breakdown?currency=USD", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["start"] != "2024-06-01" || result["end"] != "2024-06-30" {
			t.Errorf("expected June 2024, got %v..%v", result["start"], result["end"])
		}
		if result["type"] != "debit" {
			t.Errorf("expected debit facet, got %v", result["type"])
		}
		cats := result["categories"].([]interface{})
		if len(cats) != 1 {
			t.Fatalf("expected 1 category, got %v", cats)
		}
		food := cats[0].(map[string]interface{})
		if food["name"] != "Food" {
			t.Errorf("expected Food, got %v", food["name"])
		}
		assertDecimal(t, food["value"], "50")
		assertDecimal(t, result["total"].(map[string]interface{})["value"], "50")
	})

	t.Run("selects a calendar month", func(t *testing.T) {
		r := setupRouter(newTestManager(newMockRemote()))

		rec := doRequest(r, "GET", "/reports/breakdown?year=2024&month=5&currency=USD", "")

		cats := parseJSON(t, rec)["categories"].([]interface{})
		if len(cats) != 1 || cats[0].(map[string]interface{})["name"] != "Transport" {
			t.Errorf("expected only Transport in May, got %v", cats)
		}
	})

	t.Run("orders by descending value across types", func(t *testing.T) {
		r := setupRouter(newTestManager(newMockRemote()))

		rec := doRequest(r, "GET", "/reports/breakdown?type=all&from=2024-06-01&to=2024-06-30&currency=USD", "")

		cats := parseJSON(t, rec)["categories"].([]interface{})
		if len(cats) != 2 {
			t.Fatalf("expected 2 categories, got %v", cats)
		}
		if cats[0].(map[string]interface{})["name"] != "Salary" {
			t.Errorf("expected Salary first, got %v", cats[0])
		}
	})

	t.Run("returns 400 on invalid month", func(t *testing.T) {
		r := setupRouter(newTestManager(newMockRemote()))

		rec := doRequest(r, "GET", "/reports/breakdown?month=13", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestReportHandler_GetTrend(t *testing.T) {
	t.Run("returns twelve months of debits", func(t *testing.T) {
		r := setupRouter(newTestManager(newMockRemote()))

		rec := doRequest(r, "GET", "/reports/trend?currency=USD", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["year"].(float64) != 2024 {
			t.Errorf("expected current year 2024, got %v", result["year"])
		}
		points := result["points"].([]interface{})
		if len(points) != 12 {
			t.Fatalf("expected 12 points, got %d", len(points))
		}
		jan := points[0].(map[string]interface{})
		may := points[4].(map[string]interface{})
		jun := points[5].(map[string]interface{})
		if jan["month"] != "Jan" || jun["month"] != "Jun" {
			t.Errorf("unexpected labels %v %v", jan["month"], jun["month"])
		}
		assertDecimal(t, jan["value"], "0")
		assertDecimal(t, may["value"], "10")
		assertDecimal(t, jun["value"], "50")
	})

	t.Run("other year is empty", func(t *testing.T) {
		r := setupRouter(newTestManager(newMockRemote()))

		rec := doRequest(r, "GET", "/reports/trend?year=2023&currency=USD", "")

		for _, p := range parseJSON(t, rec)["points"].([]interface{}) {
			assertDecimal(t, p.(map[string]interface{})["value"], "0")
		}
	})

	t.Run("returns 400 on invalid year", func(t *testing.T) {
		r := setupRouter(newTestManager(newMockRemote()))

		rec := doRequest(r, "GET", "/reports/trend?year=abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestReportHandler_GetSummary(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		spending string
		income   string
		net      string
	}{
		{name: "all time", query: "currency=USD", spending: "60", income: "100", net: "40"},
		{name: "billing month", query: "range=Month&currency=USD", spending: "50", income: "100", net: "50"},
		{name: "category", query: "category=Transport&currency=USD", spending: "10", income: "0", net: "-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(newTestManager(newMockRemote()))

			rec := doRequest(r, "GET", "/reports/summary?"+tt.query, "")

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			result := parseJSON(t, rec)
			assertDecimal(t, result["spending"].(map[string]interface{})["value"], tt.spending)
			assertDecimal(t, result["income"].(map[string]interface{})["value"], tt.income)
			assertDecimal(t, result["net"].(map[string]interface{})["value"], tt.net)
		})
	}
}
