package openfoodfacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchFoodsParsesProductsAndQuery(t *testing.T) {
	t.Parallel()

	var gotPath, gotTerms, gotPageSize, gotJSON string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTerms = r.URL.Query().Get("search_terms")
		gotPageSize = r.URL.Query().Get("page_size")
		gotJSON = r.URL.Query().Get("json")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "products": [
    {"product_name": "No Energy", "nutriments": {"proteins_100g": 3}},
    {"product_name": "Greek Yogurt", "brands": "Brand Co", "code": "123",
     "nutriments": {"energy-kcal_100g": 97, "proteins_100g": 9, "carbohydrates_100g": "3.6", "fat_100g": 5}}
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	items, _, err := c.SearchFoods(context.Background(), "greek yogurt", 0)
	if err != nil {
		t.Fatalf("search foods: %v", err)
	}
	if gotPath != "/cgi/search.pl" || gotTerms != "greek yogurt" || gotPageSize != "10" || gotJSON != "1" {
		t.Fatalf("unexpected request path=%q terms=%q page_size=%q json=%q", gotPath, gotTerms, gotPageSize, gotJSON)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	first, ok := FirstWithEnergy(items)
	if !ok {
		t.Fatalf("expected a product with energy")
	}
	if first.Description != "Greek Yogurt" || first.Kcal != 97 || first.CarbsG != 3.6 || first.FromKJ {
		t.Fatalf("unexpected parsed item: %+v", first)
	}
}

func TestSearchFoodsConvertsKilojoules(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products":[{"product_name":"Oat Bar","nutriments":{"energy_100g":1673.6,"fat_100g":12}}]}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	items, _, err := c.SearchFoods(context.Background(), "oat bar", 10)
	if err != nil {
		t.Fatalf("search foods: %v", err)
	}
	item, ok := FirstWithEnergy(items)
	if !ok {
		t.Fatalf("expected kJ-only product to be usable")
	}
	if !item.FromKJ || item.Kcal < 399.99 || item.Kcal > 400.01 {
		t.Fatalf("expected ~400 kcal from kJ, got %+v", item)
	}
}

func TestSearchFoodsNon200IsError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, _, err := c.SearchFoods(context.Background(), "rice", 10); err == nil {
		t.Fatalf("expected error for non-200 response")
	}
}

func TestSearchFoodsBadJSONIsError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, _, err := c.SearchFoods(context.Background(), "rice", 10); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestFirstWithEnergyNoneUsable(t *testing.T) {
	t.Parallel()
	if _, ok := FirstWithEnergy([]FoodLookup{{Description: "x"}}); ok {
		t.Fatalf("expected no usable product")
	}
}
