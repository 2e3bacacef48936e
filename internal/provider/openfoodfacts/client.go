// Package openfoodfacts searches the public Open Food Facts product database.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL  = "https://world.openfoodfacts.org"
	defaultPageSize = 10
	userAgent       = "healthy-cli/1.0 (+https://github.com/saadjs/healthy-cli)"
	kJPerKcal       = 4.184
)

// FoodLookup holds per-100g values of one product.
type FoodLookup struct {
	Description string
	Brand       string
	Code        string
	Kcal        float64
	ProteinG    float64
	CarbsG      float64
	FatG        float64
	FiberG      float64
	// FromKJ is set when kcal was derived from the kJ energy field.
	FromKJ bool
}

// HasEnergy reports whether the product carries usable energy data.
func (f FoodLookup) HasEnergy() bool {
	return f.Kcal > 0
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

func (c *Client) rest() *resty.Client {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	var rc *resty.Client
	if c.HTTPClient != nil {
		rc = resty.NewWithClient(c.HTTPClient)
	} else {
		rc = resty.New()
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return rc.
		SetBaseURL(base).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
}

// SearchFoods runs a simple name search and returns the products in the
// order the server ranked them, together with the raw body.
func (c *Client) SearchFoods(ctx context.Context, query string, limit int) ([]FoodLookup, []byte, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil, fmt.Errorf("openfoodfacts search query is required")
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	resp, err := c.rest().R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"search_terms":  query,
			"search_simple": "1",
			"action":        "process",
			"json":          "1",
			"page_size":     strconv.Itoa(limit),
		}).
		Get("/cgi/search.pl")
	if err != nil {
		return nil, nil, fmt.Errorf("execute openfoodfacts search request: %w", err)
	}
	body := resp.Body()
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, body, fmt.Errorf("openfoodfacts search request failed with status %d", resp.StatusCode())
	}
	var parsed offSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, body, fmt.Errorf("decode openfoodfacts search response: %w", err)
	}
	out := make([]FoodLookup, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		out = append(out, lookupFromProduct(p))
	}
	return out, body, nil
}

// FirstWithEnergy picks the first product carrying usable energy data.
func FirstWithEnergy(items []FoodLookup) (FoodLookup, bool) {
	for _, it := range items {
		if it.HasEnergy() {
			return it, true
		}
	}
	return FoodLookup{}, false
}

func lookupFromProduct(p offProduct) FoodLookup {
	out := FoodLookup{
		Description: strings.TrimSpace(p.ProductName),
		Brand:       strings.TrimSpace(p.Brands),
		Code:        strings.TrimSpace(p.Code),
		ProteinG:    nutrientValue(p.Nutriments, "proteins"),
		CarbsG:      nutrientValue(p.Nutriments, "carbohydrates"),
		FatG:        nutrientValue(p.Nutriments, "fat"),
		FiberG:      nutrientValue(p.Nutriments, "fiber"),
	}
	if kcal := nutrientValue(p.Nutriments, "energy-kcal"); kcal > 0 {
		out.Kcal = kcal
	} else if kj := nutrientValue(p.Nutriments, "energy"); kj > 0 {
		out.Kcal = kj / kJPerKcal
		out.FromKJ = true
	}
	return out
}

func nutrientValue(n map[string]any, base string) float64 {
	v, ok := parseFloatAny(n[base+"_100g"])
	if !ok || v < 0 {
		return 0
	}
	return v
}

func parseFloatAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

type offProduct struct {
	Code        string         `json:"code"`
	ProductName string         `json:"product_name"`
	Brands      string         `json:"brands"`
	Nutriments  map[string]any `json:"nutriments"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}
