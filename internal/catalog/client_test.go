package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

const productsPayload = `{
	"data": {
		"products": {
			"edges": [
				{
					"node": {
						"id": "gid://shopify/Product/1",
						"title": "Bandhani Saree",
						"handle": "bandhani-saree",
						"description": "Hand-tied bandhani",
						"vendor": "Undhyu",
						"productType": "Saree",
						"tags": ["bandhani", "silk"],
						"images": {
							"edges": [
								{"node": {"url": "https://cdn.example.com/1.jpg", "altText": "front"}}
							]
						},
						"variants": {
							"edges": [
								{
									"node": {
										"id": "gid://shopify/ProductVariant/11",
										"title": "Red / M",
										"price": {"amount": "4999.0", "currencyCode": "INR"},
										"availableForSale": true,
										"quantityAvailable": 3,
										"selectedOptions": [{"name": "Color", "value": "Red"}]
									}
								}
							]
						}
					}
				}
			],
			"pageInfo": {
				"hasNextPage": true,
				"hasPreviousPage": false,
				"startCursor": "c1",
				"endCursor": "c1"
			}
		}
	}
}`

func TestProducts_FlattensEdges(t *testing.T) {
	var captured struct {
		Variables map[string]any `json:"variables"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Shopify-Storefront-Access-Token"); got != "tok" {
			t.Errorf("access token header = %q, want tok", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(productsPayload))
	}))
	defer server.Close()

	c := NewWithEndpoint(server.URL, "tok")
	page, err := c.Products(context.Background(), ProductsQuery{})
	if err != nil {
		t.Fatalf("Products() unexpected error: %v", err)
	}

	if captured.Variables["first"] != float64(20) {
		t.Errorf("first = %v, want 20", captured.Variables["first"])
	}
	if captured.Variables["sortKey"] != "CREATED_AT" {
		t.Errorf("sortKey = %v, want CREATED_AT", captured.Variables["sortKey"])
	}

	if len(page.Products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(page.Products))
	}
	p := page.Products[0]
	if p.Title != "Bandhani Saree" {
		t.Errorf("title = %s, want Bandhani Saree", p.Title)
	}
	if len(p.Images) != 1 || p.Images[0].URL != "https://cdn.example.com/1.jpg" {
		t.Errorf("images not flattened: %+v", p.Images)
	}
	if len(p.Variants) != 1 || p.Variants[0].Price.Amount != "4999.0" {
		t.Errorf("variants not flattened: %+v", p.Variants)
	}
	if !page.PageInfo.HasNextPage {
		t.Error("expected hasNextPage true")
	}
	if page.TotalCount != 1 {
		t.Errorf("total count = %d, want 1", page.TotalCount)
	}
}

func TestProducts_ClampsPageSize(t *testing.T) {
	var captured struct {
		Variables map[string]any `json:"variables"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(`{"data": {"products": {"edges": [], "pageInfo": {}}}}`))
	}))
	defer server.Close()

	c := NewWithEndpoint(server.URL, "tok")
	if _, err := c.Products(context.Background(), ProductsQuery{First: 1000}); err != nil {
		t.Fatalf("Products() unexpected error: %v", err)
	}

	if captured.Variables["first"] != float64(250) {
		t.Errorf("first = %v, want 250", captured.Variables["first"])
	}
}

func TestProducts_InvalidSortKey(t *testing.T) {
	c := NewWithEndpoint("http://unused.invalid", "tok")
	if _, err := c.Products(context.Background(), ProductsQuery{SortKey: "CHEAPEST"}); err == nil {
		t.Error("expected error for invalid sort key")
	}
}

func TestProducts_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{
			name:       "http error",
			status:     http.StatusTooManyRequests,
			body:       "throttled",
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "graphql errors",
			status:     http.StatusOK,
			body:       `{"data": null, "errors": [{"message": "field does not exist"}]}`,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewWithEndpoint(server.URL, "tok")
			_, err := c.Products(context.Background(), ProductsQuery{})

			upstream, ok := err.(*UpstreamError)
			if !ok {
				t.Fatalf("Products() error = %v, want UpstreamError", err)
			}
			if upstream.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", upstream.Status, tt.wantStatus)
			}
		})
	}
}

func TestCollections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"data": {
				"collections": {
					"edges": [
						{"node": {"id": "gid://shopify/Collection/1", "title": "Sarees", "handle": "sarees"}},
						{"node": {"id": "gid://shopify/Collection/2", "title": "Dupattas", "handle": "dupattas"}}
					]
				}
			}
		}`))
	}))
	defer server.Close()

	c := NewWithEndpoint(server.URL, "tok")
	collections, err := c.Collections(context.Background(), 6)
	if err != nil {
		t.Fatalf("Collections() unexpected error: %v", err)
	}

	if len(collections) != 2 {
		t.Fatalf("expected 2 collections, got %d", len(collections))
	}
	if collections[0].Handle != "sarees" {
		t.Errorf("handle = %s, want sarees", collections[0].Handle)
	}
}

func TestBuildFilter(t *testing.T) {
	min := 500.0
	max := 2000.0

	tests := []struct {
		name  string
		query ProductsQuery
		want  string
	}{
		{
			name:  "no filters",
			query: ProductsQuery{},
			want:  "",
		},
		{
			name:  "collection only",
			query: ProductsQuery{CollectionHandle: "sarees"},
			want:  `collection:"sarees"`,
		},
		{
			name:  "search matches title or tag",
			query: ProductsQuery{SearchQuery: "silk"},
			want:  "title:*silk* OR tag:*silk*",
		},
		{
			name:  "price range",
			query: ProductsQuery{MinPrice: &min, MaxPrice: &max},
			want:  "variants.price:>=500 AND variants.price:<=2000",
		},
		{
			name:  "combined",
			query: ProductsQuery{CollectionHandle: "sarees", SearchQuery: "silk", MinPrice: &min},
			want:  `collection:"sarees" AND title:*silk* OR tag:*silk* AND variants.price:>=500`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildFilter(tt.query); got != tt.want {
				t.Errorf("buildFilter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidSortKey(t *testing.T) {
	for _, key := range []string{"CREATED_AT", "UPDATED_AT", "TITLE", "PRICE", "BEST_SELLING", "RELEVANCE"} {
		if !ValidSortKey(key) {
			t.Errorf("ValidSortKey(%s) = false, want true", key)
		}
	}
	if ValidSortKey("cheapest") {
		t.Error("ValidSortKey(cheapest) = true, want false")
	}
}
