package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Sort keys accepted by the storefront catalog API.
var validSortKeys = map[string]bool{
	"CREATED_AT":   true,
	"UPDATED_AT":   true,
	"TITLE":        true,
	"PRICE":        true,
	"BEST_SELLING": true,
	"RELEVANCE":    true,
}

// ValidSortKey reports whether the catalog API accepts the sort key.
func ValidSortKey(key string) bool {
	return validSortKeys[key]
}

// UpstreamError reports a failed catalog backend call.
type UpstreamError struct {
	Status int
	Detail string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("catalog backend error (status %d): %s", e.Status, e.Detail)
}

// ProductsQuery filters one page of catalog products.
type ProductsQuery struct {
	First            int
	After            string
	CollectionHandle string
	SearchQuery      string
	SortKey          string
	Reverse          bool
	MinPrice         *float64
	MaxPrice         *float64
}

// Client queries a hosted storefront GraphQL catalog API.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// New creates a client for the given store domain and API version.
func New(domain, token, apiVersion string) *Client {
	return NewWithEndpoint(
		fmt.Sprintf("https://%s/api/%s/graphql.json", domain, apiVersion),
		token,
	)
}

// NewWithEndpoint creates a client against an explicit GraphQL endpoint.
func NewWithEndpoint(endpoint, token string) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

const productsQuery = `
query getProducts($first: Int!, $after: String, $query: String, $sortKey: ProductSortKeys!, $reverse: Boolean!) {
    products(first: $first, after: $after, query: $query, sortKey: $sortKey, reverse: $reverse) {
        edges {
            node {
                id
                title
                handle
                description
                vendor
                productType
                tags
                images(first: 5) {
                    edges {
                        node {
                            url
                            altText
                        }
                    }
                }
                variants(first: 10) {
                    edges {
                        node {
                            id
                            title
                            price {
                                amount
                                currencyCode
                            }
                            compareAtPrice {
                                amount
                                currencyCode
                            }
                            availableForSale
                            quantityAvailable
                            selectedOptions {
                                name
                                value
                            }
                        }
                    }
                }
            }
        }
        pageInfo {
            hasNextPage
            hasPreviousPage
            startCursor
            endCursor
        }
    }
}`

const collectionsQuery = `
query getCollections($first: Int!) {
    collections(first: $first) {
        edges {
            node {
                id
                title
                handle
                description
                image {
                    url
                    altText
                }
            }
        }
    }
}`

// Products fetches one page of products matching the query filters.
func (c *Client) Products(ctx context.Context, q ProductsQuery) (*ProductPage, error) {
	if q.First <= 0 {
		q.First = 20
	}
	if q.First > 250 {
		q.First = 250
	}
	if q.SortKey == "" {
		q.SortKey = "CREATED_AT"
	}
	if !validSortKeys[q.SortKey] {
		return nil, fmt.Errorf("invalid sort key: %s", q.SortKey)
	}

	variables := map[string]any{
		"first":   q.First,
		"sortKey": q.SortKey,
		"reverse": q.Reverse,
	}
	if q.After != "" {
		variables["after"] = q.After
	}
	if filter := buildFilter(q); filter != "" {
		variables["query"] = filter
	}

	var resp struct {
		Products struct {
			Edges []struct {
				Node productNode `json:"node"`
			} `json:"edges"`
			PageInfo PageInfo `json:"pageInfo"`
		} `json:"products"`
	}

	if err := c.post(ctx, productsQuery, variables, &resp); err != nil {
		return nil, err
	}

	page := &ProductPage{
		Products: make([]Product, 0, len(resp.Products.Edges)),
		PageInfo: resp.Products.PageInfo,
	}
	for _, edge := range resp.Products.Edges {
		page.Products = append(page.Products, edge.Node.flatten())
	}
	page.TotalCount = len(page.Products)

	return page, nil
}

// Collections fetches up to first collections.
func (c *Client) Collections(ctx context.Context, first int) ([]Collection, error) {
	if first <= 0 {
		first = 6
	}

	var resp struct {
		Collections struct {
			Edges []struct {
				Node Collection `json:"node"`
			} `json:"edges"`
		} `json:"collections"`
	}

	if err := c.post(ctx, collectionsQuery, map[string]any{"first": first}, &resp); err != nil {
		return nil, err
	}

	collections := make([]Collection, 0, len(resp.Collections.Edges))
	for _, edge := range resp.Collections.Edges {
		collections = append(collections, edge.Node)
	}

	return collections, nil
}

// buildFilter assembles the catalog query string from the active filters.
func buildFilter(q ProductsQuery) string {
	var filters []string

	if q.CollectionHandle != "" {
		filters = append(filters, fmt.Sprintf("collection:%q", q.CollectionHandle))
	}
	if q.SearchQuery != "" {
		filters = append(filters, fmt.Sprintf("title:*%s* OR tag:*%s*", q.SearchQuery, q.SearchQuery))
	}
	if q.MinPrice != nil {
		filters = append(filters, fmt.Sprintf("variants.price:>=%g", *q.MinPrice))
	}
	if q.MaxPrice != nil {
		filters = append(filters, fmt.Sprintf("variants.price:<=%g", *q.MaxPrice))
	}

	return strings.Join(filters, " AND ")
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

func (c *Client) post(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode catalog query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create catalog request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach catalog backend: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read catalog response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &UpstreamError{Status: resp.StatusCode, Detail: strings.TrimSpace(string(raw))}
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			messages[i] = e.Message
		}
		return &UpstreamError{Status: resp.StatusCode, Detail: strings.Join(messages, "; ")}
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode catalog data: %w", err)
	}

	return nil
}

// productNode mirrors the GraphQL edge/node nesting before flattening.
type productNode struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Handle      string   `json:"handle"`
	Description string   `json:"description"`
	Vendor      string   `json:"vendor"`
	ProductType string   `json:"productType"`
	Tags        []string `json:"tags"`
	Images      struct {
		Edges []struct {
			Node Image `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node Variant `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

func (n productNode) flatten() Product {
	p := Product{
		ID:          n.ID,
		Title:       n.Title,
		Handle:      n.Handle,
		Description: n.Description,
		Vendor:      n.Vendor,
		ProductType: n.ProductType,
		Tags:        n.Tags,
		Images:      make([]Image, 0, len(n.Images.Edges)),
		Variants:    make([]Variant, 0, len(n.Variants.Edges)),
	}
	for _, e := range n.Images.Edges {
		p.Images = append(p.Images, e.Node)
	}
	for _, e := range n.Variants.Edges {
		p.Variants = append(p.Variants, e.Node)
	}
	return p
}
