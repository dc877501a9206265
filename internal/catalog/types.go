package catalog

// Image is a product or collection image reference.
type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

// Price is a catalog price as the backend reports it: a decimal string plus
// a currency code. It is parsed into minor units only when an item enters
// the cart.
type Price struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// SelectedOption is one selectable attribute of a variant (e.g. size, color).
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variant is a purchasable variation of a product.
type Variant struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	Price             Price            `json:"price"`
	CompareAtPrice    *Price           `json:"compareAtPrice,omitempty"`
	AvailableForSale  bool             `json:"availableForSale"`
	QuantityAvailable int              `json:"quantityAvailable,omitempty"`
	SelectedOptions   []SelectedOption `json:"selectedOptions,omitempty"`
}

// Product is a catalog product with its images and priced variants.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Handle      string    `json:"handle"`
	Description string    `json:"description,omitempty"`
	Vendor      string    `json:"vendor,omitempty"`
	ProductType string    `json:"productType,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Images      []Image   `json:"images"`
	Variants    []Variant `json:"variants"`
}

// PageInfo carries cursor pagination state.
type PageInfo struct {
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor,omitempty"`
	EndCursor       string `json:"endCursor,omitempty"`
}

// ProductPage is one page of catalog products.
type ProductPage struct {
	Products   []Product `json:"products"`
	PageInfo   PageInfo  `json:"pageInfo"`
	TotalCount int       `json:"totalCount"`
}

// Collection groups products under a browsable handle.
type Collection struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	Description string `json:"description,omitempty"`
	Image       *Image `json:"image,omitempty"`
}
