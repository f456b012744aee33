package upstream

import (
	"backoffice/internal/query"
	"backoffice/internal/table"
)

// Portion is one price variant of a product.
type Portion struct {
	Type  string  `json:"type"`
	Price float64 `json:"price"`
}

// Product mirrors the active-products endpoint's record shape. Description,
// category, image, discount, and portions are all optional upstream.
type Product struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	Discount    float64   `json:"discount,omitempty"`
	Portions    []Portion `json:"portions,omitempty"`
}

// Customer is the shape of the customers endpoint.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// OrderDetail relays a single order with its items. Orders are opaque
// records; the back office renders them through column definitions instead of
// assuming structure.
type OrderDetail struct {
	Order table.Row   `json:"order"`
	Items []table.Row `json:"items"`
}

type ordersResponse struct {
	Data       []table.Row `json:"data"`
	Pagination query.Meta  `json:"pagination"`
}

type createOrderResponse struct {
	Order struct {
		ID string `json:"_id"`
	} `json:"order"`
}
