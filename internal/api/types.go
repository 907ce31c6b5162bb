package api

import "time"

// Product mirrors a catalog entry as returned by /products.
// The backend owns this schema; fields are passed through unmodified.
type Product struct {
	ID              string   `json:"_id"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Image           string   `json:"image"`
	Rating          float64  `json:"rating"`
	NumberOfReviews int      `json:"numberOfReviews"`
	Stock           int      `json:"stock"`
	ProductIsNew    bool     `json:"productIsNew"`
	Reviews         []Review `json:"reviews"`
}

// Review is a customer review attached to a product.
type Review struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt"`
}

// ReviewInput is the request body for POST /products/reviews/{id}.
type ReviewInput struct {
	Comment string `json:"comment"`
	UserID  string `json:"userId"`
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
}

// ProductPage mirrors the paginated payload of GET /products. LastKey is an
// opaque cursor token; empty means the server reported no continuation.
type ProductPage struct {
	Products []Product `json:"product_item_arr"`
	LastKey  string    `json:"lastKey"`
}

// UserInfo is the full login response. A non-empty Token signals an
// authenticated session.
type UserInfo struct {
	ID         string `json:"_id"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Token      string `json:"token"`
	Active     bool   `json:"active"`
	FirstLogin bool   `json:"firstLogin"`
	IsAdmin    bool   `json:"isAdmin"`
	CreatedAt  string `json:"createdAt"`
}

// Order describes a past order as returned by GET /users/{id}.
type Order struct {
	ID            string      `json:"_id"`
	OrderItems    []OrderItem `json:"orderItems"`
	TotalPrice    float64     `json:"totalPrice"`
	ShippingPrice float64     `json:"shippingPrice"`
	PaymentMethod string      `json:"paymentMethod"`
	IsDelivered   bool        `json:"isDelivered"`
	CreatedAt     string      `json:"createdAt"`
}

// OrderItem is a line item within an order.
type OrderItem struct {
	Name  string  `json:"name"`
	Image string  `json:"image"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

// ParsedCreatedAt returns the order timestamp as time.Time when possible.
func (o Order) ParsedCreatedAt() time.Time {
	return parseTime(o.CreatedAt)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
