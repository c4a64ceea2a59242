package models

import "time"

// Review is a customer review attached to a product. Reviews are
// immutable once created.
type Review struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is a catalog entry. Rating is the mean of all review ratings
// whenever Reviews is non-empty.
type Product struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Image        string   `json:"image"`
	Description  string   `json:"description"`
	Brand        string   `json:"brand"`
	Category     string   `json:"category"`
	Price        float64  `json:"price"`
	CountInStock int      `json:"count_in_stock"`
	Rating       float64  `json:"rating"`
	NumReviews   int      `json:"num_reviews"`
	Reviews      []Review `json:"reviews,omitempty"`
}
