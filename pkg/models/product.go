package models

import "time"

// Product is a read-only projection of a catalog record. The catalog is
// owned and mutated by the external store; this service only reads it.
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Reference      string    `json:"reference"`
	Category       string    `json:"category"`
	SubCategory    string    `json:"subcategory"`
	SubSubCategory string    `json:"subsubcategory,omitempty"`
	Description    string    `json:"description"`
	PriceHT        float64   `json:"price_ht"`
	PriceTTC       float64   `json:"price_ttc"`
	Stock          int       `json:"stock"`
	Available      bool      `json:"available"`
	Images         []string  `json:"images,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
