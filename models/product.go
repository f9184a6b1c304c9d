package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `json:"_id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Category    string    `json:"category" bson:"category"`
	Sizes       []string  `json:"sizes" bson:"sizes"`
	Colors      []string  `json:"colors" bson:"colors"`
	Images      []string  `json:"images" bson:"images"`
	Price       float64   `json:"price" bson:"price"`
	TotalQty    int       `json:"total_qty" bson:"total_qty"`
	TotalSold   int       `json:"total_sold" bson:"total_sold"`
	UserID      uuid.UUID `json:"user" bson:"user"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// QtyLeft is how much stock remains after sales.
func (p *Product) QtyLeft() int {
	return p.TotalQty - p.TotalSold
}
