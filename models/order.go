package models

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

var validStatuses = map[string]bool{
	StatusPending:    true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusDelivered:  true,
	StatusCancelled:  true,
}

// IsValidStatus reports whether s is a recognised order status.
func IsValidStatus(s string) bool {
	return validStatuses[s]
}

// OrderItem snapshots the product name and unit price at checkout time.
type OrderItem struct {
	ProductID   uuid.UUID `json:"product_id" bson:"product_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Qty         int       `json:"qty" bson:"qty"`
	Price       float64   `json:"price" bson:"price"`
}

type Order struct {
	ID              uuid.UUID       `json:"_id" bson:"_id"`
	OrderNumber     string          `json:"order_number" bson:"order_number"`
	UserID          uuid.UUID       `json:"user" bson:"user"`
	OrderItems      []OrderItem     `json:"order_items" bson:"order_items"`
	ShippingAddress ShippingAddress `json:"shipping_address" bson:"shipping_address"`
	TotalPrice      float64         `json:"total_price" bson:"total_price"`
	Status          string          `json:"status" bson:"status"`
	CreatedAt       time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" bson:"updated_at"`
}

// SalesStats is the result of the order sales aggregation.
type SalesStats struct {
	MinimumSale float64 `json:"minimum_sale" bson:"minimum_sale"`
	MaximumSale float64 `json:"maximum_sale" bson:"maximum_sale"`
	AverageSale float64 `json:"average_sale" bson:"average_sale"`
	TotalSales  float64 `json:"total_sales" bson:"total_sales"`
}
