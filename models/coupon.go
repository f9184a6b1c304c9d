package models

import (
	"time"

	"github.com/google/uuid"
)

type Coupon struct {
	ID        uuid.UUID `json:"_id" bson:"_id"`
	Code      string    `json:"code" bson:"code"`
	Discount  float64   `json:"discount" bson:"discount"`
	StartDate time.Time `json:"start_date" bson:"start_date"`
	EndDate   time.Time `json:"end_date" bson:"end_date"`
	UserID    uuid.UUID `json:"user" bson:"user"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// IsExpired reports whether the coupon's validity window has passed.
func (c *Coupon) IsExpired(now time.Time) bool {
	return now.After(c.EndDate)
}

// IsUsable reports whether now falls within [StartDate, EndDate].
func (c *Coupon) IsUsable(now time.Time) bool {
	return !now.Before(c.StartDate) && !now.After(c.EndDate)
}

// DaysLeft returns the number of whole days until the coupon expires.
func (c *Coupon) DaysLeft(now time.Time) int {
	if c.IsExpired(now) {
		return 0
	}
	return int(c.EndDate.Sub(now).Hours() / 24)
}
