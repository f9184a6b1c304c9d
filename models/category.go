package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        uuid.UUID   `json:"_id" bson:"_id"`
	Name      string      `json:"name" bson:"name"`
	Image     string      `json:"image" bson:"image"`
	UserID    uuid.UUID   `json:"user" bson:"user"`
	Products  []uuid.UUID `json:"products" bson:"products"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}
