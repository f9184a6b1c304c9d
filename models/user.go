package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleBuyer  = "buyer"
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

// ShippingAddress is snapshotted onto orders at checkout time.
type ShippingAddress struct {
	FirstName  string `json:"first_name" bson:"first_name"`
	LastName   string `json:"last_name" bson:"last_name"`
	Address    string `json:"address" bson:"address"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
	Province   string `json:"province" bson:"province"`
	Phone      string `json:"phone" bson:"phone"`
	Country    string `json:"country" bson:"country"`
}

type User struct {
	ID                 uuid.UUID        `json:"_id" bson:"_id"`
	FullName           string           `json:"fullname" bson:"fullname"`
	Email              string           `json:"email" bson:"email"`
	Phone              string           `json:"phone" bson:"phone"`
	Password           string           `json:"-" bson:"password"`
	Role               string           `json:"role" bson:"role"`
	Orders             []uuid.UUID      `json:"orders" bson:"orders"`
	ShippingAddress    *ShippingAddress `json:"shipping_address,omitempty" bson:"shipping_address,omitempty"`
	HasShippingAddress bool             `json:"has_shipping_address" bson:"has_shipping_address"`
	IsBlocked          bool             `json:"is_blocked" bson:"is_blocked"`
	IsEmailVerified    bool             `json:"is_email_verified" bson:"is_email_verified"`

	// sha256 hex digests of the raw tokens mailed to the user
	AccountVerificationToken   string     `json:"-" bson:"account_verification_token,omitempty"`
	AccountVerificationExpires *time.Time `json:"-" bson:"account_verification_expires,omitempty"`
	PasswordResetToken         string     `json:"-" bson:"password_reset_token,omitempty"`
	PasswordResetExpires       *time.Time `json:"-" bson:"password_reset_expires,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
