package repository

import (
	"context"
	"errors"
	"time"

	"github.com/brightBediako/farmlink-api/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned by all repositories when a document is absent.
// Mongo adapters translate mongo.ErrNoDocuments into it so that services
// never depend on driver types.
var ErrNotFound = errors.New("record not found")

// UserRepo defines user persistence operations.
type UserRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	// AppendOrder pushes an order id onto the user's order history.
	AppendOrder(ctx context.Context, userID, orderID uuid.UUID) error
	FindByVerificationToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
}

// ProductRepo defines product persistence operations.
type ProductRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByName(ctx context.Context, name string) (*models.Product, error)
	Find(ctx context.Context, filter map[string]interface{}, limit, skip int) ([]models.Product, error)
	Count(ctx context.Context, filter map[string]interface{}) (int64, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	// IncrementTotalSold atomically bumps the sale counter by qty.
	IncrementTotalSold(ctx context.Context, id uuid.UUID, qty int) error
}

// CategoryRepo defines category persistence operations.
type CategoryRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	AppendProduct(ctx context.Context, categoryID, productID uuid.UUID) error
}

// CouponRepo defines coupon persistence operations.
type CouponRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	FindAll(ctx context.Context) ([]models.Coupon, error)
	Create(ctx context.Context, coupon *models.Coupon) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepo defines order persistence operations.
type OrderRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error)
	Create(ctx context.Context, order *models.Order) error
	// UpdateStatus persists a new status and returns the updated order.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
	SalesStats(ctx context.Context) (*models.SalesStats, error)
	SalesSince(ctx context.Context, since time.Time) (float64, error)
}

// NotificationRepo defines notification persistence operations.
type NotificationRepo interface {
	Create(ctx context.Context, n *models.Notification) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}
