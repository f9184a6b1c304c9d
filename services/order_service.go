package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brightBediako/farmlink-api/models"
	"github.com/brightBediako/farmlink-api/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutItem is one requested line of an order. Name, description and
// price are snapshotted onto the order and forwarded to the payment provider.
type CheckoutItem struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Qty         int       `json:"qty" binding:"required,min=1"`
	Price       float64   `json:"price" binding:"required,gte=0"`
}

type CreateOrderRequest struct {
	OrderItems []CheckoutItem `json:"order_items"`
}

// CheckoutResult is what the caller needs to continue the payment flow.
type CheckoutResult struct {
	Order      *models.Order `json:"order"`
	PaymentURL string        `json:"url"`
}

type OrderListResponse struct {
	Orders []models.Order `json:"orders"`
	Meta   MetaData       `json:"meta"`
}

type MetaData struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalOrders int64 `json:"total_orders"`
	TotalPages  int64 `json:"total_pages"`
	HasMore     bool  `json:"has_more"`
}

type OrderStatsResponse struct {
	Stats      *models.SalesStats `json:"stats"`
	SalesToday float64            `json:"sales_today"`
}

// OrderService owns checkout orchestration and order fulfillment.
type OrderService struct {
	orderRepo        repository.OrderRepo
	userRepo         repository.UserRepo
	productRepo      repository.ProductRepo
	couponRepo       repository.CouponRepo
	notificationRepo repository.NotificationRepo
	payments         PaymentProvider
	mailer           Mailer
}

func NewOrderService(
	orderRepo repository.OrderRepo,
	userRepo repository.UserRepo,
	productRepo repository.ProductRepo,
	couponRepo repository.CouponRepo,
	notificationRepo repository.NotificationRepo,
	payments PaymentProvider,
	mailer Mailer,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		userRepo:         userRepo,
		productRepo:      productRepo,
		couponRepo:       couponRepo,
		notificationRepo: notificationRepo,
		payments:         payments,
		mailer:           mailer,
	}
}

// Checkout validates the coupon and buyer, persists the order with the
// discounted total, bumps product sale counters, appends the order to the
// buyer's history and opens a payment session.
//
// There is no rollback: a failure after the order insert leaves the order
// in place and returns the error to the caller.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, couponCode string, req *CreateOrderRequest) (*CheckoutResult, *ServiceError) {
	now := time.Now()

	var coupon *models.Coupon
	discount := 0.0
	if couponCode != "" {
		code := strings.ToUpper(strings.TrimSpace(couponCode))
		found, err := s.couponRepo.FindByCode(ctx, code)
		if err == repository.ErrNotFound {
			return nil, ErrCouponNotFound
		}
		if err != nil {
			zap.L().Error("coupon lookup failed", zap.String("code", code), zap.Error(err))
			return nil, internalError("Failed to look up coupon")
		}
		if !found.IsUsable(now) {
			return nil, ErrCouponExpired
		}
		coupon = found
		discount = coupon.Discount / 100
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, ErrUserNotFound
	}
	if err != nil {
		zap.L().Error("user lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, internalError("Failed to look up user")
	}
	if !user.HasShippingAddress || user.ShippingAddress == nil {
		return nil, ErrShippingAddressRequired
	}

	if len(req.OrderItems) == 0 {
		return nil, ErrNoOrderItems
	}

	items := make([]models.OrderItem, 0, len(req.OrderItems))
	rawTotal := 0.0
	for _, item := range req.OrderItems {
		items = append(items, models.OrderItem{
			ProductID:   item.ProductID,
			Name:        item.Name,
			Description: item.Description,
			Qty:         item.Qty,
			Price:       item.Price,
		})
		rawTotal += item.Price * float64(item.Qty)
	}

	totalPrice := rawTotal
	if coupon != nil {
		totalPrice = rawTotal - rawTotal*discount
	}

	order := &models.Order{
		ID:              uuid.New(),
		OrderNumber:     generateOrderNumber(),
		UserID:          user.ID,
		OrderItems:      items,
		ShippingAddress: *user.ShippingAddress,
		TotalPrice:      totalPrice,
		Status:          models.StatusPending,
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		zap.L().Error("order insert failed", zap.Error(err))
		return nil, internalError("Failed to create order")
	}

	// Best-effort per item: a missing product is skipped, not fatal.
	for _, item := range order.OrderItems {
		if err := s.productRepo.IncrementTotalSold(ctx, item.ProductID, item.Qty); err != nil {
			if err == repository.ErrNotFound {
				zap.L().Warn("order item references missing product",
					zap.String("order_id", order.ID.String()),
					zap.String("product_id", item.ProductID.String()),
				)
				continue
			}
			zap.L().Error("total_sold increment failed",
				zap.String("product_id", item.ProductID.String()),
				zap.Error(err),
			)
		}
	}

	if err := s.userRepo.AppendOrder(ctx, user.ID, order.ID); err != nil {
		zap.L().Error("failed to append order to user history",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, internalError("Failed to update order history")
	}

	url, err := s.payments.CreateCheckoutSession(ctx, order)
	if err != nil {
		zap.L().Error("payment session creation failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
		return nil, internalError("Failed to create payment session")
	}

	zap.L().Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.Float64("total_price", order.TotalPrice),
		zap.Bool("coupon_applied", coupon != nil),
	)
	return &CheckoutResult{Order: order, PaymentURL: url}, nil
}

// UpdateStatus persists a new order status and fans out a best-effort email
// plus an in-app notification to the owning user. Notification failures
// never roll back the status change.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*models.Order, *ServiceError) {
	if !models.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err == repository.ErrNotFound {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		zap.L().Error("order status update failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, internalError("Failed to update order")
	}

	user, err := s.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		zap.L().Warn("order owner not found, skipping notifications",
			zap.String("order_id", order.ID.String()),
			zap.String("user_id", order.UserID.String()),
		)
		return order, nil
	}

	message := fmt.Sprintf("Your order #%s status has been updated to <strong>%s</strong>.", order.OrderNumber, status)
	if err := s.notificationRepo.Create(ctx, &models.Notification{
		ID:        uuid.New(),
		UserID:    user.ID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		zap.L().Warn("failed to persist order notification", zap.Error(err))
	}

	s.mailer.Enqueue(Email{
		To:      user.Email,
		Subject: fmt.Sprintf("Order %s update", order.OrderNumber),
		Body:    buildOrderUpdateEmailHTML(user.FullName, order.OrderNumber, status),
	})

	zap.L().Info("order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", status),
	)
	return order, nil
}

// GetAllOrders returns paginated orders across all users.
func (s *OrderService) GetAllOrders(ctx context.Context, page, limit int) (*OrderListResponse, *ServiceError) {
	orders, total, err := s.orderRepo.FindAll(ctx, page, limit)
	if err != nil {
		zap.L().Error("failed to fetch orders", zap.Error(err))
		return nil, internalError("Failed to fetch orders")
	}
	return s.listResponse(orders, total, page, limit), nil
}

// GetUserOrders returns paginated orders for a single user.
func (s *OrderService) GetUserOrders(ctx context.Context, userID uuid.UUID, page, limit int) (*OrderListResponse, *ServiceError) {
	orders, total, err := s.orderRepo.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		zap.L().Error("failed to fetch user orders", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, internalError("Failed to fetch orders")
	}
	return s.listResponse(orders, total, page, limit), nil
}

// GetOrderByID returns a single order.
func (s *OrderService) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, *ServiceError) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err == repository.ErrNotFound {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		zap.L().Error("failed to fetch order", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, internalError("Failed to fetch order")
	}
	return order, nil
}

// GetSalesStats aggregates sales figures plus today's sales sum.
func (s *OrderService) GetSalesStats(ctx context.Context) (*OrderStatsResponse, *ServiceError) {
	stats, err := s.orderRepo.SalesStats(ctx)
	if err != nil {
		zap.L().Error("sales stats aggregation failed", zap.Error(err))
		return nil, internalError("Failed to fetch sales stats")
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	salesToday, err := s.orderRepo.SalesSince(ctx, today)
	if err != nil {
		zap.L().Error("today's sales aggregation failed", zap.Error(err))
		return nil, internalError("Failed to fetch sales stats")
	}

	return &OrderStatsResponse{Stats: stats, SalesToday: salesToday}, nil
}

func (s *OrderService) listResponse(orders []models.Order, total int64, page, limit int) *OrderListResponse {
	return &OrderListResponse{
		Orders: orders,
		Meta: MetaData{
			Page:        page,
			Limit:       limit,
			TotalOrders: total,
			TotalPages:  calculateTotalPages(total, limit),
			HasMore:     total > int64(page*limit),
		},
	}
}

func calculateTotalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

func generateOrderNumber() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func buildOrderUpdateEmailHTML(name, orderNumber, status string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif;">
  <h2>Order Update</h2>
  <p>Hi %s,</p>
  <p>Your order <strong>#%s</strong> status has been updated to <strong>%s</strong>.</p>
  <p>Thank you for shopping with FarmLink.</p>
</div>`, name, orderNumber, status)
}
