package services_test

import (
	"context"
	"time"

	"github.com/brightBediako/farmlink-api/models"
	"github.com/brightBediako/farmlink-api/repository"
	"github.com/brightBediako/farmlink-api/services"
	"github.com/google/uuid"
)

// Function-field mocks for each repository. Unset fields return ErrNotFound
// or succeed silently so tests only wire what they assert on.

type mockUserRepo struct {
	findByIDFn      func(ctx context.Context, id uuid.UUID) (*models.User, error)
	findByEmailFn   func(ctx context.Context, email string) (*models.User, error)
	findByPhoneFn   func(ctx context.Context, phone string) (*models.User, error)
	createFn        func(ctx context.Context, user *models.User) error
	updateFn        func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	appendOrderFn   func(ctx context.Context, userID, orderID uuid.UUID) error
	appendOrderLog  []uuid.UUID
	findByVerifyFn  func(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
	findByResetFn   func(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.findByIDFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.findByIDFn(ctx, id)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.findByEmailFn(ctx, email)
}

func (m *mockUserRepo) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	if m.findByPhoneFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.findByPhoneFn(ctx, phone)
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]models.User, error) { return nil, nil }

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, user)
}

func (m *mockUserRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, id, updates)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (m *mockUserRepo) AppendOrder(ctx context.Context, userID, orderID uuid.UUID) error {
	m.appendOrderLog = append(m.appendOrderLog, orderID)
	if m.appendOrderFn == nil {
		return nil
	}
	return m.appendOrderFn(ctx, userID, orderID)
}

func (m *mockUserRepo) FindByVerificationToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	if m.findByVerifyFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.findByVerifyFn(ctx, tokenHash, now)
}

func (m *mockUserRepo) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	if m.findByResetFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.findByResetFn(ctx, tokenHash, now)
}

type mockProductRepo struct {
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	findByNameFn func(ctx context.Context, name string) (*models.Product, error)
	incrementFn  func(ctx context.Context, id uuid.UUID, qty int) error
	increments   map[uuid.UUID]int
}

func (m *mockProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.findByIDFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.findByIDFn(ctx, id)
}

func (m *mockProductRepo) FindByName(ctx context.Context, name string) (*models.Product, error) {
	if m.findByNameFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.findByNameFn(ctx, name)
}

func (m *mockProductRepo) Find(ctx context.Context, filter map[string]interface{}, limit, skip int) ([]models.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) Count(ctx context.Context, filter map[string]interface{}) (int64, error) {
	return 0, nil
}

func (m *mockProductRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) Create(ctx context.Context, product *models.Product) error { return nil }

func (m *mockProductRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (m *mockProductRepo) IncrementTotalSold(ctx context.Context, id uuid.UUID, qty int) error {
	if m.increments == nil {
		m.increments = map[uuid.UUID]int{}
	}
	if m.incrementFn != nil {
		if err := m.incrementFn(ctx, id, qty); err != nil {
			return err
		}
	}
	m.increments[id] += qty
	return nil
}

type mockCategoryRepo struct {
	findByNameFn func(ctx context.Context, name string) (*models.Category, error)
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*models.Category, error)
	createFn     func(ctx context.Context, category *models.Category) error
	appended     []uuid.UUID
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if m.findByIDFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.findByIDFn(ctx, id)
}

func (m *mockCategoryRepo) FindByName(ctx context.Context, name string) (*models.Category, error) {
	if m.findByNameFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.findByNameFn(ctx, name)
}

func (m *mockCategoryRepo) FindAll(ctx context.Context) ([]models.Category, error) { return nil, nil }

func (m *mockCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, category)
}

func (m *mockCategoryRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (m *mockCategoryRepo) AppendProduct(ctx context.Context, categoryID, productID uuid.UUID) error {
	m.appended = append(m.appended, productID)
	return nil
}

type mockCouponRepo struct {
	findByCodeFn func(ctx context.Context, code string) (*models.Coupon, error)
	createFn     func(ctx context.Context, coupon *models.Coupon) error
}

func (m *mockCouponRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	return nil, repository.ErrNotFound
}

func (m *mockCouponRepo) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	if m.findByCodeFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.findByCodeFn(ctx, code)
}

func (m *mockCouponRepo) FindAll(ctx context.Context) ([]models.Coupon, error) { return nil, nil }

func (m *mockCouponRepo) Create(ctx context.Context, coupon *models.Coupon) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, coupon)
}

func (m *mockCouponRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

func (m *mockCouponRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type mockOrderRepo struct {
	created        []*models.Order
	createFn       func(ctx context.Context, order *models.Order) error
	findByIDFn     func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	updateStatusFn func(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
	salesStatsFn   func(ctx context.Context) (*models.SalesStats, error)
	salesSinceFn   func(ctx context.Context, since time.Time) (float64, error)
}

func (m *mockOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.findByIDFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.findByIDFn(ctx, id)
}

func (m *mockOrderRepo) FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error) {
	return nil, 0, nil
}

func (m *mockOrderRepo) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error) {
	return nil, 0, nil
}

func (m *mockOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, order); err != nil {
			return err
		}
	}
	m.created = append(m.created, order)
	return nil
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	if m.updateStatusFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.updateStatusFn(ctx, id, status)
}

func (m *mockOrderRepo) SalesStats(ctx context.Context) (*models.SalesStats, error) {
	if m.salesStatsFn == nil {
		return &models.SalesStats{}, nil
	}
	return m.salesStatsFn(ctx)
}

func (m *mockOrderRepo) SalesSince(ctx context.Context, since time.Time) (float64, error) {
	if m.salesSinceFn == nil {
		return 0, nil
	}
	return m.salesSinceFn(ctx, since)
}

type mockNotificationRepo struct {
	created      []*models.Notification
	createFn     func(ctx context.Context, n *models.Notification) error
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	findByUserFn func(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
	markReadFn   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, n); err != nil {
			return err
		}
	}
	m.created = append(m.created, n)
	return nil
}

func (m *mockNotificationRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	if m.findByUserFn == nil {
		return nil, nil
	}
	return m.findByUserFn(ctx, userID)
}

func (m *mockNotificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	if m.findByIDFn == nil {
		return nil, repository.ErrNotFound
	}
	return m.findByIDFn(ctx, id)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	if m.markReadFn == nil {
		return nil
	}
	return m.markReadFn(ctx, id)
}

// fakePayments records the orders it was asked to open sessions for.

type fakePayments struct {
	url    string
	err    error
	orders []*models.Order
}

func (f *fakePayments) CreateCheckoutSession(ctx context.Context, order *models.Order) (string, error) {
	f.orders = append(f.orders, order)
	if f.err != nil {
		return "", f.err
	}
	if f.url == "" {
		return "https://checkout.stripe.com/test-session", nil
	}
	return f.url, nil
}

// fakeMailer records enqueued mail synchronously.

type fakeMailer struct {
	sent []services.Email
}

func (f *fakeMailer) Enqueue(msg services.Email) {
	f.sent = append(f.sent, msg)
}
