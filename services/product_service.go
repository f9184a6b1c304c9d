package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/brightBediako/farmlink-api/models"
	"github.com/brightBediako/farmlink-api/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateProductRequest struct {
	Name        string
	Description string
	Category    string
	Sizes       []string
	Colors      []string
	Price       float64
	TotalQty    int
	Images      []string
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Price       *float64 `json:"price"`
	TotalQty    *int     `json:"total_qty"`
}

// ProductFilters holds listing filter parameters.
type ProductFilters struct {
	Name     string
	Category string
	Size     string
	Color    string
	PriceMin float64
	PriceMax float64
	HasPrice bool
	Page     int
	Limit    int
}

// QueryKey is a stable cache key for this filter combination.
func (f *ProductFilters) QueryKey() string {
	return fmt.Sprintf("%s|%s|%s|%s|%g-%g|%d|%d",
		f.Name, f.Category, f.Size, f.Color, f.PriceMin, f.PriceMax, f.Page, f.Limit)
}

// ProductService owns the product catalog.
type ProductService struct {
	productRepo      repository.ProductRepo
	categoryRepo     repository.CategoryRepo
	userRepo         repository.UserRepo
	notificationRepo repository.NotificationRepo
	mailer           Mailer
	cache            *ProductCache
}

func NewProductService(
	productRepo repository.ProductRepo,
	categoryRepo repository.CategoryRepo,
	userRepo repository.UserRepo,
	notificationRepo repository.NotificationRepo,
	mailer Mailer,
	cache *ProductCache,
) *ProductService {
	return &ProductService{
		productRepo:      productRepo,
		categoryRepo:     categoryRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		mailer:           mailer,
		cache:            cache,
	}
}

// Create validates the owner and category, stores the product and fans out
// a best-effort new-product notification.
func (s *ProductService) Create(ctx context.Context, userID uuid.UUID, req *CreateProductRequest) (*models.Product, *ServiceError) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, ErrUserNotFound
	}
	if err != nil {
		zap.L().Error("user lookup failed", zap.Error(err))
		return nil, internalError("Failed to create product")
	}
	if !user.IsEmailVerified {
		return nil, ErrEmailNotVerified
	}

	if _, err := s.productRepo.FindByName(ctx, req.Name); err == nil {
		return nil, ErrProductExists
	} else if err != repository.ErrNotFound {
		zap.L().Error("product lookup failed", zap.Error(err))
		return nil, internalError("Failed to create product")
	}

	category, err := s.categoryRepo.FindByName(ctx, req.Category)
	if err == repository.ErrNotFound {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		zap.L().Error("category lookup failed", zap.Error(err))
		return nil, internalError("Failed to create product")
	}

	now := time.Now().UTC()
	product := &models.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Category:    category.Name,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		Images:      req.Images,
		Price:       req.Price,
		TotalQty:    req.TotalQty,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		zap.L().Error("product insert failed", zap.Error(err))
		return nil, internalError("Failed to create product")
	}

	if err := s.categoryRepo.AppendProduct(ctx, category.ID, product.ID); err != nil {
		zap.L().Warn("failed to append product to category",
			zap.String("category", category.Name),
			zap.Error(err),
		)
	}

	message := fmt.Sprintf("<p>🛒 A new product <strong>%s</strong> has been added to the store by <strong>%s</strong>.</p>", product.Name, user.FullName)
	if err := s.notificationRepo.Create(ctx, &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   message,
		CreatedAt: now,
	}); err != nil {
		zap.L().Warn("failed to persist product notification", zap.Error(err))
	}
	s.mailer.Enqueue(Email{
		To:      user.Email,
		Subject: "Product listed on FarmLink",
		Body:    message,
	})

	s.cache.InvalidateAsync("")
	zap.L().Info("product created", zap.String("product_id", product.ID.String()), zap.String("name", product.Name))
	return product, nil
}

// List returns a filtered, paginated product listing, served through the
// cache when possible.
func (s *ProductService) List(ctx context.Context, filters *ProductFilters) (map[string]interface{}, *ServiceError) {
	if cached, ok := s.cache.GetProductList(ctx, filters.QueryKey()); ok {
		return cached, nil
	}

	filter := buildProductFilter(filters)
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		zap.L().Error("product count failed", zap.Error(err))
		return nil, internalError("Failed to fetch products")
	}

	skip := (filters.Page - 1) * filters.Limit
	products, err := s.productRepo.Find(ctx, filter, filters.Limit, skip)
	if err != nil {
		zap.L().Error("product query failed", zap.Error(err))
		return nil, internalError("Failed to fetch products")
	}

	totalPages := int(math.Ceil(float64(total) / float64(filters.Limit)))
	response := map[string]interface{}{
		"products": products,
		"meta": map[string]interface{}{
			"page":       filters.Page,
			"limit":      filters.Limit,
			"total":      total,
			"totalPages": totalPages,
		},
	}
	s.cache.SetProductListAsync(filters.QueryKey(), response)
	return response, nil
}

// GetByID returns a single product, cache first.
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, *ServiceError) {
	if cached, ok := s.cache.GetProduct(ctx, id.String()); ok {
		return cached, nil
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, ErrProductNotFound
	}
	if err != nil {
		zap.L().Error("product lookup failed", zap.Error(err))
		return nil, internalError("Failed to fetch product")
	}
	s.cache.SetProductAsync(id.String(), product)
	return product, nil
}

// Update applies partial changes after an ownership check: only the owner
// or an admin may mutate a product.
func (s *ProductService) Update(ctx context.Context, id, userID uuid.UUID, role string, req *UpdateProductRequest) (*models.Product, *ServiceError) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, ErrProductNotFound
	}
	if err != nil {
		zap.L().Error("product lookup failed", zap.Error(err))
		return nil, internalError("Failed to update product")
	}
	if product.UserID != userID && role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		category, err := s.categoryRepo.FindByName(ctx, *req.Category)
		if err == repository.ErrNotFound {
			return nil, ErrCategoryNotFound
		}
		if err != nil {
			return nil, internalError("Failed to update product")
		}
		updates["category"] = category.Name
	}
	if req.Sizes != nil {
		updates["sizes"] = req.Sizes
	}
	if req.Colors != nil {
		updates["colors"] = req.Colors
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, &ServiceError{StatusCode: 400, Message: "Price must not be negative"}
		}
		updates["price"] = *req.Price
	}
	if req.TotalQty != nil {
		updates["total_qty"] = *req.TotalQty
	}

	if len(updates) > 0 {
		if err := s.productRepo.Update(ctx, id, updates); err != nil {
			zap.L().Error("product update failed", zap.Error(err))
			return nil, internalError("Failed to update product")
		}
	}

	s.cache.InvalidateAsync(id.String())
	return s.getFresh(ctx, id)
}

// Delete removes a product after the same ownership check as Update.
func (s *ProductService) Delete(ctx context.Context, id, userID uuid.UUID, role string) *ServiceError {
	product, err := s.productRepo.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return ErrProductNotFound
	}
	if err != nil {
		zap.L().Error("product lookup failed", zap.Error(err))
		return internalError("Failed to delete product")
	}
	if product.UserID != userID && role != models.RoleAdmin {
		return ErrForbidden
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		zap.L().Error("product delete failed", zap.Error(err))
		return internalError("Failed to delete product")
	}
	s.cache.InvalidateAsync(id.String())
	return nil
}

// GetVendorProducts returns the caller's products, or every product for
// admins.
func (s *ProductService) GetVendorProducts(ctx context.Context, userID uuid.UUID, role string) ([]models.Product, *ServiceError) {
	if role != models.RoleAdmin && role != models.RoleVendor {
		return nil, ErrForbidden
	}

	if role == models.RoleAdmin {
		products, err := s.productRepo.Find(ctx, map[string]interface{}{}, 0, 0)
		if err != nil {
			zap.L().Error("product query failed", zap.Error(err))
			return nil, internalError("Failed to fetch products")
		}
		return products, nil
	}

	products, err := s.productRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("vendor product query failed", zap.Error(err))
		return nil, internalError("Failed to fetch products")
	}
	return products, nil
}

func (s *ProductService) getFresh(ctx context.Context, id uuid.UUID) (*models.Product, *ServiceError) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, internalError("Failed to fetch product")
	}
	return product, nil
}

func buildProductFilter(f *ProductFilters) map[string]interface{} {
	filter := map[string]interface{}{}
	if f.Name != "" {
		filter["name"] = map[string]interface{}{"$regex": f.Name, "$options": "i"}
	}
	if f.Category != "" {
		filter["category"] = map[string]interface{}{"$regex": f.Category, "$options": "i"}
	}
	if f.Size != "" {
		filter["sizes"] = map[string]interface{}{"$regex": f.Size, "$options": "i"}
	}
	if f.Color != "" {
		filter["colors"] = map[string]interface{}{"$regex": f.Color, "$options": "i"}
	}
	if f.HasPrice {
		filter["price"] = map[string]interface{}{"$gte": f.PriceMin, "$lte": f.PriceMax}
	}
	return filter
}
