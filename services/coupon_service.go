package services

import (
	"context"
	"strings"
	"time"

	"github.com/brightBediako/farmlink-api/models"
	"github.com/brightBediako/farmlink-api/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateCouponRequest struct {
	Code      string    `json:"code" binding:"required"`
	Discount  float64   `json:"discount" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

type UpdateCouponRequest struct {
	Code      *string    `json:"code"`
	Discount  *float64   `json:"discount"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// CouponService owns coupon authoring. Validity is only re-checked at
// redemption time, inside the checkout flow.
type CouponService struct {
	couponRepo repository.CouponRepo
}

func NewCouponService(couponRepo repository.CouponRepo) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// Create stores a new coupon with an upper-cased unique code.
func (s *CouponService) Create(ctx context.Context, userID uuid.UUID, req *CreateCouponRequest) (*models.Coupon, *ServiceError) {
	if req.Discount < 0 || req.Discount > 100 {
		return nil, ErrInvalidDiscount
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if _, err := s.couponRepo.FindByCode(ctx, code); err == nil {
		return nil, ErrCouponExists
	} else if err != repository.ErrNotFound {
		zap.L().Error("coupon lookup failed", zap.Error(err))
		return nil, internalError("Failed to create coupon")
	}

	coupon := &models.Coupon{
		ID:        uuid.New(),
		Code:      code,
		Discount:  req.Discount,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		zap.L().Error("coupon insert failed", zap.Error(err))
		return nil, internalError("Failed to create coupon")
	}
	zap.L().Info("coupon created", zap.String("code", code), zap.Float64("discount", req.Discount))
	return coupon, nil
}

func (s *CouponService) GetAll(ctx context.Context) ([]models.Coupon, *ServiceError) {
	coupons, err := s.couponRepo.FindAll(ctx)
	if err != nil {
		zap.L().Error("failed to fetch coupons", zap.Error(err))
		return nil, internalError("Failed to fetch coupons")
	}
	return coupons, nil
}

func (s *CouponService) GetByID(ctx context.Context, id uuid.UUID) (*models.Coupon, *ServiceError) {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		zap.L().Error("coupon lookup failed", zap.Error(err))
		return nil, internalError("Failed to fetch coupon")
	}
	return coupon, nil
}

func (s *CouponService) Update(ctx context.Context, id uuid.UUID, req *UpdateCouponRequest) (*models.Coupon, *ServiceError) {
	updates := map[string]interface{}{}
	if req.Code != nil {
		updates["code"] = strings.ToUpper(strings.TrimSpace(*req.Code))
	}
	if req.Discount != nil {
		if *req.Discount < 0 || *req.Discount > 100 {
			return nil, ErrInvalidDiscount
		}
		updates["discount"] = *req.Discount
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}

	if len(updates) > 0 {
		err := s.couponRepo.Update(ctx, id, updates)
		if err == repository.ErrNotFound {
			return nil, ErrCouponNotFound
		}
		if err != nil {
			zap.L().Error("coupon update failed", zap.Error(err))
			return nil, internalError("Failed to update coupon")
		}
	}
	return s.GetByID(ctx, id)
}

func (s *CouponService) Delete(ctx context.Context, id uuid.UUID) *ServiceError {
	err := s.couponRepo.Delete(ctx, id)
	if err == repository.ErrNotFound {
		return ErrCouponNotFound
	}
	if err != nil {
		zap.L().Error("coupon delete failed", zap.Error(err))
		return internalError("Failed to delete coupon")
	}
	return nil
}
