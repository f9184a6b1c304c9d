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

const singleUseTokenTTL = 10 * time.Minute

type RegisterRequest struct {
	FullName string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"fullname"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

type ProfileResponse struct {
	User   *models.User   `json:"user"`
	Orders []models.Order `json:"orders"`
}

// UserService owns registration, login, profile and account lifecycle.
type UserService struct {
	userRepo         repository.UserRepo
	orderRepo        repository.OrderRepo
	notificationRepo repository.NotificationRepo
	tokens           *TokenService
	mailer           Mailer
}

func NewUserService(
	userRepo repository.UserRepo,
	orderRepo repository.OrderRepo,
	notificationRepo repository.NotificationRepo,
	tokens *TokenService,
	mailer Mailer,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		orderRepo:        orderRepo,
		notificationRepo: notificationRepo,
		tokens:           tokens,
		mailer:           mailer,
	}
}

// Register creates a new account and fans out a best-effort welcome
// notification and email.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*models.User, *ServiceError) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrUserExists
	} else if err != repository.ErrNotFound {
		zap.L().Error("user lookup failed", zap.Error(err))
		return nil, internalError("Failed to register user")
	}

	if serviceErr := ValidatePassword(req.Password); serviceErr != nil {
		return nil, serviceErr
	}
	hashed, err := HashPassword(req.Password)
	if err != nil {
		zap.L().Error("password hashing failed", zap.Error(err))
		return nil, internalError("Failed to register user")
	}

	role := req.Role
	if role == "" {
		role = models.RoleBuyer
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.New(),
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  hashed,
		Role:      role,
		Orders:    []uuid.UUID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		zap.L().Error("user insert failed", zap.Error(err))
		return nil, internalError("Failed to register user")
	}

	s.notify(ctx, user.ID, "<p>Welcome to <strong>FarmLink</strong> – your trusted platform for buying and selling fresh farm produce!</p>")
	s.mailer.Enqueue(Email{
		To:      user.Email,
		Subject: "Welcome to FarmLink",
		Body:    buildWelcomeEmailHTML(user.FullName),
	})

	zap.L().Info("user registered", zap.String("user_id", user.ID.String()), zap.String("role", role))
	return user, nil
}

// Login verifies the credentials and returns the user plus an access token.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, *ServiceError) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == repository.ErrNotFound {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		zap.L().Error("user lookup failed", zap.Error(err))
		return nil, "", internalError("Failed to log in")
	}
	if !CheckPassword(user.Password, password) {
		return nil, "", ErrInvalidCredentials
	}
	if user.IsBlocked {
		return nil, "", ErrAccountBlocked
	}

	token, err := s.tokens.GenerateToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		zap.L().Error("token generation failed", zap.Error(err))
		return nil, "", internalError("Failed to log in")
	}
	return user, token, nil
}

// GetProfile returns the user along with their order history.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, *ServiceError) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, ErrUserNotFound
	}
	if err != nil {
		zap.L().Error("user lookup failed", zap.Error(err))
		return nil, internalError("Failed to fetch profile")
	}

	orders, _, err := s.orderRepo.FindByUserID(ctx, userID, 1, 50)
	if err != nil {
		zap.L().Warn("failed to fetch order history", zap.String("user_id", userID.String()), zap.Error(err))
		orders = nil
	}
	return &ProfileResponse{User: user, Orders: orders}, nil
}

// GetAllUsers returns every user, newest first.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, *ServiceError) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		zap.L().Error("failed to fetch users", zap.Error(err))
		return nil, internalError("Failed to fetch users")
	}
	return users, nil
}

// UpdateProfile applies partial profile changes, enforcing email and phone
// uniqueness across accounts.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*models.User, *ServiceError) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, ErrUserNotFound
	}
	if err != nil {
		zap.L().Error("user lookup failed", zap.Error(err))
		return nil, internalError("Failed to update profile")
	}

	updates := map[string]interface{}{}
	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailExists
		} else if err != repository.ErrNotFound {
			return nil, internalError("Failed to update profile")
		}
		updates["email"] = *req.Email
	}
	if req.Phone != nil && *req.Phone != user.Phone {
		if _, err := s.userRepo.FindByPhone(ctx, *req.Phone); err == nil {
			return nil, ErrPhoneExists
		} else if err != repository.ErrNotFound {
			return nil, internalError("Failed to update profile")
		}
		updates["phone"] = *req.Phone
	}
	if req.FullName != nil {
		updates["fullname"] = *req.FullName
	}
	if req.Password != nil {
		if serviceErr := ValidatePassword(*req.Password); serviceErr != nil {
			return nil, serviceErr
		}
		hashed, err := HashPassword(*req.Password)
		if err != nil {
			return nil, internalError("Failed to update profile")
		}
		updates["password"] = hashed
	}

	if len(updates) == 0 {
		return user, nil
	}
	if err := s.userRepo.Update(ctx, userID, updates); err != nil {
		zap.L().Error("profile update failed", zap.Error(err))
		return nil, internalError("Failed to update profile")
	}

	s.notify(ctx, user.ID, "<p>Your profile has been <strong>updated successfully</strong>.</p>")
	s.mailer.Enqueue(Email{
		To:      user.Email,
		Subject: "Your FarmLink profile was updated",
		Body:    fmt.Sprintf("<p>Hi %s, your profile details were updated.</p>", user.FullName),
	})

	updated, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, internalError("Failed to update profile")
	}
	return updated, nil
}

// UpdateShippingAddress replaces the shipping address snapshot and marks the
// account as checkout-ready.
func (s *UserService) UpdateShippingAddress(ctx context.Context, userID uuid.UUID, addr *models.ShippingAddress) (*models.User, *ServiceError) {
	err := s.userRepo.Update(ctx, userID, map[string]interface{}{
		"shipping_address":     addr,
		"has_shipping_address": true,
	})
	if err == repository.ErrNotFound {
		return nil, ErrUserNotFound
	}
	if err != nil {
		zap.L().Error("shipping address update failed", zap.Error(err))
		return nil, internalError("Failed to update shipping address")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, internalError("Failed to update shipping address")
	}
	return user, nil
}

// SetBlocked flips the block flag on an account (admin only).
func (s *UserService) SetBlocked(ctx context.Context, userID uuid.UUID, blocked bool) (*models.User, *ServiceError) {
	err := s.userRepo.Update(ctx, userID, map[string]interface{}{"is_blocked": blocked})
	if err == repository.ErrNotFound {
		return nil, ErrUserNotFound
	}
	if err != nil {
		zap.L().Error("block flag update failed", zap.Error(err))
		return nil, internalError("Failed to update user")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, internalError("Failed to update user")
	}
	return user, nil
}

// DeleteAccount removes the user document.
func (s *UserService) DeleteAccount(ctx context.Context, userID uuid.UUID) *ServiceError {
	err := s.userRepo.Delete(ctx, userID)
	if err == repository.ErrNotFound {
		return ErrUserNotFound
	}
	if err != nil {
		zap.L().Error("user delete failed", zap.Error(err))
		return internalError("Failed to delete user")
	}
	return nil
}

// RequestEmailVerification issues a fresh verification token, stores its
// digest and mails the raw token to the user.
func (s *UserService) RequestEmailVerification(ctx context.Context, userID uuid.UUID) (string, *ServiceError) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err == repository.ErrNotFound {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", internalError("Failed to issue verification token")
	}

	raw, digest, err := GenerateSingleUseToken()
	if err != nil {
		zap.L().Error("verification token generation failed", zap.Error(err))
		return "", internalError("Failed to issue verification token")
	}

	expires := time.Now().UTC().Add(singleUseTokenTTL)
	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{
		"account_verification_token":   digest,
		"account_verification_expires": expires,
	}); err != nil {
		return "", internalError("Failed to issue verification token")
	}

	s.mailer.Enqueue(Email{
		To:      user.Email,
		Subject: "Email Verification - FarmLink",
		Body:    buildVerificationEmailHTML(raw),
	})
	return raw, nil
}

// VerifyEmail confirms the account behind a raw verification token.
func (s *UserService) VerifyEmail(ctx context.Context, rawToken string) *ServiceError {
	user, err := s.userRepo.FindByVerificationToken(ctx, HashToken(rawToken), time.Now().UTC())
	if err == repository.ErrNotFound {
		return ErrTokenInvalid
	}
	if err != nil {
		return internalError("Failed to verify email")
	}

	if err := s.userRepo.Update(ctx, user.ID, map[string]interface{}{
		"is_email_verified":            true,
		"account_verification_token":   nil,
		"account_verification_expires": nil,
	}); err != nil {
		return internalError("Failed to verify email")
	}
	zap.L().Info("email verified", zap.String("user_id", user.ID.String()))
	return nil
}

// ForgotPassword issues a password reset token for the given email.
func (s *UserService) ForgotPassword(ctx context.Context, email string) (string, *ServiceError) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == repository.ErrNotFound {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", internalError("Failed to issue reset token")
	}

	raw, digest, err := GenerateSingleUseToken()
	if err != nil {
		zap.L().Error("reset token generation failed", zap.Error(err))
		return "", internalError("Failed to issue reset token")
	}

	expires := time.Now().UTC().Add(singleUseTokenTTL)
	if err := s.userRepo.Update(ctx, user.ID, map[string]interface{}{
		"password_reset_token":   digest,
		"password_reset_expires": expires,
	}); err != nil {
		return "", internalError("Failed to issue reset token")
	}

	s.mailer.Enqueue(Email{
		To:      user.Email,
		Subject: "Password Reset - FarmLink",
		Body:    buildPasswordResetEmailHTML(raw),
	})
	return raw, nil
}

// ResetPassword sets a new password for the account behind a raw reset token.
func (s *UserService) ResetPassword(ctx context.Context, rawToken, password string) *ServiceError {
	if serviceErr := ValidatePassword(password); serviceErr != nil {
		return serviceErr
	}

	user, err := s.userRepo.FindByResetToken(ctx, HashToken(rawToken), time.Now().UTC())
	if err == repository.ErrNotFound {
		return ErrTokenInvalid
	}
	if err != nil {
		return internalError("Failed to reset password")
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return internalError("Failed to reset password")
	}
	if err := s.userRepo.Update(ctx, user.ID, map[string]interface{}{
		"password":               hashed,
		"password_reset_token":   nil,
		"password_reset_expires": nil,
	}); err != nil {
		return internalError("Failed to reset password")
	}
	zap.L().Info("password reset", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *UserService) notify(ctx context.Context, userID uuid.UUID, message string) {
	if err := s.notificationRepo.Create(ctx, &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		zap.L().Warn("failed to persist notification", zap.Error(err))
	}
}

func buildWelcomeEmailHTML(name string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif;">
  <h2>Welcome to FarmLink!</h2>
  <p>Hi %s,</p>
  <p>Your account has been created. Browse fresh farm produce and start shopping today.</p>
</div>`, name)
}

func buildVerificationEmailHTML(token string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif;">
  <h2>Verify your email</h2>
  <p>Use the token below to verify your email address. It expires in 10 minutes.</p>
  <p><strong>%s</strong></p>
</div>`, token)
}

func buildPasswordResetEmailHTML(token string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif;">
  <h2>Password reset</h2>
  <p>Use the token below to reset your password. It expires in 10 minutes.</p>
  <p><strong>%s</strong></p>
</div>`, strings.TrimSpace(token))
}
