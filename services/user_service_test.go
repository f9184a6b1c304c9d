package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/brightBediako/farmlink-api/models"
	"github.com/brightBediako/farmlink-api/repository"
	"github.com/brightBediako/farmlink-api/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(users *mockUserRepo, orders *mockOrderRepo, notifications *mockNotificationRepo, mailer *fakeMailer) *services.UserService {
	tokens := services.NewTokenService("test-secret")
	return services.NewUserService(users, orders, notifications, tokens, mailer)
}

func TestRegister_Success(t *testing.T) {
	var created *models.User
	users := &mockUserRepo{
		createFn: func(_ context.Context, u *models.User) error {
			created = u
			return nil
		},
	}
	notifications := &mockNotificationRepo{}
	mailer := &fakeMailer{}
	svc := newUserService(users, &mockOrderRepo{}, notifications, mailer)

	user, svcErr := svc.Register(context.Background(), &services.RegisterRequest{
		FullName: "Kofi Boateng",
		Email:    "kofi@example.com",
		Phone:    "+233201234567",
		Password: "long-enough-pass",
	})

	require.Nil(t, svcErr)
	require.NotNil(t, created)
	assert.Equal(t, models.RoleBuyer, user.Role)
	assert.NotEqual(t, "long-enough-pass", created.Password, "password must be stored hashed")
	require.Len(t, notifications.created, 1)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "kofi@example.com", mailer.sent[0].To)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := &mockUserRepo{
		findByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: uuid.New(), Email: email}, nil
		},
	}
	svc := newUserService(users, &mockOrderRepo{}, &mockNotificationRepo{}, &fakeMailer{})

	_, svcErr := svc.Register(context.Background(), &services.RegisterRequest{
		FullName: "Kofi",
		Email:    "taken@example.com",
		Phone:    "+233200000000",
		Password: "long-enough-pass",
	})

	require.NotNil(t, svcErr)
	assert.Equal(t, services.ErrUserExists, svcErr)
}

func TestRegister_WeakPasswordRejected(t *testing.T) {
	svc := newUserService(&mockUserRepo{}, &mockOrderRepo{}, &mockNotificationRepo{}, &fakeMailer{})

	_, svcErr := svc.Register(context.Background(), &services.RegisterRequest{
		FullName: "Kofi",
		Email:    "kofi@example.com",
		Phone:    "+233200000000",
		Password: "short",
	})

	require.NotNil(t, svcErr)
	assert.Equal(t, services.ErrWeakPassword, svcErr)
}

func TestLogin_Success(t *testing.T) {
	hashed, err := services.HashPassword("correct-horse-battery")
	require.NoError(t, err)
	users := &mockUserRepo{
		findByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: uuid.New(), Email: email, Password: hashed, Role: models.RoleVendor}, nil
		},
	}
	svc := newUserService(users, &mockOrderRepo{}, &mockNotificationRepo{}, &fakeMailer{})

	user, token, svcErr := svc.Login(context.Background(), "vendor@example.com", "correct-horse-battery")

	require.Nil(t, svcErr)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleVendor, user.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed, err := services.HashPassword("correct-horse-battery")
	require.NoError(t, err)
	users := &mockUserRepo{
		findByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: uuid.New(), Email: email, Password: hashed}, nil
		},
	}
	svc := newUserService(users, &mockOrderRepo{}, &mockNotificationRepo{}, &fakeMailer{})

	_, _, svcErr := svc.Login(context.Background(), "vendor@example.com", "wrong")

	require.NotNil(t, svcErr)
	assert.Equal(t, services.ErrInvalidCredentials, svcErr)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newUserService(&mockUserRepo{}, &mockOrderRepo{}, &mockNotificationRepo{}, &fakeMailer{})

	_, _, svcErr := svc.Login(context.Background(), "ghost@example.com", "whatever")

	require.NotNil(t, svcErr)
	assert.Equal(t, services.ErrInvalidCredentials, svcErr)
}

func TestLogin_BlockedAccount(t *testing.T) {
	hashed, err := services.HashPassword("correct-horse-battery")
	require.NoError(t, err)
	users := &mockUserRepo{
		findByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: uuid.New(), Email: email, Password: hashed, IsBlocked: true}, nil
		},
	}
	svc := newUserService(users, &mockOrderRepo{}, &mockNotificationRepo{}, &fakeMailer{})

	_, _, svcErr := svc.Login(context.Background(), "blocked@example.com", "correct-horse-battery")

	require.NotNil(t, svcErr)
	assert.Equal(t, services.ErrAccountBlocked, svcErr)
}

func TestUpdateProfile_EmailTakenByOtherAccount(t *testing.T) {
	userID := uuid.New()
	users := &mockUserRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*models.User, error) {
			return &models.User{ID: userID, Email: "mine@example.com"}, nil
		},
		findByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: uuid.New(), Email: email}, nil
		},
	}
	svc := newUserService(users, &mockOrderRepo{}, &mockNotificationRepo{}, &fakeMailer{})

	newEmail := "other@example.com"
	_, svcErr := svc.UpdateProfile(context.Background(), userID, &services.UpdateProfileRequest{Email: &newEmail})

	require.NotNil(t, svcErr)
	assert.Equal(t, services.ErrEmailExists, svcErr)
}

func TestUpdateProfile_NoChangesSkipsFanOut(t *testing.T) {
	userID := uuid.New()
	updateCalled := false
	users := &mockUserRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*models.User, error) {
			return &models.User{ID: userID, Email: "mine@example.com", FullName: "Kofi"}, nil
		},
		updateFn: func(_ context.Context, _ uuid.UUID, _ map[string]interface{}) error {
			updateCalled = true
			return nil
		},
	}
	notifications := &mockNotificationRepo{}
	mailer := &fakeMailer{}
	svc := newUserService(users, &mockOrderRepo{}, notifications, mailer)

	user, svcErr := svc.UpdateProfile(context.Background(), userID, &services.UpdateProfileRequest{})

	require.Nil(t, svcErr)
	assert.Equal(t, userID, user.ID)
	assert.False(t, updateCalled, "no write for an empty request")
	assert.Empty(t, notifications.created, "no notification without an actual change")
	assert.Empty(t, mailer.sent, "no email without an actual change")
}

func TestUpdateProfile_ChangeFansOutOnce(t *testing.T) {
	userID := uuid.New()
	users := &mockUserRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*models.User, error) {
			return &models.User{ID: userID, Email: "mine@example.com", FullName: "Kofi"}, nil
		},
	}
	notifications := &mockNotificationRepo{}
	mailer := &fakeMailer{}
	svc := newUserService(users, &mockOrderRepo{}, notifications, mailer)

	name := "Kofi Boateng"
	_, svcErr := svc.UpdateProfile(context.Background(), userID, &services.UpdateProfileRequest{FullName: &name})

	require.Nil(t, svcErr)
	assert.Len(t, notifications.created, 1)
	assert.Len(t, mailer.sent, 1)
}

func TestVerifyEmail_TokenRoundTrip(t *testing.T) {
	userID := uuid.New()
	stored := map[string]interface{}{}
	users := &mockUserRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*models.User, error) {
			return &models.User{ID: userID, Email: "kofi@example.com"}, nil
		},
		updateFn: func(_ context.Context, _ uuid.UUID, updates map[string]interface{}) error {
			for k, v := range updates {
				stored[k] = v
			}
			return nil
		},
	}
	users.findByVerifyFn = func(_ context.Context, tokenHash string, now time.Time) (*models.User, error) {
		if digest, ok := stored["account_verification_token"].(string); ok && digest == tokenHash {
			return &models.User{ID: userID}, nil
		}
		return nil, repository.ErrNotFound
	}
	mailer := &fakeMailer{}
	svc := newUserService(users, &mockOrderRepo{}, &mockNotificationRepo{}, mailer)

	raw, svcErr := svc.RequestEmailVerification(context.Background(), userID)
	require.Nil(t, svcErr)
	require.NotEmpty(t, raw)
	assert.NotEqual(t, raw, stored["account_verification_token"], "only the digest is stored")
	require.Len(t, mailer.sent, 1)

	require.Nil(t, svc.VerifyEmail(context.Background(), raw))
	assert.Equal(t, true, stored["is_email_verified"])
}

func TestVerifyEmail_InvalidToken(t *testing.T) {
	svc := newUserService(&mockUserRepo{}, &mockOrderRepo{}, &mockNotificationRepo{}, &fakeMailer{})

	svcErr := svc.VerifyEmail(context.Background(), "bogus-token")

	require.NotNil(t, svcErr)
	assert.Equal(t, services.ErrTokenInvalid, svcErr)
}

func TestResetPassword_WeakPasswordRejected(t *testing.T) {
	svc := newUserService(&mockUserRepo{}, &mockOrderRepo{}, &mockNotificationRepo{}, &fakeMailer{})

	svcErr := svc.ResetPassword(context.Background(), "any-token", "short")

	require.NotNil(t, svcErr)
	assert.Equal(t, services.ErrWeakPassword, svcErr)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	svc := newUserService(&mockUserRepo{}, &mockOrderRepo{}, &mockNotificationRepo{}, &fakeMailer{})

	_, svcErr := svc.ForgotPassword(context.Background(), "ghost@example.com")

	require.NotNil(t, svcErr)
	assert.Equal(t, services.ErrUserNotFound, svcErr)
}
