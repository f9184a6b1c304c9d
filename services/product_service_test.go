package services_test

import (
	"context"
	"testing"

	"github.com/brightBediako/farmlink-api/models"
	"github.com/brightBediako/farmlink-api/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService(products *mockProductRepo, categories *mockCategoryRepo, users *mockUserRepo, notifications *mockNotificationRepo, mailer *fakeMailer) *services.ProductService {
	// nil cache is valid: caching is skipped entirely.
	return services.NewProductService(products, categories, users, notifications, mailer, nil)
}

func TestCreateProduct_RequiresVerifiedEmail(t *testing.T) {
	userID := uuid.New()
	users := &mockUserRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*models.User, error) {
			return &models.User{ID: userID, Email: "vendor@example.com", IsEmailVerified: false}, nil
		},
	}
	svc := newProductService(&mockProductRepo{}, &mockCategoryRepo{}, users, &mockNotificationRepo{}, &fakeMailer{})

	_, svcErr := svc.Create(context.Background(), userID, &services.CreateProductRequest{
		Name: "Fresh Tomatoes", Category: "vegetables", Price: 5, TotalQty: 100,
	})

	require.NotNil(t, svcErr)
	assert.Equal(t, services.ErrEmailNotVerified, svcErr)
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	userID := uuid.New()
	users := &mockUserRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*models.User, error) {
			return &models.User{ID: userID, Email: "vendor@example.com", IsEmailVerified: true}, nil
		},
	}
	svc := newProductService(&mockProductRepo{}, &mockCategoryRepo{}, users, &mockNotificationRepo{}, &fakeMailer{})

	_, svcErr := svc.Create(context.Background(), userID, &services.CreateProductRequest{
		Name: "Fresh Tomatoes", Category: "nonexistent", Price: 5, TotalQty: 100,
	})

	require.NotNil(t, svcErr)
	assert.Equal(t, services.ErrCategoryNotFound, svcErr)
}

func TestCreateProduct_Success(t *testing.T) {
	userID := uuid.New()
	categoryID := uuid.New()
	users := &mockUserRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*models.User, error) {
			return &models.User{ID: userID, FullName: "Kofi", Email: "vendor@example.com", IsEmailVerified: true}, nil
		},
	}
	categories := &mockCategoryRepo{
		findByNameFn: func(_ context.Context, name string) (*models.Category, error) {
			return &models.Category{ID: categoryID, Name: name}, nil
		},
	}
	notifications := &mockNotificationRepo{}
	mailer := &fakeMailer{}
	svc := newProductService(&mockProductRepo{}, categories, users, notifications, mailer)

	product, svcErr := svc.Create(context.Background(), userID, &services.CreateProductRequest{
		Name:     "Fresh Tomatoes",
		Category: "vegetables",
		Price:    5,
		TotalQty: 100,
		Images:   []string{"https://res.cloudinary.com/demo/tomatoes.jpg"},
	})

	require.Nil(t, svcErr)
	assert.Equal(t, userID, product.UserID)
	assert.Equal(t, "vegetables", product.Category)
	require.Len(t, categories.appended, 1)
	assert.Equal(t, product.ID, categories.appended[0])
	assert.Len(t, notifications.created, 1)
	assert.Len(t, mailer.sent, 1)
}

func TestUpdateProduct_NonOwnerForbidden(t *testing.T) {
	ownerID := uuid.New()
	productID := uuid.New()
	products := &mockProductRepo{
		findByIDFn: func(_ context.Context, id uuid.UUID) (*models.Product, error) {
			return &models.Product{ID: id, UserID: ownerID}, nil
		},
	}
	svc := newProductService(products, &mockCategoryRepo{}, &mockUserRepo{}, &mockNotificationRepo{}, &fakeMailer{})

	name := "Hijacked"
	_, svcErr := svc.Update(context.Background(), productID, uuid.New(), models.RoleVendor, &services.UpdateProductRequest{Name: &name})

	require.NotNil(t, svcErr)
	assert.Equal(t, services.ErrForbidden, svcErr)
}

func TestUpdateProduct_AdminMayEditAnyProduct(t *testing.T) {
	ownerID := uuid.New()
	productID := uuid.New()
	products := &mockProductRepo{
		findByIDFn: func(_ context.Context, id uuid.UUID) (*models.Product, error) {
			return &models.Product{ID: id, UserID: ownerID, Name: "Yam"}, nil
		},
	}
	svc := newProductService(products, &mockCategoryRepo{}, &mockUserRepo{}, &mockNotificationRepo{}, &fakeMailer{})

	name := "Puna Yam"
	_, svcErr := svc.Update(context.Background(), productID, uuid.New(), models.RoleAdmin, &services.UpdateProductRequest{Name: &name})

	assert.Nil(t, svcErr)
}

func TestDeleteProduct_NonOwnerForbidden(t *testing.T) {
	ownerID := uuid.New()
	products := &mockProductRepo{
		findByIDFn: func(_ context.Context, id uuid.UUID) (*models.Product, error) {
			return &models.Product{ID: id, UserID: ownerID}, nil
		},
	}
	svc := newProductService(products, &mockCategoryRepo{}, &mockUserRepo{}, &mockNotificationRepo{}, &fakeMailer{})

	svcErr := svc.Delete(context.Background(), uuid.New(), uuid.New(), models.RoleBuyer)

	require.NotNil(t, svcErr)
	assert.Equal(t, services.ErrForbidden, svcErr)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := newProductService(&mockProductRepo{}, &mockCategoryRepo{}, &mockUserRepo{}, &mockNotificationRepo{}, &fakeMailer{})

	_, svcErr := svc.GetByID(context.Background(), uuid.New())

	require.NotNil(t, svcErr)
	assert.Equal(t, services.ErrProductNotFound, svcErr)
}

func TestGetVendorProducts_BuyerForbidden(t *testing.T) {
	svc := newProductService(&mockProductRepo{}, &mockCategoryRepo{}, &mockUserRepo{}, &mockNotificationRepo{}, &fakeMailer{})

	_, svcErr := svc.GetVendorProducts(context.Background(), uuid.New(), models.RoleBuyer)

	require.NotNil(t, svcErr)
	assert.Equal(t, services.ErrForbidden, svcErr)
}
