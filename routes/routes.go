package routes

import (
	"github.com/brightBediako/farmlink-api/controllers"
	"github.com/brightBediako/farmlink-api/middleware"
	"github.com/brightBediako/farmlink-api/services"
	"github.com/gin-gonic/gin"
)

// Controllers bundles every controller registered on the router.
type Controllers struct {
	Users         *controllers.UserController
	Products      *controllers.ProductController
	Categories    *controllers.CategoryController
	Coupons       *controllers.CouponController
	Orders        *controllers.OrderController
	Notifications *controllers.NotificationController
}

// Register sets up all API routes.
func Register(r *gin.Engine, c *Controllers, tokens *services.TokenService) {
	auth := middleware.Authenticate(tokens)

	users := r.Group("/users")
	users.POST("/register", c.Users.Register)
	users.POST("/login", c.Users.Login)
	users.POST("/forgot-password", c.Users.ForgotPassword)
	users.POST("/reset-password/:token", c.Users.ResetPassword)
	users.POST("/verify-email/:token", c.Users.VerifyEmail)

	usersAuth := users.Group("", auth)
	usersAuth.GET("/profile", c.Users.GetProfile)
	usersAuth.PUT("/profile", c.Users.UpdateProfile)
	usersAuth.DELETE("/profile", c.Users.DeleteAccount)
	usersAuth.PUT("/shipping-address", c.Users.UpdateShippingAddress)
	usersAuth.POST("/verify-email/request", c.Users.RequestEmailVerification)

	usersAdmin := users.Group("", auth, middleware.AdminOnly())
	usersAdmin.GET("", c.Users.GetAllUsers)
	usersAdmin.PUT("/:id/block", c.Users.BlockUser)
	usersAdmin.PUT("/:id/unblock", c.Users.UnblockUser)

	products := r.Group("/products")
	products.GET("", c.Products.ListProducts)
	products.GET("/:id", c.Products.GetProduct)

	productsAuth := products.Group("", auth)
	productsAuth.POST("", c.Products.CreateProduct)
	productsAuth.GET("/mine", c.Products.GetVendorProducts)
	productsAuth.PUT("/:id", c.Products.UpdateProduct)
	productsAuth.DELETE("/:id", c.Products.DeleteProduct)

	categories := r.Group("/categories")
	categories.GET("", c.Categories.ListCategories)
	categories.GET("/:id", c.Categories.GetCategory)

	categoriesAdmin := categories.Group("", auth, middleware.AdminOnly())
	categoriesAdmin.POST("", c.Categories.CreateCategory)
	categoriesAdmin.PUT("/:id", c.Categories.UpdateCategory)
	categoriesAdmin.DELETE("/:id", c.Categories.DeleteCategory)

	coupons := r.Group("/coupons", auth)
	coupons.GET("", c.Coupons.ListCoupons)
	coupons.GET("/:id", c.Coupons.GetCoupon)

	couponsAdmin := coupons.Group("", middleware.AdminOnly())
	couponsAdmin.POST("", c.Coupons.CreateCoupon)
	couponsAdmin.PUT("/:id", c.Coupons.UpdateCoupon)
	couponsAdmin.DELETE("/:id", c.Coupons.DeleteCoupon)

	orders := r.Group("/orders", auth)
	orders.POST("", c.Orders.CreateOrder)
	orders.GET("/mine", c.Orders.ListMyOrders)
	orders.GET("/:id", c.Orders.GetOrder)

	ordersAdmin := orders.Group("", middleware.AdminOnly())
	ordersAdmin.GET("", c.Orders.ListOrders)
	ordersAdmin.PUT("/:id/status", c.Orders.UpdateOrderStatus)
	ordersAdmin.GET("/stats", c.Orders.GetSalesStats)

	notifications := r.Group("/notifications", auth)
	notifications.GET("", c.Notifications.ListNotifications)
	notifications.PUT("/:id/read", c.Notifications.MarkNotificationRead)
}
