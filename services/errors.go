package services

import "net/http"

// ServiceError carries an HTTP status alongside a user-facing message.
// Controllers map it straight onto the response.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

var (
	// not found
	ErrUserNotFound         = &ServiceError{http.StatusNotFound, "User not found"}
	ErrProductNotFound      = &ServiceError{http.StatusNotFound, "Product not found"}
	ErrCategoryNotFound     = &ServiceError{http.StatusNotFound, "Category not found"}
	ErrCouponNotFound       = &ServiceError{http.StatusNotFound, "Coupon does not exist"}
	ErrOrderNotFound        = &ServiceError{http.StatusNotFound, "Order not found"}
	ErrNotificationNotFound = &ServiceError{http.StatusNotFound, "Notification not found"}

	// conflicts on unique fields
	ErrUserExists     = &ServiceError{http.StatusConflict, "User already exists"}
	ErrEmailExists    = &ServiceError{http.StatusConflict, "Email already exists"}
	ErrPhoneExists    = &ServiceError{http.StatusConflict, "Phone number already exists"}
	ErrProductExists  = &ServiceError{http.StatusConflict, "Product already exists"}
	ErrCategoryExists = &ServiceError{http.StatusConflict, "Category already exists"}
	ErrCouponExists   = &ServiceError{http.StatusConflict, "Coupon already exists"}

	// validation
	ErrCouponExpired           = &ServiceError{http.StatusBadRequest, "Coupon is expired"}
	ErrInvalidDiscount         = &ServiceError{http.StatusBadRequest, "Discount must be a number between 0 and 100"}
	ErrShippingAddressRequired = &ServiceError{http.StatusBadRequest, "Shipping address is required"}
	ErrNoOrderItems            = &ServiceError{http.StatusBadRequest, "No order items found"}
	ErrInvalidStatus           = &ServiceError{http.StatusBadRequest, "Invalid order status"}
	ErrWeakPassword            = &ServiceError{http.StatusBadRequest, "Password must be at least 8 characters long"}

	// auth
	ErrInvalidCredentials = &ServiceError{http.StatusUnauthorized, "Invalid login credentials"}
	ErrForbidden          = &ServiceError{http.StatusForbidden, "You do not have permission to perform this action"}
	ErrEmailNotVerified   = &ServiceError{http.StatusForbidden, "Please verify your email first"}
	ErrTokenInvalid       = &ServiceError{http.StatusBadRequest, "Token is invalid or has expired"}
	ErrAccountBlocked     = &ServiceError{http.StatusForbidden, "Account is blocked"}
)

func internalError(msg string) *ServiceError {
	return &ServiceError{http.StatusInternalServerError, msg}
}
