package shop

import (
	"errors"
	"fmt"
)

// Error represents a failed shop operation.
//
// Every failure is atomic: the operation either fully applied or left state
// untouched. Errors are reported to the caller synchronously; none is fatal
// to the process.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// ProductID identifies the affected product (for stock/lookup errors).
	ProductID string

	// OrderID identifies the affected order (for lifecycle errors).
	OrderID string

	// Category identifies the affected category (for category errors).
	Category string

	// Details contains additional context.
	Details map[string]string
}

// ErrorCode categorizes shop errors.
type ErrorCode string

const (
	// ErrCodeNotFound indicates an unknown product, order or category id.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeInsufficientStock indicates a requested quantity exceeds
	// the available stock.
	ErrCodeInsufficientStock ErrorCode = "INSUFFICIENT_STOCK"

	// ErrCodeDuplicateCategory indicates the category name already exists.
	ErrCodeDuplicateCategory ErrorCode = "DUPLICATE_CATEGORY"

	// ErrCodeCategoryInUse indicates a category delete is blocked by
	// products still referencing it.
	ErrCodeCategoryInUse ErrorCode = "CATEGORY_IN_USE"

	// ErrCodeEmptyCart indicates checkout was attempted with no lines.
	ErrCodeEmptyCart ErrorCode = "EMPTY_CART"

	// ErrCodeInvalidTransition indicates a disallowed order status change.
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"

	// ErrCodeInvalidInput indicates a malformed argument (negative stock,
	// zero quantity, unknown payment method).
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrCodeInvalidCredentials indicates a failed admin login.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.ProductID != "":
		return fmt.Sprintf("%s: %s (product=%s)", e.Code, e.Message, e.ProductID)
	case e.OrderID != "":
		return fmt.Sprintf("%s: %s (order=%s)", e.Code, e.Message, e.OrderID)
	case e.Category != "":
		return fmt.Sprintf("%s: %s (category=%s)", e.Code, e.Message, e.Category)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf extracts the ErrorCode from err, or "" if it is not a shop error.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsNotFound reports whether err is a NOT_FOUND shop error.
func IsNotFound(err error) bool { return CodeOf(err) == ErrCodeNotFound }

// IsInsufficientStock reports whether err is an INSUFFICIENT_STOCK shop error.
func IsInsufficientStock(err error) bool { return CodeOf(err) == ErrCodeInsufficientStock }

// IsDuplicateCategory reports whether err is a DUPLICATE_CATEGORY shop error.
func IsDuplicateCategory(err error) bool { return CodeOf(err) == ErrCodeDuplicateCategory }

// IsCategoryInUse reports whether err is a CATEGORY_IN_USE shop error.
func IsCategoryInUse(err error) bool { return CodeOf(err) == ErrCodeCategoryInUse }

// IsEmptyCart reports whether err is an EMPTY_CART shop error.
func IsEmptyCart(err error) bool { return CodeOf(err) == ErrCodeEmptyCart }

// IsInvalidTransition reports whether err is an INVALID_TRANSITION shop error.
func IsInvalidTransition(err error) bool { return CodeOf(err) == ErrCodeInvalidTransition }

// NewNotFoundError creates a NOT_FOUND error for a product.
func NewNotFoundError(kind, id string) *Error {
	e := &Error{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("unknown %s", kind),
	}
	switch kind {
	case "product":
		e.ProductID = id
	case "order":
		e.OrderID = id
	case "category":
		e.Category = id
	default:
		e.Message = fmt.Sprintf("unknown %s %q", kind, id)
	}
	return e
}

// NewInsufficientStockError creates an INSUFFICIENT_STOCK error.
func NewInsufficientStockError(productID string, requested, available int) *Error {
	return &Error{
		Code:      ErrCodeInsufficientStock,
		Message:   fmt.Sprintf("requested %d, %d available", requested, available),
		ProductID: productID,
		Details: map[string]string{
			"requested": fmt.Sprintf("%d", requested),
			"available": fmt.Sprintf("%d", available),
		},
	}
}

// NewDuplicateCategoryError creates a DUPLICATE_CATEGORY error.
func NewDuplicateCategoryError(name string) *Error {
	return &Error{
		Code:     ErrCodeDuplicateCategory,
		Message:  "category already exists",
		Category: name,
	}
}

// NewCategoryInUseError creates a CATEGORY_IN_USE error.
func NewCategoryInUseError(name string, productCount int) *Error {
	return &Error{
		Code:     ErrCodeCategoryInUse,
		Message:  fmt.Sprintf("%d product(s) still reference this category", productCount),
		Category: name,
	}
}

// NewEmptyCartError creates an EMPTY_CART error.
func NewEmptyCartError() *Error {
	return &Error{
		Code:    ErrCodeEmptyCart,
		Message: "cart has no lines",
	}
}

// NewInvalidTransitionError creates an INVALID_TRANSITION error.
func NewInvalidTransitionError(orderID string, from, to OrderStatus) *Error {
	return &Error{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot move from %q to %q", from, to),
		OrderID: orderID,
		Details: map[string]string{
			"from": string(from),
			"to":   string(to),
		},
	}
}

// NewInvalidInputError creates an INVALID_INPUT error.
func NewInvalidInputError(message string) *Error {
	return &Error{Code: ErrCodeInvalidInput, Message: message}
}

// NewInvalidCredentialsError creates an INVALID_CREDENTIALS error.
func NewInvalidCredentialsError() *Error {
	return &Error{Code: ErrCodeInvalidCredentials, Message: "invalid admin credentials"}
}
