package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go-shop-admin/internal/dashboard"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/tabular"
	"go-shop-admin/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any, meta *model.Meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	var validationErr *tabular.ValidationError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	} else if errors.Is(err, model.ErrUserNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "User not found"
	} else if errors.Is(err, model.ErrUserAlreadyExists) {
		status = http.StatusConflict
		body.Code = "ALREADY_EXISTS"
		body.Message = "User already exists"
	} else if errors.Is(err, model.ErrInvalidCredentials) {
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Invalid credentials"
	} else if errors.Is(err, model.ErrUnauthorized) {
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Authentication required"
	} else if errors.Is(err, model.ErrForbidden) {
		status = http.StatusForbidden
		body.Code = "FORBIDDEN"
		body.Message = "Access denied"
	} else if errors.Is(err, model.ErrTokenNotFound) || errors.Is(err, model.ErrTokenExpired) {
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Invalid or expired token"
	} else if errors.Is(err, model.ErrProductNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Product not found"
	} else if errors.Is(err, model.ErrInsufficientStock) {
		status = http.StatusConflict
		body.Code = "INSUFFICIENT_STOCK"
		body.Message = "Not enough stock for the requested quantity"
	} else if errors.Is(err, model.ErrCartItemNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Cart item not found"
	} else if errors.Is(err, model.ErrWishlistDuplicate) {
		status = http.StatusConflict
		body.Code = "ALREADY_EXISTS"
		body.Message = "Product is already on the wishlist"
	} else if errors.Is(err, model.ErrWishlistItemMissing) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Wishlist item not found"
	} else if errors.Is(err, model.ErrContactNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Contact submission not found"
	} else if errors.As(err, &validationErr) {
		status = http.StatusUnprocessableEntity
		body.Code = "VALIDATION_FAILED"
		body.Message = validationErr.Error()
	} else if errors.Is(err, dashboard.ErrOperationNotSupported) {
		status = http.StatusBadRequest
		body.Code = "OPERATION_NOT_SUPPORTED"
		body.Message = "Operation not supported for this tab"
	} else if errors.Is(err, model.ErrInvalidInput) {
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Invalid input"
	} else {
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}
