package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestRejectionReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "invalid customer", err: ErrInvalidCustomer, want: ReasonInvalidCustomer},
		{name: "items required", err: ErrItemsRequired, want: ReasonItemsRequired},
		{name: "invalid quantity", err: ErrInvalidQuantity, want: ReasonInvalidQuantity},
		{name: "wrapped invalid product", err: fmt.Errorf("%w: unknown ids [p-9]", ErrInvalidProduct), want: ReasonInvalidProduct},
		{name: "insufficient stock", err: ErrInsufficientStock, want: ReasonInsufficientStock},
		{name: "infrastructure error", err: errors.New("connection refused"), want: ReasonInternal},
		{name: "nil error", err: nil, want: ReasonInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RejectionReason(tt.err); got != tt.want {
				t.Errorf("RejectionReason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(errors.Join(ErrInsufficientStock, errors.New("product p-1"))) {
		t.Fatal("joined insufficient stock must be a validation error")
	}
	if IsValidationError(ErrOrderNotFound) {
		t.Fatal("order not found is not a validation error")
	}
}

func TestIsNotFoundAndAlreadyExists(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		notFound      bool
		alreadyExists bool
	}{
		{name: "order not found", err: ErrOrderNotFound, notFound: true},
		{name: "wrapped product not found", err: fmt.Errorf("%w: p-1", ErrProductNotFound), notFound: true},
		{name: "customer not found", err: ErrCustomerNotFound, notFound: true},
		{name: "duplicate email", err: ErrCustomerAlreadyExists, alreadyExists: true},
		{name: "duplicate product", err: ErrProductAlreadyExists, alreadyExists: true},
		{name: "duplicate order", err: ErrOrderAlreadyExists, alreadyExists: true},
		{name: "other", err: ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.notFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.notFound)
			}
			if got := IsAlreadyExists(tt.err); got != tt.alreadyExists {
				t.Errorf("IsAlreadyExists() = %v, want %v", got, tt.alreadyExists)
			}
		})
	}
}

func TestIsInvalidInput(t *testing.T) {
	if !IsInvalidInput(errors.Join(ErrCustomerNameRequired, ErrCustomerEmailRequired)) {
		t.Fatal("joined customer validation errors must be invalid input")
	}
	if !IsInvalidInput(ErrProductQuantityNegative) {
		t.Fatal("negative product quantity must be invalid input")
	}
	if IsInvalidInput(ErrInsufficientStock) {
		t.Fatal("insufficient stock is an order rejection, not invalid input")
	}
}
