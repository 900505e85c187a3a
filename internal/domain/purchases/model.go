// Package purchases provides supplier purchase records for the store backend.
package purchases

import (
	"context"
	"time"

	"procura/internal/core/apperror"
	"procura/internal/core/id"
	"procura/internal/core/types"
)

// Column names as stored, shared by the repository whitelist and the
// partial-update patch builders.
const (
	ColID           = "id"
	ColSupplierID   = "supplier_id"
	ColValue        = "value"
	ColInvoice      = "invoice"
	ColPurchaseDate = "purchase_date"
	ColReceivedDate = "received_date"
	ColDestination  = "destination"
	ColStatus       = "status"
)

// Purchase represents one purchase made from a supplier.
//
// The referenced supplier must exist when the purchase is created; the
// reference is not re-validated afterward if the supplier is removed.
type Purchase struct {
	ID id.ID `db:"id" json:"id"`

	// SupplierID references the supplier the purchase was made from
	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// Value is the purchase total, strictly positive
	Value types.Money `db:"value" json:"value"`

	// Invoice is the invoice reference (required, non-empty)
	Invoice string `db:"invoice" json:"invoice"`

	// PurchaseDate is when the purchase was placed (UTC)
	PurchaseDate time.Time `db:"purchase_date" json:"purchaseDate"`

	// ReceivedDate is when the goods arrived; never earlier than PurchaseDate
	ReceivedDate *time.Time `db:"received_date" json:"receivedDate,omitempty"`

	// Destination is where the goods were shipped
	Destination *string `db:"destination" json:"destination,omitempty"`

	// Status is a non-negative processing state code
	Status int `db:"status" json:"status"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewPurchase creates a purchase with a generated id and required fields.
func NewPurchase(supplierID id.ID, value types.Money, invoice string) *Purchase {
	return &Purchase{
		ID:         id.New(),
		SupplierID: supplierID,
		Value:      value,
		Invoice:    invoice,
	}
}

// Validate implements domain.Validatable.
func (p *Purchase) Validate(ctx context.Context) error {
	if id.IsNil(p.SupplierID) {
		return apperror.NewValidation("supplier id is required").
			WithDetail("field", "supplierId")
	}
	if !p.Value.IsPositive() {
		return apperror.NewValidation("purchase value must be positive").
			WithDetail("field", "value").
			WithDetail("value", p.Value.String())
	}
	if p.Invoice == "" {
		return apperror.NewValidation("invoice reference must not be empty").
			WithDetail("field", "invoice")
	}
	if p.Status < 0 {
		return apperror.NewValidation("status must not be negative").
			WithDetail("field", "status").
			WithDetail("value", p.Status)
	}

	if p.ReceivedDate != nil && !p.PurchaseDate.IsZero() {
		if err := ValidateDateOrder(p.PurchaseDate, *p.ReceivedDate); err != nil {
			return err
		}
	}

	return nil
}

// ValidateDateOrder checks that received is not earlier than purchased.
// Equal instants are allowed.
func ValidateDateOrder(purchased, received time.Time) error {
	if received.Before(purchased) {
		return apperror.NewDateOrder("received date must not be earlier than purchase date").
			WithDetail("purchaseDate", purchased).
			WithDetail("receivedDate", received)
	}
	return nil
}
