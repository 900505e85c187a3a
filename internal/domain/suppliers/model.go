// Package suppliers provides the supplier catalog for the store backend.
package suppliers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"procura/internal/core/apperror"
	"procura/internal/core/id"
	"procura/internal/core/types"
)

// Column names as stored, shared by the repository whitelist and the
// partial-update patch builders.
const (
	ColID             = "id"
	ColName           = "name"
	ColTaxID          = "tax_id"
	ColDescription    = "description"
	ColItemsPurchased = "items_purchased"
	ColItemsReturned  = "items_returned"
	ColItemsSold      = "items_sold"
	ColPurchaseCount  = "purchase_count"
	ColPurchasedValue = "purchased_value"
	ColReturnCount    = "return_count"
	ColReturnedValue  = "returned_value"
	ColSaleCount      = "sale_count"
	ColSoldValue      = "sold_value"
	ColRating         = "rating"
)

// MaxTaxIDLength bounds the business tax id.
const MaxTaxIDLength = 100

// ratingMax is the upper bound of the supplier rating scale.
var ratingMax = decimal.NewFromInt(5)

// Supplier represents a goods supplier of the store.
// Tax id is unique across all suppliers at all times.
type Supplier struct {
	ID id.ID `db:"id" json:"id"`

	// Name is the display name (required, non-empty)
	Name string `db:"name" json:"name"`

	// TaxID is the business tax identifier (required, unique)
	TaxID string `db:"tax_id" json:"taxId"`

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`

	// Trade counters, all non-negative
	ItemsPurchased int `db:"items_purchased" json:"itemsPurchased"`
	ItemsReturned  int `db:"items_returned" json:"itemsReturned"`
	ItemsSold      int `db:"items_sold" json:"itemsSold"`
	PurchaseCount  int `db:"purchase_count" json:"purchaseCount"`
	ReturnCount    int `db:"return_count" json:"returnCount"`
	SaleCount      int `db:"sale_count" json:"saleCount"`

	// Accumulated monetary totals, all non-negative
	PurchasedValue types.Money `db:"purchased_value" json:"purchasedValue"`
	ReturnedValue  types.Money `db:"returned_value" json:"returnedValue"`
	SoldValue      types.Money `db:"sold_value" json:"soldValue"`

	// Rating within [0, 5]
	Rating types.Money `db:"rating" json:"rating"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewSupplier creates a supplier with a generated id and required fields.
func NewSupplier(name, taxID string) *Supplier {
	return &Supplier{
		ID:    id.New(),
		Name:  name,
		TaxID: taxID,
	}
}

// Validate implements domain.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	if s.Name == "" {
		return apperror.NewValidation("name must not be empty").
			WithDetail("field", "name")
	}
	if s.TaxID == "" {
		return apperror.NewValidation("tax id must not be empty").
			WithDetail("field", "taxId")
	}
	if len(s.TaxID) > MaxTaxIDLength {
		return apperror.NewValidation("tax id too long").
			WithDetail("field", "taxId").
			WithDetail("max_length", MaxTaxIDLength)
	}

	counters := map[string]int{
		"itemsPurchased": s.ItemsPurchased,
		"itemsReturned":  s.ItemsReturned,
		"itemsSold":      s.ItemsSold,
		"purchaseCount":  s.PurchaseCount,
		"returnCount":    s.ReturnCount,
		"saleCount":      s.SaleCount,
	}
	for field, v := range counters {
		if v < 0 {
			return apperror.NewValidation("counter must not be negative").
				WithDetail("field", field).
				WithDetail("value", v)
		}
	}

	totals := map[string]types.Money{
		"purchasedValue": s.PurchasedValue,
		"returnedValue":  s.ReturnedValue,
		"soldValue":      s.SoldValue,
	}
	for field, v := range totals {
		if v.IsNegative() {
			return apperror.NewValidation("monetary total must not be negative").
				WithDetail("field", field).
				WithDetail("value", v.String())
		}
	}

	if err := ValidateRating(s.Rating); err != nil {
		return err
	}

	return nil
}

// ValidateRating checks the rating is within [0, 5].
// Shared with the partial-update path, where the rating arrives alone.
func ValidateRating(rating types.Money) error {
	if rating.IsNegative() || rating.GreaterThan(ratingMax) {
		return apperror.NewValidation("rating must be within [0, 5]").
			WithDetail("field", "rating").
			WithDetail("value", rating.String())
	}
	return nil
}
