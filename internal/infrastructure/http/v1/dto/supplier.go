// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"procura/internal/domain"
	"procura/internal/domain/suppliers"
)

// CreateSupplierRequest carries the fields for creating a supplier.
// Omitted counters and totals default to zero.
type CreateSupplierRequest struct {
	Name           string          `json:"name" binding:"required"`
	TaxID          string          `json:"taxId" binding:"required,max=100"`
	Description    *string         `json:"description"`
	ItemsPurchased int             `json:"itemsPurchased" binding:"omitempty,min=0"`
	ItemsReturned  int             `json:"itemsReturned" binding:"omitempty,min=0"`
	ItemsSold      int             `json:"itemsSold" binding:"omitempty,min=0"`
	PurchaseCount  int             `json:"purchaseCount" binding:"omitempty,min=0"`
	ReturnCount    int             `json:"returnCount" binding:"omitempty,min=0"`
	SaleCount      int             `json:"saleCount" binding:"omitempty,min=0"`
	PurchasedValue decimal.Decimal `json:"purchasedValue"`
	ReturnedValue  decimal.Decimal `json:"returnedValue"`
	SoldValue      decimal.Decimal `json:"soldValue"`
	Rating         decimal.Decimal `json:"rating"`
}

// ToEntity maps the request onto a new supplier entity.
func (r CreateSupplierRequest) ToEntity() *suppliers.Supplier {
	sup := suppliers.NewSupplier(r.Name, r.TaxID)
	sup.Description = r.Description
	sup.ItemsPurchased = r.ItemsPurchased
	sup.ItemsReturned = r.ItemsReturned
	sup.ItemsSold = r.ItemsSold
	sup.PurchaseCount = r.PurchaseCount
	sup.ReturnCount = r.ReturnCount
	sup.SaleCount = r.SaleCount
	sup.PurchasedValue = r.PurchasedValue
	sup.ReturnedValue = r.ReturnedValue
	sup.SoldValue = r.SoldValue
	sup.Rating = r.Rating
	return sup
}

// UpdateSupplierRequest carries a partial update. Every field is optional;
// only fields present in the request body enter the patch. Sending
// description as explicit null clears it.
type UpdateSupplierRequest struct {
	Name           *string          `json:"name"`
	TaxID          *string          `json:"taxId" binding:"omitempty,max=100"`
	Description    Optional[string] `json:"description"`
	ItemsPurchased *int             `json:"itemsPurchased"`
	ItemsReturned  *int             `json:"itemsReturned"`
	ItemsSold      *int             `json:"itemsSold"`
	PurchaseCount  *int             `json:"purchaseCount"`
	ReturnCount    *int             `json:"returnCount"`
	SaleCount      *int             `json:"saleCount"`
	PurchasedValue *decimal.Decimal `json:"purchasedValue"`
	ReturnedValue  *decimal.Decimal `json:"returnedValue"`
	SoldValue      *decimal.Decimal `json:"soldValue"`
	Rating         *decimal.Decimal `json:"rating"`
}

// Patch builds the column -> value set from the fields the caller sent.
// Omitted fields never appear, so they keep their stored values.
func (r UpdateSupplierRequest) Patch() domain.Patch {
	patch := domain.Patch{}
	if r.Name != nil {
		patch[suppliers.ColName] = *r.Name
	}
	if r.TaxID != nil {
		patch[suppliers.ColTaxID] = *r.TaxID
	}
	if r.Description.Present {
		if r.Description.Valid {
			patch[suppliers.ColDescription] = r.Description.Value
		} else {
			patch[suppliers.ColDescription] = nil
		}
	}
	if r.ItemsPurchased != nil {
		patch[suppliers.ColItemsPurchased] = *r.ItemsPurchased
	}
	if r.ItemsReturned != nil {
		patch[suppliers.ColItemsReturned] = *r.ItemsReturned
	}
	if r.ItemsSold != nil {
		patch[suppliers.ColItemsSold] = *r.ItemsSold
	}
	if r.PurchaseCount != nil {
		patch[suppliers.ColPurchaseCount] = *r.PurchaseCount
	}
	if r.ReturnCount != nil {
		patch[suppliers.ColReturnCount] = *r.ReturnCount
	}
	if r.SaleCount != nil {
		patch[suppliers.ColSaleCount] = *r.SaleCount
	}
	if r.PurchasedValue != nil {
		patch[suppliers.ColPurchasedValue] = *r.PurchasedValue
	}
	if r.ReturnedValue != nil {
		patch[suppliers.ColReturnedValue] = *r.ReturnedValue
	}
	if r.SoldValue != nil {
		patch[suppliers.ColSoldValue] = *r.SoldValue
	}
	if r.Rating != nil {
		patch[suppliers.ColRating] = *r.Rating
	}
	return patch
}

// SupplierResponse is the wire representation of a supplier.
type SupplierResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	TaxID          string          `json:"taxId"`
	Description    *string         `json:"description,omitempty"`
	ItemsPurchased int             `json:"itemsPurchased"`
	ItemsReturned  int             `json:"itemsReturned"`
	ItemsSold      int             `json:"itemsSold"`
	PurchaseCount  int             `json:"purchaseCount"`
	ReturnCount    int             `json:"returnCount"`
	SaleCount      int             `json:"saleCount"`
	PurchasedValue decimal.Decimal `json:"purchasedValue"`
	ReturnedValue  decimal.Decimal `json:"returnedValue"`
	SoldValue      decimal.Decimal `json:"soldValue"`
	Rating         decimal.Decimal `json:"rating"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// FromSupplier creates SupplierResponse from the entity.
func FromSupplier(s *suppliers.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:             s.ID.String(),
		Name:           s.Name,
		TaxID:          s.TaxID,
		Description:    s.Description,
		ItemsPurchased: s.ItemsPurchased,
		ItemsReturned:  s.ItemsReturned,
		ItemsSold:      s.ItemsSold,
		PurchaseCount:  s.PurchaseCount,
		ReturnCount:    s.ReturnCount,
		SaleCount:      s.SaleCount,
		PurchasedValue: s.PurchasedValue,
		ReturnedValue:  s.ReturnedValue,
		SoldValue:      s.SoldValue,
		Rating:         s.Rating,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// FromSuppliers maps a slice of entities to responses.
func FromSuppliers(items []*suppliers.Supplier) []SupplierResponse {
	out := make([]SupplierResponse, len(items))
	for i, s := range items {
		out[i] = FromSupplier(s)
	}
	return out
}
