package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"procura/internal/core/id"
	"procura/internal/domain"
	"procura/internal/domain/purchases"
)

// CreatePurchaseRequest carries the fields for recording a purchase.
// The purchase date defaults to the current UTC instant when omitted.
type CreatePurchaseRequest struct {
	SupplierID   string          `json:"supplierId" binding:"required,uuid"`
	Value        decimal.Decimal `json:"value" binding:"required"`
	Invoice      string          `json:"invoice" binding:"required"`
	PurchaseDate *time.Time      `json:"purchaseDate"`
	ReceivedDate *time.Time      `json:"receivedDate"`
	Destination  *string         `json:"destination"`
	Status       int             `json:"status" binding:"omitempty,min=0"`
}

// ToEntity maps the request onto a new purchase entity. The supplier id is
// already uuid-validated by binding.
func (r CreatePurchaseRequest) ToEntity() *purchases.Purchase {
	p := purchases.NewPurchase(id.MustParse(r.SupplierID), r.Value, r.Invoice)
	if r.PurchaseDate != nil {
		p.PurchaseDate = r.PurchaseDate.UTC()
	}
	if r.ReceivedDate != nil {
		received := r.ReceivedDate.UTC()
		p.ReceivedDate = &received
	}
	p.Destination = r.Destination
	p.Status = r.Status
	return p
}

// UpdatePurchaseRequest carries a partial update. Every field is optional;
// only fields present in the request body enter the patch. Sending
// receivedDate or destination as explicit null clears the stored value.
type UpdatePurchaseRequest struct {
	SupplierID   *string             `json:"supplierId" binding:"omitempty,uuid"`
	Value        *decimal.Decimal    `json:"value"`
	Invoice      *string             `json:"invoice"`
	PurchaseDate *time.Time          `json:"purchaseDate"`
	ReceivedDate Optional[time.Time] `json:"receivedDate"`
	Destination  Optional[string]    `json:"destination"`
	Status       *int                `json:"status"`
}

// Patch builds the column -> value set from the fields the caller sent.
func (r UpdatePurchaseRequest) Patch() domain.Patch {
	patch := domain.Patch{}
	if r.SupplierID != nil {
		patch[purchases.ColSupplierID] = id.MustParse(*r.SupplierID)
	}
	if r.Value != nil {
		patch[purchases.ColValue] = *r.Value
	}
	if r.Invoice != nil {
		patch[purchases.ColInvoice] = *r.Invoice
	}
	if r.PurchaseDate != nil {
		patch[purchases.ColPurchaseDate] = r.PurchaseDate.UTC()
	}
	if r.ReceivedDate.Present {
		if r.ReceivedDate.Valid {
			patch[purchases.ColReceivedDate] = r.ReceivedDate.Value.UTC()
		} else {
			patch[purchases.ColReceivedDate] = nil
		}
	}
	if r.Destination.Present {
		if r.Destination.Valid {
			patch[purchases.ColDestination] = r.Destination.Value
		} else {
			patch[purchases.ColDestination] = nil
		}
	}
	if r.Status != nil {
		patch[purchases.ColStatus] = *r.Status
	}
	return patch
}

// PurchaseResponse is the wire representation of a purchase.
type PurchaseResponse struct {
	ID           string          `json:"id"`
	SupplierID   string          `json:"supplierId"`
	Value        decimal.Decimal `json:"value"`
	Invoice      string          `json:"invoice"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	ReceivedDate *time.Time      `json:"receivedDate,omitempty"`
	Destination  *string         `json:"destination,omitempty"`
	Status       int             `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// FromPurchase creates PurchaseResponse from the entity.
func FromPurchase(p *purchases.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:           p.ID.String(),
		SupplierID:   p.SupplierID.String(),
		Value:        p.Value,
		Invoice:      p.Invoice,
		PurchaseDate: p.PurchaseDate,
		ReceivedDate: p.ReceivedDate,
		Destination:  p.Destination,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// FromPurchases maps a slice of entities to responses.
func FromPurchases(items []*purchases.Purchase) []PurchaseResponse {
	out := make([]PurchaseResponse, len(items))
	for i, p := range items {
		out[i] = FromPurchase(p)
	}
	return out
}
