package entity_repo

import (
	"context"

	"procura/internal/core/id"
	"procura/internal/domain/purchases"
	"procura/internal/infrastructure/storage/postgres"
)

// Compile-time check that PurchaseRepo implements purchases.Repository.
var _ purchases.Repository = (*PurchaseRepo)(nil)

// PurchaseRepo is the PostgreSQL repository for supplier purchases.
type PurchaseRepo struct {
	*BaseEntityRepo[*purchases.Purchase]
}

// NewPurchaseRepo creates a purchase repository over the shared pool.
func NewPurchaseRepo(txm *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		BaseEntityRepo: NewBaseEntityRepo(
			txm,
			"supplier_purchases",
			purchases.ColID,
			postgres.ExtractDBColumns[purchases.Purchase](),
			func() *purchases.Purchase { return &purchases.Purchase{} },
		),
	}
}

// ListBySupplier retrieves all purchases made from the supplier, newest
// purchase first.
func (r *PurchaseRepo) ListBySupplier(ctx context.Context, supplierID id.ID) ([]*purchases.Purchase, error) {
	return r.FindManyBy(ctx, purchases.ColSupplierID, supplierID, "purchase_date DESC, id DESC")
}

// FindByInvoice retrieves the purchase carrying the given invoice reference.
func (r *PurchaseRepo) FindByInvoice(ctx context.Context, invoice string) (*purchases.Purchase, error) {
	return r.FindOneBy(ctx, purchases.ColInvoice, invoice)
}
