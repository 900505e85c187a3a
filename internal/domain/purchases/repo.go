package purchases

import (
	"context"

	"procura/internal/core/id"
	"procura/internal/domain"
)

// Repository defines the interface for Purchase persistence.
type Repository interface {
	domain.EntityRepository[*Purchase]

	// ListBySupplier retrieves all purchases made from the given supplier,
	// newest purchase first.
	ListBySupplier(ctx context.Context, supplierID id.ID) ([]*Purchase, error)

	// FindByInvoice retrieves the purchase carrying the given invoice reference.
	FindByInvoice(ctx context.Context, invoice string) (*Purchase, error)
}

// SupplierDirectory is the view of the supplier catalog the purchase
// service needs: existence checks for referential validation.
type SupplierDirectory interface {
	Exists(ctx context.Context, id id.ID) (bool, error)
}
