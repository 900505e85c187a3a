package suppliers

import (
	"context"

	"procura/internal/domain"
)

// Repository defines the interface for Supplier persistence.
type Repository interface {
	domain.EntityRepository[*Supplier]

	// FindByTaxID retrieves the supplier holding the given tax id.
	FindByTaxID(ctx context.Context, taxID string) (*Supplier, error)

	// SearchByName retrieves all suppliers whose name contains the fragment,
	// case-insensitively, ordered by name.
	SearchByName(ctx context.Context, fragment string) ([]*Supplier, error)
}
