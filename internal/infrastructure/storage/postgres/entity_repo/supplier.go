package entity_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"procura/internal/domain/suppliers"
	"procura/internal/infrastructure/storage/postgres"
)

// Compile-time check that SupplierRepo implements suppliers.Repository.
var _ suppliers.Repository = (*SupplierRepo)(nil)

// SupplierRepo is the PostgreSQL repository for the supplier catalog.
type SupplierRepo struct {
	*BaseEntityRepo[*suppliers.Supplier]
}

// NewSupplierRepo creates a supplier repository over the shared pool.
func NewSupplierRepo(txm *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{
		BaseEntityRepo: NewBaseEntityRepo(
			txm,
			"suppliers",
			suppliers.ColID,
			postgres.ExtractDBColumns[suppliers.Supplier](),
			func() *suppliers.Supplier { return &suppliers.Supplier{} },
		),
	}
}

// FindByTaxID retrieves the supplier holding the given tax id.
func (r *SupplierRepo) FindByTaxID(ctx context.Context, taxID string) (*suppliers.Supplier, error) {
	return r.FindOneBy(ctx, suppliers.ColTaxID, taxID)
}

// SearchByName retrieves suppliers whose name contains the fragment,
// case-insensitively, ordered by name.
func (r *SupplierRepo) SearchByName(ctx context.Context, fragment string) ([]*suppliers.Supplier, error) {
	var items []*suppliers.Supplier

	q := r.baseSelect().
		Where(squirrel.ILike{suppliers.ColName: "%" + fragment + "%"}).
		OrderBy(suppliers.ColName)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, postgres.TranslateError(err, "suppliers")
	}

	return items, nil
}
