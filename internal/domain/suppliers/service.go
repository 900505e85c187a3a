package suppliers

import (
	"context"

	"procura/internal/core/apperror"
	"procura/internal/core/id"
	"procura/internal/core/tx"
	"procura/internal/core/types"
	"procura/internal/domain"
)

// Service provides business logic for the supplier catalog.
// Composition with domain.CrudService supplies the CRUD operations;
// supplier-specific checks are registered as hooks.
type Service struct {
	*domain.CrudService[*Supplier]
	repo Repository
}

// NewService creates a new supplier service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCrudService(domain.CrudServiceConfig[*Supplier]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "supplier",
	})

	svc := &Service{
		CrudService: base,
		repo:        repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkTaxIDFree)
	base.Hooks().OnBeforePatch(svc.checkPatch)

	return svc
}

// checkTaxIDFree rejects creation when the tax id is already taken.
func (s *Service) checkTaxIDFree(ctx context.Context, sup *Supplier) error {
	taken, err := s.taxIDTaken(ctx, sup.TaxID, sup.ID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.NewDuplicate("supplier", "tax id", sup.TaxID)
	}
	return nil
}

// checkPatch validates the fields present in a partial update.
func (s *Service) checkPatch(ctx context.Context, existing *Supplier, patch domain.Patch) error {
	if v, ok := patch[ColName]; ok {
		if name, _ := v.(string); name == "" {
			return apperror.NewValidation("name must not be empty").
				WithDetail("field", "name")
		}
	}

	if v, ok := patch[ColTaxID]; ok {
		taxID, _ := v.(string)
		if taxID == "" {
			return apperror.NewValidation("tax id must not be empty").
				WithDetail("field", "taxId")
		}
		if len(taxID) > MaxTaxIDLength {
			return apperror.NewValidation("tax id too long").
				WithDetail("field", "taxId").
				WithDetail("max_length", MaxTaxIDLength)
		}
		taken, err := s.taxIDTaken(ctx, taxID, existing.ID)
		if err != nil {
			return err
		}
		if taken {
			return apperror.NewDuplicate("supplier", "tax id", taxID)
		}
	}

	for _, col := range []string{ColItemsPurchased, ColItemsReturned, ColItemsSold, ColPurchaseCount, ColReturnCount, ColSaleCount} {
		if v, ok := patch[col]; ok {
			if n, _ := v.(int); n < 0 {
				return apperror.NewValidation("counter must not be negative").
					WithDetail("field", col).
					WithDetail("value", n)
			}
		}
	}

	for _, col := range []string{ColPurchasedValue, ColReturnedValue, ColSoldValue} {
		if v, ok := patch[col]; ok {
			if m, isMoney := v.(types.Money); isMoney && m.IsNegative() {
				return apperror.NewValidation("monetary total must not be negative").
					WithDetail("field", col).
					WithDetail("value", m.String())
			}
		}
	}

	if v, ok := patch[ColRating]; ok {
		if m, isMoney := v.(types.Money); isMoney {
			if err := ValidateRating(m); err != nil {
				return err
			}
		}
	}

	return nil
}

// taxIDTaken reports whether another supplier already holds the tax id.
func (s *Service) taxIDTaken(ctx context.Context, taxID string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByTaxID(ctx, taxID)
	if err != nil {
		// Not found means free; other errors must propagate.
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return existing.ID != excludeID, nil
}

// --- Entity-specific operations ---

// SearchByName retrieves suppliers whose name contains the fragment
// (case-insensitive substring match). The result may be empty.
func (s *Service) SearchByName(ctx context.Context, fragment string) ([]*Supplier, error) {
	return s.repo.SearchByName(ctx, fragment)
}

// FindByTaxID retrieves a supplier by exact tax id.
func (s *Service) FindByTaxID(ctx context.Context, taxID string) (*Supplier, error) {
	sup, err := s.repo.FindByTaxID(ctx, taxID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("supplier", taxID)
		}
		return nil, err
	}
	return sup, nil
}
