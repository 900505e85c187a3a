package purchases

import (
	"context"
	"time"

	"procura/internal/core/apperror"
	"procura/internal/core/id"
	"procura/internal/core/tx"
	"procura/internal/core/types"
	"procura/internal/domain"
)

// Service provides business logic for supplier purchases.
// Composition with domain.CrudService supplies the CRUD operations;
// purchase-specific checks are registered as hooks.
type Service struct {
	*domain.CrudService[*Purchase]
	repo      Repository
	suppliers SupplierDirectory
}

// NewService creates a new purchase service.
func NewService(repo Repository, suppliers SupplierDirectory, txManager tx.Manager) *Service {
	base := domain.NewCrudService(domain.CrudServiceConfig[*Purchase]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "purchase",
	})

	svc := &Service{
		CrudService: base,
		repo:        repo,
		suppliers:   suppliers,
	}

	base.Hooks().OnBeforeCreate(svc.fillDefaults)
	base.Hooks().OnBeforeCreate(svc.checkSupplierExists)
	base.Hooks().OnBeforeCreate(svc.checkInvoiceFree)
	base.Hooks().OnBeforePatch(svc.checkPatch)

	return svc
}

// fillDefaults assigns the purchase date when the caller omitted it.
func (s *Service) fillDefaults(ctx context.Context, p *Purchase) error {
	if p.PurchaseDate.IsZero() {
		p.PurchaseDate = time.Now().UTC()
		if p.ReceivedDate != nil {
			return ValidateDateOrder(p.PurchaseDate, *p.ReceivedDate)
		}
	}
	return nil
}

// checkSupplierExists rejects purchases referencing an absent supplier.
func (s *Service) checkSupplierExists(ctx context.Context, p *Purchase) error {
	exists, err := s.suppliers.Exists(ctx, p.SupplierID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewForeignKey("supplier", p.SupplierID.String())
	}
	return nil
}

// checkInvoiceFree rejects a second purchase carrying the same invoice.
func (s *Service) checkInvoiceFree(ctx context.Context, p *Purchase) error {
	taken, err := s.invoiceTaken(ctx, p.Invoice, p.ID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.NewDuplicate("purchase", "invoice", p.Invoice)
	}
	return nil
}

// checkPatch validates the fields present in a partial update against the
// merged state of the record.
func (s *Service) checkPatch(ctx context.Context, existing *Purchase, patch domain.Patch) error {
	if v, ok := patch[ColSupplierID]; ok {
		supplierID, isID := v.(id.ID)
		if !isID || id.IsNil(supplierID) {
			return apperror.NewValidation("supplier id is required").
				WithDetail("field", "supplierId")
		}
		exists, err := s.suppliers.Exists(ctx, supplierID)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.NewForeignKey("supplier", supplierID.String())
		}
	}

	if v, ok := patch[ColValue]; ok {
		if m, isMoney := v.(types.Money); isMoney && !m.IsPositive() {
			return apperror.NewValidation("purchase value must be positive").
				WithDetail("field", "value").
				WithDetail("value", m.String())
		}
	}

	if v, ok := patch[ColInvoice]; ok {
		invoice, _ := v.(string)
		if invoice == "" {
			return apperror.NewValidation("invoice reference must not be empty").
				WithDetail("field", "invoice")
		}
		taken, err := s.invoiceTaken(ctx, invoice, existing.ID)
		if err != nil {
			return err
		}
		if taken {
			return apperror.NewDuplicate("purchase", "invoice", invoice)
		}
	}

	if v, ok := patch[ColStatus]; ok {
		if n, _ := v.(int); n < 0 {
			return apperror.NewValidation("status must not be negative").
				WithDetail("field", "status").
				WithDetail("value", n)
		}
	}

	// Date ordering holds for the record as it will be stored: patched
	// values where present, stored values otherwise.
	purchased := existing.PurchaseDate
	if v, ok := patch[ColPurchaseDate]; ok {
		if t, isTime := v.(time.Time); isTime {
			purchased = t
		}
	}
	received := existing.ReceivedDate
	if v, ok := patch[ColReceivedDate]; ok {
		if t, isTime := v.(time.Time); isTime {
			received = &t
		} else {
			// Explicit null clears the received date.
			received = nil
		}
	}
	if received != nil && !purchased.IsZero() {
		if err := ValidateDateOrder(purchased, *received); err != nil {
			return err
		}
	}

	return nil
}

// invoiceTaken reports whether another purchase already carries the invoice.
func (s *Service) invoiceTaken(ctx context.Context, invoice string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByInvoice(ctx, invoice)
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

// ListBySupplier retrieves all purchases made from the supplier, newest
// first. The result may be empty; an unknown supplier id yields an empty
// sequence, not an error.
func (s *Service) ListBySupplier(ctx context.Context, supplierID id.ID) ([]*Purchase, error) {
	return s.repo.ListBySupplier(ctx, supplierID)
}
