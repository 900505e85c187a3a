package handlers

import (
	"github.com/gin-gonic/gin"

	"procura/internal/core/apperror"
	"procura/internal/domain"
	"procura/internal/domain/suppliers"
	"procura/internal/infrastructure/http/v1/dto"
)

// SupplierHandler serves the supplier catalog endpoints.
type SupplierHandler struct {
	*CrudHandler[*suppliers.Supplier, dto.CreateSupplierRequest, dto.UpdateSupplierRequest]
	service *suppliers.Service
}

// NewSupplierHandler creates a new supplier handler.
func NewSupplierHandler(base *BaseHandler, service *suppliers.Service) *SupplierHandler {
	crud := NewCrudHandler(base, CrudHandlerConfig[*suppliers.Supplier, dto.CreateSupplierRequest, dto.UpdateSupplierRequest]{
		Service: service.CrudService,
		MapCreateDTO: func(req dto.CreateSupplierRequest) *suppliers.Supplier {
			return req.ToEntity()
		},
		MapPatchDTO: func(req dto.UpdateSupplierRequest) domain.Patch {
			return req.Patch()
		},
		MapToDTO: func(s *suppliers.Supplier) any {
			return dto.FromSupplier(s)
		},
	})

	return &SupplierHandler{
		CrudHandler: crud,
		service:     service,
	}
}

// SearchByName handles GET /suppliers/search/name?name=fragment.
// Matches case-insensitively on name substring; the result may be empty.
func (h *SupplierHandler) SearchByName(c *gin.Context) {
	ctx := c.Request.Context()

	fragment := c.Query("name")
	if fragment == "" {
		h.Error(c, apperror.NewValidation("name query parameter is required"))
		return
	}

	items, err := h.service.SearchByName(ctx, fragment)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSuppliers(items))
}

// SearchByTaxID handles GET /suppliers/search/taxid?taxId=value.
// Tax ids are unique, so this yields a single record or 404.
func (h *SupplierHandler) SearchByTaxID(c *gin.Context) {
	ctx := c.Request.Context()

	taxID := c.Query("taxId")
	if taxID == "" {
		h.Error(c, apperror.NewValidation("taxId query parameter is required"))
		return
	}

	sup, err := h.service.FindByTaxID(ctx, taxID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSupplier(sup))
}
