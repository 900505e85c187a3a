package handlers

import (
	"github.com/gin-gonic/gin"

	"procura/internal/core/apperror"
	"procura/internal/core/id"
	"procura/internal/domain"
	"procura/internal/domain/purchases"
	"procura/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler serves the supplier purchase endpoints.
type PurchaseHandler struct {
	*CrudHandler[*purchases.Purchase, dto.CreatePurchaseRequest, dto.UpdatePurchaseRequest]
	service *purchases.Service
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(base *BaseHandler, service *purchases.Service) *PurchaseHandler {
	crud := NewCrudHandler(base, CrudHandlerConfig[*purchases.Purchase, dto.CreatePurchaseRequest, dto.UpdatePurchaseRequest]{
		Service: service.CrudService,
		MapCreateDTO: func(req dto.CreatePurchaseRequest) *purchases.Purchase {
			return req.ToEntity()
		},
		MapPatchDTO: func(req dto.UpdatePurchaseRequest) domain.Patch {
			return req.Patch()
		},
		MapToDTO: func(p *purchases.Purchase) any {
			return dto.FromPurchase(p)
		},
	})

	return &PurchaseHandler{
		CrudHandler: crud,
		service:     service,
	}
}

// ListBySupplier handles GET /purchases/supplier/:supplierId.
// An unknown supplier id yields an empty sequence, not 404.
func (h *PurchaseHandler) ListBySupplier(c *gin.Context) {
	ctx := c.Request.Context()

	supplierID, err := id.Parse(c.Param("supplierId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid supplier id format"))
		return
	}

	items, err := h.service.ListBySupplier(ctx, supplierID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPurchases(items))
}
