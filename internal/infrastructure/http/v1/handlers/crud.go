// Package handlers provides HTTP request handlers.
package handlers

import (
	"github.com/gin-gonic/gin"

	"procura/internal/core/apperror"
	"procura/internal/core/id"
	"procura/internal/domain"
)

// CrudHandler provides generic HTTP handlers for one entity collection.
// Updates are partial: the update DTO turns into a column patch containing
// only the fields the caller sent.
type CrudHandler[T domain.Validatable, CreateDTO any, UpdateDTO any] struct {
	*BaseHandler
	service *domain.CrudService[T]

	// Mapper functions
	mapCreateDTO func(dto CreateDTO) T
	mapPatchDTO  func(dto UpdateDTO) domain.Patch
	mapToDTO     func(entity T) any
}

// CrudHandlerConfig configures the generic handler.
type CrudHandlerConfig[T domain.Validatable, CreateDTO any, UpdateDTO any] struct {
	Service      *domain.CrudService[T]
	MapCreateDTO func(dto CreateDTO) T
	MapPatchDTO  func(dto UpdateDTO) domain.Patch
	MapToDTO     func(entity T) any
}

// NewCrudHandler creates a new generic CRUD handler.
func NewCrudHandler[T domain.Validatable, CreateDTO any, UpdateDTO any](
	base *BaseHandler,
	cfg CrudHandlerConfig[T, CreateDTO, UpdateDTO],
) *CrudHandler[T, CreateDTO, UpdateDTO] {
	return &CrudHandler[T, CreateDTO, UpdateDTO]{
		BaseHandler:  base,
		service:      cfg.Service,
		mapCreateDTO: cfg.MapCreateDTO,
		mapPatchDTO:  cfg.MapPatchDTO,
		mapToDTO:     cfg.MapToDTO,
	}
}

// List handles GET /{entity} - list all records.
func (h *CrudHandler[T, CreateDTO, UpdateDTO]) List(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.service.List(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result))
	for i, item := range result {
		items[i] = h.mapToDTO(item)
	}

	h.OK(c, items)
}

// Get handles GET /{entity}/:id - get single record.
func (h *CrudHandler[T, CreateDTO, UpdateDTO]) Get(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	entity, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, h.mapToDTO(entity))
}

// Create handles POST /{entity} - create new record.
// Responds 201 with the stored record, server-assigned fields included.
func (h *CrudHandler[T, CreateDTO, UpdateDTO]) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	entity := h.mapCreateDTO(req)

	created, err := h.service.Create(ctx, entity)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, h.mapToDTO(created))
}

// Update handles PUT /{entity}/:id - partial update.
// Responds 200 with the full record as stored after the update.
func (h *CrudHandler[T, CreateDTO, UpdateDTO]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req UpdateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(ctx, entityID, h.mapPatchDTO(req))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, h.mapToDTO(updated))
}

// Delete handles DELETE /{entity}/:id - physical removal.
func (h *CrudHandler[T, CreateDTO, UpdateDTO]) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, entityID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
