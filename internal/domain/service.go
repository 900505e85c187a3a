// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"

	"procura/internal/core/apperror"
	"procura/internal/core/id"
	"procura/internal/core/tx"
	"procura/pkg/logger"
)

// CrudService provides generic business logic for persisted entities.
// Entity-specific services embed it and register hooks for their checks.
//
// Every mutation runs inside a transaction managed by tx.Manager; any error
// raised mid-transaction rolls back before propagating, so no partial write
// is ever visible to subsequent reads. Validation errors are raised before
// the first store call.
type CrudService[T Validatable] struct {
	repo       EntityRepository[T]
	txManager  tx.Manager
	hooks      *HookRegistry[T]
	entityName string
}

// CrudServiceConfig configures the generic service.
type CrudServiceConfig[T Validatable] struct {
	Repo       EntityRepository[T]
	TxManager  tx.Manager
	EntityName string
}

// NewCrudService creates a new generic CRUD service.
func NewCrudService[T Validatable](cfg CrudServiceConfig[T]) *CrudService[T] {
	return &CrudService[T]{
		repo:       cfg.Repo,
		txManager:  cfg.TxManager,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *CrudService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

func (s *CrudService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	// If entity already returns structured AppError, keep it.
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *CrudService[T]) normalizeErr(err error, entityID any) error {
	if err == nil {
		return nil
	}
	// Map repository not-found (reported under the table name) to the
	// service's entity name.
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, entityID)
	}
	if appErr, ok := apperror.AsAppError(err); ok {
		return appErr.WithDetail("entity", s.entityName)
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", entityID)
}

// Create validates the entity, runs before-create hooks, then inserts
// inside a transaction. Returns the stored record.
func (s *CrudService[T]) Create(ctx context.Context, entity T) (T, error) {
	var created T

	if err := entity.Validate(ctx); err != nil {
		return created, s.normalizeValidationErr(err)
	}

	if err := s.hooks.RunBeforeCreate(ctx, entity); err != nil {
		return created, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repo.Create(ctx, entity)
		return err
	})
	if err != nil {
		logger.Error(ctx, "create failed", "entity", s.entityName, "error", err)
		return created, s.normalizeErr(err, nil)
	}

	logger.Info(ctx, "entity created", "entity", s.entityName)
	return created, nil
}

// GetByID retrieves entity by ID.
func (s *CrudService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	entity, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return entity, s.normalizeErr(err, entityID.String())
	}
	return entity, nil
}

// List retrieves all entities. Each call produces a fresh snapshot.
func (s *CrudService[T]) List(ctx context.Context) ([]T, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.normalizeErr(err, nil)
	}
	return items, nil
}

// Update applies a partial update: the existing record is loaded inside the
// transaction, before-patch hooks check the merged state, then only the
// supplied columns are written. An empty patch returns the record unchanged.
func (s *CrudService[T]) Update(ctx context.Context, entityID id.ID, patch Patch) (T, error) {
	var updated T

	if len(patch) == 0 {
		return s.GetByID(ctx, entityID)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, entityID)
		if err != nil {
			return err
		}

		if err := s.hooks.RunBeforePatch(ctx, existing, patch); err != nil {
			return err
		}

		updated, err = s.repo.UpdateFields(ctx, entityID, patch)
		return err
	})
	if err != nil {
		logger.Error(ctx, "update failed", "entity", s.entityName, "id", entityID.String(), "error", err)
		return updated, s.normalizeErr(err, entityID.String())
	}

	logger.Info(ctx, "entity updated", "entity", s.entityName, "id", entityID.String())
	return updated, nil
}

// Delete removes the entity inside a transaction.
func (s *CrudService[T]) Delete(ctx context.Context, entityID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, entityID)
	})
	if err != nil {
		logger.Error(ctx, "delete failed", "entity", s.entityName, "id", entityID.String(), "error", err)
		return s.normalizeErr(err, entityID.String())
	}

	logger.Info(ctx, "entity deleted", "entity", s.entityName, "id", entityID.String())
	return nil
}
