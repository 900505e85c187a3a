// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"

	"procura/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Patch is a partial-update field set: column name -> new value.
// Only the fields explicitly provided by the caller appear in it.
type Patch = map[string]any

// EntityRepository defines CRUD operations for a persisted entity.
type EntityRepository[T Validatable] interface {
	// Create inserts a new entity and returns the stored record
	// (generated identifier and server-assigned defaults included).
	Create(ctx context.Context, entity T) (T, error)

	// GetByID retrieves entity by ID.
	GetByID(ctx context.Context, id id.ID) (T, error)

	// List retrieves all entities.
	List(ctx context.Context) ([]T, error)

	// UpdateFields performs a partial update touching only the columns in
	// patch, and returns the updated record.
	UpdateFields(ctx context.Context, id id.ID, patch Patch) (T, error)

	// Delete removes the entity.
	Delete(ctx context.Context, id id.ID) error

	// Exists checks if entity with given ID exists.
	Exists(ctx context.Context, id id.ID) (bool, error)
}

// --- Hooks ---

// Hook runs before an entity is created. It may mutate the entity
// (fill defaults) or veto the operation by returning an error.
type Hook[T any] func(ctx context.Context, entity T) error

// PatchHook runs before a partial update is applied. It receives the
// current stored record and the field set about to be written, and vetoes
// the operation by returning an error.
type PatchHook[T any] func(ctx context.Context, existing T, patch Patch) error

// HookRegistry stores lifecycle hooks for an entity type.
type HookRegistry[T any] struct {
	beforeCreate []Hook[T]
	beforePatch  []PatchHook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{}
}

// OnBeforeCreate registers a hook to run before create.
func (r *HookRegistry[T]) OnBeforeCreate(hook Hook[T]) {
	r.beforeCreate = append(r.beforeCreate, hook)
}

// OnBeforePatch registers a hook to run before a partial update.
func (r *HookRegistry[T]) OnBeforePatch(hook PatchHook[T]) {
	r.beforePatch = append(r.beforePatch, hook)
}

// RunBeforeCreate executes all before-create hooks.
func (r *HookRegistry[T]) RunBeforeCreate(ctx context.Context, entity T) error {
	for _, hook := range r.beforeCreate {
		if err := hook(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

// RunBeforePatch executes all before-patch hooks.
func (r *HookRegistry[T]) RunBeforePatch(ctx context.Context, existing T, patch Patch) error {
	for _, hook := range r.beforePatch {
		if err := hook(ctx, existing, patch); err != nil {
			return err
		}
	}
	return nil
}
