// Package entity_repo provides PostgreSQL implementations for entity repositories.
package entity_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"procura/internal/core/apperror"
	"procura/internal/core/id"
	"procura/internal/infrastructure/storage/postgres"
)

// serverManagedCols are assigned by the store, never by callers.
// created_at/updated_at come from column defaults on INSERT; updated_at is
// refreshed by the repository itself on UPDATE.
var serverManagedCols = map[string]bool{
	"created_at": true,
	"updated_at": true,
}

// BaseEntityRepo provides common CRUD operations over one table.
// Embed this in specific entity repositories.
//
// Parameterized by table name, id column and the column whitelist; every
// statement is built with squirrel and bound parameters. Values are never
// interpolated into SQL text.
type BaseEntityRepo[T any] struct {
	txm        *postgres.TxManager
	tableName  string
	idColumn   string
	selectCols []string
	newFn      func() T
}

// NewBaseEntityRepo creates a new base entity repository.
func NewBaseEntityRepo[T any](
	txm *postgres.TxManager,
	tableName string,
	idColumn string,
	selectCols []string,
	newFn func() T,
) *BaseEntityRepo[T] {
	return &BaseEntityRepo[T]{
		txm:        txm,
		tableName:  tableName,
		idColumn:   idColumn,
		selectCols: selectCols,
		newFn:      newFn,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseEntityRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// returning is the RETURNING clause shared by INSERT and UPDATE, so callers
// always get the stored row back (generated id, server defaults included).
func (r *BaseEntityRepo[T]) returning() string {
	return "RETURNING " + strings.Join(r.selectCols, ", ")
}

// insertMap extracts db-tagged fields from the entity, restricted to the
// column whitelist minus server-managed columns.
func (r *BaseEntityRepo[T]) insertMap(entity T) (map[string]any, error) {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return nil, fmt.Errorf("no db tags found in entity")
	}

	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if serverManagedCols[col] {
			continue
		}
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}
	return filtered, nil
}

// Create inserts a new entity and returns the stored row.
func (r *BaseEntityRepo[T]) Create(ctx context.Context, entity T) (T, error) {
	created := r.newFn()

	data, err := r.insertMap(entity)
	if err != nil {
		return created, err
	}

	sql, args, err := r.buildInsert(data)
	if err != nil {
		return created, fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, created, sql, args...); err != nil {
		return created, postgres.TranslateError(err, r.tableName)
	}

	return created, nil
}

// buildInsert renders the INSERT statement. SetMap sorts columns, so the
// output is deterministic for a given field set.
func (r *BaseEntityRepo[T]) buildInsert(data map[string]any) (string, []any, error) {
	return r.Builder().
		Insert(r.tableName).
		SetMap(data).
		Suffix(r.returning()).
		ToSql()
}

// baseSelect creates a SELECT builder over the column whitelist.
func (r *BaseEntityRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

// GetByID retrieves entity by ID.
func (r *BaseEntityRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	entity := r.newFn()

	q := r.baseSelect().
		Where(squirrel.Eq{r.idColumn: entityID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, entityID.String())
		}
		return entity, postgres.TranslateError(err, r.tableName)
	}

	return entity, nil
}

// List retrieves all rows ordered by the id column. UUIDv7 ids are
// time-ordered, so this yields creation order.
func (r *BaseEntityRepo[T]) List(ctx context.Context) ([]T, error) {
	var items []T

	q := r.baseSelect().OrderBy(r.idColumn)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, postgres.TranslateError(err, r.tableName)
	}

	return items, nil
}

// UpdateFields performs a partial update: only the columns present in patch
// appear in the SET clause, so omitted fields keep their stored values.
// The repository additionally refreshes updated_at.
func (r *BaseEntityRepo[T]) UpdateFields(ctx context.Context, entityID id.ID, patch map[string]any) (T, error) {
	entity := r.newFn()

	if len(patch) == 0 {
		return r.GetByID(ctx, entityID)
	}

	if err := r.checkPatchColumns(patch); err != nil {
		return entity, err
	}

	sql, args, err := r.buildUpdate(entityID, patch)
	if err != nil {
		return entity, fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, entityID.String())
		}
		return entity, postgres.TranslateError(err, r.tableName)
	}

	return entity, nil
}

// buildUpdate renders the partial UPDATE: only patched columns enter the SET
// clause, plus the repository-managed updated_at refresh.
func (r *BaseEntityRepo[T]) buildUpdate(entityID id.ID, patch map[string]any) (string, []any, error) {
	return r.Builder().
		Update(r.tableName).
		SetMap(patch).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{r.idColumn: entityID}).
		Suffix(r.returning()).
		ToSql()
}

// checkPatchColumns rejects columns outside the whitelist and attempts to
// touch the id or server-managed columns.
func (r *BaseEntityRepo[T]) checkPatchColumns(patch map[string]any) error {
	valid := make(map[string]bool, len(r.selectCols))
	for _, col := range r.selectCols {
		valid[col] = true
	}

	for col := range patch {
		if col == r.idColumn || serverManagedCols[col] || !valid[col] {
			return apperror.NewValidation("field is not updatable").
				WithDetail("field", col).
				WithDetail("entity", r.tableName)
		}
	}
	return nil
}

// Delete performs physical removal from the database.
func (r *BaseEntityRepo[T]) Delete(ctx context.Context, entityID id.ID) error {
	q := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{r.idColumn: entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, r.tableName)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID.String())
	}

	return nil
}

// Exists checks if entity exists.
func (r *BaseEntityRepo[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	q := r.Builder().
		Select("1").
		From(r.tableName).
		Where(squirrel.Eq{r.idColumn: entityID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	var exists int
	err = querier.QueryRow(ctx, sql, args...).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, postgres.TranslateError(err, r.tableName)
	}

	return true, nil
}

// FindOneBy retrieves a single entity matching column = value.
func (r *BaseEntityRepo[T]) FindOneBy(ctx context.Context, column string, value any) (T, error) {
	entity := r.newFn()

	q := r.baseSelect().
		Where(squirrel.Eq{column: value}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, fmt.Sprintf("%s=%v", column, value))
		}
		return entity, postgres.TranslateError(err, r.tableName)
	}

	return entity, nil
}

// FindManyBy retrieves all entities matching column = value.
// orderBy is a repository-chosen clause, never caller input.
func (r *BaseEntityRepo[T]) FindManyBy(ctx context.Context, column string, value any, orderBy string) ([]T, error) {
	var items []T

	q := r.baseSelect().Where(squirrel.Eq{column: value})
	if orderBy != "" {
		q = q.OrderBy(orderBy)
	} else {
		q = q.OrderBy(r.idColumn)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, postgres.TranslateError(err, r.tableName)
	}

	return items, nil
}
