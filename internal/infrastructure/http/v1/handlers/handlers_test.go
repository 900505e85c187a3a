package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procura/internal/core/apperror"
	"procura/internal/core/id"
	"procura/internal/core/types"
	"procura/internal/domain"
	"procura/internal/domain/purchases"
	"procura/internal/domain/suppliers"
	"procura/internal/infrastructure/http/v1/handlers"
	"procura/internal/infrastructure/http/v1/middleware"
)

// --- test fixtures ---

type noopTxManager struct{}

func (noopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memSupplierRepo struct {
	items map[id.ID]*suppliers.Supplier
}

func newMemSupplierRepo() *memSupplierRepo {
	return &memSupplierRepo{items: make(map[id.ID]*suppliers.Supplier)}
}

func (m *memSupplierRepo) Create(ctx context.Context, s *suppliers.Supplier) (*suppliers.Supplier, error) {
	cp := *s
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	m.items[cp.ID] = &cp
	return &cp, nil
}

func (m *memSupplierRepo) GetByID(ctx context.Context, entityID id.ID) (*suppliers.Supplier, error) {
	if s, ok := m.items[entityID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, apperror.NewNotFound("suppliers", entityID.String())
}

func (m *memSupplierRepo) List(ctx context.Context) ([]*suppliers.Supplier, error) {
	out := make([]*suppliers.Supplier, 0, len(m.items))
	for _, s := range m.items {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memSupplierRepo) UpdateFields(ctx context.Context, entityID id.ID, patch domain.Patch) (*suppliers.Supplier, error) {
	s, ok := m.items[entityID]
	if !ok {
		return nil, apperror.NewNotFound("suppliers", entityID.String())
	}

	cp := *s
	for col, v := range patch {
		switch col {
		case suppliers.ColName:
			cp.Name = v.(string)
		case suppliers.ColTaxID:
			cp.TaxID = v.(string)
		case suppliers.ColDescription:
			if d, ok := v.(string); ok {
				cp.Description = &d
			} else {
				cp.Description = nil
			}
		case suppliers.ColRating:
			cp.Rating = v.(types.Money)
		case suppliers.ColItemsSold:
			cp.ItemsSold = v.(int)
		}
	}
	cp.UpdatedAt = time.Now().UTC()
	m.items[entityID] = &cp

	res := cp
	return &res, nil
}

func (m *memSupplierRepo) Delete(ctx context.Context, entityID id.ID) error {
	if _, ok := m.items[entityID]; !ok {
		return apperror.NewNotFound("suppliers", entityID.String())
	}
	delete(m.items, entityID)
	return nil
}

func (m *memSupplierRepo) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	_, ok := m.items[entityID]
	return ok, nil
}

func (m *memSupplierRepo) FindByTaxID(ctx context.Context, taxID string) (*suppliers.Supplier, error) {
	for _, s := range m.items {
		if s.TaxID == taxID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("suppliers", "tax_id="+taxID)
}

func (m *memSupplierRepo) SearchByName(ctx context.Context, fragment string) ([]*suppliers.Supplier, error) {
	var out []*suppliers.Supplier
	for _, s := range m.items {
		if strings.Contains(strings.ToLower(s.Name), strings.ToLower(fragment)) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memPurchaseRepo struct {
	items map[id.ID]*purchases.Purchase
}

func newMemPurchaseRepo() *memPurchaseRepo {
	return &memPurchaseRepo{items: make(map[id.ID]*purchases.Purchase)}
}

func (m *memPurchaseRepo) Create(ctx context.Context, p *purchases.Purchase) (*purchases.Purchase, error) {
	cp := *p
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	m.items[cp.ID] = &cp
	return &cp, nil
}

func (m *memPurchaseRepo) GetByID(ctx context.Context, entityID id.ID) (*purchases.Purchase, error) {
	if p, ok := m.items[entityID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperror.NewNotFound("supplier_purchases", entityID.String())
}

func (m *memPurchaseRepo) List(ctx context.Context) ([]*purchases.Purchase, error) {
	out := make([]*purchases.Purchase, 0, len(m.items))
	for _, p := range m.items {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memPurchaseRepo) UpdateFields(ctx context.Context, entityID id.ID, patch domain.Patch) (*purchases.Purchase, error) {
	p, ok := m.items[entityID]
	if !ok {
		return nil, apperror.NewNotFound("supplier_purchases", entityID.String())
	}

	cp := *p
	for col, v := range patch {
		switch col {
		case purchases.ColInvoice:
			cp.Invoice = v.(string)
		case purchases.ColValue:
			cp.Value = v.(types.Money)
		case purchases.ColStatus:
			cp.Status = v.(int)
		case purchases.ColReceivedDate:
			if d, ok := v.(time.Time); ok {
				cp.ReceivedDate = &d
			} else {
				cp.ReceivedDate = nil
			}
		case purchases.ColPurchaseDate:
			cp.PurchaseDate = v.(time.Time)
		}
	}
	cp.UpdatedAt = time.Now().UTC()
	m.items[entityID] = &cp

	res := cp
	return &res, nil
}

func (m *memPurchaseRepo) Delete(ctx context.Context, entityID id.ID) error {
	if _, ok := m.items[entityID]; !ok {
		return apperror.NewNotFound("supplier_purchases", entityID.String())
	}
	delete(m.items, entityID)
	return nil
}

func (m *memPurchaseRepo) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	_, ok := m.items[entityID]
	return ok, nil
}

func (m *memPurchaseRepo) ListBySupplier(ctx context.Context, supplierID id.ID) ([]*purchases.Purchase, error) {
	var out []*purchases.Purchase
	for _, p := range m.items {
		if p.SupplierID == supplierID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memPurchaseRepo) FindByInvoice(ctx context.Context, invoice string) (*purchases.Purchase, error) {
	for _, p := range m.items {
		if p.Invoice == invoice {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("supplier_purchases", "invoice="+invoice)
}

// newTestRouter wires handlers over in-memory repositories, with the same
// middleware chain the real router uses (minus health and CORS).
func newTestRouter(t *testing.T) (*gin.Engine, *memSupplierRepo, *memPurchaseRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	supplierRepo := newMemSupplierRepo()
	purchaseRepo := newMemPurchaseRepo()

	supplierService := suppliers.NewService(supplierRepo, noopTxManager{})
	purchaseService := purchases.NewService(purchaseRepo, supplierRepo, noopTxManager{})

	base := handlers.NewBaseHandler()
	supplierHandler := handlers.NewSupplierHandler(base, supplierService)
	purchaseHandler := handlers.NewPurchaseHandler(base, purchaseService)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler())

	sg := router.Group("/suppliers")
	sg.POST("", supplierHandler.Create)
	sg.GET("", supplierHandler.List)
	sg.GET("/:id", supplierHandler.Get)
	sg.PUT("/:id", supplierHandler.Update)
	sg.DELETE("/:id", supplierHandler.Delete)
	sg.GET("/search/name", supplierHandler.SearchByName)
	sg.GET("/search/taxid", supplierHandler.SearchByTaxID)

	pg := router.Group("/purchases")
	pg.POST("", purchaseHandler.Create)
	pg.GET("", purchaseHandler.List)
	pg.GET("/:id", purchaseHandler.Get)
	pg.PUT("/:id", purchaseHandler.Update)
	pg.DELETE("/:id", purchaseHandler.Delete)
	pg.GET("/supplier/:supplierId", purchaseHandler.ListBySupplier)

	return router, supplierRepo, purchaseRepo
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

// --- supplier endpoints ---

func TestSuppliers_CreateAndGet(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/suppliers", `{"name":"Acme Corp","taxId":"BR-001"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decodeBody(t, w)
	assert.Equal(t, "Acme Corp", created["name"])
	require.NotEmpty(t, created["id"])

	w = doJSON(t, router, http.MethodGet, "/suppliers/"+created["id"].(string), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "BR-001", decodeBody(t, w)["taxId"])
}

func TestSuppliers_CreateValidation(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/suppliers", `{"taxId":"BR-001"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, decodeBody(t, w)["code"])
}

func TestSuppliers_DuplicateTaxID(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/suppliers", `{"name":"Acme Corp","taxId":"BR-001"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/suppliers", `{"name":"Other Corp","taxId":"BR-001"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperror.CodeDuplicate, decodeBody(t, w)["code"])
}

func TestSuppliers_GetUnknown(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/suppliers/"+id.New().String(), "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeNotFound, decodeBody(t, w)["code"])
}

func TestSuppliers_GetInvalidID(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/suppliers/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuppliers_PartialUpdate(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/suppliers", `{"name":"Acme Corp","taxId":"BR-001"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	supID := decodeBody(t, w)["id"].(string)

	w = doJSON(t, router, http.MethodPut, "/suppliers/"+supID, `{"rating":4}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	updated := decodeBody(t, w)
	assert.Equal(t, "Acme Corp", updated["name"], "omitted fields keep their values")
	assert.Equal(t, "BR-001", updated["taxId"])
}

func TestSuppliers_PartialUpdateClearsDescription(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/suppliers", `{"name":"Acme Corp","taxId":"BR-001","description":"preferred"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	supID := decodeBody(t, w)["id"].(string)

	// Omitting the field keeps the stored value.
	w = doJSON(t, router, http.MethodPut, "/suppliers/"+supID, `{"rating":4}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "preferred", decodeBody(t, w)["description"])

	// Explicit null clears it.
	w = doJSON(t, router, http.MethodPut, "/suppliers/"+supID, `{"description":null}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, decodeBody(t, w), "description")
}

func TestSuppliers_UpdateUnknown(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/suppliers/"+id.New().String(), `{"name":"Ghost"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSuppliers_Delete(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/suppliers", `{"name":"Acme Corp","taxId":"BR-001"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	supID := decodeBody(t, w)["id"].(string)

	w = doJSON(t, router, http.MethodDelete, "/suppliers/"+supID, "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/suppliers/"+supID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/suppliers/"+supID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSuppliers_List(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/suppliers", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	doJSON(t, router, http.MethodPost, "/suppliers", `{"name":"Acme Corp","taxId":"BR-001"}`)
	doJSON(t, router, http.MethodPost, "/suppliers", `{"name":"Globex","taxId":"BR-002"}`)

	w = doJSON(t, router, http.MethodGet, "/suppliers", "")
	var items []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 2)
}

func TestSuppliers_SearchByName(t *testing.T) {
	router, _, _ := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/suppliers", `{"name":"Acme Corp","taxId":"BR-001"}`)
	doJSON(t, router, http.MethodPost, "/suppliers", `{"name":"Globex","taxId":"BR-002"}`)

	w := doJSON(t, router, http.MethodGet, "/suppliers/search/name?name=acme", "")
	require.Equal(t, http.StatusOK, w.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Acme Corp", items[0]["name"])

	w = doJSON(t, router, http.MethodGet, "/suppliers/search/name", "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing name parameter")
}

func TestSuppliers_SearchByTaxID(t *testing.T) {
	router, _, _ := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/suppliers", `{"name":"Acme Corp","taxId":"BR-001"}`)

	w := doJSON(t, router, http.MethodGet, "/suppliers/search/taxid?taxId=BR-001", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme Corp", decodeBody(t, w)["name"])

	w = doJSON(t, router, http.MethodGet, "/suppliers/search/taxid?taxId=BR-999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- purchase endpoints ---

func createSupplier(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/suppliers", `{"name":"Acme Corp","taxId":"BR-001"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeBody(t, w)["id"].(string)
}

func TestPurchases_CreateAndGet(t *testing.T) {
	router, _, _ := newTestRouter(t)
	supID := createSupplier(t, router)

	w := doJSON(t, router, http.MethodPost, "/purchases",
		`{"supplierId":"`+supID+`","value":"150.00","invoice":"INV-001"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decodeBody(t, w)
	assert.Equal(t, supID, created["supplierId"])
	assert.NotEmpty(t, created["purchaseDate"], "omitted purchase date is defaulted")

	w = doJSON(t, router, http.MethodGet, "/purchases/"+created["id"].(string), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INV-001", decodeBody(t, w)["invoice"])
}

func TestPurchases_UnknownSupplier(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/purchases",
		`{"supplierId":"`+id.New().String()+`","value":"150.00","invoice":"INV-001"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeForeignKey, decodeBody(t, w)["code"])
}

func TestPurchases_DateOrder(t *testing.T) {
	router, _, _ := newTestRouter(t)
	supID := createSupplier(t, router)

	w := doJSON(t, router, http.MethodPost, "/purchases",
		`{"supplierId":"`+supID+`","value":"10.00","invoice":"INV-001",
		  "purchaseDate":"2026-03-10T12:00:00Z","receivedDate":"2026-03-09T12:00:00Z"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeDateOrder, decodeBody(t, w)["code"])

	// Equal instants are fine.
	w = doJSON(t, router, http.MethodPost, "/purchases",
		`{"supplierId":"`+supID+`","value":"10.00","invoice":"INV-002",
		  "purchaseDate":"2026-03-10T12:00:00Z","receivedDate":"2026-03-10T12:00:00Z"}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestPurchases_PartialUpdateDateOrder(t *testing.T) {
	router, _, _ := newTestRouter(t)
	supID := createSupplier(t, router)

	w := doJSON(t, router, http.MethodPost, "/purchases",
		`{"supplierId":"`+supID+`","value":"10.00","invoice":"INV-001","purchaseDate":"2026-03-10T12:00:00Z"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	purchaseID := decodeBody(t, w)["id"].(string)

	w = doJSON(t, router, http.MethodPut, "/purchases/"+purchaseID,
		`{"receivedDate":"2026-03-09T12:00:00Z"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeDateOrder, decodeBody(t, w)["code"])

	w = doJSON(t, router, http.MethodPut, "/purchases/"+purchaseID,
		`{"receivedDate":"2026-03-12T12:00:00Z"}`)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestPurchases_ListBySupplier(t *testing.T) {
	router, _, _ := newTestRouter(t)
	supID := createSupplier(t, router)

	doJSON(t, router, http.MethodPost, "/purchases",
		`{"supplierId":"`+supID+`","value":"10.00","invoice":"INV-001"}`)
	doJSON(t, router, http.MethodPost, "/purchases",
		`{"supplierId":"`+supID+`","value":"20.00","invoice":"INV-002"}`)

	w := doJSON(t, router, http.MethodGet, "/purchases/supplier/"+supID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 2)

	// Unknown supplier yields an empty sequence, not 404.
	w = doJSON(t, router, http.MethodGet, "/purchases/supplier/"+id.New().String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestPurchases_Delete(t *testing.T) {
	router, _, _ := newTestRouter(t)
	supID := createSupplier(t, router)

	w := doJSON(t, router, http.MethodPost, "/purchases",
		`{"supplierId":"`+supID+`","value":"10.00","invoice":"INV-001"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	purchaseID := decodeBody(t, w)["id"].(string)

	w = doJSON(t, router, http.MethodDelete, "/purchases/"+purchaseID, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/purchases/"+purchaseID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
