package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procura/internal/domain/suppliers"
)

func TestUpdateSupplierRequest_Patch_OnlySentFields(t *testing.T) {
	var req UpdateSupplierRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Acme Holdings"}`), &req))

	patch := req.Patch()

	assert.Len(t, patch, 1)
	assert.Equal(t, "Acme Holdings", patch[suppliers.ColName])
}

func TestUpdateSupplierRequest_Patch_ExplicitZeroIncluded(t *testing.T) {
	var req UpdateSupplierRequest
	require.NoError(t, json.Unmarshal([]byte(`{"itemsSold":0,"rating":0}`), &req))

	patch := req.Patch()

	// An explicit zero is a real value, not an omission.
	require.Contains(t, patch, suppliers.ColItemsSold)
	assert.Equal(t, 0, patch[suppliers.ColItemsSold])
	require.Contains(t, patch, suppliers.ColRating)
	assert.NotContains(t, patch, suppliers.ColName)
}

func TestUpdateSupplierRequest_Patch_NullClearsDescription(t *testing.T) {
	var req UpdateSupplierRequest
	require.NoError(t, json.Unmarshal([]byte(`{"description":null}`), &req))

	patch := req.Patch()

	// Explicit null enters the patch as a nil value and clears the column.
	require.Contains(t, patch, suppliers.ColDescription)
	assert.Nil(t, patch[suppliers.ColDescription])

	// An absent field stays out of the patch entirely.
	var absent UpdateSupplierRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Acme"}`), &absent))
	assert.NotContains(t, absent.Patch(), suppliers.ColDescription)
}

func TestUpdateSupplierRequest_Patch_EmptyBody(t *testing.T) {
	var req UpdateSupplierRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))

	assert.Empty(t, req.Patch())
}

func TestCreateSupplierRequest_ToEntity(t *testing.T) {
	var req CreateSupplierRequest
	body := `{"name":"Acme Corp","taxId":"BR-001","description":"preferred","rating":4.5,"itemsSold":10}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	sup := req.ToEntity()

	assert.Equal(t, "Acme Corp", sup.Name)
	assert.Equal(t, "BR-001", sup.TaxID)
	require.NotNil(t, sup.Description)
	assert.Equal(t, "preferred", *sup.Description)
	assert.Equal(t, 10, sup.ItemsSold)
	assert.Equal(t, "4.5", sup.Rating.String())
	assert.True(t, sup.PurchasedValue.IsZero(), "omitted totals default to zero")
}

func TestFromSupplier(t *testing.T) {
	sup := suppliers.NewSupplier("Acme Corp", "BR-001")

	resp := FromSupplier(sup)

	assert.Equal(t, sup.ID.String(), resp.ID)
	assert.Equal(t, "Acme Corp", resp.Name)
	assert.Nil(t, resp.Description)
}
