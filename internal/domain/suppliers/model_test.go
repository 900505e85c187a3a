package suppliers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"procura/internal/core/apperror"
	"procura/internal/core/id"
	"procura/internal/core/types"
)

func TestSupplier_Validate(t *testing.T) {
	ctx := context.Background()

	valid := func() *Supplier {
		return NewSupplier("Acme Corp", "BR-123456")
	}

	t.Run("valid supplier passes", func(t *testing.T) {
		assert.NoError(t, valid().Validate(ctx))
	})

	t.Run("generated id is set", func(t *testing.T) {
		assert.False(t, id.IsNil(valid().ID))
	})

	t.Run("empty name fails", func(t *testing.T) {
		s := valid()
		s.Name = ""
		err := s.Validate(ctx)
		assert.Error(t, err)
		appErr, _ := apperror.AsAppError(err)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("empty tax id fails", func(t *testing.T) {
		s := valid()
		s.TaxID = ""
		assert.Error(t, s.Validate(ctx))
	})

	t.Run("overlong tax id fails", func(t *testing.T) {
		s := valid()
		s.TaxID = strings.Repeat("9", MaxTaxIDLength+1)
		assert.Error(t, s.Validate(ctx))
	})

	t.Run("tax id at max length passes", func(t *testing.T) {
		s := valid()
		s.TaxID = strings.Repeat("9", MaxTaxIDLength)
		assert.NoError(t, s.Validate(ctx))
	})

	t.Run("negative counter fails", func(t *testing.T) {
		s := valid()
		s.ItemsSold = -1
		assert.Error(t, s.Validate(ctx))
	})

	t.Run("negative total fails", func(t *testing.T) {
		s := valid()
		s.SoldValue = types.MustMoney("-0.01")
		assert.Error(t, s.Validate(ctx))
	})

	t.Run("zero counters and totals pass", func(t *testing.T) {
		assert.NoError(t, valid().Validate(ctx))
	})
}

func TestValidateRating(t *testing.T) {
	tests := []struct {
		rating  string
		wantErr bool
	}{
		{"0", false},
		{"5", false},
		{"4.5", false},
		{"-0.1", true},
		{"5.01", true},
	}

	for _, tt := range tests {
		t.Run(tt.rating, func(t *testing.T) {
			err := ValidateRating(types.MustMoney(tt.rating))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
