package validate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type priced struct {
	Price decimal.Decimal `validate:"gte=0"`
}

type optionalPrice struct {
	Price *decimal.Decimal `validate:"omitempty,gte=0"`
}

func TestDecimalGte(t *testing.T) {
	t.Parallel()

	v := New()

	assert.NoError(t, v.Struct(priced{Price: decimal.NewFromInt(0)}))
	assert.NoError(t, v.Struct(priced{Price: decimal.RequireFromString("1500.50")}))
	assert.Error(t, v.Struct(priced{Price: decimal.NewFromInt(-1)}))
}

func TestOptionalDecimal(t *testing.T) {
	t.Parallel()

	v := New()
	neg := decimal.NewFromInt(-5)
	pos := decimal.NewFromInt(5)

	assert.NoError(t, v.Struct(optionalPrice{}))
	assert.NoError(t, v.Struct(optionalPrice{Price: &pos}))
	assert.Error(t, v.Struct(optionalPrice{Price: &neg}))
}
