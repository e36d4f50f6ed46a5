package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServiceType(t *testing.T) {
	for _, valid := range []string{"hotel", "car_rental", "tour", "activity", "visa"} {
		parsed, err := ParseServiceType(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, parsed.String())
	}

	for _, invalid := range []string{"", "hotels", "Hotel", "flight"} {
		_, err := ParseServiceType(invalid)
		assert.Error(t, err, invalid)
	}
}

func TestParsePartnerType(t *testing.T) {
	parsed, err := ParsePartnerType("solution_partner")
	require.NoError(t, err)
	assert.Equal(t, PartnerTypeSolution, parsed)

	parsed, err = ParsePartnerType("sales_partner")
	require.NoError(t, err)
	assert.Equal(t, PartnerTypeSales, parsed)

	_, err = ParsePartnerType("reseller")
	assert.Error(t, err)
}

func TestCommissionAmount(t *testing.T) {
	percentage := Commission{CommissionType: CommissionTypePercentage, CommissionValue: 12.5}
	assert.InDelta(t, 25.0, percentage.Amount(200), 1e-9)

	fixed := Commission{CommissionType: CommissionTypeFixed, CommissionValue: 15}
	assert.InDelta(t, 15.0, fixed.Amount(200), 1e-9)
	assert.InDelta(t, 15.0, fixed.Amount(5), 1e-9)
}

func TestDiscountApplyClampsAtZero(t *testing.T) {
	dc := DiscountCode{Percentage: 25}
	assert.InDelta(t, 75.0, dc.Apply(100), 1e-9)

	full := DiscountCode{Percentage: 100}
	assert.Zero(t, full.Apply(100))

	over := DiscountCode{Percentage: 150}
	assert.Zero(t, over.Apply(100))
}
