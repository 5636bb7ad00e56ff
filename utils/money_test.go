package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		price    int64
		want     int64
	}{
		{"whole quantity", "2", 5000, 10000},
		{"unit quantity", "1", 10000, 10000},
		{"fractional weight", "3.75", 4000, 15000},
		{"rounds half up", "1.5", 333, 500},
		{"rounds down", "0.33", 100, 33},
		{"zero quantity", "0", 9999, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qty, err := decimal.NewFromString(tt.quantity)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, LineTotal(qty, tt.price))
		})
	}
}

func TestPaiseToRupees(t *testing.T) {
	assert.Equal(t, int64(200), PaiseToRupees(20000))
	assert.Equal(t, int64(200), PaiseToRupees(20049))
	assert.Equal(t, int64(201), PaiseToRupees(20050))
	assert.Equal(t, int64(0), PaiseToRupees(0))
	assert.Equal(t, int64(-200), PaiseToRupees(-20000))
	assert.Equal(t, int64(-201), PaiseToRupees(-20050))
}

func TestFormatRupees(t *testing.T) {
	tests := []struct {
		paise int64
		want  string
	}{
		{0, "₹0"},
		{20000, "₹200"},
		{12550, "₹125.50"},
		{100000, "₹1,000"},
		{12345600, "₹1,23,456"},
		{12345650, "₹1,23,456.50"},
		{1234567800, "₹1,23,45,678"},
		{505, "₹5.05"},
		{-12550, "-₹125.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRupees(tt.paise), "paise=%d", tt.paise)
	}
}
