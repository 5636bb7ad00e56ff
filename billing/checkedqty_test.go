package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-billing/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNextCheckedQty(t *testing.T) {
	tests := []struct {
		name    string
		action  models.CheckedQtyAction
		ordered string
		current string
		want    string
	}{
		{"increment whole step", models.CheckedQtyIncrement, "3.75", "1", "2"},
		{"increment lands on fractional remainder", models.CheckedQtyIncrement, "3.75", "3", "3.75"},
		{"increment saturates at fractional top", models.CheckedQtyIncrement, "3.75", "3.75", "3.75"},
		{"increment saturates on whole-unit item", models.CheckedQtyIncrement, "5", "5", "5"},
		{"increment last whole step", models.CheckedQtyIncrement, "5", "4", "5"},
		{"increment from zero", models.CheckedQtyIncrement, "5", "0", "1"},
		{"increment fully fractional order", models.CheckedQtyIncrement, "0.5", "0", "0.5"},
		{"decrement from fractional top drops remainder only", models.CheckedQtyDecrement, "3.75", "3.75", "3"},
		{"decrement whole step", models.CheckedQtyDecrement, "3.75", "3", "2"},
		{"decrement floors at zero", models.CheckedQtyDecrement, "3.75", "0", "0"},
		{"decrement below one clamps to zero", models.CheckedQtyDecrement, "3.75", "0.5", "0"},
		{"decrement whole-unit item", models.CheckedQtyDecrement, "5", "5", "4"},
		{"decrement fully fractional order", models.CheckedQtyDecrement, "0.5", "0.5", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextCheckedQty(tt.action, dec(tt.ordered), dec(tt.current))
			assert.True(t, dec(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestNextCheckedQtySequences(t *testing.T) {
	// Repeated increments for 3.75: 1, 2, 3, 3.75 then stop.
	ordered := dec("3.75")
	current := decimal.Zero
	var seq []string
	for i := 0; i < 6; i++ {
		current = NextCheckedQty(models.CheckedQtyIncrement, ordered, current)
		seq = append(seq, current.String())
	}
	assert.Equal(t, []string{"1", "2", "3", "3.75", "3.75", "3.75"}, seq)

	// Repeated decrements from 3.75: 3, 2, 1, 0 then stop.
	seq = nil
	for i := 0; i < 6; i++ {
		current = NextCheckedQty(models.CheckedQtyDecrement, ordered, current)
		seq = append(seq, current.String())
	}
	assert.Equal(t, []string{"3", "2", "1", "0", "0", "0"}, seq)
}

func TestNextCheckedQtyStaysInBounds(t *testing.T) {
	orderedQtys := []string{"0", "1", "2.5", "3.75", "5", "0.33", "10.01"}
	actions := []models.CheckedQtyAction{
		models.CheckedQtyIncrement, models.CheckedQtyIncrement, models.CheckedQtyDecrement,
		models.CheckedQtyIncrement, models.CheckedQtyDecrement, models.CheckedQtyDecrement,
		models.CheckedQtyIncrement, models.CheckedQtyIncrement, models.CheckedQtyIncrement,
		models.CheckedQtyDecrement,
	}

	for _, o := range orderedQtys {
		ordered := dec(o)
		current := decimal.Zero
		for i, action := range actions {
			current = NextCheckedQty(action, ordered, current)
			require.False(t, current.IsNegative(), "ordered=%s step=%d went negative: %s", o, i, current)
			require.False(t, current.GreaterThan(ordered), "ordered=%s step=%d overshot: %s", o, i, current)
		}
	}
}
