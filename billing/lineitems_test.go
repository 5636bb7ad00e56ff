package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-billing/models"
)

func countPlaceholders(items []models.LineItem) int {
	n := 0
	for _, li := range items {
		if li.IsPlaceholder() {
			n++
		}
	}
	return n
}

func TestNewLineItemStoreStartsWithPlaceholder(t *testing.T) {
	store := NewLineItemStore()
	items := store.Items()

	require.Len(t, items, 1)
	assert.True(t, items[0].IsPlaceholder())
	assert.NotEmpty(t, items[0].ID)
}

func TestAddLineItem(t *testing.T) {
	store := NewLineItemStore()
	item := store.AddLineItem(models.Product{ID: "prd_1", Name: "Rice", Price: 4000}, nil)

	assert.Equal(t, "Rice", item.Name)
	assert.True(t, dec("1").Equal(item.Quantity))
	assert.Equal(t, int64(4000), item.TotalPrice)

	items := store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, item.ID, items[0].ID)
	assert.True(t, items[1].IsPlaceholder(), "placeholder must stay last")
	assert.Equal(t, 1, countPlaceholders(items))
}

func TestAddLineItemWithFractionalQuantity(t *testing.T) {
	store := NewLineItemStore()
	qty := dec("3.75")
	item := store.AddLineItem(models.Product{ID: "prd_2", Name: "Dal", Price: 4000}, &qty)

	assert.True(t, dec("3.75").Equal(item.Quantity))
	assert.Equal(t, int64(15000), item.TotalPrice)
}

func TestAddEmptyLineItemIsIdempotent(t *testing.T) {
	store := NewLineItemStore()
	store.AddLineItem(models.Product{ID: "prd_1", Name: "Rice", Price: 4000}, nil)

	store.AddEmptyLineItem()
	store.AddEmptyLineItem()

	items := store.Items()
	assert.Equal(t, 1, countPlaceholders(items))
	assert.True(t, items[len(items)-1].IsPlaceholder())
}

func TestUpdateLineItemRecomputesTotal(t *testing.T) {
	store := NewLineItemStore()
	item := store.AddLineItem(models.Product{ID: "prd_1", Name: "Rice", Price: 4000}, nil)

	qty := dec("2.5")
	updated, err := store.UpdateLineItem(item.ID, models.UpdateItemRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, int64(10000), updated.TotalPrice)

	price := int64(5000)
	updated, err = store.UpdateLineItem(item.ID, models.UpdateItemRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(12500), updated.TotalPrice)

	name := "Premium Rice"
	updated, err = store.UpdateLineItem(item.ID, models.UpdateItemRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Premium Rice", updated.Name)
	assert.Equal(t, int64(12500), updated.TotalPrice, "name change must not touch the total")
}

func TestUpdateLineItemClampsCheckedQty(t *testing.T) {
	store := NewLineItemStore()
	qty := dec("5")
	item := store.AddLineItem(models.Product{ID: "prd_1", Name: "Rice", Price: 4000}, &qty)

	_, err := store.SetCheckedQty(item.ID, dec("4"), false)
	require.NoError(t, err)

	smaller := dec("2")
	updated, err := store.UpdateLineItem(item.ID, models.UpdateItemRequest{Quantity: &smaller})
	require.NoError(t, err)
	assert.True(t, dec("2").Equal(updated.CheckedQty), "checked qty must be clamped to the new quantity")
}

func TestUpdateLineItemUnknownID(t *testing.T) {
	store := NewLineItemStore()
	_, err := store.UpdateLineItem("missing", models.UpdateItemRequest{})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveLineItemRestoresPlaceholder(t *testing.T) {
	store := NewLineItemStore()
	item := store.AddLineItem(models.Product{ID: "prd_1", Name: "Rice", Price: 4000}, nil)

	require.NoError(t, store.RemoveLineItem(item.ID))

	items := store.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].IsPlaceholder())

	assert.ErrorIs(t, store.RemoveLineItem("missing"), ErrItemNotFound)
}

func TestDerivedTotals(t *testing.T) {
	store := NewLineItemStore()
	store.AddLineItem(models.Product{ID: "prd_a", Name: "A", Price: 10000}, nil)
	qty := dec("2")
	store.AddLineItem(models.Product{ID: "prd_b", Name: "B", Price: 5000}, &qty)

	assert.Equal(t, int64(20000), store.Subtotal())
	assert.Equal(t, int64(200), store.GrandTotal())
	assert.True(t, dec("3").Equal(store.TotalQuantity()))
}

func TestEligibleItemsFilter(t *testing.T) {
	store := NewLineItemStore()
	store.AddLineItem(models.Product{ID: "prd_a", Name: "A", Price: 10000}, nil)
	free := store.AddLineItem(models.Product{ID: "prd_b", Name: "Named but free", Price: 0}, nil)
	unnamed := store.AddLineItem(models.Product{ID: "prd_c", Name: "", Price: 500}, nil)

	eligible := store.EligibleItems()
	require.Len(t, eligible, 1)
	assert.Equal(t, "A", eligible[0].Name)

	// The filter never mutates the in-memory list.
	items := store.Items()
	assert.Len(t, items, 4)
	_, err := store.Get(free.ID)
	assert.NoError(t, err)
	_, err = store.Get(unnamed.ID)
	assert.NoError(t, err)
}

func TestSetLineItemsAndSnapshot(t *testing.T) {
	store := NewLineItemStore()
	pid := "prd_1"
	loaded := []models.LineItem{
		{ID: "it_1", ProductID: &pid, Name: "Rice", Quantity: dec("2"), Price: 4000, TotalPrice: 8000},
	}

	store.SetLineItems(loaded)
	store.SetOriginalLineItems()

	items := store.Items()
	require.Len(t, items, 2)
	assert.True(t, items[1].IsPlaceholder(), "hydration re-adds the trailing placeholder")

	original := store.OriginalItems()
	require.Len(t, original, 1)
	assert.Equal(t, "it_1", original[0].ID)

	// Mutations after hydration never touch the pristine snapshot.
	name := "Changed"
	_, err := store.UpdateLineItem("it_1", models.UpdateItemRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Rice", store.OriginalItems()[0].Name)
}

func TestReset(t *testing.T) {
	store := NewLineItemStore()
	store.AddLineItem(models.Product{ID: "prd_1", Name: "Rice", Price: 4000}, nil)
	store.SetOriginalLineItems()

	store.Reset()

	items := store.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].IsPlaceholder())
	assert.Empty(t, store.OriginalItems())
}

func TestOnChangeFiresOnEffectiveMutationsOnly(t *testing.T) {
	store := NewLineItemStore()
	changes := 0
	store.SetOnChange(func() { changes++ })

	store.AddLineItem(models.Product{ID: "prd_1", Name: "Rice", Price: 4000}, nil)
	assert.Equal(t, 1, changes)

	store.AddEmptyLineItem() // tail already a placeholder: no-op
	assert.Equal(t, 1, changes)

	qty := decimal.NewFromInt(2)
	_, err := store.UpdateLineItem(store.Items()[0].ID, models.UpdateItemRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 2, changes)
}
