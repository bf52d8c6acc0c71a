package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price float64, stock int) map[string]any {
	return map[string]any{
		"id":         id,
		"title":      "Producto " + id,
		"unit_price": price,
		"stock":      stock,
	}
}

func TestAddMergesIntoExistingLine(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, "s1", NewMemoryStorage())

	store.Add(ctx, product("p1", 1000, 10), 2)
	store.Add(ctx, product("p1", 1000, 10), 3)

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestAddClampsToStockCeiling(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, "s1", NewMemoryStorage())

	store.Add(ctx, product("p1", 1000, 5), 100)

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestAddMergeClampsCombinedQuantity(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, "s1", NewMemoryStorage())

	store.Add(ctx, product("p1", 1000, 5), 4)
	store.Add(ctx, product("p1", 1000, 5), 4)

	assert.Equal(t, 5, store.Lines()[0].Quantity)
}

func TestAddWithZeroStockStillAddsOneUnit(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, "s1", NewMemoryStorage())

	store.Add(ctx, product("p1", 1000, 0), 3)

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestAddWithoutUsableIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, "s1", NewMemoryStorage())

	store.Add(ctx, map[string]any{"title": "sin id", "unit_price": 1000}, 1)
	store.Add(ctx, nil, 1)

	assert.Empty(t, store.Lines())
}

func TestAddWithoutStockFieldIsUnbounded(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, "s1", NewMemoryStorage())

	store.Add(ctx, map[string]any{"id": "p1", "title": "x", "unit_price": 100}, 9999)

	assert.Equal(t, 9999, store.Lines()[0].Quantity)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, "s1", NewMemoryStorage())
	store.Add(ctx, product("p1", 1000, 10), 2)

	store.UpdateQuantity(ctx, "p1", 0)
	assert.Empty(t, store.Lines())

	store.Add(ctx, product("p1", 1000, 10), 2)
	store.UpdateQuantity(ctx, "p1", -4)
	assert.Empty(t, store.Lines())
}

func TestUpdateQuantityUnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, "s1", NewMemoryStorage())
	store.Add(ctx, product("p1", 1000, 10), 2)

	store.UpdateQuantity(ctx, "missing", 7)

	require.Len(t, store.Lines(), 1)
	assert.Equal(t, 2, store.Lines()[0].Quantity)
}

func TestRemoveDeletesLine(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, "s1", NewMemoryStorage())
	store.Add(ctx, product("p1", 1000, 10), 2)
	store.Add(ctx, product("p2", 500, 10), 1)

	store.Remove(ctx, "p1")

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)
}

func TestDerivedTotals(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, "s1", NewMemoryStorage())
	store.Add(ctx, product("p1", 1000, 10), 2)
	store.Add(ctx, product("p2", 500, 10), 3)

	assert.Equal(t, 5, store.TotalItems())
	assert.InDelta(t, 3500, store.Subtotal(), 0.001)

	view := store.View()
	assert.Equal(t, "s1", view.SessionID)
	assert.Equal(t, 5, view.TotalItems)
	assert.InDelta(t, 3500, view.Subtotal, 0.001)
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, "s1", NewMemoryStorage())
	store.Add(ctx, product("p1", 100, 10), 1)
	store.Add(ctx, product("p2", 100, 10), 1)
	store.Add(ctx, product("p3", 100, 10), 1)
	store.Add(ctx, product("p2", 100, 10), 1)

	lines := store.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, "p2", lines[1].ProductID)
	assert.Equal(t, "p3", lines[2].ProductID)
}

func TestCartSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()

	store := Open(ctx, "s1", storage)
	store.Add(ctx, product("p1", 1000, 10), 2)

	reopened := Open(ctx, "s1", storage)
	require.Len(t, reopened.Lines(), 1)
	assert.Equal(t, 2, reopened.Lines()[0].Quantity)
}

func TestClearEmptiesCartAndSnapshot(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()

	store := Open(ctx, "s1", storage)
	store.Add(ctx, product("p1", 1000, 10), 2)
	store.Clear(ctx)

	assert.Empty(t, store.Lines())
	assert.Empty(t, Open(ctx, "s1", storage).Lines())
}

// failingStorage accepts loads but refuses every write.
type failingStorage struct{}

func (failingStorage) Load(context.Context, string) ([]byte, error) { return nil, nil }
func (failingStorage) Save(context.Context, string, []byte) error {
	return errors.New("storage full")
}
func (failingStorage) Delete(context.Context, string) error {
	return errors.New("storage full")
}

func TestMutationsSurvivePersistenceFailures(t *testing.T) {
	ctx := context.Background()
	store := Open(ctx, "s1", failingStorage{})

	store.Add(ctx, product("p1", 1000, 10), 2)
	store.UpdateQuantity(ctx, "p1", 4)

	require.Len(t, store.Lines(), 1)
	assert.Equal(t, 4, store.Lines()[0].Quantity)
}

func TestCorruptSnapshotIsDiscarded(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(ctx, "s1", []byte("{not json")))

	store := Open(ctx, "s1", storage)
	assert.Empty(t, store.Lines())
}
