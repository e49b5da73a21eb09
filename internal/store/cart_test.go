package store

import (
	"testing"

	"kartshop/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testP1 = model.Product{ID: "p1", OwnerID: "u1", Title: "Chair", ImageURL: "https://img/chair", Price: 10.00}
	testP2 = model.Product{ID: "p2", OwnerID: "u2", Title: "Table", ImageURL: "https://img/table", Price: 5.00}
)

// assertCartInvariants checks that every line's total equals quantity times
// unit price and that the cart total equals the sum of the line totals.
func assertCartInvariants(t *testing.T, state CartState) {
	t.Helper()

	sum := 0.0
	for id, item := range state.Lines {
		assert.GreaterOrEqual(t, item.Quantity, 1, "line %s quantity", id)
		assert.InDelta(t, float64(item.Quantity)*item.UnitPrice, item.LineTotal, 1e-9, "line %s total", id)
		sum += item.LineTotal
	}
	assert.InDelta(t, sum, state.TotalAmount, 1e-9, "cart total")
	if len(state.Lines) == 0 {
		assert.Zero(t, state.TotalAmount)
	}
}

func TestReduceCart_AddToCart(t *testing.T) {
	tests := []struct {
		name      string
		events    []CartEvent
		wantLines map[string]model.CartItem
		wantTotal float64
	}{
		{
			name:   "first add creates a line with quantity 1",
			events: []CartEvent{AddToCart{Product: testP1}},
			wantLines: map[string]model.CartItem{
				"p1": {Quantity: 1, UnitPrice: 10.00, Title: "Chair", ImageURL: "https://img/chair", LineTotal: 10.00},
			},
			wantTotal: 10.00,
		},
		{
			name:   "second add merges into the existing line",
			events: []CartEvent{AddToCart{Product: testP1}, AddToCart{Product: testP1}},
			wantLines: map[string]model.CartItem{
				"p1": {Quantity: 2, UnitPrice: 10.00, Title: "Chair", ImageURL: "https://img/chair", LineTotal: 20.00},
			},
			wantTotal: 20.00,
		},
		{
			name:   "different products get separate lines",
			events: []CartEvent{AddToCart{Product: testP1}, AddToCart{Product: testP2}},
			wantLines: map[string]model.CartItem{
				"p1": {Quantity: 1, UnitPrice: 10.00, Title: "Chair", ImageURL: "https://img/chair", LineTotal: 10.00},
				"p2": {Quantity: 1, UnitPrice: 5.00, Title: "Table", ImageURL: "https://img/table", LineTotal: 5.00},
			},
			wantTotal: 15.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewCartState()
			for _, ev := range tt.events {
				state = ReduceCart(state, ev)
				assertCartInvariants(t, state)
			}

			assert.Equal(t, tt.wantLines, state.Lines)
			assert.InDelta(t, tt.wantTotal, state.TotalAmount, 1e-9)
		})
	}
}

func TestReduceCart_RemoveFromCart(t *testing.T) {
	t.Run("quantity above one decrements the line", func(t *testing.T) {
		state := NewCartState()
		state = ReduceCart(state, AddToCart{Product: testP1})
		state = ReduceCart(state, AddToCart{Product: testP1})

		state = ReduceCart(state, RemoveFromCart{ProductID: "p1"})

		require.Contains(t, state.Lines, "p1")
		assert.Equal(t, 1, state.Lines["p1"].Quantity)
		assert.InDelta(t, 10.00, state.Lines["p1"].LineTotal, 1e-9)
		assert.InDelta(t, 10.00, state.TotalAmount, 1e-9)
		assertCartInvariants(t, state)
	})

	t.Run("quantity of one deletes the line", func(t *testing.T) {
		state := NewCartState()
		state = ReduceCart(state, AddToCart{Product: testP1})

		state = ReduceCart(state, RemoveFromCart{ProductID: "p1"})

		assert.NotContains(t, state.Lines, "p1")
		assert.Empty(t, state.Lines)
		assert.Zero(t, state.TotalAmount)
		assertCartInvariants(t, state)
	})

	t.Run("absent product ID is a no-op", func(t *testing.T) {
		state := NewCartState()
		state = ReduceCart(state, AddToCart{Product: testP1})
		before := state

		state = ReduceCart(state, RemoveFromCart{ProductID: "missing"})

		assert.Equal(t, before, state)
		assertCartInvariants(t, state)
	})
}

func TestReduceCart_ClearCart(t *testing.T) {
	state := NewCartState()
	state = ReduceCart(state, AddToCart{Product: testP1})
	state = ReduceCart(state, AddToCart{Product: testP2})

	state = ReduceCart(state, ClearCart{})

	assert.Empty(t, state.Lines)
	assert.Zero(t, state.TotalAmount)

	// Clearing an already empty cart stays empty.
	state = ReduceCart(state, ClearCart{})
	assert.Empty(t, state.Lines)
	assert.Zero(t, state.TotalAmount)
}

func TestReduceCart_ProductDeleted(t *testing.T) {
	t.Run("removes the whole line and subtracts its accumulated total", func(t *testing.T) {
		state := NewCartState()
		state = ReduceCart(state, AddToCart{Product: testP2})
		totalBefore := state.TotalAmount

		// Three units of the same product build a line total of 3x price.
		state = ReduceCart(state, AddToCart{Product: testP1})
		state = ReduceCart(state, AddToCart{Product: testP1})
		state = ReduceCart(state, AddToCart{Product: testP1})
		require.InDelta(t, totalBefore+3*testP1.Price, state.TotalAmount, 1e-9)

		state = ReduceCart(state, ProductDeleted{ProductID: "p1"})

		assert.NotContains(t, state.Lines, "p1")
		assert.InDelta(t, totalBefore, state.TotalAmount, 1e-9)
		assertCartInvariants(t, state)
	})

	t.Run("absent product ID is a no-op", func(t *testing.T) {
		state := NewCartState()
		state = ReduceCart(state, AddToCart{Product: testP1})
		before := state

		state = ReduceCart(state, ProductDeleted{ProductID: "missing"})

		assert.Equal(t, before, state)
	})
}

// TestReduceCart_Scenario walks the reference add/remove/clear sequence and
// checks the running totals after every step.
func TestReduceCart_Scenario(t *testing.T) {
	state := NewCartState()

	state = ReduceCart(state, AddToCart{Product: testP1})
	assert.Equal(t, 1, state.Lines["p1"].Quantity)
	assert.InDelta(t, 10.00, state.TotalAmount, 1e-9)

	state = ReduceCart(state, AddToCart{Product: testP1})
	assert.Equal(t, 2, state.Lines["p1"].Quantity)
	assert.InDelta(t, 20.00, state.Lines["p1"].LineTotal, 1e-9)
	assert.InDelta(t, 20.00, state.TotalAmount, 1e-9)

	state = ReduceCart(state, AddToCart{Product: testP2})
	assert.InDelta(t, 25.00, state.TotalAmount, 1e-9)

	state = ReduceCart(state, RemoveFromCart{ProductID: "p1"})
	assert.Equal(t, 1, state.Lines["p1"].Quantity)
	assert.InDelta(t, 10.00, state.Lines["p1"].LineTotal, 1e-9)
	assert.InDelta(t, 15.00, state.TotalAmount, 1e-9)

	state = ReduceCart(state, ClearCart{})
	assert.Empty(t, state.Lines)
	assert.Zero(t, state.TotalAmount)
}

func TestReduceCart_DoesNotMutateInput(t *testing.T) {
	state := NewCartState()
	state = ReduceCart(state, AddToCart{Product: testP1})

	prior := CartState{Lines: copyCartLines(state.Lines), TotalAmount: state.TotalAmount}

	_ = ReduceCart(state, AddToCart{Product: testP1})
	_ = ReduceCart(state, AddToCart{Product: testP2})
	_ = ReduceCart(state, RemoveFromCart{ProductID: "p1"})
	_ = ReduceCart(state, ProductDeleted{ProductID: "p1"})
	_ = ReduceCart(state, ClearCart{})

	assert.Equal(t, prior, state)
}

func TestCartState_Snapshot(t *testing.T) {
	state := NewCartState()
	state = ReduceCart(state, AddToCart{Product: testP2})
	state = ReduceCart(state, AddToCart{Product: testP1})
	state = ReduceCart(state, AddToCart{Product: testP1})

	lines := state.Snapshot()

	require.Len(t, lines, 2)
	// Sorted by product ID regardless of insertion order.
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.InDelta(t, 20.00, lines[0].LineTotal, 1e-9)
	assert.Equal(t, "p2", lines[1].ProductID)
	assert.Equal(t, 1, lines[1].Quantity)

	assert.Empty(t, NewCartState().Snapshot())
}
