package store

import (
	"sort"

	"kartshop/internal/model"
)

// CartState holds the active cart. Lines is keyed by product ID; its
// iteration order carries no meaning. TotalAmount always equals the sum of
// the lines' LineTotal values and is exactly 0 when Lines is empty.
type CartState struct {
	Lines       map[string]model.CartItem
	TotalAmount float64
}

// NewCartState returns an empty cart.
func NewCartState() CartState {
	return CartState{Lines: map[string]model.CartItem{}}
}

// Snapshot returns the cart lines as an order-ready slice, sorted by
// product ID so repeated snapshots of the same cart are identical.
func (s CartState) Snapshot() []model.OrderLine {
	lines := make([]model.OrderLine, 0, len(s.Lines))
	for id, item := range s.Lines {
		lines = append(lines, model.OrderLine{
			ProductID: id,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Title:     item.Title,
			ImageURL:  item.ImageURL,
			LineTotal: item.LineTotal,
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines
}

// ReduceCart folds a cart event into a new cart state. The input state is
// never mutated and every event has a total, defined transition.
func ReduceCart(state CartState, ev CartEvent) CartState {
	switch e := ev.(type) {
	case AddToCart:
		p := e.Product
		lines := copyCartLines(state.Lines)
		if item, ok := lines[p.ID]; ok {
			item.Quantity++
			item.LineTotal += p.Price
			lines[p.ID] = item
		} else {
			lines[p.ID] = model.CartItem{
				Quantity:  1,
				UnitPrice: p.Price,
				Title:     p.Title,
				ImageURL:  p.ImageURL,
				LineTotal: p.Price,
			}
		}
		return CartState{Lines: lines, TotalAmount: state.TotalAmount + p.Price}

	case RemoveFromCart:
		item, ok := state.Lines[e.ProductID]
		if !ok {
			return state
		}
		lines := copyCartLines(state.Lines)
		if item.Quantity == 1 {
			delete(lines, e.ProductID)
		} else {
			item.Quantity--
			item.LineTotal -= item.UnitPrice
			lines[e.ProductID] = item
		}
		return CartState{Lines: lines, TotalAmount: state.TotalAmount - item.UnitPrice}

	case ClearCart:
		return NewCartState()

	case ProductDeleted:
		item, ok := state.Lines[e.ProductID]
		if !ok {
			return state
		}
		lines := copyCartLines(state.Lines)
		delete(lines, e.ProductID)
		// The whole line goes, so the accumulated LineTotal is subtracted,
		// not a single unit price.
		return CartState{Lines: lines, TotalAmount: state.TotalAmount - item.LineTotal}
	}

	return state
}

func copyCartLines(lines map[string]model.CartItem) map[string]model.CartItem {
	out := make(map[string]model.CartItem, len(lines))
	for id, item := range lines {
		out[id] = item
	}
	return out
}
