package store

import "kartshop/internal/model"

// OrderState holds the order history in the order the backend returned it,
// with newly placed orders appended.
type OrderState struct {
	Orders []model.Order
}

// ReduceOrders folds an order event into a new order state. The input
// state is never mutated.
func ReduceOrders(state OrderState, ev OrderEvent) OrderState {
	switch e := ev.(type) {
	case OrdersLoaded:
		return OrderState{Orders: append([]model.Order(nil), e.Orders...)}

	case OrderAdded:
		orders := make([]model.Order, 0, len(state.Orders)+1)
		orders = append(orders, state.Orders...)
		return OrderState{Orders: append(orders, e.Order)}

	case OrderDeleted:
		orders := make([]model.Order, 0, len(state.Orders))
		for _, o := range state.Orders {
			if o.ID != e.OrderID {
				orders = append(orders, o)
			}
		}
		return OrderState{Orders: orders}
	}

	return state
}
