package store

import "kartshop/internal/model"

// CatalogState holds the two derived catalogue views. MyProducts is the
// subsequence of AllProducts owned by the user recorded at the last full
// load; both views are kept consistent on add, edit and delete without a
// reload.
type CatalogState struct {
	AllProducts []model.Product
	MyProducts  []model.Product
}

// ReduceCatalog folds a catalog event into a new catalog state. The input
// state is never mutated.
func ReduceCatalog(state CatalogState, ev CatalogEvent) CatalogState {
	switch e := ev.(type) {
	case ProductsLoaded:
		all := append([]model.Product(nil), e.Products...)
		mine := []model.Product{}
		for _, p := range e.Products {
			if p.OwnerID == e.UserID {
				mine = append(mine, p)
			}
		}
		return CatalogState{AllProducts: all, MyProducts: mine}

	case ProductAdded:
		// New products are always authored by the current user, so they
		// enter both views.
		return CatalogState{
			AllProducts: prependProduct(e.Product, state.AllProducts),
			MyProducts:  prependProduct(e.Product, state.MyProducts),
		}

	case ProductEdited:
		// The edited product moves to the front of both views.
		return CatalogState{
			AllProducts: prependProduct(e.Product, withoutProduct(state.AllProducts, e.Product.ID)),
			MyProducts:  prependProduct(e.Product, withoutProduct(state.MyProducts, e.Product.ID)),
		}

	case ProductDeleted:
		return CatalogState{
			AllProducts: withoutProduct(state.AllProducts, e.ProductID),
			MyProducts:  withoutProduct(state.MyProducts, e.ProductID),
		}
	}

	return state
}

func prependProduct(p model.Product, products []model.Product) []model.Product {
	out := make([]model.Product, 0, len(products)+1)
	out = append(out, p)
	return append(out, products...)
}

func withoutProduct(products []model.Product, id string) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
