package action

import (
	"context"
	"fmt"

	"kartshop/internal/backend"
	"kartshop/internal/model"
	"kartshop/internal/store"

	"github.com/rs/zerolog"
)

// Products creates catalogue events from backend calls.
type Products struct {
	client backend.Client
	logger zerolog.Logger
}

// NewProducts creates the product action creators.
func NewProducts(client backend.Client, logger zerolog.Logger) *Products {
	return &Products{
		client: client,
		logger: logger.With().Str("action", "products").Logger(),
	}
}

// Load fetches the catalogue and replaces both catalogue views.
func (a *Products) Load(ctx context.Context, d Dispatcher) error {
	products, err := a.client.FetchProducts(ctx)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to load products")
		return fmt.Errorf("failed to load products: %w", err)
	}

	d.Dispatch(store.ProductsLoaded{Products: products, UserID: d.CurrentUserID()})

	a.logger.Debug().Int("count", len(products)).Msg("products loaded")
	return nil
}

// Add creates a product owned by the signed-in user and prepends it to
// both catalogue views.
func (a *Products) Add(ctx context.Context, d Dispatcher, fields backend.ProductFields) error {
	token := d.CurrentToken()
	userID := d.CurrentUserID()
	if token == "" || userID == "" {
		return model.ErrNotSignedIn
	}

	if err := validateProductFields(fields); err != nil {
		return err
	}

	created, err := a.client.CreateProduct(ctx, token, userID, fields)
	if err != nil {
		a.logger.Error().Err(err).Str("title", fields.Title).Msg("failed to add product")
		return fmt.Errorf("failed to add product: %w", err)
	}

	d.Dispatch(store.ProductAdded{Product: created})

	a.logger.Debug().Str("product_id", created.ID).Msg("product added")
	return nil
}

// Edit patches a product's descriptive fields and moves it to the front of
// both catalogue views. The product's price and owner are unchanged.
func (a *Products) Edit(ctx context.Context, d Dispatcher, product model.Product) error {
	token := d.CurrentToken()
	if token == "" {
		return model.ErrNotSignedIn
	}

	fields := backend.ProductFields{
		Title:       product.Title,
		ImageURL:    product.ImageURL,
		Description: product.Description,
	}
	if err := validateProductFields(fields); err != nil {
		return err
	}

	if err := a.client.UpdateProduct(ctx, token, product.ID, fields); err != nil {
		a.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to edit product")
		return fmt.Errorf("failed to edit product: %w", err)
	}

	d.Dispatch(store.ProductEdited{Product: product})

	a.logger.Debug().Str("product_id", product.ID).Msg("product edited")
	return nil
}

// Delete removes a product. The dispatched event reaches both the catalog
// and the cart reducer, so any cart line for the product disappears too.
func (a *Products) Delete(ctx context.Context, d Dispatcher, productID string) error {
	token := d.CurrentToken()
	if token == "" {
		return model.ErrNotSignedIn
	}

	if err := a.client.DeleteProduct(ctx, token, productID); err != nil {
		a.logger.Error().Err(err).Str("product_id", productID).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	d.Dispatch(store.ProductDeleted{ProductID: productID})

	a.logger.Debug().Str("product_id", productID).Msg("product deleted")
	return nil
}

func validateProductFields(fields backend.ProductFields) error {
	if fields.Title == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Title is required")
	}
	if fields.Price < 0 {
		return model.NewDomainError(model.ErrCodeInvalidPrice, "Price must not be negative")
	}
	return nil
}
