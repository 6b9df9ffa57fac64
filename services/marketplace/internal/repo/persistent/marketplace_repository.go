package persistent

import (
	"context"
	"fmt"

	"creatitube/pkg/kv"
	"creatitube/pkg/models"
)

var ErrProductNotFound = fmt.Errorf("product %w", models.ErrNotFound)

type MarketplaceRepository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	AddProduct(ctx context.Context, product *models.Product) error
	// UpdateProduct applies fn to the product with id and stores the result.
	UpdateProduct(ctx context.Context, id string, fn func(product *models.Product) error) (*models.Product, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	// PlaceOrder builds an order from the current product with fn, prepends
	// it and stores the modified product, all in one transaction.
	PlaceOrder(ctx context.Context, productID string, fn func(product *models.Product) (*models.Order, error)) (*models.Order, *models.Product, error)
}

type marketplaceRepository struct {
	store kv.Store
}

func NewMarketplaceRepository(store kv.Store) MarketplaceRepository {
	return &marketplaceRepository{store: store}
}

func (r *marketplaceRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := kv.Read[[]models.Product](ctx, r.store, kv.KeyProducts)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (r *marketplaceRepository) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	idx := models.FindProduct(products, id)
	if idx < 0 {
		return nil, ErrProductNotFound
	}
	return &products[idx], nil
}

func (r *marketplaceRepository) AddProduct(ctx context.Context, product *models.Product) error {
	return r.store.Update(ctx, []string{kv.KeyProducts}, func(tx kv.Tx) error {
		products, err := kv.Load[[]models.Product](tx, kv.KeyProducts)
		if err != nil {
			return err
		}
		return tx.Put(kv.KeyProducts, append(products, *product))
	})
}

func (r *marketplaceRepository) UpdateProduct(ctx context.Context, id string, fn func(product *models.Product) error) (*models.Product, error) {
	var updated models.Product
	err := r.store.Update(ctx, []string{kv.KeyProducts}, func(tx kv.Tx) error {
		products, err := kv.Load[[]models.Product](tx, kv.KeyProducts)
		if err != nil {
			return err
		}
		idx := models.FindProduct(products, id)
		if idx < 0 {
			return ErrProductNotFound
		}
		if err := fn(&products[idx]); err != nil {
			return err
		}
		updated = products[idx]
		return tx.Put(kv.KeyProducts, products)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *marketplaceRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := kv.Read[[]models.Order](ctx, r.store, kv.KeyOrders)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (r *marketplaceRepository) PlaceOrder(ctx context.Context, productID string, fn func(product *models.Product) (*models.Order, error)) (*models.Order, *models.Product, error) {
	var (
		order   models.Order
		product models.Product
	)
	err := r.store.Update(ctx, []string{kv.KeyProducts, kv.KeyOrders}, func(tx kv.Tx) error {
		products, err := kv.Load[[]models.Product](tx, kv.KeyProducts)
		if err != nil {
			return err
		}
		idx := models.FindProduct(products, productID)
		if idx < 0 {
			return ErrProductNotFound
		}

		built, err := fn(&products[idx])
		if err != nil {
			return err
		}

		orders, err := kv.Load[[]models.Order](tx, kv.KeyOrders)
		if err != nil {
			return err
		}
		if err := tx.Put(kv.KeyOrders, append([]models.Order{*built}, orders...)); err != nil {
			return err
		}
		if err := tx.Put(kv.KeyProducts, products); err != nil {
			return err
		}

		order = *built
		product = products[idx]
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &order, &product, nil
}
