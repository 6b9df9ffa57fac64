package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"creatitube/pkg/logger"
	"creatitube/pkg/metrics"
	"creatitube/pkg/models"
	"creatitube/pkg/queue"
	"creatitube/services/marketplace/internal/entity"
	"creatitube/services/marketplace/internal/repo/persistent"
)

var (
	ErrProductNotFound   = fmt.Errorf("product %w", models.ErrNotFound)
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrForbidden         = errors.New("only the seller or an admin can change this product")
)

// highValueTotal orders jump the notification queue.
const highValueTotal = 100

// OrderPublisher announces committed purchases.
type OrderPublisher interface {
	PublishOrderPlaced(event queue.OrderPlacedEvent) error
}

type MarketplaceUseCase interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	AddProduct(ctx context.Context, seller models.User, product models.Product) (*models.Product, error)
	AdjustQuantity(ctx context.Context, user models.User, id string, delta int) (*models.Product, error)
	ListOrders(ctx context.Context, user models.User) ([]models.Order, error)
	Purchase(ctx context.Context, buyer models.User, purchase entity.Purchase) (*entity.Receipt, error)
	Dashboard(ctx context.Context) (*entity.Dashboard, error)
}

type marketplaceUseCase struct {
	repo      persistent.MarketplaceRepository
	publisher OrderPublisher
	logger    *logger.Logger
	now       func() time.Time
}

func NewMarketplaceUseCase(repo persistent.MarketplaceRepository, publisher OrderPublisher, logger *logger.Logger) MarketplaceUseCase {
	return &marketplaceUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (uc *marketplaceUseCase) ListProducts(ctx context.Context) ([]models.Product, error) {
	return uc.repo.ListProducts(ctx)
}

func (uc *marketplaceUseCase) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := uc.repo.GetProduct(ctx, id)
	return product, uc.mapRepoError(err)
}

func (uc *marketplaceUseCase) AddProduct(ctx context.Context, seller models.User, product models.Product) (*models.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	product.SellerEmail = seller.Email
	if err := product.Validate(); err != nil {
		return nil, err
	}
	product.ID = ""
	product.EnsureID()

	if err := uc.repo.AddProduct(ctx, &product); err != nil {
		uc.logger.Error("Failed to add product: %v", err)
		return nil, fmt.Errorf("failed to add product")
	}
	return &product, nil
}

func (uc *marketplaceUseCase) AdjustQuantity(ctx context.Context, user models.User, id string, delta int) (*models.Product, error) {
	product, err := uc.repo.UpdateProduct(ctx, id, func(p *models.Product) error {
		if !user.IsAdmin() && p.SellerEmail != user.Email {
			return ErrForbidden
		}
		if p.Quantity+delta < 0 {
			return fmt.Errorf("%w: only %d left", ErrInsufficientStock, p.Quantity)
		}
		p.Quantity += delta
		return nil
	})
	return product, uc.mapRepoError(err)
}

func (uc *marketplaceUseCase) ListOrders(ctx context.Context, user models.User) ([]models.Order, error) {
	orders, err := uc.repo.ListOrders(ctx)
	if err != nil || user.IsAdmin() {
		return orders, err
	}
	own := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if order.BuyerEmail == user.Email {
			own = append(own, order)
		}
	}
	return own, nil
}

func (uc *marketplaceUseCase) Purchase(ctx context.Context, buyer models.User, purchase entity.Purchase) (*entity.Receipt, error) {
	if err := purchase.ShippingAddress.Validate(); err != nil {
		return nil, err
	}
	if err := purchase.Payment.Validate(); err != nil {
		return nil, err
	}
	quantity := purchase.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", models.ErrValidation)
	}

	draft := models.Order{
		BuyerEmail:      buyer.Email,
		Quantity:        quantity,
		ShippingAddress: purchase.ShippingAddress,
		PaymentDetails:  purchase.Payment.Details(),
		OrderDate:       uc.now().Truncate(time.Second),
	}
	draft.EnsureID()

	order, product, err := uc.repo.PlaceOrder(ctx, purchase.ProductID, func(p *models.Product) (*models.Order, error) {
		if p.Quantity < quantity {
			return nil, fmt.Errorf("%w: only %d left", ErrInsufficientStock, p.Quantity)
		}
		p.Quantity -= quantity

		order := draft
		order.ProductID = p.ID
		order.ProductName = p.Name
		order.SellerEmail = p.SellerEmail
		order.TotalPrice = p.Price * float64(quantity)
		return &order, nil
	})
	if err != nil {
		return nil, uc.mapRepoError(err)
	}

	metrics.RecordOrder(order.TotalPrice)
	uc.logger.Info("Order %s placed by %s for %d x %s", order.ID, buyer.Email, order.Quantity, order.ProductID)

	if uc.publisher != nil {
		go uc.publish(*order)
	}

	return &entity.Receipt{Order: *order, Product: *product}, nil
}

func (uc *marketplaceUseCase) publish(order models.Order) {
	priority := 5
	if order.TotalPrice >= highValueTotal {
		priority = 8
	}
	event := queue.OrderPlacedEvent{
		OrderID:     order.ID,
		ProductID:   order.ProductID,
		ProductName: order.ProductName,
		SellerEmail: order.SellerEmail,
		BuyerEmail:  order.BuyerEmail,
		Quantity:    order.Quantity,
		TotalPrice:  order.TotalPrice,
		OrderDate:   order.OrderDate,
		Priority:    priority,
	}
	if err := uc.publisher.PublishOrderPlaced(event); err != nil {
		uc.logger.Error("Failed to publish order %s: %v", order.ID, err)
	}
}

func (uc *marketplaceUseCase) Dashboard(ctx context.Context) (*entity.Dashboard, error) {
	orders, err := uc.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &entity.Dashboard{
		TotalOrders:   len(orders),
		TotalProducts: len(products),
		Orders:        orders,
		Products:      products,
	}
	for _, order := range orders {
		dashboard.TotalRevenue += order.TotalPrice
	}
	return dashboard, nil
}

func (uc *marketplaceUseCase) mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistent.ErrProductNotFound):
		return ErrProductNotFound
	case errors.Is(err, ErrInsufficientStock), errors.Is(err, ErrForbidden):
		return err
	}
	uc.logger.Error("Marketplace update failed: %v", err)
	return fmt.Errorf("failed to update marketplace")
}
