package http

import (
	"errors"
	"net/http"

	"creatitube/pkg/middleware"
	"creatitube/pkg/models"
	"creatitube/services/marketplace/internal/entity"
	"creatitube/services/marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
)

type MarketplaceHandler struct {
	marketplaceUseCase usecase.MarketplaceUseCase
}

func NewMarketplaceHandler(marketplaceUseCase usecase.MarketplaceUseCase) *MarketplaceHandler {
	return &MarketplaceHandler{
		marketplaceUseCase: marketplaceUseCase,
	}
}

type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"imageUrl"`
}

type QuantityRequest struct {
	Delta int `json:"delta"`
}

type PurchaseRequest struct {
	ProductID       string                 `json:"productId" binding:"required"`
	Quantity        int                    `json:"quantity"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	Payment         entity.Payment         `json:"payment"`
}

// ListProducts godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {array}   models.Product
// @Router       /products [get]
func (h *MarketplaceHandler) ListProducts(c *gin.Context) {
	products, err := h.marketplaceUseCase.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct godoc
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  models.Product
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [get]
func (h *MarketplaceHandler) GetProduct(c *gin.Context) {
	product, err := h.marketplaceUseCase.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// AddProduct godoc
// @Summary      List a product for sale
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ProductRequest true "Product"
// @Success      201  {object}  models.Product
// @Failure      400  {object}  map[string]string
// @Router       /products [post]
func (h *MarketplaceHandler) AddProduct(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.marketplaceUseCase.AddProduct(c.Request.Context(), user, models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// AdjustQuantity godoc
// @Summary      Change stock
// @Description  Adds delta to the product quantity; the result may not go below zero
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Param        request body QuantityRequest true "Quantity change"
// @Success      200  {object}  models.Product
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /products/{id}/quantity [patch]
func (h *MarketplaceHandler) AdjustQuantity(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.marketplaceUseCase.AdjustQuantity(c.Request.Context(), user, c.Param("id"), req.Delta)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListOrders godoc
// @Summary      List orders
// @Description  Admins see every order, other users their own purchases
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Order
// @Router       /orders [get]
func (h *MarketplaceHandler) ListOrders(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orders, err := h.marketplaceUseCase.ListOrders(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Purchase godoc
// @Summary      Buy a product
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PurchaseRequest true "Purchase"
// @Success      201  {object}  entity.Receipt
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /orders [post]
func (h *MarketplaceHandler) Purchase(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receipt, err := h.marketplaceUseCase.Purchase(c.Request.Context(), user, entity.Purchase{
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		ShippingAddress: req.ShippingAddress,
		Payment:         req.Payment,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

// Dashboard godoc
// @Summary      Admin dashboard
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.Dashboard
// @Failure      403  {object}  map[string]string
// @Router       /admin/dashboard [get]
func (h *MarketplaceHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.marketplaceUseCase.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
