package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FidelisKagashe26/GodCares/backend/cache"
	"github.com/FidelisKagashe26/GodCares/backend/config"
	"github.com/FidelisKagashe26/GodCares/backend/models"
	"github.com/FidelisKagashe26/GodCares/backend/utils"
)

type ShopController struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Carts *cache.CartStore
}

func NewShopController(db *gorm.DB, cfg *config.Config, carts *cache.CartStore) *ShopController {
	return &ShopController{DB: db, Cfg: cfg, Carts: carts}
}

// cartToken reads the client's cart token, minting one when absent. The token
// is echoed back in every cart response so the client can persist it.
func cartToken(c *fiber.Ctx) string {
	token := c.Get("X-Cart-Token")
	if token == "" {
		token = uuid.NewString()
	}
	return token
}

// --- Products ---

func (sc *ShopController) GetProducts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := sc.DB.Model(&models.Product{}).Where("is_published = ?", true)

	if categorySlug := c.Query("category"); categorySlug != "" {
		var category models.ProductCategory
		if err := sc.DB.Where("slug = ?", categorySlug).First(&category).Error; err == nil {
			query = query.Where("category_id = ?", category.ID)
		}
	}
	if c.Query("featured") == "true" {
		query = query.Where("featured = ?", true)
	}

	var total int64
	query.Count(&total)

	var products []models.Product
	if err := query.Order("created_at desc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch products",
		})
	}

	return utils.Paginate(c, products, total, page, pageSize)
}

func (sc *ShopController) GetProduct(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var product models.Product
	if err := sc.DB.Where("slug = ? AND is_published = ?", slug, true).
		Preload("Gallery").First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch product",
		})
	}
	return c.JSON(product)
}

func (sc *ShopController) CreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if product.Title == "" || product.Price <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title and a positive price are required",
		})
	}
	if product.Slug == "" {
		product.Slug = utils.UniqueSlug(sc.DB, "products", product.Title)
	}
	if err := sc.DB.Create(&product).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not create product",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (sc *ShopController) UpdateProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product ID",
		})
	}

	var product models.Product
	if err := sc.DB.First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	type UpdateInput struct {
		Title          *string  `json:"title"`
		Description    *string  `json:"description"`
		ImageURL       *string  `json:"image_url"`
		Price          *float64 `json:"price"`
		CompareAtPrice *float64 `json:"compare_at_price"`
		Inventory      *int     `json:"inventory"`
		Sizes          *string  `json:"sizes"`
		Colors         *string  `json:"colors"`
		Featured       *bool    `json:"featured"`
		IsPublished    *bool    `json:"is_published"`
		CategoryID     *uint    `json:"category_id"`
	}
	var input UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Title != nil {
		product.Title = *input.Title
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.CompareAtPrice != nil {
		product.CompareAtPrice = input.CompareAtPrice
	}
	if input.Inventory != nil {
		product.Inventory = *input.Inventory
	}
	if input.Sizes != nil {
		product.Sizes = *input.Sizes
	}
	if input.Colors != nil {
		product.Colors = *input.Colors
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}
	if input.IsPublished != nil {
		product.IsPublished = *input.IsPublished
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}

	if err := sc.DB.Save(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update product",
		})
	}
	return c.JSON(product)
}

func (sc *ShopController) GetProductCategories(c *fiber.Ctx) error {
	var categories []models.ProductCategory
	if err := sc.DB.Order("name asc").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch categories",
		})
	}
	return c.JSON(categories)
}

func (sc *ShopController) CreateProductCategory(c *fiber.Ctx) error {
	var category models.ProductCategory
	if err := c.BodyParser(&category); err != nil || category.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}
	if category.Slug == "" {
		category.Slug = utils.UniqueSlug(sc.DB, "product_categories", category.Name)
	}
	if err := sc.DB.Create(&category).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not create category",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// --- Cart ---

func (sc *ShopController) cartResponse(c *fiber.Ctx, token string, cart cache.Cart) error {
	items := make([]fiber.Map, 0, len(cart))
	total := 0.0

	for _, item := range cart {
		var product models.Product
		if err := sc.DB.First(&product, item.ProductID).Error; err != nil {
			continue
		}
		line := product.Price * float64(item.Quantity)
		total += line
		items = append(items, fiber.Map{
			"product_id": product.ID,
			"title":      product.Title,
			"slug":       product.Slug,
			"image_url":  product.ImageURL,
			"unit_price": product.Price,
			"quantity":   item.Quantity,
			"size":       item.Size,
			"color":      item.Color,
			"line_total": line,
		})
	}

	return c.JSON(fiber.Map{
		"cart_token": token,
		"items":      items,
		"total":      total,
	})
}

func (sc *ShopController) GetCart(c *fiber.Ctx) error {
	token := cartToken(c)
	cart, err := sc.Carts.Get(c.Context(), token)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load cart",
		})
	}
	return sc.cartResponse(c, token, cart)
}

func (sc *ShopController) AddToCart(c *fiber.Ctx) error {
	type AddInput struct {
		ProductID uint   `json:"product_id"`
		Quantity  int    `json:"quantity"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}
	var input AddInput
	if err := c.BodyParser(&input); err != nil || input.ProductID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "product_id is required",
		})
	}
	if input.Quantity < 1 {
		input.Quantity = 1
	}

	var product models.Product
	if err := sc.DB.Where("is_published = ?", true).First(&product, input.ProductID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}
	if product.Inventory < input.Quantity {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Not enough inventory",
		})
	}

	token := cartToken(c)
	cart, err := sc.Carts.Get(c.Context(), token)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load cart",
		})
	}

	item := cart[product.ID]
	item.ProductID = product.ID
	item.Quantity += input.Quantity
	item.Size = input.Size
	item.Color = input.Color
	cart[product.ID] = item

	if err := sc.Carts.Save(c.Context(), token, cart); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save cart",
		})
	}
	return sc.cartResponse(c, token, cart)
}

func (sc *ShopController) RemoveFromCart(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product ID",
		})
	}

	token := cartToken(c)
	cart, err := sc.Carts.Get(c.Context(), token)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load cart",
		})
	}

	delete(cart, uint(productID))

	if err := sc.Carts.Save(c.Context(), token, cart); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save cart",
		})
	}
	return sc.cartResponse(c, token, cart)
}

// --- Checkout and orders ---

// Checkout turns the cart into an order. Works for guests too: when no valid
// token is supplied the order has no user attached.
func (sc *ShopController) Checkout(c *fiber.Ctx) error {
	type CheckoutInput struct {
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
		Email    string `json:"email"`
		Address  string `json:"address"`
		Notes    string `json:"notes"`
	}
	var input CheckoutInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.FullName == "" || input.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Full name and phone are required",
		})
	}

	token := cartToken(c)
	cart, err := sc.Carts.Get(c.Context(), token)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load cart",
		})
	}
	if len(cart) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cart is empty",
		})
	}

	var userID *uint
	if id, err := utils.ExtractUserIDFromToken(c, sc.Cfg); err == nil {
		userID = &id
	}

	var order models.Order
	err = sc.DB.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			Number:   orderNumber(),
			UserID:   userID,
			FullName: input.FullName,
			Phone:    input.Phone,
			Email:    input.Email,
			Address:  input.Address,
			Notes:    input.Notes,
			Status:   models.OrderPending,
		}

		for _, item := range cart {
			var product models.Product
			if err := tx.Where("is_published = ?", true).First(&product, item.ProductID).Error; err != nil {
				return fmt.Errorf("product %d no longer available", item.ProductID)
			}
			if product.Inventory < item.Quantity {
				return fmt.Errorf("not enough inventory for %s", product.Title)
			}

			order.Items = append(order.Items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
				Size:      item.Size,
				Color:     item.Color,
			})
			order.Total += product.Price * float64(item.Quantity)

			if err := tx.Model(&product).
				UpdateColumn("inventory", gorm.Expr("inventory - ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		return tx.Create(&order).Error
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	sc.Carts.Clear(c.Context(), token)

	return c.Status(fiber.StatusCreated).JSON(order)
}

func orderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("GC%s-%s", time.Now().Format("20060102"), suffix)
}

func (sc *ShopController) GetMyOrders(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var orders []models.Order
	sc.DB.Where("user_id = ?", userID).Preload("Items").
		Order("created_at desc").Find(&orders)
	return c.JSON(orders)
}

func (sc *ShopController) GetOrders(c *fiber.Ctx) error {
	query := sc.DB.Model(&models.Order{}).Preload("Items")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch orders",
		})
	}
	return c.JSON(orders)
}

func (sc *ShopController) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order ID",
		})
	}

	type StatusInput struct {
		Status string `json:"status"`
	}
	var input StatusInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	switch input.Status {
	case models.OrderPending, models.OrderConfirmed, models.OrderShipped, models.OrderCancelled:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status",
		})
	}

	var order models.Order
	if err := sc.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	order.Status = input.Status
	if err := sc.DB.Save(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update order",
		})
	}
	return c.JSON(order)
}
