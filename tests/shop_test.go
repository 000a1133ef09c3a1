package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FidelisKagashe26/GodCares/backend/models"
)

func seedProduct(t *testing.T, title string, price float64, inventory int) models.Product {
	t.Helper()

	resp := doRequest(t, "POST", "/api/admin/shop/products", adminToken, map[string]interface{}{
		"title":        title,
		"price":        price,
		"inventory":    inventory,
		"is_published": true,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var product models.Product
	body := decodeBody(t, resp)
	require.NoError(t, db.First(&product, uint(body["ID"].(float64))).Error)
	return product
}

// cartRequest is doRequest plus the cart token header.
func cartRequest(t *testing.T, method, path, cartToken string, body interface{}) *http.Response {
	t.Helper()

	var jsonData []byte
	if body != nil {
		jsonData, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(jsonData))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cartToken != "" {
		req.Header.Set("X-Cart-Token", cartToken)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func testCartFlow(t *testing.T) {
	shirt := seedProduct(t, "Faith T-Shirt", 15000, 10)
	mug := seedProduct(t, "Scripture Mug", 8000, 5)

	// First add mints a cart token.
	resp := cartRequest(t, "POST", "/api/shop/cart", "", map[string]interface{}{
		"product_id": shirt.ID,
		"quantity":   2,
		"size":       "L",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cart := decodeBody(t, resp)
	token := cart["cart_token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, float64(30000), cart["total"])

	// Second product on the same token.
	resp = cartRequest(t, "POST", "/api/shop/cart", token, map[string]interface{}{
		"product_id": mug.ID,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cart = decodeBody(t, resp)
	assert.Len(t, cart["items"], 2)
	assert.Equal(t, float64(38000), cart["total"])

	// Quantities over inventory are rejected.
	resp = cartRequest(t, "POST", "/api/shop/cart", token, map[string]interface{}{
		"product_id": mug.ID,
		"quantity":   50,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Removing a line.
	resp = cartRequest(t, "DELETE", "/api/shop/cart/"+strconv.Itoa(int(mug.ID)), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cart = decodeBody(t, resp)
	assert.Len(t, cart["items"], 1)
	assert.Equal(t, float64(30000), cart["total"])
}

func testCheckoutDecrementsInventory(t *testing.T) {
	book := seedProduct(t, "Devotional Book", 12000, 4)

	resp := cartRequest(t, "POST", "/api/shop/cart", "", map[string]interface{}{
		"product_id": book.ID,
		"quantity":   3,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	token := decodeBody(t, resp)["cart_token"].(string)

	// Guest checkout needs contact details.
	resp = cartRequest(t, "POST", "/api/shop/checkout", token, map[string]interface{}{
		"phone": "+255700000001",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = cartRequest(t, "POST", "/api/shop/checkout", token, map[string]interface{}{
		"full_name": "Guest Buyer",
		"phone":     "+255700000001",
		"address":   "Dar es Salaam",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	order := decodeBody(t, resp)
	assert.Equal(t, models.OrderPending, order["status"])
	assert.Equal(t, float64(36000), order["total"])
	assert.NotEmpty(t, order["number"])
	assert.Nil(t, order["user_id"])

	var stored models.Order
	require.NoError(t, db.Preload("Items").
		First(&stored, uint(order["ID"].(float64))).Error)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 3, stored.Items[0].Quantity)
	assert.Equal(t, 12000.0, stored.Items[0].UnitPrice)

	// Inventory went down and the cart is gone.
	var product models.Product
	db.First(&product, book.ID)
	assert.Equal(t, 1, product.Inventory)

	resp = cartRequest(t, "GET", "/api/shop/cart", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody(t, resp)["items"], 0)

	// A second checkout on the emptied cart fails.
	resp = cartRequest(t, "POST", "/api/shop/checkout", token, map[string]interface{}{
		"full_name": "Guest Buyer",
		"phone":     "+255700000001",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Admin can move the order along.
	resp = doRequest(t, "PUT", "/api/admin/shop/orders/"+strconv.Itoa(int(stored.ID))+"/status",
		adminToken, map[string]string{"status": models.OrderConfirmed})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	db.First(&stored, stored.ID)
	assert.Equal(t, models.OrderConfirmed, stored.Status)
}
