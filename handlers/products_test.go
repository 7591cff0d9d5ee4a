package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"restaurant-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	t.Run("dish with a specialization row", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.createUser(models.RoleAdmin, "admin@example.com")

		w := env.request(http.MethodPost, "/api/admin/products", map[string]any{
			"name":             "Caesar Salad",
			"description":      "Romaine, parmesan, croutons",
			"price":            11.50,
			"product_type":     "DISH",
			"dish_type":        "APPETIZER",
			"preparation_time": 10,
		}, env.token(admin))
		requireStatus(t, w, http.StatusCreated)

		var stored models.Product
		require.NoError(t, env.db.Preload("Dish").Where("name = ?", "Caesar Salad").First(&stored).Error)
		assert.Equal(t, models.TypeDish, stored.Type)
		require.NotNil(t, stored.Dish)
		assert.Equal(t, models.DishAppetizer, stored.Dish.DishType)
		assert.Equal(t, 10, stored.Dish.PreparationTime)
		assert.True(t, stored.IsActive)
	})

	t.Run("drink with a specialization row", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.createUser(models.RoleAdmin, "admin@example.com")

		w := env.request(http.MethodPost, "/api/admin/products", map[string]any{
			"name":         "Lemonade",
			"price":        4.25,
			"product_type": "DRINK",
			"drink_type":   "NATURAL",
			"volume":       500,
		}, env.token(admin))
		requireStatus(t, w, http.StatusCreated)

		var stored models.Product
		require.NoError(t, env.db.Preload("Drink").Where("name = ?", "Lemonade").First(&stored).Error)
		assert.Equal(t, models.TypeDrink, stored.Type)
		require.NotNil(t, stored.Drink)
		assert.Equal(t, models.DrinkNatural, stored.Drink.DrinkType)
		assert.Equal(t, 500, stored.Drink.Volume)
	})

	t.Run("dish type is required for a dish", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.createUser(models.RoleAdmin, "admin@example.com")

		w := env.request(http.MethodPost, "/api/admin/products", map[string]any{
			"name":         "Mystery Meal",
			"price":        9.99,
			"product_type": "DISH",
			"dish_type":    "BRUNCH",
		}, env.token(admin))
		requireStatus(t, w, http.StatusBadRequest)
	})

	t.Run("non-admin is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		waiter := env.createUser(models.RoleWaiter, "waiter@example.com")

		w := env.request(http.MethodPost, "/api/admin/products", map[string]any{
			"name":         "Soup",
			"price":        5.00,
			"product_type": "DISH",
			"dish_type":    "MAIN",
		}, env.token(waiter))
		requireStatus(t, w, http.StatusForbidden)
	})

	t.Run("ingredients are linked at creation", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.createUser(models.RoleAdmin, "admin@example.com")
		flour := &models.Ingredient{Name: "Flour", Stock: 100, Unit: "kg"}
		require.NoError(t, env.db.Create(flour).Error)

		w := env.request(http.MethodPost, "/api/admin/products", map[string]any{
			"name":         "Pizza",
			"price":        14.00,
			"product_type": "DISH",
			"dish_type":    "MAIN",
			"ingredients": []map[string]any{
				{"ingredient_id": flour.ID, "quantity": 0.3, "unit": "kg"},
			},
		}, env.token(admin))
		requireStatus(t, w, http.StatusCreated)

		var links int64
		env.db.Model(&models.ProductIngredient{}).Count(&links)
		assert.EqualValues(t, 1, links)
	})
}

func TestListProducts(t *testing.T) {
	env := newTestEnv(t)
	env.createDish("Burger", 12.00)
	env.createDrink("Cola", 3.00)
	hidden := env.createDish("Secret Special", 99.00)
	require.NoError(t, env.db.Model(hidden).Update("is_active", false).Error)

	w := env.request(http.MethodGet, "/api/products", nil, "")
	requireStatus(t, w, http.StatusOK)
	assert.EqualValues(t, 2, decodeBody(t, w)["total"])

	w = env.request(http.MethodGet, "/api/products?type=DRINK", nil, "")
	requireStatus(t, w, http.StatusOK)
	assert.EqualValues(t, 1, decodeBody(t, w)["total"])

	w = env.request(http.MethodGet, "/api/products?search=burg", nil, "")
	requireStatus(t, w, http.StatusOK)
	assert.EqualValues(t, 1, decodeBody(t, w)["total"])

	w = env.request(http.MethodGet, "/api/products?type=SNACK", nil, "")
	requireStatus(t, w, http.StatusBadRequest)
}

func TestUpdateProduct(t *testing.T) {
	t.Run("partial edit keeps the rest", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.createUser(models.RoleAdmin, "admin@example.com")
		dish := env.createDish("Burger", 12.00)

		w := env.request(http.MethodPut, fmt.Sprintf("/api/admin/products/%d", dish.ID), map[string]any{
			"price": 13.50,
		}, env.token(admin))
		requireStatus(t, w, http.StatusOK)

		var stored models.Product
		require.NoError(t, env.db.Preload("Dish").First(&stored, dish.ID).Error)
		assert.InDelta(t, 13.50, stored.Price, 0.0001)
		assert.Equal(t, "Burger", stored.Name)
		require.NotNil(t, stored.Dish)
	})

	t.Run("supplying ingredients replaces the whole set", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.createUser(models.RoleAdmin, "admin@example.com")
		dish := env.createDish("Burger", 12.00)

		beef := &models.Ingredient{Name: "Beef", Stock: 50, Unit: "kg"}
		bun := &models.Ingredient{Name: "Bun", Stock: 200, Unit: "piece"}
		cheese := &models.Ingredient{Name: "Cheese", Stock: 30, Unit: "kg"}
		require.NoError(t, env.db.Create(beef).Error)
		require.NoError(t, env.db.Create(bun).Error)
		require.NoError(t, env.db.Create(cheese).Error)
		require.NoError(t, env.db.Create(&models.ProductIngredient{
			ProductID: dish.ID, IngredientID: beef.ID, Quantity: 0.2,
		}).Error)
		require.NoError(t, env.db.Create(&models.ProductIngredient{
			ProductID: dish.ID, IngredientID: bun.ID, Quantity: 1,
		}).Error)

		w := env.request(http.MethodPut, fmt.Sprintf("/api/admin/products/%d", dish.ID), map[string]any{
			"ingredients": []map[string]any{
				{"ingredient_id": cheese.ID, "quantity": 0.05, "unit": "kg"},
			},
		}, env.token(admin))
		requireStatus(t, w, http.StatusOK)

		var links []models.ProductIngredient
		require.NoError(t, env.db.Where("product_id = ?", dish.ID).Find(&links).Error)
		require.Len(t, links, 1)
		assert.Equal(t, cheese.ID, links[0].IngredientID)
	})

	t.Run("omitting ingredients keeps the existing set", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.createUser(models.RoleAdmin, "admin@example.com")
		dish := env.createDish("Burger", 12.00)
		beef := &models.Ingredient{Name: "Beef", Stock: 50, Unit: "kg"}
		require.NoError(t, env.db.Create(beef).Error)
		require.NoError(t, env.db.Create(&models.ProductIngredient{
			ProductID: dish.ID, IngredientID: beef.ID, Quantity: 0.2,
		}).Error)

		w := env.request(http.MethodPut, fmt.Sprintf("/api/admin/products/%d", dish.ID), map[string]any{
			"name": "Beef Burger",
		}, env.token(admin))
		requireStatus(t, w, http.StatusOK)

		var links int64
		env.db.Model(&models.ProductIngredient{}).Where("product_id = ?", dish.ID).Count(&links)
		assert.EqualValues(t, 1, links)
	})
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(models.RoleAdmin, "admin@example.com")
	dish := env.createDish("Burger", 12.00)
	beef := &models.Ingredient{Name: "Beef", Stock: 50, Unit: "kg"}
	require.NoError(t, env.db.Create(beef).Error)
	require.NoError(t, env.db.Create(&models.ProductIngredient{
		ProductID: dish.ID, IngredientID: beef.ID, Quantity: 0.2,
	}).Error)

	w := env.request(http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", dish.ID), nil, env.token(admin))
	requireStatus(t, w, http.StatusOK)

	var products, dishes, links int64
	env.db.Model(&models.Product{}).Count(&products)
	env.db.Model(&models.DishDetail{}).Count(&dishes)
	env.db.Model(&models.ProductIngredient{}).Count(&links)
	assert.EqualValues(t, 0, products)
	assert.EqualValues(t, 0, dishes)
	assert.EqualValues(t, 0, links)

	// The raw ingredient survives
	var ingredients int64
	env.db.Model(&models.Ingredient{}).Count(&ingredients)
	assert.EqualValues(t, 1, ingredients)
}

func TestGetTopSellingProducts(t *testing.T) {
	env := newTestEnv(t)
	client := env.createUser(models.RoleClient, "client@example.com")
	burger := env.createDish("Burger", 12.00)
	cola := env.createDrink("Cola", 3.00)

	order := env.createOrder(client, models.StatusDelivered, nil)
	for i := 0; i < 3; i++ {
		require.NoError(t, env.db.Create(&models.OrderDetail{
			OrderID: order.ID, DishID: &burger.ID, ProductName: "Burger", Quantity: 1, UnitPrice: 12.00,
		}).Error)
	}
	require.NoError(t, env.db.Create(&models.OrderDetail{
		OrderID: order.ID, DrinkID: &cola.ID, ProductName: "Cola", Quantity: 2, UnitPrice: 3.00,
	}).Error)

	w := env.request(http.MethodGet, "/api/products/top-selling", nil, "")
	requireStatus(t, w, http.StatusOK)

	items := decodeBody(t, w)["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, "Burger", first["name"])
	assert.EqualValues(t, 3, first["total_sold"])
	assert.InDelta(t, 36.00, first["total_revenue"], 0.0001)
}

func TestIngredients(t *testing.T) {
	t.Run("low stock listing", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.createUser(models.RoleAdmin, "admin@example.com")
		require.NoError(t, env.db.Create(&models.Ingredient{Name: "Salt", Stock: 2, Unit: "kg", MinimumStock: 5}).Error)
		require.NoError(t, env.db.Create(&models.Ingredient{Name: "Rice", Stock: 5, Unit: "kg", MinimumStock: 5}).Error)
		require.NoError(t, env.db.Create(&models.Ingredient{Name: "Oil", Stock: 20, Unit: "l", MinimumStock: 5}).Error)

		w := env.request(http.MethodGet, "/api/admin/ingredients/low-stock", nil, env.token(admin))
		requireStatus(t, w, http.StatusOK)

		ingredients := decodeBody(t, w)["ingredients"].([]any)
		assert.Len(t, ingredients, 2)
	})

	t.Run("create and update", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.createUser(models.RoleAdmin, "admin@example.com")

		w := env.request(http.MethodPost, "/api/admin/ingredients", map[string]any{
			"name": "Tomato", "stock": 40, "unit": "kg", "minimum_stock": 10,
		}, env.token(admin))
		requireStatus(t, w, http.StatusCreated)

		var stored models.Ingredient
		require.NoError(t, env.db.Where("name = ?", "Tomato").First(&stored).Error)

		w = env.request(http.MethodPut, fmt.Sprintf("/api/admin/ingredients/%d", stored.ID), map[string]any{
			"stock": 15,
		}, env.token(admin))
		requireStatus(t, w, http.StatusOK)

		require.NoError(t, env.db.First(&stored, stored.ID).Error)
		assert.Equal(t, 15, stored.Stock)
		assert.Equal(t, "Tomato", stored.Name)
	})

	t.Run("set product ingredients replaces", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.createUser(models.RoleAdmin, "admin@example.com")
		dish := env.createDish("Burger", 12.00)
		beef := &models.Ingredient{Name: "Beef", Stock: 50, Unit: "kg"}
		bun := &models.Ingredient{Name: "Bun", Stock: 200, Unit: "piece"}
		require.NoError(t, env.db.Create(beef).Error)
		require.NoError(t, env.db.Create(bun).Error)
		require.NoError(t, env.db.Create(&models.ProductIngredient{
			ProductID: dish.ID, IngredientID: beef.ID, Quantity: 0.2,
		}).Error)

		w := env.request(http.MethodPost, fmt.Sprintf("/api/admin/products/%d/ingredients", dish.ID), map[string]any{
			"ingredients": []map[string]any{
				{"ingredient_id": bun.ID, "quantity": 1, "unit": "piece"},
			},
		}, env.token(admin))
		requireStatus(t, w, http.StatusOK)

		var links []models.ProductIngredient
		require.NoError(t, env.db.Where("product_id = ?", dish.ID).Find(&links).Error)
		require.Len(t, links, 1)
		assert.Equal(t, bun.ID, links[0].IngredientID)
	})
}
