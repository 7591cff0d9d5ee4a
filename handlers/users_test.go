package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"restaurant-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(models.RoleAdmin, "admin@example.com")
	env.createUser(models.RoleWaiter, "waiter@example.com")
	inactive := env.createUser(models.RoleClient, "inactive@example.com")
	require.NoError(t, env.db.Model(inactive).Update("is_active", false).Error)

	w := env.request(http.MethodGet, "/api/admin/users", nil, env.token(admin))
	requireStatus(t, w, http.StatusOK)
	assert.EqualValues(t, 3, decodeBody(t, w)["total"])

	w = env.request(http.MethodGet, "/api/admin/users?role=WAITER", nil, env.token(admin))
	requireStatus(t, w, http.StatusOK)
	assert.EqualValues(t, 1, decodeBody(t, w)["total"])

	w = env.request(http.MethodGet, "/api/admin/users?is_active=false", nil, env.token(admin))
	requireStatus(t, w, http.StatusOK)
	assert.EqualValues(t, 1, decodeBody(t, w)["total"])

	w = env.request(http.MethodGet, "/api/admin/users?email=waiter", nil, env.token(admin))
	requireStatus(t, w, http.StatusOK)
	assert.EqualValues(t, 1, decodeBody(t, w)["total"])

	w = env.request(http.MethodGet, "/api/admin/users?is_active=maybe", nil, env.token(admin))
	requireStatus(t, w, http.StatusBadRequest)

	w = env.request(http.MethodGet, "/api/admin/users?role=MANAGER", nil, env.token(admin))
	requireStatus(t, w, http.StatusBadRequest)

	// password hashes never leave the API
	w = env.request(http.MethodGet, "/api/admin/users", nil, env.token(admin))
	assert.NotContains(t, w.Body.String(), "password")
}

func TestUpdateUser(t *testing.T) {
	t.Run("role change", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.createUser(models.RoleAdmin, "admin@example.com")
		user := env.createUser(models.RoleClient, "user@example.com")

		w := env.request(http.MethodPut, fmt.Sprintf("/api/admin/users/%d", user.ID), map[string]any{
			"role": "waiter",
		}, env.token(admin))
		requireStatus(t, w, http.StatusOK)

		var stored models.User
		require.NoError(t, env.db.First(&stored, user.ID).Error)
		assert.Equal(t, models.RoleWaiter, stored.Role)
	})

	t.Run("email collision", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.createUser(models.RoleAdmin, "admin@example.com")
		env.createUser(models.RoleClient, "taken@example.com")
		user := env.createUser(models.RoleClient, "user@example.com")

		w := env.request(http.MethodPut, fmt.Sprintf("/api/admin/users/%d", user.ID), map[string]any{
			"email": "taken@example.com",
		}, env.token(admin))
		requireStatus(t, w, http.StatusConflict)
	})

	t.Run("non-admin is rejected by the route guard", func(t *testing.T) {
		env := newTestEnv(t)
		waiter := env.createUser(models.RoleWaiter, "waiter@example.com")

		w := env.request(http.MethodPut, fmt.Sprintf("/api/admin/users/%d", waiter.ID), map[string]any{
			"role": "ADMIN",
		}, env.token(waiter))
		requireStatus(t, w, http.StatusForbidden)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("removes the account and its orders", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.createUser(models.RoleAdmin, "admin@example.com")
		client := env.createUser(models.RoleClient, "leaving@example.com")
		order := env.createOrder(client, models.StatusDelivered, nil)
		require.NoError(t, env.db.Create(&models.OrderDetail{
			OrderID: order.ID, ProductName: "Burger", Quantity: 1, UnitPrice: 9.99,
		}).Error)

		w := env.request(http.MethodDelete, "/api/admin/users", map[string]any{
			"email": "leaving@example.com",
		}, env.token(admin))
		requireStatus(t, w, http.StatusOK)

		var users, orders, details int64
		env.db.Model(&models.User{}).Where("email = ?", "leaving@example.com").Count(&users)
		env.db.Model(&models.Order{}).Count(&orders)
		env.db.Model(&models.OrderDetail{}).Count(&details)
		assert.EqualValues(t, 0, users)
		assert.EqualValues(t, 0, orders)
		assert.EqualValues(t, 0, details)
	})

	t.Run("unknown email", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.createUser(models.RoleAdmin, "admin@example.com")

		w := env.request(http.MethodDelete, "/api/admin/users", map[string]any{
			"email": "ghost@example.com",
		}, env.token(admin))
		requireStatus(t, w, http.StatusNotFound)
	})
}

func TestTables(t *testing.T) {
	t.Run("new tables start free", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.createUser(models.RoleAdmin, "admin@example.com")

		w := env.request(http.MethodPost, "/api/admin/tables", map[string]any{
			"number": 12, "chairs": 6,
		}, env.token(admin))
		requireStatus(t, w, http.StatusCreated)

		var stored models.Table
		require.NoError(t, env.db.Where("number = ?", 12).First(&stored).Error)
		assert.Equal(t, models.TableFree, stored.Status)
	})

	t.Run("status edit validates the token", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.createUser(models.RoleAdmin, "admin@example.com")
		table := env.createTable(1, models.TableFree)

		w := env.request(http.MethodPut, fmt.Sprintf("/api/admin/tables/%d", table.ID), map[string]any{
			"status": "occupied",
		}, env.token(admin))
		requireStatus(t, w, http.StatusOK)

		var stored models.Table
		require.NoError(t, env.db.First(&stored, table.ID).Error)
		assert.Equal(t, models.TableOccupied, stored.Status)

		w = env.request(http.MethodPut, fmt.Sprintf("/api/admin/tables/%d", table.ID), map[string]any{
			"status": "BROKEN",
		}, env.token(admin))
		requireStatus(t, w, http.StatusBadRequest)
	})

	t.Run("public listing is ordered by number", func(t *testing.T) {
		env := newTestEnv(t)
		env.createTable(3, models.TableFree)
		env.createTable(1, models.TableOccupied)
		env.createTable(2, models.TableFree)

		w := env.request(http.MethodGet, "/api/tables", nil, "")
		requireStatus(t, w, http.StatusOK)

		tables := decodeBody(t, w)["tables"].([]any)
		require.Len(t, tables, 3)
		assert.EqualValues(t, 1, tables[0].(map[string]any)["number"])
		assert.EqualValues(t, 3, tables[2].(map[string]any)["number"])
	})
}
