package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"restaurant-api/config"
	"restaurant-api/handlers"
	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// mailStub records sends instead of dialing SMTP
type mailStub struct {
	verifications []string
	reservations  int
	fail          bool
}

func (m *mailStub) SendVerification(toEmail, verificationURL string) bool {
	if m.fail {
		return false
	}
	m.verifications = append(m.verifications, verificationURL)
	return true
}

func (m *mailStub) SendReservation(res *models.Reservation) bool {
	if m.fail {
		return false
	}
	m.reservations++
	return true
}

type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	cfg    *config.Config
	mail   *mailStub
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.OpenDB(":memory:")
	require.NoError(t, err)
	// The in-memory database lives per connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	cfg := &config.Config{
		Port:        "8080",
		JWTSecret:   []byte("test-secret"),
		FrontendURL: "http://localhost:3000",
	}
	mail := &mailStub{}

	r := gin.New()
	routes.SetupRoutes(r, handlers.New(db, cfg, mail), cfg)

	return &testEnv{t: t, db: db, cfg: cfg, mail: mail, router: r}
}

func (e *testEnv) createUser(role models.UserRole, email string) *models.User {
	e.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(e.t, err)
	user := &models.User{
		Name:         "Test",
		LastName:     "User",
		PhoneNumber:  "555-0100",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	require.NoError(e.t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) token(user *models.User) string {
	e.t.Helper()
	token, err := middleware.GenerateToken(e.cfg.JWTSecret, user)
	require.NoError(e.t, err)
	return token
}

func (e *testEnv) createTable(number int, status models.TableStatus) *models.Table {
	e.t.Helper()
	table := &models.Table{Number: number, Chairs: 4, Status: status}
	require.NoError(e.t, e.db.Create(table).Error)
	return table
}

func (e *testEnv) createDish(name string, price float64) *models.Product {
	e.t.Helper()
	product := &models.Product{
		Name:     name,
		Price:    price,
		IsActive: true,
		Type:     models.TypeDish,
		Dish:     &models.DishDetail{DishType: models.DishMain, PreparationTime: 15},
	}
	require.NoError(e.t, e.db.Create(product).Error)
	return product
}

func (e *testEnv) createDrink(name string, price float64) *models.Product {
	e.t.Helper()
	product := &models.Product{
		Name:     name,
		Price:    price,
		IsActive: true,
		Type:     models.TypeDrink,
		Drink:    &models.DrinkDetail{DrinkType: models.DrinkSoda, Volume: 330},
	}
	require.NoError(e.t, e.db.Create(product).Error)
	return product
}

var orderCodeSeq atomic.Uint64

func (e *testEnv) createOrder(user *models.User, status models.OrderStatus, tableID *uint) *models.Order {
	e.t.Helper()
	order := &models.Order{
		OrderCode: fmt.Sprintf("ORDTEST%06d", orderCodeSeq.Add(1)),
		UserID:    &user.ID,
		CreatorID: user.ID,
		TableID:   tableID,
		Status:    status,
		Total:     10,
	}
	require.NoError(e.t, e.db.Create(order).Error)
	return order
}

// request performs an HTTP call against the full router. token may be empty
// for public routes.
func (e *testEnv) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}
