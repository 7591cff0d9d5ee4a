package models

import (
	"math"
	"time"
)

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusReady      OrderStatus = "READY"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// ValidOrderStatuses lists every accepted status token, for error messages
func ValidOrderStatuses() []OrderStatus {
	return []OrderStatus{
		StatusPending, StatusInProgress, StatusReady,
		StatusDelivered, StatusCancelled,
	}
}

func IsValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case StatusPending, StatusInProgress, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID uint `json:"id" gorm:"primaryKey"`
	// OrderCode is the externally visible identifier, distinct from ID.
	// Collisions are rejected by the uniqueness constraint.
	OrderCode string        `json:"order_code" gorm:"uniqueIndex;not null"`
	UserID    *uint         `json:"user_id"`
	User      *User         `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatorID uint          `json:"creator_id" gorm:"not null"`
	Creator   *User         `json:"-" gorm:"foreignKey:CreatorID"`
	TableID   *uint         `json:"table_id"`
	Table     *Table        `json:"-" gorm:"foreignKey:TableID"`
	Status    OrderStatus   `json:"status" gorm:"not null;default:'PENDING'"`
	Total     float64       `json:"total" gorm:"type:decimal(10,2);not null"`
	TakeAway  bool          `json:"take_away" gorm:"not null;default:false"`
	Details   []OrderDetail `json:"details" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// OrderDetail is a product line snapshot: name and unit price are copied at
// order time and do not follow later catalog edits. Exactly one of DishID or
// DrinkID is set, classifying the line FOOD or DRINK.
type OrderDetail struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	OrderID     uint    `json:"order_id" gorm:"not null;index"`
	DishID      *uint   `json:"dish_id"`
	DrinkID     *uint   `json:"drink_id"`
	ProductName string  `json:"product_name" gorm:"not null"`
	Quantity    int     `json:"quantity" gorm:"not null"`
	UnitPrice   float64 `json:"unit_price" gorm:"type:decimal(10,2);not null"`
}

// LineKind reports FOOD or DRINK from whichever product reference is set
func (d *OrderDetail) LineKind() string {
	if d.DishID != nil {
		return "FOOD"
	}
	return "DRINK"
}

// Subtotal is unit price times quantity, rounded to 2 decimal places
func (d *OrderDetail) Subtotal() float64 {
	return math.Round(d.UnitPrice*float64(d.Quantity)*100) / 100
}

// NewOrderCode derives the external order identifier from the current time
func NewOrderCode(now time.Time) string {
	return "ORD" + now.UTC().Format("20060102150405")
}

// Serialize resolves relationships to display names: "First Last" for the
// customer and creator, "Guest" when no user is linked.
func (o *Order) Serialize() map[string]any {
	customer := "Guest"
	if o.User != nil {
		customer = o.User.FullName()
	}
	creator := "Guest"
	if o.Creator != nil {
		creator = o.Creator.FullName()
	}

	details := make([]map[string]any, 0, len(o.Details))
	for i := range o.Details {
		d := &o.Details[i]
		details = append(details, map[string]any{
			"id":       d.ID,
			"name":     d.ProductName,
			"quantity": d.Quantity,
			"price":    d.UnitPrice,
			"subtotal": d.Subtotal(),
			"type":     d.LineKind(),
		})
	}

	var table any
	if o.Table != nil {
		table = o.Table
	}

	return map[string]any{
		"id":        o.ID,
		"orderId":   o.OrderCode,
		"userId":    o.UserID,
		"creatorId": o.CreatorID,
		"customer":  customer,
		"creator":   creator,
		"table":     table,
		"status":    o.Status,
		"total":     o.Total,
		"take_away": o.TakeAway,
		"date":      o.CreatedAt.Format("2006-01-02"),
		"details":   details,
	}
}

// SerializeDegraded still returns the order's scalar fields when relationship
// loading failed, with placeholder text instead of failing the whole request.
func (o *Order) SerializeDegraded() map[string]any {
	return map[string]any{
		"id":        o.ID,
		"orderId":   o.OrderCode,
		"userId":    o.UserID,
		"creatorId": o.CreatorID,
		"customer":  "Error loading customer",
		"creator":   "Error loading creator",
		"table":     "Error loading table",
		"status":    o.Status,
		"total":     o.Total,
		"take_away": o.TakeAway,
		"date":      o.CreatedAt.Format("2006-01-02"),
		"details":   []map[string]any{},
	}
}
