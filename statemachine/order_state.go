package statemachine

import (
	"errors"

	"restaurant-api/models"
)

// ErrNotAllowed marks a transition outside the kitchen table
var ErrNotAllowed = errors.New("status transition not allowed for kitchen staff")

// Transition defines a valid state change for a restricted actor
type Transition struct {
	From models.OrderStatus
	To   models.OrderStatus
}

// kitchenTransitions is the authoritative table for KITCHEN-role actors.
// Every other role with order-write access is unrestricted, including moves
// into CANCELLED.
var kitchenTransitions = []Transition{
	{From: models.StatusPending, To: models.StatusInProgress},
	{From: models.StatusInProgress, To: models.StatusReady},
	// Allow reverting if a ready order needs more work
	{From: models.StatusReady, To: models.StatusInProgress},
}

// Build a lookup map for O(1) validation
var kitchenMap = func() map[Transition]bool {
	m := make(map[Transition]bool, len(kitchenTransitions))
	for _, t := range kitchenTransitions {
		m[t] = true
	}
	return m
}()

// CanTransition checks whether the given role may move an order from one
// status to another. Only KITCHEN is constrained.
func CanTransition(role models.UserRole, from, to models.OrderStatus) error {
	if role != models.RoleKitchen {
		return nil
	}
	if kitchenMap[Transition{From: from, To: to}] {
		return nil
	}
	return ErrNotAllowed
}

// ValidTransitionsFrom returns the kitchen's allowed next states
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range kitchenTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// KitchenTransitions returns the full table for documentation endpoints
func KitchenTransitions() []Transition {
	return kitchenTransitions
}
