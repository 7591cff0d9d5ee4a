package models

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationCompleted ReservationStatus = "COMPLETED"
)

func ValidReservationStatuses() []ReservationStatus {
	return []ReservationStatus{
		ReservationPending, ReservationConfirmed,
		ReservationCancelled, ReservationCompleted,
	}
}

func IsValidReservationStatus(s string) bool {
	switch ReservationStatus(s) {
	case ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted:
		return true
	}
	return false
}

// Reservation references its table by foreign key only; neither side owns
// the other. Table status side effects are applied by the handlers within
// the same transaction as the reservation write.
type Reservation struct {
	ID                uint              `json:"id" gorm:"primaryKey"`
	UserID            *uint             `json:"user_id"`
	GuestName         string            `json:"guest_name" gorm:"not null"`
	GuestPhone        string            `json:"guest_phone" gorm:"not null"`
	Email             string            `json:"email" gorm:"not null"`
	Quantity          int               `json:"quantity" gorm:"not null"`
	TableID           *uint             `json:"table_id"`
	Status            ReservationStatus `json:"status" gorm:"not null;default:'PENDING'"`
	StartDateTime     time.Time         `json:"start_date_time" gorm:"not null"`
	AdditionalDetails string            `json:"additional_details"`
	CreatedAt         time.Time         `json:"created_at"`
}
