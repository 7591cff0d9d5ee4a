package models

// TableStatus reflects the most recent order/reservation action on a table
type TableStatus string

const (
	TableFree     TableStatus = "FREE"
	TableReserved TableStatus = "RESERVED"
	TableOccupied TableStatus = "OCCUPIED"
)

func IsValidTableStatus(s string) bool {
	switch TableStatus(s) {
	case TableFree, TableReserved, TableOccupied:
		return true
	}
	return false
}

type Table struct {
	ID     uint        `json:"id" gorm:"primaryKey"`
	Number int         `json:"number" gorm:"not null"`
	Chairs int         `json:"chairs" gorm:"not null"`
	Status TableStatus `json:"status" gorm:"not null;default:'FREE'"`
}
