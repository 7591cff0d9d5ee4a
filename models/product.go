package models

// ProductType discriminates the two catalog variants
type ProductType string

const (
	TypeDish  ProductType = "DISH"
	TypeDrink ProductType = "DRINK"
)

type DishType string

const (
	DishAppetizer DishType = "APPETIZER"
	DishMain      DishType = "MAIN"
	DishDessert   DishType = "DESSERT"
)

func IsValidDishType(s string) bool {
	switch DishType(s) {
	case DishAppetizer, DishMain, DishDessert:
		return true
	}
	return false
}

type DrinkType string

const (
	DrinkSoda    DrinkType = "SODA"
	DrinkNatural DrinkType = "NATURAL"
	DrinkBeer    DrinkType = "BEER"
	DrinkSpirits DrinkType = "SPIRITS"
)

func IsValidDrinkType(s string) bool {
	switch DrinkType(s) {
	case DrinkSoda, DrinkNatural, DrinkBeer, DrinkSpirits:
		return true
	}
	return false
}

// Product is the catalog entry. Every row carries exactly one specialization
// row (DishDetail or DrinkDetail) selected by Type.
type Product struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Name        string      `json:"name" gorm:"not null"`
	Description string      `json:"description"`
	Price       float64     `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL    string      `json:"image_url"`
	IsActive    bool        `json:"is_active" gorm:"default:true"`
	Type        ProductType `json:"product_type" gorm:"not null"`

	Dish  *DishDetail  `json:"dish,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Drink *DrinkDetail `json:"drink,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type DishDetail struct {
	ProductID uint     `json:"-" gorm:"primaryKey"`
	DishType  DishType `json:"dish_type" gorm:"not null"`
	// minutes
	PreparationTime int `json:"preparation_time"`
}

type DrinkDetail struct {
	ProductID uint      `json:"-" gorm:"primaryKey"`
	DrinkType DrinkType `json:"drink_type" gorm:"not null"`
	// milliliters
	Volume int `json:"volume"`
}

type Ingredient struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"not null"`
	Stock        int    `json:"stock" gorm:"not null;default:0"`
	Unit         string `json:"unit" gorm:"not null"`
	MinimumStock int    `json:"minimum_stock" gorm:"not null;default:0"`
}

// ProductIngredient links a product to an ingredient. Updates replace a
// product's whole set; partial edits are not supported.
type ProductIngredient struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	ProductID    uint    `json:"product_id" gorm:"not null;index"`
	IngredientID uint    `json:"ingredient_id" gorm:"not null"`
	Quantity     float64 `json:"quantity" gorm:"not null;default:1"`
	Unit         string  `json:"unit"`

	Ingredient *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID"`
}
