package config

import (
	"os"

	"restaurant-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config collects every runtime setting once at startup. It is constructed
// in main and injected wherever needed; there is no package-level state.
type Config struct {
	Port        string
	DBPath      string
	JWTSecret   []byte
	FrontendURL string

	MailServer   string
	MailPort     string
	MailUsername string
	MailPassword string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		DBPath:       getEnv("DB_PATH", "restaurant.db"),
		JWTSecret:    []byte(getEnv("JWT_SECRET", "restaurant_super_secret_2024")),
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),
		MailServer:   os.Getenv("MAIL_SERVER"),
		MailPort:     getEnv("MAIL_PORT", "587"),
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// OpenDB connects to SQLite and migrates all models
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.DishDetail{},
		&models.DrinkDetail{},
		&models.Ingredient{},
		&models.ProductIngredient{},
		&models.Table{},
		&models.Reservation{},
		&models.Order{},
		&models.OrderDetail{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
