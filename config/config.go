package config

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the record store. SQLite is the default so the demo runs
// with zero setup; set DB_DRIVER=mysql plus the DB_* variables for a real
// server.
func InitDB() (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	}

	switch os.Getenv("DB_DRIVER") {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			envOr("DB_HOST", "127.0.0.1"),
			envOr("DB_PORT", "3306"),
			os.Getenv("DB_NAME"),
		)
		return gorm.Open(mysql.Open(dsn), gormCfg)
	default:
		return gorm.Open(sqlite.Open(envOr("DB_PATH", "pos.db")), gormCfg)
	}
}

// MerchantName and MerchantAddress feed the receipt header.
func MerchantName() string {
	return envOr("MERCHANT_NAME", "Demo Restaurante")
}

func MerchantAddress() string {
	return envOr("MERCHANT_ADDRESS", "San José, Costa Rica")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
