package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/puravida-pos/pos-demo/models"
	"github.com/puravida-pos/pos-demo/utils"
)

// Migrate creates or updates the record store schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderLine{},
		&models.Transaction{},
	)
}

// SeedMenu loads the demo menu once, when the items table is empty.
func SeedMenu(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := []models.MenuItem{
		// Appetizers
		{Name: "Ceviche de Pescado", Price: 4500, Category: "Appetizers", Description: "Fresh fish ceviche with lime and cilantro"},
		{Name: "Patacones", Price: 2800, Category: "Appetizers", Description: "Fried plantain slices with refried beans"},
		{Name: "Empanadas de Carne", Price: 2200, Category: "Appetizers", Description: "Beef empanadas with chimichurri sauce"},

		// Main Dishes
		{Name: "Casado", Price: 5500, Category: "Main Dishes", Description: "Traditional plate with rice, beans, meat, and salad"},
		{Name: "Gallo Pinto", Price: 3200, Category: "Main Dishes", Description: "Rice and beans with eggs and plantains"},
		{Name: "Arroz con Pollo", Price: 4800, Category: "Main Dishes", Description: "Chicken and rice with vegetables"},
		{Name: "Pescado Frito", Price: 6200, Category: "Main Dishes", Description: "Fried whole fish with rice and salad"},
		{Name: "Chifrijo", Price: 4200, Category: "Main Dishes", Description: "Rice, beans, pork, and pico de gallo"},

		// Beverages
		{Name: "Cerveza Imperial", Price: 1800, Category: "Beverages", Description: "Local Costa Rican beer"},
		{Name: "Cerveza Pilsen", Price: 1800, Category: "Beverages", Description: "Another local beer option"},
		{Name: "Agua Fresca", Price: 1200, Category: "Beverages", Description: "Fresh fruit water (tamarind, hibiscus, or lime)"},
		{Name: "Café Chorreado", Price: 1500, Category: "Beverages", Description: "Traditional Costa Rican coffee"},
		{Name: "Horchata", Price: 2000, Category: "Beverages", Description: "Rice and cinnamon drink"},

		// Desserts
		{Name: "Tres Leches", Price: 2800, Category: "Desserts", Description: "Traditional three-milk cake"},
		{Name: "Flan", Price: 2200, Category: "Desserts", Description: "Caramel custard dessert"},
		{Name: "Arroz con Leche", Price: 2000, Category: "Desserts", Description: "Rice pudding with cinnamon"},
	}

	now := time.Now()
	for i := range items {
		items[i].Active = true
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
	}

	if err := db.Create(&items).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Demo menu seeded with %d items", len(items))
	return nil
}
