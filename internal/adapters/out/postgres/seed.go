package postgres

import (
	"context"
	"log/slog"

	"fooddelivery/internal/adapters/out/postgres/courierrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/restaurantrepo"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seed IDs are fixed so repeated startups upsert the same rows instead of
// multiplying demo data.
var (
	seedSakuraID = uuid.MustParse("6b9e1b3e-0001-4a01-8f01-000000000001")
	seedRomaID   = uuid.MustParse("6b9e1b3e-0001-4a01-8f01-000000000002")
	seedFiestaID = uuid.MustParse("6b9e1b3e-0001-4a01-8f01-000000000003")
)

// Migrate creates or updates the database schema for all persisted entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&courierrepo.CourierDTO{},
		&restaurantrepo.RestaurantDTO{},
		&restaurantrepo.DishDTO{},
	)
}

// Seed loads the demo catalog and courier roster. Rows are keyed by fixed
// identifiers and created only when absent, so seeding is idempotent and
// never touches live orders.
func Seed(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	restaurants := []restaurantrepo.RestaurantDTO{
		{ID: seedSakuraID, Name: "Sakura Sushi", Cuisine: "Japanese", Rating: 4.8, DeliveryTime: "25-35 min", MinOrder: 500},
		{ID: seedRomaID, Name: "Pizza Roma", Cuisine: "Italian", Rating: 4.5, DeliveryTime: "30-40 min", MinOrder: 400},
		{ID: seedFiestaID, Name: "Taco Fiesta", Cuisine: "Mexican", Rating: 4.6, DeliveryTime: "20-30 min", MinOrder: 350},
	}

	dishes := []restaurantrepo.DishDTO{
		{ID: uuid.MustParse("6b9e1b3e-0002-4a01-8f01-000000000001"), RestaurantID: seedSakuraID, Name: "Dragon Roll", Description: "Shrimp tempura, eel, avocado", Category: "Main", Price: 450},
		{ID: uuid.MustParse("6b9e1b3e-0002-4a01-8f01-000000000002"), RestaurantID: seedSakuraID, Name: "Salmon Sashimi", Description: "Fresh salmon, 8 pieces", Category: "Appetizer", Price: 550},
		{ID: uuid.MustParse("6b9e1b3e-0002-4a01-8f01-000000000003"), RestaurantID: seedRomaID, Name: "Margherita", Description: "Tomato, mozzarella, basil", Category: "Main", Price: 380},
		{ID: uuid.MustParse("6b9e1b3e-0002-4a01-8f01-000000000004"), RestaurantID: seedRomaID, Name: "Pepperoni", Description: "Pepperoni, cheese, tomato sauce", Category: "Main", Price: 420},
		{ID: uuid.MustParse("6b9e1b3e-0002-4a01-8f01-000000000005"), RestaurantID: seedFiestaID, Name: "Beef Tacos", Description: "3 tacos with beef, salsa, guacamole", Category: "Main", Price: 320},
		{ID: uuid.MustParse("6b9e1b3e-0002-4a01-8f01-000000000006"), RestaurantID: seedFiestaID, Name: "Nachos Grande", Description: "Chips, cheese, jalapenos, sour cream", Category: "Appetizer", Price: 280},
	}

	couriers := []courierrepo.CourierDTO{
		{ID: uuid.MustParse("6b9e1b3e-0003-4a01-8f01-000000000001"), Name: "Alex Johnson", Phone: "+7 999 123 4567", Status: "available", Rating: 4.9},
		{ID: uuid.MustParse("6b9e1b3e-0003-4a01-8f01-000000000002"), Name: "Maria Garcia", Phone: "+7 999 234 5678", Status: "available", Rating: 4.7},
		{ID: uuid.MustParse("6b9e1b3e-0003-4a01-8f01-000000000003"), Name: "David Wilson", Phone: "+7 999 345 6789", Status: "offline", Rating: 4.5},
	}

	tx := db.WithContext(ctx)

	for _, row := range restaurants {
		if err := tx.Where(restaurantrepo.RestaurantDTO{ID: row.ID}).FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}
	for _, row := range dishes {
		if err := tx.Where(restaurantrepo.DishDTO{ID: row.ID}).FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}
	for _, row := range couriers {
		if err := tx.Where(courierrepo.CourierDTO{ID: row.ID}).FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}

	logger.Info("seed data loaded",
		"restaurants", len(restaurants),
		"dishes", len(dishes),
		"couriers", len(couriers))
	return nil
}
