// Package restaurantrepo provides data transfer objects and mapping functions
// for the restaurant catalog: restaurants and their dishes.
package restaurantrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
)

// RestaurantDTO represents the database structure for restaurants.
type RestaurantDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Cuisine      string
	Rating       float64
	DeliveryTime string
	MinOrder     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for restaurant entities.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// DishDTO represents the database structure for menu dishes.
type DishDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index"`
	Name         string
	Description  string
	Category     string
	Price        int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for dish entities.
func (DishDTO) TableName() string {
	return "dishes"
}

func restaurantFromDomain(aggregate *restaurant.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		Cuisine:      aggregate.Cuisine(),
		Rating:       aggregate.Rating(),
		DeliveryTime: aggregate.DeliveryTime(),
		MinOrder:     aggregate.MinOrder(),
	}
}

func restaurantToDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return restaurant.NewRestaurant(
		id, dto.Name, dto.Cuisine, dto.Rating, dto.DeliveryTime, dto.MinOrder)
}

func dishFromDomain(dish *restaurant.Dish) DishDTO {
	return DishDTO{
		ID:           dish.ID().Bytes(),
		RestaurantID: dish.RestaurantID().Bytes(),
		Name:         dish.Name(),
		Description:  dish.Description(),
		Category:     dish.Category(),
		Price:        dish.Price(),
	}
}

func dishToDomain(dto DishDTO) (*restaurant.Dish, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	return restaurant.NewDish(
		id, restaurantID, dto.Name, dto.Description, dto.Category, dto.Price)
}
