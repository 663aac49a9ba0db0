// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database
// representations.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Item lines live in a single jsonb column: they are an immutable snapshot
// read and written only as part of the whole order, never queried row by row.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;index"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;index"`
	CourierID    *uuid.UUID `gorm:"type:uuid;index"`
	Items        ItemsDTO   `gorm:"type:jsonb"`
	Total        int
	Address      string
	Status       string `gorm:"type:varchar(16);index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one snapshotted item line inside the jsonb document.
type ItemDTO struct {
	DishID string `json:"dishId"`
	Name   string `json:"name"`
	Qty    int    `json:"qty"`
	Price  int    `json:"price"`
}

// ItemsDTO serializes item lines to and from the jsonb column.
type ItemsDTO []ItemDTO

// Value implements driver.Valuer for writing the jsonb column.
func (i ItemsDTO) Value() (driver.Value, error) {
	return json.Marshal(i)
}

// Scan implements sql.Scanner for reading the jsonb column.
func (i *ItemsDTO) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, i)
	case string:
		return json.Unmarshal([]byte(v), i)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	domainItems := aggregate.Items()
	items := make(ItemsDTO, 0, len(domainItems))
	for _, item := range domainItems {
		items = append(items, ItemDTO{
			DishID: item.DishID().String(),
			Name:   item.Name(),
			Qty:    item.Qty(),
			Price:  item.Price(),
		})
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		CustomerID:   aggregate.CustomerID().Bytes(),
		RestaurantID: aggregate.RestaurantID().Bytes(),
		CourierID:    courierID,
		Items:        items,
		Total:        aggregate.Total(),
		Address:      aggregate.Address(),
		Status:       aggregate.Status().String(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status and courier
// assignment using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.ItemLine, 0, len(dto.Items))
	for _, item := range dto.Items {
		dishID, dishErr := kernel.UUIDFromString(item.DishID)
		if dishErr != nil {
			return nil, dishErr
		}

		line, lineErr := order.NewItemLine(dishID, item.Name, item.Qty, item.Price)
		if lineErr != nil {
			return nil, lineErr
		}
		items = append(items, line)
	}

	return order.RestoreOrder(
		id, customerID, restaurantID, items, dto.Total, dto.Address, status, courierID)
}
