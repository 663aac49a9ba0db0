// Package queries contains read-side operations of the CQRS architecture.
// Query handlers read the database directly with raw SQL instead of going
// through aggregates; responses are plain read models shaped for clients.
package queries

import (
	"database/sql"
	"encoding/json"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// OrderItemResponse is one snapshotted item line of an order read model.
type OrderItemResponse struct {
	DishID kernel.UUID `json:"dishId"`
	Name   string      `json:"name"`
	Qty    int         `json:"qty"`
	Price  int         `json:"price"`
}

// OrderResponse is the order read model shared by the order queries.
// CourierID is nil until a courier is bound.
type OrderResponse struct {
	ID           kernel.UUID         `json:"id"`
	CustomerID   kernel.UUID         `json:"customerId"`
	RestaurantID kernel.UUID         `json:"restaurantId"`
	CourierID    *kernel.UUID        `json:"courierId,omitempty"`
	Items        []OrderItemResponse `json:"items"`
	Total        int                 `json:"total"`
	Address      string              `json:"address"`
	Status       string              `json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// orderRow is the raw column set scanned from the orders table. Item lines
// are stored as a JSON document and decoded into the response.
type orderRow struct {
	id         uuid.UUID
	customerID uuid.UUID
	restID     uuid.UUID
	courierID  uuid.NullUUID
	items      []byte
	total      int
	address    string
	status     string
	createdAt  time.Time
}

type itemDocument struct {
	DishID string `json:"dishId"`
	Name   string `json:"name"`
	Qty    int    `json:"qty"`
	Price  int    `json:"price"`
}

func scanOrderRow(rows *sql.Rows) (OrderResponse, error) {
	var row orderRow

	err := rows.Scan(
		&row.id,
		&row.customerID,
		&row.restID,
		&row.courierID,
		&row.items,
		&row.total,
		&row.address,
		&row.status,
		&row.createdAt,
	)
	if err != nil {
		return OrderResponse{}, err
	}

	return row.toResponse()
}

func (r orderRow) toResponse() (OrderResponse, error) {
	id, err := kernel.UUIDFromBytes(r.id[:])
	if err != nil {
		return OrderResponse{}, err
	}
	customerID, err := kernel.UUIDFromBytes(r.customerID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	restaurantID, err := kernel.UUIDFromBytes(r.restID[:])
	if err != nil {
		return OrderResponse{}, err
	}

	resp := OrderResponse{
		ID:           id,
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		Total:        r.total,
		Address:      r.address,
		Status:       r.status,
		CreatedAt:    r.createdAt,
	}

	if r.courierID.Valid {
		courierID, idErr := kernel.UUIDFromBytes(r.courierID.UUID[:])
		if idErr != nil {
			return OrderResponse{}, idErr
		}
		resp.CourierID = &courierID
	}

	var docs []itemDocument
	if err = json.Unmarshal(r.items, &docs); err != nil {
		return OrderResponse{}, err
	}

	resp.Items = make([]OrderItemResponse, 0, len(docs))
	for _, doc := range docs {
		dishID, idErr := kernel.UUIDFromString(doc.DishID)
		if idErr != nil {
			return OrderResponse{}, idErr
		}
		resp.Items = append(resp.Items, OrderItemResponse{
			DishID: dishID,
			Name:   doc.Name,
			Qty:    doc.Qty,
			Price:  doc.Price,
		})
	}

	return resp, nil
}
