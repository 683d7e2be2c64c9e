package queries

import (
	"context"
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order with its items from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// orderRow mirrors the columns selected from the orders table.
type orderRow struct {
	ID                  uuid.UUID
	CustomerID          uuid.UUID
	Status              int
	AddressStreet       string
	AddressCity         string
	AddressPostalCode   string
	AddressApartment    string
	AddressInstructions string
	AddressLatitude     *float64
	AddressLongitude    *float64
	Notes               string
	TotalAmount         decimal.Decimal
	Version             int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// itemRow mirrors the columns selected from the order_items table.
type itemRow struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Handle executes the query and returns the complete order.
// Returns an ObjectNotFoundError when no order carries the id.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var row orderRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			status,
			address_street,
			address_city,
			address_postal_code,
			address_apartment,
			address_instructions,
			address_latitude,
			address_longitude,
			notes,
			total_amount,
			version,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	var itemRows []itemRow
	err = h.db.WithContext(ctx).Raw(`
		SELECT id, order_id, product_id, name, quantity, unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, query.OrderID().Bytes()).Scan(&itemRows).Error
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return responseFromRows(row, itemRows)
}

func responseFromRows(row orderRow, itemRows []itemRow) (GetOrderQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	customerID, err := kernel.UUIDFromBytes(row.CustomerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	items := make([]OrderItemResponse, 0, len(itemRows))
	for _, ir := range itemRows {
		item, itemErr := itemResponseFromRow(ir)
		if itemErr != nil {
			return GetOrderQueryResponse{}, itemErr
		}
		items = append(items, item)
	}

	return GetOrderQueryResponse{
		ID:         id,
		CustomerID: customerID,
		Status:     order.Status(row.Status).String(),
		Address: OrderAddressResponse{
			Street:       row.AddressStreet,
			City:         row.AddressCity,
			PostalCode:   row.AddressPostalCode,
			Apartment:    row.AddressApartment,
			Instructions: row.AddressInstructions,
			Latitude:     row.AddressLatitude,
			Longitude:    row.AddressLongitude,
		},
		Items:     items,
		Notes:     row.Notes,
		Total:     row.TotalAmount,
		Version:   row.Version,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func itemResponseFromRow(ir itemRow) (OrderItemResponse, error) {
	itemID, err := kernel.UUIDFromBytes(ir.ID[:])
	if err != nil {
		return OrderItemResponse{}, err
	}

	productID, err := kernel.UUIDFromBytes(ir.ProductID[:])
	if err != nil {
		return OrderItemResponse{}, err
	}

	return OrderItemResponse{
		ID:        itemID,
		ProductID: productID,
		Name:      ir.Name,
		Quantity:  ir.Quantity,
		UnitPrice: ir.UnitPrice,
		Subtotal:  ir.UnitPrice.Mul(decimal.NewFromInt(int64(ir.Quantity))),
	}, nil
}
