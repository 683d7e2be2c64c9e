package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCustomerOrdersQueryHandler retrieves all orders of a customer from the
// database, newest first, with their items.
type GetCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCustomerOrdersQueryHandler creates a handler for customer order queries.
// Requires a GORM database connection for query execution.
func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db}
}

// Handle executes the query and returns the customer's orders ordered by
// creation time descending. Returns an empty slice when the customer has no
// orders.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []orderRow
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
		WHERE customer_id = ?
		ORDER BY created_at DESC, id
	`, query.CustomerID().Bytes()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	responses := make([]GetOrderQueryResponse, 0, len(rows))
	if len(rows) == 0 {
		return responses, nil
	}

	orderIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		orderIDs = append(orderIDs, row.ID)
	}

	var allItems []itemRow
	err = h.db.WithContext(ctx).Raw(`
		SELECT id, order_id, product_id, name, quantity, unit_price
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, orderIDs).Scan(&allItems).Error
	if err != nil {
		return nil, err
	}

	itemsByOrder := make(map[uuid.UUID][]itemRow, len(rows))
	for _, ir := range allItems {
		itemsByOrder[ir.OrderID] = append(itemsByOrder[ir.OrderID], ir)
	}

	for _, row := range rows {
		response, convErr := responseFromRows(row, itemsByOrder[row.ID])
		if convErr != nil {
			return nil, convErr
		}
		responses = append(responses, response)
	}

	return responses, nil
}
