// Package http exposes the order service over a REST API.
package http

import (
	"errors"
	"net/http"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	addItemHandler           commands.AddItemCommandHandler
	removeItemHandler        commands.RemoveItemCommandHandler
	confirmOrderHandler      commands.ConfirmOrderCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	addItemHandler commands.AddItemCommandHandler,
	removeItemHandler commands.RemoveItemCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		addItemHandler:           addItemHandler,
		removeItemHandler:        removeItemHandler,
		confirmOrderHandler:      confirmOrderHandler,
		cancelOrderHandler:       cancelOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		getOrderHandler:          getOrderHandler,
		getCustomerOrdersHandler: getCustomerOrdersHandler,
	}
}

// RegisterRoutes mounts all order endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:orderId", s.GetOrder)
	v1.POST("/orders/:orderId/items", s.AddItem)
	v1.DELETE("/orders/:orderId/items/:itemId", s.RemoveItem)
	v1.POST("/orders/:orderId/confirm", s.ConfirmOrder)
	v1.POST("/orders/:orderId/cancel", s.CancelOrder)
	v1.PATCH("/orders/:orderId/status", s.UpdateOrderStatus)
	v1.GET("/customers/:customerId/orders", s.GetCustomerOrders)
}

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddressRequest carries a delivery destination in request bodies.
type AddressRequest struct {
	Street       string   `json:"street"`
	City         string   `json:"city"`
	PostalCode   string   `json:"postal_code"`
	Apartment    string   `json:"apartment,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// ItemRequest carries one order line in request bodies.
type ItemRequest struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerID string         `json:"customer_id"`
	Address    AddressRequest `json:"address"`
	Items      []ItemRequest  `json:"items"`
	Notes      string         `json:"notes,omitempty"`
}

// CancelOrderRequest is the body of POST /api/v1/orders/{id}/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// UpdateOrderStatusRequest is the body of PATCH /api/v1/orders/{id}/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// ItemResponse is one order line in query answers.
type ItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse is a complete order in query answers.
type OrderResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Status     string          `json:"status"`
	Address    AddressRequest  `json:"address"`
	Items      []ItemResponse  `json:"items"`
	Notes      string          `json:"notes,omitempty"`
	Total      decimal.Decimal `json:"total"`
	Version    int             `json:"version"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+request.CustomerID)
	}

	items := make([]commands.CreateOrderItem, 0, len(request.Items))
	for _, item := range request.Items {
		productID, productErr := kernel.UUIDFromString(item.ProductID)
		if productErr != nil {
			return badRequest(ctx, "Invalid product id: "+item.ProductID)
		}
		items = append(items, commands.CreateOrderItem{
			ProductID: productID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		customerID,
		commands.CreateOrderAddress{
			Street:       request.Address.Street,
			City:         request.Address.City,
			PostalCode:   request.Address.PostalCode,
			Apartment:    request.Address.Apartment,
			Instructions: request.Address.Instructions,
			Latitude:     request.Address.Latitude,
			Longitude:    request.Address.Longitude,
		},
		items,
		request.Notes,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	snapshot, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderResponseFromSnapshot(snapshot))
}

// GetOrder handles GET /api/v1/orders/{orderId} - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromQuery(response))
}

// GetCustomerOrders handles GET /api/v1/customers/{customerId}/orders -
// lists a customer's orders, newest first.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, orderResponseFromQuery(o))
	}

	return ctx.JSON(http.StatusOK, response)
}

// AddItem handles POST /api/v1/orders/{orderId}/items - adds a line to a
// pending order.
func (s *Server) AddItem(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request ItemRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	productID, err := kernel.UUIDFromString(request.ProductID)
	if err != nil {
		return badRequest(ctx, "Invalid product id: "+request.ProductID)
	}

	cmd, err := commands.NewAddItemCommand(orderID, productID, request.Name, request.Quantity, request.UnitPrice)
	if err != nil {
		return respondError(ctx, err)
	}

	snapshot, err := s.addItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromSnapshot(snapshot))
}

// RemoveItem handles DELETE /api/v1/orders/{orderId}/items/{itemId}.
func (s *Server) RemoveItem(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	cmd, err := commands.NewRemoveItemCommand(orderID, itemID)
	if err != nil {
		return respondError(ctx, err)
	}

	snapshot, err := s.removeItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromSnapshot(snapshot))
}

// ConfirmOrder handles POST /api/v1/orders/{orderId}/confirm - reserves
// inventory and moves the order to the confirmed state.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	snapshot, err := s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromSnapshot(snapshot))
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request CancelOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, request.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	snapshot, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromSnapshot(snapshot))
}

// UpdateOrderStatus handles PATCH /api/v1/orders/{orderId}/status - moves a
// confirmed order along the fulfillment path.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request UpdateOrderStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	newStatus, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+request.Status)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, newStatus)
	if err != nil {
		return respondError(ctx, err)
	}

	snapshot, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromSnapshot(snapshot))
}

func orderResponseFromQuery(response queries.GetOrderQueryResponse) OrderResponse {
	items := make([]ItemResponse, 0, len(response.Items))
	for _, item := range response.Items {
		items = append(items, ItemResponse{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}

	return OrderResponse{
		ID:         response.ID.String(),
		CustomerID: response.CustomerID.String(),
		Status:     response.Status,
		Address: AddressRequest{
			Street:       response.Address.Street,
			City:         response.Address.City,
			PostalCode:   response.Address.PostalCode,
			Apartment:    response.Address.Apartment,
			Instructions: response.Address.Instructions,
			Latitude:     response.Address.Latitude,
			Longitude:    response.Address.Longitude,
		},
		Items:     items,
		Notes:     response.Notes,
		Total:     response.Total,
		Version:   response.Version,
		CreatedAt: response.CreatedAt,
		UpdatedAt: response.UpdatedAt,
	}
}

func orderResponseFromSnapshot(snapshot commands.OrderSnapshot) OrderResponse {
	items := make([]ItemResponse, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		items = append(items, ItemResponse{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}

	return OrderResponse{
		ID:         snapshot.ID.String(),
		CustomerID: snapshot.CustomerID.String(),
		Status:     snapshot.Status,
		Address: AddressRequest{
			Street:       snapshot.Address.Street,
			City:         snapshot.Address.City,
			PostalCode:   snapshot.Address.PostalCode,
			Apartment:    snapshot.Address.Apartment,
			Instructions: snapshot.Address.Instructions,
			Latitude:     snapshot.Address.Latitude,
			Longitude:    snapshot.Address.Longitude,
		},
		Items:     items,
		Notes:     snapshot.Notes,
		Total:     snapshot.Total,
		Version:   snapshot.Version,
		CreatedAt: snapshot.CreatedAt,
		UpdatedAt: snapshot.UpdatedAt,
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// respondError translates application errors into HTTP answers by their kind.
// Unclassified errors are infrastructure faults; their text carries driver and
// SQL detail that must not reach clients, so the body gets a fixed message and
// the real error is logged server-side.
func respondError(ctx echo.Context, err error) error {
	status := statusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		ctx.Logger().Error(err)
		message = "Internal server error"
	}
	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: message,
	})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrEmptyOrder),
		errors.Is(err, errs.ErrConcurrencyConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInsufficientInventory):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrInventoryUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
